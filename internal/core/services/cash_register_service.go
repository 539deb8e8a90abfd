package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/services"
	"github.com/vitalis-hms/clinic_ledger_app/internal/dto"
)

// cashRegisterService implements the CashRegisterSvcFacade interface.
type cashRegisterService struct {
	BaseService
	registerRepo    portsrepo.CashRegisterRepositoryFacade
	defaultCurrency string
}

// CashRegisterServiceOption is a functional option for configuring the cash register service.
type CashRegisterServiceOption func(*cashRegisterService)

// WithRegisterDefaultCurrency sets the currency used when requests omit one.
func WithRegisterDefaultCurrency(code string) CashRegisterServiceOption {
	return func(s *cashRegisterService) {
		s.defaultCurrency = code
	}
}

// NewCashRegisterService creates a new cash register service with the provided options.
func NewCashRegisterService(repo portsrepo.CashRegisterRepositoryFacade, options ...CashRegisterServiceOption) portssvc.CashRegisterSvcFacade {
	svc := &cashRegisterService{
		registerRepo:    repo,
		defaultCurrency: "BRL",
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure cashRegisterService implements the CashRegisterSvcFacade interface
var _ portssvc.CashRegisterSvcFacade = (*cashRegisterService)(nil)

func (s *cashRegisterService) currencyOrDefault(code string) string {
	if code == "" {
		return s.defaultCurrency
	}
	return code
}

func (s *cashRegisterService) OpenCashRegister(ctx context.Context, clinicID string, req dto.OpenCashRegisterRequest, userID string) (*domain.CashRegister, error) {
	// Pre-check for a friendly error. The storage layer holds the
	// authoritative guard: a partial unique index rejects a concurrent second
	// open, which the repository surfaces as the same sentinel.
	existing, err := s.registerRepo.FindOpenRegister(ctx, clinicID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for open register",
			slog.String("clinic_id", clinicID))
		return nil, err
	}
	if existing != nil {
		err := fmt.Errorf("register %s is still open: %w", existing.ID(), apperrors.ErrRegisterAlreadyOpen)
		s.LogError(ctx, err, "Open register already exists",
			slog.String("clinic_id", clinicID),
			slog.String("register_id", existing.ID()))
		return nil, err
	}

	initial, err := domain.NewMoneyFromFloat(*req.InitialAmount, s.currencyOrDefault(req.Currency))
	if err != nil {
		s.LogError(ctx, err, "Invalid initial amount",
			slog.String("clinic_id", clinicID))
		return nil, err
	}

	register, err := domain.NewCashRegister(uuid.NewString(), clinicID, userID, initial, req.Notes, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Cash register validation failed",
			slog.String("clinic_id", clinicID))
		return nil, err
	}

	if err := s.registerRepo.SaveCashRegister(ctx, register); err != nil {
		s.LogError(ctx, err, "Failed to save cash register",
			slog.String("register_id", register.ID()),
			slog.String("clinic_id", clinicID))
		return nil, err
	}

	s.LogInfo(ctx, "Cash register opened",
		slog.String("register_id", register.ID()),
		slog.String("clinic_id", clinicID),
		slog.String("opened_by", userID))
	return register, nil
}

// loadScoped fetches a register and verifies it belongs to the clinic.
func (s *cashRegisterService) loadScoped(ctx context.Context, clinicID, registerID string) (*domain.CashRegister, error) {
	register, err := s.registerRepo.FindCashRegisterByID(ctx, registerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find cash register by ID",
				slog.String("register_id", registerID))
		}
		return nil, err
	}
	if register.ClinicID() != clinicID {
		return nil, fmt.Errorf("register %s not found for clinic %s: %w", registerID, clinicID, apperrors.ErrNotFound)
	}
	return register, nil
}

func (s *cashRegisterService) CloseCashRegister(ctx context.Context, clinicID string, registerID string, req dto.CloseCashRegisterRequest, userID string) (*domain.CashRegister, error) {
	register, err := s.loadScoped(ctx, clinicID, registerID)
	if err != nil {
		return nil, err
	}

	currency := register.InitialAmount().Currency()
	finalAmount, err := domain.NewMoneyFromFloat(*req.FinalAmount, currency)
	if err != nil {
		return nil, err
	}
	expectedAmount, err := domain.NewMoneyFromFloat(*req.ExpectedAmount, currency)
	if err != nil {
		return nil, err
	}

	if err := register.Close(userID, finalAmount, expectedAmount, req.Notes, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to close cash register",
			slog.String("register_id", registerID),
			slog.String("status", string(register.Status())))
		return nil, err
	}

	if err := s.registerRepo.UpdateCashRegister(ctx, register); err != nil {
		s.LogError(ctx, err, "Failed to persist closed cash register",
			slog.String("register_id", registerID))
		return nil, err
	}

	s.LogInfo(ctx, "Cash register closed",
		slog.String("register_id", registerID),
		slog.String("closed_by", userID),
		slog.Bool("has_difference", register.HasDifference()))
	return register, nil
}

func (s *cashRegisterService) GetCashRegisterByID(ctx context.Context, clinicID string, registerID string) (*domain.CashRegister, error) {
	return s.loadScoped(ctx, clinicID, registerID)
}

func (s *cashRegisterService) ListCashRegisters(ctx context.Context, clinicID string, params dto.ListCashRegistersParams) ([]*domain.CashRegister, error) {
	filters := portsrepo.CashRegisterFilters{
		Status:   params.Status,
		OpenedBy: params.OpenedBy,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if params.From != nil && params.To != nil {
		period, err := domain.NewPeriod(*params.From, *params.To)
		if err != nil {
			s.LogError(ctx, err, "Invalid listing period",
				slog.String("clinic_id", clinicID))
			return nil, err
		}
		filters.Period = &period
	}

	registers, err := s.registerRepo.FindCashRegistersByClinic(ctx, clinicID, filters)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash registers",
			slog.String("clinic_id", clinicID))
		return nil, err
	}
	return registers, nil
}

func (s *cashRegisterService) GetOpenRegister(ctx context.Context, clinicID string) (*domain.CashRegister, error) {
	register, err := s.registerRepo.FindOpenRegister(ctx, clinicID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find open register",
				slog.String("clinic_id", clinicID))
		}
		return nil, err
	}
	return register, nil
}

func (s *cashRegisterService) GetLastClosedRegister(ctx context.Context, clinicID string) (*domain.CashRegister, error) {
	register, err := s.registerRepo.GetLastClosedRegister(ctx, clinicID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find last closed register",
				slog.String("clinic_id", clinicID))
		}
		return nil, err
	}
	return register, nil
}
