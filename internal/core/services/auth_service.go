package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
	portsrepo "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/services"
	"github.com/vitalis-hms/clinic_ledger_app/internal/dto"
	"github.com/vitalis-hms/clinic_ledger_app/internal/platform/config"
	"github.com/vitalis-hms/clinic_ledger_app/internal/utils"
)

// authService implements the AuthSvcFacade interface.
type authService struct {
	BaseService
	staffRepo portsrepo.StaffReader
	cfg       *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(staffRepo portsrepo.StaffReader, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{staffRepo: staffRepo, cfg: cfg}
}

// Ensure authService implements the AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	staff, err := s.staffRepo.FindStaffByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same sentinel as a bad password so the response does not reveal
			// which part of the credentials was wrong.
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up staff by email")
		return nil, err
	}

	if !staff.IsActive {
		return nil, fmt.Errorf("staff account is inactive: %w", apperrors.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(req.Password, staff.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.CreateJWT(staff.StaffID, staff.ClinicID, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to create JWT",
			slog.String("staff_id", staff.StaffID))
		return nil, err
	}

	s.LogInfo(ctx, "Staff logged in",
		slog.String("staff_id", staff.StaffID),
		slog.String("clinic_id", staff.ClinicID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		StaffID:   staff.StaffID,
		ClinicID:  staff.ClinicID,
		Name:      staff.Name,
	}, nil
}
