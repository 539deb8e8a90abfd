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

// transactionService implements the TransactionSvcFacade interface.
type transactionService struct {
	BaseService
	txnRepo         portsrepo.TransactionRepositoryFacade
	defaultCurrency string
}

// TransactionServiceOption is a functional option for configuring the transaction service.
type TransactionServiceOption func(*transactionService)

// WithTransactionDefaultCurrency sets the currency used when requests omit one.
func WithTransactionDefaultCurrency(code string) TransactionServiceOption {
	return func(s *transactionService) {
		s.defaultCurrency = code
	}
}

// NewTransactionService creates a new transaction service with the provided options.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:         repo,
		defaultCurrency: "BRL",
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) currencyOrDefault(code string) string {
	if code == "" {
		return s.defaultCurrency
	}
	return code
}

func (s *transactionService) CreateTransaction(ctx context.Context, clinicID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	amount, err := domain.NewMoneyFromFloat(req.Amount, s.currencyOrDefault(req.Currency))
	if err != nil {
		s.LogError(ctx, err, "Invalid amount for new transaction",
			slog.Float64("amount", req.Amount),
			slog.String("clinic_id", clinicID))
		return nil, err
	}

	params := domain.NewTransactionParams{
		TransactionID: uuid.NewString(),
		ClinicID:      clinicID,
		Type:          req.Type,
		Amount:        amount,
		Description:   req.Description,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
		CreatedBy:     userID,
		Now:           time.Now().UTC(),
	}
	if req.CategoryID != nil {
		params.CategoryID = *req.CategoryID
	}
	if req.RelatedEntityType != nil {
		params.RelatedEntityType = *req.RelatedEntityType
	}
	if req.RelatedEntityID != nil {
		params.RelatedEntityID = *req.RelatedEntityID
	}

	txn, err := domain.NewTransaction(params)
	if err != nil {
		s.LogError(ctx, err, "Transaction validation failed",
			slog.String("clinic_id", clinicID))
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.ID()),
			slog.String("clinic_id", clinicID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", txn.ID()),
		slog.String("type", string(txn.Type())),
		slog.String("clinic_id", clinicID))
	return txn, nil
}

// loadScoped fetches a transaction and verifies it belongs to the clinic.
// A cross-clinic ID is reported as not found to avoid leaking existence.
func (s *transactionService) loadScoped(ctx context.Context, clinicID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if txn.ClinicID() != clinicID {
		return nil, fmt.Errorf("transaction %s not found for clinic %s: %w", transactionID, clinicID, apperrors.ErrNotFound)
	}
	return txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, clinicID string, transactionID string) (*domain.Transaction, error) {
	return s.loadScoped(ctx, clinicID, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, clinicID string, params dto.ListTransactionsParams) ([]*domain.Transaction, error) {
	filters := portsrepo.TransactionFilters{
		Type:              params.Type,
		Status:            params.Status,
		CategoryID:        params.CategoryID,
		RelatedEntityType: params.RelatedEntityType,
		RelatedEntityID:   params.RelatedEntityID,
		Limit:             params.Limit,
		Offset:            params.Offset,
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

	txns, err := s.txnRepo.FindTransactionsByClinic(ctx, clinicID, filters)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions",
			slog.String("clinic_id", clinicID))
		return nil, err
	}
	return txns, nil
}

func (s *transactionService) GetOverdueTransactions(ctx context.Context, clinicID string) ([]*domain.Transaction, error) {
	txns, err := s.txnRepo.GetOverdueTransactions(ctx, clinicID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list overdue transactions",
			slog.String("clinic_id", clinicID))
		return nil, err
	}
	return txns, nil
}

func (s *transactionService) PayTransaction(ctx context.Context, clinicID string, transactionID string, req dto.PayTransactionRequest, userID string) (*domain.Transaction, error) {
	txn, err := s.loadScoped(ctx, clinicID, transactionID)
	if err != nil {
		return nil, err
	}

	if err := txn.MarkAsPaid(req.PaidDate, req.PaymentMethod, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to mark transaction as paid",
			slog.String("transaction_id", transactionID),
			slog.String("status", string(txn.Status())))
		return nil, err
	}

	if err := s.txnRepo.UpdateTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to persist paid transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction paid successfully",
		slog.String("transaction_id", transactionID),
		slog.String("payment_method", string(req.PaymentMethod)),
		slog.String("user_id", userID))
	return txn, nil
}

func (s *transactionService) CancelTransaction(ctx context.Context, clinicID string, transactionID string, req dto.CancelTransactionRequest, userID string) (*domain.Transaction, error) {
	txn, err := s.loadScoped(ctx, clinicID, transactionID)
	if err != nil {
		return nil, err
	}

	if err := txn.Cancel(req.Reason, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to cancel transaction",
			slog.String("transaction_id", transactionID),
			slog.String("status", string(txn.Status())))
		return nil, err
	}

	if err := s.txnRepo.UpdateTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to persist cancelled transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction cancelled",
		slog.String("transaction_id", transactionID),
		slog.String("user_id", userID))
	return txn, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, clinicID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	txn, err := s.loadScoped(ctx, clinicID, transactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	// Guard checks run entirely in memory on the entity before anything is
	// persisted, so a rejected field leaves no partial update behind.
	if req.Description != nil {
		if err := txn.UpdateDescription(*req.Description, now); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		if err := txn.UpdateDueDate(*req.DueDate, now); err != nil {
			return nil, err
		}
	}
	if req.Amount != nil {
		amount, err := domain.NewMoneyFromFloat(*req.Amount, txn.Amount().Currency())
		if err != nil {
			return nil, err
		}
		if err := txn.UpdateAmount(amount, now); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		txn.UpdateCategory(*req.CategoryID, now)
	}
	if req.AttachmentRef != nil {
		txn.AddAttachment(*req.AttachmentRef, now)
	}
	if req.Notes != nil {
		txn.AddNotes(*req.Notes, now)
	}

	if err := s.txnRepo.UpdateTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to persist transaction update",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.String("user_id", userID))
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, clinicID string, transactionID string, userID string) error {
	txn, err := s.loadScoped(ctx, clinicID, transactionID)
	if err != nil {
		return err
	}

	// Paid transactions are frozen financial facts and cannot be removed.
	if txn.Status() == domain.TransactionPaid {
		return fmt.Errorf("cannot delete a paid transaction: %w", apperrors.ErrIllegalTransition)
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("user_id", userID))
	return nil
}
