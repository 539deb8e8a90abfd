package services

import (
	"context"

	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
	"github.com/vitalis-hms/clinic_ledger_app/internal/dto"
)

// TransactionSvcFacade defines the orchestration operations for transaction
// line items. Every operation is scoped to a clinic.
type TransactionSvcFacade interface {
	// CreateTransaction constructs a PENDENTE transaction and persists it.
	CreateTransaction(ctx context.Context, clinicID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// GetTransactionByID retrieves a transaction, enforcing clinic scope.
	GetTransactionByID(ctx context.Context, clinicID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered list of the clinic's transactions.
	ListTransactions(ctx context.Context, clinicID string, params dto.ListTransactionsParams) ([]*domain.Transaction, error)

	// GetOverdueTransactions retrieves the clinic's pending transactions past
	// their due date.
	GetOverdueTransactions(ctx context.Context, clinicID string) ([]*domain.Transaction, error)

	// PayTransaction settles a pending or overdue transaction.
	PayTransaction(ctx context.Context, clinicID string, transactionID string, req dto.PayTransactionRequest, userID string) (*domain.Transaction, error)

	// CancelTransaction voids a non-terminal transaction.
	CancelTransaction(ctx context.Context, clinicID string, transactionID string, req dto.CancelTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction applies the editable-field changes allowed by the
	// transaction's current status.
	UpdateTransaction(ctx context.Context, clinicID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction that has not been paid.
	DeleteTransaction(ctx context.Context, clinicID string, transactionID string, userID string) error
}
