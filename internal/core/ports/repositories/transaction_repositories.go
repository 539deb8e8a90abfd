package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
)

// TransactionFilters narrows clinic-scoped transaction listings. Nil fields
// are ignored.
type TransactionFilters struct {
	Type              *domain.TransactionType
	Status            *domain.TransactionStatus
	CategoryID        *string
	Period            *domain.Period
	RelatedEntityType *string
	RelatedEntityID   *string
	Limit             int
	Offset            int
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByClinic retrieves a filtered, paginated list of transactions for a clinic.
	FindTransactionsByClinic(ctx context.Context, clinicID string, filters TransactionFilters) ([]*domain.Transaction, error)

	// GetTotalByPeriod sums the amounts of PAGO transactions of the given type
	// whose paid date falls inside the period.
	GetTotalByPeriod(ctx context.Context, clinicID string, period domain.Period, txnType domain.TransactionType) (decimal.Decimal, error)

	// GetOverdueTransactions retrieves pending transactions past their due date.
	GetOverdueTransactions(ctx context.Context, clinicID string) ([]*domain.Transaction, error)

	// GetPendingTransactions retrieves all transactions still awaiting settlement.
	GetPendingTransactions(ctx context.Context, clinicID string) ([]*domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn *domain.Transaction) error

	// UpdateTransaction updates an existing transaction.
	UpdateTransaction(ctx context.Context, txn *domain.Transaction) error

	// DeleteTransaction removes a transaction by ID.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
