package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/repositories"
)

const transactionColumns = `transaction_id, clinic_id, type, amount, currency_code, description,
	category_id, due_date, paid_date, status, payment_method, notes, attachment_ref,
	related_entity_type, related_entity_id, created_by, created_at, updated_at`

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new repository for transaction data.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &transactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

func (r *transactionRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	s := txn.Snapshot()
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.pool.Exec(ctx, query,
		s.TransactionID,
		s.ClinicID,
		s.Type,
		s.Amount.Amount(),
		s.Amount.Currency(),
		s.Description,
		nullableString(s.CategoryID),
		s.DueDate,
		s.PaidDate,
		s.Status,
		nullableString(string(s.PaymentMethod)),
		s.Notes,
		nullableString(s.AttachmentRef),
		nullableString(s.RelatedEntityType),
		nullableString(s.RelatedEntityID),
		s.CreatedBy,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("transaction %s: %w", s.TransactionID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save transaction %s: %w", s.TransactionID, err)
	}
	return nil
}

func (r *transactionRepository) UpdateTransaction(ctx context.Context, txn *domain.Transaction) error {
	s := txn.Snapshot()
	query := `
		UPDATE transactions
		SET amount = $2, currency_code = $3, description = $4, category_id = $5,
			due_date = $6, paid_date = $7, status = $8, payment_method = $9,
			notes = $10, attachment_ref = $11, updated_at = $12
		WHERE transaction_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		s.TransactionID,
		s.Amount.Amount(),
		s.Amount.Currency(),
		s.Description,
		nullableString(s.CategoryID),
		s.DueDate,
		s.PaidDate,
		s.Status,
		nullableString(string(s.PaymentMethod)),
		s.Notes,
		nullableString(s.AttachmentRef),
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", s.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", s.TransactionID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *transactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *transactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *transactionRepository) FindTransactionsByClinic(ctx context.Context, clinicID string, filters portsrepo.TransactionFilters) ([]*domain.Transaction, error) {
	clauses := []string{"clinic_id = $1"}
	args := []any{clinicID}

	add := func(column, op string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", column, op, len(args)))
	}
	if filters.Type != nil {
		add("type", "=", *filters.Type)
	}
	if filters.Status != nil {
		add("status", "=", *filters.Status)
	}
	if filters.CategoryID != nil {
		add("category_id", "=", *filters.CategoryID)
	}
	if filters.RelatedEntityType != nil {
		add("related_entity_type", "=", *filters.RelatedEntityType)
	}
	if filters.RelatedEntityID != nil {
		add("related_entity_id", "=", *filters.RelatedEntityID)
	}
	if filters.Period != nil {
		add("due_date", ">=", filters.Period.Start())
		add("due_date", "<=", filters.Period.End())
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, filters.Offset)
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY due_date DESC, created_at DESC LIMIT $%d OFFSET $%d;`,
		transactionColumns, strings.Join(clauses, " AND "), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for clinic %s: %w", clinicID, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *transactionRepository) GetTotalByPeriod(ctx context.Context, clinicID string, period domain.Period, txnType domain.TransactionType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE clinic_id = $1 AND type = $2 AND status = $3
			AND paid_date >= $4 AND paid_date <= $5;
	`
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, query, clinicID, txnType, domain.TransactionPaid, period.Start(), period.End()).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total %s for clinic %s: %w", txnType, clinicID, err)
	}
	return total, nil
}

func (r *transactionRepository) GetOverdueTransactions(ctx context.Context, clinicID string) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE clinic_id = $1 AND status = $2 AND due_date < $3
		ORDER BY due_date ASC;
	`
	rows, err := r.pool.Query(ctx, query, clinicID, domain.TransactionPending, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue transactions for clinic %s: %w", clinicID, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *transactionRepository) GetPendingTransactions(ctx context.Context, clinicID string) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE clinic_id = $1 AND status IN ($2, $3)
		ORDER BY due_date ASC;
	`
	rows, err := r.pool.Query(ctx, query, clinicID, domain.TransactionPending, domain.TransactionOverdue)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions for clinic %s: %w", clinicID, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// scanTransaction maps one row onto a hydrated domain entity.
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		s             domain.TransactionSnapshot
		amount        decimal.Decimal
		currencyCode  string
		categoryID    *string
		paymentMethod *string
		attachmentRef *string
		relatedType   *string
		relatedID     *string
	)
	err := row.Scan(
		&s.TransactionID,
		&s.ClinicID,
		&s.Type,
		&amount,
		&currencyCode,
		&s.Description,
		&categoryID,
		&s.DueDate,
		&s.PaidDate,
		&s.Status,
		&paymentMethod,
		&s.Notes,
		&attachmentRef,
		&relatedType,
		&relatedID,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	money, err := domain.NewMoney(amount, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount on transaction %s: %w", s.TransactionID, err)
	}
	s.Amount = money
	s.CategoryID = deref(categoryID)
	s.AttachmentRef = deref(attachmentRef)
	s.RelatedEntityType = deref(relatedType)
	s.RelatedEntityID = deref(relatedID)
	if paymentMethod != nil {
		s.PaymentMethod = domain.PaymentMethod(*paymentMethod)
	}
	return domain.HydrateTransaction(s), nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return txns, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
