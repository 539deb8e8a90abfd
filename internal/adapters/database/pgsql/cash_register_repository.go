package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/repositories"
)

const cashRegisterColumns = `register_id, clinic_id, opened_by, opened_at, closed_by, closed_at,
	initial_amount, final_amount, expected_amount, difference, currency_code, status, notes`

// openRegisterIndexName is the partial unique index enforcing at most one
// ABERTO register per clinic (see migrations). A violation means another
// request opened a register between our check and our insert.
const openRegisterIndexName = "ux_cash_registers_open"

type cashRegisterRepository struct {
	pool *pgxpool.Pool
}

// NewCashRegisterRepository creates a new repository for cash register sessions.
func NewCashRegisterRepository(pool *pgxpool.Pool) portsrepo.CashRegisterRepositoryFacade {
	return &cashRegisterRepository{pool: pool}
}

var _ portsrepo.CashRegisterRepositoryFacade = (*cashRegisterRepository)(nil)

func (r *cashRegisterRepository) SaveCashRegister(ctx context.Context, register *domain.CashRegister) error {
	s := register.Snapshot()
	query := `
		INSERT INTO cash_registers (` + cashRegisterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		s.RegisterID,
		s.ClinicID,
		s.OpenedBy,
		s.OpenedAt,
		nullableString(s.ClosedBy),
		s.ClosedAt,
		s.InitialAmount.Amount(),
		moneyAmount(s.FinalAmount),
		moneyAmount(s.ExpectedAmount),
		s.Difference,
		s.InitialAmount.Currency(),
		s.Status,
		s.Notes,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == openRegisterIndexName {
				return fmt.Errorf("clinic %s: %w", s.ClinicID, apperrors.ErrRegisterAlreadyOpen)
			}
			return fmt.Errorf("register %s: %w", s.RegisterID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save cash register %s: %w", s.RegisterID, err)
	}
	return nil
}

func (r *cashRegisterRepository) UpdateCashRegister(ctx context.Context, register *domain.CashRegister) error {
	s := register.Snapshot()
	query := `
		UPDATE cash_registers
		SET closed_by = $2, closed_at = $3, final_amount = $4, expected_amount = $5,
			difference = $6, status = $7, notes = $8
		WHERE register_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		s.RegisterID,
		nullableString(s.ClosedBy),
		s.ClosedAt,
		moneyAmount(s.FinalAmount),
		moneyAmount(s.ExpectedAmount),
		s.Difference,
		s.Status,
		s.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update cash register %s: %w", s.RegisterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cash register %s: %w", s.RegisterID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *cashRegisterRepository) DeleteCashRegister(ctx context.Context, registerID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cash_registers WHERE register_id = $1;`, registerID)
	if err != nil {
		return fmt.Errorf("failed to delete cash register %s: %w", registerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cash register %s: %w", registerID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *cashRegisterRepository) FindCashRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	query := `SELECT ` + cashRegisterColumns + ` FROM cash_registers WHERE register_id = $1;`
	register, err := scanCashRegister(r.pool.QueryRow(ctx, query, registerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cash register %s: %w", registerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find cash register by ID %s: %w", registerID, err)
	}
	return register, nil
}

func (r *cashRegisterRepository) FindCashRegistersByClinic(ctx context.Context, clinicID string, filters portsrepo.CashRegisterFilters) ([]*domain.CashRegister, error) {
	clauses := []string{"clinic_id = $1"}
	args := []any{clinicID}

	add := func(column, op string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", column, op, len(args)))
	}
	if filters.Status != nil {
		add("status", "=", *filters.Status)
	}
	if filters.OpenedBy != nil {
		add("opened_by", "=", *filters.OpenedBy)
	}
	if filters.Period != nil {
		add("opened_at", ">=", filters.Period.Start())
		add("opened_at", "<=", filters.Period.End())
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, filters.Offset)
	query := fmt.Sprintf(`SELECT %s FROM cash_registers WHERE %s ORDER BY opened_at DESC LIMIT $%d OFFSET $%d;`,
		cashRegisterColumns, strings.Join(clauses, " AND "), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash registers for clinic %s: %w", clinicID, err)
	}
	defer rows.Close()

	var registers []*domain.CashRegister
	for rows.Next() {
		register, err := scanCashRegister(rows)
		if err != nil {
			return nil, err
		}
		registers = append(registers, register)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return registers, nil
}

func (r *cashRegisterRepository) FindOpenRegister(ctx context.Context, clinicID string) (*domain.CashRegister, error) {
	query := `SELECT ` + cashRegisterColumns + ` FROM cash_registers WHERE clinic_id = $1 AND status = $2;`
	register, err := scanCashRegister(r.pool.QueryRow(ctx, query, clinicID, domain.RegisterOpen))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no open register for clinic %s: %w", clinicID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find open register for clinic %s: %w", clinicID, err)
	}
	return register, nil
}

func (r *cashRegisterRepository) GetLastClosedRegister(ctx context.Context, clinicID string) (*domain.CashRegister, error) {
	query := `
		SELECT ` + cashRegisterColumns + `
		FROM cash_registers
		WHERE clinic_id = $1 AND status = $2
		ORDER BY closed_at DESC
		LIMIT 1;
	`
	register, err := scanCashRegister(r.pool.QueryRow(ctx, query, clinicID, domain.RegisterClosed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no closed register for clinic %s: %w", clinicID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find last closed register for clinic %s: %w", clinicID, err)
	}
	return register, nil
}

// scanCashRegister maps one row onto a hydrated domain entity.
func scanCashRegister(row pgx.Row) (*domain.CashRegister, error) {
	var (
		s              domain.CashRegisterSnapshot
		closedBy       *string
		initialAmount  decimal.Decimal
		finalAmount    *decimal.Decimal
		expectedAmount *decimal.Decimal
		currencyCode   string
	)
	err := row.Scan(
		&s.RegisterID,
		&s.ClinicID,
		&s.OpenedBy,
		&s.OpenedAt,
		&closedBy,
		&s.ClosedAt,
		&initialAmount,
		&finalAmount,
		&expectedAmount,
		&s.Difference,
		&currencyCode,
		&s.Status,
		&s.Notes,
	)
	if err != nil {
		return nil, err
	}

	initial, err := domain.NewMoney(initialAmount, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("corrupt initial amount on register %s: %w", s.RegisterID, err)
	}
	s.InitialAmount = initial
	s.ClosedBy = deref(closedBy)
	if finalAmount != nil {
		m, err := domain.NewMoney(*finalAmount, currencyCode)
		if err != nil {
			return nil, fmt.Errorf("corrupt final amount on register %s: %w", s.RegisterID, err)
		}
		s.FinalAmount = &m
	}
	if expectedAmount != nil {
		m, err := domain.NewMoney(*expectedAmount, currencyCode)
		if err != nil {
			return nil, fmt.Errorf("corrupt expected amount on register %s: %w", s.RegisterID, err)
		}
		s.ExpectedAmount = &m
	}
	return domain.HydrateCashRegister(s), nil
}

func moneyAmount(m *domain.Money) *decimal.Decimal {
	if m == nil {
		return nil
	}
	d := m.Amount()
	return &d
}
