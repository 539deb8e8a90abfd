package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/repositories"
)

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository creates a new repository for staff lookups.
func NewStaffRepository(pool *pgxpool.Pool) portsrepo.StaffReader {
	return &staffRepository{pool: pool}
}

var _ portsrepo.StaffReader = (*staffRepository)(nil)

func (r *staffRepository) FindStaffByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	query := `
		SELECT staff_id, clinic_id, name, email, password_hash, role, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM staff
		WHERE email = $1;
	`
	var staff domain.Staff
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&staff.StaffID,
		&staff.ClinicID,
		&staff.Name,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.IsActive,
		&staff.CreatedAt,
		&staff.CreatedBy,
		&staff.LastUpdatedAt,
		&staff.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("staff with email %s: %w", email, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find staff by email: %w", err)
	}
	return &staff, nil
}
