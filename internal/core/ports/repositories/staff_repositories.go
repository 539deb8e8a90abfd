package repositories

import (
	"context"

	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
)

// StaffReader defines the read operations the auth layer needs. Staff
// management itself lives outside the ledger core.
type StaffReader interface {
	// FindStaffByEmail retrieves a staff member by login email.
	FindStaffByEmail(ctx context.Context, email string) (*domain.Staff, error)
}
