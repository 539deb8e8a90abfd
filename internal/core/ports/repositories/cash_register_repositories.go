package repositories

import (
	"context"

	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
)

// CashRegisterFilters narrows clinic-scoped register listings. Nil fields are
// ignored.
type CashRegisterFilters struct {
	Status   *domain.CashRegisterStatus
	OpenedBy *string
	Period   *domain.Period
	Limit    int
	Offset   int
}

// CashRegisterReader defines read operations for cash register sessions.
type CashRegisterReader interface {
	// FindCashRegisterByID retrieves a specific register by its unique identifier.
	FindCashRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error)

	// FindCashRegistersByClinic retrieves a filtered, paginated list of registers for a clinic.
	FindCashRegistersByClinic(ctx context.Context, clinicID string, filters CashRegisterFilters) ([]*domain.CashRegister, error)

	// FindOpenRegister retrieves the clinic's currently open register, or
	// apperrors.ErrNotFound when none is open.
	FindOpenRegister(ctx context.Context, clinicID string) (*domain.CashRegister, error)

	// GetLastClosedRegister retrieves the clinic's most recently closed register.
	GetLastClosedRegister(ctx context.Context, clinicID string) (*domain.CashRegister, error)
}

// CashRegisterWriter defines write operations for cash register sessions.
type CashRegisterWriter interface {
	// SaveCashRegister persists a new register session. Implementations must
	// surface apperrors.ErrRegisterAlreadyOpen when the storage-level
	// exclusivity constraint rejects a second open register for the clinic.
	SaveCashRegister(ctx context.Context, register *domain.CashRegister) error

	// UpdateCashRegister updates an existing register session.
	UpdateCashRegister(ctx context.Context, register *domain.CashRegister) error

	// DeleteCashRegister removes a register session by ID.
	DeleteCashRegister(ctx context.Context, registerID string) error
}

// CashRegisterRepositoryFacade combines all cash register repository interfaces.
type CashRegisterRepositoryFacade interface {
	CashRegisterReader
	CashRegisterWriter
}
