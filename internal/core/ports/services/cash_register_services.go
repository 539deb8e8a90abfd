package services

import (
	"context"

	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
	"github.com/vitalis-hms/clinic_ledger_app/internal/dto"
)

// CashRegisterSvcFacade defines the orchestration operations for cash drawer
// sessions. Every operation is scoped to a clinic.
type CashRegisterSvcFacade interface {
	// OpenCashRegister opens a new session, enforcing at most one open
	// register per clinic.
	OpenCashRegister(ctx context.Context, clinicID string, req dto.OpenCashRegisterRequest, userID string) (*domain.CashRegister, error)

	// CloseCashRegister closes an open session and records the reconciliation.
	CloseCashRegister(ctx context.Context, clinicID string, registerID string, req dto.CloseCashRegisterRequest, userID string) (*domain.CashRegister, error)

	// GetCashRegisterByID retrieves a register, enforcing clinic scope.
	GetCashRegisterByID(ctx context.Context, clinicID string, registerID string) (*domain.CashRegister, error)

	// ListCashRegisters retrieves a filtered list of the clinic's registers.
	ListCashRegisters(ctx context.Context, clinicID string, params dto.ListCashRegistersParams) ([]*domain.CashRegister, error)

	// GetOpenRegister retrieves the clinic's currently open register.
	GetOpenRegister(ctx context.Context, clinicID string) (*domain.CashRegister, error)

	// GetLastClosedRegister retrieves the clinic's most recently closed register.
	GetLastClosedRegister(ctx context.Context, clinicID string) (*domain.CashRegister, error)
}
