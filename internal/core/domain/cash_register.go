package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
)

// CashRegisterStatus indicates the lifecycle state of a cash drawer session.
type CashRegisterStatus string

const (
	RegisterOpen   CashRegisterStatus = "ABERTO"
	RegisterClosed CashRegisterStatus = "FECHADO"
)

// CashRegister is one open-to-close cash drawer session for a clinic. A closed
// register is terminal; a new session always means a new entity. The
// reconciliation difference is kept as a signed decimal because a shortfall
// (counted less than expected) must be representable, which Money's guarded
// subtraction forbids.
type CashRegister struct {
	registerID     string
	clinicID       string
	openedBy       string
	openedAt       time.Time
	closedBy       string
	closedAt       *time.Time
	initialAmount  Money
	finalAmount    *Money
	expectedAmount *Money
	difference     *decimal.Decimal
	status         CashRegisterStatus
	notes          string
}

// NewCashRegister opens a new session in ABERTO status. The cross-clinic
// exclusivity invariant (one open register per clinic) is enforced by the
// orchestration layer and by a partial unique index at the storage layer.
func NewCashRegister(registerID, clinicID, openedBy string, initialAmount Money, notes string, now time.Time) (*CashRegister, error) {
	if registerID == "" {
		return nil, fmt.Errorf("register ID is required: %w", apperrors.ErrValidation)
	}
	if clinicID == "" {
		return nil, fmt.Errorf("clinic ID is required: %w", apperrors.ErrValidation)
	}
	if openedBy == "" {
		return nil, fmt.Errorf("opened-by staff ID is required: %w", apperrors.ErrValidation)
	}
	return &CashRegister{
		registerID:    registerID,
		clinicID:      clinicID,
		openedBy:      openedBy,
		openedAt:      now,
		initialAmount: initialAmount,
		status:        RegisterOpen,
		notes:         notes,
	}, nil
}

// Accessors.

func (r *CashRegister) ID() string                 { return r.registerID }
func (r *CashRegister) ClinicID() string           { return r.clinicID }
func (r *CashRegister) OpenedBy() string           { return r.openedBy }
func (r *CashRegister) OpenedAt() time.Time        { return r.openedAt }
func (r *CashRegister) ClosedBy() string           { return r.closedBy }
func (r *CashRegister) InitialAmount() Money       { return r.initialAmount }
func (r *CashRegister) Status() CashRegisterStatus { return r.status }
func (r *CashRegister) Notes() string              { return r.notes }

// ClosedAt returns a copy of the close instant, or nil while open.
func (r *CashRegister) ClosedAt() *time.Time {
	if r.closedAt == nil {
		return nil
	}
	t := *r.closedAt
	return &t
}

// FinalAmount returns the counted amount recorded at close, or nil while open.
func (r *CashRegister) FinalAmount() *Money {
	if r.finalAmount == nil {
		return nil
	}
	m := *r.finalAmount
	return &m
}

// ExpectedAmount returns the system-expected amount recorded at close, or nil
// while open.
func (r *CashRegister) ExpectedAmount() *Money {
	if r.expectedAmount == nil {
		return nil
	}
	m := *r.expectedAmount
	return &m
}

// Difference returns the signed reconciliation delta (counted minus expected),
// or nil while open.
func (r *CashRegister) Difference() *decimal.Decimal {
	if r.difference == nil {
		return nil
	}
	d := *r.difference
	return &d
}

// Close ends the session, recording who closed it, the counted amount and the
// expected amount, and computes the signed reconciliation difference. Legal
// only once, from ABERTO.
func (r *CashRegister) Close(closedBy string, finalAmount, expectedAmount Money, notes string, now time.Time) error {
	if r.status != RegisterOpen {
		return fmt.Errorf("register %s is already closed: %w", r.registerID, apperrors.ErrAlreadyClosed)
	}
	if closedBy == "" {
		return fmt.Errorf("closed-by staff ID is required: %w", apperrors.ErrValidation)
	}
	if finalAmount.Currency() != expectedAmount.Currency() {
		return fmt.Errorf("counted in %s but expected in %s: %w",
			finalAmount.Currency(), expectedAmount.Currency(), apperrors.ErrCurrencyMismatch)
	}
	diff := finalAmount.Amount().Sub(expectedAmount.Amount())

	r.status = RegisterClosed
	r.closedBy = closedBy
	r.closedAt = &now
	r.finalAmount = &finalAmount
	r.expectedAmount = &expectedAmount
	r.difference = &diff
	if notes != "" {
		if r.notes == "" {
			r.notes = notes
		} else {
			r.notes = r.notes + "\n" + notes
		}
	}
	return nil
}

// DurationInHours returns how long the session has been (or was) open.
func (r *CashRegister) DurationInHours(now time.Time) float64 {
	end := now
	if r.closedAt != nil {
		end = *r.closedAt
	}
	return end.Sub(r.openedAt).Hours()
}

// HasDifference reports whether a reconciliation difference was computed and
// is non-zero.
func (r *CashRegister) HasDifference() bool {
	return r.difference != nil && !r.difference.IsZero()
}

// DifferencePercentage returns the difference relative to the expected amount,
// in percent. Zero when the register is still open or the expected amount is
// zero.
func (r *CashRegister) DifferencePercentage() decimal.Decimal {
	if r.difference == nil || r.expectedAmount == nil || r.expectedAmount.IsZero() {
		return decimal.Zero
	}
	return r.difference.Div(r.expectedAmount.Amount()).Mul(decimal.NewFromInt(100)).Round(2)
}

// CashRegisterSnapshot is the exported flat view of a CashRegister, used by
// persistence adapters and DTO mappers.
type CashRegisterSnapshot struct {
	RegisterID     string
	ClinicID       string
	OpenedBy       string
	OpenedAt       time.Time
	ClosedBy       string
	ClosedAt       *time.Time
	InitialAmount  Money
	FinalAmount    *Money
	ExpectedAmount *Money
	Difference     *decimal.Decimal
	Status         CashRegisterStatus
	Notes          string
}

// Snapshot returns the flat view of the register.
func (r *CashRegister) Snapshot() CashRegisterSnapshot {
	return CashRegisterSnapshot{
		RegisterID:     r.registerID,
		ClinicID:       r.clinicID,
		OpenedBy:       r.openedBy,
		OpenedAt:       r.openedAt,
		ClosedBy:       r.closedBy,
		ClosedAt:       r.ClosedAt(),
		InitialAmount:  r.initialAmount,
		FinalAmount:    r.FinalAmount(),
		ExpectedAmount: r.ExpectedAmount(),
		Difference:     r.Difference(),
		Status:         r.status,
		Notes:          r.notes,
	}
}

// HydrateCashRegister restores a register from persisted state without
// re-running creation validation. For repository use only.
func HydrateCashRegister(s CashRegisterSnapshot) *CashRegister {
	return &CashRegister{
		registerID:     s.RegisterID,
		clinicID:       s.ClinicID,
		openedBy:       s.OpenedBy,
		openedAt:       s.OpenedAt,
		closedBy:       s.ClosedBy,
		closedAt:       s.ClosedAt,
		initialAmount:  s.InitialAmount,
		finalAmount:    s.FinalAmount,
		expectedAmount: s.ExpectedAmount,
		difference:     s.Difference,
		status:         s.Status,
		notes:          s.Notes,
	}
}
