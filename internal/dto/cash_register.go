package dto

import (
	"time"

	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
)

// OpenCashRegisterRequest defines the data needed to open a drawer session.
// InitialAmount is a pointer so an explicit 0.00 float survives binding.
type OpenCashRegisterRequest struct {
	InitialAmount *float64 `json:"initialAmount" binding:"required,gte=0"`
	Currency      string   `json:"currency"` // Optional, defaults to the configured clinic currency
	Notes         string   `json:"notes"`
}

// CloseCashRegisterRequest defines the data needed to close a drawer session.
type CloseCashRegisterRequest struct {
	FinalAmount    *float64 `json:"finalAmount" binding:"required,gte=0"`
	ExpectedAmount *float64 `json:"expectedAmount" binding:"required,gte=0"`
	Notes          string   `json:"notes"`
}

// ListCashRegistersParams defines query parameters for listing registers.
type ListCashRegistersParams struct {
	Status   *domain.CashRegisterStatus `form:"status" binding:"omitempty,oneof=ABERTO FECHADO"`
	OpenedBy *string                    `form:"openedBy"`
	From     *time.Time                 `form:"from" time_format:"2006-01-02"`
	To       *time.Time                 `form:"to" time_format:"2006-01-02"`
	Limit    int                        `form:"limit,default=20"`
	Offset   int                        `form:"offset,default=0"`
}

// CashRegisterResponse defines the data returned for a register session.
type CashRegisterResponse struct {
	RegisterID           string                    `json:"registerID"`
	ClinicID             string                    `json:"clinicID"`
	OpenedBy             string                    `json:"openedBy"`
	OpenedAt             time.Time                 `json:"openedAt"`
	ClosedBy             string                    `json:"closedBy,omitempty"`
	ClosedAt             *time.Time                `json:"closedAt,omitempty"`
	InitialAmount        string                    `json:"initialAmount"`
	FinalAmount          *string                   `json:"finalAmount,omitempty"`
	ExpectedAmount       *string                   `json:"expectedAmount,omitempty"`
	Difference           *string                   `json:"difference,omitempty"`
	DifferencePercentage string                    `json:"differencePercentage"`
	Currency             string                    `json:"currency"`
	Status               domain.CashRegisterStatus `json:"status"`
	DurationHours        float64                   `json:"durationHours"`
	Notes                string                    `json:"notes,omitempty"`
}

// ToCashRegisterResponse converts a domain.CashRegister to its response DTO.
func ToCashRegisterResponse(register *domain.CashRegister) CashRegisterResponse {
	s := register.Snapshot()
	resp := CashRegisterResponse{
		RegisterID:           s.RegisterID,
		ClinicID:             s.ClinicID,
		OpenedBy:             s.OpenedBy,
		OpenedAt:             s.OpenedAt,
		ClosedBy:             s.ClosedBy,
		ClosedAt:             s.ClosedAt,
		InitialAmount:        s.InitialAmount.Amount().StringFixed(2),
		Currency:             s.InitialAmount.Currency(),
		Status:               s.Status,
		DifferencePercentage: register.DifferencePercentage().StringFixed(2),
		DurationHours:        register.DurationInHours(time.Now().UTC()),
		Notes:                s.Notes,
	}
	if s.FinalAmount != nil {
		v := s.FinalAmount.Amount().StringFixed(2)
		resp.FinalAmount = &v
	}
	if s.ExpectedAmount != nil {
		v := s.ExpectedAmount.Amount().StringFixed(2)
		resp.ExpectedAmount = &v
	}
	if s.Difference != nil {
		v := s.Difference.StringFixed(2)
		resp.Difference = &v
	}
	return resp
}

// ToListCashRegisterResponse converts a slice of registers to response DTOs.
func ToListCashRegisterResponse(registers []*domain.CashRegister) []CashRegisterResponse {
	res := make([]CashRegisterResponse, len(registers))
	for i, register := range registers {
		res[i] = ToCashRegisterResponse(register)
	}
	return res
}
