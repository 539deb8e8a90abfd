package services

import (
	"context"

	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
)

// ReportingSvcFacade defines read-only aggregations over the ledger.
type ReportingSvcFacade interface {
	// GetCashFlow computes settled totals, net balance and pending exposure
	// for the clinic over the period.
	GetCashFlow(ctx context.Context, clinicID string, period domain.Period) (*domain.CashFlowSummary, error)
}
