package dto

import (
	"time"

	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
)

// CashFlowParams defines query parameters for the cash flow report. Either a
// named window or an explicit from/to range must be provided.
type CashFlowParams struct {
	Window string     `form:"window" binding:"omitempty,oneof=current_month previous_month current_year"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
}

// CashFlowResponse defines the data returned by the cash flow report.
type CashFlowResponse struct {
	PeriodStart     time.Time `json:"periodStart"`
	PeriodEnd       time.Time `json:"periodEnd"`
	TotalReceitas   string    `json:"totalReceitas"`
	TotalDespesas   string    `json:"totalDespesas"`
	NetBalance      string    `json:"netBalance"`
	PendingReceitas string    `json:"pendingReceitas"`
	PendingDespesas string    `json:"pendingDespesas"`
}

// ToCashFlowResponse converts a domain.CashFlowSummary to its response DTO.
func ToCashFlowResponse(summary *domain.CashFlowSummary) CashFlowResponse {
	return CashFlowResponse{
		PeriodStart:     summary.Period.Start(),
		PeriodEnd:       summary.Period.End(),
		TotalReceitas:   summary.TotalReceitas.StringFixed(2),
		TotalDespesas:   summary.TotalDespesas.StringFixed(2),
		NetBalance:      summary.NetBalance.StringFixed(2),
		PendingReceitas: summary.PendingReceitas.StringFixed(2),
		PendingDespesas: summary.PendingDespesas.StringFixed(2),
	}
}
