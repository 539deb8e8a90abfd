package domain

import "github.com/shopspring/decimal"

// CashFlowSummary aggregates settled totals and pending exposure for a clinic
// over a period. Produced by the reporting orchestration, never persisted.
type CashFlowSummary struct {
	Period          Period
	TotalReceitas   decimal.Decimal
	TotalDespesas   decimal.Decimal
	NetBalance      decimal.Decimal
	PendingReceitas decimal.Decimal
	PendingDespesas decimal.Decimal
}
