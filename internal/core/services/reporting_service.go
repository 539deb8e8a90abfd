package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/services"
)

// reportingService implements the ReportingSvcFacade interface.
type reportingService struct {
	BaseService
	txnRepo portsrepo.TransactionReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.TransactionReader) portssvc.ReportingSvcFacade {
	return &reportingService{txnRepo: repo}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetCashFlow computes the clinic's cash flow for a period. The two settled
// totals are independent reads and run concurrently; the pending partition is
// a separate sequential read. Nothing is mutated.
func (s *reportingService) GetCashFlow(ctx context.Context, clinicID string, period domain.Period) (*domain.CashFlowSummary, error) {
	var (
		totalReceitas, totalDespesas decimal.Decimal
		errReceitas, errDespesas     error
		wg                           sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		totalReceitas, errReceitas = s.txnRepo.GetTotalByPeriod(ctx, clinicID, period, domain.Receita)
	}()
	go func() {
		defer wg.Done()
		totalDespesas, errDespesas = s.txnRepo.GetTotalByPeriod(ctx, clinicID, period, domain.Despesa)
	}()
	wg.Wait()

	if errReceitas != nil {
		s.LogError(ctx, errReceitas, "Failed to total receitas",
			slog.String("clinic_id", clinicID))
		return nil, errReceitas
	}
	if errDespesas != nil {
		s.LogError(ctx, errDespesas, "Failed to total despesas",
			slog.String("clinic_id", clinicID))
		return nil, errDespesas
	}

	pending, err := s.txnRepo.GetPendingTransactions(ctx, clinicID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load pending transactions",
			slog.String("clinic_id", clinicID))
		return nil, err
	}

	pendingReceitas := decimal.Zero
	pendingDespesas := decimal.Zero
	for _, txn := range pending {
		switch txn.Type() {
		case domain.Receita:
			pendingReceitas = pendingReceitas.Add(txn.Amount().Amount())
		case domain.Despesa:
			pendingDespesas = pendingDespesas.Add(txn.Amount().Amount())
		}
	}

	summary := &domain.CashFlowSummary{
		Period:          period,
		TotalReceitas:   totalReceitas,
		TotalDespesas:   totalDespesas,
		NetBalance:      totalReceitas.Sub(totalDespesas),
		PendingReceitas: pendingReceitas,
		PendingDespesas: pendingDespesas,
	}

	s.LogInfo(ctx, "Cash flow computed",
		slog.String("clinic_id", clinicID),
		slog.String("from", period.Start().Format(time.RFC3339)),
		slog.String("to", period.End().Format(time.RFC3339)),
		slog.Int("pending_count", len(pending)))
	return summary, nil
}
