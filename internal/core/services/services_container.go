package services

import (
	portsrepo "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/services"
	"github.com/vitalis-hms/clinic_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		WithTransactionDefaultCurrency(cfg.DefaultCurrency),
	)
	container.CashRegister = NewCashRegisterService(
		repos.CashRegisterRepo,
		WithRegisterDefaultCurrency(cfg.DefaultCurrency),
	)
	container.Reporting = NewReportingService(repos.TransactionRepo)
	container.Auth = NewAuthService(repos.StaffRepo, cfg)

	return container
}

// Interface implementation checks at compile time.
var (
	_ portssvc.TransactionSvcFacade  = (*transactionService)(nil)
	_ portssvc.CashRegisterSvcFacade = (*cashRegisterService)(nil)
	_ portssvc.ReportingSvcFacade    = (*reportingService)(nil)
	_ portssvc.AuthSvcFacade         = (*authService)(nil)
)
