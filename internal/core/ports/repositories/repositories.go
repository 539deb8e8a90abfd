package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service container at startup.
type RepositoryProvider struct {
	TransactionRepo  TransactionRepositoryFacade
	CashRegisterRepo CashRegisterRepositoryFacade
	StaffRepo        StaffReader
}
