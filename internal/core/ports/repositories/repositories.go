package repositories

// RepositoryProvider aggregates every repository the service layer needs. It is built
// once at startup by the pgsql package and handed to the service container.
type RepositoryProvider struct {
	TxManager           TransactionManager
	AccountRepo         AccountRepositoryFacade
	FiscalYearRepo      FiscalYearRepositoryFacade
	JournalRepo         JournalRepositoryFacade
	InvoiceRepo         InvoiceRepositoryFacade
	SupplierInvoiceRepo SupplierInvoiceRepositoryFacade
	BankRepo            BankRepositoryFacade
	MatchingRuleRepo    MatchingRuleRepositoryFacade
	PayrollRepo         PayrollRepositoryFacade
}
