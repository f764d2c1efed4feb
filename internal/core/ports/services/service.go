package services

// ServiceContainer holds instances of all the application services. This is the main
// entry point for accessing service functionality and is used by the handlers.
type ServiceContainer struct {
	Account         AccountSvcFacade
	FiscalYear      FiscalYearSvcFacade
	Ledger          LedgerSvcFacade
	Invoice         InvoiceSvcFacade
	SupplierInvoice SupplierInvoiceSvcFacade
	Payment         PaymentSvcFacade
	Bank            BankSvcFacade
	Reconciliation  ReconciliationSvcFacade
	Payroll         PayrollSvcFacade
}
