package services

import (
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
)

// NewServiceContainer wires every application service against the repository provider.
// Posting-capable services share one ledger poster so role resolution and fiscal year
// checks behave identically everywhere.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	fiscalYearSvc := NewFiscalYearService(repos.FiscalYearRepo)
	ledgerSvc := NewLedgerService(repos.JournalRepo, accountSvc, fiscalYearSvc)

	return &portssvc.ServiceContainer{
		Account:         accountSvc,
		FiscalYear:      fiscalYearSvc,
		Ledger:          ledgerSvc,
		Invoice:         NewInvoiceService(repos.TxManager, repos.InvoiceRepo, ledgerSvc),
		SupplierInvoice: NewSupplierInvoiceService(repos.SupplierInvoiceRepo),
		Payment:         NewPaymentService(repos.TxManager, repos.InvoiceRepo, repos.SupplierInvoiceRepo, ledgerSvc),
		Bank:            NewBankService(repos.TxManager, repos.BankRepo, repos.MatchingRuleRepo, repos.InvoiceRepo, repos.SupplierInvoiceRepo),
		Reconciliation:  NewReconciliationService(repos.TxManager, repos.BankRepo, repos.InvoiceRepo, repos.SupplierInvoiceRepo, ledgerSvc),
		Payroll:         NewPayrollService(repos.TxManager, repos.PayrollRepo, ledgerSvc),
	}
}
