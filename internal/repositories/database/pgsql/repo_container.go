package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TxManager:           newPgxTransactionManager(dbPool),
		AccountRepo:         newPgxAccountRepository(dbPool),
		FiscalYearRepo:      newPgxFiscalYearRepository(dbPool),
		JournalRepo:         newPgxJournalRepository(dbPool),
		InvoiceRepo:         newPgxInvoiceRepository(dbPool),
		SupplierInvoiceRepo: newPgxSupplierInvoiceRepository(dbPool),
		BankRepo:            newPgxBankRepository(dbPool),
		MatchingRuleRepo:    newPgxMatchingRuleRepository(dbPool),
		PayrollRepo:         newPgxPayrollRepository(dbPool),
	}
}
