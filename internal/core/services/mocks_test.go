package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/dto"
)

// stubTxManager runs the block directly with a nil pgx.Tx. Repository mocks accept the
// nil transaction; the block's own error handling is what the services under test
// exercise.
type stubTxManager struct {
	beginErr error
}

var _ portsrepo.TransactionManager = (*stubTxManager)(nil)

func (s *stubTxManager) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if s.beginErr != nil {
		return s.beginErr
	}
	return fn(nil)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindRoleOverrides(ctx context.Context, companyID string) (map[domain.AccountRole]string, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountRole]string), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveRoleOverride(ctx context.Context, companyID string, role domain.AccountRole, code string) error {
	args := m.Called(ctx, companyID, role, code)
	return args.Error(0)
}

// --- Mock FiscalYearRepository ---

type MockFiscalYearRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalYearRepositoryFacade = (*MockFiscalYearRepository)(nil)

func (m *MockFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindOpenYearForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) ListFiscalYearsByCompany(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) ListOverlappingYears(ctx context.Context, companyID string, startDate, endDate time.Time) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, companyID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	args := m.Called(ctx, year)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) CloseFiscalYear(ctx context.Context, fiscalYearID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, fiscalYearID, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), token, args.Error(2)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), token, args.Error(2)
}

func (m *MockInvoiceRepository) FindOpenInvoicesByTotal(ctx context.Context, companyID string, totalTTC decimal.Decimal) ([]domain.Invoice, error) {
	args := m.Called(ctx, companyID, totalTTC)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, invoiceID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoicePaymentInTx(ctx context.Context, tx pgx.Tx, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, invoiceID, amountPaid, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// --- Mock SupplierInvoiceRepository ---

type MockSupplierInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.SupplierInvoiceRepositoryFacade = (*MockSupplierInvoiceRepository)(nil)

func (m *MockSupplierInvoiceRepository) FindSupplierInvoiceByID(ctx context.Context, invoiceID string) (*domain.SupplierInvoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierInvoice), args.Error(1)
}

func (m *MockSupplierInvoiceRepository) FindSupplierInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.SupplierInvoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierInvoice), args.Error(1)
}

func (m *MockSupplierInvoiceRepository) ListSupplierInvoicesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.SupplierInvoice, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.SupplierInvoice), token, args.Error(2)
}

func (m *MockSupplierInvoiceRepository) FindOpenSupplierInvoicesByTotal(ctx context.Context, companyID string, totalTTC decimal.Decimal) ([]domain.SupplierInvoice, error) {
	args := m.Called(ctx, companyID, totalTTC)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierInvoice), args.Error(1)
}

func (m *MockSupplierInvoiceRepository) SaveSupplierInvoice(ctx context.Context, invoice domain.SupplierInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockSupplierInvoiceRepository) UpdateSupplierInvoicePaymentInTx(ctx context.Context, tx pgx.Tx, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, invoiceID, amountPaid, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockSupplierInvoiceRepository) SaveSupplierPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.SupplierPayment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

// --- Mock BankRepository ---

type MockBankRepository struct {
	mock.Mock
}

var _ portsrepo.BankRepositoryFacade = (*MockBankRepository)(nil)

func (m *MockBankRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankRepository) FindBankAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, tx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankRepository) ListBankAccountsByCompany(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankRepository) UpdateBankAccountBalanceInTx(ctx context.Context, tx pgx.Tx, bankAccountID string, newBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, bankAccountID, newBalance, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockBankRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, tx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankRepository) ListTransactionsByBankAccount(ctx context.Context, bankAccountID string, limit int, nextToken *string) ([]domain.BankTransaction, *string, error) {
	args := m.Called(ctx, bankAccountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.BankTransaction), token, args.Error(2)
}

func (m *MockBankRepository) InsertTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.BankTransaction) error {
	args := m.Called(ctx, tx, transactions)
	return args.Error(0)
}

func (m *MockBankRepository) UpdateTransactionMatch(ctx context.Context, transactionID string, invoiceID string, side domain.MatchSide, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, invoiceID, side, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockBankRepository) MarkTransactionReconciledInTx(ctx context.Context, tx pgx.Tx, transactionID string, invoiceID string, side domain.MatchSide, reconciledAt time.Time, updatedBy string) error {
	args := m.Called(ctx, tx, transactionID, invoiceID, side, reconciledAt, updatedBy)
	return args.Error(0)
}

// --- Mock MatchingRuleRepository ---

type MockMatchingRuleRepository struct {
	mock.Mock
}

var _ portsrepo.MatchingRuleRepositoryFacade = (*MockMatchingRuleRepository)(nil)

func (m *MockMatchingRuleRepository) ListActiveRulesByCompany(ctx context.Context, companyID string) ([]domain.BankMatchingRule, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankMatchingRule), args.Error(1)
}

func (m *MockMatchingRuleRepository) SaveMatchingRule(ctx context.Context, rule domain.BankMatchingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

// --- Mock PayrollRepository ---

type MockPayrollRepository struct {
	mock.Mock
}

var _ portsrepo.PayrollRepositoryFacade = (*MockPayrollRepository)(nil)

func (m *MockPayrollRepository) FindRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRun), args.Error(1)
}

func (m *MockPayrollRepository) FindRunByPeriodInTx(ctx context.Context, tx pgx.Tx, companyID string, period string) (*domain.PayrollRun, error) {
	args := m.Called(ctx, tx, companyID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRun), args.Error(1)
}

func (m *MockPayrollRepository) ListRunsByCompany(ctx context.Context, companyID string) ([]domain.PayrollRun, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollRun), args.Error(1)
}

func (m *MockPayrollRepository) SaveRunInTx(ctx context.Context, tx pgx.Tx, run domain.PayrollRun) error {
	args := m.Called(ctx, tx, run)
	return args.Error(0)
}

// --- Mock LedgerPoster ---

type MockLedgerPoster struct {
	mock.Mock
}

var _ portssvc.LedgerPoster = (*MockLedgerPoster)(nil)

func (m *MockLedgerPoster) PostInTx(ctx context.Context, tx pgx.Tx, event domain.PostingEvent, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, event, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock FiscalYearService ---

type MockFiscalYearService struct {
	mock.Mock
}

var _ portssvc.FiscalYearSvcFacade = (*MockFiscalYearService)(nil)

func (m *MockFiscalYearService) CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearService) ResolveForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearService) CloseFiscalYear(ctx context.Context, companyID string, fiscalYearID string, userID string) error {
	args := m.Called(ctx, companyID, fiscalYearID, userID)
	return args.Error(0)
}

func (m *MockFiscalYearService) ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ResolveCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ResolveRole(ctx context.Context, companyID string, role domain.AccountRole) (*domain.Account, error) {
	args := m.Called(ctx, companyID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) SetRoleOverride(ctx context.Context, companyID string, req dto.SetRoleOverrideRequest, userID string) error {
	args := m.Called(ctx, companyID, req, userID)
	return args.Error(0)
}
