package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// BankAccountReader defines read operations for bank accounts.
type BankAccountReader interface {
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// FindBankAccountByIDForUpdate retrieves a bank account and locks its row so
	// concurrent imports against the same account serialize their balance updates.
	FindBankAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, bankAccountID string) (*domain.BankAccount, error)

	ListBankAccountsByCompany(ctx context.Context, companyID string) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank accounts.
type BankAccountWriter interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateBankAccountBalanceInTx sets the running balance inside the caller's
	// transaction, alongside the transaction rows that changed it.
	UpdateBankAccountBalanceInTx(ctx context.Context, tx pgx.Tx, bankAccountID string, newBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error
}

// BankTransactionReader defines read operations for bank transactions.
type BankTransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error)

	// FindTransactionByIDForUpdate locks the transaction row so the reconciled-once
	// guarantee holds under concurrent confirmation requests.
	FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.BankTransaction, error)

	ListTransactionsByBankAccount(ctx context.Context, bankAccountID string, limit int, nextToken *string) ([]domain.BankTransaction, *string, error)
}

// BankTransactionWriter defines write operations for bank transactions.
type BankTransactionWriter interface {
	// InsertTransactionsInTx inserts the given transactions, in order, inside the
	// caller's transaction.
	InsertTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.BankTransaction) error

	// UpdateTransactionMatch records a soft match (matched invoice and side) without
	// touching the reconciliation flag. Runs outside any transaction: soft matching
	// is best effort.
	UpdateTransactionMatch(ctx context.Context, transactionID string, invoiceID string, side domain.MatchSide, updatedBy string, updatedAt time.Time) error

	// MarkTransactionReconciledInTx flips the terminal reconciliation flag and
	// records the matched invoice inside the caller's transaction.
	MarkTransactionReconciledInTx(ctx context.Context, tx pgx.Tx, transactionID string, invoiceID string, side domain.MatchSide, reconciledAt time.Time, updatedBy string) error
}

// MatchingRuleReader defines read operations for bank matching rules.
type MatchingRuleReader interface {
	// ListActiveRulesByCompany returns the company's active rules ordered by
	// priority descending, creation time ascending.
	ListActiveRulesByCompany(ctx context.Context, companyID string) ([]domain.BankMatchingRule, error)
}

// MatchingRuleWriter defines write operations for bank matching rules.
type MatchingRuleWriter interface {
	SaveMatchingRule(ctx context.Context, rule domain.BankMatchingRule) error
}

// BankRepositoryFacade combines all bank-related repository interfaces.
type BankRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	BankTransactionReader
	BankTransactionWriter
}

// MatchingRuleRepositoryFacade combines the matching rule repository interfaces.
type MatchingRuleRepositoryFacade interface {
	MatchingRuleReader
	MatchingRuleWriter
}
