package services

import (
	"context"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
	"github.com/yaffasoft/sunucompta/internal/dto"
)

// BankSvcFacade ingests bank transactions and manages matching rules.
type BankSvcFacade interface {
	// CreateBankAccount registers a bank account with an opening balance.
	CreateBankAccount(ctx context.Context, companyID string, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error)

	// GetBankAccountByID retrieves a bank account scoped to the company.
	GetBankAccountByID(ctx context.Context, companyID string, bankAccountID string) (*domain.BankAccount, error)

	// ImportBatch bulk-ingests statement lines: per-row date normalization and rule
	// evaluation, then every insert plus one balance increment in a single
	// transaction. A partial import is never visible.
	ImportBatch(ctx context.Context, companyID string, bankAccountID string, req dto.ImportBankTransactionsRequest, userID string) (*dto.ImportResult, error)

	// CreateTransaction records a single manual transaction (atomically with the
	// balance update), then soft-matches it against open invoices on a best-effort
	// basis. Soft-match failures never fail the creation.
	CreateTransaction(ctx context.Context, companyID string, req dto.CreateBankTransactionRequest, userID string) (*domain.BankTransaction, error)

	// ListTransactions retrieves a paginated list of a bank account's transactions.
	ListTransactions(ctx context.Context, companyID string, bankAccountID string, limit int, nextToken *string) (*dto.ListBankTransactionsResponse, error)

	// CreateMatchingRule creates a company matching rule.
	CreateMatchingRule(ctx context.Context, companyID string, req dto.CreateMatchingRuleRequest, creatorUserID string) (*domain.BankMatchingRule, error)

	// ListMatchingRules retrieves the company's active rules, highest priority first.
	ListMatchingRules(ctx context.Context, companyID string) ([]domain.BankMatchingRule, error)
}

// ReconciliationSvcFacade turns a confirmed match into a posted payment.
type ReconciliationSvcFacade interface {
	// Reconcile marks the transaction reconciled (exactly once; a second call is a
	// conflict), creates a BANK_TRANSFER payment for |amount|, updates the target
	// invoice's paid total and status, and posts the payment entry, all in one
	// transaction.
	Reconcile(ctx context.Context, companyID string, transactionID string, req dto.ReconcileTransactionRequest, userID string) (*domain.BankTransaction, error)
}
