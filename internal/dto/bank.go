package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// CreateBankAccountRequest defines the payload for registering a bank account.
type CreateBankAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	IBAN           string          `json:"iban"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// BankAccountResponse is the API representation of a bank account.
type BankAccountResponse struct {
	BankAccountID  string          `json:"bankAccountID"`
	Name           string          `json:"name"`
	IBAN           string          `json:"iban"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// ImportBankTransactionRow is one statement line of a bulk import. Date accepts
// DD/MM/YYYY or YYYY-MM-DD.
type ImportBankTransactionRow struct {
	Date   string          `json:"date" binding:"required"`
	Label  string          `json:"label" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ImportBankTransactionsRequest defines the payload for a bulk statement import.
type ImportBankTransactionsRequest struct {
	Transactions []ImportBankTransactionRow `json:"transactions" binding:"required,min=1,dive"`
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	ImportedCount int             `json:"importedCount"`
	NewBalance    decimal.Decimal `json:"newBalance"`
}

// CreateBankTransactionRequest defines the payload for a single manual transaction.
type CreateBankTransactionRequest struct {
	BankAccountID string          `json:"bankAccountID" binding:"required"`
	Date          string          `json:"date" binding:"required"`
	Label         string          `json:"label" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// ReconcileTransactionRequest confirms a match between a bank transaction and an invoice.
type ReconcileTransactionRequest struct {
	InvoiceID   string           `json:"invoiceID" binding:"required"`
	InvoiceType domain.MatchSide `json:"invoiceType" binding:"required,oneof=client supplier"`
}

// BankTransactionResponse is the API representation of a bank transaction.
type BankTransactionResponse struct {
	TransactionID     string           `json:"transactionID"`
	BankAccountID     string           `json:"bankAccountID"`
	TransactionDate   time.Time        `json:"transactionDate"`
	Label             string           `json:"label"`
	Amount            decimal.Decimal  `json:"amount"`
	IsReconciled      bool             `json:"isReconciled"`
	ReconciledAt      *time.Time       `json:"reconciledAt,omitempty"`
	MatchedInvoiceID  *string          `json:"matchedInvoiceID,omitempty"`
	MatchedType       *domain.MatchSide `json:"matchedType,omitempty"`
	AssignedAccountID *string          `json:"assignedAccountID,omitempty"`
}

// ListBankTransactionsResponse is a page of bank transactions.
type ListBankTransactionsResponse struct {
	Transactions []BankTransactionResponse `json:"transactions"`
	NextToken    *string                   `json:"nextToken,omitempty"`
}

// CreateMatchingRuleRequest defines the payload for creating a bank matching rule.
type CreateMatchingRuleRequest struct {
	Name            string           `json:"name" binding:"required"`
	Priority        int              `json:"priority"`
	LabelContains   *string          `json:"labelContains"`
	AmountMin       *decimal.Decimal `json:"amountMin"`
	AmountMax       *decimal.Decimal `json:"amountMax"`
	AmountEquals    *decimal.Decimal `json:"amountEquals"`
	AssignAccountID string           `json:"assignAccountID" binding:"required"`
	AutoReconcile   bool             `json:"autoReconcile"`
}

// MatchingRuleResponse is the API representation of a bank matching rule.
type MatchingRuleResponse struct {
	RuleID          string           `json:"ruleID"`
	Name            string           `json:"name"`
	Priority        int              `json:"priority"`
	LabelContains   *string          `json:"labelContains,omitempty"`
	AmountMin       *decimal.Decimal `json:"amountMin,omitempty"`
	AmountMax       *decimal.Decimal `json:"amountMax,omitempty"`
	AmountEquals    *decimal.Decimal `json:"amountEquals,omitempty"`
	AssignAccountID string           `json:"assignAccountID"`
	AutoReconcile   bool             `json:"autoReconcile"`
	IsActive        bool             `json:"isActive"`
}

// ToBankAccountResponse converts a domain bank account.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:  a.BankAccountID,
		Name:           a.Name,
		IBAN:           a.IBAN,
		CurrentBalance: a.CurrentBalance,
	}
}

// ToBankTransactionResponse converts a domain bank transaction.
func ToBankTransactionResponse(t *domain.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		TransactionID:     t.TransactionID,
		BankAccountID:     t.BankAccountID,
		TransactionDate:   t.TransactionDate,
		Label:             t.Label,
		Amount:            t.Amount,
		IsReconciled:      t.IsReconciled,
		ReconciledAt:      t.ReconciledAt,
		MatchedInvoiceID:  t.MatchedInvoiceID,
		MatchedType:       t.MatchedType,
		AssignedAccountID: t.AssignedAccountID,
	}
}

// ToBankTransactionResponses converts a slice of domain bank transactions.
func ToBankTransactionResponses(txns []domain.BankTransaction) []BankTransactionResponse {
	resp := make([]BankTransactionResponse, len(txns))
	for i := range txns {
		resp[i] = ToBankTransactionResponse(&txns[i])
	}
	return resp
}

// ToMatchingRuleResponse converts a domain matching rule.
func ToMatchingRuleResponse(r *domain.BankMatchingRule) MatchingRuleResponse {
	return MatchingRuleResponse{
		RuleID:          r.RuleID,
		Name:            r.Name,
		Priority:        r.Priority,
		LabelContains:   r.LabelContains,
		AmountMin:       r.AmountMin,
		AmountMax:       r.AmountMax,
		AmountEquals:    r.AmountEquals,
		AssignAccountID: r.AssignAccountID,
		AutoReconcile:   r.AutoReconcile,
		IsActive:        r.IsActive,
	}
}

// ToMatchingRuleResponses converts a slice of domain matching rules.
func ToMatchingRuleResponses(rules []domain.BankMatchingRule) []MatchingRuleResponse {
	resp := make([]MatchingRuleResponse, len(rules))
	for i := range rules {
		resp[i] = ToMatchingRuleResponse(&rules[i])
	}
	return resp
}
