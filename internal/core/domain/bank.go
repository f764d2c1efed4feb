package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount holds a running signed balance, updated only atomically alongside the
// bank transactions that changed it.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"` // Primary key (UUID)
	CompanyID      string          `json:"companyID"`
	Name           string          `json:"name"`
	IBAN           string          `json:"iban"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AuditFields
}

// MatchSide says which side of the books a bank transaction was matched against.
type MatchSide string

const (
	MatchClient   MatchSide = "client"
	MatchSupplier MatchSide = "supplier"
)

// BankTransaction is an external bank statement line. Amount is signed: positive is an
// inflow (credit), negative an outflow (debit). IsReconciled is set exactly once and is
// terminal.
type BankTransaction struct {
	TransactionID     string          `json:"transactionID"` // Primary key (UUID)
	BankAccountID     string          `json:"bankAccountID"`
	CompanyID         string          `json:"companyID"`
	TransactionDate   time.Time       `json:"transactionDate"`
	Label             string          `json:"label"`
	Amount            decimal.Decimal `json:"amount"` // Signed
	IsReconciled      bool            `json:"isReconciled"`
	ReconciledAt      *time.Time      `json:"reconciledAt,omitempty"`
	MatchedInvoiceID  *string         `json:"matchedInvoiceID,omitempty"`
	MatchedType       *MatchSide      `json:"matchedType,omitempty"`
	AssignedAccountID *string         `json:"assignedAccountID,omitempty"`
	AuditFields
}

// BankMatchingRule auto-assigns an account to imported bank transactions. Rules are
// evaluated in priority-descending order; the first rule whose conditions all hold wins.
// Unset condition fields always hold.
type BankMatchingRule struct {
	RuleID          string           `json:"ruleID"` // Primary key (UUID)
	CompanyID       string           `json:"companyID"`
	Name            string           `json:"name"`
	Priority        int              `json:"priority"` // Higher evaluated first
	LabelContains   *string          `json:"labelContains,omitempty"`
	AmountMin       *decimal.Decimal `json:"amountMin,omitempty"`
	AmountMax       *decimal.Decimal `json:"amountMax,omitempty"`
	AmountEquals    *decimal.Decimal `json:"amountEquals,omitempty"`
	AssignAccountID string           `json:"assignAccountID"`
	AutoReconcile   bool             `json:"autoReconcile"`
	IsActive        bool             `json:"isActive"`
	AuditFields
}
