package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount maps to the bank_accounts table.
type BankAccount struct {
	BankAccountID  string
	CompanyID      string
	Name           string
	IBAN           string
	CurrentBalance decimal.Decimal
	AuditFields
}

// BankTransaction maps to the bank_transactions table.
type BankTransaction struct {
	TransactionID     string
	BankAccountID     string
	CompanyID         string
	TransactionDate   time.Time
	Label             string
	Amount            decimal.Decimal
	IsReconciled      bool
	ReconciledAt      *time.Time
	MatchedInvoiceID  *string
	MatchedType       *string
	AssignedAccountID *string
	AuditFields
}

// BankMatchingRule maps to the bank_matching_rules table.
type BankMatchingRule struct {
	RuleID          string
	CompanyID       string
	Name            string
	Priority        int
	LabelContains   *string
	AmountMin       *decimal.Decimal
	AmountMax       *decimal.Decimal
	AmountEquals    *decimal.Decimal
	AssignAccountID string
	AutoReconcile   bool
	IsActive        bool
	AuditFields
}
