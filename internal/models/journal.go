package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry maps to the journal_entries table.
type JournalEntry struct {
	EntryID      string
	CompanyID    string
	FiscalYearID string
	EntryDate    time.Time
	Reference    string
	Description  string
	JournalType  string
	IsValidated  bool
	AuditFields
}

// JournalLine maps to the journal_lines table.
type JournalLine struct {
	LineID    string
	EntryID   string
	AccountID string
	Label     string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// FiscalYear maps to the fiscal_years table.
type FiscalYear struct {
	FiscalYearID string
	CompanyID    string
	Label        string
	StartDate    time.Time
	EndDate      time.Time
	IsClosed     bool
	AuditFields
}
