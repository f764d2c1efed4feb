package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalType identifies the journal a ledger entry is recorded in.
type JournalType string

const (
	JournalSales     JournalType = "SALES"
	JournalPurchases JournalType = "PURCHASES"
	JournalBank      JournalType = "BANK"
	JournalCash      JournalType = "CASH"
	JournalGeneral   JournalType = "GENERAL"
)

// JournalEntry is a balanced double-entry record: the sum of line debits equals the sum
// of line credits, exactly. Entries are immutable once persisted; there is no edit path.
type JournalEntry struct {
	EntryID      string      `json:"entryID"` // Primary key (UUID)
	CompanyID    string      `json:"companyID"`
	FiscalYearID string      `json:"fiscalYearID"`
	EntryDate    time.Time   `json:"entryDate"`
	Reference    string      `json:"reference"`
	Description  string      `json:"description"`
	JournalType  JournalType `json:"journalType"`
	IsValidated  bool        `json:"isValidated"`
	Lines        []JournalLine
	AuditFields
}

// JournalLine is one side-entry of a journal entry. Exactly one of Debit/Credit is
// positive, the other zero.
type JournalLine struct {
	LineID    string          `json:"lineID"` // Primary key (UUID)
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	Label     string          `json:"label"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// TotalDebit sums the debit side of all lines.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced reports whether the entry satisfies the double-entry invariant.
func (e JournalEntry) IsBalanced() bool {
	return len(e.Lines) >= 2 && e.TotalDebit().Equal(e.TotalCredit())
}
