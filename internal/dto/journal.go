package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// JournalLineResponse is the API representation of a journal line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Label     string          `json:"label"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryResponse is the API representation of a posted journal entry.
type JournalEntryResponse struct {
	EntryID      string                `json:"entryID"`
	FiscalYearID string                `json:"fiscalYearID"`
	EntryDate    time.Time             `json:"entryDate"`
	Reference    string                `json:"reference"`
	Description  string                `json:"description"`
	JournalType  domain.JournalType    `json:"journalType"`
	IsValidated  bool                  `json:"isValidated"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesParams holds pagination parameters for entry listings.
type ListJournalEntriesParams struct {
	Limit     int
	NextToken *string
}

// ListJournalEntriesResponse is a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain journal entry with its lines.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Label:     l.Label,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}
	return JournalEntryResponse{
		EntryID:      e.EntryID,
		FiscalYearID: e.FiscalYearID,
		EntryDate:    e.EntryDate,
		Reference:    e.Reference,
		Description:  e.Description,
		JournalType:  e.JournalType,
		IsValidated:  e.IsValidated,
		Lines:        lines,
	}
}
