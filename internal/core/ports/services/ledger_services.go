package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
	"github.com/yaffasoft/sunucompta/internal/dto"
)

// LedgerPoster turns a posting event into one balanced, persisted journal entry.
// It is consumed by the invoice, payment, reconciliation and payroll services.
type LedgerPoster interface {
	// PostInTx resolves the event's roles and fiscal year, builds a balanced entry
	// and persists it inside the caller's transaction. A missing account or fiscal
	// year surfaces as apperrors.ErrPostingSkipped and must abort the caller's
	// whole transaction: no business state change may survive without its ledger
	// counterpart.
	PostInTx(ctx context.Context, tx pgx.Tx, event domain.PostingEvent, creatorUserID string) (*domain.JournalEntry, error)
}

// LedgerSvcFacade combines posting with read access to the posted ledger.
type LedgerSvcFacade interface {
	LedgerPoster

	// GetEntryByID retrieves a journal entry with its lines, scoped to the company.
	GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of the company's journal entries.
	ListEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}
