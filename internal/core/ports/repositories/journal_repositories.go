package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// JournalReader defines read operations for posted ledger data.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByCompany retrieves a paginated list of journal entries using
	// token-based pagination. Returns the entries, a token for the next page, and
	// an error.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// FindLinesByEntryID retrieves the ordered lines of one entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
}

// JournalWriter defines write operations for posted ledger data.
type JournalWriter interface {
	// SaveEntryInTx persists an entry and all of its lines inside the caller's
	// transaction. The entry must already be balanced; the repository does not
	// re-validate business invariants.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
