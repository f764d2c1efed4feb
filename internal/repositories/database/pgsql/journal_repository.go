package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	"github.com/yaffasoft/sunucompta/internal/models"
	"github.com/yaffasoft/sunucompta/internal/utils/pagination"
)

type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// newPgxJournalRepository creates a new repository for posted ledger data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{pool: pool}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func toDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		CompanyID:    m.CompanyID,
		FiscalYearID: m.FiscalYearID,
		EntryDate:    m.EntryDate,
		Reference:    m.Reference,
		Description:  m.Description,
		JournalType:  domain.JournalType(m.JournalType),
		IsValidated:  m.IsValidated,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const journalEntryColumns = `entry_id, company_id, fiscal_year_id, entry_date, reference, description, journal_type, is_validated, created_at, created_by, last_updated_at, last_updated_by`

// SaveEntryInTx persists an entry and its lines inside the caller's transaction.
// Entries are insert-only; there is no update path.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	entryQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.CompanyID,
		entry.FiscalYearID,
		entry.EntryDate,
		entry.Reference,
		entry.Description,
		string(entry.JournalType),
		entry.IsValidated,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save journal entry %s: %w", entry.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, label, debit, credit, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for i, line := range entry.Lines {
		if _, err := tx.Exec(ctx, lineQuery,
			line.LineID,
			entry.EntryID,
			line.AccountID,
			line.Label,
			line.Debit,
			line.Credit,
			i,
		); err != nil {
			return fmt.Errorf("failed to save journal line %s: %w", line.LineID, err)
		}
	}
	return nil
}

// FindEntryByID retrieves a journal entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	var m models.JournalEntry
	err := r.pool.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.FiscalYearID,
		&m.EntryDate,
		&m.Reference,
		&m.Description,
		&m.JournalType,
		&m.IsValidated,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	entry := toDomainJournalEntry(m)
	lines, err := r.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

// FindLinesByEntryID retrieves the ordered lines of one entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, label, debit, credit
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_order ASC;
	`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.Label, &m.Debit, &m.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, domain.JournalLine{
			LineID:    m.LineID,
			EntryID:   m.EntryID,
			AccountID: m.AccountID,
			Label:     m.Label,
			Debit:     m.Debit,
			Credit:    m.Credit,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return lines, nil
}

// ListEntriesByCompany retrieves a paginated list of entries, newest first, using
// (entry_date, created_at) token pagination.
func (r *PgxJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	baseQuery := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE company_id = $1`
	args := []any{companyID}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		baseQuery += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, entryDate, createdAt)
	}

	baseQuery += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // Fetch one extra to detect a next page

	rows, err := r.pool.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.CompanyID,
			&m.FiscalYearID,
			&m.EntryDate,
			&m.Reference,
			&m.Description,
			&m.JournalType,
			&m.IsValidated,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, toDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}
