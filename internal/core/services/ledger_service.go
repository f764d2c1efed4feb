package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/dto"
	"github.com/yaffasoft/sunucompta/internal/middleware"
)

var (
	ErrEntryUnbalanced  = errors.New("journal entry debits and credits do not balance")
	ErrEntryMinLines    = errors.New("journal entry must have at least two lines")
	ErrLineAmountMixed  = errors.New("journal line must carry either a debit or a credit, not both")
	ErrLineAmountSigned = errors.New("journal line amounts must not be negative")
)

// ledgerService builds and persists balanced journal entries from posting events.
type ledgerService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	fiscalSvc   portssvc.FiscalYearSvcFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, fiscalSvc portssvc.FiscalYearSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		fiscalSvc:   fiscalSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostInTx resolves the event into a balanced journal entry and persists it inside
// the caller's transaction. Any missing prerequisite (open fiscal year, account code)
// returns an error wrapping apperrors.ErrPostingSkipped so the caller's transaction
// rolls back: a SENT invoice or PAID status must never exist without its entry.
func (s *ledgerService) PostInTx(ctx context.Context, tx pgx.Tx, event domain.PostingEvent, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fiscalYear, err := s.fiscalSvc.ResolveForDate(ctx, event.CompanyID, event.Date)
	if err != nil {
		return nil, err
	}

	lines, err := s.buildLines(ctx, event)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:      uuid.NewString(),
		CompanyID:    event.CompanyID,
		FiscalYearID: fiscalYear.FiscalYearID,
		EntryDate:    event.Date,
		Reference:    event.Reference,
		Description:  event.Description,
		JournalType:  event.JournalType,
		IsValidated:  true,
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for i := range entry.Lines {
		entry.Lines[i].EntryID = entry.EntryID
	}

	if !entry.IsBalanced() {
		// Posting events are built by this package, so an unbalanced entry is a bug.
		logger.Error("Unbalanced posting event",
			slog.String("reference", event.Reference),
			slog.String("debits", entry.TotalDebit().String()),
			slog.String("credits", entry.TotalCredit().String()))
		return nil, fmt.Errorf("%w: debits %s, credits %s", ErrEntryUnbalanced, entry.TotalDebit(), entry.TotalCredit())
	}

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("journal", string(entry.JournalType)),
		slog.String("amount", entry.TotalDebit().String()))
	return &entry, nil
}

// buildLines resolves event line roles to accounts and validates line shape.
// Zero-amount lines are dropped (e.g. the VAT line of a VAT-free invoice).
func (s *ledgerService) buildLines(ctx context.Context, event domain.PostingEvent) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, 0, len(event.Lines))
	for _, evLine := range event.Lines {
		if evLine.Debit.IsNegative() || evLine.Credit.IsNegative() {
			return nil, ErrLineAmountSigned
		}
		if evLine.Debit.IsPositive() && evLine.Credit.IsPositive() {
			return nil, ErrLineAmountMixed
		}
		if evLine.Debit.IsZero() && evLine.Credit.IsZero() {
			continue
		}

		account, err := s.accountSvc.ResolveRole(ctx, event.CompanyID, evLine.Role)
		if err != nil {
			return nil, err
		}

		lines = append(lines, domain.JournalLine{
			LineID:    uuid.NewString(),
			AccountID: account.AccountID,
			Label:     evLine.Label,
			Debit:     evLine.Debit,
			Credit:    evLine.Credit,
		})
	}

	if len(lines) < 2 {
		return nil, ErrEntryMinLines
	}
	return lines, nil
}

// GetEntryByID retrieves a journal entry with its lines, scoped to the company.
func (s *ledgerService) GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound // Obscure existence
	}
	return entry, nil
}

// ListEntries retrieves a paginated list of the company's journal entries.
func (s *ledgerService) ListEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByCompany(ctx, companyID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListJournalEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}
