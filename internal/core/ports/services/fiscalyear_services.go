package services

import (
	"context"
	"time"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
	"github.com/yaffasoft/sunucompta/internal/dto"
)

// FiscalYearSvcFacade is the fiscal period resolver.
type FiscalYearSvcFacade interface {
	// CreateFiscalYear opens a new fiscal year. Overlapping an existing year of the
	// company is rejected with apperrors.ErrConflict.
	CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error)

	// ResolveForDate finds the open fiscal year containing the date. When none does,
	// it returns apperrors.ErrPostingSkipped: callers must treat this as fatal for
	// the posting they are attempting.
	ResolveForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalYear, error)

	// CloseFiscalYear marks the year closed. Already-closed years are a conflict.
	CloseFiscalYear(ctx context.Context, companyID string, fiscalYearID string, userID string) error

	// ListFiscalYears retrieves the company's fiscal years, newest first.
	ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error)
}
