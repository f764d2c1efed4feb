package repositories

import (
	"context"
	"time"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal year data.
type FiscalYearReader interface {
	// FindFiscalYearByID retrieves a fiscal year by its unique identifier.
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// FindOpenYearForDate finds the open fiscal year of the company whose date range
	// contains the given date. Returns apperrors.ErrNotFound when none does.
	FindOpenYearForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalYear, error)

	// ListFiscalYearsByCompany retrieves all fiscal years of a company, newest first.
	ListFiscalYearsByCompany(ctx context.Context, companyID string) ([]domain.FiscalYear, error)

	// ListOverlappingYears returns fiscal years of the company whose range intersects
	// [startDate, endDate], closed ones included.
	ListOverlappingYears(ctx context.Context, companyID string, startDate, endDate time.Time) ([]domain.FiscalYear, error)
}

// FiscalYearWriter defines write operations for fiscal year data.
type FiscalYearWriter interface {
	// SaveFiscalYear inserts a new fiscal year. An overlap with an existing year of
	// the same company surfaces as apperrors.ErrConflict (schema exclusion constraint).
	SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error

	// CloseFiscalYear marks a fiscal year closed.
	CloseFiscalYear(ctx context.Context, fiscalYearID string, updatedBy string, updatedAt time.Time) error
}

// FiscalYearRepositoryFacade combines all fiscal-year repository interfaces.
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
}
