package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/dto"
	"github.com/yaffasoft/sunucompta/internal/middleware"
)

var (
	// ErrYearRangeInvalid rejects a fiscal year whose end precedes its start.
	ErrYearRangeInvalid = fmt.Errorf("%w: fiscal year end date must be after start date", apperrors.ErrValidation)
)

// fiscalYearService implements the fiscal period resolver.
type fiscalYearService struct {
	fiscalYearRepo portsrepo.FiscalYearRepositoryFacade
}

// NewFiscalYearService creates a new fiscal year service.
func NewFiscalYearService(fiscalYearRepo portsrepo.FiscalYearRepositoryFacade) portssvc.FiscalYearSvcFacade {
	return &fiscalYearService{fiscalYearRepo: fiscalYearRepo}
}

var _ portssvc.FiscalYearSvcFacade = (*fiscalYearService)(nil)

// CreateFiscalYear opens a new fiscal year after checking that its range does not
// overlap an existing year of the company. The schema's exclusion constraint backs
// this check up against concurrent creations.
func (s *fiscalYearService) CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EndDate.After(req.StartDate) {
		return nil, ErrYearRangeInvalid
	}

	overlapping, err := s.fiscalYearRepo.ListOverlappingYears(ctx, companyID, req.StartDate, req.EndDate)
	if err != nil {
		logger.Error("Failed to check fiscal year overlap", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check fiscal year overlap: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, fmt.Errorf("%w: range overlaps fiscal year %s", apperrors.ErrConflict, overlapping[0].Label)
	}

	now := time.Now().UTC()
	year := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    companyID,
		Label:        req.Label,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsClosed:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.fiscalYearRepo.SaveFiscalYear(ctx, year); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: range overlaps an existing fiscal year", apperrors.ErrConflict)
		}
		logger.Error("Failed to save fiscal year", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save fiscal year: %w", err)
	}

	logger.Info("Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID), slog.String("label", year.Label))
	return &year, nil
}

// ResolveForDate finds the open fiscal year containing the date. The no-overlap
// invariant guarantees at most one. A date outside every open year is a posting
// prerequisite failure for the caller.
func (s *fiscalYearService) ResolveForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalYear, error) {
	year, err := s.fiscalYearRepo.FindOpenYearForDate(ctx, companyID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no open fiscal year covers %s", apperrors.ErrPostingSkipped, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to resolve fiscal year: %w", err)
	}
	return year, nil
}

// CloseFiscalYear marks the year closed.
func (s *fiscalYearService) CloseFiscalYear(ctx context.Context, companyID string, fiscalYearID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	year, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return err
	}
	if year.CompanyID != companyID {
		return apperrors.ErrNotFound
	}
	if year.IsClosed {
		return fmt.Errorf("%w: fiscal year %s is already closed", apperrors.ErrConflict, year.Label)
	}

	if err := s.fiscalYearRepo.CloseFiscalYear(ctx, fiscalYearID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to close fiscal year", slog.String("error", err.Error()), slog.String("fiscal_year_id", fiscalYearID))
		return fmt.Errorf("failed to close fiscal year: %w", err)
	}

	logger.Info("Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	return nil
}

// ListFiscalYears retrieves the company's fiscal years, newest first.
func (s *fiscalYearService) ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	years, err := s.fiscalYearRepo.ListFiscalYearsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	return years, nil
}
