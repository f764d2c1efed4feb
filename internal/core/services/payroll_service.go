package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/dto"
	"github.com/yaffasoft/sunucompta/internal/middleware"
)

// payrollService aggregates monthly payroll runs and posts them as one entry.
type payrollService struct {
	txm         portsrepo.TransactionManager
	payrollRepo portsrepo.PayrollRepositoryFacade
	poster      portssvc.LedgerPoster
}

// NewPayrollService creates a new payroll run service.
func NewPayrollService(txm portsrepo.TransactionManager, payrollRepo portsrepo.PayrollRepositoryFacade, poster portssvc.LedgerPoster) portssvc.PayrollSvcFacade {
	return &payrollService{
		txm:         txm,
		payrollRepo: payrollRepo,
		poster:      poster,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// CreateRun records a payroll run for a period and posts the aggregate entry.
func (s *payrollService) CreateRun(ctx context.Context, companyID string, req dto.CreatePayrollRunRequest, creatorUserID string) (*domain.PayrollRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := time.Parse("2006-01", req.Period); err != nil {
		return nil, fmt.Errorf("%w: period %q must be YYYY-MM", apperrors.ErrValidation, req.Period)
	}
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: a payroll run needs at least one line", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	runID := uuid.NewString()
	run := domain.PayrollRun{
		RunID:     runID,
		CompanyID: companyID,
		Period:    req.Period,
		RunDate:   req.RunDate,
		Status:    domain.PayrollPosted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	totalGross, totalCharges, totalNet := decimal.Zero, decimal.Zero, decimal.Zero
	for i, line := range req.Lines {
		if line.Gross.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line %d: gross must be positive", apperrors.ErrValidation, i+1)
		}
		if line.EmployerCharges.IsNegative() {
			return nil, fmt.Errorf("%w: line %d: employer charges must not be negative", apperrors.ErrValidation, i+1)
		}
		if line.Net.LessThanOrEqual(decimal.Zero) || line.Net.GreaterThan(line.Gross) {
			return nil, fmt.Errorf("%w: line %d: net must be positive and at most gross", apperrors.ErrValidation, i+1)
		}

		totalGross = totalGross.Add(line.Gross)
		totalCharges = totalCharges.Add(line.EmployerCharges)
		totalNet = totalNet.Add(line.Net)
		run.Lines = append(run.Lines, domain.PayrollLine{
			LineID:          uuid.NewString(),
			RunID:           runID,
			EmployeeName:    line.EmployeeName,
			Gross:           line.Gross,
			EmployerCharges: line.EmployerCharges,
			Net:             line.Net,
		})
	}
	run.TotalGross = totalGross
	run.TotalEmployerCharges = totalCharges
	run.TotalNet = totalNet

	err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		existing, err := s.payrollRepo.FindRunByPeriodInTx(ctx, tx, companyID, req.Period)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: a payroll run already exists for period %s", apperrors.ErrConflict, req.Period)
		}

		if err := s.payrollRepo.SaveRunInTx(ctx, tx, run); err != nil {
			return err
		}

		if _, err := s.poster.PostInTx(ctx, tx, domain.PayrollRunEvent(run), creatorUserID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		logger.Warn("Payroll run failed", slog.String("period", req.Period), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payroll run posted",
		slog.String("run_id", runID),
		slog.String("period", req.Period),
		slog.String("total_gross", totalGross.String()),
	)
	return &run, nil
}

// GetRunByID retrieves a payroll run scoped to the company.
func (s *payrollService) GetRunByID(ctx context.Context, companyID string, runID string) (*domain.PayrollRun, error) {
	run, err := s.payrollRepo.FindRunByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return run, nil
}

// ListRuns retrieves the company's payroll runs, newest period first.
func (s *payrollService) ListRuns(ctx context.Context, companyID string) ([]domain.PayrollRun, error) {
	return s.payrollRepo.ListRunsByCompany(ctx, companyID)
}
