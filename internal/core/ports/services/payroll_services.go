package services

import (
	"context"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
	"github.com/yaffasoft/sunucompta/internal/dto"
)

// PayrollSvcFacade aggregates monthly payroll runs and posts them to the ledger.
// Gross-to-net computation happens upstream; amounts arrive precomputed.
type PayrollSvcFacade interface {
	// CreateRun records the run for a period and posts the aggregate entry,
	// atomically. A second run for the same (company, period) is a conflict.
	CreateRun(ctx context.Context, companyID string, req dto.CreatePayrollRunRequest, creatorUserID string) (*domain.PayrollRun, error)

	// GetRunByID retrieves a payroll run scoped to the company.
	GetRunByID(ctx context.Context, companyID string, runID string) (*domain.PayrollRun, error)

	// ListRuns retrieves the company's payroll runs, newest period first.
	ListRuns(ctx context.Context, companyID string) ([]domain.PayrollRun, error)
}
