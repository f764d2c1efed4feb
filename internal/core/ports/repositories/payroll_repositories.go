package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// PayrollReader defines read operations for payroll runs.
type PayrollReader interface {
	FindRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error)

	// FindRunByPeriodInTx looks up a run for (company, period) inside the caller's
	// transaction, so the one-run-per-period check serializes with the insert.
	FindRunByPeriodInTx(ctx context.Context, tx pgx.Tx, companyID string, period string) (*domain.PayrollRun, error)

	ListRunsByCompany(ctx context.Context, companyID string) ([]domain.PayrollRun, error)
}

// PayrollWriter defines write operations for payroll runs.
type PayrollWriter interface {
	// SaveRunInTx persists a run and its lines inside the caller's transaction.
	// A duplicate (company, period) surfaces as apperrors.ErrConflict.
	SaveRunInTx(ctx context.Context, tx pgx.Tx, run domain.PayrollRun) error
}

// PayrollRepositoryFacade combines the payroll repository interfaces.
type PayrollRepositoryFacade interface {
	PayrollReader
	PayrollWriter
}
