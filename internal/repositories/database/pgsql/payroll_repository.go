package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	"github.com/yaffasoft/sunucompta/internal/models"
)

type PgxPayrollRepository struct {
	pool *pgxpool.Pool
}

// newPgxPayrollRepository creates a new repository for payroll runs.
func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepositoryFacade {
	return &PgxPayrollRepository{pool: pool}
}

var _ portsrepo.PayrollRepositoryFacade = (*PgxPayrollRepository)(nil)

func toDomainPayrollRun(m models.PayrollRun) domain.PayrollRun {
	return domain.PayrollRun{
		RunID:                m.RunID,
		CompanyID:            m.CompanyID,
		Period:               m.Period,
		RunDate:              m.RunDate,
		TotalGross:           m.TotalGross,
		TotalEmployerCharges: m.TotalEmployerCharges,
		TotalNet:             m.TotalNet,
		Status:               domain.PayrollRunStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const payrollRunColumns = `run_id, company_id, period, run_date, total_gross, total_employer_charges, total_net, status, created_at, created_by, last_updated_at, last_updated_by`

func scanPayrollRun(row pgx.Row) (*domain.PayrollRun, error) {
	var m models.PayrollRun
	err := row.Scan(
		&m.RunID,
		&m.CompanyID,
		&m.Period,
		&m.RunDate,
		&m.TotalGross,
		&m.TotalEmployerCharges,
		&m.TotalNet,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan payroll run: %w", err)
	}
	run := toDomainPayrollRun(m)
	return &run, nil
}

// SaveRunInTx persists a run and its lines inside the caller's transaction. The unique
// (company_id, period) constraint backstops the service-level duplicate check.
func (r *PgxPayrollRepository) SaveRunInTx(ctx context.Context, tx pgx.Tx, run domain.PayrollRun) error {
	runQuery := `
		INSERT INTO payroll_runs (` + payrollRunColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, runQuery,
		run.RunID,
		run.CompanyID,
		run.Period,
		run.RunDate,
		run.TotalGross,
		run.TotalEmployerCharges,
		run.TotalNet,
		string(run.Status),
		run.CreatedAt,
		run.CreatedBy,
		run.LastUpdatedAt,
		run.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: a payroll run already exists for period %s", apperrors.ErrConflict, run.Period)
		}
		return fmt.Errorf("failed to save payroll run %s: %w", run.RunID, err)
	}

	lineQuery := `
		INSERT INTO payroll_lines (line_id, run_id, employee_name, gross, employer_charges, net)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range run.Lines {
		if _, err := tx.Exec(ctx, lineQuery,
			line.LineID,
			run.RunID,
			line.EmployeeName,
			line.Gross,
			line.EmployerCharges,
			line.Net,
		); err != nil {
			return fmt.Errorf("failed to save payroll line %s: %w", line.LineID, err)
		}
	}
	return nil
}

// FindRunByID retrieves a payroll run with its lines.
func (r *PgxPayrollRepository) FindRunByID(ctx context.Context, runID string) (*domain.PayrollRun, error) {
	query := `SELECT ` + payrollRunColumns + ` FROM payroll_runs WHERE run_id = $1;`
	run, err := scanPayrollRun(r.pool.QueryRow(ctx, query, runID))
	if err != nil {
		return nil, err
	}

	lines, err := r.findLinesByRunID(ctx, runID)
	if err != nil {
		return nil, err
	}
	run.Lines = lines
	return run, nil
}

// FindRunByPeriodInTx looks up a run for (company, period) inside the caller's
// transaction.
func (r *PgxPayrollRepository) FindRunByPeriodInTx(ctx context.Context, tx pgx.Tx, companyID string, period string) (*domain.PayrollRun, error) {
	query := `SELECT ` + payrollRunColumns + ` FROM payroll_runs WHERE company_id = $1 AND period = $2;`
	return scanPayrollRun(tx.QueryRow(ctx, query, companyID, period))
}

// ListRunsByCompany retrieves the company's payroll runs, newest period first.
func (r *PgxPayrollRepository) ListRunsByCompany(ctx context.Context, companyID string) ([]domain.PayrollRun, error) {
	query := `SELECT ` + payrollRunColumns + ` FROM payroll_runs WHERE company_id = $1 ORDER BY period DESC;`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.PayrollRun
	for rows.Next() {
		var m models.PayrollRun
		if err := rows.Scan(
			&m.RunID,
			&m.CompanyID,
			&m.Period,
			&m.RunDate,
			&m.TotalGross,
			&m.TotalEmployerCharges,
			&m.TotalNet,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll run row: %w", err)
		}
		runs = append(runs, toDomainPayrollRun(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payroll run rows: %w", err)
	}
	return runs, nil
}

func (r *PgxPayrollRepository) findLinesByRunID(ctx context.Context, runID string) ([]domain.PayrollLine, error) {
	query := `
		SELECT line_id, run_id, employee_name, gross, employer_charges, net
		FROM payroll_lines
		WHERE run_id = $1
		ORDER BY employee_name ASC;
	`
	rows, err := r.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.PayrollLine
	for rows.Next() {
		var m models.PayrollLine
		if err := rows.Scan(&m.LineID, &m.RunID, &m.EmployeeName, &m.Gross, &m.EmployerCharges, &m.Net); err != nil {
			return nil, fmt.Errorf("failed to scan payroll line row: %w", err)
		}
		lines = append(lines, domain.PayrollLine{
			LineID:          m.LineID,
			RunID:           m.RunID,
			EmployeeName:    m.EmployeeName,
			Gross:           m.Gross,
			EmployerCharges: m.EmployerCharges,
			Net:             m.Net,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payroll line rows: %w", err)
	}
	return lines, nil
}
