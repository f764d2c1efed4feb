package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	"github.com/yaffasoft/sunucompta/internal/models"
)

type PgxFiscalYearRepository struct {
	pool *pgxpool.Pool
}

// newPgxFiscalYearRepository creates a new repository for fiscal year data.
func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryFacade {
	return &PgxFiscalYearRepository{pool: pool}
}

var _ portsrepo.FiscalYearRepositoryFacade = (*PgxFiscalYearRepository)(nil)

func toDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID: m.FiscalYearID,
		CompanyID:    m.CompanyID,
		Label:        m.Label,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsClosed:     m.IsClosed,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const fiscalYearColumns = `fiscal_year_id, company_id, label, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by`

func scanFiscalYear(row pgx.Row) (*domain.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID,
		&m.CompanyID,
		&m.Label,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan fiscal year: %w", err)
	}
	fy := toDomainFiscalYear(m)
	return &fy, nil
}

// SaveFiscalYear inserts a new fiscal year. The schema carries an exclusion constraint
// on (company_id, daterange(start_date, end_date)) that backstops the service-level
// overlap check under concurrent creation.
func (r *PgxFiscalYearRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	query := `
		INSERT INTO fiscal_years (fiscal_year_id, company_id, label, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		year.FiscalYearID,
		year.CompanyID,
		year.Label,
		year.StartDate,
		year.EndDate,
		year.IsClosed,
		year.CreatedAt,
		year.CreatedBy,
		year.LastUpdatedAt,
		year.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23P01": // Exclusion violation: overlapping range
				return fmt.Errorf("%w: fiscal year overlaps an existing year", apperrors.ErrConflict)
			case "23505":
				return fmt.Errorf("%w: fiscal year %s already exists", apperrors.ErrDuplicate, year.FiscalYearID)
			}
		}
		return fmt.Errorf("failed to save fiscal year %s: %w", year.FiscalYearID, err)
	}
	return nil
}

// FindFiscalYearByID retrieves a fiscal year by its ID.
func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE fiscal_year_id = $1;`
	return scanFiscalYear(r.pool.QueryRow(ctx, query, fiscalYearID))
}

// FindOpenYearForDate finds the open fiscal year containing the date, boundaries
// included.
func (r *PgxFiscalYearRepository) FindOpenYearForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalYear, error) {
	query := `
		SELECT ` + fiscalYearColumns + `
		FROM fiscal_years
		WHERE company_id = $1 AND is_closed = FALSE AND start_date <= $2::date AND end_date >= $2::date;
	`
	return scanFiscalYear(r.pool.QueryRow(ctx, query, companyID, date))
}

// ListFiscalYearsByCompany retrieves all fiscal years of a company, newest first.
func (r *PgxFiscalYearRepository) ListFiscalYearsByCompany(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE company_id = $1 ORDER BY start_date DESC;`
	return r.queryYears(ctx, query, companyID)
}

// ListOverlappingYears returns fiscal years intersecting [startDate, endDate].
func (r *PgxFiscalYearRepository) ListOverlappingYears(ctx context.Context, companyID string, startDate, endDate time.Time) ([]domain.FiscalYear, error) {
	query := `
		SELECT ` + fiscalYearColumns + `
		FROM fiscal_years
		WHERE company_id = $1 AND start_date <= $3::date AND end_date >= $2::date
		ORDER BY start_date ASC;
	`
	return r.queryYears(ctx, query, companyID, startDate, endDate)
}

func (r *PgxFiscalYearRepository) queryYears(ctx context.Context, query string, args ...any) ([]domain.FiscalYear, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal years: %w", err)
	}
	defer rows.Close()

	var years []domain.FiscalYear
	for rows.Next() {
		var m models.FiscalYear
		if err := rows.Scan(
			&m.FiscalYearID,
			&m.CompanyID,
			&m.Label,
			&m.StartDate,
			&m.EndDate,
			&m.IsClosed,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fiscal year row: %w", err)
		}
		years = append(years, toDomainFiscalYear(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal year rows: %w", err)
	}
	return years, nil
}

// CloseFiscalYear marks a fiscal year closed.
func (r *PgxFiscalYearRepository) CloseFiscalYear(ctx context.Context, fiscalYearID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE fiscal_years
		SET is_closed = TRUE, last_updated_by = $2, last_updated_at = $3
		WHERE fiscal_year_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, fiscalYearID, updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to close fiscal year %s: %w", fiscalYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
