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

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID: d.AccountID,
		CompanyID: d.CompanyID,
		Code:      d.Code,
		Label:     d.Label,
		Type:      models.AccountType(d.Type),
		IsActive:  d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID: m.AccountID,
		CompanyID: m.CompanyID,
		Code:      m.Code,
		Label:     m.Label,
		Type:      domain.AccountType(m.Type),
		IsActive:  m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const accountColumns = `account_id, company_id, code, label, account_type, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.Code,
		&m.Label,
		&m.Type,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, company_id, code, label, account_type, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.CompanyID,
		m.Code,
		m.Label,
		m.Type,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.pool.QueryRow(ctx, query, accountID))
}

// FindAccountByCode resolves a company-scoped account code. Only active accounts
// qualify.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND code = $2 AND is_active = TRUE;`
	return scanAccount(r.pool.QueryRow(ctx, query, companyID, code))
}

// ListAccountsByCompany retrieves all accounts of a company ordered by code.
func (r *PgxAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 ORDER BY code ASC;`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(
			&m.AccountID,
			&m.CompanyID,
			&m.Code,
			&m.Label,
			&m.Type,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindRoleOverrides returns the company's role-to-code overrides keyed by role.
func (r *PgxAccountRepository) FindRoleOverrides(ctx context.Context, companyID string) (map[domain.AccountRole]string, error) {
	query := `SELECT role, account_code FROM company_account_settings WHERE company_id = $1;`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query role overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(map[domain.AccountRole]string)
	for rows.Next() {
		var s models.AccountRoleSetting
		if err := rows.Scan(&s.Role, &s.AccountCode); err != nil {
			return nil, fmt.Errorf("failed to scan role override row: %w", err)
		}
		overrides[domain.AccountRole(s.Role)] = s.AccountCode
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role override rows: %w", err)
	}
	return overrides, nil
}

// SaveRoleOverride upserts one role-to-code mapping for a company.
func (r *PgxAccountRepository) SaveRoleOverride(ctx context.Context, companyID string, role domain.AccountRole, code string) error {
	query := `
		INSERT INTO company_account_settings (company_id, role, account_code)
		VALUES ($1, $2, $3)
		ON CONFLICT (company_id, role) DO UPDATE SET account_code = EXCLUDED.account_code;
	`
	if _, err := r.pool.Exec(ctx, query, companyID, string(role), code); err != nil {
		return fmt.Errorf("failed to save role override %s: %w", role, err)
	}
	return nil
}
