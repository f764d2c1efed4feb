package repositories

import (
	"context"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode resolves a company-scoped account code to the account.
	// Returns apperrors.ErrNotFound when no active account carries the code.
	FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error)

	// ListAccountsByCompany retrieves all accounts of a company ordered by code.
	ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error)

	// FindRoleOverrides returns the company's role-to-code overrides, keyed by role.
	// Roles absent from the map fall back to domain.DefaultAccountCodes.
	FindRoleOverrides(ctx context.Context, companyID string) (map[domain.AccountRole]string, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount inserts a new account. A duplicate (company, code) pair surfaces
	// as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveRoleOverride upserts one role-to-code mapping for a company.
	SaveRoleOverride(ctx context.Context, companyID string, role domain.AccountRole, code string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
