package services

import (
	"context"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
	"github.com/yaffasoft/sunucompta/internal/dto"
)

// AccountSvcFacade is the chart-of-accounts resolver: account CRUD plus code and role
// resolution for the ledger poster.
type AccountSvcFacade interface {
	// CreateAccount creates a new chart-of-accounts entry for the company.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves an account scoped to the company.
	GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the company's chart of accounts ordered by code.
	ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error)

	// ResolveCode resolves an account code within the company. Missing or inactive
	// codes surface as apperrors.ErrNotFound.
	ResolveCode(ctx context.Context, companyID string, code string) (*domain.Account, error)

	// ResolveRole resolves a posting role to the company's account, applying
	// company overrides over the default code mapping. A role whose code has no
	// account surfaces as apperrors.ErrPostingSkipped.
	ResolveRole(ctx context.Context, companyID string, role domain.AccountRole) (*domain.Account, error)

	// SetRoleOverride maps a posting role to a company-specific account code.
	SetRoleOverride(ctx context.Context, companyID string, req dto.SetRoleOverrideRequest, userID string) error
}
