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

// accountService implements the chart-of-accounts resolver.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new chart-of-accounts entry for the company.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: companyID,
		Code:      req.Code,
		Label:     req.Label,
		Type:      req.Type,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account, obscuring existence across companies.
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts retrieves the company's chart of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ResolveCode resolves a company-scoped account code to its account.
func (s *accountService) ResolveCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrNotFound, code)
	}
	return account, nil
}

// ResolveRole resolves a posting role to the company's account. Overrides take
// precedence over domain.DefaultAccountCodes. A role without a matching account is a
// posting prerequisite failure, never a silent skip.
func (s *accountService) ResolveRole(ctx context.Context, companyID string, role domain.AccountRole) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	overrides, err := s.accountRepo.FindRoleOverrides(ctx, companyID)
	if err != nil {
		logger.Error("Failed to load role overrides", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load role overrides: %w", err)
	}

	code, ok := overrides[role]
	if !ok {
		code, ok = domain.DefaultAccountCodes[role]
		if !ok {
			return nil, fmt.Errorf("%w: no account code mapped for role %s", apperrors.ErrPostingSkipped, role)
		}
	}

	account, err := s.ResolveCode(ctx, companyID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s (role %s) is missing from the chart of accounts", apperrors.ErrPostingSkipped, code, role)
		}
		return nil, err
	}
	return account, nil
}

// SetRoleOverride maps a posting role to a company-specific account code. The code
// must exist in the company's chart of accounts.
func (s *accountService) SetRoleOverride(ctx context.Context, companyID string, req dto.SetRoleOverrideRequest, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, ok := domain.DefaultAccountCodes[req.Role]; !ok {
		return fmt.Errorf("%w: unknown posting role %s", apperrors.ErrValidation, req.Role)
	}
	if _, err := s.ResolveCode(ctx, companyID, req.Code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account code %s does not exist", apperrors.ErrValidation, req.Code)
		}
		return err
	}

	if err := s.accountRepo.SaveRoleOverride(ctx, companyID, req.Role, req.Code); err != nil {
		logger.Error("Failed to save role override", slog.String("error", err.Error()), slog.String("role", string(req.Role)))
		return fmt.Errorf("failed to save role override: %w", err)
	}

	logger.Info("Role override saved", slog.String("role", string(req.Role)), slog.String("code", req.Code))
	return nil
}
