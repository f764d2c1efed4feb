package services

import (
	"context"
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
	"github.com/yaffasoft/sunucompta/internal/utils/dates"
)

// bankService ingests bank transactions and keeps the running account balance
// consistent with them.
type bankService struct {
	txm          portsrepo.TransactionManager
	bankRepo     portsrepo.BankRepositoryFacade
	ruleRepo     portsrepo.MatchingRuleRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	supplierRepo portsrepo.SupplierInvoiceRepositoryFacade
}

// NewBankService creates a new bank ingestion service.
func NewBankService(
	txm portsrepo.TransactionManager,
	bankRepo portsrepo.BankRepositoryFacade,
	ruleRepo portsrepo.MatchingRuleRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	supplierRepo portsrepo.SupplierInvoiceRepositoryFacade,
) portssvc.BankSvcFacade {
	return &bankService{
		txm:          txm,
		bankRepo:     bankRepo,
		ruleRepo:     ruleRepo,
		invoiceRepo:  invoiceRepo,
		supplierRepo: supplierRepo,
	}
}

var _ portssvc.BankSvcFacade = (*bankService)(nil)

// CreateBankAccount registers a bank account with an opening balance.
func (s *bankService) CreateBankAccount(ctx context.Context, companyID string, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		CompanyID:      companyID,
		Name:           req.Name,
		IBAN:           req.IBAN,
		CurrentBalance: req.InitialBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bankRepo.SaveBankAccount(ctx, account); err != nil {
		logger.Error("Failed to save bank account", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

// GetBankAccountByID retrieves a bank account scoped to the company.
func (s *bankService) GetBankAccountByID(ctx context.Context, companyID string, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ImportBatch bulk-ingests statement lines. Every row is validated and normalized
// before the transaction opens: a single bad row rejects the whole batch and nothing
// is written. Inside the transaction the bank account row is locked, all rows are
// inserted in input order and the balance is incremented once by the batch sum.
func (s *bankService) ImportBatch(ctx context.Context, companyID string, bankAccountID string, req dto.ImportBankTransactionsRequest, userID string) (*dto.ImportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Transactions) == 0 {
		return nil, fmt.Errorf("%w: import batch is empty", apperrors.ErrValidation)
	}

	rules, err := s.ruleRepo.ListActiveRulesByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matching rules: %w", err)
	}

	now := time.Now().UTC()
	txns := make([]domain.BankTransaction, 0, len(req.Transactions))
	batchSum := decimal.Zero
	for i, row := range req.Transactions {
		txnDate, err := dates.ParseFlexible(row.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid date %q", apperrors.ErrValidation, i+1, row.Date)
		}
		if row.Label == "" {
			return nil, fmt.Errorf("%w: row %d: label is required", apperrors.ErrValidation, i+1)
		}
		if row.Amount.IsZero() {
			return nil, fmt.Errorf("%w: row %d: amount must not be zero", apperrors.ErrValidation, i+1)
		}

		txn := domain.BankTransaction{
			TransactionID:   uuid.NewString(),
			BankAccountID:   bankAccountID,
			CompanyID:       companyID,
			TransactionDate: txnDate,
			Label:           row.Label,
			Amount:          row.Amount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		if rule := firstMatchingRule(rules, row.Label, row.Amount); rule != nil {
			accountID := rule.AssignAccountID
			txn.AssignedAccountID = &accountID
			if rule.AutoReconcile {
				reconciledAt := now
				txn.IsReconciled = true
				txn.ReconciledAt = &reconciledAt
			}
		}

		batchSum = batchSum.Add(row.Amount)
		txns = append(txns, txn)
	}

	var result dto.ImportResult
	err = s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		account, err := s.bankRepo.FindBankAccountByIDForUpdate(ctx, tx, bankAccountID)
		if err != nil {
			return err
		}
		if account.CompanyID != companyID {
			return apperrors.ErrNotFound
		}

		if err := s.bankRepo.InsertTransactionsInTx(ctx, tx, txns); err != nil {
			return fmt.Errorf("failed to insert bank transactions: %w", err)
		}

		newBalance := account.CurrentBalance.Add(batchSum)
		if err := s.bankRepo.UpdateBankAccountBalanceInTx(ctx, tx, bankAccountID, newBalance, userID, now); err != nil {
			return fmt.Errorf("failed to update bank account balance: %w", err)
		}

		result = dto.ImportResult{ImportedCount: len(txns), NewBalance: newBalance}
		return nil
	})
	if err != nil {
		logger.Warn("Bank import failed", slog.String("bank_account_id", bankAccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Bank transactions imported",
		slog.String("bank_account_id", bankAccountID),
		slog.Int("count", result.ImportedCount),
		slog.String("new_balance", result.NewBalance.String()),
	)
	return &result, nil
}

// CreateTransaction records a single manual transaction atomically with the balance
// update, then soft-matches it against open invoices. The soft match runs after
// commit and never fails the creation.
func (s *bankService) CreateTransaction(ctx context.Context, companyID string, req dto.CreateBankTransactionRequest, userID string) (*domain.BankTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txnDate, err := dates.ParseFlexible(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must not be zero", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txn := domain.BankTransaction{
		TransactionID:   uuid.NewString(),
		BankAccountID:   req.BankAccountID,
		CompanyID:       companyID,
		TransactionDate: txnDate,
		Label:           req.Label,
		Amount:          req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err = s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		account, err := s.bankRepo.FindBankAccountByIDForUpdate(ctx, tx, req.BankAccountID)
		if err != nil {
			return err
		}
		if account.CompanyID != companyID {
			return apperrors.ErrNotFound
		}

		if err := s.bankRepo.InsertTransactionsInTx(ctx, tx, []domain.BankTransaction{txn}); err != nil {
			return fmt.Errorf("failed to insert bank transaction: %w", err)
		}

		newBalance := account.CurrentBalance.Add(req.Amount)
		if err := s.bankRepo.UpdateBankAccountBalanceInTx(ctx, tx, req.BankAccountID, newBalance, userID, now); err != nil {
			return fmt.Errorf("failed to update bank account balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if match := s.findSoftMatch(ctx, companyID, txn.Label, req.Amount); match != nil {
		if err := s.bankRepo.UpdateTransactionMatch(ctx, txn.TransactionID, match.InvoiceID, match.Side, userID, time.Now().UTC()); err != nil {
			logger.Warn("Soft match could not be recorded",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("error", err.Error()),
			)
		} else {
			invoiceID := match.InvoiceID
			side := match.Side
			txn.MatchedInvoiceID = &invoiceID
			txn.MatchedType = &side
		}
	}

	logger.Info("Bank transaction created", slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

// findSoftMatch looks up open invoices matching the signed amount. Lookup errors are
// swallowed: soft matching is a convenience, not a guarantee.
func (s *bankService) findSoftMatch(ctx context.Context, companyID string, label string, amount decimal.Decimal) *invoiceMatch {
	logger := middleware.GetLoggerFromCtx(ctx)

	var (
		clients   []domain.Invoice
		suppliers []domain.SupplierInvoice
		err       error
	)
	if amount.IsPositive() {
		clients, err = s.invoiceRepo.FindOpenInvoicesByTotal(ctx, companyID, amount)
	} else if amount.IsNegative() {
		suppliers, err = s.supplierRepo.FindOpenSupplierInvoicesByTotal(ctx, companyID, amount.Abs())
	}
	if err != nil {
		logger.Warn("Soft match lookup failed", slog.String("error", err.Error()))
		return nil
	}
	return matchOpenInvoice(label, amount, clients, suppliers)
}

// ListTransactions retrieves a paginated list of a bank account's transactions.
func (s *bankService) ListTransactions(ctx context.Context, companyID string, bankAccountID string, limit int, nextToken *string) (*dto.ListBankTransactionsResponse, error) {
	if _, err := s.GetBankAccountByID(ctx, companyID, bankAccountID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	txns, token, err := s.bankRepo.ListTransactionsByBankAccount(ctx, bankAccountID, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}

	return &dto.ListBankTransactionsResponse{
		Transactions: dto.ToBankTransactionResponses(txns),
		NextToken:    token,
	}, nil
}

// CreateMatchingRule creates an active company matching rule.
func (s *bankService) CreateMatchingRule(ctx context.Context, companyID string, req dto.CreateMatchingRuleRequest, creatorUserID string) (*domain.BankMatchingRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AmountMin != nil && req.AmountMax != nil && req.AmountMin.GreaterThan(*req.AmountMax) {
		return nil, fmt.Errorf("%w: amountMin must not exceed amountMax", apperrors.ErrValidation)
	}
	if req.LabelContains == nil && req.AmountMin == nil && req.AmountMax == nil && req.AmountEquals == nil {
		return nil, fmt.Errorf("%w: a matching rule needs at least one condition", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	rule := domain.BankMatchingRule{
		RuleID:          uuid.NewString(),
		CompanyID:       companyID,
		Name:            req.Name,
		Priority:        req.Priority,
		LabelContains:   req.LabelContains,
		AmountMin:       req.AmountMin,
		AmountMax:       req.AmountMax,
		AmountEquals:    req.AmountEquals,
		AssignAccountID: req.AssignAccountID,
		AutoReconcile:   req.AutoReconcile,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ruleRepo.SaveMatchingRule(ctx, rule); err != nil {
		logger.Error("Failed to save matching rule", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Matching rule created", slog.String("rule_id", rule.RuleID), slog.Int("priority", rule.Priority))
	return &rule, nil
}

// ListMatchingRules retrieves the company's active rules, highest priority first.
func (s *bankService) ListMatchingRules(ctx context.Context, companyID string) ([]domain.BankMatchingRule, error) {
	return s.ruleRepo.ListActiveRulesByCompany(ctx, companyID)
}
