package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	"github.com/yaffasoft/sunucompta/internal/models"
	"github.com/yaffasoft/sunucompta/internal/utils/pagination"
)

type PgxBankRepository struct {
	pool *pgxpool.Pool
}

// newPgxBankRepository creates a new repository for bank accounts and transactions.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{pool: pool}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

func toDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:  m.BankAccountID,
		CompanyID:      m.CompanyID,
		Name:           m.Name,
		IBAN:           m.IBAN,
		CurrentBalance: m.CurrentBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	var matchedType *domain.MatchSide
	if m.MatchedType != nil {
		side := domain.MatchSide(*m.MatchedType)
		matchedType = &side
	}
	return domain.BankTransaction{
		TransactionID:     m.TransactionID,
		BankAccountID:     m.BankAccountID,
		CompanyID:         m.CompanyID,
		TransactionDate:   m.TransactionDate,
		Label:             m.Label,
		Amount:            m.Amount,
		IsReconciled:      m.IsReconciled,
		ReconciledAt:      m.ReconciledAt,
		MatchedInvoiceID:  m.MatchedInvoiceID,
		MatchedType:       matchedType,
		AssignedAccountID: m.AssignedAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const bankAccountColumns = `bank_account_id, company_id, name, iban, current_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanBankAccount(row pgx.Row) (*domain.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID,
		&m.CompanyID,
		&m.Name,
		&m.IBAN,
		&m.CurrentBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan bank account: %w", err)
	}
	acc := toDomainBankAccount(m)
	return &acc, nil
}

// SaveBankAccount inserts a new bank account.
func (r *PgxBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := r.pool.Exec(ctx, query,
		account.BankAccountID,
		account.CompanyID,
		account.Name,
		account.IBAN,
		account.CurrentBalance,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to save bank account %s: %w", account.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`
	return scanBankAccount(r.pool.QueryRow(ctx, query, bankAccountID))
}

// FindBankAccountByIDForUpdate retrieves a bank account and locks its row.
func (r *PgxBankRepository) FindBankAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1 FOR UPDATE;`
	return scanBankAccount(tx.QueryRow(ctx, query, bankAccountID))
}

// ListBankAccountsByCompany retrieves all bank accounts of a company.
func (r *PgxBankRepository) ListBankAccountsByCompany(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE company_id = $1 ORDER BY name ASC;`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.BankAccount
	for rows.Next() {
		var m models.BankAccount
		if err := rows.Scan(
			&m.BankAccountID,
			&m.CompanyID,
			&m.Name,
			&m.IBAN,
			&m.CurrentBalance,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, toDomainBankAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", err)
	}
	return accounts, nil
}

// UpdateBankAccountBalanceInTx sets the running balance inside the caller's
// transaction.
func (r *PgxBankRepository) UpdateBankAccountBalanceInTx(ctx context.Context, tx pgx.Tx, bankAccountID string, newBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE bank_accounts
		SET current_balance = $2, last_updated_by = $3, last_updated_at = $4
		WHERE bank_account_id = $1;
	`
	tag, err := tx.Exec(ctx, query, bankAccountID, newBalance, updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update bank account balance %s: %w", bankAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const bankTransactionColumns = `transaction_id, bank_account_id, company_id, transaction_date, label, amount, is_reconciled, reconciled_at, matched_invoice_id, matched_type, assigned_account_id, created_at, created_by, last_updated_at, last_updated_by`

func scanBankTransaction(row pgx.Row) (*domain.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.BankAccountID,
		&m.CompanyID,
		&m.TransactionDate,
		&m.Label,
		&m.Amount,
		&m.IsReconciled,
		&m.ReconciledAt,
		&m.MatchedInvoiceID,
		&m.MatchedType,
		&m.AssignedAccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan bank transaction: %w", err)
	}
	txn := toDomainBankTransaction(m)
	return &txn, nil
}

// InsertTransactionsInTx inserts the given transactions, in order, inside the caller's
// transaction.
func (r *PgxBankRepository) InsertTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (` + bankTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	for _, t := range transactions {
		var matchedType *string
		if t.MatchedType != nil {
			s := string(*t.MatchedType)
			matchedType = &s
		}
		if _, err := tx.Exec(ctx, query,
			t.TransactionID,
			t.BankAccountID,
			t.CompanyID,
			t.TransactionDate,
			t.Label,
			t.Amount,
			t.IsReconciled,
			t.ReconciledAt,
			t.MatchedInvoiceID,
			matchedType,
			t.AssignedAccountID,
			t.CreatedAt,
			t.CreatedBy,
			t.LastUpdatedAt,
			t.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to insert bank transaction %s: %w", t.TransactionID, err)
		}
	}
	return nil
}

// FindTransactionByID retrieves a bank transaction by its ID.
func (r *PgxBankRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE transaction_id = $1;`
	return scanBankTransaction(r.pool.QueryRow(ctx, query, transactionID))
}

// FindTransactionByIDForUpdate retrieves a bank transaction and locks its row.
func (r *PgxBankRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE transaction_id = $1 FOR UPDATE;`
	return scanBankTransaction(tx.QueryRow(ctx, query, transactionID))
}

// ListTransactionsByBankAccount retrieves a paginated list, newest first.
func (r *PgxBankRepository) ListTransactionsByBankAccount(ctx context.Context, bankAccountID string, limit int, nextToken *string) ([]domain.BankTransaction, *string, error) {
	baseQuery := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE bank_account_id = $1`
	args := []any{bankAccountID}

	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		baseQuery += ` AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, txnDate, createdAt)
	}

	baseQuery += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query bank transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.BankTransaction
	for rows.Next() {
		var m models.BankTransaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.BankAccountID,
			&m.CompanyID,
			&m.TransactionDate,
			&m.Label,
			&m.Amount,
			&m.IsReconciled,
			&m.ReconciledAt,
			&m.MatchedInvoiceID,
			&m.MatchedType,
			&m.AssignedAccountID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan bank transaction row: %w", err)
		}
		txns = append(txns, toDomainBankTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating bank transaction rows: %w", err)
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		t := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		token = &t
	}
	return txns, token, nil
}

// UpdateTransactionMatch records a soft match without touching the reconciliation
// flag. Already-reconciled transactions are left alone.
func (r *PgxBankRepository) UpdateTransactionMatch(ctx context.Context, transactionID string, invoiceID string, side domain.MatchSide, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE bank_transactions
		SET matched_invoice_id = $2, matched_type = $3, last_updated_by = $4, last_updated_at = $5
		WHERE transaction_id = $1 AND is_reconciled = FALSE;
	`
	if _, err := r.pool.Exec(ctx, query, transactionID, invoiceID, string(side), updatedBy, updatedAt); err != nil {
		return fmt.Errorf("failed to update transaction match %s: %w", transactionID, err)
	}
	return nil
}

// MarkTransactionReconciledInTx flips the terminal reconciliation flag inside the
// caller's transaction. The is_reconciled guard makes the flip idempotence-safe even
// if a caller skips the locked re-read.
func (r *PgxBankRepository) MarkTransactionReconciledInTx(ctx context.Context, tx pgx.Tx, transactionID string, invoiceID string, side domain.MatchSide, reconciledAt time.Time, updatedBy string) error {
	query := `
		UPDATE bank_transactions
		SET is_reconciled = TRUE, reconciled_at = $2, matched_invoice_id = $3, matched_type = $4, last_updated_by = $5, last_updated_at = $2
		WHERE transaction_id = $1 AND is_reconciled = FALSE;
	`
	tag, err := tx.Exec(ctx, query, transactionID, reconciledAt, invoiceID, string(side), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark transaction reconciled %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s is already reconciled", apperrors.ErrConflict, transactionID)
	}
	return nil
}
