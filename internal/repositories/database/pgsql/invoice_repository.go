package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	"github.com/yaffasoft/sunucompta/internal/models"
	"github.com/yaffasoft/sunucompta/internal/utils/pagination"
)

type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
}

// newPgxInvoiceRepository creates a new repository for client invoices and payments.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{pool: pool}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func toDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:  m.InvoiceID,
		CompanyID:  m.CompanyID,
		Number:     m.Number,
		ClientName: m.ClientName,
		IssueDate:  m.IssueDate,
		DueDate:    m.DueDate,
		TotalHT:    m.TotalHT,
		TotalTVA:   m.TotalTVA,
		TotalTTC:   m.TotalTTC,
		AmountPaid: m.AmountPaid,
		Status:     domain.InvoiceStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const invoiceColumns = `invoice_id, company_id, number, client_name, issue_date, due_date, total_ht, total_tva, total_ttc, amount_paid, status, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CompanyID,
		&m.Number,
		&m.ClientName,
		&m.IssueDate,
		&m.DueDate,
		&m.TotalHT,
		&m.TotalTVA,
		&m.TotalTTC,
		&m.AmountPaid,
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
		return nil, fmt.Errorf("failed to scan invoice: %w", err)
	}
	inv := toDomainInvoice(m)
	return &inv, nil
}

// SaveInvoice inserts a new invoice.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.CompanyID,
		invoice.Number,
		invoice.ClientName,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.TotalHT,
		invoice.TotalTVA,
		invoice.TotalTTC,
		invoice.AmountPaid,
		string(invoice.Status),
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, invoice.Number)
		}
		return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	return scanInvoice(r.pool.QueryRow(ctx, query, invoiceID))
}

// FindInvoiceByIDForUpdate retrieves an invoice and locks its row until the caller's
// transaction ends.
func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`
	return scanInvoice(tx.QueryRow(ctx, query, invoiceID))
}

// ListInvoicesByCompany retrieves a paginated list of invoices, newest issue date first.
func (r *PgxInvoiceRepository) ListInvoicesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	baseQuery := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1`
	args := []any{companyID}

	if nextToken != nil && *nextToken != "" {
		issueDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		baseQuery += ` AND (issue_date, created_at) < ($2, $3)`
		args = append(args, issueDate, createdAt)
	}

	baseQuery += fmt.Sprintf(` ORDER BY issue_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices, err := collectInvoices(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(invoices) > limit {
		invoices = invoices[:limit]
		last := invoices[len(invoices)-1]
		t := pagination.EncodeToken(last.IssueDate, last.CreatedAt)
		token = &t
	}
	return invoices, token, nil
}

// FindOpenInvoicesByTotal retrieves open invoices whose totalTTC equals the amount.
func (r *PgxInvoiceRepository) FindOpenInvoicesByTotal(ctx context.Context, companyID string, totalTTC decimal.Decimal) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1 AND total_ttc = $2
		  AND status IN ('SENT', 'PENDING', 'PARTIALLY_PAID', 'OVERDUE')
		ORDER BY issue_date ASC;
	`
	rows, err := r.pool.Query(ctx, query, companyID, totalTTC)
	if err != nil {
		return nil, fmt.Errorf("failed to query open invoices: %w", err)
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func collectInvoices(rows pgx.Rows) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	for rows.Next() {
		var m models.Invoice
		if err := rows.Scan(
			&m.InvoiceID,
			&m.CompanyID,
			&m.Number,
			&m.ClientName,
			&m.IssueDate,
			&m.DueDate,
			&m.TotalHT,
			&m.TotalTVA,
			&m.TotalTTC,
			&m.AmountPaid,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, toDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// UpdateInvoiceStatusInTx updates the lifecycle status inside the caller's transaction.
func (r *PgxInvoiceRepository) UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, last_updated_by = $3, last_updated_at = $4
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, query, invoiceID, string(status), updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update invoice status %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateInvoicePaymentInTx sets the paid total and derived status inside the caller's
// transaction.
func (r *PgxInvoiceRepository) UpdateInvoicePaymentInTx(ctx context.Context, tx pgx.Tx, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET amount_paid = $2, status = $3, last_updated_by = $4, last_updated_at = $5
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, query, invoiceID, amountPaid, string(status), updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update invoice payment %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePaymentInTx inserts a payment row inside the caller's transaction.
func (r *PgxInvoiceRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	query := `
		INSERT INTO payments (payment_id, company_id, invoice_id, amount, payment_date, method, reference, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	if _, err := tx.Exec(ctx, query,
		payment.PaymentID,
		payment.CompanyID,
		payment.InvoiceID,
		payment.Amount,
		payment.PaymentDate,
		string(payment.Method),
		payment.Reference,
		payment.Notes,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to save payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// ListPaymentsByInvoice retrieves all payments applied to an invoice, oldest first.
func (r *PgxInvoiceRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, company_id, invoice_id, amount, payment_date, method, reference, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE invoice_id = $1
		ORDER BY payment_date ASC, created_at ASC;
	`
	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var m models.Payment
		if err := rows.Scan(
			&m.PaymentID,
			&m.CompanyID,
			&m.InvoiceID,
			&m.Amount,
			&m.PaymentDate,
			&m.Method,
			&m.Reference,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, domain.Payment{
			PaymentID:   m.PaymentID,
			CompanyID:   m.CompanyID,
			InvoiceID:   m.InvoiceID,
			Amount:      m.Amount,
			PaymentDate: m.PaymentDate,
			Method:      domain.PaymentMethod(m.Method),
			Reference:   m.Reference,
			Notes:       m.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}
