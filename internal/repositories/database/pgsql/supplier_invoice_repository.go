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

type PgxSupplierInvoiceRepository struct {
	pool *pgxpool.Pool
}

// newPgxSupplierInvoiceRepository creates a new repository for supplier invoices and
// their payments.
func newPgxSupplierInvoiceRepository(pool *pgxpool.Pool) portsrepo.SupplierInvoiceRepositoryFacade {
	return &PgxSupplierInvoiceRepository{pool: pool}
}

var _ portsrepo.SupplierInvoiceRepositoryFacade = (*PgxSupplierInvoiceRepository)(nil)

func toDomainSupplierInvoice(m models.SupplierInvoice) domain.SupplierInvoice {
	return domain.SupplierInvoice{
		InvoiceID:    m.InvoiceID,
		CompanyID:    m.CompanyID,
		Number:       m.Number,
		SupplierName: m.SupplierName,
		IssueDate:    m.IssueDate,
		DueDate:      m.DueDate,
		TotalHT:      m.TotalHT,
		TotalTVA:     m.TotalTVA,
		TotalTTC:     m.TotalTTC,
		AmountPaid:   m.AmountPaid,
		Status:       domain.InvoiceStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const supplierInvoiceColumns = `invoice_id, company_id, number, supplier_name, issue_date, due_date, total_ht, total_tva, total_ttc, amount_paid, status, created_at, created_by, last_updated_at, last_updated_by`

func scanSupplierInvoice(row pgx.Row) (*domain.SupplierInvoice, error) {
	var m models.SupplierInvoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CompanyID,
		&m.Number,
		&m.SupplierName,
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
		return nil, fmt.Errorf("failed to scan supplier invoice: %w", err)
	}
	inv := toDomainSupplierInvoice(m)
	return &inv, nil
}

// SaveSupplierInvoice inserts a new supplier invoice.
func (r *PgxSupplierInvoiceRepository) SaveSupplierInvoice(ctx context.Context, invoice domain.SupplierInvoice) error {
	query := `
		INSERT INTO supplier_invoices (` + supplierInvoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.CompanyID,
		invoice.Number,
		invoice.SupplierName,
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
			return fmt.Errorf("%w: supplier invoice number %s already exists", apperrors.ErrDuplicate, invoice.Number)
		}
		return fmt.Errorf("failed to save supplier invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// FindSupplierInvoiceByID retrieves a supplier invoice by its ID.
func (r *PgxSupplierInvoiceRepository) FindSupplierInvoiceByID(ctx context.Context, invoiceID string) (*domain.SupplierInvoice, error) {
	query := `SELECT ` + supplierInvoiceColumns + ` FROM supplier_invoices WHERE invoice_id = $1;`
	return scanSupplierInvoice(r.pool.QueryRow(ctx, query, invoiceID))
}

// FindSupplierInvoiceByIDForUpdate retrieves a supplier invoice and locks its row.
func (r *PgxSupplierInvoiceRepository) FindSupplierInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.SupplierInvoice, error) {
	query := `SELECT ` + supplierInvoiceColumns + ` FROM supplier_invoices WHERE invoice_id = $1 FOR UPDATE;`
	return scanSupplierInvoice(tx.QueryRow(ctx, query, invoiceID))
}

// ListSupplierInvoicesByCompany retrieves a paginated list, newest issue date first.
func (r *PgxSupplierInvoiceRepository) ListSupplierInvoicesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.SupplierInvoice, *string, error) {
	baseQuery := `SELECT ` + supplierInvoiceColumns + ` FROM supplier_invoices WHERE company_id = $1`
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
		return nil, nil, fmt.Errorf("failed to query supplier invoices: %w", err)
	}
	defer rows.Close()

	invoices, err := collectSupplierInvoices(rows)
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

// FindOpenSupplierInvoicesByTotal retrieves open supplier invoices whose totalTTC
// equals the amount.
func (r *PgxSupplierInvoiceRepository) FindOpenSupplierInvoicesByTotal(ctx context.Context, companyID string, totalTTC decimal.Decimal) ([]domain.SupplierInvoice, error) {
	query := `
		SELECT ` + supplierInvoiceColumns + `
		FROM supplier_invoices
		WHERE company_id = $1 AND total_ttc = $2
		  AND status IN ('SENT', 'PENDING', 'PARTIALLY_PAID', 'OVERDUE')
		ORDER BY issue_date ASC;
	`
	rows, err := r.pool.Query(ctx, query, companyID, totalTTC)
	if err != nil {
		return nil, fmt.Errorf("failed to query open supplier invoices: %w", err)
	}
	defer rows.Close()
	return collectSupplierInvoices(rows)
}

func collectSupplierInvoices(rows pgx.Rows) ([]domain.SupplierInvoice, error) {
	var invoices []domain.SupplierInvoice
	for rows.Next() {
		var m models.SupplierInvoice
		if err := rows.Scan(
			&m.InvoiceID,
			&m.CompanyID,
			&m.Number,
			&m.SupplierName,
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
			return nil, fmt.Errorf("failed to scan supplier invoice row: %w", err)
		}
		invoices = append(invoices, toDomainSupplierInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier invoice rows: %w", err)
	}
	return invoices, nil
}

// UpdateSupplierInvoicePaymentInTx sets the paid total and derived status inside the
// caller's transaction.
func (r *PgxSupplierInvoiceRepository) UpdateSupplierInvoicePaymentInTx(ctx context.Context, tx pgx.Tx, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE supplier_invoices
		SET amount_paid = $2, status = $3, last_updated_by = $4, last_updated_at = $5
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, query, invoiceID, amountPaid, string(status), updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update supplier invoice payment %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveSupplierPaymentInTx inserts a supplier payment row inside the caller's
// transaction.
func (r *PgxSupplierInvoiceRepository) SaveSupplierPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.SupplierPayment) error {
	query := `
		INSERT INTO supplier_payments (payment_id, company_id, invoice_id, amount, payment_date, method, reference, notes, created_at, created_by, last_updated_at, last_updated_by)
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
		return fmt.Errorf("failed to save supplier payment %s: %w", payment.PaymentID, err)
	}
	return nil
}
