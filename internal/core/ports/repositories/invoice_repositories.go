package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// InvoiceReader defines read operations for client invoices.
type InvoiceReader interface {
	// FindInvoiceByID retrieves a client invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByIDForUpdate retrieves an invoice and locks its row for the
	// duration of the transaction. Every remaining-balance check reads through this
	// so concurrent payments on the same invoice serialize.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByCompany retrieves a paginated list of client invoices using
	// token-based pagination.
	ListInvoicesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// FindOpenInvoicesByTotal retrieves open-status invoices whose totalTTC equals
	// the given amount exactly. Used by the ad-hoc bank transaction matcher.
	FindOpenInvoicesByTotal(ctx context.Context, companyID string, totalTTC decimal.Decimal) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for client invoices.
type InvoiceWriter interface {
	// SaveInvoice inserts a new invoice. Duplicate (company, number) surfaces as
	// apperrors.ErrDuplicate.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceStatusInTx updates the lifecycle status inside the caller's
	// transaction.
	UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error

	// UpdateInvoicePaymentInTx sets the running paid total and derived status
	// inside the caller's transaction.
	UpdateInvoicePaymentInTx(ctx context.Context, tx pgx.Tx, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error

	// SavePaymentInTx inserts a payment row inside the caller's transaction.
	// Payments are insert-only.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
}

// PaymentReader defines read operations for applied client payments.
type PaymentReader interface {
	// ListPaymentsByInvoice retrieves all payments applied to an invoice, oldest first.
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}

// InvoiceRepositoryFacade combines all client-invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	PaymentReader
}

// SupplierInvoiceReader defines read operations for supplier invoices.
type SupplierInvoiceReader interface {
	FindSupplierInvoiceByID(ctx context.Context, invoiceID string) (*domain.SupplierInvoice, error)

	// FindSupplierInvoiceByIDForUpdate locks the supplier invoice row, mirroring
	// InvoiceReader.FindInvoiceByIDForUpdate.
	FindSupplierInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.SupplierInvoice, error)

	ListSupplierInvoicesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.SupplierInvoice, *string, error)

	FindOpenSupplierInvoicesByTotal(ctx context.Context, companyID string, totalTTC decimal.Decimal) ([]domain.SupplierInvoice, error)
}

// SupplierInvoiceWriter defines write operations for supplier invoices.
type SupplierInvoiceWriter interface {
	SaveSupplierInvoice(ctx context.Context, invoice domain.SupplierInvoice) error

	UpdateSupplierInvoicePaymentInTx(ctx context.Context, tx pgx.Tx, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error

	SaveSupplierPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.SupplierPayment) error
}

// SupplierInvoiceRepositoryFacade combines all supplier-invoice repository interfaces.
type SupplierInvoiceRepositoryFacade interface {
	SupplierInvoiceReader
	SupplierInvoiceWriter
}
