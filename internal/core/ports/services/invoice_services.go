package services

import (
	"context"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
	"github.com/yaffasoft/sunucompta/internal/dto"
)

// InvoiceSvcFacade manages the client invoice lifecycle.
type InvoiceSvcFacade interface {
	// CreateInvoice creates a draft invoice after checking HT + TVA == TTC.
	CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// SendInvoice transitions a draft invoice to SENT and posts the sales entry,
	// atomically. Non-draft invoices are a conflict; a posting prerequisite failure
	// aborts the transition.
	SendInvoice(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.Invoice, error)

	// CancelInvoice cancels an invoice that has no payments applied.
	CancelInvoice(ctx context.Context, companyID string, invoiceID string, userID string) error

	// GetInvoiceByID retrieves an invoice scoped to the company.
	GetInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of the company's invoices.
	ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ListPayments retrieves the payments applied to an invoice.
	ListPayments(ctx context.Context, companyID string, invoiceID string) ([]domain.Payment, error)
}

// SupplierInvoiceSvcFacade manages supplier invoices. They are registered as PENDING
// directly: emission happens on the supplier's side, so there is no send transition
// and no emission posting.
type SupplierInvoiceSvcFacade interface {
	CreateSupplierInvoice(ctx context.Context, companyID string, req dto.CreateSupplierInvoiceRequest, creatorUserID string) (*domain.SupplierInvoice, error)

	GetSupplierInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.SupplierInvoice, error)

	ListSupplierInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) (*dto.ListSupplierInvoicesResponse, error)
}
