package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of a client or supplier invoice.
// Client invoices move DRAFT -> SENT -> PARTIALLY_PAID -> PAID; supplier invoices are
// registered as PENDING and follow the same payment states.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "DRAFT"
	InvoiceSent          InvoiceStatus = "SENT"
	InvoicePending       InvoiceStatus = "PENDING"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceOverdue       InvoiceStatus = "OVERDUE"
	InvoiceCancelled     InvoiceStatus = "CANCELLED"
)

// Invoice is a client invoice. AmountPaid is the authoritative running total of applied
// payments; Status is derived from it on every mutation.
type Invoice struct {
	InvoiceID  string          `json:"invoiceID"` // Primary key (UUID)
	CompanyID  string          `json:"companyID"`
	Number     string          `json:"number"` // Unique per company
	ClientName string          `json:"clientName"`
	IssueDate  time.Time       `json:"issueDate"`
	DueDate    time.Time       `json:"dueDate"`
	TotalHT    decimal.Decimal `json:"totalHT"`
	TotalTVA   decimal.Decimal `json:"totalTVA"`
	TotalTTC   decimal.Decimal `json:"totalTTC"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	Status     InvoiceStatus   `json:"status"`
	AuditFields
}

// SupplierInvoice is an invoice received from a supplier.
type SupplierInvoice struct {
	InvoiceID    string          `json:"invoiceID"` // Primary key (UUID)
	CompanyID    string          `json:"companyID"`
	Number       string          `json:"number"` // Supplier's invoice number
	SupplierName string          `json:"supplierName"`
	IssueDate    time.Time       `json:"issueDate"`
	DueDate      time.Time       `json:"dueDate"`
	TotalHT      decimal.Decimal `json:"totalHT"`
	TotalTVA     decimal.Decimal `json:"totalTVA"`
	TotalTTC     decimal.Decimal `json:"totalTTC"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	Status       InvoiceStatus   `json:"status"`
	AuditFields
}

// Remaining returns the unpaid balance of the invoice.
func (i Invoice) Remaining() decimal.Decimal {
	return i.TotalTTC.Sub(i.AmountPaid)
}

// Remaining returns the unpaid balance of the supplier invoice.
func (i SupplierInvoice) Remaining() decimal.Decimal {
	return i.TotalTTC.Sub(i.AmountPaid)
}

// IsPayable reports whether payments may be applied to an invoice in this status.
func (s InvoiceStatus) IsPayable() bool {
	switch s {
	case InvoiceDraft, InvoiceCancelled, InvoicePaid:
		return false
	default:
		return true
	}
}

// IsOpen reports whether the invoice still awaits money, which is what the ad-hoc bank
// transaction matcher considers a candidate.
func (s InvoiceStatus) IsOpen() bool {
	switch s {
	case InvoiceSent, InvoicePending, InvoicePartiallyPaid, InvoiceOverdue:
		return true
	default:
		return false
	}
}

// PaymentStatusFor derives the invoice status that results from a paid running total.
func PaymentStatusFor(amountPaid, totalTTC decimal.Decimal) InvoiceStatus {
	if amountPaid.GreaterThanOrEqual(totalTTC) {
		return InvoicePaid
	}
	return InvoicePartiallyPaid
}
