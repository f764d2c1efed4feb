package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// CreateInvoiceRequest defines the payload for creating a draft client invoice.
type CreateInvoiceRequest struct {
	Number     string          `json:"number" binding:"required"`
	ClientName string          `json:"clientName" binding:"required"`
	IssueDate  time.Time       `json:"issueDate" binding:"required"`
	DueDate    time.Time       `json:"dueDate" binding:"required"`
	TotalHT    decimal.Decimal `json:"totalHT" binding:"required"`
	TotalTVA   decimal.Decimal `json:"totalTVA"`
	TotalTTC   decimal.Decimal `json:"totalTTC" binding:"required"`
}

// CreateSupplierInvoiceRequest defines the payload for registering a supplier invoice.
type CreateSupplierInvoiceRequest struct {
	Number       string          `json:"number" binding:"required"`
	SupplierName string          `json:"supplierName" binding:"required"`
	IssueDate    time.Time       `json:"issueDate" binding:"required"`
	DueDate      time.Time       `json:"dueDate" binding:"required"`
	TotalHT      decimal.Decimal `json:"totalHT" binding:"required"`
	TotalTVA     decimal.Decimal `json:"totalTVA"`
	TotalTTC     decimal.Decimal `json:"totalTTC" binding:"required"`
}

// InvoiceResponse is the API representation of a client invoice.
type InvoiceResponse struct {
	InvoiceID  string               `json:"invoiceID"`
	Number     string               `json:"number"`
	ClientName string               `json:"clientName"`
	IssueDate  time.Time            `json:"issueDate"`
	DueDate    time.Time            `json:"dueDate"`
	TotalHT    decimal.Decimal      `json:"totalHT"`
	TotalTVA   decimal.Decimal      `json:"totalTVA"`
	TotalTTC   decimal.Decimal      `json:"totalTTC"`
	AmountPaid decimal.Decimal      `json:"amountPaid"`
	Remaining  decimal.Decimal      `json:"remaining"`
	Status     domain.InvoiceStatus `json:"status"`
}

// SupplierInvoiceResponse is the API representation of a supplier invoice.
type SupplierInvoiceResponse struct {
	InvoiceID    string               `json:"invoiceID"`
	Number       string               `json:"number"`
	SupplierName string               `json:"supplierName"`
	IssueDate    time.Time            `json:"issueDate"`
	DueDate      time.Time            `json:"dueDate"`
	TotalHT      decimal.Decimal      `json:"totalHT"`
	TotalTVA     decimal.Decimal      `json:"totalTVA"`
	TotalTTC     decimal.Decimal      `json:"totalTTC"`
	AmountPaid   decimal.Decimal      `json:"amountPaid"`
	Remaining    decimal.Decimal      `json:"remaining"`
	Status       domain.InvoiceStatus `json:"status"`
}

// ListInvoicesParams holds pagination parameters for invoice listings.
type ListInvoicesParams struct {
	Limit     int
	NextToken *string
}

// ListInvoicesResponse is a page of client invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListSupplierInvoicesResponse is a page of supplier invoices.
type ListSupplierInvoicesResponse struct {
	Invoices  []SupplierInvoiceResponse `json:"invoices"`
	NextToken *string                   `json:"nextToken,omitempty"`
}

// ToInvoiceResponse converts a domain invoice to its API representation.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:  inv.InvoiceID,
		Number:     inv.Number,
		ClientName: inv.ClientName,
		IssueDate:  inv.IssueDate,
		DueDate:    inv.DueDate,
		TotalHT:    inv.TotalHT,
		TotalTVA:   inv.TotalTVA,
		TotalTTC:   inv.TotalTTC,
		AmountPaid: inv.AmountPaid,
		Remaining:  inv.Remaining(),
		Status:     inv.Status,
	}
}

// ToSupplierInvoiceResponse converts a domain supplier invoice.
func ToSupplierInvoiceResponse(inv *domain.SupplierInvoice) SupplierInvoiceResponse {
	return SupplierInvoiceResponse{
		InvoiceID:    inv.InvoiceID,
		Number:       inv.Number,
		SupplierName: inv.SupplierName,
		IssueDate:    inv.IssueDate,
		DueDate:      inv.DueDate,
		TotalHT:      inv.TotalHT,
		TotalTVA:     inv.TotalTVA,
		TotalTTC:     inv.TotalTTC,
		AmountPaid:   inv.AmountPaid,
		Remaining:    inv.Remaining(),
		Status:       inv.Status,
	}
}
