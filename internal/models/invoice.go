package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice maps to the invoices table (client invoices).
type Invoice struct {
	InvoiceID  string
	CompanyID  string
	Number     string
	ClientName string
	IssueDate  time.Time
	DueDate    time.Time
	TotalHT    decimal.Decimal
	TotalTVA   decimal.Decimal
	TotalTTC   decimal.Decimal
	AmountPaid decimal.Decimal
	Status     string
	AuditFields
}

// SupplierInvoice maps to the supplier_invoices table.
type SupplierInvoice struct {
	InvoiceID    string
	CompanyID    string
	Number       string
	SupplierName string
	IssueDate    time.Time
	DueDate      time.Time
	TotalHT      decimal.Decimal
	TotalTVA     decimal.Decimal
	TotalTTC     decimal.Decimal
	AmountPaid   decimal.Decimal
	Status       string
	AuditFields
}

// Payment maps to the payments table.
type Payment struct {
	PaymentID   string
	CompanyID   string
	InvoiceID   string
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      string
	Reference   string
	Notes       string
	AuditFields
}

// SupplierPayment maps to the supplier_payments table.
type SupplierPayment struct {
	PaymentID   string
	CompanyID   string
	InvoiceID   string
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      string
	Reference   string
	Notes       string
	AuditFields
}
