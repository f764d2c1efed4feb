package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// ApplyPaymentRequest defines the payload for applying a payment to an invoice.
type ApplyPaymentRequest struct {
	Amount      decimal.Decimal      `json:"amount" binding:"required"`
	PaymentDate time.Time            `json:"paymentDate" binding:"required"`
	Method      domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CHECK CARD MOBILE_MONEY"`
	Reference   string               `json:"reference"`
	Notes       string               `json:"notes"`
}

// PaymentResponse is the API representation of an applied payment.
type PaymentResponse struct {
	PaymentID   string               `json:"paymentID"`
	InvoiceID   string               `json:"invoiceID"`
	Amount      decimal.Decimal      `json:"amount"`
	PaymentDate time.Time            `json:"paymentDate"`
	Method      domain.PaymentMethod `json:"method"`
	Reference   string               `json:"reference"`
}

// ToPaymentResponse converts a domain payment to its API representation.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Reference:   p.Reference,
	}
}

// ToSupplierPaymentResponse converts a domain supplier payment.
func ToSupplierPaymentResponse(p *domain.SupplierPayment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Reference:   p.Reference,
	}
}

// ToPaymentResponses converts a slice of domain payments.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	resp := make([]PaymentResponse, len(payments))
	for i := range payments {
		resp[i] = ToPaymentResponse(&payments[i])
	}
	return resp
}
