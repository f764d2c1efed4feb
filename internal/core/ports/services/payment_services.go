package services

import (
	"context"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
	"github.com/yaffasoft/sunucompta/internal/dto"
)

// PaymentSvcFacade applies payments to invoices. Both operations run the remaining-
// balance check, the payment insert, the invoice update and the journal posting inside
// one transaction with the invoice row locked, so concurrent payments on the same
// invoice can never jointly overpay it.
type PaymentSvcFacade interface {
	// ApplyClientPayment applies a payment to a client invoice. Rejections:
	// amount <= 0, amount exceeding the remaining balance (the error states the
	// remaining), invoice in a non-payable status.
	ApplyClientPayment(ctx context.Context, companyID string, invoiceID string, req dto.ApplyPaymentRequest, userID string) (*domain.Payment, error)

	// ApplySupplierPayment is the supplier-side counterpart.
	ApplySupplierPayment(ctx context.Context, companyID string, invoiceID string, req dto.ApplyPaymentRequest, userID string) (*domain.SupplierPayment, error)
}
