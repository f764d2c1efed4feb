package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/dto"
	"github.com/yaffasoft/sunucompta/internal/middleware"
)

// paymentService applies payments to client and supplier invoices.
//
// The remaining-balance check must see the invoice row as it is at commit time, not at
// request time: both Apply methods lock the invoice with SELECT ... FOR UPDATE inside
// the same transaction that inserts the payment, updates the invoice and posts the
// entry. Two concurrent payments on one invoice therefore serialize, and the second
// one re-reads the already-updated paid total.
type paymentService struct {
	txm          portsrepo.TransactionManager
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	supplierRepo portsrepo.SupplierInvoiceRepositoryFacade
	poster       portssvc.LedgerPoster
}

// NewPaymentService creates a new payment application service.
func NewPaymentService(
	txm portsrepo.TransactionManager,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	supplierRepo portsrepo.SupplierInvoiceRepositoryFacade,
	poster portssvc.LedgerPoster,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		txm:          txm,
		invoiceRepo:  invoiceRepo,
		supplierRepo: supplierRepo,
		poster:       poster,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func validatePaymentAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	return nil
}

// ApplyClientPayment applies a payment to a client invoice.
func (s *paymentService) ApplyClientPayment(ctx context.Context, companyID string, invoiceID string, req dto.ApplyPaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validatePaymentAmount(req.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		CompanyID:   companyID,
		InvoiceID:   invoiceID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.CompanyID != companyID {
			return apperrors.ErrNotFound // Obscure existence
		}
		if !invoice.Status.IsPayable() {
			return fmt.Errorf("%w: invoice %s is not payable in status %s", apperrors.ErrValidation, invoice.Number, invoice.Status)
		}

		remaining := invoice.Remaining()
		if req.Amount.GreaterThan(remaining) {
			return fmt.Errorf("%w: payment of %s exceeds remaining balance of %s", apperrors.ErrValidation, req.Amount, remaining)
		}

		if err := s.invoiceRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}

		newAmountPaid := invoice.AmountPaid.Add(req.Amount)
		newStatus := domain.PaymentStatusFor(newAmountPaid, invoice.TotalTTC)
		if err := s.invoiceRepo.UpdateInvoicePaymentInTx(ctx, tx, invoiceID, newAmountPaid, newStatus, userID, now); err != nil {
			return fmt.Errorf("failed to update invoice paid total: %w", err)
		}

		_, err = s.poster.PostInTx(ctx, tx, domain.ClientPaymentEvent(*invoice, payment), userID)
		return err
	})
	if err != nil {
		logger.Warn("Client payment rejected", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Client payment applied",
		slog.String("payment_id", payment.PaymentID),
		slog.String("invoice_id", invoiceID),
		slog.String("amount", req.Amount.String()))
	return &payment, nil
}

// ApplySupplierPayment applies a payment to a supplier invoice.
func (s *paymentService) ApplySupplierPayment(ctx context.Context, companyID string, invoiceID string, req dto.ApplyPaymentRequest, userID string) (*domain.SupplierPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validatePaymentAmount(req.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := domain.SupplierPayment{
		PaymentID:   uuid.NewString(),
		CompanyID:   companyID,
		InvoiceID:   invoiceID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		invoice, err := s.supplierRepo.FindSupplierInvoiceByIDForUpdate(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.CompanyID != companyID {
			return apperrors.ErrNotFound
		}
		if !invoice.Status.IsPayable() {
			return fmt.Errorf("%w: supplier invoice %s is not payable in status %s", apperrors.ErrValidation, invoice.Number, invoice.Status)
		}

		remaining := invoice.Remaining()
		if req.Amount.GreaterThan(remaining) {
			return fmt.Errorf("%w: payment of %s exceeds remaining balance of %s", apperrors.ErrValidation, req.Amount, remaining)
		}

		if err := s.supplierRepo.SaveSupplierPaymentInTx(ctx, tx, payment); err != nil {
			return fmt.Errorf("failed to save supplier payment: %w", err)
		}

		newAmountPaid := invoice.AmountPaid.Add(req.Amount)
		newStatus := domain.PaymentStatusFor(newAmountPaid, invoice.TotalTTC)
		if err := s.supplierRepo.UpdateSupplierInvoicePaymentInTx(ctx, tx, invoiceID, newAmountPaid, newStatus, userID, now); err != nil {
			return fmt.Errorf("failed to update supplier invoice paid total: %w", err)
		}

		_, err = s.poster.PostInTx(ctx, tx, domain.SupplierPaymentEvent(*invoice, payment), userID)
		return err
	})
	if err != nil {
		logger.Warn("Supplier payment rejected", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Supplier payment applied",
		slog.String("payment_id", payment.PaymentID),
		slog.String("invoice_id", invoiceID),
		slog.String("amount", req.Amount.String()))
	return &payment, nil
}
