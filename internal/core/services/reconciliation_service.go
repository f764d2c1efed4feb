package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/dto"
	"github.com/yaffasoft/sunucompta/internal/middleware"
)

// reconciliationService confirms a match between a bank transaction and an invoice.
//
// Reconciliation is terminal: the transaction row is locked, the flag checked and set
// in the same transaction that creates the payment, updates the invoice and posts the
// entry. A second confirmation, however concurrent, sees the flag and conflicts.
type reconciliationService struct {
	txm          portsrepo.TransactionManager
	bankRepo     portsrepo.BankRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	supplierRepo portsrepo.SupplierInvoiceRepositoryFacade
	poster       portssvc.LedgerPoster
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(
	txm portsrepo.TransactionManager,
	bankRepo portsrepo.BankRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	supplierRepo portsrepo.SupplierInvoiceRepositoryFacade,
	poster portssvc.LedgerPoster,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		txm:          txm,
		bankRepo:     bankRepo,
		invoiceRepo:  invoiceRepo,
		supplierRepo: supplierRepo,
		poster:       poster,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// Reconcile marks the transaction reconciled against the given invoice and records the
// resulting BANK_TRANSFER payment, all in one transaction.
func (s *reconciliationService) Reconcile(ctx context.Context, companyID string, transactionID string, req dto.ReconcileTransactionRequest, userID string) (*domain.BankTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var reconciled *domain.BankTransaction
	err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		txn, err := s.bankRepo.FindTransactionByIDForUpdate(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		if txn.CompanyID != companyID {
			return apperrors.ErrNotFound
		}
		if txn.IsReconciled {
			return fmt.Errorf("%w: transaction %s is already reconciled", apperrors.ErrConflict, transactionID)
		}

		amount := txn.Amount.Abs()
		if amount.IsZero() {
			return fmt.Errorf("%w: a zero-amount transaction cannot be reconciled", apperrors.ErrValidation)
		}
		if req.InvoiceType == domain.MatchClient && txn.Amount.IsNegative() {
			return fmt.Errorf("%w: an outflow cannot settle a client invoice", apperrors.ErrValidation)
		}
		if req.InvoiceType == domain.MatchSupplier && txn.Amount.IsPositive() {
			return fmt.Errorf("%w: an inflow cannot settle a supplier invoice", apperrors.ErrValidation)
		}

		now := time.Now().UTC()
		switch req.InvoiceType {
		case domain.MatchClient:
			if err := s.settleClientInvoice(ctx, tx, companyID, req.InvoiceID, txn, userID, now); err != nil {
				return err
			}
		case domain.MatchSupplier:
			if err := s.settleSupplierInvoice(ctx, tx, companyID, req.InvoiceID, txn, userID, now); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: unknown invoice type %q", apperrors.ErrValidation, req.InvoiceType)
		}

		if err := s.bankRepo.MarkTransactionReconciledInTx(ctx, tx, transactionID, req.InvoiceID, req.InvoiceType, now, userID); err != nil {
			return fmt.Errorf("failed to mark transaction reconciled: %w", err)
		}

		invoiceID := req.InvoiceID
		side := req.InvoiceType
		txn.IsReconciled = true
		txn.ReconciledAt = &now
		txn.MatchedInvoiceID = &invoiceID
		txn.MatchedType = &side
		txn.LastUpdatedAt = now
		txn.LastUpdatedBy = userID
		reconciled = txn
		return nil
	})
	if err != nil {
		logger.Warn("Reconciliation failed",
			slog.String("transaction_id", transactionID),
			slog.String("invoice_id", req.InvoiceID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.Info("Bank transaction reconciled",
		slog.String("transaction_id", transactionID),
		slog.String("invoice_id", req.InvoiceID),
		slog.String("side", string(req.InvoiceType)),
	)
	return reconciled, nil
}

func (s *reconciliationService) settleClientInvoice(ctx context.Context, tx pgx.Tx, companyID string, invoiceID string, txn *domain.BankTransaction, userID string, now time.Time) error {
	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.CompanyID != companyID {
		return apperrors.ErrNotFound
	}
	if !invoice.Status.IsPayable() {
		return fmt.Errorf("%w: invoice %s does not accept payments (status %s)", apperrors.ErrValidation, invoice.Number, invoice.Status)
	}

	amount := txn.Amount.Abs()
	if amount.GreaterThan(invoice.Remaining()) {
		return fmt.Errorf("%w: payment of %s exceeds remaining balance of %s", apperrors.ErrValidation, amount, invoice.Remaining())
	}

	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		CompanyID:   companyID,
		InvoiceID:   invoiceID,
		Amount:      amount,
		PaymentDate: txn.TransactionDate,
		Method:      domain.MethodBankTransfer,
		Reference:   txn.Label,
		Notes:       "Rapprochement bancaire",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.invoiceRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}

	newPaid := invoice.AmountPaid.Add(amount)
	newStatus := domain.PaymentStatusFor(newPaid, invoice.TotalTTC)
	if err := s.invoiceRepo.UpdateInvoicePaymentInTx(ctx, tx, invoiceID, newPaid, newStatus, userID, now); err != nil {
		return fmt.Errorf("failed to update invoice payment: %w", err)
	}

	if _, err := s.poster.PostInTx(ctx, tx, domain.ClientPaymentEvent(*invoice, payment), userID); err != nil {
		return err
	}
	return nil
}

func (s *reconciliationService) settleSupplierInvoice(ctx context.Context, tx pgx.Tx, companyID string, invoiceID string, txn *domain.BankTransaction, userID string, now time.Time) error {
	invoice, err := s.supplierRepo.FindSupplierInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.CompanyID != companyID {
		return apperrors.ErrNotFound
	}
	if !invoice.Status.IsPayable() {
		return fmt.Errorf("%w: supplier invoice %s does not accept payments (status %s)", apperrors.ErrValidation, invoice.Number, invoice.Status)
	}

	amount := txn.Amount.Abs()
	if amount.GreaterThan(invoice.Remaining()) {
		return fmt.Errorf("%w: payment of %s exceeds remaining balance of %s", apperrors.ErrValidation, amount, invoice.Remaining())
	}

	payment := domain.SupplierPayment{
		PaymentID:   uuid.NewString(),
		CompanyID:   companyID,
		InvoiceID:   invoiceID,
		Amount:      amount,
		PaymentDate: txn.TransactionDate,
		Method:      domain.MethodBankTransfer,
		Reference:   txn.Label,
		Notes:       "Rapprochement bancaire",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.supplierRepo.SaveSupplierPaymentInTx(ctx, tx, payment); err != nil {
		return fmt.Errorf("failed to save supplier payment: %w", err)
	}

	newPaid := invoice.AmountPaid.Add(amount)
	newStatus := domain.PaymentStatusFor(newPaid, invoice.TotalTTC)
	if err := s.supplierRepo.UpdateSupplierInvoicePaymentInTx(ctx, tx, invoiceID, newPaid, newStatus, userID, now); err != nil {
		return fmt.Errorf("failed to update supplier invoice payment: %w", err)
	}

	if _, err := s.poster.PostInTx(ctx, tx, domain.SupplierPaymentEvent(*invoice, payment), userID); err != nil {
		return err
	}
	return nil
}
