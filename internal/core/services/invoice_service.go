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

// invoiceService manages the client invoice lifecycle.
type invoiceService struct {
	txm         portsrepo.TransactionManager
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	poster      portssvc.LedgerPoster
}

// NewInvoiceService creates a new client invoice service.
func NewInvoiceService(txm portsrepo.TransactionManager, invoiceRepo portsrepo.InvoiceRepositoryFacade, poster portssvc.LedgerPoster) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		txm:         txm,
		invoiceRepo: invoiceRepo,
		poster:      poster,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// validateInvoiceTotals checks amount signs and the HT + TVA == TTC identity.
func validateInvoiceTotals(totalHT, totalTVA, totalTTC decimal.Decimal) error {
	if totalHT.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: totalHT must be positive", apperrors.ErrValidation)
	}
	if totalTVA.IsNegative() {
		return fmt.Errorf("%w: totalTVA must not be negative", apperrors.ErrValidation)
	}
	if !totalHT.Add(totalTVA).Equal(totalTTC) {
		return fmt.Errorf("%w: totalTTC %s does not equal totalHT %s + totalTVA %s", apperrors.ErrValidation, totalTTC, totalHT, totalTVA)
	}
	return nil
}

// CreateInvoice creates a draft client invoice.
func (s *invoiceService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateInvoiceTotals(req.TotalHT, req.TotalTVA, req.TotalTTC); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:  uuid.NewString(),
		CompanyID:  companyID,
		Number:     req.Number,
		ClientName: req.ClientName,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		TotalHT:    req.TotalHT,
		TotalTVA:   req.TotalTVA,
		TotalTTC:   req.TotalTTC,
		AmountPaid: decimal.Zero,
		Status:     domain.InvoiceDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("number", req.Number))
		return nil, err
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("number", invoice.Number))
	return &invoice, nil
}

// SendInvoice transitions a draft invoice to SENT and posts the sales entry in the
// same transaction. If the posting prerequisite check fails the invoice stays DRAFT.
func (s *invoiceService) SendInvoice(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var sent *domain.Invoice
	err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.CompanyID != companyID {
			return apperrors.ErrNotFound
		}
		if invoice.Status != domain.InvoiceDraft {
			return fmt.Errorf("%w: invoice %s has already been sent (status %s)", apperrors.ErrConflict, invoice.Number, invoice.Status)
		}

		now := time.Now().UTC()
		if err := s.invoiceRepo.UpdateInvoiceStatusInTx(ctx, tx, invoiceID, domain.InvoiceSent, userID, now); err != nil {
			return fmt.Errorf("failed to update invoice status: %w", err)
		}

		if _, err := s.poster.PostInTx(ctx, tx, domain.InvoiceEmissionEvent(*invoice), userID); err != nil {
			return err
		}

		invoice.Status = domain.InvoiceSent
		invoice.LastUpdatedAt = now
		invoice.LastUpdatedBy = userID
		sent = invoice
		return nil
	})
	if err != nil {
		logger.Warn("Invoice send failed", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Invoice sent", slog.String("invoice_id", invoiceID), slog.String("number", sent.Number))
	return sent, nil
}

// CancelInvoice cancels an invoice that has no payments applied.
func (s *invoiceService) CancelInvoice(ctx context.Context, companyID string, invoiceID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	return s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.CompanyID != companyID {
			return apperrors.ErrNotFound
		}
		if invoice.Status == domain.InvoiceCancelled {
			return fmt.Errorf("%w: invoice %s is already cancelled", apperrors.ErrConflict, invoice.Number)
		}
		if invoice.AmountPaid.IsPositive() {
			return fmt.Errorf("%w: invoice %s has payments applied and cannot be cancelled", apperrors.ErrConflict, invoice.Number)
		}

		if err := s.invoiceRepo.UpdateInvoiceStatusInTx(ctx, tx, invoiceID, domain.InvoiceCancelled, userID, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to cancel invoice: %w", err)
		}
		logger.Info("Invoice cancelled", slog.String("invoice_id", invoiceID))
		return nil
	})
}

// GetInvoiceByID retrieves an invoice scoped to the company.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return invoice, nil
}

// ListInvoices retrieves a paginated list of the company's invoices.
func (s *invoiceService) ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoicesByCompany(ctx, companyID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	resp := &dto.ListInvoicesResponse{
		Invoices:  make([]dto.InvoiceResponse, len(invoices)),
		NextToken: nextToken,
	}
	for i := range invoices {
		resp.Invoices[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	return resp, nil
}

// ListPayments retrieves the payments applied to an invoice.
func (s *invoiceService) ListPayments(ctx context.Context, companyID string, invoiceID string) ([]domain.Payment, error) {
	if _, err := s.GetInvoiceByID(ctx, companyID, invoiceID); err != nil {
		return nil, err
	}
	return s.invoiceRepo.ListPaymentsByInvoice(ctx, invoiceID)
}

// supplierInvoiceService manages supplier invoices. Registered invoices start PENDING;
// there is no emission posting on our side of a purchase.
type supplierInvoiceService struct {
	supplierRepo portsrepo.SupplierInvoiceRepositoryFacade
}

// NewSupplierInvoiceService creates a new supplier invoice service.
func NewSupplierInvoiceService(supplierRepo portsrepo.SupplierInvoiceRepositoryFacade) portssvc.SupplierInvoiceSvcFacade {
	return &supplierInvoiceService{supplierRepo: supplierRepo}
}

var _ portssvc.SupplierInvoiceSvcFacade = (*supplierInvoiceService)(nil)

// CreateSupplierInvoice registers a received supplier invoice as PENDING.
func (s *supplierInvoiceService) CreateSupplierInvoice(ctx context.Context, companyID string, req dto.CreateSupplierInvoiceRequest, creatorUserID string) (*domain.SupplierInvoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateInvoiceTotals(req.TotalHT, req.TotalTVA, req.TotalTTC); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := domain.SupplierInvoice{
		InvoiceID:    uuid.NewString(),
		CompanyID:    companyID,
		Number:       req.Number,
		SupplierName: req.SupplierName,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		TotalHT:      req.TotalHT,
		TotalTVA:     req.TotalTVA,
		TotalTTC:     req.TotalTTC,
		AmountPaid:   decimal.Zero,
		Status:       domain.InvoicePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.supplierRepo.SaveSupplierInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save supplier invoice", slog.String("error", err.Error()), slog.String("number", req.Number))
		return nil, err
	}

	logger.Info("Supplier invoice registered", slog.String("invoice_id", invoice.InvoiceID), slog.String("number", invoice.Number))
	return &invoice, nil
}

// GetSupplierInvoiceByID retrieves a supplier invoice scoped to the company.
func (s *supplierInvoiceService) GetSupplierInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.SupplierInvoice, error) {
	invoice, err := s.supplierRepo.FindSupplierInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return invoice, nil
}

// ListSupplierInvoices retrieves a paginated list of supplier invoices.
func (s *supplierInvoiceService) ListSupplierInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) (*dto.ListSupplierInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	invoices, nextToken, err := s.supplierRepo.ListSupplierInvoicesByCompany(ctx, companyID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier invoices: %w", err)
	}

	resp := &dto.ListSupplierInvoicesResponse{
		Invoices:  make([]dto.SupplierInvoiceResponse, len(invoices)),
		NextToken: nextToken,
	}
	for i := range invoices {
		resp.Invoices[i] = dto.ToSupplierInvoiceResponse(&invoices[i])
	}
	return resp, nil
}
