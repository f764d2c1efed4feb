package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/dto"
	"github.com/yaffasoft/sunucompta/internal/middleware"
)

// supplierInvoiceHandler handles HTTP requests for supplier invoices and their
// payments.
type supplierInvoiceHandler struct {
	supplierService portssvc.SupplierInvoiceSvcFacade
	paymentService  portssvc.PaymentSvcFacade
}

func newSupplierInvoiceHandler(ss portssvc.SupplierInvoiceSvcFacade, ps portssvc.PaymentSvcFacade) *supplierInvoiceHandler {
	return &supplierInvoiceHandler{supplierService: ss, paymentService: ps}
}

// registerSupplierInvoiceRoutes registers routes related to supplier invoices.
func registerSupplierInvoiceRoutes(rg *gin.RouterGroup, supplierService portssvc.SupplierInvoiceSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newSupplierInvoiceHandler(supplierService, paymentService)

	invoices := rg.Group("/supplier-invoices")
	{
		invoices.POST("", h.createSupplierInvoice)
		invoices.GET("", h.listSupplierInvoices)
		invoices.GET("/:invoiceID", h.getSupplierInvoice)
		invoices.POST("/:invoiceID/payments", h.applySupplierPayment)
	}
}

func (h *supplierInvoiceHandler) createSupplierInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSupplierInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSupplierInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	invoice, err := h.supplierService.CreateSupplierInvoice(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to register supplier invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSupplierInvoiceResponse(invoice))
}

func (h *supplierInvoiceHandler) getSupplierInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	invoice, err := h.supplierService.GetSupplierInvoiceByID(c.Request.Context(), companyID, c.Param("invoiceID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve supplier invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierInvoiceResponse(invoice))
}

func (h *supplierInvoiceHandler) listSupplierInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	resp, err := h.supplierService.ListSupplierInvoices(c.Request.Context(), companyID, listInvoiceParams(c))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list supplier invoices")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *supplierInvoiceHandler) applySupplierPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applySupplierPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.ApplySupplierPayment(c.Request.Context(), companyID, c.Param("invoiceID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to apply supplier payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSupplierPaymentResponse(payment))
}
