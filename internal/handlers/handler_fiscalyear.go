package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/dto"
	"github.com/yaffasoft/sunucompta/internal/middleware"
)

// fiscalYearHandler handles HTTP requests related to fiscal years.
type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvcFacade
}

func newFiscalYearHandler(fs portssvc.FiscalYearSvcFacade) *fiscalYearHandler {
	return &fiscalYearHandler{fiscalYearService: fs}
}

// registerFiscalYearRoutes registers routes related to fiscal years.
func registerFiscalYearRoutes(rg *gin.RouterGroup, fiscalYearService portssvc.FiscalYearSvcFacade) {
	h := newFiscalYearHandler(fiscalYearService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.POST("/:fiscalYearID/close", h.closeFiscalYear)
	}
}

func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	year, err := h.fiscalYearService.CreateFiscalYear(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create fiscal year")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(year))
}

func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	years, err := h.fiscalYearService.ListFiscalYears(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list fiscal years")
		return
	}

	c.JSON(http.StatusOK, gin.H{"fiscalYears": dto.ToFiscalYearResponses(years)})
}

func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscalYearID")

	userID, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	if err := h.fiscalYearService.CloseFiscalYear(c.Request.Context(), companyID, fiscalYearID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to close fiscal year")
		return
	}

	c.Status(http.StatusNoContent)
}
