package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/dto"
	"github.com/yaffasoft/sunucompta/internal/middleware"
)

// payrollHandler handles HTTP requests for payroll runs.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

func newPayrollHandler(ps portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{payrollService: ps}
}

// registerPayrollRoutes registers routes related to payroll runs.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	runs := rg.Group("/payroll-runs")
	{
		runs.POST("", h.createRun)
		runs.GET("", h.listRuns)
		runs.GET("/:runID", h.getRun)
	}
}

func (h *payrollHandler) createRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePayrollRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRun", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	run, err := h.payrollService.CreateRun(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create payroll run")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPayrollRunResponse(run))
}

func (h *payrollHandler) getRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	run, err := h.payrollService.GetRunByID(c.Request.Context(), companyID, c.Param("runID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve payroll run")
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollRunResponse(run))
}

func (h *payrollHandler) listRuns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	runs, err := h.payrollService.ListRuns(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list payroll runs")
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": dto.ToPayrollRunResponses(runs)})
}
