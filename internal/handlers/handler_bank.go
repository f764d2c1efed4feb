package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/dto"
	"github.com/yaffasoft/sunucompta/internal/middleware"
)

// bankHandler handles HTTP requests for bank accounts, transactions, matching rules
// and reconciliation.
type bankHandler struct {
	bankService           portssvc.BankSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newBankHandler(bs portssvc.BankSvcFacade, rs portssvc.ReconciliationSvcFacade) *bankHandler {
	return &bankHandler{bankService: bs, reconciliationService: rs}
}

// registerBankRoutes registers routes related to bank ingestion and reconciliation.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newBankHandler(bankService, reconciliationService)

	banks := rg.Group("/bank-accounts")
	{
		banks.POST("", h.createBankAccount)
		banks.GET("/:bankAccountID", h.getBankAccount)
		banks.POST("/:bankAccountID/import", h.importTransactions)
		banks.GET("/:bankAccountID/transactions", h.listTransactions)
	}

	transactions := rg.Group("/bank-transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.POST("/:transactionID/reconcile", h.reconcileTransaction)
	}

	rules := rg.Group("/matching-rules")
	{
		rules.POST("", h.createMatchingRule)
		rules.GET("", h.listMatchingRules)
	}
}

func (h *bankHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	account, err := h.bankService.CreateBankAccount(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create bank account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

func (h *bankHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	account, err := h.bankService.GetBankAccountByID(c.Request.Context(), companyID, c.Param("bankAccountID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve bank account")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

func (h *bankHandler) importTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportBankTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for importTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	result, err := h.bankService.ImportBatch(c.Request.Context(), companyID, c.Param("bankAccountID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to import bank transactions")
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *bankHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	resp, err := h.bankService.ListTransactions(c.Request.Context(), companyID, c.Param("bankAccountID"), limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list bank transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *bankHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	txn, err := h.bankService.CreateTransaction(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create bank transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankTransactionResponse(txn))
}

func (h *bankHandler) reconcileTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReconcileTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reconcileTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	txn, err := h.reconciliationService.Reconcile(c.Request.Context(), companyID, c.Param("transactionID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconcile bank transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}

func (h *bankHandler) createMatchingRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMatchingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createMatchingRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	rule, err := h.bankService.CreateMatchingRule(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create matching rule")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMatchingRuleResponse(rule))
}

func (h *bankHandler) listMatchingRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := identityFromContext(c)
	if !ok {
		return
	}

	rules, err := h.bankService.ListMatchingRules(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list matching rules")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": dto.ToMatchingRuleResponses(rules)})
}
