package handlers

import (
	"net/http"

	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/David2024patton/studio4-dance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// billingHandler handles ledger account and transaction requests.
type billingHandler struct {
	billingService portssvc.BillingSvcFacade
}

func newBillingHandler(bs portssvc.BillingSvcFacade) *billingHandler {
	return &billingHandler{billingService: bs}
}

// RegisterBillingRoutes registers all billing routes.
func RegisterBillingRoutes(rg *gin.RouterGroup, billingService portssvc.BillingSvcFacade) {
	h := newBillingHandler(billingService)

	billing := rg.Group("/billing")
	{
		billing.GET("/account", h.getOwnAccount)
		billing.GET("/account/:parentID", h.getAccountByParent)
		billing.GET("/transactions", h.listTransactions)
		billing.GET("/transactions/:accountID", h.listAccountTransactions)
		billing.POST("/transactions", h.createTransaction)
		billing.POST("/payment", h.makePayment)
		billing.POST("/charge", h.createCharge)
		billing.GET("/summary/:parentID", h.getSummary)
	}
}

// getOwnAccount godoc
// @Summary Get own ledger account
// @Description Returns the calling parent's account with its cached balance.
// @Tags billing
// @Produce json
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Staff must use the by-parent lookup"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/billing/account [get]
func (h *billingHandler) getOwnAccount(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.billingService.GetOwnAccount(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Account not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountByParent godoc
// @Summary Get a parent's ledger account
// @Description Billing staff lookup by parent ID.
// @Tags billing
// @Produce json
// @Param parentID path string true "Parent ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/billing/account/{parentID} [get]
func (h *billingHandler) getAccountByParent(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.billingService.GetAccountByParentID(c.Request.Context(), caller, c.Param("parentID"))
	if err != nil {
		respondError(c, err, "Account not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listTransactions godoc
// @Summary List ledger transactions
// @Description Parents see their own account's entries; billing staff see all. Newest first.
// @Tags billing
// @Produce json
// @Param transactionType query string false "charge or payment"
// @Param status query string false "Transaction status"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.TransactionResponse
// @Security BearerAuth
// @Router /api/v1/billing/transactions [get]
func (h *billingHandler) listTransactions(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.billingService.ListTransactions(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, err, "Account not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// listAccountTransactions godoc
// @Summary List one account's transactions
// @Tags billing
// @Produce json
// @Param accountID path string true "Account ID"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/billing/transactions/{accountID} [get]
func (h *billingHandler) listAccountTransactions(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.billingService.ListTransactionsByAccount(c.Request.Context(), caller, c.Param("accountID"), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Account not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// createTransaction godoc
// @Summary Record a raw ledger transaction
// @Description Billing staff only. The amount sign is normalized from the type: charges positive, payments negative.
// @Tags billing
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/billing/transactions [post]
func (h *billingHandler) createTransaction(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.billingService.CreateTransaction(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Account not found")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// makePayment godoc
// @Summary Record a payment
// @Description Parents may pay their own account; billing staff any account.
// @Tags billing
// @Accept json
// @Produce json
// @Param payment body dto.PaymentRequest true "Payment details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/billing/payment [post]
func (h *billingHandler) makePayment(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.billingService.MakePayment(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Account not found")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// createCharge godoc
// @Summary Record a charge
// @Description Billing staff only. Optional student reference and due date.
// @Tags billing
// @Accept json
// @Produce json
// @Param charge body dto.ChargeRequest true "Charge details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/billing/charge [post]
func (h *billingHandler) createCharge(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.billingService.CreateCharge(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Account or student not found")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getSummary godoc
// @Summary Summarize a parent's ledger
// @Description Billing staff only. Totals of charges and payments plus balance status.
// @Tags billing
// @Produce json
// @Param parentID path string true "Parent ID"
// @Success 200 {object} dto.BillingSummaryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/billing/summary/{parentID} [get]
func (h *billingHandler) getSummary(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.billingService.GetSummary(c.Request.Context(), caller, c.Param("parentID"))
	if err != nil {
		respondError(c, err, "Account not found")
		return
	}
	c.JSON(http.StatusOK, dto.BillingSummaryResponse{
		AccountID:      summary.AccountID,
		CurrentBalance: summary.CurrentBalance,
		TotalCharges:   summary.TotalCharges,
		TotalPayments:  summary.TotalPayments,
		Status:         summary.Status,
	})
}
