package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finledger/internal/errors"
	"finledger/internal/filter"
	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/pagination"
	"finledger/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// TransactionRequest represents the payload for creating or replacing a transaction.
// Amount accepts a JSON number or a decimal string.
type TransactionRequest struct {
	Category string                 `json:"category" binding:"required"`
	Amount   *money.Amount          `json:"amount" swaggertype:"string" example:"50.00" binding:"required,money"`
	Date     *models.Date           `json:"date" swaggertype:"string" example:"2024-01-05" binding:"required"`
	Type     models.TransactionType `json:"type" enums:"income,expense" binding:"required,transaction_type"`
}

// PatchTransactionRequest represents the payload for a partial transaction update
type PatchTransactionRequest struct {
	Category *string                 `json:"category" binding:"omitempty,notblank"`
	Amount   *money.Amount           `json:"amount" swaggertype:"string" example:"50.00" binding:"omitempty,money"`
	Date     *models.Date            `json:"date" swaggertype:"string" example:"2024-01-05"`
	Type     *models.TransactionType `json:"type" enums:"income,expense" binding:"omitempty,transaction_type"`
}

func (r TransactionRequest) patch() services.TransactionPatch {
	return services.TransactionPatch{
		CategoryID: &r.Category,
		Amount:     r.Amount,
		Date:       r.Date,
		Type:       &r.Type,
	}
}

func (r PatchTransactionRequest) patch() services.TransactionPatch {
	return services.TransactionPatch{
		CategoryID: r.Category,
		Amount:     r.Amount,
		Date:       r.Date,
		Type:       r.Type,
	}
}

func auditChanges(t *models.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"category": t.CategoryID,
		"amount":   t.Amount.String(),
		"date":     t.Date.String(),
		"type":     t.Type,
	}
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an income or expense in one of the user's categories
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, services.TransactionInput{
		CategoryID: req.Category,
		Amount:     *req.Amount,
		Date:       *req.Date,
		Type:       req.Type,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateTransaction, "transaction", transaction.ID, c.ClientIP(),
		auditChanges(transaction))

	c.JSON(http.StatusCreated, transaction)
}

// GetUserTransactions handles the retrieval of the user's transactions
// @Summary     List transactions
// @Description Get a paginated list of the authenticated user's transactions, newest first, with optional filters. Bounds are inclusive.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Param       category    query string false "Category ID"
// @Param       type        query string false "income or expense"
// @Param       min_amount  query string false "Minimum amount, e.g. 100.00"
// @Param       max_amount  query string false "Maximum amount"
// @Param       date_after  query string false "Earliest date (YYYY-MM-DD)"
// @Param       date_before query string false "Latest date (YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	params, err := filter.Parse(c.Request.URL.Query())
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetUserTransactions(userID, page, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID handles the retrieval of a single transaction
// @Summary     Get a transaction
// @Description Get one of the authenticated user's transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, apperrors.ErrTransactionNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction handles a full transaction update
// @Summary     Replace a transaction
// @Description Replace all fields of a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req TransactionRequest
	h.update(c, &req, func() services.TransactionPatch { return req.patch() })
}

// PatchTransaction handles a partial transaction update
// @Summary     Update a transaction
// @Description Update the supplied fields of a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Transaction ID"
// @Param       request body PatchTransactionRequest true "Fields to change"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [patch]
func (h *TransactionHandler) PatchTransaction(c *gin.Context) {
	var req PatchTransactionRequest
	h.update(c, &req, func() services.TransactionPatch { return req.patch() })
}

// update binds req and applies the patch built from it.
func (h *TransactionHandler) update(c *gin.Context, req interface{}, patch func() services.TransactionPatch) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, apperrors.ErrTransactionNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := bindJSON(c, req); err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, patch())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdateTransaction, "transaction", transaction.ID, c.ClientIP(),
		auditChanges(transaction))

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles the deletion of a transaction
// @Summary     Delete a transaction
// @Description Delete one of the authenticated user's transactions
// @Tags        transactions
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, apperrors.ErrTransactionNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteTransaction, "transaction", transactionID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
