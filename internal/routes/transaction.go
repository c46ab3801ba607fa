package routes

import (
	"net/http"
	"time"

	"Ecclesia/internal/contracts"
	"Ecclesia/internal/domain/transaction"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTransaction(c *gin.Context) {
	userID, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.TransactionCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &transaction.CreateTransactionRequest{
		ChurchId:    churchID,
		ActorId:     userID,
		Type:        transaction.Types(body.Type),
		Amount:      body.Amount,
		Description: body.Description,
		Date:        body.Date,
	}

	if body.CategoryId != "" {
		categoryID, err := pkg.ParseULID(body.CategoryId)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
			return
		}
		req.CategoryId = &categoryID
	}

	ctx := c.Request.Context()
	t, err := h.TransactionService.CreateTransaction(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionResponse{
		Message:     "Lançamento registrado com sucesso",
		Transaction: t,
	})
}

func (h *Handler) ListTransactions(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := &transaction.Filters{}
	if raw := c.Query("type"); raw != "" {
		t := transaction.Types(raw)
		filters.Type = &t
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := pkg.ParseULID(raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
			return
		}
		filters.CategoryId = &categoryID
	}
	if raw := c.Query("start_date"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("start_date", "use o formato AAAA-MM-DD"))
			return
		}
		filters.StartDate = &start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("end_date", "use o formato AAAA-MM-DD"))
			return
		}
		filters.EndDate = &end
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	transactions, total, err := h.TransactionService.ListTransactions(ctx, churchID, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(transactions, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	t, err := h.TransactionService.GetTransactionByID(ctx, transactionID, churchID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": t})
}
