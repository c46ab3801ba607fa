package routes

import (
	"net/http"
	"strconv"
	"time"

	"Ecclesia/internal/contracts"
	"Ecclesia/internal/domain/payable"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreatePayable(c *gin.Context) {
	userID, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.PayableCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &payable.CreatePayableRequest{
		ChurchId:    churchID,
		ActorId:     userID,
		Description: body.Description,
		Amount:      body.Amount,
		DueDate:     body.DueDate,
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
	p, err := h.PayableService.CreatePayable(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.PayableResponse{
		Message: "Conta a pagar criada com sucesso",
		Payable: p,
	})
}

func (h *Handler) ListPayables(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := &payable.Filters{}
	if raw := c.Query("paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("paid", "use true ou false"))
			return
		}
		filters.Paid = &paid
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
	payables, total, err := h.PayableService.ListPayables(ctx, churchID, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(payables, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetPayable(c *gin.Context) {
	payableID, err := pkg.ParseULID(c.Param("id"))
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
	p, err := h.PayableService.GetPayableByID(ctx, payableID, churchID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payable": p})
}

// PayPayable quita a conta: exige caixa com saldo do dia suficiente e gera o
// lançamento de despesa correspondente.
func (h *Handler) PayPayable(c *gin.Context) {
	payableID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	userID, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	p, err := h.PayableService.MarkAsPaid(ctx, payableID, churchID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PayableResponse{
		Message: "Conta paga com sucesso",
		Payable: p,
	})
}

func (h *Handler) UpdatePayable(c *gin.Context) {
	payableID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.PayableUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &payable.UpdatePayableRequest{
		Description: body.Description,
		Amount:      body.Amount,
		DueDate:     body.DueDate,
	}
	if body.CategoryId != nil {
		categoryID, err := pkg.ParseULIDPtr(body.CategoryId)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("category_id", "formato inválido"))
			return
		}
		req.CategoryId = categoryID
	}

	ctx := c.Request.Context()
	p, err := h.PayableService.UpdatePayable(ctx, payableID, churchID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PayableResponse{
		Message: "Conta a pagar atualizada com sucesso",
		Payable: p,
	})
}

func (h *Handler) DeletePayable(c *gin.Context) {
	payableID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	userID, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.PayableService.DeletePayable(ctx, payableID, churchID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Conta a pagar removida com sucesso"})
}
