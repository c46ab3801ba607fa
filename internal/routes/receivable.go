package routes

import (
	"net/http"
	"strconv"
	"time"

	"Ecclesia/internal/contracts"
	"Ecclesia/internal/domain/receivable"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateReceivable(c *gin.Context) {
	userID, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.ReceivableCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &receivable.CreateReceivableRequest{
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
	if body.MemberId != "" {
		memberID, err := pkg.ParseULID(body.MemberId)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("member_id", "formato inválido"))
			return
		}
		req.MemberId = &memberID
	}

	ctx := c.Request.Context()
	r, err := h.ReceivableService.CreateReceivable(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.ReceivableResponse{
		Message:    "Conta a receber criada com sucesso",
		Receivable: r,
	})
}

func (h *Handler) ListReceivables(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := &receivable.Filters{}
	if raw := c.Query("received"); raw != "" {
		received, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("received", "use true ou false"))
			return
		}
		filters.Received = &received
	}
	if raw := c.Query("member_id"); raw != "" {
		memberID, err := pkg.ParseULID(raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("member_id", "formato inválido"))
			return
		}
		filters.MemberId = &memberID
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
	receivables, total, err := h.ReceivableService.ListReceivables(ctx, churchID, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(receivables, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetReceivable(c *gin.Context) {
	receivableID, err := pkg.ParseULID(c.Param("id"))
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
	r, err := h.ReceivableService.GetReceivableByID(ctx, receivableID, churchID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"receivable": r})
}

// ReceiveReceivable baixa o recebimento e gera o lançamento de entrada.
func (h *Handler) ReceiveReceivable(c *gin.Context) {
	receivableID, err := pkg.ParseULID(c.Param("id"))
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
	r, err := h.ReceivableService.MarkAsReceived(ctx, receivableID, churchID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ReceivableResponse{
		Message:    "Conta recebida com sucesso",
		Receivable: r,
	})
}

func (h *Handler) UpdateReceivable(c *gin.Context) {
	receivableID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.ReceivableUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &receivable.UpdateReceivableRequest{
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
	r, err := h.ReceivableService.UpdateReceivable(ctx, receivableID, churchID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ReceivableResponse{
		Message:    "Conta a receber atualizada com sucesso",
		Receivable: r,
	})
}

func (h *Handler) DeleteReceivable(c *gin.Context) {
	receivableID, err := pkg.ParseULID(c.Param("id"))
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
	if err := h.ReceivableService.DeleteReceivable(ctx, receivableID, churchID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Conta a receber removida com sucesso"})
}
