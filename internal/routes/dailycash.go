package routes

import (
	"net/http"
	"time"

	"Ecclesia/internal/contracts"
	"Ecclesia/internal/domain/dailycash"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/gin-gonic/gin"
)

// OpenDailyCash garante o caixa do dia corrente. Idempotente: repetir a
// chamada devolve o mesmo registro.
func (h *Handler) OpenDailyCash(c *gin.Context) {
	userID, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	dc, err := h.DailyCashService.EnsureOpen(ctx, churchID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.DailyCashResponse{
		Message:   "Caixa do dia disponível",
		DailyCash: dc,
	})
}

func (h *Handler) CloseDailyCash(c *gin.Context) {
	userID, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.DailyCashCloseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("date", "use o formato AAAA-MM-DD"))
		return
	}

	ctx := c.Request.Context()
	dc, err := h.DailyCashService.Close(ctx, &dailycash.CloseRequest{
		ChurchId:      churchID,
		ActorId:       userID,
		Date:          date,
		ClosingAmount: body.ClosingAmount,
		Notes:         body.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.DailyCashResponse{
		Message:   "Caixa fechado com sucesso",
		DailyCash: dc,
	})
}

// GetDailyCash devolve o caixa de uma data com o saldo corrente do dia.
func (h *Handler) GetDailyCash(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("date", "use o formato AAAA-MM-DD"))
			return
		}
		date = parsed
	}

	ctx := c.Request.Context()
	dc, err := h.DailyCashService.GetByDate(ctx, churchID, date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	balance, err := h.DailyCashService.CurrentBalance(ctx, dc)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.DailyCashBalanceResponse{
		DailyCash: dc,
		Balance:   balance,
	})
}

func (h *Handler) ListDailyCash(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	items, total, err := h.DailyCashService.List(ctx, churchID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(items, pagination.Page, pagination.Limit, total))
}
