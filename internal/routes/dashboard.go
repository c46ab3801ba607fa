package routes

import (
	"net/http"

	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDashboardSummary(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	summary, err := h.DashboardService.GetSummary(ctx, churchID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h *Handler) GetDashboardCategoryExpenses(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	totals, err := h.DashboardService.GetMonthCategoryExpenses(ctx, churchID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

func (h *Handler) GetDashboardRecentTransactions(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := pkg.ParseInt(raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("limit", "deve ser um número"))
			return
		}
		limit = parsed
	}

	ctx := c.Request.Context()
	transactions, err := h.DashboardService.GetRecentTransactions(ctx, churchID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
