package routes

import (
	"net/http"

	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListAuditLogs(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	entries, total, err := h.AuditService.List(ctx, churchID, pagination)
	if err != nil {
		h.respondError(c, appErrors.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(entries, pagination.Page, pagination.Limit, total))
}
