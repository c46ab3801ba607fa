package routes

import (
	"net/http"

	"Ecclesia/internal/contracts"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	userID, _, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	notifications, total, err := h.NotificationService.ListForUser(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, appErrors.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(notifications, pagination.Page, pagination.Limit, total))
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	notificationID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	userID, _, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.NotificationService.MarkAsRead(ctx, notificationID, userID); err != nil {
		h.respondError(c, appErrors.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Notificação marcada como lida"})
}
