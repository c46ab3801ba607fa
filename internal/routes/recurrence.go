package routes

import (
	"net/http"

	"Ecclesia/internal/contracts"
	"Ecclesia/internal/domain/recurrence"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateRecurrence(c *gin.Context) {
	userID, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.RecurrenceCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &recurrence.CreateRecurrenceRequest{
		ChurchId:    churchID,
		ActorId:     userID,
		Description: body.Description,
		Amount:      body.Amount,
		Frequency:   recurrence.Frequency(body.Frequency),
		DueDay:      body.DueDay,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
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
	r, err := h.RecurrenceService.CreateRecurrence(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.RecurrenceResponse{
		Message:    "Recorrência criada com sucesso",
		Recurrence: r,
	})
}

func (h *Handler) ListRecurrences(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var status *recurrence.Status
	if raw := c.Query("status"); raw != "" {
		s := recurrence.Status(raw)
		status = &s
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	recurrences, total, err := h.RecurrenceService.ListRecurrences(ctx, churchID, status, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(recurrences, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetRecurrence(c *gin.Context) {
	recurrenceID, err := pkg.ParseULID(c.Param("id"))
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
	r, err := h.RecurrenceService.GetRecurrenceByID(ctx, recurrenceID, churchID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurrence": r})
}

func (h *Handler) UpdateRecurrence(c *gin.Context) {
	recurrenceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.RecurrenceUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	r, err := h.RecurrenceService.UpdateRecurrence(ctx, recurrenceID, churchID, &recurrence.UpdateRecurrenceRequest{
		Description: body.Description,
		EndDate:     body.EndDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RecurrenceResponse{
		Message:    "Recorrência atualizada com sucesso",
		Recurrence: r,
	})
}
