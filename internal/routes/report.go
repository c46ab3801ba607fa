package routes

import (
	"net/http"
	"time"

	appErrors "Ecclesia/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCurrentMonthReport(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	rep, err := h.ReportService.GetCurrentMonthReport(ctx, churchID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": rep})
}

func (h *Handler) GetPeriodReport(c *gin.Context) {
	_, churchID, err := h.GetAuthContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	start, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("start_date", "use o formato AAAA-MM-DD"))
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("end_date", "use o formato AAAA-MM-DD"))
		return
	}

	ctx := c.Request.Context()
	rep, err := h.ReportService.GetPeriodReport(ctx, churchID, start, end)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": rep})
}
