package routes

import (
	"Ecclesia/internal/domain/audit"
	"Ecclesia/internal/domain/category"
	"Ecclesia/internal/domain/church"
	"Ecclesia/internal/domain/dailycash"
	"Ecclesia/internal/domain/dashboard"
	"Ecclesia/internal/domain/member"
	"Ecclesia/internal/domain/notification"
	"Ecclesia/internal/domain/payable"
	"Ecclesia/internal/domain/receivable"
	"Ecclesia/internal/domain/recurrence"
	"Ecclesia/internal/domain/report"
	"Ecclesia/internal/domain/transaction"
	"Ecclesia/internal/domain/user"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/logger"
	"Ecclesia/internal/middleware"
	"Ecclesia/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type Handler struct {
	UserService         *user.Service
	ChurchService       *church.Service
	MemberService       *member.Service
	CategoryService     *category.Service
	TransactionService  *transaction.Service
	DailyCashService    *dailycash.Service
	RecurrenceService   *recurrence.Service
	PayableService      *payable.Service
	ReceivableService   *receivable.Service
	DashboardService    *dashboard.Service
	ReportService       *report.Service
	AuditService        *audit.Service
	NotificationService *notification.Service
	JwtService          *middleware.JwtService
}

// GetAuthContext resolve usuário e igreja autenticados da requisição.
func (h *Handler) GetAuthContext(c *gin.Context) (ulid.ULID, ulid.ULID, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return ulid.ULID{}, ulid.ULID{}, appErrors.ErrUnauthorized
	}
	churchID, ok := middleware.GetChurchID(c)
	if !ok {
		return ulid.ULID{}, ulid.ULID{}, appErrors.ErrUnauthorized
	}
	return userID, churchID, nil
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	var pageNum, limitNum int
	if p, err := pkg.ParseInt(page); err == nil && p > 0 {
		pageNum = p
	} else {
		pageNum = 1
	}

	if l, err := pkg.ParseInt(limit); err == nil && l > 0 {
		limitNum = l
	} else {
		limitNum = 10
	}

	return &pkg.PaginationParams{
		Page:  pageNum,
		Limit: limitNum,
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Error().Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")
	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
