package fx

import (
	"time"

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
	"Ecclesia/internal/middleware"
	"Ecclesia/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece o handler e o rate limiter das rotas públicas
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newAuthRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	churchSvc *church.Service,
	memberSvc *member.Service,
	categorySvc *category.Service,
	transactionSvc *transaction.Service,
	dailyCashSvc *dailycash.Service,
	recurrenceSvc *recurrence.Service,
	payableSvc *payable.Service,
	receivableSvc *receivable.Service,
	dashboardSvc *dashboard.Service,
	reportSvc *report.Service,
	auditSvc *audit.Service,
	notificationSvc *notification.Service,
	jwtSvc *middleware.JwtService,
) *routes.Handler {
	return &routes.Handler{
		UserService:         userSvc,
		ChurchService:       churchSvc,
		MemberService:       memberSvc,
		CategoryService:     categorySvc,
		TransactionService:  transactionSvc,
		DailyCashService:    dailyCashSvc,
		RecurrenceService:   recurrenceSvc,
		PayableService:      payableSvc,
		ReceivableService:   receivableSvc,
		DashboardService:    dashboardSvc,
		ReportService:       reportSvc,
		AuditService:        auditSvc,
		NotificationService: notificationSvc,
		JwtService:          jwtSvc,
	}
}

func newAuthRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
