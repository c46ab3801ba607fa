package fx

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
	"Ecclesia/internal/domain/shared"
	"Ecclesia/internal/domain/transaction"
	"Ecclesia/internal/domain/user"
	"Ecclesia/internal/infrastructure"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newChurchService,
		newUserService,
		newUserServiceAdapter,
		newUserCheckerService,
		newMemberService,
		newAuditService,
		newNotificationService,
		newCategoryService,
		newDailyCashService,
		newTransactionService,
		newRecurrenceService,
		newPayableService,
		newReceivableService,
		newDashboardService,
		newReportService,
	),
)

func newChurchService(repo *infrastructure.ChurchRepository) *church.Service {
	return church.NewService(repo)
}

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newUserServiceAdapter(userSvc *user.Service) *user.UserServiceAdapter {
	return user.NewUserServiceAdapter(userSvc)
}

func newUserCheckerService(adapter *user.UserServiceAdapter) *shared.UserCheckerService {
	return shared.NewUserCheckerService(adapter)
}

func newMemberService(
	repo *infrastructure.MemberRepository,
	userChecker *shared.UserCheckerService,
) *member.Service {
	return member.NewService(repo, userChecker)
}

func newAuditService(repo *infrastructure.AuditRepository) *audit.Service {
	return audit.NewService(repo)
}

func newNotificationService(repo *infrastructure.NotificationRepository) *notification.Service {
	return notification.NewService(repo)
}

func newCategoryService(
	repo *infrastructure.CategoryRepository,
	userChecker *shared.UserCheckerService,
) *category.Service {
	return category.NewService(repo, userChecker)
}

func newDailyCashService(
	repo *infrastructure.DailyCashRepository,
	ledger *infrastructure.TransactionRepository,
	auditSvc *audit.Service,
) *dailycash.Service {
	return dailycash.NewService(repo, ledger, auditSvc)
}

func newTransactionService(
	repo *infrastructure.TransactionRepository,
	categorySvc *category.Service,
	dailyCashSvc *dailycash.Service,
	auditSvc *audit.Service,
) *transaction.Service {
	return transaction.NewService(repo, categorySvc, dailyCashSvc, auditSvc)
}

func newRecurrenceService(
	repo *infrastructure.RecurrenceRepository,
	payableRepo *infrastructure.PayableRepository,
	categorySvc *category.Service,
	auditSvc *audit.Service,
) *recurrence.Service {
	return recurrence.NewService(repo, payableRepo, categorySvc, auditSvc)
}

func newPayableService(
	repo *infrastructure.PayableRepository,
	categorySvc *category.Service,
	dailyCashSvc *dailycash.Service,
	recurrenceSvc *recurrence.Service,
	auditSvc *audit.Service,
	notificationSvc *notification.Service,
) *payable.Service {
	svc := payable.NewService(repo, categorySvc, dailyCashSvc, auditSvc, notificationSvc)
	svc.Recurrences = recurrenceSvc
	return svc
}

func newReceivableService(
	repo *infrastructure.ReceivableRepository,
	categorySvc *category.Service,
	memberSvc *member.Service,
	dailyCashSvc *dailycash.Service,
	auditSvc *audit.Service,
	notificationSvc *notification.Service,
) *receivable.Service {
	return receivable.NewService(repo, categorySvc, memberSvc, dailyCashSvc, auditSvc, notificationSvc)
}

func newDashboardService(repo *infrastructure.DashboardRepository) *dashboard.Service {
	return dashboard.NewService(repo)
}

func newReportService(repo *infrastructure.ReportRepository) *report.Service {
	return report.NewService(repo)
}
