package fx

import (
	"Ecclesia/config"
	"Ecclesia/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newChurchRepository,
		newUserRepository,
		newMemberRepository,
		newCategoryRepository,
		newTransactionRepository,
		newDailyCashRepository,
		newRecurrenceRepository,
		newPayableRepository,
		newReceivableRepository,
		newAuditRepository,
		newNotificationRepository,
		newDashboardRepository,
		newReportRepository,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newChurchRepository(db *gorm.DB) *infrastructure.ChurchRepository {
	return &infrastructure.ChurchRepository{DB: db}
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return &infrastructure.UserRepository{DB: db}
}

func newMemberRepository(db *gorm.DB) *infrastructure.MemberRepository {
	return &infrastructure.MemberRepository{DB: db}
}

func newCategoryRepository(db *gorm.DB) *infrastructure.CategoryRepository {
	return &infrastructure.CategoryRepository{DB: db}
}

func newTransactionRepository(db *gorm.DB) *infrastructure.TransactionRepository {
	return &infrastructure.TransactionRepository{DB: db}
}

func newDailyCashRepository(db *gorm.DB) *infrastructure.DailyCashRepository {
	return &infrastructure.DailyCashRepository{DB: db}
}

func newRecurrenceRepository(db *gorm.DB) *infrastructure.RecurrenceRepository {
	return &infrastructure.RecurrenceRepository{DB: db}
}

func newPayableRepository(db *gorm.DB) *infrastructure.PayableRepository {
	return &infrastructure.PayableRepository{DB: db}
}

func newReceivableRepository(db *gorm.DB) *infrastructure.ReceivableRepository {
	return &infrastructure.ReceivableRepository{DB: db}
}

func newAuditRepository(db *gorm.DB) *infrastructure.AuditRepository {
	return &infrastructure.AuditRepository{DB: db}
}

func newNotificationRepository(db *gorm.DB) *infrastructure.NotificationRepository {
	return &infrastructure.NotificationRepository{DB: db}
}

func newDashboardRepository(db *gorm.DB) *infrastructure.DashboardRepository {
	return &infrastructure.DashboardRepository{DB: db}
}

func newReportRepository(db *gorm.DB) *infrastructure.ReportRepository {
	return &infrastructure.ReportRepository{DB: db}
}
