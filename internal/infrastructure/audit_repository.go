package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/audit"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

var _ audit.Repository = (*AuditRepository)(nil)

type auditLogDB struct {
	Id          string    `gorm:"type:varchar(26);primaryKey;column:id"`
	ChurchId    string    `gorm:"type:varchar(26);not null;column:church_id"`
	UserId      string    `gorm:"type:varchar(26);not null;column:user_id"`
	Action      string    `gorm:"type:varchar(50);not null;column:action"`
	Entity      string    `gorm:"type:varchar(50);not null;column:entity"`
	EntityId    string    `gorm:"type:varchar(26);column:entity_id"`
	Description string    `gorm:"size:500;column:description"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`
}

func toDomainAuditLog(adb *auditLogDB) (*audit.AuditLog, error) {
	id, err := pkg.ParseULID(adb.Id)
	if err != nil {
		return nil, err
	}
	churchID, err := pkg.ParseULID(adb.ChurchId)
	if err != nil {
		return nil, err
	}
	userID, err := pkg.ParseULID(adb.UserId)
	if err != nil {
		return nil, err
	}
	return &audit.AuditLog{
		Id:          id,
		ChurchId:    churchID,
		UserId:      userID,
		Action:      adb.Action,
		Entity:      adb.Entity,
		EntityId:    adb.EntityId,
		Description: adb.Description,
		CreatedAt:   adb.CreatedAt,
	}, nil
}

func (r *AuditRepository) Create(ctx context.Context, entry *audit.AuditLog) error {
	adb := &auditLogDB{
		Id:          entry.Id.String(),
		ChurchId:    entry.ChurchId.String(),
		UserId:      entry.UserId.String(),
		Action:      entry.Action,
		Entity:      entry.Entity,
		EntityId:    entry.EntityId,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
	return r.DB.WithContext(ctx).Table("audit_logs").Create(adb).Error
}

func (r *AuditRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*audit.AuditLog, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("audit_logs").Where("church_id = ?", churchID.String())
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainAuditLog)
}
