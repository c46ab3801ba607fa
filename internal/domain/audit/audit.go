package audit

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type AuditLog struct {
	Id          ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	ChurchId    ulid.ULID `gorm:"type:varchar(26);index:idx_audit_logs_church_id;not null" json:"churchId"`
	UserId      ulid.ULID `gorm:"type:varchar(26);index:idx_audit_logs_user_id;not null" json:"userId"`
	Action      string    `gorm:"type:varchar(50);not null" json:"action"`
	Entity      string    `gorm:"type:varchar(50);not null" json:"entity"`
	EntityId    string    `gorm:"type:varchar(26);index:idx_audit_logs_entity_id" json:"entityId"`
	Description string    `gorm:"type:varchar(500)" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

const (
	ActionCreate  = "CREATE"
	ActionUpdate  = "UPDATE"
	ActionDelete  = "DELETE"
	ActionOpen    = "OPEN"
	ActionClose   = "CLOSE"
	ActionPay     = "PAY"
	ActionReceive = "RECEIVE"
)
