package notification

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Notification struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	ChurchId  ulid.ULID `gorm:"type:varchar(26);index:idx_notifications_church_id;not null" json:"churchId"`
	UserId    ulid.ULID `gorm:"type:varchar(26);index:idx_notifications_user_id;not null" json:"userId"`
	Title     string    `gorm:"type:varchar(150);not null" json:"title"`
	Content   string    `gorm:"type:varchar(500)" json:"content"`
	IsRead    bool      `gorm:"not null;default:false;index:idx_notifications_read" json:"isRead"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
