package member

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Member struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	ChurchId  ulid.ULID `gorm:"type:varchar(26);index:idx_members_church_id;not null" json:"churchId"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name"`
	Email     string    `gorm:"type:varchar(150)" json:"email"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Member) TableName() string {
	return "members"
}
