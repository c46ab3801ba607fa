package user

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleTreasurer Role = "TREASURER"
	RoleSecretary Role = "SECRETARY"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTreasurer, RoleSecretary:
		return true
	}
	return false
}

type User struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	ChurchId  ulid.ULID `gorm:"type:varchar(26);index:idx_users_church_id;not null" json:"churchId"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name"`
	Email     string    `gorm:"type:varchar(150);not null;uniqueIndex:idx_users_email" json:"email"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'SECRETARY'" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
