package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/user"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

var _ user.Repository = (*UserRepository)(nil)

type userDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	ChurchId  string    `gorm:"type:varchar(26);not null;column:church_id"`
	Name      string    `gorm:"size:150;not null;column:name"`
	Email     string    `gorm:"size:150;not null;column:email"`
	Password  string    `gorm:"size:100;not null;column:password"`
	Role      string    `gorm:"type:varchar(20);not null;column:role"`
	IsActive  bool      `gorm:"not null;column:is_active"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func toDomainUser(udb *userDB) (*user.User, error) {
	id, err := pkg.ParseULID(udb.Id)
	if err != nil {
		return nil, err
	}
	churchID, err := pkg.ParseULID(udb.ChurchId)
	if err != nil {
		return nil, err
	}
	return &user.User{
		Id:        id,
		ChurchId:  churchID,
		Name:      udb.Name,
		Email:     udb.Email,
		Password:  udb.Password,
		Role:      user.Role(udb.Role),
		IsActive:  udb.IsActive,
		CreatedAt: udb.CreatedAt,
		UpdatedAt: udb.UpdatedAt,
	}, nil
}

func toDBUser(u *user.User) *userDB {
	return &userDB{
		Id:        u.Id.String(),
		ChurchId:  u.ChurchId.String(),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	return r.DB.WithContext(ctx).Table("users").Create(udb).Error
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	return r.DB.WithContext(ctx).Table("users").Where("id = ?", udb.Id).Updates(udb).Error
}

func (r *UserRepository) GetById(ctx context.Context, userID ulid.ULID) (*user.User, error) {
	var udb userDB
	err := r.DB.WithContext(ctx).Table("users").
		Where("id = ?", userID.String()).
		First(&udb).Error
	if err != nil {
		return nil, err
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var udb userDB
	err := r.DB.WithContext(ctx).Table("users").
		Where("email = ?", email).
		First(&udb).Error
	if err != nil {
		return nil, err
	}
	return toDomainUser(&udb)
}
