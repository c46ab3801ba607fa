package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/church"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ChurchRepository struct {
	DB *gorm.DB
}

var _ church.Repository = (*ChurchRepository)(nil)

type churchDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	Name      string    `gorm:"size:150;not null;column:name"`
	Slug      string    `gorm:"size:100;not null;column:slug"`
	IsActive  bool      `gorm:"not null;column:is_active"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func toDomainChurch(cdb *churchDB) (*church.Church, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}
	return &church.Church{
		Id:        id,
		Name:      cdb.Name,
		Slug:      cdb.Slug,
		IsActive:  cdb.IsActive,
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBChurch(c *church.Church) *churchDB {
	return &churchDB{
		Id:        c.Id.String(),
		Name:      c.Name,
		Slug:      c.Slug,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *ChurchRepository) Create(ctx context.Context, c *church.Church) error {
	cdb := toDBChurch(c)
	return r.DB.WithContext(ctx).Table("churches").Create(cdb).Error
}

func (r *ChurchRepository) GetByID(ctx context.Context, churchID ulid.ULID) (*church.Church, error) {
	var cdb churchDB
	err := r.DB.WithContext(ctx).Table("churches").
		Where("id = ?", churchID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainChurch(&cdb)
}

func (r *ChurchRepository) GetBySlug(ctx context.Context, slug string) (*church.Church, error) {
	var cdb churchDB
	err := r.DB.WithContext(ctx).Table("churches").
		Where("slug = ?", slug).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainChurch(&cdb)
}
