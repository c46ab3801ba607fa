package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/category"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

var _ category.Repository = (*CategoryRepository)(nil)

type categoryDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	ChurchId  string    `gorm:"type:varchar(26);not null;column:church_id"`
	Name      string    `gorm:"size:100;not null;column:name"`
	Type      string    `gorm:"type:varchar(10);not null;column:type"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func toDomainCategory(cdb *categoryDB) (*category.Category, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}
	churchID, err := pkg.ParseULID(cdb.ChurchId)
	if err != nil {
		return nil, err
	}
	return &category.Category{
		Id:        id,
		ChurchId:  churchID,
		Name:      cdb.Name,
		Type:      category.Type(cdb.Type),
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBCategory(c *category.Category) *categoryDB {
	return &categoryDB{
		Id:        c.Id.String(),
		ChurchId:  c.ChurchId.String(),
		Name:      c.Name,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	cdb := toDBCategory(c)
	return r.DB.WithContext(ctx).Table("categories").Create(cdb).Error
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	cdb := toDBCategory(c)
	return r.DB.WithContext(ctx).Table("categories").Where("id = ?", cdb.Id).Updates(cdb).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, categoryID, churchID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("categories").
		Where("id = ? AND church_id = ?", categoryID.String(), churchID.String()).
		Delete(&categoryDB{}).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID, churchID ulid.ULID) (*category.Category, error) {
	var cdb categoryDB
	err := r.DB.WithContext(ctx).Table("categories").
		Where("id = ? AND church_id = ?", categoryID.String(), churchID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCategory(&cdb)
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string, typ category.Type, churchID ulid.ULID) (*category.Category, error) {
	var cdb categoryDB
	err := r.DB.WithContext(ctx).Table("categories").
		Where("LOWER(name) = LOWER(?) AND type = ? AND church_id = ?", name, string(typ), churchID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCategory(&cdb)
}

func (r *CategoryRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, typ *category.Type, pagination *pkg.PaginationParams) ([]*category.Category, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("categories").Where("church_id = ?", churchID.String())
	if typ != nil && *typ != "" {
		baseQuery = baseQuery.Where("type = ?", string(*typ))
	}
	return pkg.Paginate(baseQuery, pagination, "name ASC", toDomainCategory)
}
