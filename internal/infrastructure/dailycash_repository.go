package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/dailycash"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type DailyCashRepository struct {
	DB *gorm.DB
}

var _ dailycash.Repository = (*DailyCashRepository)(nil)

type dailyCashDB struct {
	Id            string     `gorm:"type:varchar(26);primaryKey;column:id"`
	ChurchId      string     `gorm:"type:varchar(26);not null;column:church_id"`
	Date          time.Time  `gorm:"not null;column:date"`
	OpeningAmount float64    `gorm:"not null;column:opening_amount"`
	ClosingAmount *float64   `gorm:"column:closing_amount"`
	Notes         string     `gorm:"size:255;column:notes"`
	CreatedById   string     `gorm:"type:varchar(26);not null;column:created_by_id"`
	ClosedById    *string    `gorm:"type:varchar(26);column:closed_by_id"`
	CreatedAt     time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt     time.Time  `gorm:"not null;column:updated_at"`
}

func toDomainDailyCash(ddb *dailyCashDB) (*dailycash.DailyCash, error) {
	id, err := pkg.ParseULID(ddb.Id)
	if err != nil {
		return nil, err
	}
	churchID, err := pkg.ParseULID(ddb.ChurchId)
	if err != nil {
		return nil, err
	}
	createdByID, err := pkg.ParseULID(ddb.CreatedById)
	if err != nil {
		return nil, err
	}
	closedByID, err := pkg.ParseULIDPtr(ddb.ClosedById)
	if err != nil {
		return nil, err
	}

	return &dailycash.DailyCash{
		Id:            id,
		ChurchId:      churchID,
		Date:          ddb.Date,
		OpeningAmount: ddb.OpeningAmount,
		ClosingAmount: ddb.ClosingAmount,
		Notes:         ddb.Notes,
		CreatedById:   createdByID,
		ClosedById:    closedByID,
		CreatedAt:     ddb.CreatedAt,
		UpdatedAt:     ddb.UpdatedAt,
	}, nil
}

func toDBDailyCash(d *dailycash.DailyCash) *dailyCashDB {
	var closedByID *string
	if d.ClosedById != nil {
		s := d.ClosedById.String()
		closedByID = &s
	}
	return &dailyCashDB{
		Id:            d.Id.String(),
		ChurchId:      d.ChurchId.String(),
		Date:          d.Date,
		OpeningAmount: d.OpeningAmount,
		ClosingAmount: d.ClosingAmount,
		Notes:         d.Notes,
		CreatedById:   d.CreatedById.String(),
		ClosedById:    closedByID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// Create traduz violação da constraint única (igreja, data) para
// dailycash.ErrDuplicateDay, que o serviço resolve relendo a linha vencedora.
func (r *DailyCashRepository) Create(ctx context.Context, d *dailycash.DailyCash) error {
	ddb := toDBDailyCash(d)
	if err := r.DB.WithContext(ctx).Table("daily_cash").Create(ddb).Error; err != nil {
		if isUniqueConstraintError(err) {
			return dailycash.ErrDuplicateDay
		}
		return err
	}
	return nil
}

func (r *DailyCashRepository) Update(ctx context.Context, d *dailycash.DailyCash) error {
	ddb := toDBDailyCash(d)
	return r.DB.WithContext(ctx).Table("daily_cash").
		Where("id = ?", ddb.Id).
		Select("closing_amount", "notes", "closed_by_id", "updated_at").
		Updates(ddb).Error
}

func (r *DailyCashRepository) GetByDate(ctx context.Context, churchID ulid.ULID, date time.Time) (*dailycash.DailyCash, error) {
	start := pkg.TruncateToDay(date)
	end := start.AddDate(0, 0, 1)

	var ddb dailyCashDB
	err := r.DB.WithContext(ctx).Table("daily_cash").
		Where("church_id = ? AND date >= ? AND date < ?", churchID.String(), start, end).
		First(&ddb).Error
	if err != nil {
		return nil, err
	}
	return toDomainDailyCash(&ddb)
}

func (r *DailyCashRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*dailycash.DailyCash, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("daily_cash").Where("church_id = ?", churchID.String())
	return pkg.Paginate(baseQuery, pagination, "date DESC", toDomainDailyCash)
}
