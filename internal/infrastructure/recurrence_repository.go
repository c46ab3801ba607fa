package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/recurrence"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type RecurrenceRepository struct {
	DB *gorm.DB
}

var _ recurrence.Repository = (*RecurrenceRepository)(nil)

type recurrenceDB struct {
	Id          string     `gorm:"type:varchar(26);primaryKey;column:id"`
	ChurchId    string     `gorm:"type:varchar(26);not null;column:church_id"`
	CategoryId  *string    `gorm:"type:varchar(26);column:category_id"`
	Description string     `gorm:"size:255;not null;column:description"`
	Amount      float64    `gorm:"not null;column:amount"`
	Frequency   string     `gorm:"type:varchar(10);not null;column:frequency"`
	DueDay      int        `gorm:"not null;column:due_day"`
	StartDate   time.Time  `gorm:"not null;column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
	Status      string     `gorm:"type:varchar(10);not null;column:status"`
	CreatedById string     `gorm:"type:varchar(26);not null;column:created_by_id"`
	CreatedAt   time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt   time.Time  `gorm:"not null;column:updated_at"`
}

func toDomainRecurrence(rdb *recurrenceDB) (*recurrence.Recurrence, error) {
	id, err := pkg.ParseULID(rdb.Id)
	if err != nil {
		return nil, err
	}
	churchID, err := pkg.ParseULID(rdb.ChurchId)
	if err != nil {
		return nil, err
	}
	createdByID, err := pkg.ParseULID(rdb.CreatedById)
	if err != nil {
		return nil, err
	}
	categoryID, err := pkg.ParseULIDPtr(rdb.CategoryId)
	if err != nil {
		return nil, err
	}

	return &recurrence.Recurrence{
		Id:          id,
		ChurchId:    churchID,
		CategoryId:  categoryID,
		Description: rdb.Description,
		Amount:      rdb.Amount,
		Frequency:   recurrence.Frequency(rdb.Frequency),
		DueDay:      rdb.DueDay,
		StartDate:   rdb.StartDate,
		EndDate:     rdb.EndDate,
		Status:      recurrence.Status(rdb.Status),
		CreatedById: createdByID,
		CreatedAt:   rdb.CreatedAt,
		UpdatedAt:   rdb.UpdatedAt,
	}, nil
}

func toDBRecurrence(r *recurrence.Recurrence) *recurrenceDB {
	var categoryID *string
	if r.CategoryId != nil {
		s := r.CategoryId.String()
		categoryID = &s
	}
	return &recurrenceDB{
		Id:          r.Id.String(),
		ChurchId:    r.ChurchId.String(),
		CategoryId:  categoryID,
		Description: r.Description,
		Amount:      r.Amount,
		Frequency:   string(r.Frequency),
		DueDay:      r.DueDay,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Status:      string(r.Status),
		CreatedById: r.CreatedById.String(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *RecurrenceRepository) Create(ctx context.Context, rec *recurrence.Recurrence) error {
	rdb := toDBRecurrence(rec)
	return r.DB.WithContext(ctx).Table("recurrences").Create(rdb).Error
}

func (r *RecurrenceRepository) Update(ctx context.Context, rec *recurrence.Recurrence) error {
	rdb := toDBRecurrence(rec)
	return r.DB.WithContext(ctx).Table("recurrences").
		Where("id = ?", rdb.Id).
		Select("description", "end_date", "status", "updated_at").
		Updates(rdb).Error
}

func (r *RecurrenceRepository) GetByID(ctx context.Context, recurrenceID, churchID ulid.ULID) (*recurrence.Recurrence, error) {
	var rdb recurrenceDB
	err := r.DB.WithContext(ctx).Table("recurrences").
		Where("id = ? AND church_id = ?", recurrenceID.String(), churchID.String()).
		First(&rdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainRecurrence(&rdb)
}

func (r *RecurrenceRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, status *recurrence.Status, pagination *pkg.PaginationParams) ([]*recurrence.Recurrence, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("recurrences").Where("church_id = ?", churchID.String())
	if status != nil && *status != "" {
		baseQuery = baseQuery.Where("status = ?", string(*status))
	}
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainRecurrence)
}

func (r *RecurrenceRepository) GetExpiredCandidates(ctx context.Context, before time.Time) ([]*recurrence.Recurrence, error) {
	var rows []recurrenceDB
	err := r.DB.WithContext(ctx).Table("recurrences").
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", string(recurrence.StatusActive), before).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*recurrence.Recurrence, 0, len(rows))
	for i := range rows {
		item, err := toDomainRecurrence(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
