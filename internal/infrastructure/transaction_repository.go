package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/dailycash"
	"Ecclesia/internal/domain/transaction"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)
var _ dailycash.LedgerSummer = (*TransactionRepository)(nil)

type transactionDB struct {
	Id           string    `gorm:"type:varchar(26);primaryKey;column:id"`
	ChurchId     string    `gorm:"type:varchar(26);index;not null;column:church_id"`
	Type         string    `gorm:"type:varchar(10);not null;column:type"`
	CategoryId   *string   `gorm:"type:varchar(26);index;column:category_id"`
	CategoryName string    `gorm:"->;column:category_name"`
	Amount       float64   `gorm:"not null;column:amount"`
	Description  string    `gorm:"size:255;column:description"`
	Date         time.Time `gorm:"not null;column:date"`
	CreatedById  string    `gorm:"type:varchar(26);not null;column:created_by_id"`
	CreatedAt    time.Time `gorm:"not null;column:created_at"`
	UpdatedAt    time.Time `gorm:"not null;column:updated_at"`
}

func toDomainTransaction(tdb *transactionDB) (*transaction.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}
	churchID, err := pkg.ParseULID(tdb.ChurchId)
	if err != nil {
		return nil, err
	}
	createdByID, err := pkg.ParseULID(tdb.CreatedById)
	if err != nil {
		return nil, err
	}
	categoryID, err := pkg.ParseULIDPtr(tdb.CategoryId)
	if err != nil {
		return nil, err
	}

	return &transaction.Transaction{
		Id:           id,
		ChurchId:     churchID,
		Type:         transaction.Types(tdb.Type),
		CategoryId:   categoryID,
		CategoryName: tdb.CategoryName,
		Amount:       tdb.Amount,
		Description:  tdb.Description,
		Date:         tdb.Date,
		CreatedById:  createdByID,
		CreatedAt:    tdb.CreatedAt,
		UpdatedAt:    tdb.UpdatedAt,
	}, nil
}

func toDBTransaction(t *transaction.Transaction) *transactionDB {
	var categoryID *string
	if t.CategoryId != nil {
		s := t.CategoryId.String()
		categoryID = &s
	}
	return &transactionDB{
		Id:          t.Id.String(),
		ChurchId:    t.ChurchId.String(),
		Type:        string(t.Type),
		CategoryId:  categoryID,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
		CreatedById: t.CreatedById.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	tdb := toDBTransaction(t)
	return r.DB.WithContext(ctx).Table("transactions").Create(tdb).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, transactionID, churchID ulid.ULID) (*transaction.Transaction, error) {
	var tdb transactionDB
	err := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.*, c.name as category_name").
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Where("t.id = ? AND t.church_id = ?", transactionID.String(), churchID.String()).
		First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, filters *transaction.Filters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	countQuery := r.DB.WithContext(ctx).Table("transactions t").Where("t.church_id = ?", churchID.String())
	dataQuery := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.*, c.name as category_name").
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Where("t.church_id = ?", churchID.String())

	if filters != nil {
		if filters.Type != nil && *filters.Type != "" {
			countQuery = countQuery.Where("t.type = ?", string(*filters.Type))
			dataQuery = dataQuery.Where("t.type = ?", string(*filters.Type))
		}
		if filters.CategoryId != nil {
			countQuery = countQuery.Where("t.category_id = ?", filters.CategoryId.String())
			dataQuery = dataQuery.Where("t.category_id = ?", filters.CategoryId.String())
		}
		if filters.StartDate != nil {
			countQuery = countQuery.Where("t.date >= ?", *filters.StartDate)
			dataQuery = dataQuery.Where("t.date >= ?", *filters.StartDate)
		}
		if filters.EndDate != nil {
			countQuery = countQuery.Where("t.date <= ?", *filters.EndDate)
			dataQuery = dataQuery.Where("t.date <= ?", *filters.EndDate)
		}
	}

	pagination = pkg.NormalizePagination(pagination)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []transactionDB
	err := dataQuery.Order("t.date DESC, t.created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]*transaction.Transaction, 0, len(rows))
	for i := range rows {
		item, err := toDomainTransaction(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, item)
	}

	return out, total, nil
}

type ledgerTotals struct {
	Income  float64 `gorm:"column:income"`
	Expense float64 `gorm:"column:expense"`
}

// SumBefore soma o livro-caixa da igreja até a véspera do dia informado,
// numa única passada. Lançamentos do próprio dia ou de dias posteriores
// ficam de fora, o que mantém coerente a abertura de um caixa retroativo.
func (r *TransactionRepository) SumBefore(ctx context.Context, churchID ulid.ULID, day time.Time) (float64, float64, error) {
	var totals ledgerTotals
	err := r.DB.WithContext(ctx).Table("transactions").
		Select("COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) as income, COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) as expense").
		Where("church_id = ? AND date < ?", churchID.String(), pkg.TruncateToDay(day)).
		Scan(&totals).Error
	if err != nil {
		return 0, 0, err
	}
	return totals.Income, totals.Expense, nil
}

func (r *TransactionRepository) SumOnDay(ctx context.Context, churchID ulid.ULID, day time.Time) (float64, float64, error) {
	start := pkg.TruncateToDay(day)
	end := start.AddDate(0, 0, 1)

	var totals ledgerTotals
	err := r.DB.WithContext(ctx).Table("transactions").
		Select("COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) as income, COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) as expense").
		Where("church_id = ? AND date >= ? AND date < ?", churchID.String(), start, end).
		Scan(&totals).Error
	if err != nil {
		return 0, 0, err
	}
	return totals.Income, totals.Expense, nil
}
