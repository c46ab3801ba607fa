package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/report"
	"Ecclesia/internal/domain/transaction"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

var _ report.Repository = (*ReportRepository)(nil)

func (r *ReportRepository) PeriodTotals(ctx context.Context, churchID ulid.ULID, start, end time.Time) (float64, float64, error) {
	var totals ledgerTotals
	err := r.DB.WithContext(ctx).Table("transactions").
		Select("COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) as income, COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) as expense").
		Where("church_id = ? AND date >= ? AND date <= ?", churchID.String(), start, end).
		Scan(&totals).Error
	if err != nil {
		return 0, 0, err
	}
	return totals.Income, totals.Expense, nil
}

type categoryLineDB struct {
	CategoryId   *string `gorm:"column:category_id"`
	CategoryName string  `gorm:"column:category_name"`
	Type         string  `gorm:"column:type"`
	Total        float64 `gorm:"column:total"`
}

func (r *ReportRepository) TotalsByCategory(ctx context.Context, churchID ulid.ULID, start, end time.Time) ([]*report.CategoryLine, error) {
	var rows []categoryLineDB
	err := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.category_id, COALESCE(c.name, 'Sem categoria') as category_name, t.type, SUM(t.amount) as total").
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Where("t.church_id = ? AND t.date >= ? AND t.date <= ?", churchID.String(), start, end).
		Group("t.category_id, c.name, t.type").
		Order("t.type ASC, total DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*report.CategoryLine, 0, len(rows))
	for i := range rows {
		categoryID, err := pkg.ParseULIDPtr(rows[i].CategoryId)
		if err != nil {
			continue
		}
		out = append(out, &report.CategoryLine{
			CategoryId:   categoryID,
			CategoryName: rows[i].CategoryName,
			Type:         transaction.Types(rows[i].Type),
			Total:        rows[i].Total,
		})
	}
	return out, nil
}

func (r *ReportRepository) TransactionsInPeriod(ctx context.Context, churchID ulid.ULID, start, end time.Time) ([]*transaction.Transaction, error) {
	var rows []transactionDB
	err := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.*, c.name as category_name").
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Where("t.church_id = ? AND t.date >= ? AND t.date <= ?", churchID.String(), start, end).
		Order("t.date ASC, t.created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*transaction.Transaction, 0, len(rows))
	for i := range rows {
		item, err := toDomainTransaction(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
