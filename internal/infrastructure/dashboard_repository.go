package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/dashboard"
	"Ecclesia/internal/domain/transaction"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type DashboardRepository struct {
	DB *gorm.DB
}

var _ dashboard.Repository = (*DashboardRepository)(nil)

func (r *DashboardRepository) AllTimeTotals(ctx context.Context, churchID ulid.ULID) (float64, float64, error) {
	var totals ledgerTotals
	err := r.DB.WithContext(ctx).Table("transactions").
		Select("COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) as income, COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) as expense").
		Where("church_id = ?", churchID.String()).
		Scan(&totals).Error
	if err != nil {
		return 0, 0, err
	}
	return totals.Income, totals.Expense, nil
}

func (r *DashboardRepository) PeriodTotals(ctx context.Context, churchID ulid.ULID, start, end time.Time) (float64, float64, error) {
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

type openAccounts struct {
	Count   int64   `gorm:"column:count"`
	Amount  float64 `gorm:"column:amount"`
	Overdue int64   `gorm:"column:overdue"`
}

func (r *DashboardRepository) OpenPayables(ctx context.Context, churchID ulid.ULID, overdueBefore time.Time) (int64, float64, int64, error) {
	var result openAccounts
	err := r.DB.WithContext(ctx).Table("accounts_payable").
		Select("COUNT(*) as count, COALESCE(SUM(amount), 0) as amount, COUNT(*) FILTER (WHERE due_date < ?) as overdue", overdueBefore).
		Where("church_id = ? AND paid = ?", churchID.String(), false).
		Scan(&result).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return result.Count, result.Amount, result.Overdue, nil
}

func (r *DashboardRepository) OpenReceivables(ctx context.Context, churchID ulid.ULID) (int64, float64, error) {
	var result openAccounts
	err := r.DB.WithContext(ctx).Table("accounts_receivable").
		Select("COUNT(*) as count, COALESCE(SUM(amount), 0) as amount").
		Where("church_id = ? AND received = ?", churchID.String(), false).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Count, result.Amount, nil
}

type categoryTotalDB struct {
	CategoryId   *string `gorm:"column:category_id"`
	CategoryName string  `gorm:"column:category_name"`
	Total        float64 `gorm:"column:total"`
}

func (r *DashboardRepository) ExpensesByCategory(ctx context.Context, churchID ulid.ULID, start, end time.Time) ([]*dashboard.CategoryTotal, error) {
	var rows []categoryTotalDB
	err := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.category_id, COALESCE(c.name, 'Sem categoria') as category_name, SUM(t.amount) as total").
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Where("t.church_id = ? AND t.type = ? AND t.date >= ? AND t.date <= ?", churchID.String(), string(transaction.Expense), start, end).
		Group("t.category_id, c.name").
		Order("total DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*dashboard.CategoryTotal, 0, len(rows))
	for i := range rows {
		categoryID, err := pkg.ParseULIDPtr(rows[i].CategoryId)
		if err != nil {
			continue
		}
		out = append(out, &dashboard.CategoryTotal{
			CategoryId:   categoryID,
			CategoryName: rows[i].CategoryName,
			Total:        rows[i].Total,
		})
	}
	return out, nil
}

func (r *DashboardRepository) RecentTransactions(ctx context.Context, churchID ulid.ULID, limit int) ([]*transaction.Transaction, error) {
	var rows []transactionDB
	err := r.DB.WithContext(ctx).Table("transactions t").
		Select("t.*, c.name as category_name").
		Joins("LEFT JOIN categories c ON t.category_id = c.id").
		Where("t.church_id = ?", churchID.String()).
		Order("t.date DESC, t.created_at DESC").
		Limit(limit).
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
