package dashboard

import (
	"context"
	"time"

	"Ecclesia/internal/domain/transaction"
	appErrors "Ecclesia/internal/errors"

	"github.com/oklog/ulid/v2"
)

// Summary é a visão consolidada exibida na tela inicial da tesouraria.
type Summary struct {
	AllTimeBalance        float64 `json:"allTimeBalance"`
	MonthIncome           float64 `json:"monthIncome"`
	MonthExpenses         float64 `json:"monthExpenses"`
	MonthBalance          float64 `json:"monthBalance"`
	OpenPayablesCount     int64   `json:"openPayablesCount"`
	OpenPayablesAmount    float64 `json:"openPayablesAmount"`
	OverduePayablesCount  int64   `json:"overduePayablesCount"`
	OpenReceivablesCount  int64   `json:"openReceivablesCount"`
	OpenReceivablesAmount float64 `json:"openReceivablesAmount"`
}

type CategoryTotal struct {
	CategoryId   *ulid.ULID `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	Total        float64    `json:"total"`
}

type Repository interface {
	AllTimeTotals(ctx context.Context, churchID ulid.ULID) (income float64, expense float64, err error)
	PeriodTotals(ctx context.Context, churchID ulid.ULID, start, end time.Time) (income float64, expense float64, err error)
	OpenPayables(ctx context.Context, churchID ulid.ULID, overdueBefore time.Time) (count int64, amount float64, overdue int64, err error)
	OpenReceivables(ctx context.Context, churchID ulid.ULID) (count int64, amount float64, err error)
	ExpensesByCategory(ctx context.Context, churchID ulid.ULID, start, end time.Time) ([]*CategoryTotal, error)
	RecentTransactions(ctx context.Context, churchID ulid.ULID, limit int) ([]*transaction.Transaction, error)
}

type Service struct {
	Repository Repository
	Now        func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo, Now: time.Now}
}

// GetSummary consolida saldo histórico, movimento do mês corrente e contas
// em aberto numa única resposta.
func (s *Service) GetSummary(ctx context.Context, churchID ulid.ULID) (*Summary, error) {
	now := s.Now()
	monthStart, monthEnd := monthBounds(now)

	income, expense, err := s.Repository.AllTimeTotals(ctx, churchID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	monthIncome, monthExpenses, err := s.Repository.PeriodTotals(ctx, churchID, monthStart, monthEnd)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	payablesCount, payablesAmount, overdue, err := s.Repository.OpenPayables(ctx, churchID, now)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	receivablesCount, receivablesAmount, err := s.Repository.OpenReceivables(ctx, churchID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return &Summary{
		AllTimeBalance:        income - expense,
		MonthIncome:           monthIncome,
		MonthExpenses:         monthExpenses,
		MonthBalance:          monthIncome - monthExpenses,
		OpenPayablesCount:     payablesCount,
		OpenPayablesAmount:    payablesAmount,
		OverduePayablesCount:  overdue,
		OpenReceivablesCount:  receivablesCount,
		OpenReceivablesAmount: receivablesAmount,
	}, nil
}

// GetMonthCategoryExpenses agrupa as despesas do mês corrente por categoria.
func (s *Service) GetMonthCategoryExpenses(ctx context.Context, churchID ulid.ULID) ([]*CategoryTotal, error) {
	monthStart, monthEnd := monthBounds(s.Now())

	totals, err := s.Repository.ExpensesByCategory(ctx, churchID, monthStart, monthEnd)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return totals, nil
}

func (s *Service) GetRecentTransactions(ctx context.Context, churchID ulid.ULID, limit int) ([]*transaction.Transaction, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	transactions, err := s.Repository.RecentTransactions(ctx, churchID, limit)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return transactions, nil
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
