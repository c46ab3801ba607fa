package report

import (
	"context"
	"time"

	"Ecclesia/internal/domain/transaction"
	appErrors "Ecclesia/internal/errors"

	"github.com/oklog/ulid/v2"
)

// CategoryLine é uma linha do relatório: total movimentado por categoria e
// direção dentro do período.
type CategoryLine struct {
	CategoryId   *ulid.ULID        `json:"categoryId"`
	CategoryName string            `json:"categoryName"`
	Type         transaction.Types `json:"type"`
	Total        float64           `json:"total"`
}

// FinancialReport é o fechamento de um período: totais, quebra por categoria
// e os lançamentos que os compõem.
type FinancialReport struct {
	StartDate    time.Time                  `json:"startDate"`
	EndDate      time.Time                  `json:"endDate"`
	TotalIncome  float64                    `json:"totalIncome"`
	TotalExpense float64                    `json:"totalExpense"`
	Balance      float64                    `json:"balance"`
	ByCategory   []*CategoryLine            `json:"byCategory"`
	Transactions []*transaction.Transaction `json:"transactions"`
}

type Repository interface {
	PeriodTotals(ctx context.Context, churchID ulid.ULID, start, end time.Time) (income float64, expense float64, err error)
	TotalsByCategory(ctx context.Context, churchID ulid.ULID, start, end time.Time) ([]*CategoryLine, error)
	TransactionsInPeriod(ctx context.Context, churchID ulid.ULID, start, end time.Time) ([]*transaction.Transaction, error)
}

type Service struct {
	Repository Repository
	Now        func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo, Now: time.Now}
}

// GetPeriodReport monta o relatório financeiro do intervalo informado.
func (s *Service) GetPeriodReport(ctx context.Context, churchID ulid.ULID, start, end time.Time) (*FinancialReport, error) {
	if end.Before(start) {
		return nil, appErrors.NewValidationError("end_date", "deve ser posterior à data de início")
	}

	income, expense, err := s.Repository.PeriodTotals(ctx, churchID, start, end)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	byCategory, err := s.Repository.TotalsByCategory(ctx, churchID, start, end)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	transactions, err := s.Repository.TransactionsInPeriod(ctx, churchID, start, end)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return &FinancialReport{
		StartDate:    start,
		EndDate:      end,
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income - expense,
		ByCategory:   byCategory,
		Transactions: transactions,
	}, nil
}

// GetCurrentMonthReport é o atalho mais usado: relatório do mês corrente.
func (s *Service) GetCurrentMonthReport(ctx context.Context, churchID ulid.ULID) (*FinancialReport, error) {
	now := s.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return s.GetPeriodReport(ctx, churchID, start, end)
}
