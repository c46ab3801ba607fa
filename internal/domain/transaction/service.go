package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Ecclesia/internal/domain/audit"
	"Ecclesia/internal/domain/category"
	"Ecclesia/internal/domain/dailycash"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Filters struct {
	Type       *Types
	CategoryId *ulid.ULID
	StartDate  *time.Time
	EndDate    *time.Time
}

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, transactionID, churchID ulid.ULID) (*Transaction, error)
	GetByChurch(ctx context.Context, churchID ulid.ULID, filters *Filters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
}

type Service struct {
	Repository Repository
	Categories *category.Service
	DailyCash  *dailycash.Service
	Audit      *audit.Service
	Now        func() time.Time
}

func NewService(repo Repository, categories *category.Service, dailyCash *dailycash.Service, auditSvc *audit.Service) *Service {
	return &Service{
		Repository: repo,
		Categories: categories,
		DailyCash:  dailyCash,
		Audit:      auditSvc,
		Now:        time.Now,
	}
}

type CreateTransactionRequest struct {
	ChurchId    ulid.ULID
	ActorId     ulid.ULID
	Type        Types
	CategoryId  *ulid.ULID
	Amount      float64
	Description string
	Date        *time.Time
}

// CreateTransaction registra um lançamento manual no livro-caixa. Sendo a
// primeira operação financeira do dia, abre o caixa diário antes de inserir,
// de modo que o valor de abertura não inclua o próprio lançamento.
func (s *Service) CreateTransaction(ctx context.Context, req *CreateTransactionRequest) (*Transaction, error) {
	if !req.Type.IsValid() {
		return nil, appErrors.NewValidationError("type", "tipo deve ser INCOME ou EXPENSE")
	}
	if req.Amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	req.Description = strings.TrimSpace(req.Description)

	if req.CategoryId != nil {
		if err := s.Categories.EnsureType(ctx, *req.CategoryId, req.ChurchId, category.Type(req.Type)); err != nil {
			return nil, err
		}
	}

	date := s.Now()
	if req.Date != nil {
		date = *req.Date
	}
	date = pkg.TruncateToDay(date)

	if _, err := s.DailyCash.EnsureOpenAt(ctx, req.ChurchId, req.ActorId, date); err != nil {
		return nil, err
	}

	t := &Transaction{
		Id:          pkg.GenerateULIDObject(),
		ChurchId:    req.ChurchId,
		Type:        req.Type,
		CategoryId:  req.CategoryId,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		CreatedById: req.ActorId,
	}

	if err := s.Repository.Create(ctx, t); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	s.Audit.Append(ctx, req.ChurchId, req.ActorId, audit.ActionCreate, "transaction", t.Id.String(),
		fmt.Sprintf("Lançamento %s de %.2f registrado", t.Type, t.Amount))

	return t, nil
}

func (s *Service) GetTransactionByID(ctx context.Context, transactionID, churchID ulid.ULID) (*Transaction, error) {
	t, err := s.Repository.GetByID(ctx, transactionID, churchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.NewNotFoundError("Lançamento")
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return t, nil
}

func (s *Service) ListTransactions(ctx context.Context, churchID ulid.ULID, filters *Filters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	if filters != nil && filters.Type != nil && !filters.Type.IsValid() {
		return nil, 0, appErrors.NewValidationError("type", "tipo deve ser INCOME ou EXPENSE")
	}

	transactions, total, err := s.Repository.GetByChurch(ctx, churchID, filters, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return transactions, total, nil
}
