package receivable

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Ecclesia/internal/domain/audit"
	"Ecclesia/internal/domain/category"
	"Ecclesia/internal/domain/dailycash"
	"Ecclesia/internal/domain/member"
	"Ecclesia/internal/domain/notification"
	"Ecclesia/internal/domain/transaction"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// ErrAlreadySettled é devolvido pelo repositório quando a transição
// received=false→true não afeta nenhuma linha.
var ErrAlreadySettled = errors.New("conta já recebida")

type Filters struct {
	Received  *bool
	MemberId  *ulid.ULID
	StartDate *time.Time
	EndDate   *time.Time
}

type Repository interface {
	Create(ctx context.Context, r *AccountReceivable) error
	Update(ctx context.Context, r *AccountReceivable) error
	Delete(ctx context.Context, receivableID, churchID ulid.ULID) error
	// GetByID busca sem filtro de igreja; a checagem de posse fica no
	// serviço, que distingue inexistente (404) de pertencente a outra
	// igreja (403).
	GetByID(ctx context.Context, receivableID ulid.ULID) (*AccountReceivable, error)
	GetByChurch(ctx context.Context, churchID ulid.ULID, filters *Filters, pagination *pkg.PaginationParams) ([]*AccountReceivable, int64, error)
	// Settle executa, numa única transação de banco, a transição condicional
	// received=false→true e o lançamento da entrada correspondente.
	Settle(ctx context.Context, r *AccountReceivable, t *transaction.Transaction) error
}

type Service struct {
	Repository    Repository
	Categories    *category.Service
	Members       *member.Service
	DailyCash     *dailycash.Service
	Audit         *audit.Service
	Notifications *notification.Service
	Now           func() time.Time
}

func NewService(repo Repository, categories *category.Service, members *member.Service, dailyCash *dailycash.Service, auditSvc *audit.Service, notifications *notification.Service) *Service {
	return &Service{
		Repository:    repo,
		Categories:    categories,
		Members:       members,
		DailyCash:     dailyCash,
		Audit:         auditSvc,
		Notifications: notifications,
		Now:           time.Now,
	}
}

type CreateReceivableRequest struct {
	ChurchId    ulid.ULID
	ActorId     ulid.ULID
	CategoryId  *ulid.ULID
	MemberId    *ulid.ULID
	Description string
	Amount      float64
	DueDate     time.Time
}

func (s *Service) CreateReceivable(ctx context.Context, req *CreateReceivableRequest) (*AccountReceivable, error) {
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return nil, appErrors.NewValidationError("description", "é obrigatória")
	}
	if req.Amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
	}
	if req.DueDate.IsZero() {
		return nil, appErrors.NewValidationError("due_date", "é obrigatória")
	}

	if req.CategoryId != nil {
		if err := s.Categories.EnsureType(ctx, *req.CategoryId, req.ChurchId, category.TypeIncome); err != nil {
			return nil, err
		}
	}
	if req.MemberId != nil {
		if _, err := s.Members.GetMemberByID(ctx, *req.MemberId, req.ChurchId); err != nil {
			return nil, err
		}
	}

	r := &AccountReceivable{
		Id:          pkg.GenerateULIDObject(),
		ChurchId:    req.ChurchId,
		CategoryId:  req.CategoryId,
		MemberId:    req.MemberId,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     pkg.TruncateToDay(req.DueDate),
		CreatedById: req.ActorId,
	}

	if err := s.Repository.Create(ctx, r); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	s.Audit.Append(ctx, req.ChurchId, req.ActorId, audit.ActionCreate, "account_receivable", r.Id.String(),
		fmt.Sprintf("Conta a receber %q criada no valor de %.2f", r.Description, r.Amount))

	return r, nil
}

// GetReceivableByID carrega a conta e valida a posse: conta de outra igreja
// responde 403, não 404.
func (s *Service) GetReceivableByID(ctx context.Context, receivableID, churchID ulid.ULID) (*AccountReceivable, error) {
	r, err := s.Repository.GetByID(ctx, receivableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrReceivableNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	if r.ChurchId != churchID {
		return nil, appErrors.ErrResourceNotOwned
	}
	return r, nil
}

// MarkAsReceived baixa o recebimento: abre o caixa do dia se preciso e, numa
// única transação de banco, vira a conta para recebida e lança a entrada no
// livro-caixa. Entrada de dinheiro não passa por trava de liquidez.
func (s *Service) MarkAsReceived(ctx context.Context, receivableID, churchID, actorID ulid.ULID) (*AccountReceivable, error) {
	r, err := s.GetReceivableByID(ctx, receivableID, churchID)
	if err != nil {
		return nil, err
	}
	if r.Received {
		return nil, appErrors.ErrReceivableAlreadyDone
	}

	now := s.Now()

	if _, err := s.DailyCash.EnsureOpenAt(ctx, churchID, actorID, now); err != nil {
		return nil, err
	}

	receivedAt := now
	r.Received = true
	r.ReceivedAt = &receivedAt
	r.ReceivedById = &actorID
	r.UpdatedAt = now

	t := &transaction.Transaction{
		Id:          pkg.GenerateULIDObject(),
		ChurchId:    churchID,
		Type:        transaction.Income,
		CategoryId:  r.CategoryId,
		Amount:      r.Amount,
		Description: fmt.Sprintf("Recebimento: %s", r.Description),
		Date:        pkg.TruncateToDay(now),
		CreatedById: actorID,
	}

	if err := s.Repository.Settle(ctx, r, t); err != nil {
		if errors.Is(err, ErrAlreadySettled) {
			return nil, appErrors.ErrReceivableAlreadyDone
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	s.Audit.Append(ctx, churchID, actorID, audit.ActionReceive, "account_receivable", r.Id.String(),
		fmt.Sprintf("Conta %q recebida no valor de %.2f", r.Description, r.Amount))
	s.Notifications.Notify(ctx, churchID, actorID, "Conta recebida",
		fmt.Sprintf("A conta %q foi recebida no valor de %.2f.", r.Description, r.Amount))

	return r, nil
}

func (s *Service) ListReceivables(ctx context.Context, churchID ulid.ULID, filters *Filters, pagination *pkg.PaginationParams) ([]*AccountReceivable, int64, error) {
	receivables, total, err := s.Repository.GetByChurch(ctx, churchID, filters, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return receivables, total, nil
}

type UpdateReceivableRequest struct {
	Description *string
	Amount      *float64
	DueDate     *time.Time
	CategoryId  *ulid.ULID
}

func (s *Service) UpdateReceivable(ctx context.Context, receivableID, churchID ulid.ULID, req *UpdateReceivableRequest) (*AccountReceivable, error) {
	r, err := s.GetReceivableByID(ctx, receivableID, churchID)
	if err != nil {
		return nil, err
	}
	if r.Received {
		return nil, appErrors.ErrReceivableAlreadyDone
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, appErrors.NewValidationError("description", "é obrigatória")
		}
		r.Description = description
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
		r.Amount = *req.Amount
	}
	if req.DueDate != nil {
		r.DueDate = pkg.TruncateToDay(*req.DueDate)
	}
	if req.CategoryId != nil {
		if err := s.Categories.EnsureType(ctx, *req.CategoryId, churchID, category.TypeIncome); err != nil {
			return nil, err
		}
		r.CategoryId = req.CategoryId
	}
	r.UpdatedAt = s.Now()

	if err := s.Repository.Update(ctx, r); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return r, nil
}

func (s *Service) DeleteReceivable(ctx context.Context, receivableID, churchID, actorID ulid.ULID) error {
	r, err := s.GetReceivableByID(ctx, receivableID, churchID)
	if err != nil {
		return err
	}
	if r.Received {
		return appErrors.ErrReceivableAlreadyDone
	}

	if err := s.Repository.Delete(ctx, receivableID, churchID); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	s.Audit.Append(ctx, churchID, actorID, audit.ActionDelete, "account_receivable", r.Id.String(),
		fmt.Sprintf("Conta a receber %q removida", r.Description))

	return nil
}
