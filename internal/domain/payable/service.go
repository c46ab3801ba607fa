package payable

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Ecclesia/internal/domain/audit"
	"Ecclesia/internal/domain/category"
	"Ecclesia/internal/domain/dailycash"
	"Ecclesia/internal/domain/notification"
	"Ecclesia/internal/domain/transaction"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/logger"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// ErrAlreadySettled é devolvido pelo repositório quando a transição
// paid=false→true não afeta nenhuma linha: outro processo quitou antes.
var ErrAlreadySettled = errors.New("conta já quitada")

// ErrInsufficientDayBalance é devolvido pelo repositório quando a
// revalidação do saldo do dia, feita dentro da transação de quitação,
// constata caixa insuficiente para a despesa.
var ErrInsufficientDayBalance = errors.New("saldo do dia insuficiente na quitação")

type Filters struct {
	Paid      *bool
	StartDate *time.Time
	EndDate   *time.Time
}

type Repository interface {
	Create(ctx context.Context, p *AccountPayable) error
	CreateBatch(ctx context.Context, installments []*AccountPayable) error
	Update(ctx context.Context, p *AccountPayable) error
	Delete(ctx context.Context, payableID, churchID ulid.ULID) error
	GetByID(ctx context.Context, payableID, churchID ulid.ULID) (*AccountPayable, error)
	GetByChurch(ctx context.Context, churchID ulid.ULID, filters *Filters, pagination *pkg.PaginationParams) ([]*AccountPayable, int64, error)
	CountUnpaidByRecurrence(ctx context.Context, recurrenceID ulid.ULID) (int64, error)
	// Settle executa, numa única transação de banco, a revalidação do saldo
	// do dia, a transição condicional paid=false→true e o lançamento da
	// despesa correspondente. Se o saldo do dia recomputado sob a transação
	// não cobre a despesa devolve ErrInsufficientDayBalance; quando a
	// condição de quitação não afeta nenhuma linha devolve ErrAlreadySettled.
	// Em ambos os casos nada é gravado.
	Settle(ctx context.Context, p *AccountPayable, t *transaction.Transaction) error
}

// StatusRecomputer reavalia o status de uma recorrência após a quitação de
// uma de suas parcelas.
type StatusRecomputer interface {
	RecomputeStatus(ctx context.Context, recurrenceID, churchID ulid.ULID) error
}

type Service struct {
	Repository    Repository
	Categories    *category.Service
	DailyCash     *dailycash.Service
	Recurrences   StatusRecomputer
	Audit         *audit.Service
	Notifications *notification.Service
	Now           func() time.Time
}

func NewService(repo Repository, categories *category.Service, dailyCash *dailycash.Service, auditSvc *audit.Service, notifications *notification.Service) *Service {
	return &Service{
		Repository:    repo,
		Categories:    categories,
		DailyCash:     dailyCash,
		Audit:         auditSvc,
		Notifications: notifications,
		Now:           time.Now,
	}
}

type CreatePayableRequest struct {
	ChurchId    ulid.ULID
	ActorId     ulid.ULID
	CategoryId  *ulid.ULID
	Description string
	Amount      float64
	DueDate     time.Time
}

func (s *Service) CreatePayable(ctx context.Context, req *CreatePayableRequest) (*AccountPayable, error) {
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
		if err := s.Categories.EnsureType(ctx, *req.CategoryId, req.ChurchId, category.TypeExpense); err != nil {
			return nil, err
		}
	}

	p := &AccountPayable{
		Id:          pkg.GenerateULIDObject(),
		ChurchId:    req.ChurchId,
		CategoryId:  req.CategoryId,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     pkg.TruncateToDay(req.DueDate),
		CreatedById: req.ActorId,
	}

	if err := s.Repository.Create(ctx, p); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	s.Audit.Append(ctx, req.ChurchId, req.ActorId, audit.ActionCreate, "account_payable", p.Id.String(),
		fmt.Sprintf("Conta a pagar %q criada no valor de %.2f", p.Description, p.Amount))

	return p, nil
}

func (s *Service) GetPayableByID(ctx context.Context, payableID, churchID ulid.ULID) (*AccountPayable, error) {
	p, err := s.Repository.GetByID(ctx, payableID, churchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrPayableNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return p, nil
}

// MarkAsPaid quita uma conta a pagar: abre o caixa do dia se preciso, exige
// saldo do dia suficiente e, numa única transação de banco, revalida o saldo,
// vira a conta para paga e lança a despesa no livro-caixa. A trava de
// liquidez olha o saldo do dia (abertura + movimento do dia), não o saldo de
// todo o histórico; a checagem aqui fora é só o caminho rápido — quem decide
// é a revalidação dentro da transação, que serializa quitações concorrentes
// do mesmo caixa.
func (s *Service) MarkAsPaid(ctx context.Context, payableID, churchID, actorID ulid.ULID) (*AccountPayable, error) {
	p, err := s.GetPayableByID(ctx, payableID, churchID)
	if err != nil {
		return nil, err
	}
	if p.Paid {
		return nil, appErrors.ErrPayableAlreadyPaid
	}

	now := s.Now()

	dc, err := s.DailyCash.EnsureOpenAt(ctx, churchID, actorID, now)
	if err != nil {
		return nil, err
	}

	balance, err := s.DailyCash.CurrentBalance(ctx, dc)
	if err != nil {
		return nil, err
	}
	if balance < p.Amount {
		return nil, appErrors.ErrInsufficientDayBalance.WithDetails(map[string]interface{}{
			"saldo_dia": balance,
			"valor":     p.Amount,
		})
	}

	paidAt := now
	p.Paid = true
	p.PaidAt = &paidAt
	p.PaidById = &actorID
	p.UpdatedAt = now

	t := &transaction.Transaction{
		Id:          pkg.GenerateULIDObject(),
		ChurchId:    churchID,
		Type:        transaction.Expense,
		CategoryId:  p.CategoryId,
		Amount:      p.Amount,
		Description: fmt.Sprintf("Pagamento: %s", p.Description),
		Date:        pkg.TruncateToDay(now),
		CreatedById: actorID,
	}

	if err := s.Repository.Settle(ctx, p, t); err != nil {
		if errors.Is(err, ErrAlreadySettled) {
			return nil, appErrors.ErrPayableAlreadyPaid
		}
		if errors.Is(err, ErrInsufficientDayBalance) {
			return nil, appErrors.ErrInsufficientDayBalance.WithDetails(map[string]interface{}{
				"valor": p.Amount,
			})
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	if p.RecurrenceId != nil && s.Recurrences != nil {
		if err := s.Recurrences.RecomputeStatus(ctx, *p.RecurrenceId, churchID); err != nil {
			// Pagamento já confirmado; o status será reavaliado pela varredura.
			logger.Warn().
				Err(err).
				Str("recurrence_id", p.RecurrenceId.String()).
				Msg("Falha ao reavaliar status da recorrência após pagamento")
		}
	}

	s.Audit.Append(ctx, churchID, actorID, audit.ActionPay, "account_payable", p.Id.String(),
		fmt.Sprintf("Conta %q paga no valor de %.2f", p.Description, p.Amount))
	s.Notifications.Notify(ctx, churchID, actorID, "Conta paga",
		fmt.Sprintf("A conta %q foi paga no valor de %.2f.", p.Description, p.Amount))

	return p, nil
}

func (s *Service) ListPayables(ctx context.Context, churchID ulid.ULID, filters *Filters, pagination *pkg.PaginationParams) ([]*AccountPayable, int64, error) {
	payables, total, err := s.Repository.GetByChurch(ctx, churchID, filters, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return payables, total, nil
}

type UpdatePayableRequest struct {
	Description *string
	Amount      *float64
	DueDate     *time.Time
	CategoryId  *ulid.ULID
}

// UpdatePayable ajusta uma conta ainda em aberto. Contas pagas são
// imutáveis: a quitação já virou lançamento no livro-caixa.
func (s *Service) UpdatePayable(ctx context.Context, payableID, churchID ulid.ULID, req *UpdatePayableRequest) (*AccountPayable, error) {
	p, err := s.GetPayableByID(ctx, payableID, churchID)
	if err != nil {
		return nil, err
	}
	if p.Paid {
		return nil, appErrors.ErrPayableAlreadyPaid
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, appErrors.NewValidationError("description", "é obrigatória")
		}
		p.Description = description
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
		p.Amount = *req.Amount
	}
	if req.DueDate != nil {
		p.DueDate = pkg.TruncateToDay(*req.DueDate)
	}
	if req.CategoryId != nil {
		if err := s.Categories.EnsureType(ctx, *req.CategoryId, churchID, category.TypeExpense); err != nil {
			return nil, err
		}
		p.CategoryId = req.CategoryId
	}
	p.UpdatedAt = s.Now()

	if err := s.Repository.Update(ctx, p); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return p, nil
}

func (s *Service) DeletePayable(ctx context.Context, payableID, churchID, actorID ulid.ULID) error {
	p, err := s.GetPayableByID(ctx, payableID, churchID)
	if err != nil {
		return err
	}
	if p.Paid {
		return appErrors.ErrPayableAlreadyPaid
	}

	if err := s.Repository.Delete(ctx, payableID, churchID); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	s.Audit.Append(ctx, churchID, actorID, audit.ActionDelete, "account_payable", p.Id.String(),
		fmt.Sprintf("Conta a pagar %q removida", p.Description))

	return nil
}
