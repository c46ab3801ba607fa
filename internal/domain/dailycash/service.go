package dailycash

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Ecclesia/internal/domain/audit"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// ErrDuplicateDay é devolvido pelo repositório quando a constraint única
// (igreja, data) é violada: outro processo abriu o caixa primeiro.
var ErrDuplicateDay = errors.New("caixa diário já existe para a data")

type Repository interface {
	Create(ctx context.Context, dc *DailyCash) error
	Update(ctx context.Context, dc *DailyCash) error
	GetByDate(ctx context.Context, churchID ulid.ULID, date time.Time) (*DailyCash, error)
	GetByChurch(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*DailyCash, int64, error)
}

// LedgerSummer resume o livro-caixa. Os somatórios retornam sempre
// (entradas, saídas) para evitar chamadas separadas por tipo.
type LedgerSummer interface {
	SumBefore(ctx context.Context, churchID ulid.ULID, day time.Time) (income float64, expense float64, err error)
	SumOnDay(ctx context.Context, churchID ulid.ULID, day time.Time) (income float64, expense float64, err error)
}

type Service struct {
	Repository Repository
	Ledger     LedgerSummer
	Audit      *audit.Service
	Now        func() time.Time
}

func NewService(repo Repository, ledger LedgerSummer, auditSvc *audit.Service) *Service {
	return &Service{
		Repository: repo,
		Ledger:     ledger,
		Audit:      auditSvc,
		Now:        time.Now,
	}
}

// EnsureOpen garante o caixa do dia corrente, criando-o se necessário.
func (s *Service) EnsureOpen(ctx context.Context, churchID, actorID ulid.ULID) (*DailyCash, error) {
	return s.EnsureOpenAt(ctx, churchID, actorID, s.Now())
}

// EnsureOpenAt é idempotente: se o caixa da data já existe, devolve-o sem
// alteração. Na criação, o valor de abertura é o saldo do histórico anterior
// à data do caixa (entradas − saídas com data antes do dia), de modo que um
// lançamento retroativo não carrega movimento de dias posteriores para a
// abertura. A corrida entre duas primeiras operações do dia é resolvida pela
// constraint única (igreja, data): quem perde a inserção relê e devolve a
// linha vencedora.
func (s *Service) EnsureOpenAt(ctx context.Context, churchID, actorID ulid.ULID, asOf time.Time) (*DailyCash, error) {
	day := pkg.TruncateToDay(asOf)

	existing, err := s.Repository.GetByDate(ctx, churchID, day)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.NewDatabaseError(err)
	}

	income, expense, err := s.Ledger.SumBefore(ctx, churchID, day)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	dc := &DailyCash{
		Id:            pkg.GenerateULIDObject(),
		ChurchId:      churchID,
		Date:          day,
		OpeningAmount: income - expense,
		CreatedById:   actorID,
	}

	if err := s.Repository.Create(ctx, dc); err != nil {
		if errors.Is(err, ErrDuplicateDay) {
			winner, fetchErr := s.Repository.GetByDate(ctx, churchID, day)
			if fetchErr != nil {
				return nil, appErrors.NewDatabaseError(fetchErr)
			}
			return winner, nil
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	s.Audit.Append(ctx, churchID, actorID, audit.ActionOpen, "daily_cash", dc.Id.String(),
		fmt.Sprintf("Caixa aberto em %s com saldo inicial de %.2f", day.Format("2006-01-02"), dc.OpeningAmount))

	return dc, nil
}

type CloseRequest struct {
	ChurchId      ulid.ULID
	ActorId       ulid.ULID
	Date          time.Time
	ClosingAmount float64
	Notes         string
}

// Close grava o fechamento do caixa. O valor de fechamento é write-once:
// um caixa já fechado rejeita novo fechamento.
func (s *Service) Close(ctx context.Context, req *CloseRequest) (*DailyCash, error) {
	if req.ClosingAmount < 0 {
		return nil, appErrors.NewValidationError("closing_amount", "deve ser maior ou igual a zero")
	}

	day := pkg.TruncateToDay(req.Date)

	dc, err := s.Repository.GetByDate(ctx, req.ChurchId, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrDailyCashNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	if dc.IsClosed() {
		return nil, appErrors.ErrDailyCashAlreadyClosed
	}

	closing := req.ClosingAmount
	dc.ClosingAmount = &closing
	dc.Notes = req.Notes
	dc.ClosedById = &req.ActorId
	dc.UpdatedAt = s.Now()

	if err := s.Repository.Update(ctx, dc); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	s.Audit.Append(ctx, req.ChurchId, req.ActorId, audit.ActionClose, "daily_cash", dc.Id.String(),
		fmt.Sprintf("Caixa de %s fechado com valor de %.2f", day.Format("2006-01-02"), closing))

	return dc, nil
}

// CurrentBalance calcula o saldo visível do caixa: abertura mais o movimento
// do próprio dia. É o conceito de "saldo do dia" usado na trava de liquidez —
// distinto do saldo de todo o histórico usado na abertura.
func (s *Service) CurrentBalance(ctx context.Context, dc *DailyCash) (float64, error) {
	income, expense, err := s.Ledger.SumOnDay(ctx, dc.ChurchId, dc.Date)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return dc.OpeningAmount + income - expense, nil
}

func (s *Service) GetByDate(ctx context.Context, churchID ulid.ULID, date time.Time) (*DailyCash, error) {
	dc, err := s.Repository.GetByDate(ctx, churchID, pkg.TruncateToDay(date))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrDailyCashNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return dc, nil
}

func (s *Service) List(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*DailyCash, int64, error) {
	items, total, err := s.Repository.GetByChurch(ctx, churchID, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return items, total, nil
}
