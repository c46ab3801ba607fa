package recurrence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Ecclesia/internal/domain/audit"
	"Ecclesia/internal/domain/category"
	"Ecclesia/internal/domain/payable"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Sem data de término, a geração de parcelas é limitada a um horizonte de
// doze meses.
const maxInstallmentsWithoutEnd = 12

type Repository interface {
	Create(ctx context.Context, r *Recurrence) error
	Update(ctx context.Context, r *Recurrence) error
	GetByID(ctx context.Context, recurrenceID, churchID ulid.ULID) (*Recurrence, error)
	GetByChurch(ctx context.Context, churchID ulid.ULID, status *Status, pagination *pkg.PaginationParams) ([]*Recurrence, int64, error)
	// GetExpiredCandidates lista recorrências ativas cuja data de término
	// já passou em relação ao instante informado.
	GetExpiredCandidates(ctx context.Context, before time.Time) ([]*Recurrence, error)
}

// InstallmentStore é a porção do repositório de contas a pagar de que a
// recorrência precisa: gravar o lote gerado e contar parcelas em aberto.
type InstallmentStore interface {
	CreateBatch(ctx context.Context, installments []*payable.AccountPayable) error
	CountUnpaidByRecurrence(ctx context.Context, recurrenceID ulid.ULID) (int64, error)
}

type Service struct {
	Repository   Repository
	Installments InstallmentStore
	Categories   *category.Service
	Audit        *audit.Service
	Now          func() time.Time
}

func NewService(repo Repository, installments InstallmentStore, categories *category.Service, auditSvc *audit.Service) *Service {
	return &Service{
		Repository:   repo,
		Installments: installments,
		Categories:   categories,
		Audit:        auditSvc,
		Now:          time.Now,
	}
}

type CreateRecurrenceRequest struct {
	ChurchId    ulid.ULID
	ActorId     ulid.ULID
	CategoryId  *ulid.ULID
	Description string
	Amount      float64
	Frequency   Frequency
	DueDay      int
	StartDate   time.Time
	EndDate     *time.Time
}

// CreateRecurrence grava o molde e gera todas as parcelas de uma vez. As
// parcelas são uma fotografia do molde no momento da criação: alterações
// posteriores na recorrência não as retocam.
func (s *Service) CreateRecurrence(ctx context.Context, req *CreateRecurrenceRequest) (*Recurrence, error) {
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return nil, appErrors.NewValidationError("description", "é obrigatória")
	}
	if req.Amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
	}
	if req.Frequency == "" {
		req.Frequency = FrequencyMonthly
	}
	if !req.Frequency.IsValid() {
		return nil, appErrors.NewValidationError("frequency", "frequência deve ser MONTHLY")
	}
	if req.DueDay < 1 || req.DueDay > 31 {
		return nil, appErrors.NewValidationError("due_day", "deve estar entre 1 e 31")
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, appErrors.NewValidationError("end_date", "deve ser posterior à data de início")
	}

	if req.CategoryId != nil {
		if err := s.Categories.EnsureType(ctx, *req.CategoryId, req.ChurchId, category.TypeExpense); err != nil {
			return nil, err
		}
	}

	r := &Recurrence{
		Id:          pkg.GenerateULIDObject(),
		ChurchId:    req.ChurchId,
		CategoryId:  req.CategoryId,
		Description: req.Description,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		DueDay:      req.DueDay,
		StartDate:   pkg.TruncateToDay(req.StartDate),
		Status:      StatusActive,
		CreatedById: req.ActorId,
	}
	if req.EndDate != nil {
		end := pkg.TruncateToDay(*req.EndDate)
		r.EndDate = &end
	}

	dueDates := InstallmentDueDates(r.StartDate, r.EndDate, r.DueDay)
	if len(dueDates) == 0 {
		return nil, appErrors.NewValidationError("end_date", "período não comporta nenhuma parcela")
	}

	if err := s.Repository.Create(ctx, r); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	installments := make([]*payable.AccountPayable, 0, len(dueDates))
	for i, due := range dueDates {
		installments = append(installments, &payable.AccountPayable{
			Id:           pkg.GenerateULIDObject(),
			ChurchId:     r.ChurchId,
			RecurrenceId: &r.Id,
			CategoryId:   r.CategoryId,
			Description:  fmt.Sprintf("%s (%d/%d)", r.Description, i+1, len(dueDates)),
			Amount:       r.Amount,
			DueDate:      due,
			CreatedById:  req.ActorId,
		})
	}

	if err := s.Installments.CreateBatch(ctx, installments); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	s.Audit.Append(ctx, r.ChurchId, req.ActorId, audit.ActionCreate, "recurrence", r.Id.String(),
		fmt.Sprintf("Recorrência %q criada com %d parcelas", r.Description, len(installments)))

	return r, nil
}

// InstallmentDueDates calcula os vencimentos a partir da data de início: a
// primeira parcela cai na primeira ocorrência do dia de vencimento igual ou
// posterior ao início, as seguintes avançam mês a mês. Em meses curtos o dia
// é ajustado ao último dia do mês. Com data de término, entram apenas os
// vencimentos até ela; sem, vale o teto de doze parcelas.
func InstallmentDueDates(startDate time.Time, endDate *time.Time, dueDay int) []time.Time {
	year, month := startDate.Year(), startDate.Month()

	first := time.Date(year, month, pkg.ClampDayOfMonth(year, month, dueDay), 0, 0, 0, 0, startDate.Location())
	if first.Before(startDate) {
		year, month = nextMonth(year, month)
		first = time.Date(year, month, pkg.ClampDayOfMonth(year, month, dueDay), 0, 0, 0, 0, startDate.Location())
	}

	var dues []time.Time
	due := first
	for {
		if endDate != nil {
			if due.After(*endDate) {
				break
			}
		} else if len(dues) >= maxInstallmentsWithoutEnd {
			break
		}
		dues = append(dues, due)

		year, month = nextMonth(due.Year(), due.Month())
		due = time.Date(year, month, pkg.ClampDayOfMonth(year, month, dueDay), 0, 0, 0, 0, startDate.Location())
	}
	return dues
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

func (s *Service) GetRecurrenceByID(ctx context.Context, recurrenceID, churchID ulid.ULID) (*Recurrence, error) {
	r, err := s.Repository.GetByID(ctx, recurrenceID, churchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrRecurrenceNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return r, nil
}

func (s *Service) ListRecurrences(ctx context.Context, churchID ulid.ULID, status *Status, pagination *pkg.PaginationParams) ([]*Recurrence, int64, error) {
	recurrences, total, err := s.Repository.GetByChurch(ctx, churchID, status, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return recurrences, total, nil
}

type UpdateRecurrenceRequest struct {
	Description *string
	EndDate     *time.Time
}

// UpdateRecurrence aceita apenas descrição e data de término: o restante do
// molde já virou parcela e não é retocado.
func (s *Service) UpdateRecurrence(ctx context.Context, recurrenceID, churchID ulid.ULID, req *UpdateRecurrenceRequest) (*Recurrence, error) {
	r, err := s.GetRecurrenceByID(ctx, recurrenceID, churchID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, appErrors.NewValidationError("description", "é obrigatória")
		}
		r.Description = description
	}
	if req.EndDate != nil {
		end := pkg.TruncateToDay(*req.EndDate)
		if end.Before(r.StartDate) {
			return nil, appErrors.NewValidationError("end_date", "deve ser posterior à data de início")
		}
		r.EndDate = &end
	}

	unpaid, err := s.Installments.CountUnpaidByRecurrence(ctx, r.Id)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	r.Status = DeriveStatus(unpaid, r.EndDate, s.Now())
	r.UpdatedAt = s.Now()

	if err := s.Repository.Update(ctx, r); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return r, nil
}

// RecomputeStatus reavalia e persiste o status derivado de uma recorrência.
// Chamado após a quitação de uma parcela e pela varredura periódica.
func (s *Service) RecomputeStatus(ctx context.Context, recurrenceID, churchID ulid.ULID) error {
	r, err := s.GetRecurrenceByID(ctx, recurrenceID, churchID)
	if err != nil {
		return err
	}

	unpaid, err := s.Installments.CountUnpaidByRecurrence(ctx, r.Id)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	derived := DeriveStatus(unpaid, r.EndDate, s.Now())
	if derived == r.Status {
		return nil
	}

	r.Status = derived
	r.UpdatedAt = s.Now()
	if err := s.Repository.Update(ctx, r); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	s.Audit.Append(ctx, r.ChurchId, r.CreatedById, audit.ActionUpdate, "recurrence", r.Id.String(),
		fmt.Sprintf("Status da recorrência %q mudou para %s", r.Description, derived))

	return nil
}

// SweepExpired percorre as recorrências ativas com término vencido e
// reavalia o status de cada uma. Devolve quantas mudaram de status.
func (s *Service) SweepExpired(ctx context.Context) (int, error) {
	now := s.Now()

	candidates, err := s.Repository.GetExpiredCandidates(ctx, now)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}

	changed := 0
	for _, r := range candidates {
		unpaid, err := s.Installments.CountUnpaidByRecurrence(ctx, r.Id)
		if err != nil {
			return changed, appErrors.NewDatabaseError(err)
		}

		derived := DeriveStatus(unpaid, r.EndDate, now)
		if derived == r.Status {
			continue
		}

		r.Status = derived
		r.UpdatedAt = now
		if err := s.Repository.Update(ctx, r); err != nil {
			return changed, appErrors.NewDatabaseError(err)
		}
		changed++
	}
	return changed, nil
}
