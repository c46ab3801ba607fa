package recurrence_test

import (
	"context"
	"testing"
	"time"

	"Ecclesia/internal/domain/category"
	"Ecclesia/internal/domain/payable"
	"Ecclesia/internal/domain/recurrence"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type fakeRecurrenceRepository struct {
	createFn               func(ctx context.Context, r *recurrence.Recurrence) error
	updateFn               func(ctx context.Context, r *recurrence.Recurrence) error
	getByIDFn              func(ctx context.Context, recurrenceID, churchID ulid.ULID) (*recurrence.Recurrence, error)
	getByChurchFn          func(ctx context.Context, churchID ulid.ULID, status *recurrence.Status, pagination *pkg.PaginationParams) ([]*recurrence.Recurrence, int64, error)
	getExpiredCandidatesFn func(ctx context.Context, before time.Time) ([]*recurrence.Recurrence, error)
}

func (f *fakeRecurrenceRepository) Create(ctx context.Context, r *recurrence.Recurrence) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeRecurrenceRepository) Update(ctx context.Context, r *recurrence.Recurrence) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

func (f *fakeRecurrenceRepository) GetByID(ctx context.Context, recurrenceID, churchID ulid.ULID) (*recurrence.Recurrence, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, recurrenceID, churchID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecurrenceRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, status *recurrence.Status, pagination *pkg.PaginationParams) ([]*recurrence.Recurrence, int64, error) {
	if f.getByChurchFn != nil {
		return f.getByChurchFn(ctx, churchID, status, pagination)
	}
	return nil, 0, nil
}

func (f *fakeRecurrenceRepository) GetExpiredCandidates(ctx context.Context, before time.Time) ([]*recurrence.Recurrence, error) {
	if f.getExpiredCandidatesFn != nil {
		return f.getExpiredCandidatesFn(ctx, before)
	}
	return nil, nil
}

type fakeInstallmentStore struct {
	createBatchFn             func(ctx context.Context, installments []*payable.AccountPayable) error
	countUnpaidByRecurrenceFn func(ctx context.Context, recurrenceID ulid.ULID) (int64, error)
}

func (f *fakeInstallmentStore) CreateBatch(ctx context.Context, installments []*payable.AccountPayable) error {
	if f.createBatchFn != nil {
		return f.createBatchFn(ctx, installments)
	}
	return nil
}

func (f *fakeInstallmentStore) CountUnpaidByRecurrence(ctx context.Context, recurrenceID ulid.ULID) (int64, error) {
	if f.countUnpaidByRecurrenceFn != nil {
		return f.countUnpaidByRecurrenceFn(ctx, recurrenceID)
	}
	return 0, nil
}

type fakeCategoryRepository struct {
	getByIDFn func(ctx context.Context, categoryID, churchID ulid.ULID) (*category.Category, error)
}

func (f *fakeCategoryRepository) Create(ctx context.Context, _ *category.Category) error { return nil }
func (f *fakeCategoryRepository) Update(ctx context.Context, _ *category.Category) error { return nil }
func (f *fakeCategoryRepository) Delete(ctx context.Context, _, _ ulid.ULID) error       { return nil }
func (f *fakeCategoryRepository) GetByID(ctx context.Context, categoryID, churchID ulid.ULID) (*category.Category, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, categoryID, churchID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCategoryRepository) GetByName(ctx context.Context, _ string, _ category.Type, _ ulid.ULID) (*category.Category, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCategoryRepository) GetByChurch(ctx context.Context, _ ulid.ULID, _ *category.Type, _ *pkg.PaginationParams) ([]*category.Category, int64, error) {
	return nil, 0, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDeriveStatus(t *testing.T) {
	t.Parallel()

	now := date(2024, time.June, 15)
	past := date(2024, time.May, 31)
	future := date(2024, time.December, 31)

	tests := []struct {
		name        string
		unpaidCount int64
		endDate     *time.Time
		want        recurrence.Status
	}{
		{
			name:        "sem parcelas em aberto conclui",
			unpaidCount: 0,
			want:        recurrence.StatusCompleted,
		},
		{
			name:        "sem parcelas em aberto conclui mesmo com termino vencido",
			unpaidCount: 0,
			endDate:     &past,
			want:        recurrence.StatusCompleted,
		},
		{
			name:        "parcelas em aberto com termino vencido expira",
			unpaidCount: 3,
			endDate:     &past,
			want:        recurrence.StatusExpired,
		},
		{
			name:        "parcelas em aberto com termino futuro permanece ativa",
			unpaidCount: 3,
			endDate:     &future,
			want:        recurrence.StatusActive,
		},
		{
			name:        "parcelas em aberto sem termino permanece ativa",
			unpaidCount: 1,
			want:        recurrence.StatusActive,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := recurrence.DeriveStatus(tt.unpaidCount, tt.endDate, now)
			if got != tt.want {
				t.Fatalf("DeriveStatus(%d, %v) = %s, want %s", tt.unpaidCount, tt.endDate, got, tt.want)
			}
		})
	}
}

func TestInstallmentDueDates(t *testing.T) {
	t.Parallel()

	t.Run("dia de vencimento posterior ao inicio cai no mesmo mes", func(t *testing.T) {
		dues := recurrence.InstallmentDueDates(date(2024, time.January, 10), nil, 15)
		if len(dues) != 12 {
			t.Fatalf("expected 12 installments, got %d", len(dues))
		}
		if !dues[0].Equal(date(2024, time.January, 15)) {
			t.Fatalf("expected first due 2024-01-15, got %s", dues[0])
		}
		if !dues[11].Equal(date(2024, time.December, 15)) {
			t.Fatalf("expected last due 2024-12-15, got %s", dues[11])
		}
	})

	t.Run("dia de vencimento ja passado rola para o mes seguinte", func(t *testing.T) {
		dues := recurrence.InstallmentDueDates(date(2024, time.January, 10), nil, 5)
		if len(dues) != 12 {
			t.Fatalf("expected 12 installments, got %d", len(dues))
		}
		if !dues[0].Equal(date(2024, time.February, 5)) {
			t.Fatalf("expected first due 2024-02-05, got %s", dues[0])
		}
		if !dues[11].Equal(date(2025, time.January, 5)) {
			t.Fatalf("expected last due 2025-01-05, got %s", dues[11])
		}
	})

	t.Run("meses curtos ajustam para o ultimo dia", func(t *testing.T) {
		dues := recurrence.InstallmentDueDates(date(2024, time.January, 1), nil, 31)
		want := []time.Time{
			date(2024, time.January, 31),
			date(2024, time.February, 29),
			date(2024, time.March, 31),
			date(2024, time.April, 30),
		}
		for i, w := range want {
			if !dues[i].Equal(w) {
				t.Fatalf("installment %d: expected %s, got %s", i, w, dues[i])
			}
		}
	})

	t.Run("data de termino limita as parcelas", func(t *testing.T) {
		end := date(2024, time.March, 31)
		dues := recurrence.InstallmentDueDates(date(2024, time.January, 1), &end, 10)
		if len(dues) != 3 {
			t.Fatalf("expected 3 installments, got %d", len(dues))
		}
	})

	t.Run("termino antes do primeiro vencimento nao gera parcelas", func(t *testing.T) {
		end := date(2024, time.January, 25)
		dues := recurrence.InstallmentDueDates(date(2024, time.January, 20), &end, 10)
		if len(dues) != 0 {
			t.Fatalf("expected no installments, got %d", len(dues))
		}
	})
}

func TestCreateRecurrenceValidations(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	actorID := ulid.Make()
	ctx := context.Background()

	start := date(2024, time.January, 10)
	badEnd := date(2023, time.December, 31)

	tests := []struct {
		name string
		req  *recurrence.CreateRecurrenceRequest
	}{
		{
			name: "descricao vazia",
			req: &recurrence.CreateRecurrenceRequest{
				ChurchId: churchID, ActorId: actorID,
				Description: "   ", Amount: 100, DueDay: 5, StartDate: start,
			},
		},
		{
			name: "valor zero",
			req: &recurrence.CreateRecurrenceRequest{
				ChurchId: churchID, ActorId: actorID,
				Description: "Aluguel", Amount: 0, DueDay: 5, StartDate: start,
			},
		},
		{
			name: "frequencia invalida",
			req: &recurrence.CreateRecurrenceRequest{
				ChurchId: churchID, ActorId: actorID,
				Description: "Aluguel", Amount: 100, Frequency: "WEEKLY", DueDay: 5, StartDate: start,
			},
		},
		{
			name: "dia de vencimento fora do intervalo",
			req: &recurrence.CreateRecurrenceRequest{
				ChurchId: churchID, ActorId: actorID,
				Description: "Aluguel", Amount: 100, DueDay: 32, StartDate: start,
			},
		},
		{
			name: "termino anterior ao inicio",
			req: &recurrence.CreateRecurrenceRequest{
				ChurchId: churchID, ActorId: actorID,
				Description: "Aluguel", Amount: 100, DueDay: 5, StartDate: start, EndDate: &badEnd,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := recurrence.NewService(&fakeRecurrenceRepository{}, &fakeInstallmentStore{}, nil, nil)

			_, err := svc.CreateRecurrence(ctx, tt.req)
			if err == nil {
				t.Fatalf("expected error")
			}
			appErr, ok := appErrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %s", appErr.Code)
			}
		})
	}
}

func TestCreateRecurrenceRejectsIncomeCategory(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	categoryID := ulid.Make()

	categories := &category.Service{
		Repository: &fakeCategoryRepository{
			getByIDFn: func(ctx context.Context, id, church ulid.ULID) (*category.Category, error) {
				return &category.Category{Id: id, ChurchId: church, Name: "Dízimos", Type: category.TypeIncome}, nil
			},
		},
	}

	svc := recurrence.NewService(&fakeRecurrenceRepository{}, &fakeInstallmentStore{}, categories, nil)

	_, err := svc.CreateRecurrence(context.Background(), &recurrence.CreateRecurrenceRequest{
		ChurchId:    churchID,
		ActorId:     ulid.Make(),
		CategoryId:  &categoryID,
		Description: "Aluguel",
		Amount:      1200,
		DueDay:      5,
		StartDate:   date(2024, time.January, 10),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCreateRecurrenceGeneratesInstallments(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	actorID := ulid.Make()

	var created *recurrence.Recurrence
	var batch []*payable.AccountPayable

	repo := &fakeRecurrenceRepository{
		createFn: func(ctx context.Context, r *recurrence.Recurrence) error {
			created = r
			return nil
		},
	}
	store := &fakeInstallmentStore{
		createBatchFn: func(ctx context.Context, installments []*payable.AccountPayable) error {
			batch = installments
			return nil
		},
	}

	svc := recurrence.NewService(repo, store, nil, nil)

	r, err := svc.CreateRecurrence(context.Background(), &recurrence.CreateRecurrenceRequest{
		ChurchId:    churchID,
		ActorId:     actorID,
		Description: "Aluguel do salão",
		Amount:      1200,
		DueDay:      5,
		StartDate:   date(2024, time.January, 10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil || created.Status != recurrence.StatusActive {
		t.Fatalf("expected active recurrence persisted, got %+v", created)
	}
	if r.Frequency != recurrence.FrequencyMonthly {
		t.Fatalf("expected default MONTHLY frequency, got %s", r.Frequency)
	}
	if len(batch) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(batch))
	}
	first := batch[0]
	if first.Description != "Aluguel do salão (1/12)" {
		t.Fatalf("unexpected first description: %s", first.Description)
	}
	if first.RecurrenceId == nil || *first.RecurrenceId != r.Id {
		t.Fatalf("installment not linked to recurrence")
	}
	if !first.DueDate.Equal(date(2024, time.February, 5)) {
		t.Fatalf("expected first due 2024-02-05, got %s", first.DueDate)
	}
	last := batch[11]
	if last.Description != "Aluguel do salão (12/12)" {
		t.Fatalf("unexpected last description: %s", last.Description)
	}
	if !last.DueDate.Equal(date(2025, time.January, 5)) {
		t.Fatalf("expected last due 2025-01-05, got %s", last.DueDate)
	}
}

func TestRecomputeStatus(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	recurrenceID := ulid.Make()
	end := date(2024, time.March, 31)

	t.Run("persiste quando o status muda", func(t *testing.T) {
		var updated *recurrence.Recurrence
		repo := &fakeRecurrenceRepository{
			getByIDFn: func(ctx context.Context, id, church ulid.ULID) (*recurrence.Recurrence, error) {
				return &recurrence.Recurrence{
					Id: id, ChurchId: church,
					Description: "Aluguel", Status: recurrence.StatusActive,
					StartDate: date(2024, time.January, 1), EndDate: &end,
				}, nil
			},
			updateFn: func(ctx context.Context, r *recurrence.Recurrence) error {
				updated = r
				return nil
			},
		}
		store := &fakeInstallmentStore{
			countUnpaidByRecurrenceFn: func(ctx context.Context, id ulid.ULID) (int64, error) {
				return 0, nil
			},
		}

		svc := recurrence.NewService(repo, store, nil, nil)
		svc.Now = func() time.Time { return date(2024, time.June, 15) }

		if err := svc.RecomputeStatus(context.Background(), recurrenceID, churchID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil || updated.Status != recurrence.StatusCompleted {
			t.Fatalf("expected COMPLETED persisted, got %+v", updated)
		}
	})

	t.Run("nao persiste quando o status nao muda", func(t *testing.T) {
		updateCalls := 0
		repo := &fakeRecurrenceRepository{
			getByIDFn: func(ctx context.Context, id, church ulid.ULID) (*recurrence.Recurrence, error) {
				return &recurrence.Recurrence{
					Id: id, ChurchId: church,
					Description: "Aluguel", Status: recurrence.StatusActive,
					StartDate: date(2024, time.January, 1),
				}, nil
			},
			updateFn: func(ctx context.Context, r *recurrence.Recurrence) error {
				updateCalls++
				return nil
			},
		}
		store := &fakeInstallmentStore{
			countUnpaidByRecurrenceFn: func(ctx context.Context, id ulid.ULID) (int64, error) {
				return 5, nil
			},
		}

		svc := recurrence.NewService(repo, store, nil, nil)
		svc.Now = func() time.Time { return date(2024, time.June, 15) }

		if err := svc.RecomputeStatus(context.Background(), recurrenceID, churchID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updateCalls != 0 {
			t.Fatalf("expected no update, got %d", updateCalls)
		}
	})

	t.Run("recorrencia inexistente", func(t *testing.T) {
		svc := recurrence.NewService(&fakeRecurrenceRepository{}, &fakeInstallmentStore{}, nil, nil)

		err := svc.RecomputeStatus(context.Background(), recurrenceID, churchID)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrRecurrenceNotFound.Code {
			t.Fatalf("expected RECURRENCE_NOT_FOUND, got %v", err)
		}
	})
}

func TestSweepExpired(t *testing.T) {
	t.Parallel()

	endPast := date(2024, time.March, 31)

	candidates := []*recurrence.Recurrence{
		{Id: ulid.Make(), ChurchId: ulid.Make(), Description: "Aluguel", Status: recurrence.StatusActive, EndDate: &endPast},
		{Id: ulid.Make(), ChurchId: ulid.Make(), Description: "Internet", Status: recurrence.StatusActive, EndDate: &endPast},
	}

	unpaidByID := map[ulid.ULID]int64{
		candidates[0].Id: 2,
		candidates[1].Id: 0,
	}

	var updates []*recurrence.Recurrence
	repo := &fakeRecurrenceRepository{
		getExpiredCandidatesFn: func(ctx context.Context, before time.Time) ([]*recurrence.Recurrence, error) {
			return candidates, nil
		},
		updateFn: func(ctx context.Context, r *recurrence.Recurrence) error {
			updates = append(updates, r)
			return nil
		},
	}
	store := &fakeInstallmentStore{
		countUnpaidByRecurrenceFn: func(ctx context.Context, id ulid.ULID) (int64, error) {
			return unpaidByID[id], nil
		},
	}

	svc := recurrence.NewService(repo, store, nil, nil)
	svc.Now = func() time.Time { return date(2024, time.June, 15) }

	changed, err := svc.SweepExpired(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed != 2 {
		t.Fatalf("expected 2 changed, got %d", changed)
	}
	if updates[0].Status != recurrence.StatusExpired {
		t.Fatalf("expected first candidate EXPIRED, got %s", updates[0].Status)
	}
	if updates[1].Status != recurrence.StatusCompleted {
		t.Fatalf("expected second candidate COMPLETED, got %s", updates[1].Status)
	}
}

func TestUpdateRecurrence(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	recurrenceID := ulid.Make()

	baseline := func() *recurrence.Recurrence {
		return &recurrence.Recurrence{
			Id:          recurrenceID,
			ChurchId:    churchID,
			Description: "Aluguel",
			Amount:      1200,
			DueDay:      5,
			StartDate:   date(2024, time.January, 1),
			Status:      recurrence.StatusActive,
		}
	}

	t.Run("termino anterior ao inicio", func(t *testing.T) {
		repo := &fakeRecurrenceRepository{
			getByIDFn: func(ctx context.Context, id, church ulid.ULID) (*recurrence.Recurrence, error) {
				return baseline(), nil
			},
		}
		svc := recurrence.NewService(repo, &fakeInstallmentStore{}, nil, nil)

		badEnd := date(2023, time.December, 1)
		_, err := svc.UpdateRecurrence(context.Background(), recurrenceID, churchID, &recurrence.UpdateRecurrenceRequest{
			EndDate: &badEnd,
		})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("antecipar o termino expira com parcelas em aberto", func(t *testing.T) {
		var updated *recurrence.Recurrence
		repo := &fakeRecurrenceRepository{
			getByIDFn: func(ctx context.Context, id, church ulid.ULID) (*recurrence.Recurrence, error) {
				return baseline(), nil
			},
			updateFn: func(ctx context.Context, r *recurrence.Recurrence) error {
				updated = r
				return nil
			},
		}
		store := &fakeInstallmentStore{
			countUnpaidByRecurrenceFn: func(ctx context.Context, id ulid.ULID) (int64, error) {
				return 4, nil
			},
		}
		svc := recurrence.NewService(repo, store, nil, nil)
		svc.Now = func() time.Time { return date(2024, time.June, 15) }

		newEnd := date(2024, time.March, 31)
		r, err := svc.UpdateRecurrence(context.Background(), recurrenceID, churchID, &recurrence.UpdateRecurrenceRequest{
			EndDate: &newEnd,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Status != recurrence.StatusExpired {
			t.Fatalf("expected EXPIRED, got %s", r.Status)
		}
		if updated == nil || updated.EndDate == nil || !updated.EndDate.Equal(newEnd) {
			t.Fatalf("expected end date persisted, got %+v", updated)
		}
	})
}
