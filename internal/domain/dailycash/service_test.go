package dailycash_test

import (
	"context"
	"testing"
	"time"

	"Ecclesia/internal/domain/dailycash"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type fakeDailyCashRepository struct {
	createFn      func(ctx context.Context, dc *dailycash.DailyCash) error
	updateFn      func(ctx context.Context, dc *dailycash.DailyCash) error
	getByDateFn   func(ctx context.Context, churchID ulid.ULID, date time.Time) (*dailycash.DailyCash, error)
	getByChurchFn func(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*dailycash.DailyCash, int64, error)
}

func (f *fakeDailyCashRepository) Create(ctx context.Context, dc *dailycash.DailyCash) error {
	if f.createFn != nil {
		return f.createFn(ctx, dc)
	}
	return nil
}

func (f *fakeDailyCashRepository) Update(ctx context.Context, dc *dailycash.DailyCash) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, dc)
	}
	return nil
}

func (f *fakeDailyCashRepository) GetByDate(ctx context.Context, churchID ulid.ULID, date time.Time) (*dailycash.DailyCash, error) {
	if f.getByDateFn != nil {
		return f.getByDateFn(ctx, churchID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDailyCashRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*dailycash.DailyCash, int64, error) {
	if f.getByChurchFn != nil {
		return f.getByChurchFn(ctx, churchID, pagination)
	}
	return nil, 0, nil
}

type fakeLedger struct {
	beforeFn      func(day time.Time) (float64, float64)
	beforeIncome  float64
	beforeExpense float64
	dayIncome     float64
	dayExpense    float64
}

func (f *fakeLedger) SumBefore(ctx context.Context, churchID ulid.ULID, day time.Time) (float64, float64, error) {
	if f.beforeFn != nil {
		income, expense := f.beforeFn(day)
		return income, expense, nil
	}
	return f.beforeIncome, f.beforeExpense, nil
}

func (f *fakeLedger) SumOnDay(ctx context.Context, churchID ulid.ULID, day time.Time) (float64, float64, error) {
	return f.dayIncome, f.dayExpense, nil
}

func TestEnsureOpenAtCreatesWithHistoricalBalance(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	actorID := ulid.Make()

	var created *dailycash.DailyCash
	repo := &fakeDailyCashRepository{
		createFn: func(ctx context.Context, dc *dailycash.DailyCash) error {
			created = dc
			return nil
		},
	}

	svc := dailycash.NewService(repo, &fakeLedger{beforeIncome: 5000, beforeExpense: 1200}, nil)

	asOf := time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)
	dc, err := svc.EnsureOpenAt(context.Background(), churchID, actorID, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatalf("expected create call")
	}
	if dc.OpeningAmount != 3800 {
		t.Fatalf("expected opening 3800, got %.2f", dc.OpeningAmount)
	}
	wantDay := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	if !dc.Date.Equal(wantDay) {
		t.Fatalf("expected date truncated to %s, got %s", wantDay, dc.Date)
	}
	if dc.CreatedById != actorID {
		t.Fatalf("expected creator recorded")
	}
}

func TestEnsureOpenAtBackdatedExcludesLaterMovement(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	actorID := ulid.Make()

	repo := &fakeDailyCashRepository{}

	// Até 10/06 o histórico soma 1000−200; os lançamentos de dias
	// posteriores não entram na abertura do caixa retroativo.
	cutoff := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	var askedDay time.Time
	ledger := &fakeLedger{
		beforeFn: func(day time.Time) (float64, float64) {
			askedDay = day
			if day.After(cutoff) {
				return 9000, 4000
			}
			return 1000, 200
		},
	}

	svc := dailycash.NewService(repo, ledger, nil)

	asOf := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	dc, err := svc.EnsureOpenAt(context.Background(), churchID, actorID, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !askedDay.Equal(cutoff) {
		t.Fatalf("expected ledger cutoff at %s, got %s", cutoff, askedDay)
	}
	if dc.OpeningAmount != 800 {
		t.Fatalf("expected opening 800, got %.2f", dc.OpeningAmount)
	}
}

func TestEnsureOpenAtIsIdempotent(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	existing := &dailycash.DailyCash{
		Id:            ulid.Make(),
		ChurchId:      churchID,
		Date:          time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		OpeningAmount: 900,
	}

	createCalls := 0
	repo := &fakeDailyCashRepository{
		getByDateFn: func(ctx context.Context, church ulid.ULID, date time.Time) (*dailycash.DailyCash, error) {
			return existing, nil
		},
		createFn: func(ctx context.Context, dc *dailycash.DailyCash) error {
			createCalls++
			return nil
		},
	}

	svc := dailycash.NewService(repo, &fakeLedger{}, nil)

	dc, err := svc.EnsureOpenAt(context.Background(), churchID, ulid.Make(),
		time.Date(2024, time.June, 15, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dc != existing {
		t.Fatalf("expected existing register returned")
	}
	if createCalls != 0 {
		t.Fatalf("expected no create, got %d", createCalls)
	}
}

func TestEnsureOpenAtResolvesDuplicateRace(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	winner := &dailycash.DailyCash{
		Id:            ulid.Make(),
		ChurchId:      churchID,
		Date:          time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		OpeningAmount: 700,
	}

	lookups := 0
	repo := &fakeDailyCashRepository{
		getByDateFn: func(ctx context.Context, church ulid.ULID, date time.Time) (*dailycash.DailyCash, error) {
			lookups++
			// primeira consulta não encontra; após a corrida, a linha vencedora existe
			if lookups == 1 {
				return nil, gorm.ErrRecordNotFound
			}
			return winner, nil
		},
		createFn: func(ctx context.Context, dc *dailycash.DailyCash) error {
			return dailycash.ErrDuplicateDay
		},
	}

	svc := dailycash.NewService(repo, &fakeLedger{}, nil)

	dc, err := svc.EnsureOpenAt(context.Background(), churchID, ulid.Make(),
		time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dc != winner {
		t.Fatalf("expected winning row returned after duplicate, got %+v", dc)
	}
}

func TestClose(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	actorID := ulid.Make()
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("caixa inexistente", func(t *testing.T) {
		svc := dailycash.NewService(&fakeDailyCashRepository{}, &fakeLedger{}, nil)

		_, err := svc.Close(context.Background(), &dailycash.CloseRequest{
			ChurchId: churchID, ActorId: actorID, Date: day, ClosingAmount: 100,
		})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrDailyCashNotFound.Code {
			t.Fatalf("expected DAILY_CASH_NOT_FOUND, got %v", err)
		}
	})

	t.Run("fechamento e write-once", func(t *testing.T) {
		closing := 250.0
		repo := &fakeDailyCashRepository{
			getByDateFn: func(ctx context.Context, church ulid.ULID, date time.Time) (*dailycash.DailyCash, error) {
				return &dailycash.DailyCash{
					Id: ulid.Make(), ChurchId: church, Date: day, ClosingAmount: &closing,
				}, nil
			},
		}
		svc := dailycash.NewService(repo, &fakeLedger{}, nil)

		_, err := svc.Close(context.Background(), &dailycash.CloseRequest{
			ChurchId: churchID, ActorId: actorID, Date: day, ClosingAmount: 300,
		})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrDailyCashAlreadyClosed.Code {
			t.Fatalf("expected DAILY_CASH_ALREADY_CLOSED, got %v", err)
		}
	})

	t.Run("valor de fechamento negativo", func(t *testing.T) {
		svc := dailycash.NewService(&fakeDailyCashRepository{}, &fakeLedger{}, nil)

		_, err := svc.Close(context.Background(), &dailycash.CloseRequest{
			ChurchId: churchID, ActorId: actorID, Date: day, ClosingAmount: -1,
		})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("fechamento grava valor, notas e autor", func(t *testing.T) {
		var updated *dailycash.DailyCash
		repo := &fakeDailyCashRepository{
			getByDateFn: func(ctx context.Context, church ulid.ULID, date time.Time) (*dailycash.DailyCash, error) {
				return &dailycash.DailyCash{Id: ulid.Make(), ChurchId: church, Date: day, OpeningAmount: 500}, nil
			},
			updateFn: func(ctx context.Context, dc *dailycash.DailyCash) error {
				updated = dc
				return nil
			},
		}
		svc := dailycash.NewService(repo, &fakeLedger{}, nil)

		dc, err := svc.Close(context.Background(), &dailycash.CloseRequest{
			ChurchId: churchID, ActorId: actorID, Date: day, ClosingAmount: 820.5, Notes: "conferido",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil || updated.ClosingAmount == nil || *updated.ClosingAmount != 820.5 {
			t.Fatalf("expected closing amount persisted, got %+v", updated)
		}
		if dc.Notes != "conferido" {
			t.Fatalf("expected notes persisted")
		}
		if dc.ClosedById == nil || *dc.ClosedById != actorID {
			t.Fatalf("expected closer recorded")
		}
		if !dc.IsClosed() {
			t.Fatalf("expected register closed")
		}
	})
}

func TestCurrentBalance(t *testing.T) {
	t.Parallel()

	svc := dailycash.NewService(&fakeDailyCashRepository{}, &fakeLedger{dayIncome: 300, dayExpense: 120}, nil)

	dc := &dailycash.DailyCash{
		ChurchId:      ulid.Make(),
		Date:          time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		OpeningAmount: 1000,
	}

	balance, err := svc.CurrentBalance(context.Background(), dc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 1180 {
		t.Fatalf("expected balance 1180, got %.2f", balance)
	}
}
