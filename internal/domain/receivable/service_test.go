package receivable_test

import (
	"context"
	"testing"
	"time"

	"Ecclesia/internal/domain/dailycash"
	"Ecclesia/internal/domain/receivable"
	"Ecclesia/internal/domain/transaction"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type fakeReceivableRepository struct {
	createFn      func(ctx context.Context, r *receivable.AccountReceivable) error
	updateFn      func(ctx context.Context, r *receivable.AccountReceivable) error
	deleteFn      func(ctx context.Context, receivableID, churchID ulid.ULID) error
	getByIDFn     func(ctx context.Context, receivableID ulid.ULID) (*receivable.AccountReceivable, error)
	getByChurchFn func(ctx context.Context, churchID ulid.ULID, filters *receivable.Filters, pagination *pkg.PaginationParams) ([]*receivable.AccountReceivable, int64, error)
	settleFn      func(ctx context.Context, r *receivable.AccountReceivable, t *transaction.Transaction) error
}

func (f *fakeReceivableRepository) Create(ctx context.Context, r *receivable.AccountReceivable) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeReceivableRepository) Update(ctx context.Context, r *receivable.AccountReceivable) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

func (f *fakeReceivableRepository) Delete(ctx context.Context, receivableID, churchID ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, receivableID, churchID)
	}
	return nil
}

func (f *fakeReceivableRepository) GetByID(ctx context.Context, receivableID ulid.ULID) (*receivable.AccountReceivable, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, receivableID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReceivableRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, filters *receivable.Filters, pagination *pkg.PaginationParams) ([]*receivable.AccountReceivable, int64, error) {
	if f.getByChurchFn != nil {
		return f.getByChurchFn(ctx, churchID, filters, pagination)
	}
	return nil, 0, nil
}

func (f *fakeReceivableRepository) Settle(ctx context.Context, r *receivable.AccountReceivable, t *transaction.Transaction) error {
	if f.settleFn != nil {
		return f.settleFn(ctx, r, t)
	}
	return nil
}

type fakeDailyCashRepository struct {
	register *dailycash.DailyCash
}

func (f *fakeDailyCashRepository) Create(ctx context.Context, dc *dailycash.DailyCash) error {
	return nil
}
func (f *fakeDailyCashRepository) Update(ctx context.Context, dc *dailycash.DailyCash) error {
	return nil
}
func (f *fakeDailyCashRepository) GetByDate(ctx context.Context, churchID ulid.ULID, date time.Time) (*dailycash.DailyCash, error) {
	if f.register != nil {
		return f.register, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDailyCashRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, pagination *pkg.PaginationParams) ([]*dailycash.DailyCash, int64, error) {
	return nil, 0, nil
}

type fakeLedger struct{}

func (f *fakeLedger) SumBefore(ctx context.Context, churchID ulid.ULID, day time.Time) (float64, float64, error) {
	return 0, 0, nil
}
func (f *fakeLedger) SumOnDay(ctx context.Context, churchID ulid.ULID, day time.Time) (float64, float64, error) {
	return 0, 0, nil
}

func newDailyCashService(churchID ulid.ULID) *dailycash.Service {
	register := &dailycash.DailyCash{
		Id:       ulid.Make(),
		ChurchId: churchID,
		Date:     time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
	return dailycash.NewService(&fakeDailyCashRepository{register: register}, &fakeLedger{}, nil)
}

func TestGetReceivableByIDOwnership(t *testing.T) {
	t.Parallel()

	ownerChurch := ulid.Make()
	otherChurch := ulid.Make()
	receivableID := ulid.Make()

	repo := &fakeReceivableRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*receivable.AccountReceivable, error) {
			return &receivable.AccountReceivable{Id: id, ChurchId: ownerChurch, Description: "Dízimo", Amount: 100}, nil
		},
	}

	svc := receivable.NewService(repo, nil, nil, nil, nil, nil)

	t.Run("conta de outra igreja responde 403", func(t *testing.T) {
		_, err := svc.GetReceivableByID(context.Background(), receivableID, otherChurch)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrResourceNotOwned.Code {
			t.Fatalf("expected RESOURCE_NOT_OWNED, got %v", err)
		}
		if appErr.StatusCode != 403 {
			t.Fatalf("expected status 403, got %d", appErr.StatusCode)
		}
	})

	t.Run("conta da propria igreja e devolvida", func(t *testing.T) {
		r, err := svc.GetReceivableByID(context.Background(), receivableID, ownerChurch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.ChurchId != ownerChurch {
			t.Fatalf("unexpected church: %s", r.ChurchId)
		}
	})

	t.Run("conta inexistente responde 404", func(t *testing.T) {
		empty := receivable.NewService(&fakeReceivableRepository{}, nil, nil, nil, nil, nil)

		_, err := empty.GetReceivableByID(context.Background(), receivableID, ownerChurch)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrReceivableNotFound.Code {
			t.Fatalf("expected RECEIVABLE_NOT_FOUND, got %v", err)
		}
	})
}

func TestMarkAsReceivedTenantMismatchLeavesNoTrace(t *testing.T) {
	t.Parallel()

	ownerChurch := ulid.Make()
	otherChurch := ulid.Make()

	settleCalls := 0
	repo := &fakeReceivableRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*receivable.AccountReceivable, error) {
			return &receivable.AccountReceivable{Id: id, ChurchId: ownerChurch, Description: "Dízimo", Amount: 100}, nil
		},
		settleFn: func(ctx context.Context, r *receivable.AccountReceivable, tr *transaction.Transaction) error {
			settleCalls++
			return nil
		},
	}

	svc := receivable.NewService(repo, nil, nil, newDailyCashService(otherChurch), nil, nil)

	_, err := svc.MarkAsReceived(context.Background(), ulid.Make(), otherChurch, ulid.Make())
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrResourceNotOwned.Code {
		t.Fatalf("expected RESOURCE_NOT_OWNED, got %v", err)
	}
	if settleCalls != 0 {
		t.Fatalf("expected no settle for foreign receivable")
	}
}

func TestMarkAsReceivedSettlesWithoutLiquidityGate(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	actorID := ulid.Make()

	var settledTx *transaction.Transaction
	repo := &fakeReceivableRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*receivable.AccountReceivable, error) {
			return &receivable.AccountReceivable{Id: id, ChurchId: churchID, Description: "Oferta especial", Amount: 350}, nil
		},
		settleFn: func(ctx context.Context, r *receivable.AccountReceivable, tr *transaction.Transaction) error {
			settledTx = tr
			return nil
		},
	}

	// caixa com saldo zerado: entrada de dinheiro não exige saldo
	svc := receivable.NewService(repo, nil, nil, newDailyCashService(churchID), nil, nil)
	svc.Now = func() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC) }

	r, err := svc.MarkAsReceived(context.Background(), ulid.Make(), churchID, actorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !r.Received || r.ReceivedAt == nil || r.ReceivedById == nil || *r.ReceivedById != actorID {
		t.Fatalf("expected receipt fields set, got %+v", r)
	}
	if settledTx == nil {
		t.Fatalf("expected ledger entry")
	}
	if settledTx.Type != transaction.Income {
		t.Fatalf("expected INCOME entry, got %s", settledTx.Type)
	}
	if settledTx.Description != "Recebimento: Oferta especial" {
		t.Fatalf("unexpected description: %s", settledTx.Description)
	}
}

func TestMarkAsReceivedAlreadyReceived(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()

	repo := &fakeReceivableRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*receivable.AccountReceivable, error) {
			return &receivable.AccountReceivable{Id: id, ChurchId: churchID, Description: "Dízimo", Amount: 100, Received: true}, nil
		},
	}

	svc := receivable.NewService(repo, nil, nil, nil, nil, nil)

	_, err := svc.MarkAsReceived(context.Background(), ulid.Make(), churchID, ulid.Make())
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrReceivableAlreadyDone.Code {
		t.Fatalf("expected RECEIVABLE_ALREADY_RECEIVED, got %v", err)
	}
}

func TestMarkAsReceivedLostRace(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()

	repo := &fakeReceivableRepository{
		getByIDFn: func(ctx context.Context, id ulid.ULID) (*receivable.AccountReceivable, error) {
			return &receivable.AccountReceivable{Id: id, ChurchId: churchID, Description: "Dízimo", Amount: 100}, nil
		},
		settleFn: func(ctx context.Context, r *receivable.AccountReceivable, tr *transaction.Transaction) error {
			return receivable.ErrAlreadySettled
		},
	}

	svc := receivable.NewService(repo, nil, nil, newDailyCashService(churchID), nil, nil)

	_, err := svc.MarkAsReceived(context.Background(), ulid.Make(), churchID, ulid.Make())
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrReceivableAlreadyDone.Code {
		t.Fatalf("expected RECEIVABLE_ALREADY_RECEIVED on lost race, got %v", err)
	}
}

func TestCreateReceivableValidations(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	actorID := ulid.Make()
	due := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *receivable.CreateReceivableRequest
	}{
		{
			name: "descricao vazia",
			req:  &receivable.CreateReceivableRequest{ChurchId: churchID, ActorId: actorID, Description: "", Amount: 100, DueDate: due},
		},
		{
			name: "valor negativo",
			req:  &receivable.CreateReceivableRequest{ChurchId: churchID, ActorId: actorID, Description: "Dízimo", Amount: -10, DueDate: due},
		},
		{
			name: "vencimento ausente",
			req:  &receivable.CreateReceivableRequest{ChurchId: churchID, ActorId: actorID, Description: "Dízimo", Amount: 100},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := receivable.NewService(&fakeReceivableRepository{}, nil, nil, nil, nil, nil)

			_, err := svc.CreateReceivable(context.Background(), tt.req)
			appErr, ok := appErrors.AsAppError(err)
			if !ok || appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}
