package payable_test

import (
	"context"
	"testing"
	"time"

	"Ecclesia/internal/domain/dailycash"
	"Ecclesia/internal/domain/payable"
	"Ecclesia/internal/domain/transaction"
	appErrors "Ecclesia/internal/errors"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type fakePayableRepository struct {
	createFn                  func(ctx context.Context, p *payable.AccountPayable) error
	createBatchFn             func(ctx context.Context, installments []*payable.AccountPayable) error
	updateFn                  func(ctx context.Context, p *payable.AccountPayable) error
	deleteFn                  func(ctx context.Context, payableID, churchID ulid.ULID) error
	getByIDFn                 func(ctx context.Context, payableID, churchID ulid.ULID) (*payable.AccountPayable, error)
	getByChurchFn             func(ctx context.Context, churchID ulid.ULID, filters *payable.Filters, pagination *pkg.PaginationParams) ([]*payable.AccountPayable, int64, error)
	countUnpaidByRecurrenceFn func(ctx context.Context, recurrenceID ulid.ULID) (int64, error)
	settleFn                  func(ctx context.Context, p *payable.AccountPayable, t *transaction.Transaction) error
}

func (f *fakePayableRepository) Create(ctx context.Context, p *payable.AccountPayable) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayableRepository) CreateBatch(ctx context.Context, installments []*payable.AccountPayable) error {
	if f.createBatchFn != nil {
		return f.createBatchFn(ctx, installments)
	}
	return nil
}

func (f *fakePayableRepository) Update(ctx context.Context, p *payable.AccountPayable) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}

func (f *fakePayableRepository) Delete(ctx context.Context, payableID, churchID ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, payableID, churchID)
	}
	return nil
}

func (f *fakePayableRepository) GetByID(ctx context.Context, payableID, churchID ulid.ULID) (*payable.AccountPayable, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, payableID, churchID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayableRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, filters *payable.Filters, pagination *pkg.PaginationParams) ([]*payable.AccountPayable, int64, error) {
	if f.getByChurchFn != nil {
		return f.getByChurchFn(ctx, churchID, filters, pagination)
	}
	return nil, 0, nil
}

func (f *fakePayableRepository) CountUnpaidByRecurrence(ctx context.Context, recurrenceID ulid.ULID) (int64, error) {
	if f.countUnpaidByRecurrenceFn != nil {
		return f.countUnpaidByRecurrenceFn(ctx, recurrenceID)
	}
	return 0, nil
}

func (f *fakePayableRepository) Settle(ctx context.Context, p *payable.AccountPayable, t *transaction.Transaction) error {
	if f.settleFn != nil {
		return f.settleFn(ctx, p, t)
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

type fakeLedger struct {
	dayIncome  float64
	dayExpense float64
}

func (f *fakeLedger) SumBefore(ctx context.Context, churchID ulid.ULID, day time.Time) (float64, float64, error) {
	return 0, 0, nil
}
func (f *fakeLedger) SumOnDay(ctx context.Context, churchID ulid.ULID, day time.Time) (float64, float64, error) {
	return f.dayIncome, f.dayExpense, nil
}

type fakeStatusRecomputer struct {
	calls []ulid.ULID
	err   error
}

func (f *fakeStatusRecomputer) RecomputeStatus(ctx context.Context, recurrenceID, churchID ulid.ULID) error {
	f.calls = append(f.calls, recurrenceID)
	return f.err
}

func newDailyCashService(register *dailycash.DailyCash, ledger *fakeLedger) *dailycash.Service {
	return dailycash.NewService(&fakeDailyCashRepository{register: register}, ledger, nil)
}

func openRegister(churchID ulid.ULID, opening float64) *dailycash.DailyCash {
	return &dailycash.DailyCash{
		Id:            ulid.Make(),
		ChurchId:      churchID,
		Date:          time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
		OpeningAmount: opening,
	}
}

func TestMarkAsPaidNotFound(t *testing.T) {
	t.Parallel()

	svc := payable.NewService(&fakePayableRepository{}, nil, nil, nil, nil)

	_, err := svc.MarkAsPaid(context.Background(), ulid.Make(), ulid.Make(), ulid.Make())
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrPayableNotFound.Code {
		t.Fatalf("expected PAYABLE_NOT_FOUND, got %v", err)
	}
}

func TestMarkAsPaidAlreadyPaid(t *testing.T) {
	t.Parallel()

	settleCalls := 0
	repo := &fakePayableRepository{
		getByIDFn: func(ctx context.Context, id, church ulid.ULID) (*payable.AccountPayable, error) {
			return &payable.AccountPayable{Id: id, ChurchId: church, Description: "Aluguel", Amount: 100, Paid: true}, nil
		},
		settleFn: func(ctx context.Context, p *payable.AccountPayable, tr *transaction.Transaction) error {
			settleCalls++
			return nil
		},
	}

	svc := payable.NewService(repo, nil, nil, nil, nil)

	_, err := svc.MarkAsPaid(context.Background(), ulid.Make(), ulid.Make(), ulid.Make())
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrPayableAlreadyPaid.Code {
		t.Fatalf("expected PAYABLE_ALREADY_PAID, got %v", err)
	}
	if settleCalls != 0 {
		t.Fatalf("expected no settle attempt")
	}
}

func TestMarkAsPaidInsufficientDayBalance(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()

	settleCalls := 0
	repo := &fakePayableRepository{
		getByIDFn: func(ctx context.Context, id, church ulid.ULID) (*payable.AccountPayable, error) {
			return &payable.AccountPayable{Id: id, ChurchId: church, Description: "Aluguel", Amount: 500}, nil
		},
		settleFn: func(ctx context.Context, p *payable.AccountPayable, tr *transaction.Transaction) error {
			settleCalls++
			return nil
		},
	}

	// abertura 100, sem movimento no dia: saldo do dia 100 < 500
	svc := payable.NewService(repo, nil, newDailyCashService(openRegister(churchID, 100), &fakeLedger{}), nil, nil)

	_, err := svc.MarkAsPaid(context.Background(), ulid.Make(), churchID, ulid.Make())
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrInsufficientDayBalance.Code {
		t.Fatalf("expected SALDO_DIARIO_INSUFICIENTE, got %v", err)
	}
	if settleCalls != 0 {
		t.Fatalf("expected no settle when balance is insufficient")
	}
}

func TestMarkAsPaidSettlesAndRecomputes(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	actorID := ulid.Make()
	recurrenceID := ulid.Make()

	var settledTx *transaction.Transaction
	repo := &fakePayableRepository{
		getByIDFn: func(ctx context.Context, id, church ulid.ULID) (*payable.AccountPayable, error) {
			return &payable.AccountPayable{
				Id: id, ChurchId: church, RecurrenceId: &recurrenceID,
				Description: "Aluguel (3/12)", Amount: 500,
			}, nil
		},
		settleFn: func(ctx context.Context, p *payable.AccountPayable, tr *transaction.Transaction) error {
			settledTx = tr
			return nil
		},
	}

	recomputer := &fakeStatusRecomputer{}
	svc := payable.NewService(repo, nil, newDailyCashService(openRegister(churchID, 1000), &fakeLedger{}), nil, nil)
	svc.Recurrences = recomputer
	svc.Now = func() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC) }

	p, err := svc.MarkAsPaid(context.Background(), ulid.Make(), churchID, actorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !p.Paid || p.PaidAt == nil || p.PaidById == nil || *p.PaidById != actorID {
		t.Fatalf("expected payment fields set, got %+v", p)
	}
	if settledTx == nil {
		t.Fatalf("expected ledger entry")
	}
	if settledTx.Type != transaction.Expense {
		t.Fatalf("expected EXPENSE entry, got %s", settledTx.Type)
	}
	if settledTx.Amount != 500 {
		t.Fatalf("expected amount 500, got %.2f", settledTx.Amount)
	}
	if settledTx.Description != "Pagamento: Aluguel (3/12)" {
		t.Fatalf("unexpected description: %s", settledTx.Description)
	}
	if len(recomputer.calls) != 1 || recomputer.calls[0] != recurrenceID {
		t.Fatalf("expected status recompute for recurrence")
	}
}

func TestMarkAsPaidLostRace(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()

	repo := &fakePayableRepository{
		getByIDFn: func(ctx context.Context, id, church ulid.ULID) (*payable.AccountPayable, error) {
			return &payable.AccountPayable{Id: id, ChurchId: church, Description: "Aluguel", Amount: 200}, nil
		},
		settleFn: func(ctx context.Context, p *payable.AccountPayable, tr *transaction.Transaction) error {
			return payable.ErrAlreadySettled
		},
	}

	svc := payable.NewService(repo, nil, newDailyCashService(openRegister(churchID, 1000), &fakeLedger{}), nil, nil)

	_, err := svc.MarkAsPaid(context.Background(), ulid.Make(), churchID, ulid.Make())
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrPayableAlreadyPaid.Code {
		t.Fatalf("expected PAYABLE_ALREADY_PAID on lost race, got %v", err)
	}
}

func TestMarkAsPaidConcurrentSettlementsCannotOvercommitDay(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	opening := 100.0

	payables := map[ulid.ULID]*payable.AccountPayable{}
	for _, desc := range []string{"Luz", "Água"} {
		p := &payable.AccountPayable{Id: ulid.Make(), ChurchId: churchID, Description: desc, Amount: 60}
		payables[p.Id] = p
	}

	// O repositório revalida o saldo do dia dentro da transação de
	// quitação, já enxergando as despesas confirmadas antes dela.
	settledExpense := 0.0
	repo := &fakePayableRepository{
		getByIDFn: func(ctx context.Context, id, church ulid.ULID) (*payable.AccountPayable, error) {
			if p, ok := payables[id]; ok {
				snapshot := *p
				return &snapshot, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		settleFn: func(ctx context.Context, p *payable.AccountPayable, tr *transaction.Transaction) error {
			if opening-settledExpense < tr.Amount {
				return payable.ErrInsufficientDayBalance
			}
			settledExpense += tr.Amount
			return nil
		},
	}

	// A checagem de caminho rápido vê o mesmo retrato para as duas contas:
	// saldo do dia 100 cobre 60 em ambas.
	svc := payable.NewService(repo, nil, newDailyCashService(openRegister(churchID, opening), &fakeLedger{}), nil, nil)

	var succeeded, rejected int
	for id := range payables {
		_, err := svc.MarkAsPaid(context.Background(), id, churchID, ulid.Make())
		if err == nil {
			succeeded++
			continue
		}
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrInsufficientDayBalance.Code {
			t.Fatalf("expected SALDO_DIARIO_INSUFICIENTE, got %v", err)
		}
		rejected++
	}

	if succeeded != 1 || rejected != 1 {
		t.Fatalf("expected exactly one settlement, got %d settled and %d rejected", succeeded, rejected)
	}
	if settledExpense > opening {
		t.Fatalf("day overcommitted: opening %.2f, settled %.2f", opening, settledExpense)
	}
}

func TestCreatePayableValidations(t *testing.T) {
	t.Parallel()

	churchID := ulid.Make()
	actorID := ulid.Make()
	due := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *payable.CreatePayableRequest
	}{
		{
			name: "descricao vazia",
			req:  &payable.CreatePayableRequest{ChurchId: churchID, ActorId: actorID, Description: " ", Amount: 100, DueDate: due},
		},
		{
			name: "valor zero",
			req:  &payable.CreatePayableRequest{ChurchId: churchID, ActorId: actorID, Description: "Luz", Amount: 0, DueDate: due},
		},
		{
			name: "vencimento ausente",
			req:  &payable.CreatePayableRequest{ChurchId: churchID, ActorId: actorID, Description: "Luz", Amount: 100},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := payable.NewService(&fakePayableRepository{}, nil, nil, nil, nil)

			_, err := svc.CreatePayable(context.Background(), tt.req)
			appErr, ok := appErrors.AsAppError(err)
			if !ok || appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}

func TestUpdateAndDeleteRejectPaid(t *testing.T) {
	t.Parallel()

	repo := &fakePayableRepository{
		getByIDFn: func(ctx context.Context, id, church ulid.ULID) (*payable.AccountPayable, error) {
			return &payable.AccountPayable{Id: id, ChurchId: church, Description: "Aluguel", Amount: 100, Paid: true}, nil
		},
	}

	svc := payable.NewService(repo, nil, nil, nil, nil)

	newAmount := 150.0
	_, err := svc.UpdatePayable(context.Background(), ulid.Make(), ulid.Make(), &payable.UpdatePayableRequest{Amount: &newAmount})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrPayableAlreadyPaid.Code {
		t.Fatalf("expected PAYABLE_ALREADY_PAID on update, got %v", err)
	}

	err = svc.DeletePayable(context.Background(), ulid.Make(), ulid.Make(), ulid.Make())
	appErr, ok = appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrPayableAlreadyPaid.Code {
		t.Fatalf("expected PAYABLE_ALREADY_PAID on delete, got %v", err)
	}
}
