package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/payable"
	"Ecclesia/internal/domain/recurrence"
	"Ecclesia/internal/domain/transaction"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PayableRepository struct {
	DB *gorm.DB
}

var _ payable.Repository = (*PayableRepository)(nil)
var _ recurrence.InstallmentStore = (*PayableRepository)(nil)

type payableDB struct {
	Id           string     `gorm:"type:varchar(26);primaryKey;column:id"`
	ChurchId     string     `gorm:"type:varchar(26);not null;column:church_id"`
	RecurrenceId *string    `gorm:"type:varchar(26);column:recurrence_id"`
	CategoryId   *string    `gorm:"type:varchar(26);column:category_id"`
	Description  string     `gorm:"size:255;not null;column:description"`
	Amount       float64    `gorm:"not null;column:amount"`
	DueDate      time.Time  `gorm:"not null;column:due_date"`
	Paid         bool       `gorm:"not null;column:paid"`
	PaidAt       *time.Time `gorm:"column:paid_at"`
	PaidById     *string    `gorm:"type:varchar(26);column:paid_by_id"`
	CreatedById  string     `gorm:"type:varchar(26);not null;column:created_by_id"`
	CreatedAt    time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt    time.Time  `gorm:"not null;column:updated_at"`
}

func toDomainPayable(pdb *payableDB) (*payable.AccountPayable, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, err
	}
	churchID, err := pkg.ParseULID(pdb.ChurchId)
	if err != nil {
		return nil, err
	}
	createdByID, err := pkg.ParseULID(pdb.CreatedById)
	if err != nil {
		return nil, err
	}
	recurrenceID, err := pkg.ParseULIDPtr(pdb.RecurrenceId)
	if err != nil {
		return nil, err
	}
	categoryID, err := pkg.ParseULIDPtr(pdb.CategoryId)
	if err != nil {
		return nil, err
	}
	paidByID, err := pkg.ParseULIDPtr(pdb.PaidById)
	if err != nil {
		return nil, err
	}

	return &payable.AccountPayable{
		Id:           id,
		ChurchId:     churchID,
		RecurrenceId: recurrenceID,
		CategoryId:   categoryID,
		Description:  pdb.Description,
		Amount:       pdb.Amount,
		DueDate:      pdb.DueDate,
		Paid:         pdb.Paid,
		PaidAt:       pdb.PaidAt,
		PaidById:     paidByID,
		CreatedById:  createdByID,
		CreatedAt:    pdb.CreatedAt,
		UpdatedAt:    pdb.UpdatedAt,
	}, nil
}

func toDBPayable(p *payable.AccountPayable) *payableDB {
	var recurrenceID, categoryID, paidByID *string
	if p.RecurrenceId != nil {
		s := p.RecurrenceId.String()
		recurrenceID = &s
	}
	if p.CategoryId != nil {
		s := p.CategoryId.String()
		categoryID = &s
	}
	if p.PaidById != nil {
		s := p.PaidById.String()
		paidByID = &s
	}
	return &payableDB{
		Id:           p.Id.String(),
		ChurchId:     p.ChurchId.String(),
		RecurrenceId: recurrenceID,
		CategoryId:   categoryID,
		Description:  p.Description,
		Amount:       p.Amount,
		DueDate:      p.DueDate,
		Paid:         p.Paid,
		PaidAt:       p.PaidAt,
		PaidById:     paidByID,
		CreatedById:  p.CreatedById.String(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r *PayableRepository) Create(ctx context.Context, p *payable.AccountPayable) error {
	pdb := toDBPayable(p)
	return r.DB.WithContext(ctx).Table("accounts_payable").Create(pdb).Error
}

func (r *PayableRepository) CreateBatch(ctx context.Context, installments []*payable.AccountPayable) error {
	if len(installments) == 0 {
		return nil
	}
	rows := make([]*payableDB, 0, len(installments))
	for _, p := range installments {
		rows = append(rows, toDBPayable(p))
	}
	return r.DB.WithContext(ctx).Table("accounts_payable").Create(&rows).Error
}

func (r *PayableRepository) Update(ctx context.Context, p *payable.AccountPayable) error {
	pdb := toDBPayable(p)
	return r.DB.WithContext(ctx).Table("accounts_payable").
		Where("id = ?", pdb.Id).
		Select("description", "amount", "due_date", "category_id", "updated_at").
		Updates(pdb).Error
}

func (r *PayableRepository) Delete(ctx context.Context, payableID, churchID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("accounts_payable").
		Where("id = ? AND church_id = ?", payableID.String(), churchID.String()).
		Delete(&payableDB{}).Error
}

func (r *PayableRepository) GetByID(ctx context.Context, payableID, churchID ulid.ULID) (*payable.AccountPayable, error) {
	var pdb payableDB
	err := r.DB.WithContext(ctx).Table("accounts_payable").
		Where("id = ? AND church_id = ?", payableID.String(), churchID.String()).
		First(&pdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayable(&pdb)
}

func (r *PayableRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, filters *payable.Filters, pagination *pkg.PaginationParams) ([]*payable.AccountPayable, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("accounts_payable").Where("church_id = ?", churchID.String())

	if filters != nil {
		if filters.Paid != nil {
			baseQuery = baseQuery.Where("paid = ?", *filters.Paid)
		}
		if filters.StartDate != nil {
			baseQuery = baseQuery.Where("due_date >= ?", *filters.StartDate)
		}
		if filters.EndDate != nil {
			baseQuery = baseQuery.Where("due_date <= ?", *filters.EndDate)
		}
	}

	return pkg.Paginate(baseQuery, pagination, "due_date ASC, created_at ASC", toDomainPayable)
}

func (r *PayableRepository) CountUnpaidByRecurrence(ctx context.Context, recurrenceID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Table("accounts_payable").
		Where("recurrence_id = ? AND paid = ?", recurrenceID.String(), false).
		Count(&count).Error
	return count, err
}

// Settle revalida o saldo do dia, vira a conta para paga e lança a despesa
// numa única transação de banco. O SELECT FOR UPDATE na linha do caixa
// serializa quitações concorrentes do mesmo dia: cada uma recomputa o saldo
// já enxergando as despesas confirmadas antes dela, e a que estourar o caixa
// recebe payable.ErrInsufficientDayBalance sem gravar nada. O UPDATE
// condicional em paid=false garante exatamente uma quitação: concorrentes
// que não afetam linha recebem payable.ErrAlreadySettled e nada do lote é
// gravado.
func (r *PayableRepository) Settle(ctx context.Context, p *payable.AccountPayable, t *transaction.Transaction) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		day := pkg.TruncateToDay(t.Date)

		var register struct {
			OpeningAmount float64 `gorm:"column:opening_amount"`
		}
		err := tx.Table("daily_cash").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("opening_amount").
			Where("church_id = ? AND date = ?", p.ChurchId.String(), day).
			Take(&register).Error
		if err != nil {
			return err
		}

		var totals ledgerTotals
		err = tx.Table("transactions").
			Select("COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) as income, COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) as expense").
			Where("church_id = ? AND date >= ? AND date < ?", p.ChurchId.String(), day, day.AddDate(0, 0, 1)).
			Scan(&totals).Error
		if err != nil {
			return err
		}
		if register.OpeningAmount+totals.Income-totals.Expense < t.Amount {
			return payable.ErrInsufficientDayBalance
		}

		pdb := toDBPayable(p)

		result := tx.Table("accounts_payable").
			Where("id = ? AND church_id = ? AND paid = ?", pdb.Id, pdb.ChurchId, false).
			Select("paid", "paid_at", "paid_by_id", "updated_at").
			Updates(pdb)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return payable.ErrAlreadySettled
		}

		tdb := toDBTransaction(t)
		return tx.Table("transactions").Create(tdb).Error
	})
}
