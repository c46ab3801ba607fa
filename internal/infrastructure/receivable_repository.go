package infrastructure

import (
	"context"
	"time"

	"Ecclesia/internal/domain/receivable"
	"Ecclesia/internal/domain/transaction"
	"Ecclesia/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ReceivableRepository struct {
	DB *gorm.DB
}

var _ receivable.Repository = (*ReceivableRepository)(nil)

type receivableDB struct {
	Id           string     `gorm:"type:varchar(26);primaryKey;column:id"`
	ChurchId     string     `gorm:"type:varchar(26);not null;column:church_id"`
	CategoryId   *string    `gorm:"type:varchar(26);column:category_id"`
	MemberId     *string    `gorm:"type:varchar(26);column:member_id"`
	Description  string     `gorm:"size:255;not null;column:description"`
	Amount       float64    `gorm:"not null;column:amount"`
	DueDate      time.Time  `gorm:"not null;column:due_date"`
	Received     bool       `gorm:"not null;column:received"`
	ReceivedAt   *time.Time `gorm:"column:received_at"`
	ReceivedById *string    `gorm:"type:varchar(26);column:received_by_id"`
	CreatedById  string     `gorm:"type:varchar(26);not null;column:created_by_id"`
	CreatedAt    time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt    time.Time  `gorm:"not null;column:updated_at"`
}

func toDomainReceivable(rdb *receivableDB) (*receivable.AccountReceivable, error) {
	id, err := pkg.ParseULID(rdb.Id)
	if err != nil {
		return nil, err
	}
	churchID, err := pkg.ParseULID(rdb.ChurchId)
	if err != nil {
		return nil, err
	}
	createdByID, err := pkg.ParseULID(rdb.CreatedById)
	if err != nil {
		return nil, err
	}
	categoryID, err := pkg.ParseULIDPtr(rdb.CategoryId)
	if err != nil {
		return nil, err
	}
	memberID, err := pkg.ParseULIDPtr(rdb.MemberId)
	if err != nil {
		return nil, err
	}
	receivedByID, err := pkg.ParseULIDPtr(rdb.ReceivedById)
	if err != nil {
		return nil, err
	}

	return &receivable.AccountReceivable{
		Id:           id,
		ChurchId:     churchID,
		CategoryId:   categoryID,
		MemberId:     memberID,
		Description:  rdb.Description,
		Amount:       rdb.Amount,
		DueDate:      rdb.DueDate,
		Received:     rdb.Received,
		ReceivedAt:   rdb.ReceivedAt,
		ReceivedById: receivedByID,
		CreatedById:  createdByID,
		CreatedAt:    rdb.CreatedAt,
		UpdatedAt:    rdb.UpdatedAt,
	}, nil
}

func toDBReceivable(r *receivable.AccountReceivable) *receivableDB {
	var categoryID, memberID, receivedByID *string
	if r.CategoryId != nil {
		s := r.CategoryId.String()
		categoryID = &s
	}
	if r.MemberId != nil {
		s := r.MemberId.String()
		memberID = &s
	}
	if r.ReceivedById != nil {
		s := r.ReceivedById.String()
		receivedByID = &s
	}
	return &receivableDB{
		Id:           r.Id.String(),
		ChurchId:     r.ChurchId.String(),
		CategoryId:   categoryID,
		MemberId:     memberID,
		Description:  r.Description,
		Amount:       r.Amount,
		DueDate:      r.DueDate,
		Received:     r.Received,
		ReceivedAt:   r.ReceivedAt,
		ReceivedById: receivedByID,
		CreatedById:  r.CreatedById.String(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *ReceivableRepository) Create(ctx context.Context, rec *receivable.AccountReceivable) error {
	rdb := toDBReceivable(rec)
	return r.DB.WithContext(ctx).Table("accounts_receivable").Create(rdb).Error
}

func (r *ReceivableRepository) Update(ctx context.Context, rec *receivable.AccountReceivable) error {
	rdb := toDBReceivable(rec)
	return r.DB.WithContext(ctx).Table("accounts_receivable").
		Where("id = ?", rdb.Id).
		Select("description", "amount", "due_date", "category_id", "updated_at").
		Updates(rdb).Error
}

func (r *ReceivableRepository) Delete(ctx context.Context, receivableID, churchID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("accounts_receivable").
		Where("id = ? AND church_id = ?", receivableID.String(), churchID.String()).
		Delete(&receivableDB{}).Error
}

func (r *ReceivableRepository) GetByID(ctx context.Context, receivableID ulid.ULID) (*receivable.AccountReceivable, error) {
	var rdb receivableDB
	err := r.DB.WithContext(ctx).Table("accounts_receivable").
		Where("id = ?", receivableID.String()).
		First(&rdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainReceivable(&rdb)
}

func (r *ReceivableRepository) GetByChurch(ctx context.Context, churchID ulid.ULID, filters *receivable.Filters, pagination *pkg.PaginationParams) ([]*receivable.AccountReceivable, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("accounts_receivable").Where("church_id = ?", churchID.String())

	if filters != nil {
		if filters.Received != nil {
			baseQuery = baseQuery.Where("received = ?", *filters.Received)
		}
		if filters.MemberId != nil {
			baseQuery = baseQuery.Where("member_id = ?", filters.MemberId.String())
		}
		if filters.StartDate != nil {
			baseQuery = baseQuery.Where("due_date >= ?", *filters.StartDate)
		}
		if filters.EndDate != nil {
			baseQuery = baseQuery.Where("due_date <= ?", *filters.EndDate)
		}
	}

	return pkg.Paginate(baseQuery, pagination, "due_date ASC, created_at ASC", toDomainReceivable)
}

// Settle espelha a quitação de contas a pagar: UPDATE condicional em
// received=false mais o lançamento de entrada, tudo numa transação de banco.
func (r *ReceivableRepository) Settle(ctx context.Context, rec *receivable.AccountReceivable, t *transaction.Transaction) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rdb := toDBReceivable(rec)

		result := tx.Table("accounts_receivable").
			Where("id = ? AND church_id = ? AND received = ?", rdb.Id, rdb.ChurchId, false).
			Select("received", "received_at", "received_by_id", "updated_at").
			Updates(rdb)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return receivable.ErrAlreadySettled
		}

		tdb := toDBTransaction(t)
		return tx.Table("transactions").Create(tdb).Error
	})
}
