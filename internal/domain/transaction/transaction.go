package transaction

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Types string

const (
	Income  Types = "INCOME"
	Expense Types = "EXPENSE"
)

func (t Types) IsValid() bool {
	switch t {
	case Income, Expense:
		return true
	}
	return false
}

// Transaction é o lançamento do livro-caixa. Registros são imutáveis: uma vez
// criados não há atualização nem exclusão, apenas novos lançamentos.
type Transaction struct {
	Id           ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	ChurchId     ulid.ULID  `gorm:"type:varchar(26);index:idx_transactions_church_id;index:idx_transactions_church_date,priority:1;not null" json:"churchId"`
	Type         Types      `gorm:"type:varchar(10);not null;index:idx_transactions_type" json:"type"`
	CategoryId   *ulid.ULID `gorm:"type:varchar(26);index:idx_transactions_category_id" json:"categoryId"`
	CategoryName string     `gorm:"-" json:"categoryName,omitempty"`
	Amount       float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description  string     `gorm:"type:varchar(255)" json:"description"`
	Date         time.Time  `gorm:"type:date;not null;index:idx_transactions_church_date,priority:2" json:"date"`
	CreatedById  ulid.ULID  `gorm:"type:varchar(26);not null" json:"createdById"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}
