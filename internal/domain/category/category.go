package category

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeIncome, TypeExpense:
		return true
	}
	return false
}

// Category rotula movimentações por direção (entrada/saída). O tipo da
// categoria deve coincidir com o tipo da transação ou conta que a referencia.
type Category struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	ChurchId  ulid.ULID `gorm:"type:varchar(26);index:idx_categories_church_id;not null;uniqueIndex:idx_categories_church_name_type" json:"churchId"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_church_name_type" json:"name"`
	Type      Type      `gorm:"type:varchar(10);not null;uniqueIndex:idx_categories_church_name_type" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}
