package payable

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// AccountPayable é uma obrigação a pagar. Pode nascer avulsa ou como parcela
// gerada por uma recorrência (RecurrenceId preenchido). A quitação é uma
// transição única de paid=false para paid=true.
type AccountPayable struct {
	Id           ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	ChurchId     ulid.ULID  `gorm:"type:varchar(26);index:idx_payables_church_id;not null" json:"churchId"`
	RecurrenceId *ulid.ULID `gorm:"type:varchar(26);index:idx_payables_recurrence_id" json:"recurrenceId"`
	CategoryId   *ulid.ULID `gorm:"type:varchar(26);index:idx_payables_category_id" json:"categoryId"`
	Description  string     `gorm:"type:varchar(255);not null" json:"description"`
	Amount       float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	DueDate      time.Time  `gorm:"type:date;not null;index:idx_payables_due_date" json:"dueDate"`
	Paid         bool       `gorm:"not null;default:false;index:idx_payables_paid" json:"paid"`
	PaidAt       *time.Time `json:"paidAt"`
	PaidById     *ulid.ULID `gorm:"type:varchar(26)" json:"paidById"`
	CreatedById  ulid.ULID  `gorm:"type:varchar(26);not null" json:"createdById"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (AccountPayable) TableName() string {
	return "accounts_payable"
}

func (a *AccountPayable) IsOverdue(now time.Time) bool {
	return !a.Paid && a.DueDate.Before(now)
}
