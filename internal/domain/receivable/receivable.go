package receivable

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// AccountReceivable é um valor a receber, como uma promessa de contribuição
// de um membro ou um repasse esperado. O recebimento é uma transição única de
// received=false para received=true.
type AccountReceivable struct {
	Id           ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	ChurchId     ulid.ULID  `gorm:"type:varchar(26);index:idx_receivables_church_id;not null" json:"churchId"`
	CategoryId   *ulid.ULID `gorm:"type:varchar(26);index:idx_receivables_category_id" json:"categoryId"`
	MemberId     *ulid.ULID `gorm:"type:varchar(26);index:idx_receivables_member_id" json:"memberId"`
	Description  string     `gorm:"type:varchar(255);not null" json:"description"`
	Amount       float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	DueDate      time.Time  `gorm:"type:date;not null;index:idx_receivables_due_date" json:"dueDate"`
	Received     bool       `gorm:"not null;default:false;index:idx_receivables_received" json:"received"`
	ReceivedAt   *time.Time `json:"receivedAt"`
	ReceivedById *ulid.ULID `gorm:"type:varchar(26)" json:"receivedById"`
	CreatedById  ulid.ULID  `gorm:"type:varchar(26);not null" json:"createdById"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (AccountReceivable) TableName() string {
	return "accounts_receivable"
}
