package recurrence

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusExpired   Status = "EXPIRED"
)

type Frequency string

const (
	FrequencyMonthly Frequency = "MONTHLY"
)

func (f Frequency) IsValid() bool {
	return f == FrequencyMonthly
}

// Recurrence é o molde de uma despesa que se repete. As parcelas (contas a
// pagar) são geradas de uma só vez na criação; a recorrência em si guarda
// apenas o molde e o status derivado do estado das parcelas.
type Recurrence struct {
	Id          ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	ChurchId    ulid.ULID  `gorm:"type:varchar(26);index:idx_recurrences_church_id;not null" json:"churchId"`
	CategoryId  *ulid.ULID `gorm:"type:varchar(26)" json:"categoryId"`
	Description string     `gorm:"type:varchar(255);not null" json:"description"`
	Amount      float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Frequency   Frequency  `gorm:"type:varchar(10);not null" json:"frequency"`
	DueDay      int        `gorm:"not null" json:"dueDay"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"startDate"`
	EndDate     *time.Time `gorm:"type:date" json:"endDate"`
	Status      Status     `gorm:"type:varchar(10);not null;index:idx_recurrences_status" json:"status"`
	CreatedById ulid.ULID  `gorm:"type:varchar(26);not null" json:"createdById"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Recurrence) TableName() string {
	return "recurrences"
}

// DeriveStatus calcula o status de uma recorrência a partir do estado
// observável: quantidade de parcelas em aberto e data de término frente ao
// instante de referência. Função pura; quem chama decide quando persistir.
//
// Sem parcelas em aberto a recorrência está concluída, mesmo vencida a data
// de término. Com parcelas em aberto e término no passado, está expirada.
func DeriveStatus(unpaidCount int64, endDate *time.Time, now time.Time) Status {
	if unpaidCount == 0 {
		return StatusCompleted
	}
	if endDate != nil && endDate.Before(now) {
		return StatusExpired
	}
	return StatusActive
}
