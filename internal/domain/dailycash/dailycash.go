package dailycash

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// DailyCash é o registro do caixa do dia: um por igreja por data, criado
// de forma preguiçosa na primeira operação financeira do dia. O valor de
// abertura congela o saldo acumulado de todo o histórico de lançamentos no
// momento da criação; o fechamento é gravado uma única vez.
type DailyCash struct {
	Id            ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	ChurchId      ulid.ULID  `gorm:"type:varchar(26);not null;uniqueIndex:idx_daily_cash_church_date" json:"churchId"`
	Date          time.Time  `gorm:"type:date;not null;uniqueIndex:idx_daily_cash_church_date" json:"date"`
	OpeningAmount float64    `gorm:"type:decimal(15,2);not null" json:"openingAmount"`
	ClosingAmount *float64   `gorm:"type:decimal(15,2)" json:"closingAmount"`
	Notes         string     `gorm:"type:varchar(255)" json:"notes"`
	CreatedById   ulid.ULID  `gorm:"type:varchar(26);not null" json:"createdById"`
	ClosedById    *ulid.ULID `gorm:"type:varchar(26)" json:"closedById"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (DailyCash) TableName() string {
	return "daily_cash"
}

func (d *DailyCash) IsClosed() bool {
	return d.ClosingAmount != nil
}
