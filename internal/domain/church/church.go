package church

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Church é a unidade de isolamento do sistema: todo dado financeiro
// pertence a exatamente uma igreja.
type Church struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_churches_slug" json:"slug"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Church) TableName() string {
	return "churches"
}
