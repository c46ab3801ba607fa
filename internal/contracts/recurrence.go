package contracts

import (
	"time"

	"Ecclesia/internal/domain/recurrence"
)

type RecurrenceCreateRequest struct {
	CategoryId  string     `json:"category_id" binding:"omitempty,len=26"`
	Description string     `json:"description" binding:"required,min=2,max=255"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Frequency   string     `json:"frequency" binding:"omitempty,oneof=MONTHLY"`
	DueDay      int        `json:"due_day" binding:"required,min=1,max=31"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
}

type RecurrenceUpdateRequest struct {
	Description *string    `json:"description" binding:"omitempty,min=2,max=255"`
	EndDate     *time.Time `json:"end_date"`
}

type RecurrenceResponse struct {
	Message    string                 `json:"message"`
	Recurrence *recurrence.Recurrence `json:"recurrence"`
}
