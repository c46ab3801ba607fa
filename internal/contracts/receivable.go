package contracts

import (
	"time"

	"Ecclesia/internal/domain/receivable"
)

type ReceivableCreateRequest struct {
	CategoryId  string    `json:"category_id" binding:"omitempty,len=26"`
	MemberId    string    `json:"member_id" binding:"omitempty,len=26"`
	Description string    `json:"description" binding:"required,min=2,max=255"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}

type ReceivableUpdateRequest struct {
	Description *string    `json:"description" binding:"omitempty,min=2,max=255"`
	Amount      *float64   `json:"amount" binding:"omitempty,gt=0"`
	DueDate     *time.Time `json:"due_date"`
	CategoryId  *string    `json:"category_id" binding:"omitempty,len=26"`
}

type ReceivableResponse struct {
	Message    string                        `json:"message"`
	Receivable *receivable.AccountReceivable `json:"receivable"`
}
