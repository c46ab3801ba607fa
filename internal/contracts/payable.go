package contracts

import (
	"time"

	"Ecclesia/internal/domain/payable"
)

type PayableCreateRequest struct {
	CategoryId  string    `json:"category_id" binding:"omitempty,len=26"`
	Description string    `json:"description" binding:"required,min=2,max=255"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}

type PayableUpdateRequest struct {
	Description *string    `json:"description" binding:"omitempty,min=2,max=255"`
	Amount      *float64   `json:"amount" binding:"omitempty,gt=0"`
	DueDate     *time.Time `json:"due_date"`
	CategoryId  *string    `json:"category_id" binding:"omitempty,len=26"`
}

type PayableResponse struct {
	Message string                  `json:"message"`
	Payable *payable.AccountPayable `json:"payable"`
}
