package contracts

import (
	"time"

	"Ecclesia/internal/domain/transaction"
)

type TransactionCreateRequest struct {
	Type        string     `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	CategoryId  string     `json:"category_id" binding:"omitempty,len=26"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Description string     `json:"description" binding:"omitempty,max=255"`
	Date        *time.Time `json:"date"`
}

type TransactionResponse struct {
	Message     string                   `json:"message"`
	Transaction *transaction.Transaction `json:"transaction"`
}
