package contracts

import "Ecclesia/internal/domain/dailycash"

type DailyCashCloseRequest struct {
	Date          string  `json:"date" binding:"required"`
	ClosingAmount float64 `json:"closing_amount" binding:"gte=0"`
	Notes         string  `json:"notes" binding:"omitempty,max=255"`
}

type DailyCashResponse struct {
	Message   string               `json:"message"`
	DailyCash *dailycash.DailyCash `json:"dailyCash"`
}

type DailyCashBalanceResponse struct {
	DailyCash *dailycash.DailyCash `json:"dailyCash"`
	Balance   float64              `json:"balance"`
}
