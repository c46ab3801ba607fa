package contracts

import "Ecclesia/internal/domain/category"

type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Type string `json:"type" binding:"required,oneof=INCOME EXPENSE"`
}

type CategoryUpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

type CategoryResponse struct {
	Message  string             `json:"message"`
	Category *category.Category `json:"category"`
}
