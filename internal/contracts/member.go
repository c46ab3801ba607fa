package contracts

import "Ecclesia/internal/domain/member"

type MemberCreateRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=150"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty,max=30"`
}

type MemberUpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=150"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	IsActive *bool   `json:"is_active"`
}

type MemberResponse struct {
	Message string         `json:"message"`
	Member  *member.Member `json:"member"`
}
