package contracts

import "Ecclesia/internal/domain/user"

type RegisterChurchRequest struct {
	ChurchName string `json:"church_name" binding:"required,min=3,max=150"`
	Slug       string `json:"slug" binding:"required,min=3,max=100"`
	Name       string `json:"name" binding:"required,min=3,max=150"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN TREASURER SECRETARY"`
}

type UserResponse struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
}
