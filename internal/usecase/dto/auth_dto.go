package dto

import "github.com/rangeguard-service/internal/domain"

// RegisterRequest - запрос на регистрацию пользователя
type RegisterRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8,max=72"`
	Name             string `json:"name" validate:"required,min=2,max=100"`
	OrganizationName string `json:"organization_name,omitempty" validate:"omitempty,max=200"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse - ответ с JWT токеном и профилем
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
