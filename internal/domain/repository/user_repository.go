package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/rangeguard-service/internal/domain"
)

// UserRepository определяет методы для работы с аккаунтами
type UserRepository interface {
	// Create сохраняет нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail возвращает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// CountAll - для публичной статистики
	CountAll(ctx context.Context) (int, error)
}
