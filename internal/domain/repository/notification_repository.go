package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/rangeguard-service/internal/domain"
)

// NotificationRepository определяет методы для работы с уведомлениями
type NotificationRepository interface {
	// Create сохраняет уведомление
	Create(ctx context.Context, n *domain.Notification) error

	// ListByUser возвращает уведомления пользователя, новые первыми
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)

	// CountUnread возвращает число непрочитанных уведомлений
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)

	// MarkRead помечает уведомление прочитанным (только своё)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error

	// MarkAllRead помечает все уведомления пользователя прочитанными
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// Delete удаляет уведомление пользователя
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// FavoriteRepository определяет методы для работы с избранными маршрутами
type FavoriteRepository interface {
	// Create добавляет маршрут в избранное
	Create(ctx context.Context, fav *domain.Favorite) error

	// Delete убирает маршрут из избранного
	Delete(ctx context.Context, userID, routeID uuid.UUID) error

	// ListByUser возвращает избранное пользователя
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error)

	// ListUserIDsByRoute возвращает пользователей, добавивших маршрут в избранное
	// (fan-out уведомлений о новой зоне)
	ListUserIDsByRoute(ctx context.Context, routeID uuid.UUID) ([]uuid.UUID, error)

	// Exists проверяет, есть ли маршрут в избранном пользователя
	Exists(ctx context.Context, userID, routeID uuid.UUID) (bool, error)
}
