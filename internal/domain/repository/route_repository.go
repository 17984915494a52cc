package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/rangeguard-service/internal/domain"
)

// RouteRepository определяет методы для работы с маршрутами
type RouteRepository interface {
	// Create сохраняет новый маршрут (маршруты после создания неизменяемы)
	Create(ctx context.Context, route *domain.Route) error

	// GetByID возвращает маршрут по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error)

	// GetByIDs возвращает маршруты по списку ID одним запросом
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Route, error)

	// ListByOwner возвращает маршруты пользователя
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Route, error)

	// ListPublic возвращает публичные маршруты, опционально с фильтром по имени
	ListPublic(ctx context.Context, search string, limit int) ([]*domain.Route, error)

	// ListAll возвращает все маршруты (fan-out проверка новой зоны)
	ListAll(ctx context.Context) ([]*domain.Route, error)

	// SetVisibility переключает публичность маршрута
	SetVisibility(ctx context.Context, id uuid.UUID, isPublic bool) error

	// Delete удаляет маршрут
	Delete(ctx context.Context, id uuid.UUID) error

	// CountAll - для публичной статистики
	CountAll(ctx context.Context) (int, error)
}
