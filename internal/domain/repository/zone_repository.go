package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rangeguard-service/internal/domain"
)

// ZoneRepository определяет методы для работы с охотничьими зонами
type ZoneRepository interface {
	// Create сохраняет новую зону вместе с буферизованной геометрией
	Create(ctx context.Context, zone *domain.Zone) error

	// GetByID возвращает зону по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Zone, error)

	// Update перезаписывает изменяемые поля зоны (геометрия бампает geometry_version)
	Update(ctx context.Context, zone *domain.Zone) error

	// Delete удаляет зону
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает все зоны
	List(ctx context.Context) ([]*domain.Zone, error)

	// ListActiveAt возвращает зоны, активные в заданный момент (границы окна включаются)
	ListActiveAt(ctx context.Context, at time.Time) ([]*domain.Zone, error)

	// ListNotEndedBy возвращает зоны, чьё окно ещё не закончилось к заданному моменту
	// (текущие и будущие - используется fan-out проверкой новых маршрутов)
	ListNotEndedBy(ctx context.Context, at time.Time) ([]*domain.Zone, error)

	// ListByCreator возвращает зоны, созданные пользователем
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Zone, error)

	// CountAll и CountActiveAt - для публичной статистики
	CountAll(ctx context.Context) (int, error)
	CountActiveAt(ctx context.Context, at time.Time) (int, error)
}
