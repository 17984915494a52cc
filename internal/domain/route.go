package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/rangeguard-service/internal/pkg/geo"
)

// AnonymousOwner - маркер владельца для маршрутов, загруженных без авторизации
var AnonymousOwner = uuid.Nil

// Route - загруженный трек туриста. Неизменяем после создания:
// повторная загрузка создаёт новый маршрут.
type Route struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Points    geo.Polyline `json:"geometry" db:"-"`
	UserID    uuid.UUID    `json:"user_id" db:"user_id"`
	OwnerName string       `json:"owner_name" db:"owner_name"`
	IsPublic  bool         `json:"is_public" db:"is_public"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// IsAnonymous - true для маршрутов без владельца
func (r *Route) IsAnonymous() bool {
	return r.UserID == AnonymousOwner
}

// RouteSummary - сокращённое представление для публичного списка
type RouteSummary struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	UserID     uuid.UUID    `json:"user_id"`
	OwnerName  string       `json:"owner_name"`
	IsPublic   bool         `json:"is_public"`
	PointCount int          `json:"point_count"`
	Geometry   geo.Polyline `json:"geometry"`
	CreatedAt  time.Time    `json:"created_at"`
}
