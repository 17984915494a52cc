package domain

import (
	"time"

	"github.com/google/uuid"
)

// Типы нотификаций
const (
	NotificationZoneConflict = "zone_conflict" // новая зона задела существующий маршрут
	NotificationRouteWarning = "route_warning" // новый маршрут задел существующую зону
)

// Notification - персистентное уведомление пользователя о конфликте
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      string           `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Data      NotificationData `json:"data" db:"-"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// NotificationData - структурированный контекст конфликта для UI
type NotificationData struct {
	RouteID        uuid.UUID    `json:"route_id"`
	RouteName      string       `json:"route_name"`
	ZoneID         uuid.UUID    `json:"zone_id"`
	ZoneName       string       `json:"zone_name"`
	ConflictType   ConflictType `json:"conflict_type"`
	OverlapPercent int          `json:"overlap_percentage"`
	ZoneStart      time.Time    `json:"zone_start"`
	ZoneEnd        time.Time    `json:"zone_end"`
}

// Favorite - избранный маршрут пользователя. Избравшие получают
// уведомления о новых зонах, задевших маршрут, наравне с владельцем.
type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	RouteID   uuid.UUID `json:"route_id" db:"route_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Statistics - публичная статистика сервиса
type Statistics struct {
	TotalZones  int `json:"total_zones"`
	ActiveZones int `json:"active_zones"`
	TotalUsers  int `json:"total_users"`
	TotalRoutes int `json:"total_routes"`
}
