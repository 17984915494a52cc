package domain

import "github.com/google/uuid"

// Имена Redis-стримов для fan-out проверок конфликтов
const (
	StreamZoneCreated  = "stream:zone:created"
	StreamRouteCreated = "stream:route:created"
)

// ZoneCreatedEvent - публикуется после создания зоны; воркер прогоняет
// классификатор по всем существующим маршрутам
type ZoneCreatedEvent struct {
	ZoneID uuid.UUID `json:"zone_id"`
}

// RouteCreatedEvent - публикуется после загрузки маршрута; воркер прогоняет
// классификатор по всем зонам, чьё окно ещё не закончилось
type RouteCreatedEvent struct {
	RouteID uuid.UUID `json:"route_id"`
	UserID  uuid.UUID `json:"user_id"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
