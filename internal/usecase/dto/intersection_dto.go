package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/rangeguard-service/internal/pkg/geo"
)

// CheckIntersectionRequest - запрос на проверку маршрута против активных зон.
// Маршрут задаётся либо route_id сохранённого маршрута, либо inline-геометрией.
// At задаёт момент проверки; пустое значение означает "сейчас".
type CheckIntersectionRequest struct {
	RouteID  *uuid.UUID   `json:"route_id,omitempty"`
	Geometry geo.Polyline `json:"geometry" validate:"required_without=RouteID"`
	At       *time.Time   `json:"at,omitempty"`
}
