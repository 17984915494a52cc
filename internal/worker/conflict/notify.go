package conflict

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rangeguard-service/internal/domain"
)

const consumeBatchSize = 10

// notificationTitle - заголовок уведомления по классу конфликта
func notificationTitle(t domain.ConflictType) string {
	switch t {
	case domain.ConflictContained:
		return "CRITICAL: Route inside hunting zone"
	case domain.ConflictIntersects:
		return "WARNING: Route crosses hunting zone"
	default:
		return "CAUTION: Route near hunting zone"
	}
}

// buildConflictNotification собирает уведомление о конфликте маршрута с зоной
func buildConflictNotification(
	userID uuid.UUID,
	notificationType string,
	route *domain.Route,
	zone *domain.Zone,
	conflictType domain.ConflictType,
	overlapPercent int,
) *domain.Notification {
	message := fmt.Sprintf(
		"Zone %q by %s conflicts with route %q (%s, %d%% overlap). Active %s - %s.",
		zone.Name,
		zone.AssociationName,
		route.Name,
		conflictType,
		overlapPercent,
		zone.StartTime.Format("2006-01-02"),
		zone.EndTime.Format("2006-01-02"),
	)

	return &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    notificationType,
		Title:   notificationTitle(conflictType),
		Message: message,
		Data: domain.NotificationData{
			RouteID:        route.ID,
			RouteName:      route.Name,
			ZoneID:         zone.ID,
			ZoneName:       zone.Name,
			ConflictType:   conflictType,
			OverlapPercent: overlapPercent,
			ZoneStart:      zone.StartTime,
			ZoneEnd:        zone.EndTime,
		},
		CreatedAt: time.Now().UTC(),
	}
}
