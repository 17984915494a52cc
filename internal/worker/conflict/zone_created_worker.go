package conflict

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	"github.com/rangeguard-service/internal/usecase"
	"github.com/rangeguard-service/internal/worker"
)

// ZoneCreatedWorker проверяет все существующие маршруты против новой зоны
// и рассылает уведомления владельцам и подписчикам избранного.
// Фильтра по окну активности нет: о будущей зоне предупреждаем заранее.
type ZoneCreatedWorker struct {
	*worker.BaseWorker
	streamRepo       repository.StreamRepository
	zoneRepo         repository.ZoneRepository
	routeRepo        repository.RouteRepository
	favoriteRepo     repository.FavoriteRepository
	notificationRepo repository.NotificationRepository
	intersectionUC   usecase.IntersectionUsecase
}

// NewZoneCreatedWorker создаёт воркер обработки событий создания зон
func NewZoneCreatedWorker(
	consumerGroup string,
	streamRepo repository.StreamRepository,
	zoneRepo repository.ZoneRepository,
	routeRepo repository.RouteRepository,
	favoriteRepo repository.FavoriteRepository,
	notificationRepo repository.NotificationRepository,
	intersectionUC usecase.IntersectionUsecase,
	logger *zap.Logger,
) *ZoneCreatedWorker {
	return &ZoneCreatedWorker{
		BaseWorker:       worker.NewBaseWorker("zone-created-worker", consumerGroup, logger),
		streamRepo:       streamRepo,
		zoneRepo:         zoneRepo,
		routeRepo:        routeRepo,
		favoriteRepo:     favoriteRepo,
		notificationRepo: notificationRepo,
		intersectionUC:   intersectionUC,
	}
}

// Start запускает цикл чтения стрима
func (w *ZoneCreatedWorker) Start(ctx context.Context) error {
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamZoneCreated, w.ConsumerGroup()); err != nil {
		return err
	}

	w.Logger().Info("Zone created worker started", zap.String("stream", domain.StreamZoneCreated))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.StopChan():
			return nil
		default:
		}

		messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamZoneCreated, w.ConsumerGroup(), w.Name(), consumeBatchSize)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.Logger().Error("Failed to consume zone events", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var processed []string
		for _, msg := range messages {
			if err := w.handleMessage(ctx, msg); err != nil {
				w.Logger().Error("Failed to process zone event",
					zap.String("message_id", msg.ID), zap.Error(err))
			}
			// Подтверждаем и неудачные сообщения: повтор дал бы тот же результат,
			// а залипшее сообщение блокировало бы стрим
			processed = append(processed, msg.ID)
		}

		if err := w.streamRepo.AckMessages(ctx, domain.StreamZoneCreated, w.ConsumerGroup(), processed); err != nil {
			w.Logger().Error("Failed to ack zone events", zap.Error(err))
		}
	}
}

func (w *ZoneCreatedWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) error {
	var event domain.ZoneCreatedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return err
	}

	zone, err := w.zoneRepo.GetByID(ctx, event.ZoneID)
	if err != nil {
		return err
	}

	routes, err := w.routeRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	notified := 0
	for _, route := range routes {
		conflictType, percent, found, err := w.intersectionUC.ClassifyZone(ctx, route.Points, zone)
		if err != nil {
			w.Logger().Warn("Route classification failed",
				zap.String("route_id", route.ID.String()), zap.Error(err))
			continue
		}
		if !found {
			continue
		}

		for _, userID := range w.recipients(ctx, route) {
			n := buildConflictNotification(userID, domain.NotificationZoneConflict, route, zone, conflictType, percent)
			if err := w.notificationRepo.Create(ctx, n); err != nil {
				w.Logger().Error("Failed to store notification",
					zap.String("user_id", userID.String()), zap.Error(err))
				continue
			}
			notified++
		}
	}

	w.Logger().Info("Zone conflict fan-out completed",
		zap.String("zone_id", zone.ID.String()),
		zap.Int("routes_checked", len(routes)),
		zap.Int("notifications", notified))
	return nil
}

// recipients - владелец маршрута и подписчики избранного, без дублей
func (w *ZoneCreatedWorker) recipients(ctx context.Context, route *domain.Route) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var recipients []uuid.UUID

	if !route.IsAnonymous() {
		seen[route.UserID] = struct{}{}
		recipients = append(recipients, route.UserID)
	}

	favoriters, err := w.favoriteRepo.ListUserIDsByRoute(ctx, route.ID)
	if err != nil {
		w.Logger().Warn("Failed to list favoriters",
			zap.String("route_id", route.ID.String()), zap.Error(err))
		return recipients
	}
	for _, userID := range favoriters {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		recipients = append(recipients, userID)
	}
	return recipients
}
