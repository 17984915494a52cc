package conflict

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	"github.com/rangeguard-service/internal/usecase"
	"github.com/rangeguard-service/internal/worker"
)

// RouteCreatedWorker проверяет новый маршрут против текущих и будущих зон
// и предупреждает владельца о конфликтах
type RouteCreatedWorker struct {
	*worker.BaseWorker
	streamRepo       repository.StreamRepository
	zoneRepo         repository.ZoneRepository
	routeRepo        repository.RouteRepository
	notificationRepo repository.NotificationRepository
	intersectionUC   usecase.IntersectionUsecase
}

// NewRouteCreatedWorker создаёт воркер обработки событий создания маршрутов
func NewRouteCreatedWorker(
	consumerGroup string,
	streamRepo repository.StreamRepository,
	zoneRepo repository.ZoneRepository,
	routeRepo repository.RouteRepository,
	notificationRepo repository.NotificationRepository,
	intersectionUC usecase.IntersectionUsecase,
	logger *zap.Logger,
) *RouteCreatedWorker {
	return &RouteCreatedWorker{
		BaseWorker:       worker.NewBaseWorker("route-created-worker", consumerGroup, logger),
		streamRepo:       streamRepo,
		zoneRepo:         zoneRepo,
		routeRepo:        routeRepo,
		notificationRepo: notificationRepo,
		intersectionUC:   intersectionUC,
	}
}

// Start запускает цикл чтения стрима
func (w *RouteCreatedWorker) Start(ctx context.Context) error {
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamRouteCreated, w.ConsumerGroup()); err != nil {
		return err
	}

	w.Logger().Info("Route created worker started", zap.String("stream", domain.StreamRouteCreated))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.StopChan():
			return nil
		default:
		}

		messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamRouteCreated, w.ConsumerGroup(), w.Name(), consumeBatchSize)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.Logger().Error("Failed to consume route events", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var processed []string
		for _, msg := range messages {
			if err := w.handleMessage(ctx, msg); err != nil {
				w.Logger().Error("Failed to process route event",
					zap.String("message_id", msg.ID), zap.Error(err))
			}
			processed = append(processed, msg.ID)
		}

		if err := w.streamRepo.AckMessages(ctx, domain.StreamRouteCreated, w.ConsumerGroup(), processed); err != nil {
			w.Logger().Error("Failed to ack route events", zap.Error(err))
		}
	}
}

func (w *RouteCreatedWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) error {
	var event domain.RouteCreatedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return err
	}

	route, err := w.routeRepo.GetByID(ctx, event.RouteID)
	if err != nil {
		return err
	}
	// Анонимный маршрут предупреждать некого
	if route.IsAnonymous() {
		return nil
	}

	// Берём зоны, чьё окно ещё не закончилось: о будущих сезонах тоже предупреждаем
	zones, err := w.zoneRepo.ListNotEndedBy(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	notified := 0
	for _, zone := range zones {
		conflictType, percent, found, err := w.intersectionUC.ClassifyZone(ctx, route.Points, zone)
		if err != nil {
			w.Logger().Warn("Zone classification failed",
				zap.String("zone_id", zone.ID.String()), zap.Error(err))
			continue
		}
		if !found {
			continue
		}

		n := buildConflictNotification(route.UserID, domain.NotificationRouteWarning, route, zone, conflictType, percent)
		if err := w.notificationRepo.Create(ctx, n); err != nil {
			w.Logger().Error("Failed to store notification",
				zap.String("route_id", route.ID.String()), zap.Error(err))
			continue
		}
		notified++
	}

	w.Logger().Info("Route conflict check completed",
		zap.String("route_id", route.ID.String()),
		zap.Int("zones_checked", len(zones)),
		zap.Int("notifications", notified))
	return nil
}
