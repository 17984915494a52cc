package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
)

// NotificationUsecase - лента уведомлений пользователя
type NotificationUsecase interface {
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationUsecase struct {
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationUsecase создаёт usecase уведомлений
func NewNotificationUsecase(notificationRepo repository.NotificationRepository, logger *zap.Logger) NotificationUsecase {
	return &notificationUsecase{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

func (u *notificationUsecase) List(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error) {
	return u.notificationRepo.ListByUser(ctx, userID, limit)
}

func (u *notificationUsecase) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return u.notificationRepo.CountUnread(ctx, userID)
}

func (u *notificationUsecase) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return u.notificationRepo.MarkRead(ctx, notificationID, userID)
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return u.notificationRepo.MarkAllRead(ctx, userID)
}

func (u *notificationUsecase) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	return u.notificationRepo.Delete(ctx, notificationID, userID)
}
