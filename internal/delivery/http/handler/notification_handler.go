package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/delivery/http/middleware"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/pkg/utils"
	"github.com/rangeguard-service/internal/usecase"
)

// NotificationHandler обрабатывает запросы уведомлений
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
	logger         *zap.Logger
}

// NewNotificationHandler создает новый экземпляр NotificationHandler
func NewNotificationHandler(notificationUC usecase.NotificationUsecase, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUC: notificationUC,
		logger:         logger,
	}
}

// List godoc
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Максимум результатов"
// @Success 200 {array} domain.Notification
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.notificationUC.List(c.Context(), middleware.UserID(c), c.QueryInt("limit"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, notifications, &utils.Meta{Total: len(notifications)})
}

// UnreadCount godoc
// @Summary Unread notifications count
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Router /api/v1/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notificationUC.UnreadCount(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"unread": count}, nil)
}

// MarkRead godoc
// @Summary Mark notification as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.notificationUC.MarkRead(c.Context(), middleware.UserID(c), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"read": true}, nil)
}

// MarkAllRead godoc
// @Summary Mark all notifications as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Router /api/v1/notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notificationUC.MarkAllRead(c.Context(), middleware.UserID(c)); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"read": true}, nil)
}

// Delete godoc
// @Summary Delete a notification
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.notificationUC.Delete(c.Context(), middleware.UserID(c), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
