package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
)

// notificationRepository - PostgreSQL реализация repository.NotificationRepository
type notificationRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewNotificationRepository создаёт новый репозиторий уведомлений
func NewNotificationRepository(db *DB, logger *zap.Logger) repository.NotificationRepository {
	return &notificationRepository{
		db:     db,
		logger: logger,
	}
}

type notificationRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Type      string    `db:"type"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Data      []byte    `db:"data"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
}

func (r notificationRow) toDomain() (*domain.Notification, error) {
	n := &domain.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		Type:      r.Type,
		Title:     r.Title,
		Message:   r.Message,
		Read:      r.Read,
		CreatedAt: r.CreatedAt,
	}
	if len(r.Data) > 0 {
		if err := json.Unmarshal(r.Data, &n.Data); err != nil {
			return nil, fmt.Errorf("failed to decode notification data: %w", err)
		}
	}
	return n, nil
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("failed to encode notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (id, user_id, type, title, message, data, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Type, n.Title, n.Message, data, n.Read, n.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert notification", zap.Error(err), zap.String("user_id", n.UserID.String()))
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, user_id, type, title, message, data, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		r.logger.Error("Failed to select notifications", zap.Error(err))
		return nil, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}

	notifications := make([]*domain.Notification, 0, len(rows))
	for _, row := range rows {
		n, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM notifications WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
