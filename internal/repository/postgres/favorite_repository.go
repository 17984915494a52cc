package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
)

// favoriteRepository - PostgreSQL реализация repository.FavoriteRepository
type favoriteRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewFavoriteRepository создаёт новый репозиторий избранного
func NewFavoriteRepository(db *DB, logger *zap.Logger) repository.FavoriteRepository {
	return &favoriteRepository{
		db:     db,
		logger: logger,
	}
}

func (r *favoriteRepository) Create(ctx context.Context, fav *domain.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, route_id, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, fav.ID, fav.UserID, fav.RouteID, fav.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
			return apperrors.ErrFavoriteExists
		}
		r.logger.Error("Failed to insert favorite", zap.Error(err))
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, routeID uuid.UUID) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND route_id = $2`
	res, err := r.db.ExecContext(ctx, query, userID, routeID)
	if err != nil {
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error) {
	query := `SELECT id, user_id, route_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var favorites []*domain.Favorite
	if err := r.db.SelectContext(ctx, &favorites, query, userID); err != nil {
		r.logger.Error("Failed to select favorites", zap.Error(err))
		return nil, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	if favorites == nil {
		favorites = []*domain.Favorite{}
	}
	return favorites, nil
}

func (r *favoriteRepository) ListUserIDsByRoute(ctx context.Context, routeID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT user_id FROM favorites WHERE route_id = $1`

	var userIDs []uuid.UUID
	if err := r.db.SelectContext(ctx, &userIDs, query, routeID); err != nil {
		r.logger.Error("Failed to select favoriters", zap.Error(err))
		return nil, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return userIDs, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, routeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND route_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, userID, routeID); err != nil {
		return false, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return exists, nil
}
