package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
)

// routeRepository - PostgreSQL реализация repository.RouteRepository
type routeRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewRouteRepository создаёт новый репозиторий маршрутов
func NewRouteRepository(db *DB, logger *zap.Logger) repository.RouteRepository {
	return &routeRepository{
		db:     db,
		logger: logger,
	}
}

type routeRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Geometry  []byte    `db:"geometry"`
	UserID    uuid.UUID `db:"user_id"`
	OwnerName string    `db:"owner_name"`
	IsPublic  bool      `db:"is_public"`
	CreatedAt time.Time `db:"created_at"`
}

func (r routeRow) toDomain() (*domain.Route, error) {
	route := &domain.Route{
		ID:        r.ID,
		Name:      r.Name,
		UserID:    r.UserID,
		OwnerName: r.OwnerName,
		IsPublic:  r.IsPublic,
		CreatedAt: r.CreatedAt,
	}
	if err := json.Unmarshal(r.Geometry, &route.Points); err != nil {
		return nil, fmt.Errorf("failed to decode route geometry: %w", err)
	}
	return route, nil
}

const routeColumns = `id, name, geometry, user_id, owner_name, is_public, created_at`

func (r *routeRepository) Create(ctx context.Context, route *domain.Route) error {
	geom, err := json.Marshal(route.Points)
	if err != nil {
		return fmt.Errorf("failed to encode route geometry: %w", err)
	}

	query := `
		INSERT INTO routes (id, name, geometry, user_id, owner_name, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		route.ID, route.Name, geom, route.UserID, route.OwnerName, route.IsPublic, route.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert route", zap.Error(err), zap.String("route_id", route.ID.String()))
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (r *routeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE id = $1`

	var row routeRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrRouteNotFound
		}
		r.logger.Error("Failed to get route", zap.Error(err), zap.String("route_id", id.String()))
		return nil, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return row.toDomain()
}

func (r *routeRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Route, error) {
	if len(ids) == 0 {
		return []*domain.Route{}, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	query := `SELECT ` + routeColumns + ` FROM routes WHERE id = ANY($1::uuid[]) ORDER BY created_at DESC`
	return r.selectRoutes(ctx, query, pq.Array(raw))
}

func (r *routeRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE user_id = $1 ORDER BY created_at DESC`
	return r.selectRoutes(ctx, query, userID)
}

func (r *routeRepository) ListPublic(ctx context.Context, search string, limit int) ([]*domain.Route, error) {
	if limit <= 0 {
		limit = 100
	}

	if search != "" {
		query := `SELECT ` + routeColumns + ` FROM routes
			WHERE is_public = TRUE AND name ILIKE $1
			ORDER BY created_at DESC
			LIMIT $2`
		return r.selectRoutes(ctx, query, "%"+search+"%", limit)
	}

	query := `SELECT ` + routeColumns + ` FROM routes
		WHERE is_public = TRUE
		ORDER BY created_at DESC
		LIMIT $1`
	return r.selectRoutes(ctx, query, limit)
}

func (r *routeRepository) ListAll(ctx context.Context) ([]*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes ORDER BY created_at DESC`
	return r.selectRoutes(ctx, query)
}

func (r *routeRepository) SetVisibility(ctx context.Context, id uuid.UUID, isPublic bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE routes SET is_public = $2 WHERE id = $1`, id, isPublic)
	if err != nil {
		r.logger.Error("Failed to update route visibility", zap.Error(err), zap.String("route_id", id.String()))
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrRouteNotFound
	}
	return nil
}

func (r *routeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete route", zap.Error(err), zap.String("route_id", id.String()))
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrRouteNotFound
	}
	return nil
}

func (r *routeRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM routes`); err != nil {
		return 0, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return count, nil
}

func (r *routeRepository) selectRoutes(ctx context.Context, query string, args ...interface{}) ([]*domain.Route, error) {
	var rows []routeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to select routes", zap.Error(err))
		return nil, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}

	routes := make([]*domain.Route, 0, len(rows))
	for _, row := range rows {
		route, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}
