package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
)

// zoneRepository - PostgreSQL реализация repository.ZoneRepository.
// Геометрия хранится как GeoJSON в колонках JSONB.
type zoneRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewZoneRepository создаёт новый репозиторий зон
func NewZoneRepository(db *DB, logger *zap.Logger) repository.ZoneRepository {
	return &zoneRepository{
		db:     db,
		logger: logger,
	}
}

type zoneRow struct {
	ID               uuid.UUID `db:"id"`
	Name             string    `db:"name"`
	Description      string    `db:"description"`
	Geometry         []byte    `db:"geometry"`
	BufferedGeometry []byte    `db:"buffered_geometry"`
	GeometryVersion  int       `db:"geometry_version"`
	StartTime        time.Time `db:"start_time"`
	EndTime          time.Time `db:"end_time"`
	BufferMeters     int       `db:"buffer_meters"`
	CreatedBy        uuid.UUID `db:"created_by"`
	AssociationName  string    `db:"association_name"`
	CreatedAt        time.Time `db:"created_at"`
}

func (r zoneRow) toDomain() (*domain.Zone, error) {
	zone := &domain.Zone{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		GeometryVersion: r.GeometryVersion,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		BufferMeters:    r.BufferMeters,
		CreatedBy:       r.CreatedBy,
		AssociationName: r.AssociationName,
		CreatedAt:       r.CreatedAt,
	}
	if err := json.Unmarshal(r.Geometry, &zone.Geometry); err != nil {
		return nil, fmt.Errorf("failed to decode zone geometry: %w", err)
	}
	if err := json.Unmarshal(r.BufferedGeometry, &zone.BufferedPolygon); err != nil {
		return nil, fmt.Errorf("failed to decode buffered geometry: %w", err)
	}
	return zone, nil
}

func zoneGeometryJSON(zone *domain.Zone) (geom, buffered []byte, err error) {
	geom, err = json.Marshal(zone.Geometry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode zone geometry: %w", err)
	}
	buffered, err = json.Marshal(zone.BufferedPolygon)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode buffered geometry: %w", err)
	}
	return geom, buffered, nil
}

const zoneColumns = `id, name, description, geometry, buffered_geometry, geometry_version,
		start_time, end_time, buffer_meters, created_by, association_name, created_at`

func (r *zoneRepository) Create(ctx context.Context, zone *domain.Zone) error {
	geom, buffered, err := zoneGeometryJSON(zone)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO zones (id, name, description, geometry, buffered_geometry, geometry_version,
			start_time, end_time, buffer_meters, created_by, association_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.ExecContext(ctx, query,
		zone.ID, zone.Name, zone.Description, geom, buffered, zone.GeometryVersion,
		zone.StartTime, zone.EndTime, zone.BufferMeters, zone.CreatedBy,
		zone.AssociationName, zone.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert zone", zap.Error(err), zap.String("zone_id", zone.ID.String()))
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (r *zoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones WHERE id = $1`

	var row zoneRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrZoneNotFound
		}
		r.logger.Error("Failed to get zone", zap.Error(err), zap.String("zone_id", id.String()))
		return nil, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return row.toDomain()
}

func (r *zoneRepository) Update(ctx context.Context, zone *domain.Zone) error {
	geom, buffered, err := zoneGeometryJSON(zone)
	if err != nil {
		return err
	}

	query := `
		UPDATE zones
		SET name = $2, description = $3, geometry = $4, buffered_geometry = $5,
			geometry_version = $6, start_time = $7, end_time = $8, buffer_meters = $9,
			association_name = $10
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		zone.ID, zone.Name, zone.Description, geom, buffered, zone.GeometryVersion,
		zone.StartTime, zone.EndTime, zone.BufferMeters, zone.AssociationName,
	)
	if err != nil {
		r.logger.Error("Failed to update zone", zap.Error(err), zap.String("zone_id", zone.ID.String()))
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrZoneNotFound
	}
	return nil
}

func (r *zoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM zones WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete zone", zap.Error(err), zap.String("zone_id", id.String()))
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperrors.ErrZoneNotFound
	}
	return nil
}

func (r *zoneRepository) List(ctx context.Context) ([]*domain.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones ORDER BY start_time ASC, id ASC`
	return r.selectZones(ctx, query)
}

func (r *zoneRepository) ListActiveAt(ctx context.Context, at time.Time) ([]*domain.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones
		WHERE start_time <= $1 AND end_time >= $1
		ORDER BY start_time ASC, id ASC`
	return r.selectZones(ctx, query, at)
}

func (r *zoneRepository) ListNotEndedBy(ctx context.Context, at time.Time) ([]*domain.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones
		WHERE end_time >= $1
		ORDER BY start_time ASC, id ASC`
	return r.selectZones(ctx, query, at)
}

func (r *zoneRepository) ListByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones
		WHERE created_by = $1
		ORDER BY created_at DESC`
	return r.selectZones(ctx, query, userID)
}

func (r *zoneRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM zones`); err != nil {
		return 0, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return count, nil
}

func (r *zoneRepository) CountActiveAt(ctx context.Context, at time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM zones WHERE start_time <= $1 AND end_time >= $1`
	if err := r.db.GetContext(ctx, &count, query, at); err != nil {
		return 0, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return count, nil
}

func (r *zoneRepository) selectZones(ctx context.Context, query string, args ...interface{}) ([]*domain.Zone, error) {
	var rows []zoneRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to select zones", zap.Error(err))
		return nil, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}

	zones := make([]*domain.Zone, 0, len(rows))
	for _, row := range rows {
		zone, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}
	return zones, nil
}
