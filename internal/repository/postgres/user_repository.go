package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
)

// userRepository - PostgreSQL реализация repository.UserRepository
type userRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserRepository создаёт новый репозиторий пользователей
func NewUserRepository(db *DB, logger *zap.Logger) repository.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, organization_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role,
		user.OrganizationName, user.CreatedAt,
	)
	if err != nil {
		// 23505 - нарушение уникальности email
		if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
			return apperrors.ErrEmailTaken
		}
		r.logger.Error("Failed to insert user", zap.Error(err))
		return apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, email, password_hash, name, role, organization_name, created_at
		FROM users WHERE id = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUnauthorized
		}
		r.logger.Error("Failed to get user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, name, role, organization_name, created_at
		FROM users WHERE email = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrInvalidCredentials
		}
		r.logger.Error("Failed to get user by email", zap.Error(err))
		return nil, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return &user, nil
}

func (r *userRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, apperrors.ErrDatabaseError.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	return count, nil
}
