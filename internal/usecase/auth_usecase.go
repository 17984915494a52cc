package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rangeguard-service/internal/domain"
	"github.com/rangeguard-service/internal/domain/repository"
	"github.com/rangeguard-service/internal/pkg/auth"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/usecase/dto"
)

// AuthUsecase - регистрация и аутентификация
type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type authUsecase struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthUsecase создаёт usecase аутентификации
func NewAuthUsecase(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.ErrInternalServer
	}

	// Аккаунт с названием организации - охотничья ассоциация,
	// получает права управления зонами
	role := domain.RoleUser
	if req.OrganizationName != "" {
		role = domain.RoleAdmin
	}

	user := &domain.User{
		ID:               uuid.New(),
		Email:            req.Email,
		PasswordHash:     string(hash),
		Name:             req.Name,
		Role:             role,
		OrganizationName: req.OrganizationName,
		CreatedAt:        time.Now().UTC(),
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := auth.CreateToken(user.ID, user.Role, u.jwtSecret, u.tokenTTL)
	if err != nil {
		u.logger.Error("Failed to sign token", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	u.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role))
	return &dto.AuthResponse{Token: token, User: user}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.CreateToken(user.ID, user.Role, u.jwtSecret, u.tokenTTL)
	if err != nil {
		u.logger.Error("Failed to sign token", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}

func (u *authUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}
