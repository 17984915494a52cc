package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/delivery/http/middleware"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/pkg/utils"
	"github.com/rangeguard-service/internal/pkg/validator"
	"github.com/rangeguard-service/internal/usecase"
	"github.com/rangeguard-service/internal/usecase/dto"
)

// AuthHandler обрабатывает регистрацию и вход
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *zap.Logger
}

// NewAuthHandler создает новый экземпляр AuthHandler
func NewAuthHandler(authUC usecase.AuthUsecase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Регистрация туриста или охотничьей ассоциации. Аккаунт с organization_name получает права управления зонами.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные аккаунта"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.GetValidator().Struct(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	resp, err := h.authUC.Register(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Login godoc
// @Summary Log in
// @Description Вход по email и паролю, возвращает JWT токен
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учётные данные"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.GetValidator().Struct(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	resp, err := h.authUC.Login(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// GetProfile godoc
// @Summary Current user profile
// @Description Возвращает профиль аутентифицированного пользователя
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.authUC.GetProfile(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}
