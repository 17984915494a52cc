package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/delivery/http/middleware"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/pkg/utils"
	"github.com/rangeguard-service/internal/pkg/validator"
	"github.com/rangeguard-service/internal/usecase"
	"github.com/rangeguard-service/internal/usecase/dto"
)

// FavoriteHandler обрабатывает избранные маршруты
type FavoriteHandler struct {
	favoriteUC usecase.FavoriteUsecase
	logger     *zap.Logger
}

// NewFavoriteHandler создает новый экземпляр FavoriteHandler
func NewFavoriteHandler(favoriteUC usecase.FavoriteUsecase, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUC: favoriteUC,
		logger:     logger,
	}
}

// Add godoc
// @Summary Add route to favorites
// @Description Подписка на маршрут: подписчики получают уведомления о новых конфликтующих зонах
// @Tags Favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddFavoriteRequest true "Маршрут"
// @Success 200 {object} domain.Favorite
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/favorites [post]
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	var req dto.AddFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.GetValidator().Struct(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	fav, err := h.favoriteUC.Add(c.Context(), middleware.UserID(c), req.RouteID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fav, nil)
}

// List godoc
// @Summary List favorites
// @Tags Favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.FavoriteResponse
// @Router /api/v1/favorites [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	favorites, err := h.favoriteUC.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, favorites, &utils.Meta{Total: len(favorites)})
}

// Remove godoc
// @Summary Remove route from favorites
// @Tags Favorites
// @Produce json
// @Security BearerAuth
// @Param routeID path string true "Route ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/favorites/{routeID} [delete]
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	routeID, err := uuid.Parse(c.Params("routeID"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.favoriteUC.Remove(c.Context(), middleware.UserID(c), routeID); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
