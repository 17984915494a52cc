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

// RouteHandler обрабатывает запросы маршрутов
type RouteHandler struct {
	routeUC usecase.RouteUsecase
	logger  *zap.Logger
}

// NewRouteHandler создает новый экземпляр RouteHandler
func NewRouteHandler(routeUC usecase.RouteUsecase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// Create godoc
// @Summary Upload a route
// @Description Сохранение маршрута (GeoJSON LineString). Доступно и анонимно; авторизованный пользователь становится владельцем.
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.CreateRouteRequest true "Маршрут"
// @Success 200 {object} domain.Route
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/routes [post]
func (h *RouteHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.GetValidator().Struct(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	route, err := h.routeUC.Create(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, route, nil)
}

// ListPublic godoc
// @Summary List public routes
// @Description Публичные маршруты с опциональным поиском по имени
// @Tags Routes
// @Produce json
// @Param search query string false "Фильтр по имени"
// @Param limit query int false "Максимум результатов"
// @Success 200 {array} domain.RouteSummary
// @Router /api/v1/routes/public [get]
func (h *RouteHandler) ListPublic(c *fiber.Ctx) error {
	routes, err := h.routeUC.ListPublic(c.Context(), c.Query("search"), c.QueryInt("limit"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, routes, &utils.Meta{Total: len(routes)})
}

// ListMine godoc
// @Summary List own routes
// @Tags Routes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Route
// @Router /api/v1/routes/mine [get]
func (h *RouteHandler) ListMine(c *fiber.Ctx) error {
	routes, err := h.routeUC.ListMine(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, routes, &utils.Meta{Total: len(routes)})
}

// GetByID godoc
// @Summary Get route by ID
// @Description Приватный маршрут возвращается только владельцу
// @Tags Routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} domain.Route
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id} [get]
func (h *RouteHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	route, err := h.routeUC.GetByID(c.Context(), middleware.UserID(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, route, nil)
}

// SetVisibility godoc
// @Summary Toggle route visibility
// @Tags Routes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Route ID"
// @Param request body dto.SetRouteVisibilityRequest true "Новая видимость"
// @Success 200 {object} domain.Route
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id}/visibility [put]
func (h *RouteHandler) SetVisibility(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	var req dto.SetRouteVisibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	route, err := h.routeUC.SetVisibility(c.Context(), middleware.UserID(c), id, req.IsPublic)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, route, nil)
}

// Delete godoc
// @Summary Delete a route
// @Tags Routes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Route ID"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id} [delete]
func (h *RouteHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.routeUC.Delete(c.Context(), middleware.UserID(c), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
