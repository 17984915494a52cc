package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/delivery/http/middleware"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/pkg/geo"
	"github.com/rangeguard-service/internal/pkg/utils"
	"github.com/rangeguard-service/internal/pkg/validator"
	"github.com/rangeguard-service/internal/usecase"
	"github.com/rangeguard-service/internal/usecase/dto"
)

// IntersectionHandler обрабатывает проверку маршрутов против зон
type IntersectionHandler struct {
	intersectionUC usecase.IntersectionUsecase
	routeUC        usecase.RouteUsecase
	logger         *zap.Logger
}

// NewIntersectionHandler создает новый экземпляр IntersectionHandler
func NewIntersectionHandler(intersectionUC usecase.IntersectionUsecase, routeUC usecase.RouteUsecase, logger *zap.Logger) *IntersectionHandler {
	return &IntersectionHandler{
		intersectionUC: intersectionUC,
		routeUC:        routeUC,
		logger:         logger,
	}
}

// CheckIntersection godoc
// @Summary Check a route against active hunting zones
// @Description Классифицирует маршрут против каждой активной зоны: contained, intersects или buffer. Маршрут задаётся route_id или inline-геометрией. Момент проверки фиксируется один раз; поле at позволяет проверить будущую дату.
// @Tags Intersection
// @Accept json
// @Produce json
// @Param request body dto.CheckIntersectionRequest true "Маршрут и момент проверки"
// @Success 200 {object} domain.IntersectionReport
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/check-intersection [post]
func (h *IntersectionHandler) CheckIntersection(c *fiber.Ctx) error {
	var req dto.CheckIntersectionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.GetValidator().Struct(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	line, _, err := resolveRouteGeometry(c, h.routeUC, &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	report, err := h.intersectionUC.CheckRoute(c.Context(), line, req.At)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, report, nil)
}

// resolveRouteGeometry отдаёт геометрию проверяемого маршрута:
// сохранённый маршрут по route_id (с учётом приватности) либо inline-геометрию
func resolveRouteGeometry(c *fiber.Ctx, routeUC usecase.RouteUsecase, req *dto.CheckIntersectionRequest) (geo.Polyline, string, error) {
	if req.RouteID == nil {
		return req.Geometry, "", nil
	}
	route, err := routeUC.GetByID(c.Context(), middleware.UserID(c), *req.RouteID)
	if err != nil {
		return nil, "", err
	}
	return route.Points, route.Name, nil
}
