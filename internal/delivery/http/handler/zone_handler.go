package handler

import (
	"time"

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

// ZoneHandler обрабатывает запросы охотничьих зон
type ZoneHandler struct {
	zoneUC usecase.ZoneUsecase
	logger *zap.Logger
}

// NewZoneHandler создает новый экземпляр ZoneHandler
func NewZoneHandler(zoneUC usecase.ZoneUsecase, logger *zap.Logger) *ZoneHandler {
	return &ZoneHandler{
		zoneUC: zoneUC,
		logger: logger,
	}
}

// Create godoc
// @Summary Create a hunting zone
// @Description Создание зоны с окном активности и буфером безопасности. Доступно только ассоциациям.
// @Tags Zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateZoneRequest true "Параметры зоны"
// @Success 200 {object} domain.Zone
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/zones [post]
func (h *ZoneHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.GetValidator().Struct(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	zone, err := h.zoneUC.Create(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, zone, nil)
}

// List godoc
// @Summary List zones
// @Description Список зон; active=true оставляет только зоны, активные в данный момент. date задаёт момент проверки активности (RFC3339), по умолчанию - сейчас.
// @Tags Zones
// @Produce json
// @Param active query bool false "Только активные зоны"
// @Param date query string false "Момент проверки активности (RFC3339)"
// @Success 200 {array} domain.Zone
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/zones [get]
func (h *ZoneHandler) List(c *fiber.Ctx) error {
	if c.QueryBool("active") {
		at := time.Now().UTC()
		if raw := c.Query("date"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage("date must be RFC3339"))
			}
			at = parsed
		}

		zones, err := h.zoneUC.ListActive(c.Context(), at)
		if err != nil {
			return utils.SendError(c, err)
		}
		return utils.SendSuccess(c, zones, &utils.Meta{Total: len(zones)})
	}

	zones, err := h.zoneUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, zones, &utils.Meta{Total: len(zones)})
}

// ListMine godoc
// @Summary List own zones
// @Description Зоны, созданные текущей ассоциацией
// @Tags Zones
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Zone
// @Router /api/v1/zones/mine [get]
func (h *ZoneHandler) ListMine(c *fiber.Ctx) error {
	zones, err := h.zoneUC.ListMine(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, zones, &utils.Meta{Total: len(zones)})
}

// GetByID godoc
// @Summary Get zone by ID
// @Tags Zones
// @Produce json
// @Param id path string true "Zone ID"
// @Success 200 {object} domain.Zone
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/zones/{id} [get]
func (h *ZoneHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	zone, err := h.zoneUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, zone, nil)
}

// Update godoc
// @Summary Update a zone
// @Description Частичное обновление зоны её автором. Изменение геометрии или буфера пересчитывает буферизованную геометрию.
// @Tags Zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Zone ID"
// @Param request body dto.UpdateZoneRequest true "Изменяемые поля"
// @Success 200 {object} domain.Zone
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/zones/{id} [put]
func (h *ZoneHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	var req dto.UpdateZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.GetValidator().Struct(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	zone, err := h.zoneUC.Update(c.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, zone, nil)
}

// Delete godoc
// @Summary Delete a zone
// @Tags Zones
// @Produce json
// @Security BearerAuth
// @Param id path string true "Zone ID"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/zones/{id} [delete]
func (h *ZoneHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.zoneUC.Delete(c.Context(), middleware.UserID(c), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
