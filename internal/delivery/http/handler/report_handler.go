package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/pkg/utils"
	"github.com/rangeguard-service/internal/pkg/validator"
	"github.com/rangeguard-service/internal/usecase"
	"github.com/rangeguard-service/internal/usecase/dto"
)

// ReportHandler обрабатывает генерацию PDF отчётов
type ReportHandler struct {
	reportUC usecase.ReportUsecase
	routeUC  usecase.RouteUsecase
	logger   *zap.Logger
}

// NewReportHandler создает новый экземпляр ReportHandler
func NewReportHandler(reportUC usecase.ReportUsecase, routeUC usecase.RouteUsecase, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportUC: reportUC,
		routeUC:  routeUC,
		logger:   logger,
	}
}

// ReportRequest - запрос PDF отчёта по маршруту
type ReportRequest struct {
	dto.CheckIntersectionRequest
	RouteName string `json:"route_name" validate:"omitempty,max=200"`
}

// GeneratePDF godoc
// @Summary Route safety report as PDF
// @Description Строит отчёт о конфликтах маршрута и возвращает его в PDF. Маршрут задаётся route_id или inline-геометрией.
// @Tags Reports
// @Accept json
// @Produce application/pdf
// @Param request body ReportRequest true "Маршрут и имя отчёта"
// @Success 200 {file} binary
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/reports/route [post]
func (h *ReportHandler) GeneratePDF(c *fiber.Ctx) error {
	var req ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.GetValidator().Struct(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage(err.Error()))
	}

	line, routeName, err := resolveRouteGeometry(c, h.routeUC, &req.CheckIntersectionRequest)
	if err != nil {
		return utils.SendError(c, err)
	}
	if req.RouteName != "" {
		routeName = req.RouteName
	}

	pdfData, err := h.reportUC.GeneratePDF(c.Context(), routeName, line, req.At)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="route-safety-report.pdf"`)
	return c.Send(pdfData)
}
