package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rangeguard-service/internal/pkg/errors"
)

// SuccessResponse - единый конверт успешного ответа
type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// ErrorResponse - единый конверт ошибки
type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// Meta - пагинация и счётчики списковых ответов
type Meta struct {
	Total int `json:"total,omitempty"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{Data: data, Meta: meta})
}

// SendError маппит AppError на его HTTP статус,
// любая другая ошибка отдаётся как 500 без деталей
func SendError(c *fiber.Ctx, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{Error: appErr})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
