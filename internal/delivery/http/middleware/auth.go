package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rangeguard-service/internal/pkg/auth"
	apperrors "github.com/rangeguard-service/internal/pkg/errors"
	"github.com/rangeguard-service/internal/pkg/utils"
)

const (
	// LocalUserID - ключ fiber locals с ID аутентифицированного пользователя
	LocalUserID = "userID"
	// LocalUserRole - ключ fiber locals с ролью пользователя
	LocalUserRole = "userRole"
)

// RequireAuth - middleware, требующий валидный Bearer токен
func RequireAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseAuthHeader(c, jwtSecret)
		if err != nil {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserRole, claims.Role)
		return c.Next()
	}
}

// OptionalAuth - middleware, извлекающий пользователя, если токен передан.
// Запрос без токена проходит анонимно.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, err := parseAuthHeader(c, jwtSecret); err == nil {
			c.Locals(LocalUserID, claims.UserID)
			c.Locals(LocalUserRole, claims.Role)
		}
		return c.Next()
	}
}

// UserID возвращает ID пользователя из контекста запроса;
// uuid.Nil для анонимного запроса
func UserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(LocalUserID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func parseAuthHeader(c *fiber.Ctx, jwtSecret string) (*auth.Claims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return auth.ParseToken(token, jwtSecret)
}
