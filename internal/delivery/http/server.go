package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/config"
	"github.com/rangeguard-service/internal/delivery/http/handler"
	"github.com/rangeguard-service/internal/delivery/http/middleware"
	"github.com/rangeguard-service/internal/repository/cache"
	"github.com/rangeguard-service/internal/repository/postgres"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	db    *postgres.DB
	redis *cache.Redis

	// Handlers
	authHandler         *handler.AuthHandler
	zoneHandler         *handler.ZoneHandler
	routeHandler        *handler.RouteHandler
	intersectionHandler *handler.IntersectionHandler
	favoriteHandler     *handler.FavoriteHandler
	notificationHandler *handler.NotificationHandler
	statsHandler        *handler.StatsHandler
	reportHandler       *handler.ReportHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *postgres.DB,
	redis *cache.Redis,
	authHandler *handler.AuthHandler,
	zoneHandler *handler.ZoneHandler,
	routeHandler *handler.RouteHandler,
	intersectionHandler *handler.IntersectionHandler,
	favoriteHandler *handler.FavoriteHandler,
	notificationHandler *handler.NotificationHandler,
	statsHandler *handler.StatsHandler,
	reportHandler *handler.ReportHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "RangeGuard",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                 app,
		config:              cfg,
		logger:              logger,
		db:                  db,
		redis:               redis,
		authHandler:         authHandler,
		zoneHandler:         zoneHandler,
		routeHandler:        routeHandler,
		intersectionHandler: intersectionHandler,
		favoriteHandler:     favoriteHandler,
		notificationHandler: notificationHandler,
		statsHandler:        statsHandler,
		reportHandler:       reportHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	requireAuth := middleware.RequireAuth(s.config.Auth.JWTSecret)
	optionalAuth := middleware.OptionalAuth(s.config.Auth.JWTSecret)

	// Health check
	api.Get("/health", s.healthCheck)

	// Auth
	api.Post("/auth/register", s.authHandler.Register)
	api.Post("/auth/login", s.authHandler.Login)
	api.Get("/auth/me", requireAuth, s.authHandler.GetProfile)

	// Zones
	api.Get("/zones", s.zoneHandler.List)
	api.Get("/zones/mine", requireAuth, s.zoneHandler.ListMine)
	api.Get("/zones/:id", s.zoneHandler.GetByID)
	api.Post("/zones", requireAuth, s.zoneHandler.Create)
	api.Put("/zones/:id", requireAuth, s.zoneHandler.Update)
	api.Delete("/zones/:id", requireAuth, s.zoneHandler.Delete)

	// Routes
	api.Post("/routes", optionalAuth, s.routeHandler.Create)
	api.Get("/routes/public", s.routeHandler.ListPublic)
	api.Get("/routes/mine", requireAuth, s.routeHandler.ListMine)
	api.Get("/routes/:id", optionalAuth, s.routeHandler.GetByID)
	api.Put("/routes/:id/visibility", requireAuth, s.routeHandler.SetVisibility)
	api.Delete("/routes/:id", requireAuth, s.routeHandler.Delete)

	// Intersection check - доступна и анонимно
	api.Post("/check-intersection", optionalAuth, s.intersectionHandler.CheckIntersection)

	// PDF report
	api.Post("/reports/route", optionalAuth, s.reportHandler.GeneratePDF)

	// Favorites
	api.Post("/favorites", requireAuth, s.favoriteHandler.Add)
	api.Get("/favorites", requireAuth, s.favoriteHandler.List)
	api.Delete("/favorites/:routeID", requireAuth, s.favoriteHandler.Remove)

	// Notifications
	api.Get("/notifications", requireAuth, s.notificationHandler.List)
	api.Get("/notifications/unread-count", requireAuth, s.notificationHandler.UnreadCount)
	api.Put("/notifications/read-all", requireAuth, s.notificationHandler.MarkAllRead)
	api.Put("/notifications/:id/read", requireAuth, s.notificationHandler.MarkRead)
	api.Delete("/notifications/:id", requireAuth, s.notificationHandler.Delete)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)
}

// healthCheck проверяет доступность PostgreSQL и Redis
func (s *Server) healthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	checks := fiber.Map{"postgres": "ok", "redis": "ok"}

	if err := s.db.Health(ctx); err != nil {
		status = "degraded"
		checks["postgres"] = err.Error()
	}
	if err := s.redis.Health(ctx); err != nil {
		status = "degraded"
		checks["redis"] = err.Error()
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now().UTC(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
