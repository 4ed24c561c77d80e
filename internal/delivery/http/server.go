package http

import (
	"context"
	"time"

	"github.com/Yoon-jae-min/busalert/internal/config"
	"github.com/Yoon-jae-min/busalert/internal/delivery/http/handler"
	"github.com/Yoon-jae-min/busalert/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	regionHandler   *handler.RegionHandler
	stopHandler     *handler.StopHandler
	arrivalHandler  *handler.ArrivalHandler
	plannerHandler  *handler.PlannerHandler
	favoriteHandler *handler.FavoriteHandler
	alertHandler    *handler.AlertHandler
	settingsHandler *handler.SettingsHandler
	healthHandler   *handler.HealthHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	regionHandler *handler.RegionHandler,
	stopHandler *handler.StopHandler,
	arrivalHandler *handler.ArrivalHandler,
	plannerHandler *handler.PlannerHandler,
	favoriteHandler *handler.FavoriteHandler,
	alertHandler *handler.AlertHandler,
	settingsHandler *handler.SettingsHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Bus Alert Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		regionHandler:   regionHandler,
		stopHandler:     stopHandler,
		arrivalHandler:  arrivalHandler,
		plannerHandler:  plannerHandler,
		favoriteHandler: favoriteHandler,
		alertHandler:    alertHandler,
		settingsHandler: settingsHandler,
		healthHandler:   healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Region classification
	api.Get("/region/classify", s.regionHandler.Classify)
	api.Get("/region/citycode", s.regionHandler.CityCode)

	// Stops
	api.Get("/stops/search", s.stopHandler.Search)
	api.Post("/stops/nearby", s.stopHandler.Nearby)
	api.Get("/stops/:id/arrivals", s.arrivalHandler.Arrivals)
	api.Post("/stops/:id/watch", s.arrivalHandler.Watch)
	api.Delete("/stops/:id/watch", s.arrivalHandler.Unwatch)

	// Departure planning
	api.Post("/walking-route", s.plannerHandler.WalkingRoute)
	api.Post("/departure/plan", s.plannerHandler.Plan)

	// Favorites
	api.Get("/favorites", s.favoriteHandler.List)
	api.Post("/favorites", s.favoriteHandler.Add)
	api.Delete("/favorites/:id", s.favoriteHandler.Remove)

	// Alerts
	api.Post("/alerts", s.alertHandler.Schedule)
	api.Get("/alerts/history", s.alertHandler.History)

	// Settings
	api.Get("/settings", s.settingsHandler.Get)
	api.Put("/settings", s.settingsHandler.Update)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

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
