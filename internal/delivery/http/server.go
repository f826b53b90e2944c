package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/transit-density/internal/config"
	"github.com/transit-density/internal/delivery/http/handler"
	"github.com/transit-density/internal/delivery/http/middleware"
	"github.com/transit-density/internal/pkg/errors"
	"github.com/transit-density/internal/pkg/utils"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	layerHandler    *handler.LayerHandler
	settingsHandler *handler.SettingsHandler
	statusHandler   *handler.StatusHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	layerHandler *handler.LayerHandler,
	settingsHandler *handler.SettingsHandler,
	statusHandler *handler.StatusHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Transit Density",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		layerHandler:    layerHandler,
		settingsHandler: settingsHandler,
		statusHandler:   statusHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger, s.config.Server.Env != "production"))
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

	// System
	api.Get("/health", s.statusHandler.Health)
	api.Get("/status", s.statusHandler.Status)

	// Layers
	api.Get("/layers", s.layerHandler.ListLayers)
	api.Get("/layers/:name", s.layerHandler.GetLayer)
	api.Get("/bins/:dataset", s.layerHandler.GetBins)
	api.Get("/diffs/:pair", s.layerHandler.GetDiffs)
	api.Get("/top/:pair", s.layerHandler.GetTop)

	// Datasets and cells
	api.Get("/points/:dataset", s.layerHandler.GetPoints)
	api.Get("/cells/:id", s.layerHandler.GetCell)

	// Settings
	api.Get("/settings", s.settingsHandler.GetSettings)
	api.Put("/settings", s.settingsHandler.UpdateSettings)
}

// App возвращает приложение Fiber (тесты через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
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

// customErrorHandler - ошибки маршрутизации и паники в формате API
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appCode := errors.ErrInternalServer.Code

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code == fiber.StatusNotFound {
				appCode = "NOT_FOUND"
			} else if code < fiber.StatusInternalServerError {
				appCode = errors.ErrInvalidRequest.Code
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.New(appCode, err.Error(), code),
		})
	}
}
