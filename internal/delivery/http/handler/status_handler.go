package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/transit-density/internal/pkg/utils"
	"github.com/transit-density/internal/usecase"
	"go.uber.org/zap"
)

// HealthCheck проверяет внешнюю зависимость (Redis, OSM база)
type HealthCheck func(ctx context.Context) error

// StatusHandler - health и состояние конвейера
type StatusHandler struct {
	layerUC *usecase.LayerUseCase
	checks  map[string]HealthCheck
	logger  *zap.Logger
}

// NewStatusHandler создает новый экземпляр StatusHandler
func NewStatusHandler(layerUC *usecase.LayerUseCase, checks map[string]HealthCheck, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		layerUC: layerUC,
		checks:  checks,
		logger:  logger,
	}
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *StatusHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"time":         time.Now(),
		"dependencies": deps,
	})
}

// Status godoc
// @Summary Pipeline status
// @Description Состояние наборов данных, текущее поколение слоёв и параметры
// @Tags System
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StatusResponse}
// @Router /api/v1/status [get]
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	status := h.layerUC.Status()
	meta := &utils.Meta{Generation: status.Generation}
	return utils.SendSuccess(c, status, meta)
}
