package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/transit-density/internal/pkg/errors"
	"github.com/transit-density/internal/pkg/utils"
	"github.com/transit-density/internal/usecase"
	"github.com/transit-density/internal/usecase/dto"
	"go.uber.org/zap"
)

// SettingsHandler - чтение и изменение параметров конвейера
type SettingsHandler struct {
	layerUC *usecase.LayerUseCase
	logger  *zap.Logger
}

// NewSettingsHandler создает новый экземпляр SettingsHandler
func NewSettingsHandler(layerUC *usecase.LayerUseCase, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		layerUC: layerUC,
		logger:  logger,
	}
}

// GetSettings godoc
// @Summary Get pipeline settings
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Settings}
// @Router /api/v1/settings [get]
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.layerUC.Settings(), nil)
}

// UpdateSettings godoc
// @Summary Update pipeline settings
// @Description Частичное обновление; слои пересчитываются асинхронно
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Settings patch"
// @Success 200 {object} utils.SuccessResponse{data=domain.Settings}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/settings [put]
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "invalid JSON body",
		}))
	}
	if req.IsEmpty() {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "no settings to update",
		}))
	}

	settings, err := h.layerUC.UpdateSettings(c.UserContext(), req)
	if err != nil {
		h.logger.Warn("Rejected settings update", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, settings, nil)
}
