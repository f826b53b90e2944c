package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/pkg/errors"
	"github.com/transit-density/internal/pkg/utils"
	"github.com/transit-density/internal/usecase"
	"go.uber.org/zap"
)

// LayerHandler отдаёт слои плотности, агрегаты и разности
type LayerHandler struct {
	layerUC *usecase.LayerUseCase
	logger  *zap.Logger
}

// NewLayerHandler создает новый экземпляр LayerHandler
func NewLayerHandler(layerUC *usecase.LayerUseCase, logger *zap.Logger) *LayerHandler {
	return &LayerHandler{
		layerUC: layerUC,
		logger:  logger,
	}
}

// ListLayers godoc
// @Summary List available layers
// @Description Каталог слоёв для переключателя и легенды
// @Tags Layers
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.LayerDescriptor}
// @Router /api/v1/layers [get]
func (h *LayerHandler) ListLayers(c *fiber.Ctx) error {
	layers := h.layerUC.Layers()
	return utils.SendSuccess(c, layers, &utils.Meta{Total: len(layers)})
}

// GetLayer godoc
// @Summary Get render-ready layer
// @Description Тепловая карта набора данных или слой разности пары с Top-K маркерами
// @Tags Layers
// @Produce json
// @Param name path string true "Layer name" Enums(population, entertainment, vehicle, entertainment-population, vehicle-population, entertainment-vehicle)
// @Success 200 {object} utils.SuccessResponse{data=dto.LayerResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/layers/{name} [get]
func (h *LayerHandler) GetLayer(c *fiber.Ctx) error {
	name := c.Params("name")

	layer, err := h.layerUC.Layer(name)
	if err != nil {
		return utils.SendError(c, err)
	}

	resolution := layer.Resolution
	total := len(layer.HeatPoints) + len(layer.DiffPoints)
	return utils.SendSuccess(c, layer, &utils.Meta{
		Total:      total,
		Generation: layer.Generation,
		Resolution: &resolution,
	})
}

// GetBins godoc
// @Summary Get hex bins of a dataset
// @Tags Layers
// @Produce json
// @Param dataset path string true "Dataset" Enums(population, entertainment, vehicle)
// @Success 200 {object} utils.SuccessResponse{data=domain.HexBin}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/bins/{dataset} [get]
func (h *LayerHandler) GetBins(c *fiber.Ctx) error {
	category, err := parseDataset(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	bin, generation, err := h.layerUC.Bin(category)
	if err != nil {
		return utils.SendError(c, err)
	}

	resolution := bin.Resolution
	return utils.SendSuccess(c, bin, &utils.Meta{
		Total:      bin.Len(),
		Generation: generation,
		Resolution: &resolution,
	})
}

// GetDiffs godoc
// @Summary Get scaled differences of a dataset pair
// @Tags Layers
// @Produce json
// @Param pair path string true "Pair" Enums(entertainment-population, vehicle-population, entertainment-vehicle)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.DiffBin}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/diffs/{pair} [get]
func (h *LayerHandler) GetDiffs(c *fiber.Ctx) error {
	pair, err := parsePair(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	diffs, generation, err := h.layerUC.Diffs(pair)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, diffs, &utils.Meta{
		Total:      len(diffs),
		Generation: generation,
	})
}

// GetTop godoc
// @Summary Get top-K cells of a dataset pair
// @Description Ячейки с наибольшей по модулю разностью; k по умолчанию из настроек
// @Tags Layers
// @Produce json
// @Param pair path string true "Pair" Enums(entertainment-population, vehicle-population, entertainment-vehicle)
// @Param k query int false "Number of cells"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.RankedCell}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/top/{pair} [get]
func (h *LayerHandler) GetTop(c *fiber.Ctx) error {
	pair, err := parsePair(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var k *int
	if raw := c.Query("k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"k": "must be an integer",
			}))
		}
		k = &v
	}

	top, generation, err := h.layerUC.Top(pair, k)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, top, &utils.Meta{
		Total:      len(top),
		Generation: generation,
	})
}

// GetPoints godoc
// @Summary Get raw dataset points
// @Tags Datasets
// @Produce json
// @Param dataset path string true "Dataset" Enums(population, entertainment, vehicle)
// @Success 200 {object} utils.SuccessResponse{data=dto.PointsResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/points/{dataset} [get]
func (h *LayerHandler) GetPoints(c *fiber.Ctx) error {
	category, err := parseDataset(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	points, err := h.layerUC.Points(category)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, points, &utils.Meta{Total: len(points.Points)})
}

// GetCell godoc
// @Summary Get hex cell geometry and values
// @Tags Cells
// @Produce json
// @Param id path string true "H3 cell id"
// @Success 200 {object} utils.SuccessResponse{data=dto.CellResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/cells/{id} [get]
func (h *LayerHandler) GetCell(c *fiber.Ctx) error {
	cell, err := h.layerUC.Cell(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	resolution := cell.Resolution
	return utils.SendSuccess(c, cell, &utils.Meta{Resolution: &resolution})
}

func parseDataset(c *fiber.Ctx) (domain.Category, error) {
	name := c.Params("dataset")
	category, err := domain.ParseCategory(name)
	if err != nil {
		return "", errors.ErrLayerNotFound.WithDetails(map[string]interface{}{"dataset": name})
	}
	return category, nil
}

func parsePair(c *fiber.Ctx) (domain.Pair, error) {
	name := c.Params("pair")
	pair, ok := domain.ParsePair(name)
	if !ok {
		return domain.Pair{}, errors.ErrLayerNotFound.WithDetails(map[string]interface{}{"pair": name})
	}
	return pair, nil
}
