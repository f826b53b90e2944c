package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/transit-density/internal/density"
	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/domain/repository"
	"github.com/transit-density/internal/hexgrid"
	"github.com/transit-density/internal/pkg/errors"
	"github.com/transit-density/internal/pkg/validator"
	"github.com/transit-density/internal/usecase/dto"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// LayerUseCase строит слои плотности и разностей и хранит последнее поколение
type LayerUseCase struct {
	store     *DatasetStore
	publisher repository.LayerPublisher
	logger    *zap.Logger

	// computeMu сериализует пересчёты, чтобы поколения шли по порядку
	computeMu  sync.Mutex
	generation uint64

	mu       sync.RWMutex
	settings domain.Settings
	current  *domain.LayerSet
	trigger  func()
}

// NewLayerUseCase создает новый экземпляр LayerUseCase. publisher может быть nil.
func NewLayerUseCase(
	store *DatasetStore,
	settings domain.Settings,
	publisher repository.LayerPublisher,
	logger *zap.Logger,
) (*LayerUseCase, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	return &LayerUseCase{
		store:     store,
		publisher: publisher,
		logger:    logger,
		settings:  settings,
	}, nil
}

// SetTrigger задает функцию, запрашивающую пересчёт (воркер с debounce)
func (uc *LayerUseCase) SetTrigger(fn func()) {
	uc.mu.Lock()
	uc.trigger = fn
	uc.mu.Unlock()
}

// Settings возвращает текущие параметры
func (uc *LayerUseCase) Settings() domain.Settings {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.settings
}

// UpdateSettings применяет частичное обновление и запрашивает пересчёт.
// Некорректный запрос не меняет текущих параметров.
func (uc *LayerUseCase) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (domain.Settings, error) {
	if err := validator.Validate(req); err != nil {
		return domain.Settings{}, errors.ErrInvalidSettings.WithDetails(validator.FieldErrors(err))
	}

	uc.mu.Lock()
	next := applySettingsPatch(uc.settings, req)
	if err := validateSettings(next); err != nil {
		uc.mu.Unlock()
		return domain.Settings{}, err
	}
	changed := next != uc.settings
	uc.settings = next
	trigger := uc.trigger
	uc.mu.Unlock()

	if changed {
		uc.logger.Info("Pipeline settings updated",
			zap.Int("resolution", next.Resolution),
			zap.Float64("population_normalizer", next.PopulationNormalizer),
			zap.Int("top_k", next.TopK))
		if trigger != nil {
			trigger()
		}
	}

	return next, nil
}

// Recompute строит новое поколение слоёв на согласованном снимке всех наборов
func (uc *LayerUseCase) Recompute(ctx context.Context) (*domain.LayerSet, error) {
	uc.computeMu.Lock()
	defer uc.computeMu.Unlock()

	snapshots, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}

	settings := uc.Settings()
	start := time.Now()

	layers := &domain.LayerSet{
		ID:              uuid.New(),
		Settings:        settings,
		DatasetVersions: make(map[domain.Category]uint64, len(domain.Categories)),
		Bins:            make(map[domain.Category]domain.HexBin, len(domain.Categories)),
		Diffs:           make(map[string][]domain.DiffBin, len(domain.Pairs)),
		Top:             make(map[string][]domain.RankedCell, len(domain.Pairs)),
	}

	for _, c := range domain.Categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap := snapshots[c]
		bin, err := density.Aggregate(snap.Points, settings.Resolution, settings.PopulationNormalizer)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", c, err)
		}
		layers.Bins[c] = bin
		layers.DatasetVersions[c] = snap.Version
	}

	for _, p := range domain.Pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		diffs, err := density.Diff(layers.Bins[p.A], layers.Bins[p.B])
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", p.Name(), err)
		}
		scaled := density.Scale(diffs, settings.Scale.For(p))
		top, err := density.TopK(scaled, settings.TopK)
		if err != nil {
			return nil, fmt.Errorf("top %s: %w", p.Name(), err)
		}
		layers.Diffs[p.Name()] = scaled
		layers.Top[p.Name()] = top
	}

	uc.generation++
	layers.Generation = uc.generation
	layers.ComputedAt = time.Now().UTC()

	uc.mu.Lock()
	uc.current = layers
	uc.mu.Unlock()

	uc.logger.Info("Layers recomputed",
		zap.String("layer_set_id", layers.ID.String()),
		zap.Uint64("generation", layers.Generation),
		zap.Int("resolution", settings.Resolution),
		zap.Int("population_cells", layers.Bins[domain.CategoryPopulation].Len()),
		zap.Int("entertainment_cells", layers.Bins[domain.CategoryEntertainment].Len()),
		zap.Int("vehicle_cells", layers.Bins[domain.CategoryVehicle].Len()),
		zap.Duration("took", time.Since(start)))

	uc.publish(ctx, layers)

	return layers, nil
}

// publish отдает поколение внешним потребителям; ошибки только логируются
func (uc *LayerUseCase) publish(ctx context.Context, layers *domain.LayerSet) {
	if uc.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := uc.publisher.PublishLayers(ctx, layers); err != nil {
		uc.logger.Warn("Failed to publish layers",
			zap.Uint64("generation", layers.Generation),
			zap.Error(err))
	}
}

// Current возвращает последнее поколение слоёв.
// Пока поколения нет, сообщает, почему: наборы не готовы, упали или пересчёт ещё не прошёл.
func (uc *LayerUseCase) Current() (*domain.LayerSet, error) {
	uc.mu.RLock()
	current := uc.current
	uc.mu.RUnlock()

	if current != nil {
		return current, nil
	}
	if _, err := uc.store.Snapshot(); err != nil {
		return nil, err
	}
	return nil, errors.ErrLayersNotReady
}

// Layers возвращает каталог слоёв
func (uc *LayerUseCase) Layers() []domain.LayerDescriptor {
	return domain.LayerCatalog
}

// Layer собирает слой для отрисовки по имени набора данных или пары
func (uc *LayerUseCase) Layer(name string) (*dto.LayerResponse, error) {
	desc, ok := domain.FindLayer(name)
	if !ok {
		return nil, errors.ErrLayerNotFound.WithDetails(map[string]interface{}{"name": name})
	}

	current, err := uc.Current()
	if err != nil {
		return nil, err
	}

	resp := &dto.LayerResponse{
		Layer:      desc,
		Generation: current.Generation,
		Resolution: current.Settings.Resolution,
	}

	if desc.Kind == domain.LayerKindHeat {
		bin := current.Bins[domain.Category(desc.Name)]
		points, err := heatPoints(bin)
		if err != nil {
			return nil, err
		}
		resp.HeatPoints = points
		return resp, nil
	}

	diffs := current.Diffs[desc.Name]
	resp.DiffPoints = make([]dto.DiffPoint, len(diffs))
	for i, d := range diffs {
		resp.DiffPoints[i] = dto.DiffPoint{
			CellID:    d.CellID,
			Position:  d.Center.Position(),
			Weight:    d.Diff,
			Elevation: math.Abs(d.Diff),
		}
	}
	resp.Top = current.Top[desc.Name]

	return resp, nil
}

func heatPoints(bin domain.HexBin) ([]dto.HeatPoint, error) {
	ids := bin.CellIDs()
	points := make([]dto.HeatPoint, len(ids))
	for i, id := range ids {
		center, err := hexgrid.Center(id)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", id, err)
		}
		points[i] = dto.HeatPoint{Position: center.Position(), Weight: bin.Get(id)}
	}
	return points, nil
}

// Bin возвращает агрегат набора данных из текущего поколения
func (uc *LayerUseCase) Bin(category domain.Category) (domain.HexBin, uint64, error) {
	current, err := uc.Current()
	if err != nil {
		return domain.HexBin{}, 0, err
	}
	return current.Bins[category], current.Generation, nil
}

// Diffs возвращает масштабированные разности пары из текущего поколения
func (uc *LayerUseCase) Diffs(pair domain.Pair) ([]domain.DiffBin, uint64, error) {
	current, err := uc.Current()
	if err != nil {
		return nil, 0, err
	}
	return current.Diffs[pair.Name()], current.Generation, nil
}

// Top возвращает Top-K пары. k == nil - значение из настроек поколения.
func (uc *LayerUseCase) Top(pair domain.Pair, k *int) ([]domain.RankedCell, uint64, error) {
	current, err := uc.Current()
	if err != nil {
		return nil, 0, err
	}

	if k == nil {
		return current.Top[pair.Name()], current.Generation, nil
	}

	top, err := density.TopK(current.Diffs[pair.Name()], *k)
	if err != nil {
		return nil, 0, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"k": err.Error()})
	}
	return top, current.Generation, nil
}

// Points возвращает исходные точки набора данных, если он загружен
func (uc *LayerUseCase) Points(category domain.Category) (*dto.PointsResponse, error) {
	buf := uc.store.Buffer(category)
	switch buf.State() {
	case domain.DatasetFailed:
		return nil, errors.ErrDatasetLoadFailed.WithDetails(map[string]interface{}{
			string(category): buf.Status().Error,
		})
	case domain.DatasetPending:
		return nil, errors.ErrDatasetsNotReady.WithDetails(map[string]interface{}{
			string(category): string(domain.DatasetPending),
		})
	}

	snap := buf.Snapshot()
	points := make([]dto.ScatterPoint, len(snap.Points))
	for i, p := range snap.Points {
		points[i] = dto.ScatterPoint{
			Position: [2]float64{p.Lon, p.Lat},
			Weight:   p.Weight,
		}
	}

	return &dto.PointsResponse{
		Dataset: category,
		Version: snap.Version,
		Points:  points,
	}, nil
}

// Cell возвращает геометрию ячейки и, если поколение того же разрешения есть, её значения
func (uc *LayerUseCase) Cell(cellID string) (*dto.CellResponse, error) {
	res, err := hexgrid.Resolution(cellID)
	if err != nil {
		return nil, errors.ErrInvalidCellID.WithDetails(map[string]interface{}{"cell_id": cellID})
	}
	center, err := hexgrid.Center(cellID)
	if err != nil {
		return nil, errors.ErrInvalidCellID.WithDetails(map[string]interface{}{"cell_id": cellID})
	}
	boundary, err := hexgrid.Boundary(cellID)
	if err != nil {
		return nil, errors.ErrInvalidCellID.WithDetails(map[string]interface{}{"cell_id": cellID})
	}

	resp := &dto.CellResponse{
		CellID:     cellID,
		Resolution: res,
		Center:     center,
		Boundary:   boundary,
	}

	uc.mu.RLock()
	current := uc.current
	uc.mu.RUnlock()

	if current != nil && current.Settings.Resolution == res {
		resp.Values = make(map[string]float64, len(domain.Categories)+len(domain.Pairs))
		for _, c := range domain.Categories {
			resp.Values[string(c)] = current.Bins[c].Get(cellID)
		}
		for _, p := range domain.Pairs {
			resp.Values[p.Name()] = findDiff(current.Diffs[p.Name()], cellID)
		}
	}

	return resp, nil
}

// findDiff ищет ячейку бинарным поиском: разности упорядочены по идентификатору
func findDiff(diffs []domain.DiffBin, cellID string) float64 {
	lo, hi := 0, len(diffs)
	for lo < hi {
		mid := (lo + hi) / 2
		if diffs[mid].CellID < cellID {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(diffs) && diffs[lo].CellID == cellID {
		return diffs[lo].Diff
	}
	return 0
}

// Status собирает состояние наборов данных и текущего поколения
func (uc *LayerUseCase) Status() *dto.StatusResponse {
	uc.mu.RLock()
	current := uc.current
	settings := uc.settings
	uc.mu.RUnlock()

	resp := &dto.StatusResponse{
		Datasets: uc.store.Statuses(),
		Settings: settings,
	}
	if current != nil {
		computedAt := current.ComputedAt
		resp.Ready = true
		resp.LayerSetID = current.ID.String()
		resp.Generation = current.Generation
		resp.ComputedAt = &computedAt
	}
	return resp
}

func applySettingsPatch(s domain.Settings, req dto.UpdateSettingsRequest) domain.Settings {
	if req.Resolution != nil {
		s.Resolution = *req.Resolution
	}
	if req.PopulationNormalizer != nil {
		s.PopulationNormalizer = *req.PopulationNormalizer
	}
	if req.TopK != nil {
		s.TopK = *req.TopK
	}
	if req.Scale != nil {
		if req.Scale.EntertainmentPopulation != nil {
			s.Scale.EntertainmentPopulation = *req.Scale.EntertainmentPopulation
		}
		if req.Scale.VehiclePopulation != nil {
			s.Scale.VehiclePopulation = *req.Scale.VehiclePopulation
		}
		if req.Scale.EntertainmentVehicle != nil {
			s.Scale.EntertainmentVehicle = *req.Scale.EntertainmentVehicle
		}
	}
	return s
}

func validateSettings(s domain.Settings) error {
	if err := validator.Validate(s); err != nil {
		return errors.ErrInvalidSettings.WithDetails(validator.FieldErrors(err))
	}
	if !s.Finite() {
		return errors.ErrInvalidSettings.WithDetails(map[string]interface{}{
			"settings": "population_normalizer and scale factors must be finite",
		})
	}
	return nil
}
