package octranspo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/transit-density/internal/config"
	"github.com/transit-density/internal/density"
	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	vehiclePositionsPath = "/VehiclePositions?format=json"
	subscriptionHeader   = "Ocp-Apim-Subscription-Key"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient создает клиент GTFS-RT фида позиций OC Transpo
func NewClient(cfg *config.FeedConfig, logger *zap.Logger) repository.VehicleFeedRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// FetchVehiclePositions запрашивает текущий снимок позиций транспорта
func (c *client) FetchVehiclePositions(ctx context.Context) ([]domain.Record, error) {
	url := c.baseURL + vehiclePositionsPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(subscriptionHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Vehicle feed returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("vehicle feed error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var feed domain.VehiclePositionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	records := toRecords(feed.Entity)

	c.logger.Debug("Vehicle feed call successful",
		zap.Int("entities", len(feed.Entity)),
		zap.Int("records", len(records)))

	return records, nil
}

// toRecords оставляет координаты пустыми, если их нет в фиде; такие записи отбросит загрузчик
func toRecords(entities []domain.VehicleEntity) []domain.Record {
	records := make([]domain.Record, 0, len(entities))
	for _, e := range entities {
		id := e.ID
		var lat, lon string

		if v := e.Vehicle; v != nil {
			if v.Vehicle != nil && v.Vehicle.ID != "" {
				id = v.Vehicle.ID
			}
			if pos := v.Position; pos != nil && pos.Latitude != nil && pos.Longitude != nil {
				lat = strconv.FormatFloat(*pos.Latitude, 'f', -1, 64)
				lon = strconv.FormatFloat(*pos.Longitude, 'f', -1, 64)
			}
		}

		records = append(records, domain.Record{
			density.FieldVehicleID: id,
			density.FieldLatitude:  lat,
			density.FieldLongitude: lon,
		})
	}
	return records
}
