package octranspo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transit-density/internal/config"
	"github.com/transit-density/internal/density"
	"github.com/transit-density/internal/domain"
	"go.uber.org/zap"
)

const feedFixture = `{
  "Header": {"GtfsRealtimeVersion": "2.0", "Timestamp": 1718900000},
  "Entity": [
    {"Id": "e1", "Vehicle": {"Vehicle": {"Id": "4301", "Label": "95"}, "Position": {"Latitude": 45.4215, "Longitude": -75.6972, "Bearing": 90}, "Timestamp": 1718899990}},
    {"Id": "e2", "Vehicle": {"Position": {"Latitude": 45.3876, "Longitude": -75.6960}}},
    {"Id": "e3", "Vehicle": {"Vehicle": {"Id": "4410"}, "Position": {"Bearing": 10}}},
    {"Id": "e4"}
  ]
}`

func newTestClient(url, key string) *client {
	cfg := &config.FeedConfig{
		BaseURL: url,
		APIKey:  key,
		Timeout: 5 * time.Second,
	}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func TestClient_FetchVehiclePositions(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/VehiclePositions", r.URL.Path)
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "secret", r.Header.Get("Ocp-Apim-Subscription-Key"))
			assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(feedFixture))
		}))
		defer server.Close()

		records, err := newTestClient(server.URL, "secret").FetchVehiclePositions(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 4)

		id, _ := records[0].Get(density.FieldVehicleID)
		assert.Equal(t, "4301", id)
		id, _ = records[1].Get(density.FieldVehicleID)
		assert.Equal(t, "e2", id)
		lat, _ := records[2].Get(density.FieldLatitude)
		assert.Empty(t, lat)

		points, err := density.LoadPoints(records, domain.CategoryVehicle, density.LoadOptions{})
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, 45.4215, points[0].Lat)
		assert.Equal(t, -75.6972, points[0].Lon)
	})

	t.Run("no api key header when key is empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, present := r.Header["Ocp-Apim-Subscription-Key"]
			assert.False(t, present)
			_, _ = w.Write([]byte(`{"Entity": []}`))
		}))
		defer server.Close()

		records, err := newTestClient(server.URL, "").FetchVehiclePositions(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"statusCode": 401, "message": "Access denied"}`))
		}))
		defer server.Close()

		records, err := newTestClient(server.URL, "bad").FetchVehiclePositions(context.Background())
		assert.Error(t, err)
		assert.Nil(t, records)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, "secret").FetchVehiclePositions(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(feedFixture))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestClient(server.URL, "secret").FetchVehiclePositions(ctx)
		assert.Error(t, err)
	})
}
