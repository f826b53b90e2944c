package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Pipeline.Settings.Resolution)
	assert.Equal(t, 5.0, cfg.Pipeline.Settings.PopulationNormalizer)
	assert.Equal(t, 10, cfg.Pipeline.Settings.TopK)
	assert.Equal(t, 4.0, cfg.Pipeline.Settings.Scale.EntertainmentPopulation)
	assert.Equal(t, 500*time.Millisecond, cfg.Pipeline.Debounce)
	assert.Equal(t, 20*time.Second, cfg.Feed.PollInterval)
	assert.True(t, cfg.Feed.Enabled)
	require.NotNil(t, cfg.Datasets.PopulationBounds)
	assert.True(t, cfg.Datasets.PopulationBounds.Contains(45.424721, -75.695))
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("RESOLUTION", "6")
	t.Setenv("TOP_K", "0")
	t.Setenv("POPULATION_BBOX", "")
	t.Setenv("POI_AMENITIES", "bar, cinema ,")
	t.Setenv("FEED_API_KEY", "secret")

	cfg, err := LoadFile(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Pipeline.Settings.Resolution)
	assert.Equal(t, 0, cfg.Pipeline.Settings.TopK)
	assert.Nil(t, cfg.Datasets.PopulationBounds)
	assert.Equal(t, []string{"bar", "cinema"}, cfg.Datasets.POIAmenities)
	assert.Equal(t, "secret", cfg.Feed.APIKey)
}

func TestLoadFile_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("POPULATION_NORMALIZER=2.5\nAPI_PORT=9090\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.Pipeline.Settings.PopulationNormalizer)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadFile_FailsFast(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"resolution too high", "RESOLUTION", "16"},
		{"negative top k", "TOP_K", "-1"},
		{"zero normalizer", "POPULATION_NORMALIZER", "0"},
		{"zero scale", "SCALE_VEHICLE_POPULATION", "0"},
		{"broken bbox", "POPULATION_BBOX", "45,-75"},
		{"unknown poi source", "POI_SOURCE", "overpass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			cfg, err := LoadFile(missingEnvFile(t))

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadFile_VehicleCSVRequiredWithoutFeed(t *testing.T) {
	t.Setenv("FEED_ENABLED", "false")

	_, err := LoadFile(missingEnvFile(t))
	assert.Error(t, err)

	t.Setenv("VEHICLE_CSV", "data/vehicles.csv")
	cfg, err := LoadFile(missingEnvFile(t))
	require.NoError(t, err)
	assert.False(t, cfg.Feed.Enabled)
}
