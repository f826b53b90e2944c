package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/pkg/validator"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
	Pipeline PipelineConfig
	Datasets DatasetsConfig
	Feed     FeedConfig
	OSMDB    DatabaseConfig
}

type ServerConfig struct {
	Host        string
	Port        int `validate:"min=1,max=65535"`
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	LayerCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled bool
}

// PipelineConfig - параметры агрегации по умолчанию; меняются в рантайме через /settings
type PipelineConfig struct {
	Settings domain.Settings
	Debounce time.Duration `validate:"min=0"`
}

type DatasetsConfig struct {
	PopulationCSV    string
	POICSV           string
	VehicleCSV       string
	POISource        string `validate:"oneof=csv postgres"`
	POIAmenities     []string
	PopulationBounds *domain.BoundingBox
	LoadBatchSize    int `validate:"min=1"`
}

type FeedConfig struct {
	Enabled      bool
	BaseURL      string
	APIKey       string
	PollInterval time.Duration
	Timeout      time.Duration
}

// Значения по умолчанию
const (
	DefaultResolution           = 8
	DefaultPopulationNormalizer = 5.0
	DefaultTopK                 = 10
	DefaultPopulationBBox       = "45.20,-76.10,45.60,-75.40"
	DefaultFeedBaseURL          = "https://nextrip-public-api.azure-api.net/octranspo/gtfs-rt-vp/beta/v1"
)

func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из env-файла и переменных окружения.
// Отсутствующий файл не является ошибкой: всё можно задать через окружение.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	bounds, err := domain.ParseBoundingBox(v.GetString("POPULATION_BBOX"))
	if err != nil {
		return nil, fmt.Errorf("invalid POPULATION_BBOX: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			LayerCacheTTL: time.Duration(v.GetInt("LAYER_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled: v.GetBool("WORKER_ENABLED"),
		},
		Pipeline: PipelineConfig{
			Settings: domain.Settings{
				Resolution:           v.GetInt("RESOLUTION"),
				PopulationNormalizer: v.GetFloat64("POPULATION_NORMALIZER"),
				TopK:                 v.GetInt("TOP_K"),
				Scale: domain.ScaleFactors{
					EntertainmentPopulation: v.GetFloat64("SCALE_ENTERTAINMENT_POPULATION"),
					VehiclePopulation:       v.GetFloat64("SCALE_VEHICLE_POPULATION"),
					EntertainmentVehicle:    v.GetFloat64("SCALE_ENTERTAINMENT_VEHICLE"),
				},
			},
			Debounce: time.Duration(v.GetInt("PIPELINE_DEBOUNCE")) * time.Millisecond,
		},
		Datasets: DatasetsConfig{
			PopulationCSV:    v.GetString("POPULATION_CSV"),
			POICSV:           v.GetString("POI_CSV"),
			VehicleCSV:       v.GetString("VEHICLE_CSV"),
			POISource:        strings.ToLower(v.GetString("POI_SOURCE")),
			POIAmenities:     parseList(v.GetString("POI_AMENITIES")),
			PopulationBounds: bounds,
			LoadBatchSize:    v.GetInt("LOAD_BATCH_SIZE"),
		},
		Feed: FeedConfig{
			Enabled:      v.GetBool("FEED_ENABLED"),
			BaseURL:      strings.TrimRight(v.GetString("FEED_BASE_URL"), "/"),
			APIKey:       v.GetString("FEED_API_KEY"),
			PollInterval: time.Duration(v.GetInt("FEED_POLL_INTERVAL")) * time.Second,
			Timeout:      time.Duration(v.GetInt("FEED_TIMEOUT")) * time.Second,
		},
		OSMDB: DatabaseConfig{
			Host:            v.GetString("OSM_DB_HOST"),
			Port:            v.GetInt("OSM_DB_PORT"),
			User:            v.GetString("OSM_DB_USER"),
			Password:        v.GetString("OSM_DB_PASSWORD"),
			DBName:          v.GetString("OSM_DB_NAME"),
			SSLMode:         v.GetString("OSM_DB_SSLMODE"),
			MaxConns:        v.GetInt("OSM_DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("OSM_DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("OSM_DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("OSM_DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
	}

	if len(cfg.Datasets.POIAmenities) == 0 {
		cfg.Datasets.POIAmenities = []string{"bar", "pub", "nightclub", "cinema", "theatre", "restaurant", "cafe"}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("LAYER_CACHE_TTL", 300)

	v.SetDefault("RESOLUTION", DefaultResolution)
	v.SetDefault("POPULATION_NORMALIZER", DefaultPopulationNormalizer)
	v.SetDefault("TOP_K", DefaultTopK)
	v.SetDefault("SCALE_ENTERTAINMENT_POPULATION", 4.0)
	v.SetDefault("SCALE_VEHICLE_POPULATION", 1.0)
	v.SetDefault("SCALE_ENTERTAINMENT_VEHICLE", 2.0)
	v.SetDefault("PIPELINE_DEBOUNCE", 500)

	v.SetDefault("POPULATION_CSV", "data/population.csv")
	v.SetDefault("POI_CSV", "data/entertainment.csv")
	v.SetDefault("POI_SOURCE", "csv")
	v.SetDefault("POPULATION_BBOX", DefaultPopulationBBox)
	v.SetDefault("LOAD_BATCH_SIZE", 50000)

	v.SetDefault("FEED_ENABLED", true)
	v.SetDefault("FEED_BASE_URL", DefaultFeedBaseURL)
	v.SetDefault("FEED_POLL_INTERVAL", 20)
	v.SetDefault("FEED_TIMEOUT", 10)

	v.SetDefault("OSM_DB_HOST", "localhost")
	v.SetDefault("OSM_DB_PORT", 5432)
	v.SetDefault("OSM_DB_SSLMODE", "disable")
	v.SetDefault("OSM_DB_MAX_CONNS", 5)
	v.SetDefault("OSM_DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("OSM_DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("OSM_DB_CONN_MAX_IDLE_TIME", 60)
}

// Validate проверяет конфигурацию до запуска конвейера
func (c *Config) Validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if !c.Pipeline.Settings.Finite() {
		return fmt.Errorf("invalid config: POPULATION_NORMALIZER and SCALE_* must be finite")
	}

	if c.Feed.Enabled {
		if c.Feed.BaseURL == "" {
			return fmt.Errorf("invalid config: FEED_BASE_URL is required when the feed is enabled")
		}
		if c.Feed.PollInterval <= 0 {
			return fmt.Errorf("invalid config: FEED_POLL_INTERVAL must be positive")
		}
	} else if c.Datasets.VehicleCSV == "" {
		return fmt.Errorf("invalid config: VEHICLE_CSV is required when the feed is disabled")
	}

	if c.Datasets.POISource == "csv" && c.Datasets.POICSV == "" {
		return fmt.Errorf("invalid config: POI_CSV is required when POI_SOURCE=csv")
	}
	if c.Datasets.PopulationCSV == "" {
		return fmt.Errorf("invalid config: POPULATION_CSV is required")
	}

	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
