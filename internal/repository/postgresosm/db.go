package postgresosm

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/transit-density/internal/config"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// DB - подключение к импорту OSM (osm2pgsql), из которого берутся точки развлечений
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New открывает пул, проверяет соединение и наличие таблицы точек
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Open("pgx", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open osm database: %w", err)
	}
	configurePool(db, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping osm database %s: %w", cfg.DBName, err)
	}

	var hasPoints bool
	if err := db.GetContext(ctx, &hasPoints, `SELECT to_regclass($1) IS NOT NULL`, planetPointTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("check %s: %w", planetPointTable, err)
	}
	if !hasPoints {
		db.Close()
		return nil, fmt.Errorf("table %s not found in %s, import an OSM extract with osm2pgsql", planetPointTable, cfg.DBName)
	}

	logger.Info("OSM PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Int("max_conns", cfg.MaxConns),
	)

	return &DB{DB: db, logger: logger}, nil
}

// DSN собирает строку подключения в формате key=value. Пустые значения пропускаются.
func DSN(cfg *config.DatabaseConfig) string {
	parts := make([]string, 0, 7)
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}

	add("host", cfg.Host)
	if cfg.Port > 0 {
		add("port", fmt.Sprint(cfg.Port))
	}
	add("user", cfg.User)
	add("password", cfg.Password)
	add("dbname", cfg.DBName)
	add("sslmode", cfg.SSLMode)
	add("connect_timeout", fmt.Sprint(int(connectTimeout.Seconds())))

	return strings.Join(parts, " ")
}

// выгрузка POI - один долгий запрос при старте, большой пул не нужен
func configurePool(db *sqlx.DB, cfg *config.DatabaseConfig) {
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

// Close закрывает пул
func (db *DB) Close() error {
	db.logger.Info("Closing OSM PostgreSQL connection")
	return db.DB.Close()
}

// Health проверяет соединение для /health
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest оборачивает готовое соединение
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{DB: sqlxDB, logger: logger}
}
