package postgresosm

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/transit-density/internal/config"
	"go.uber.org/zap"
)

// testDBConfig reads OSM_DB_* or falls back to a local osm2pgsql import
func testDBConfig() *config.DatabaseConfig {
	port, err := strconv.Atoi(getEnv("OSM_DB_PORT", "5435"))
	if err != nil {
		port = 5435
	}
	return &config.DatabaseConfig{
		Host:     getEnv("OSM_DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("OSM_DB_USER", "osmuser"),
		Password: getEnv("OSM_DB_PASSWORD", "osmpass"),
		DBName:   getEnv("OSM_DB_NAME", "osm"),
		SSLMode:  getEnv("OSM_DB_SSLMODE", "disable"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupTestDB connects to the OSM test database or skips the test when it is unreachable
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := sqlx.Open("pgx", DSN(testDBConfig()))
	if err != nil {
		t.Skipf("OSM database not available: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("OSM database not available: %v", err)
	}

	return NewDBForTest(db, zap.NewNop())
}

func teardownTestDB(t *testing.T, db *DB) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close test database: %v", err)
	}
}

// skipIfNoOSMData skips the test if the import has no point table
func skipIfNoOSMData(t *testing.T, db *DB) {
	t.Helper()

	var exists bool
	if err := db.GetContext(context.Background(), &exists, `SELECT to_regclass($1) IS NOT NULL`, planetPointTable); err != nil || !exists {
		t.Skipf("OSM data not available: %v", err)
	}
}
