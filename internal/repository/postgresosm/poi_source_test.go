package postgresosm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transit-density/internal/density"
	"github.com/transit-density/internal/domain"
)

func TestPOIRow_ToRecord(t *testing.T) {
	row := poiRow{OSMID: 99, Name: "", Amenity: "theatre", Lat: 45.4259, Lon: -75.6930}

	records := []domain.Record{row.toRecord()}
	points, err := density.LoadPoints(records, domain.CategoryEntertainment, density.LoadOptions{})

	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 45.4259, points[0].Lat)
	assert.Equal(t, -75.6930, points[0].Lon)
	name, _ := records[0].Get("name")
	assert.Equal(t, "Theatre 99", name)
}

func TestPOISource_Load(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)
	skipIfNoOSMData(t, db)

	src := NewPOISource(db, []string{"bar", "pub", "cinema"})
	records, err := src.Load(context.Background())
	require.NoError(t, err)

	points, err := density.LoadPoints(records, domain.CategoryEntertainment, density.LoadOptions{})
	require.NoError(t, err)
	assert.Len(t, points, len(records))
}
