package postgresosm

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/transit-density/internal/density"
	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/domain/repository"
	"go.uber.org/zap"
)

var poiQuery = fmt.Sprintf(`
	SELECT
		osm_id,
		COALESCE(name, '') AS name,
		amenity,
		ST_Y(ST_Transform(way, %d)) AS lat,
		ST_X(ST_Transform(way, %d)) AS lon
	FROM %s
	WHERE amenity = ANY($1)
	LIMIT %d
`, SRID4326, SRID4326, planetPointTable, LimitPOIs)

type poiRow struct {
	OSMID   int64   `db:"osm_id"`
	Name    string  `db:"name"`
	Amenity string  `db:"amenity"`
	Lat     float64 `db:"lat"`
	Lon     float64 `db:"lon"`
}

func (r poiRow) toRecord() domain.Record {
	return domain.Record{
		density.FieldName:      ensureName(r.Name, r.Amenity, r.OSMID),
		density.FieldLatitude:  formatCoord(r.Lat),
		density.FieldLongitude: formatCoord(r.Lon),
	}
}

type poiSource struct {
	db        *sqlx.DB
	amenities []string
	logger    *zap.Logger
}

// NewPOISource создает источник развлекательных POI из planet_osm_point
func NewPOISource(db *DB, amenities []string) repository.RecordSource {
	return &poiSource{
		db:        db.DB,
		amenities: amenities,
		logger:    db.logger,
	}
}

func (s *poiSource) Name() string {
	return "postgres:" + planetPointTable
}

func (s *poiSource) Load(ctx context.Context) ([]domain.Record, error) {
	var rows []poiRow
	if err := s.db.SelectContext(ctx, &rows, poiQuery, pq.Array(s.amenities)); err != nil {
		s.logger.Error("failed to load osm pois", zap.Strings("amenities", s.amenities), zap.Error(err))
		return nil, fmt.Errorf("select osm pois: %w", err)
	}

	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}

	s.logger.Info("OSM POIs loaded",
		zap.Int("count", len(records)),
		zap.Strings("amenities", s.amenities))

	return records, nil
}
