package postgresosm

const (
	SRID4326 = 4326

	// LimitPOIs - верхняя граница строк за одну выгрузку POI
	LimitPOIs = 500000
)

const (
	planetPointTable = "planet_osm_point"
)
