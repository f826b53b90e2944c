package postgresosm

import (
	"strconv"
	"strings"
)

func ensureName(name string, amenity string, osmID int64) string {
	if strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	if amenity == "" {
		amenity = "poi"
	}
	return strings.ToUpper(amenity[:1]) + amenity[1:] + " " + strconv.FormatInt(osmID, 10)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
