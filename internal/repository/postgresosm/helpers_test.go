package postgresosm

import "testing"

func TestEnsureName(t *testing.T) {
	tests := []struct {
		name     string
		amenity  string
		osmID    int64
		expected string
	}{
		{"  Mercury Lounge ", "bar", 1, "Mercury Lounge"},
		{"", "cinema", 42, "Cinema 42"},
		{" ", "", 7, "Poi 7"},
	}

	for _, tt := range tests {
		if got := ensureName(tt.name, tt.amenity, tt.osmID); got != tt.expected {
			t.Fatalf("ensureName(%q, %q, %d) expected %q, got %q", tt.name, tt.amenity, tt.osmID, tt.expected, got)
		}
	}
}

func TestFormatCoord(t *testing.T) {
	if got := formatCoord(-75.695); got != "-75.695" {
		t.Fatalf("formatCoord expected -75.695, got %s", got)
	}
}
