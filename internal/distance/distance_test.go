package distance

import "testing"

func TestSameAreaIsZero(t *testing.T) {
	table := Default()
	if km := table.DistanceKm("Colombo 3", "Colombo 3"); km != 0 {
		t.Fatalf("expected 0 km within an area, got %v", km)
	}
}

func TestPairIsSymmetric(t *testing.T) {
	table := Default()
	ab := table.DistanceKm("Colombo 3", "Nugegoda")
	ba := table.DistanceKm("Nugegoda", "Colombo 3")
	if ab != 8.5 {
		t.Fatalf("expected 8.5 km Colombo 3 to Nugegoda, got %v", ab)
	}
	if ab != ba {
		t.Fatalf("expected symmetric distance, got %v and %v", ab, ba)
	}
}

func TestUnknownOrEmptyAreaFallsBack(t *testing.T) {
	table := Default()
	if km := table.DistanceKm("Colombo 3", "Atlantis"); km != DefaultKm {
		t.Fatalf("expected fallback %v km for unknown area, got %v", DefaultKm, km)
	}
	if km := table.DistanceKm("", "Colombo 3"); km != DefaultKm {
		t.Fatalf("expected fallback %v km for empty area, got %v", DefaultKm, km)
	}
}

func TestServedAreas(t *testing.T) {
	if !Served("Dehiwala") {
		t.Fatalf("expected Dehiwala to be served")
	}
	if Served("Jaffna") {
		t.Fatalf("expected Jaffna to be outside the zone")
	}

	areas := Areas()
	if len(areas) == 0 {
		t.Fatalf("expected a non-empty area list")
	}
	for _, a := range areas {
		if a.Name == "" || a.PostalCode == "" {
			t.Fatalf("area with missing name or postal code: %+v", a)
		}
	}
}
