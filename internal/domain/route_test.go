package domain

import "testing"

func TestDistanceUnitFromMeters(t *testing.T) {
	if got := UnitKilometers.FromMeters(3500); got != 3.5 {
		t.Fatalf("km from 3500m = %v, want 3.5", got)
	}

	got := UnitMiles.FromMeters(1609.344)
	if got < 0.99999 || got > 1.00001 {
		t.Fatalf("mi from 1609.344m = %v, want ~1.0", got)
	}
}

func TestRouteOutcomeNoRoute(t *testing.T) {
	sentinel := RouteOutcome{MapLink: "https://example.com"}
	if !sentinel.NoRoute() {
		t.Fatal("zero distance with no legs should be the no-route sentinel")
	}

	resolved := RouteOutcome{TotalDistance: 3.5, LegDescriptions: []string{"456 St"}}
	if resolved.NoRoute() {
		t.Fatal("resolved route must not read as the sentinel")
	}
}

func TestCoordinatesString(t *testing.T) {
	c := Coordinates{Lat: 10.5, Lng: -20.25}
	if got := c.String(); got != "10.5,-20.25" {
		t.Fatalf("String() = %q, want %q", got, "10.5,-20.25")
	}
}
