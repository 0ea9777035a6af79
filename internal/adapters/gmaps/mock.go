package gmaps

import (
	"context"
	"strings"

	"mileage-report-service/internal/domain"
	"mileage-report-service/internal/ports"
)

// MockRouteProvider serves canned routing results in tests and counts calls
// so tests can assert the no-call contracts (single-stop days, sentinel
// short-circuits).
type MockRouteProvider struct {
	Result ports.RouteResult
	Err    error
	Calls  int
}

func (m *MockRouteProvider) ResolveRoute(ctx context.Context, coords []domain.Coordinates) (ports.RouteResult, error) {
	m.Calls++
	if m.Err != nil {
		return ports.RouteResult{}, m.Err
	}
	return m.Result, nil
}

func (m *MockRouteProvider) MapLink(coords []domain.Coordinates) string {
	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		parts = append(parts, c.String())
	}
	return "mock://route/" + strings.Join(parts, "|")
}

// MockPlaceLookup maps "lat,lng" keys to place identifiers and addresses to
// coordinates. Missing keys produce not-found results, mirroring the real
// adapter's fail-open behavior.
type MockPlaceLookup struct {
	PlaceIDs map[string]string
	Coords   map[string]domain.Coordinates
	Err      error

	PlaceIDCalls int
	CoordsCalls  int
}

func (m *MockPlaceLookup) PlaceIDByCoords(ctx context.Context, lat, lng float64) (ports.LookupResult, error) {
	m.PlaceIDCalls++
	if m.Err != nil {
		return ports.LookupResult{}, m.Err
	}

	key := domain.Coordinates{Lat: lat, Lng: lng}.String()
	id, ok := m.PlaceIDs[key]
	if !ok {
		return ports.LookupResult{}, nil
	}
	return ports.LookupResult{Found: true, PlaceID: id}, nil
}

func (m *MockPlaceLookup) CoordsByAddress(ctx context.Context, address string) (ports.CoordsResult, error) {
	m.CoordsCalls++
	if m.Err != nil {
		return ports.CoordsResult{}, m.Err
	}

	c, ok := m.Coords[address]
	if !ok {
		return ports.CoordsResult{}, nil
	}
	return ports.CoordsResult{Found: true, Lat: c.Lat, Lng: c.Lng}, nil
}

var _ ports.RouteProvider = (*MockRouteProvider)(nil)
var _ ports.PlaceLookup = (*MockPlaceLookup)(nil)

// MockCoordKey builds the PlaceIDs map key for a coordinate pair, e.g.
// "10,20".
func MockCoordKey(lat, lng float64) string {
	return domain.Coordinates{Lat: lat, Lng: lng}.String()
}
