package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mileage-report-service/internal/adapters/gmaps"
	"mileage-report-service/internal/domain"
	"mileage-report-service/internal/ports"
)

// memTableStore keeps tables in memory for pipeline tests.
type memTableStore struct {
	tables map[string][][]string
	writes int
}

func newMemTableStore() *memTableStore {
	return &memTableStore{tables: map[string][][]string{}}
}

func (m *memTableStore) ReadTable(ctx context.Context, name string) ([][]string, error) {
	return m.tables[name], nil
}

func (m *memTableStore) WriteTable(ctx context.Context, name string, rows [][]string) error {
	m.writes++
	m.tables[name] = rows
	return nil
}

type captureRenderer struct {
	report *domain.Report
}

func (c *captureRenderer) Render(ctx context.Context, report *domain.Report) error {
	c.report = report
	return nil
}

func testPipeline(store *memTableStore, provider ports.RouteProvider, lookup ports.PlaceLookup) (*Pipeline, *captureRenderer) {
	renderer := &captureRenderer{}
	return &Pipeline{
		Tables:   store,
		Lookup:   lookup,
		Routes:   provider,
		Renderer: renderer,
		Logger:   zap.NewNop(),
		Config: Config{
			SourceTable:   "locations_log",
			TargetTable:   "mileage_log",
			Unit:          domain.UnitKilometers,
			SortDirection: SortAscending,
			Normalize:     NormalizeOptions{BackfillPlaceIDs: true},
		},
	}, renderer
}

func TestPipelineEndToEnd(t *testing.T) {
	store := newMemTableStore()
	store.tables["locations_log"] = [][]string{
		{"Date", "Order", "Latitude", "Longitude", "Business", "Address", "Place ID"},
		{"2024-05-01", "1", "10.0", "20.0", "A", "123 St", "pid1"},
		{"2024-05-01", "2", "10.1", "20.1", "B", "456 St", "pid2"},
	}

	provider := &gmaps.MockRouteProvider{
		Result: ports.RouteResult{
			Status: ports.StatusOK,
			Legs:   []ports.RouteLeg{{DistanceMeters: 2000, EndAddress: "456 St"}},
		},
	}

	pipeline, renderer := testPipeline(store, provider, &gmaps.MockPlaceLookup{})

	report, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.Equal(t, "2024-05-01", row.Date)
	assert.Equal(t, 2.00, row.Distance)
	assert.Contains(t, row.RouteHTML, "123 St")
	assert.Contains(t, row.RouteHTML, "456 St")
	assert.Contains(t, row.NotesHTML, "<li>A</li>")
	assert.NotEmpty(t, row.MapLink)
	assert.Empty(t, report.StructuralErrors)
	assert.Empty(t, report.RouteErrors)

	// One routing call per date.
	assert.Equal(t, 1, provider.Calls)

	// The renderer received the same three-part payload.
	require.NotNil(t, renderer.report)
	assert.Equal(t, report, renderer.report)

	// Source write-back plus the target-table report write.
	assert.Equal(t, 2, store.writes)
	target := store.tables["mileage_log"]
	require.Len(t, target, 2)
	assert.Equal(t, []string{"Date", "KILOMETERS", "Route", "Link"}, target[0])
	assert.Equal(t, "2.00", target[1][1])
}

func TestPipelineWritesBackBackfilledIdentifier(t *testing.T) {
	store := newMemTableStore()
	store.tables["locations_log"] = [][]string{
		{"Date", "Order", "Latitude", "Longitude", "Business", "Address"},
		{"2024-05-01", "1", "10", "20", "A", "123 St"},
		{"2024-05-01", "2", "10.1", "20.1", "B", "456 St"},
	}

	lookup := &gmaps.MockPlaceLookup{
		PlaceIDs: map[string]string{
			gmaps.MockCoordKey(10, 20):     "pid-a",
			gmaps.MockCoordKey(10.1, 20.1): "pid-b",
		},
	}
	provider := &gmaps.MockRouteProvider{
		Result: ports.RouteResult{
			Status: ports.StatusOK,
			Legs:   []ports.RouteLeg{{DistanceMeters: 1500, EndAddress: "456 St"}},
		},
	}

	pipeline, _ := testPipeline(store, provider, lookup)

	_, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	source := store.tables["locations_log"]
	require.Len(t, source, 3)
	assert.Equal(t, "pid-a", source[1][6])
	assert.Equal(t, "pid-b", source[2][6])
}

func TestPipelineRouteErrorsDoNotAbortRun(t *testing.T) {
	store := newMemTableStore()
	store.tables["locations_log"] = [][]string{
		{"Date", "Order", "Latitude", "Longitude", "Business", "Address", "Place ID"},
		{"2024-05-01", "1", "10", "20", "A", "123 St", "pid1"},
		{"2024-05-01", "2", "10.1", "20.1", "B", "456 St", "pid2"},
	}

	provider := &gmaps.MockRouteProvider{
		Result: ports.RouteResult{Status: ports.StatusZeroResults},
	}

	pipeline, _ := testPipeline(store, provider, &gmaps.MockPlaceLookup{})

	report, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Rows)
	assert.Len(t, report.RouteErrors, 2)
}

func TestPipelineEmptyTableFails(t *testing.T) {
	pipeline, _ := testPipeline(newMemTableStore(), &gmaps.MockRouteProvider{}, &gmaps.MockPlaceLookup{})

	_, err := pipeline.Run(context.Background())
	require.Error(t, err)
}
