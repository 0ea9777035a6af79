package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mileage-report-service/internal/adapters/gmaps"
	"mileage-report-service/internal/domain"
	"mileage-report-service/internal/ports"
)

func twoStopDay() domain.DayItinerary {
	return domain.DayItinerary{
		Date: "2024-05-01",
		Stops: []domain.StopRecord{
			{Sequence: 1, Latitude: 10.0, Longitude: 20.0},
			{Sequence: 2, Latitude: 10.1, Longitude: 20.1},
		},
	}
}

func TestResolveSingleStopSkipsProvider(t *testing.T) {
	provider := &gmaps.MockRouteProvider{}
	resolver := &Resolver{Provider: provider, Unit: domain.UnitKilometers}

	day := domain.DayItinerary{
		Date:  "2024-05-01",
		Stops: []domain.StopRecord{{Sequence: 1, Latitude: 10, Longitude: 20}},
	}

	outcome, err := resolver.Resolve(context.Background(), day)
	require.NoError(t, err)

	assert.True(t, outcome.NoRoute())
	assert.Equal(t, 0, provider.Calls, "single-stop day must not call the routing service")
	assert.NotEmpty(t, outcome.MapLink)
}

func TestResolveSumsLegsInKilometers(t *testing.T) {
	provider := &gmaps.MockRouteProvider{
		Result: ports.RouteResult{
			Status: ports.StatusOK,
			Legs: []ports.RouteLeg{
				{DistanceMeters: 1000, EndAddress: "123 St"},
				{DistanceMeters: 2500, EndAddress: "456 St"},
			},
		},
	}
	resolver := &Resolver{Provider: provider, Unit: domain.UnitKilometers}

	outcome, err := resolver.Resolve(context.Background(), twoStopDay())
	require.NoError(t, err)

	assert.Equal(t, 3.50, outcome.TotalDistance)
	assert.Equal(t, []string{"123 St", "456 St"}, outcome.LegDescriptions)
	assert.Equal(t, 1, provider.Calls)
}

func TestResolveConvertsToMiles(t *testing.T) {
	provider := &gmaps.MockRouteProvider{
		Result: ports.RouteResult{
			Status: ports.StatusOK,
			Legs:   []ports.RouteLeg{{DistanceMeters: 16093.44, EndAddress: "end"}},
		},
	}
	resolver := &Resolver{Provider: provider, Unit: domain.UnitMiles}

	outcome, err := resolver.Resolve(context.Background(), twoStopDay())
	require.NoError(t, err)
	assert.Equal(t, 10.00, outcome.TotalDistance)
}

func TestResolveZeroResultsIsSentinelNotError(t *testing.T) {
	provider := &gmaps.MockRouteProvider{
		Result: ports.RouteResult{Status: ports.StatusZeroResults},
	}
	resolver := &Resolver{Provider: provider, Unit: domain.UnitKilometers}

	outcome, err := resolver.Resolve(context.Background(), twoStopDay())
	require.NoError(t, err)

	assert.True(t, outcome.NoRoute())
	assert.NotEmpty(t, outcome.MapLink, "map link is a static template, built regardless of routing outcome")
}

func TestResolveUnknownStatusIsFatal(t *testing.T) {
	provider := &gmaps.MockRouteProvider{
		Result: ports.RouteResult{Status: "OVER_QUERY_LIMIT"},
	}
	resolver := &Resolver{Provider: provider, Unit: domain.UnitKilometers}

	_, err := resolver.Resolve(context.Background(), twoStopDay())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OVER_QUERY_LIMIT")
	assert.Contains(t, err.Error(), "2024-05-01")
}
