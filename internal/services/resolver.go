package services

import (
	"context"
	"fmt"
	"math"

	"mileage-report-service/internal/domain"
	"mileage-report-service/internal/ports"
)

// Resolver derives a RouteOutcome for one day's itinerary by delegating to
// the routing provider and classifying the response.
type Resolver struct {
	Provider ports.RouteProvider
	Unit     domain.DistanceUnit
}

// Resolve classifies a day's route.
//
//   - fewer than 2 stops: the no-route sentinel, with no external call (a
//     single-stop day has nothing to measure)
//   - ZERO_RESULTS: the sentinel (the caller records a route error)
//   - any other non-OK status: an error that aborts the run; a malfunctioning
//     service must not silently produce wrong totals
//   - OK: summed leg distances converted to the configured unit and rounded
//     to two decimals, plus per-leg end-address descriptions
//
// The map link is built from the same coordinates in every case, since it is
// a static URL template rather than an API result.
func (r *Resolver) Resolve(ctx context.Context, itinerary domain.DayItinerary) (domain.RouteOutcome, error) {
	coords := itinerary.Coordinates()
	link := r.Provider.MapLink(coords)

	if len(coords) < 2 {
		return domain.RouteOutcome{MapLink: link}, nil
	}

	res, err := r.Provider.ResolveRoute(ctx, coords)
	if err != nil {
		return domain.RouteOutcome{}, fmt.Errorf("resolve route for %s: %w", itinerary.Date, err)
	}

	switch res.Status {
	case ports.StatusOK:
		// fall through to distance extraction
	case ports.StatusZeroResults:
		return domain.RouteOutcome{MapLink: link}, nil
	default:
		return domain.RouteOutcome{}, fmt.Errorf(
			"resolve route for %s: routing service status %q", itinerary.Date, res.Status,
		)
	}

	var meters float64
	descriptions := make([]string, 0, len(res.Legs))
	for _, leg := range res.Legs {
		meters += leg.DistanceMeters
		if leg.EndAddress != "" {
			descriptions = append(descriptions, leg.EndAddress)
		}
	}

	return domain.RouteOutcome{
		TotalDistance:   round2(r.Unit.FromMeters(meters)),
		LegDescriptions: descriptions,
		MapLink:         link,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
