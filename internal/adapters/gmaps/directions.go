package gmaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"mileage-report-service/internal/domain"
	"mileage-report-service/internal/ports"
)

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			EndAddress string `json:"end_address"`
		} `json:"legs"`
	} `json:"routes"`
}

// ResolveRoute fetches a driving route over the coordinate sequence from the
// Directions API (/maps/api/directions/json). Origin is the first pair,
// destination the last, everything between a waypoint in given order.
//
// The API status is passed through for the caller to classify; only
// transport-level failures surface as errors.
func (c *Client) ResolveRoute(ctx context.Context, coords []domain.Coordinates) (ports.RouteResult, error) {
	if len(coords) < 2 {
		return ports.RouteResult{}, errors.New("resolve route: need at least 2 coordinates")
	}

	query := directionsQuery(coords)
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, "/maps/api/directions/json", cloneValues(query))
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("fetch directions: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	result := ports.RouteResult{Status: ports.RouteStatus(decoded.Status)}
	if result.Status != ports.StatusOK {
		return result, nil
	}

	if len(decoded.Routes) == 0 {
		return ports.RouteResult{}, errors.New("directions response has status OK but no routes")
	}

	legs := decoded.Routes[0].Legs
	result.Legs = make([]ports.RouteLeg, 0, len(legs))
	for _, leg := range legs {
		result.Legs = append(result.Legs, ports.RouteLeg{
			DistanceMeters: leg.Distance.Value,
			EndAddress:     leg.EndAddress,
		})
	}

	return result, nil
}

func directionsQuery(coords []domain.Coordinates) url.Values {
	q := url.Values{}
	q.Set("origin", coords[0].String())
	q.Set("destination", coords[len(coords)-1].String())

	if len(coords) > 2 {
		middle := make([]string, 0, len(coords)-2)
		for _, c := range coords[1 : len(coords)-1] {
			middle = append(middle, c.String())
		}
		q.Set("waypoints", strings.Join(middle, "|"))
	}

	return q
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
