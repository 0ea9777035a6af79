package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"mileage-report-service/internal/ports"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// PlaceIDByCoords reverse-geocodes a coordinate pair into the service's
// place identifier (/maps/api/geocode/json?latlng=...).
//
// Fails open: any non-OK API status logs a warning and returns not-found
// rather than an error, so a flaky geocoder never blocks a row.
func (c *Client) PlaceIDByCoords(ctx context.Context, lat, lng float64) (ports.LookupResult, error) {
	q := url.Values{}
	q.Set("latlng", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))

	decoded, err := c.geocode(ctx, q)
	if err != nil {
		return ports.LookupResult{}, err
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		c.log.Warn("reverse geocode returned no result",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.String("status", decoded.Status),
		)
		return ports.LookupResult{}, nil
	}

	return ports.LookupResult{Found: true, PlaceID: decoded.Results[0].PlaceID}, nil
}

// CoordsByAddress geocodes a street address into coordinates. Fails open
// like PlaceIDByCoords.
func (c *Client) CoordsByAddress(ctx context.Context, address string) (ports.CoordsResult, error) {
	q := url.Values{}
	q.Set("address", address)

	decoded, err := c.geocode(ctx, q)
	if err != nil {
		return ports.CoordsResult{}, err
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		c.log.Warn("geocode returned no result",
			zap.String("address", address),
			zap.String("status", decoded.Status),
		)
		return ports.CoordsResult{}, nil
	}

	loc := decoded.Results[0].Geometry.Location
	return ports.CoordsResult{Found: true, Lat: loc.Lat, Lng: loc.Lng}, nil
}

func (c *Client) geocode(ctx context.Context, query url.Values) (*geocodeResponse, error) {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, "/maps/api/geocode/json", cloneValues(query))
	})
	if err != nil {
		return nil, fmt.Errorf("fetch geocode: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	return &decoded, nil
}
