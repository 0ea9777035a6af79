package gmaps

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceIDByCoords(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.Equal(t, "10.5,-20.25", r.URL.Query().Get("latlng"))
		w.Write([]byte(`{"status": "OK", "results": [{"place_id": "pid-123"}]}`))
	}))

	res, err := client.PlaceIDByCoords(context.Background(), 10.5, -20.25)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "pid-123", res.PlaceID)
}

func TestPlaceIDByCoordsFailsOpenOnAPIStatus(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))

	res, err := client.PlaceIDByCoords(context.Background(), 0, 0)
	require.NoError(t, err, "non-OK geocode status is not an error")
	assert.False(t, res.Found)
}

func TestCoordsByAddress(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "123 Main St", r.URL.Query().Get("address"))
		w.Write([]byte(`{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 33.45, "lng": -112.07}}}]
		}`))
	}))

	res, err := client.CoordsByAddress(context.Background(), "123 Main St")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 33.45, res.Lat)
	assert.Equal(t, -112.07, res.Lng)
}

func TestCoordsByAddressFailsOpenOnEmptyResults(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "results": []}`))
	}))

	res, err := client.CoordsByAddress(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("", nil)
	require.Error(t, err)
}
