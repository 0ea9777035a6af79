package gmaps

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client implements the RouteProvider and PlaceLookup ports against the
// Google Maps web service APIs (Directions and Geocoding).
//
// One Client is constructed at the composition root and shared by every
// collaborator; it holds the API key and HTTP session, never rebuilt per
// call. The client is safe for concurrent use, though the pipeline calls it
// sequentially.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
	log     *zap.Logger
}

func NewClient(apiKey string, log *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("maps api key is empty")
	}

	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
		log:     log,
	}, nil
}
