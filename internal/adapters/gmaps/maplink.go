package gmaps

import (
	"net/url"
	"strings"

	"mileage-report-service/internal/domain"
)

// MapLink builds the shareable directions URL for a coordinate sequence.
// It is a static template independent of any API call, so a link exists even
// for days whose route resolution failed.
func (c *Client) MapLink(coords []domain.Coordinates) string {
	if len(coords) == 0 {
		return ""
	}

	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", coords[0].String())
	q.Set("destination", coords[len(coords)-1].String())
	q.Set("travelmode", "driving")

	if len(coords) > 2 {
		middle := make([]string, 0, len(coords)-2)
		for _, c := range coords[1 : len(coords)-1] {
			middle = append(middle, c.String())
		}
		q.Set("waypoints", strings.Join(middle, "|"))
	}

	return "https://www.google.com/maps/dir/?" + q.Encode()
}
