package domain

import "strconv"

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as "lat,lng" for mapping-service URL parameters.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
