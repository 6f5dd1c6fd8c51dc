package domain

import "math"

// Locatable is any record exposing a geographic position. Implementations
// report ok=false when coordinates are absent; callers must additionally
// guard against NaN/Inf values via ValidCoordinates.
type Locatable interface {
	Coordinates() (lat, lon float64, ok bool)
}

// Issue is a located civic-issue record as handed to the geospatial engine.
// Pointers distinguish absent coordinates from (0, 0).
type Issue struct {
	ID        string   `json:"id"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lon"`
}

// Coordinates implements Locatable.
func (i *Issue) Coordinates() (float64, float64, bool) {
	if i.Latitude == nil || i.Longitude == nil {
		return 0, 0, false
	}
	return *i.Latitude, *i.Longitude, true
}

// ValidCoordinates reports whether e carries finite, in-range coordinates.
func ValidCoordinates(e Locatable) bool {
	lat, lon, ok := e.Coordinates()
	if !ok {
		return false
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
