// Package geo implements the geospatial proximity and clustering engine:
// great-circle and planar distance, radius queries over located issues, and
// density-based duplicate grouping.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius used by both distance formulas.
const earthRadiusMeters = 6371000.0

const degToRad = math.Pi / 180

// Haversine returns the great-circle distance in meters between two
// latitude/longitude points. Accurate at all scales, at the cost of the
// trigonometric calls.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	radLat1 := lat1 * degToRad
	radLat2 := lat2 * degToRad
	deltaLat := (lat2 - lat1) * degToRad
	deltaLon := (lon2 - lon1) * degToRad

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Equirectangular returns a planar approximation of the distance in meters.
// It projects the longitude delta scaled by the cosine of the mean latitude,
// which is cheap and accurate for short ranges; error grows with distance
// and with absolute latitude. Longitude deltas are folded across the
// antimeridian so 179.9 and -179.9 are ~0.2 degrees apart, not ~359.8.
func Equirectangular(lat1, lon1, lat2, lon2 float64) float64 {
	deltaLon := lon2 - lon1
	if deltaLon > 180 {
		deltaLon -= 360
	} else if deltaLon < -180 {
		deltaLon += 360
	}

	meanLat := (lat1 + lat2) / 2 * degToRad
	x := deltaLon * degToRad * math.Cos(meanLat)
	y := (lat2 - lat1) * degToRad

	return earthRadiusMeters * math.Sqrt(x*x+y*y)
}
