package geo

import (
	"sort"

	"github.com/civicgrid/triage/internal/domain"
	"github.com/civicgrid/triage/internal/logger"
)

// fastDistanceMaxRadius is the radius cutoff, in meters, below which the
// equirectangular approximation is used for proximity queries. Under ~10 km
// its error is negligible and the cheaper formula matters because the check
// runs per candidate; above it, correctness wins and Haversine is used.
const fastDistanceMaxRadius = 10000.0

// distanceFunc computes meters between two lat/lon points.
type distanceFunc func(lat1, lon1, lat2, lon2 float64) float64

// Neighbor pairs an entity with its distance from the reference point.
type Neighbor struct {
	Entity domain.Locatable
	Meters float64
}

// Engine exposes the geospatial operations. All state is fixed at
// construction; every operation is a pure function over its arguments, so
// one Engine serves any number of concurrent callers.
type Engine struct {
	exact     distanceFunc // all-scale distance
	approx    distanceFunc // short-range approximation
	clusterer Clusterer
	log       logger.Logger
}

// NewEngine returns an engine using Haversine/Equirectangular distances and
// density-based clustering.
func NewEngine(log logger.Logger) *Engine {
	return &Engine{
		exact:     Haversine,
		approx:    Equirectangular,
		clusterer: DBSCANClusterer{},
		log:       log,
	}
}

// NewEngineWithClusterer returns an engine with an explicit clustering
// strategy, e.g. SingletonClusterer when grouping quality is less important
// than predictability.
func NewEngineWithClusterer(clusterer Clusterer, log logger.Logger) *Engine {
	e := NewEngine(log)
	e.clusterer = clusterer
	return e
}

// FindNearby returns the entities within radiusMeters of (lat, lon), sorted
// ascending by distance; equal distances keep input order. Entities without
// valid coordinates are skipped, never an error.
func (e *Engine) FindNearby(entities []domain.Locatable, lat, lon, radiusMeters float64) []Neighbor {
	dist := e.exact
	if radiusMeters <= fastDistanceMaxRadius {
		dist = e.approx
	}

	neighbors := make([]Neighbor, 0, len(entities))
	for _, entity := range entities {
		if !domain.ValidCoordinates(entity) {
			continue
		}
		eLat, eLon, _ := entity.Coordinates()
		d := dist(lat, lon, eLat, eLon)
		if d <= radiusMeters {
			neighbors = append(neighbors, Neighbor{Entity: entity, Meters: d})
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Meters < neighbors[j].Meters
	})

	if e.log != nil {
		e.log.Debug("proximity query",
			logger.Float64("radius_meters", radiusMeters),
			logger.Int("candidates", len(entities)),
			logger.Int("matches", len(neighbors)))
	}

	return neighbors
}
