package geo

import (
	"github.com/civicgrid/triage/internal/domain"
	"github.com/civicgrid/triage/internal/logger"
)

// Default DBSCAN parameters: a 50 m neighborhood matches the default
// duplicate-check radius, and a density of 2 lets a pair of reports form a
// group while lone reports stay singletons.
const (
	DefaultClusterEpsMeters = 50.0
	DefaultClusterMinPoints = 2
)

// Point is a valid lat/lon pair handed to a clustering strategy.
type Point struct {
	Lat float64
	Lon float64
}

// Clusterer groups points into clusters of indexes into the input slice.
// Every input index must appear in exactly one group; unclusterable points
// come back as singleton groups rather than being dropped, so degraded
// grouping never hides data.
type Clusterer interface {
	Cluster(points []Point, epsMeters float64, minPoints int) [][]int
}

// Cluster groups entities by geographic proximity. Entities with invalid
// coordinates are excluded up front. eps <= 0 and minPoints <= 0 fall back
// to the defaults. The result is never empty for a non-empty valid input:
// if the strategy is missing, every valid entity becomes its own cluster.
func (e *Engine) Cluster(entities []domain.Locatable, epsMeters float64, minPoints int) [][]domain.Locatable {
	if epsMeters <= 0 {
		epsMeters = DefaultClusterEpsMeters
	}
	if minPoints <= 0 {
		minPoints = DefaultClusterMinPoints
	}

	valid := make([]domain.Locatable, 0, len(entities))
	points := make([]Point, 0, len(entities))
	for _, entity := range entities {
		if !domain.ValidCoordinates(entity) {
			continue
		}
		lat, lon, _ := entity.Coordinates()
		valid = append(valid, entity)
		points = append(points, Point{Lat: lat, Lon: lon})
	}
	if len(valid) == 0 {
		return nil
	}

	strategy := e.clusterer
	if strategy == nil {
		strategy = SingletonClusterer{}
	}

	groups := strategy.Cluster(points, epsMeters, minPoints)

	clusters := make([][]domain.Locatable, 0, len(groups))
	for _, group := range groups {
		cluster := make([]domain.Locatable, 0, len(group))
		for _, idx := range group {
			cluster = append(cluster, valid[idx])
		}
		clusters = append(clusters, cluster)
	}

	if e.log != nil {
		e.log.Debug("clustering complete",
			logger.Float64("eps_meters", epsMeters),
			logger.Int("min_points", minPoints),
			logger.Int("valid_entities", len(valid)),
			logger.Int("clusters", len(clusters)))
	}

	return clusters
}

// DBSCANClusterer implements density-based clustering over Haversine
// distance. Geographic correctness matters more than speed here: grouping
// runs on batch dedup passes, not on the per-request hot path.
type DBSCANClusterer struct{}

// Label values during the scan.
const (
	unclassified = 0
	noiseLabel   = -1
)

// Cluster runs DBSCAN: a point joins a cluster when it has at least
// minPoints neighbors (itself included) within epsMeters. Clusters come
// first in discovery order, then noise points as singletons in input order.
func (DBSCANClusterer) Cluster(points []Point, epsMeters float64, minPoints int) [][]int {
	labels := make([]int, len(points))
	clusterID := 0

	for i := range points {
		if labels[i] != unclassified {
			continue
		}

		neighbors := regionQuery(points, i, epsMeters)
		if len(neighbors) < minPoints {
			labels[i] = noiseLabel
			continue
		}

		clusterID++
		labels[i] = clusterID

		// Breadth-first neighborhood expansion; border points join the
		// cluster but only core points extend the frontier.
		queue := neighbors
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]

			if labels[j] == noiseLabel {
				labels[j] = clusterID
				continue
			}
			if labels[j] != unclassified {
				continue
			}
			labels[j] = clusterID

			jNeighbors := regionQuery(points, j, epsMeters)
			if len(jNeighbors) >= minPoints {
				queue = append(queue, jNeighbors...)
			}
		}
	}

	groups := make([][]int, clusterID)
	for i, label := range labels {
		if label > 0 {
			groups[label-1] = append(groups[label-1], i)
		}
	}
	for i, label := range labels {
		if label == noiseLabel {
			groups = append(groups, []int{i})
		}
	}
	return groups
}

// regionQuery returns the indexes of all points within eps of points[i],
// including i itself.
func regionQuery(points []Point, i int, epsMeters float64) []int {
	var neighbors []int
	for j := range points {
		if Haversine(points[i].Lat, points[i].Lon, points[j].Lat, points[j].Lon) <= epsMeters {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// SingletonClusterer is the degraded-mode strategy: every point is its own
// cluster. Grouping quality is lost but no report disappears.
type SingletonClusterer struct{}

// Cluster returns one singleton group per point, in input order.
func (SingletonClusterer) Cluster(points []Point, _ float64, _ int) [][]int {
	groups := make([][]int, len(points))
	for i := range points {
		groups[i] = []int{i}
	}
	return groups
}
