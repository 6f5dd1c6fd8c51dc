package geo

import (
	"testing"

	"github.com/civicgrid/triage/internal/domain"
	"github.com/civicgrid/triage/internal/logger"
)

func TestCluster_GroupsClosePointsAndIsolatesFar(t *testing.T) {
	// Two reports ~22 m apart and one ~2 km away.
	entities := []domain.Locatable{
		issue("a", 18.5204, 73.8567),
		issue("b", 18.5206, 73.8567),
		issue("far", 18.54, 73.8567),
	}

	clusters := NewEngine(logger.NewNop()).Cluster(entities, 50, 2)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if len(clusters[0]) != 2 {
		t.Fatalf("expected first cluster of size 2, got %d", len(clusters[0]))
	}
	if clusters[0][0].(*domain.Issue).ID != "a" || clusters[0][1].(*domain.Issue).ID != "b" {
		t.Errorf("unexpected first cluster members: %s, %s",
			clusters[0][0].(*domain.Issue).ID, clusters[0][1].(*domain.Issue).ID)
	}
	if len(clusters[1]) != 1 || clusters[1][0].(*domain.Issue).ID != "far" {
		t.Errorf("expected far point as singleton noise cluster")
	}
}

func TestCluster_DefaultsOnNonPositiveParameters(t *testing.T) {
	entities := []domain.Locatable{
		issue("a", 18.5204, 73.8567),
		issue("b", 18.5205, 73.8567), // ~11 m, inside the default 50 m eps
	}

	clusters := NewEngine(logger.NewNop()).Cluster(entities, 0, 0)
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster under defaults, got %d", len(clusters))
	}
	if len(clusters[0]) != 2 {
		t.Errorf("expected both entities grouped, got cluster of %d", len(clusters[0]))
	}
}

func TestCluster_ExcludesInvalidCoordinates(t *testing.T) {
	entities := []domain.Locatable{
		issue("valid", 18.5204, 73.8567),
		issueWithoutCoords("no-coords"),
	}

	clusters := NewEngine(logger.NewNop()).Cluster(entities, 50, 2)
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	if len(clusters[0]) != 1 || clusters[0][0].(*domain.Issue).ID != "valid" {
		t.Errorf("expected only the valid entity, got %v", clusters[0])
	}
}

func TestCluster_EmptyAndAllInvalidInput(t *testing.T) {
	e := NewEngine(logger.NewNop())
	if got := e.Cluster(nil, 50, 2); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	entities := []domain.Locatable{issueWithoutCoords("x")}
	if got := e.Cluster(entities, 50, 2); got != nil {
		t.Errorf("expected nil when no entity has coordinates, got %v", got)
	}
}

func TestCluster_SingletonFallbackStrategy(t *testing.T) {
	entities := []domain.Locatable{
		issue("a", 18.5204, 73.8567),
		issue("b", 18.5206, 73.8567),
	}

	e := NewEngineWithClusterer(SingletonClusterer{}, logger.NewNop())
	clusters := e.Cluster(entities, 50, 2)
	if len(clusters) != 2 {
		t.Fatalf("expected one singleton per entity, got %d clusters", len(clusters))
	}
	for i, c := range clusters {
		if len(c) != 1 {
			t.Errorf("cluster %d: expected size 1, got %d", i, len(c))
		}
	}
}

func TestCluster_SingletonFallbackSkipsInvalid(t *testing.T) {
	entities := []domain.Locatable{
		issue("valid", 18.5204, 73.8567),
		issueWithoutCoords("no-coords"),
	}

	e := NewEngineWithClusterer(SingletonClusterer{}, logger.NewNop())
	clusters := e.Cluster(entities, 50, 2)
	if len(clusters) != 1 {
		t.Fatalf("expected exactly one cluster, got %d", len(clusters))
	}
	if len(clusters[0]) != 1 || clusters[0][0].(*domain.Issue).ID != "valid" {
		t.Errorf("expected a single cluster holding only the valid entity, got %v", clusters[0])
	}
}

func TestDBSCANClusterer_NoiseKeepsInputOrder(t *testing.T) {
	// Four mutually distant points, all noise.
	points := []Point{
		{Lat: 10, Lon: 10},
		{Lat: 20, Lon: 20},
		{Lat: 30, Lon: 30},
		{Lat: 40, Lon: 40},
	}

	groups := DBSCANClusterer{}.Cluster(points, 50, 2)
	if len(groups) != 4 {
		t.Fatalf("expected 4 singleton groups, got %d", len(groups))
	}
	for i, g := range groups {
		if len(g) != 1 || g[0] != i {
			t.Errorf("group %d: expected [%d], got %v", i, i, g)
		}
	}
}

func TestDBSCANClusterer_ChainExpansion(t *testing.T) {
	// A chain of points each ~22 m from the next; with eps 30 the whole
	// chain should merge into one cluster even though the ends are far apart.
	points := []Point{
		{Lat: 18.5204, Lon: 73.8567},
		{Lat: 18.5206, Lon: 73.8567},
		{Lat: 18.5208, Lon: 73.8567},
		{Lat: 18.5210, Lon: 73.8567},
	}

	groups := DBSCANClusterer{}.Cluster(points, 30, 2)
	if len(groups) != 1 {
		t.Fatalf("expected 1 chained cluster, got %d", len(groups))
	}
	if len(groups[0]) != 4 {
		t.Errorf("expected all 4 points in the chain, got %d", len(groups[0]))
	}
}

func TestDBSCANClusterer_MinPointsCountsSelf(t *testing.T) {
	// An isolated pair is a valid cluster at minPoints 2 (each point plus
	// its one neighbor) but noise at minPoints 3.
	points := []Point{
		{Lat: 18.5204, Lon: 73.8567},
		{Lat: 18.5206, Lon: 73.8567},
	}

	groups := DBSCANClusterer{}.Cluster(points, 50, 2)
	if len(groups) != 1 || len(groups[0]) != 2 {
		t.Fatalf("minPoints 2: expected single pair cluster, got %v", groups)
	}

	groups = DBSCANClusterer{}.Cluster(points, 50, 3)
	if len(groups) != 2 {
		t.Fatalf("minPoints 3: expected 2 noise singletons, got %v", groups)
	}
}
