package main

import (
	"context"
	"testing"

	"github.com/fantassin/transit/config"
	"github.com/fantassin/transit/connections"
	"github.com/fantassin/transit/geo"
	"github.com/fantassin/transit/roadnet"
	"github.com/fantassin/transit/stoplinks"
	"github.com/fantassin/transit/transfers"
	"github.com/fantassin/transit/util"
)

// buildTestManager wires the same one-hop scenario as spec §8 Scenario A
// (stop 0 -> stop 1, trip 0, dep=3600, arr=6000) directly onto a two-node
// road network where each stop sits exactly at one edge endpoint, so the
// boundary walk on either side costs zero seconds.
func buildTestManager(t *testing.T) *Manager {
	t.Helper()

	// The edge is far longer than the foot profile's walking budget, so a
	// direct walk from the source to the target is never a candidate: the
	// only way forward/backward access search reaches either stop is the
	// same-edge direct case, each from its own end of the edge.
	graph := roadnet.NewMemGraph([]geo.Coord{geo.NewCoord(0, 0), geo.NewCoord(1, 0)})
	edge := graph.AddEdge(0, 1, 100000, roadnet.RoadClassStreet)
	graph.Freeze()

	idx := stoplinks.NewIndex(2)
	if err := idx.Add(0, edge, 0); err != nil {
		t.Fatalf("Add stop 0: %v", err)
	}
	if err := idx.Add(1, edge, 65535); err != nil {
		t.Fatalf("Add stop 1: %v", err)
	}
	links := stoplinks.NewEdgeIndex(idx)

	store := connections.NewStore(4)
	if _, err := store.Add(0, 1, 0, 3600, 6000); err != nil {
		t.Fatalf("Add connection: %v", err)
	}
	store.Sort(connections.ByDeparture)

	cfg := config.Config{}
	cfg.AccessProfiles = util.NewDict[string, *config.AccessProfile](1)
	cfg.AccessProfiles["foot"] = &config.AccessProfile{
		Value: config.WalkingOptions{SpeedMetersPerSecond: 1.4, MaxSeconds: 1000},
	}

	return &Manager{
		config:             cfg,
		graph:              graph,
		connStore:          store,
		transferStore:      transfers.NewStore(300),
		stopLinksByProfile: map[string]*stoplinks.EdgeIndex{"foot": links},
		stopCoords:         []geo.Coord{geo.NewCoord(0, 0), geo.NewCoord(1, 0)},
		numTrips:           1,
	}
}

func TestRunQueryFindsOneHopRoute(t *testing.T) {
	mgr := buildTestManager(t)

	req := RouteRequest{
		Source:    RouterPointDTO{EdgeID: 0, Offset: 0, Lon: 0, Lat: 0},
		Target:    RouterPointDTO{EdgeID: 0, Offset: 1, Lon: 1, Lat: 0},
		Profile:   "foot",
		Departure: 3000,
		Date:      "2026-08-06",
	}

	resp, err := mgr.RunQuery(context.Background(), req)
	if err != nil {
		t.Fatalf("RunQuery: %v", err)
	}
	if resp.Arrival != 6000 {
		t.Errorf("Arrival = %d; want 6000", resp.Arrival)
	}
	if resp.Transfers != 1 {
		t.Errorf("Transfers = %d; want 1", resp.Transfers)
	}
	if len(resp.Legs) != 3 {
		t.Fatalf("len(Legs) = %d; want 3 (walk, transit, walk)", len(resp.Legs))
	}
	if resp.Legs[1].Kind != "transit" || resp.Legs[1].Trip != 0 {
		t.Errorf("middle leg = %+v", resp.Legs[1])
	}
}

func TestRunQueryReportsNoRouteBeforeDeadline(t *testing.T) {
	mgr := buildTestManager(t)

	req := RouteRequest{
		Source:    RouterPointDTO{EdgeID: 0, Offset: 0, Lon: 0, Lat: 0},
		Target:    RouterPointDTO{EdgeID: 0, Offset: 1, Lon: 1, Lat: 0},
		Profile:   "foot",
		Departure: 30600,
		Date:      "2026-08-06",
	}

	if _, err := mgr.RunQuery(context.Background(), req); err != errNoRoute {
		t.Errorf("err = %v; want errNoRoute", err)
	}
}

func TestRunQueryRejectsUnknownProfile(t *testing.T) {
	mgr := buildTestManager(t)

	req := RouteRequest{
		Source:  RouterPointDTO{EdgeID: 0, Offset: 0},
		Target:  RouterPointDTO{EdgeID: 0, Offset: 1},
		Profile: "bicycle",
		Date:    "2026-08-06",
	}

	if _, err := mgr.RunQuery(context.Background(), req); err == nil {
		t.Error("expected an error for an unconfigured access profile")
	}
}
