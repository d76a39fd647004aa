// Package access implements the ClosestStopsSearch (§4.4): a bounded
// road-network exploration from a geographic point that reports the
// transit stops within reach and the seconds it took to reach each one, by
// watching for stops the StopLinks index has snapped onto edges the search
// settles.
package access

import (
	"errors"

	"github.com/fantassin/transit/geo"
	"github.com/fantassin/transit/roadnet"
	"github.com/fantassin/transit/stoplinks"
)

// ErrMetricNotSeconds is returned by New when the caller's access-mode
// profile does not measure edge weight in seconds (§4.4 "fails fast").
var ErrMetricNotSeconds = errors.New("access: profile metric is not time-in-seconds")

// StopFound is invoked each time a stop is reached in fewer seconds than
// any earlier report for it, so one stop can be reported more than once;
// calls are not ordered by time. A true return terminates the search early.
type StopFound func(stopID int32, seconds float32) (shouldStop bool)

// result is the best-known way to reach one stop, kept for the utility
// queries available after Run.
type result struct {
	seconds  float32
	viaEdge  int32
	fraction float32
	direct   bool // true for the "stop on the source's own edge" case
}

// Search is the ClosestStopsSearch of §4.4.
type Search struct {
	graph  roadnet.IGraph
	links  *stoplinks.EdgeIndex
	factor roadnet.FactorFunc
	source roadnet.RouterPoint
	dir    roadnet.Direction
	budget float32

	dijkstra roadnet.Dijkstra
	found    map[int32]result
}

// New builds a ClosestStopsSearch from source in dir, bounded by budget
// seconds. metricIsSeconds must be asserted by the caller from the
// access-mode profile's metric; if false, construction fails per §4.4.
func New(graph roadnet.IGraph, links *stoplinks.EdgeIndex, factor roadnet.FactorFunc, source roadnet.RouterPoint, dir roadnet.Direction, budgetSeconds float32, metricIsSeconds bool) (*Search, error) {
	if !metricIsSeconds {
		return nil, ErrMetricNotSeconds
	}

	from, to := graph.GetEdgeVertices(source.EdgeID)
	full := graph.GetEdgeWeight(source.EdgeID, factor)

	var sources []roadnet.SourcePath
	if full >= 0 {
		sources = []roadnet.SourcePath{
			{Vertex: from, Weight: source.Offset * full, Edge: source.EdgeID},
			{Vertex: to, Weight: (1 - source.Offset) * full, Edge: source.EdgeID},
		}
	}

	return &Search{
		graph:    graph,
		links:    links,
		factor:   factor,
		source:   source,
		dir:      dir,
		budget:   budgetSeconds,
		dijkstra: roadnet.NewDijkstra(graph, factor, sources, budgetSeconds, dir),
		found:    make(map[int32]result),
	}, nil
}

// Run drives the search to completion or until callback returns true.
func (self *Search) Run(callback StopFound) {
	if self.sameEdgeCase(callback) {
		return
	}

	explorer := self.graph.GetGraphExplorer()
	for self.dijkstra.Step() {
		vertex, weight, ok := self.dijkstra.LastSettled()
		if !ok || weight > self.budget {
			continue
		}

		stop := false
		explorer.ForAdjacentEdges(vertex, self.dir, func(ref roadnet.EdgeRef) {
			if stop {
				return
			}
			stops, has := self.links.Lookup(ref.EdgeID)
			if !has {
				return
			}
			edgeWeight := self.graph.GetEdgeWeight(ref.EdgeID, self.factor)
			if edgeWeight < 0 {
				return
			}
			from, _ := self.graph.GetEdgeVertices(ref.EdgeID)
			for _, so := range stops {
				fracFromVertex := so.Fraction
				if vertex != from {
					fracFromVertex = 1 - so.Fraction
				}
				total := weight + fracFromVertex*edgeWeight
				if total > self.budget {
					continue
				}
				if self.accept(so.Stop, total, ref.EdgeID, so.Fraction, false) {
					if callback(so.Stop, total) {
						stop = true
						return
					}
				}
			}
		})
		if stop {
			return
		}
	}
}

// sameEdgeCase implements §4.4's "edge-on-source-edge" special case: stops
// linked to the source's own edge are reachable without ever entering the
// Dijkstra frontier.
func (self *Search) sameEdgeCase(callback StopFound) bool {
	stops, has := self.links.Lookup(self.source.EdgeID)
	if !has {
		return false
	}
	full := self.graph.GetEdgeWeight(self.source.EdgeID, self.factor)
	if full < 0 {
		return false
	}
	for _, so := range stops {
		delta := so.Fraction - self.source.Offset
		if delta < 0 {
			delta = -delta
		}
		seconds := delta * full
		if seconds > self.budget {
			continue
		}
		if self.accept(so.Stop, seconds, self.source.EdgeID, so.Fraction, true) {
			if callback(so.Stop, seconds) {
				return true
			}
		}
	}
	return false
}

func (self *Search) accept(stop int32, seconds float32, edge int32, fraction float32, direct bool) bool {
	existing, has := self.found[stop]
	if has && existing.seconds <= seconds {
		return false
	}
	self.found[stop] = result{seconds: seconds, viaEdge: edge, fraction: fraction, direct: direct}
	return true
}

// WeightTo returns the best known seconds to reach stop, if it was found.
func (self *Search) WeightTo(stop int32) (float32, bool) {
	r, ok := self.found[stop]
	return r.seconds, ok
}

// Path describes how a stop's best boundary leg meets the road network:
// either directly on the search's own source edge, or via the settled
// vertex the Dijkstra frontier reached before the stop's link was seen.
type Path struct {
	Direct   bool
	Edge     int32
	Fraction float32
}

// PathTo returns the boundary-leg description for stop, if it was found.
func (self *Search) PathTo(stop int32) (Path, bool) {
	r, ok := self.found[stop]
	if !ok {
		return Path{}, false
	}
	return Path{Direct: r.direct, Edge: r.viaEdge, Fraction: r.fraction}, true
}

// TargetPoint returns the RouterPoint on the road network where stop's best
// path meets the network, for stitching into a full route (§4.6).
func (self *Search) TargetPoint(stop int32) (roadnet.RouterPoint, bool) {
	r, ok := self.found[stop]
	if !ok {
		return roadnet.RouterPoint{}, false
	}
	from, to := self.graph.GetEdgeVertices(r.viaEdge)
	a := self.graph.GetNodeGeom(from)
	b := self.graph.GetNodeGeom(to)
	coord := geo.NewCoord(
		lerp(a.Lon(), b.Lon(), r.fraction),
		lerp(a.Lat(), b.Lat(), r.fraction),
	)
	return roadnet.RouterPoint{EdgeID: r.viaEdge, Offset: r.fraction, Coord: coord}, true
}

func lerp(a, b float32, t float32) float32 {
	return a + (b-a)*t
}
