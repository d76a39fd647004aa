// Package roadnet defines the boundary this module shares with the
// road-network router: a minimal graph-exploration contract (§6) and the
// bounded Dijkstra primitive the access search drives. The router's own
// construction, turn restrictions, and vehicle-profile speed tables are an
// external collaborator (§1 Non-goals) — this package only states the shape
// a router must expose to be usable here, plus a small in-memory
// implementation for tests.
package roadnet

import (
	"github.com/fantassin/transit/geo"
)

type Direction bool

const (
	FORWARD  Direction = true
	BACKWARD Direction = false
)

// EdgeProfile is an opaque attribute bundle a router attaches to an edge
// (road class, surface, one-way flags, ...). The engine never inspects it
// directly; it is only ever handed to a FactorFunc.
type EdgeProfile interface{}

// FactorFunc is the "vehicle-profile speed factor" collaborator (§1): given
// an edge's profile it returns a speed factor in (0, 1]; the edge's
// physical traversal time is divided by it to obtain a weight in seconds. A
// factor of 0 means the edge is impassable for this access mode.
type FactorFunc func(profile EdgeProfile) float32

// EdgeRef identifies one directed traversal of an edge as seen from a
// specific node during exploration: which edge, and which node lies on the
// other end of it.
type EdgeRef struct {
	EdgeID  int32
	OtherID int32
}

// IGraph is the read-only surface a road-network database exposes.
type IGraph interface {
	NodeCount() int
	EdgeCount() int
	GetNodeGeom(node int32) geo.Coord
	GetEdgeProfile(edge int32) EdgeProfile
	// GetEdgeVertices returns the two endpoint nodes of edge. Link offsets
	// (stoplinks.Link.Offset) are measured as a fraction of the distance
	// from "from" to "to".
	GetEdgeVertices(edge int32) (from, to int32)
	// GetEdgeWeight returns edge's full traversal weight in seconds under
	// factor, independent of which end it is entered from, or -1 if factor
	// makes the edge impassable. The access search uses this directly to
	// turn a StopLinks offset into a weight without needing a node context.
	GetEdgeWeight(edge int32, factor FactorFunc) float32
	GetGraphExplorer() IGraphExplorer
}

// IGraphExplorer walks the adjacency of one node at a time. Implementations
// are not required to be safe for concurrent use; each access search, and
// the Dijkstra it drives, creates its own explorer.
type IGraphExplorer interface {
	ForAdjacentEdges(node int32, dir Direction, callback func(EdgeRef))
	GetEdgeWeight(edge EdgeRef, factor FactorFunc) float32
	GetOtherNode(edge EdgeRef, node int32) int32
}

// RouterPoint locates a point that need not coincide with a graph vertex: an
// edge id plus an offset along it in [0, 1], together with the coordinate
// used purely for reporting/geometry.
type RouterPoint struct {
	EdgeID int32
	Offset float32
	Coord  geo.Coord
}

// VisitResult is what try_get_visit reports for a settled or frontier node:
// the best known weight to reach it, and the edge it was reached through (or
// -1 at the search origin).
type VisitResult struct {
	Weight    float32
	ParentRef EdgeRef
	Found     bool
}

// Dijkstra is the external contract (§6) this module drives as a black box:
// a bounded, edge-relaxing search that the caller steps one settlement at a
// time so it can inspect newly-settled edges against the stop-links index
// before continuing.
type Dijkstra interface {
	// Step performs one settlement and reports whether the search can still
	// make progress (false once the frontier is empty or exceeds MaxWeight).
	Step() bool
	// WasFound reports whether vertex has been settled, and its weight.
	WasFound(vertex int32) (float32, bool)
	// TryGetVisit returns the current best-known visit state for vertex,
	// whether or not it has been fully settled yet.
	TryGetVisit(vertex int32) VisitResult
	// LastSettled reports the vertex finalized by the most recent Step call
	// that returned true, and the weight it was settled at. The access
	// search uses this to know which vertex's outgoing edges just became
	// eligible for a StopLinks check.
	LastSettled() (vertex int32, weight float32, ok bool)
}
