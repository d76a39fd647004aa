package roadnet

import (
	"github.com/fantassin/transit/util"
)

// SourcePath is one seed of a bounded Dijkstra: a vertex, the weight already
// accumulated to reach it (non-zero when the search starts mid-edge), and
// the edge it was reached through, or -1 at a true source.
type SourcePath struct {
	Vertex int32
	Weight float32
	Edge   int32
}

type dijkstraFlag struct {
	weight  float32
	ref     EdgeRef
	visited bool
	touched bool
}

// NewDijkstra builds the bounded, edge-relaxing search this module treats as
// an external primitive (§6). It settles vertices in non-decreasing weight
// order and stops relaxing once a frontier weight exceeds maxWeight.
func NewDijkstra(g IGraph, factor FactorFunc, sources []SourcePath, maxWeight float32, dir Direction) *BoundedDijkstra {
	flags := make([]dijkstraFlag, g.NodeCount())
	heap := util.NewPriorityQueue[int32, float64](64)

	d := &BoundedDijkstra{
		graph:     g,
		factor:    factor,
		explorer:  g.GetGraphExplorer(),
		flags:     flags,
		heap:      heap,
		maxWeight: maxWeight,
		dir:       dir,
	}
	for _, s := range sources {
		if s.Weight > maxWeight {
			continue
		}
		f := dijkstraFlag{weight: s.Weight, touched: true, ref: EdgeRef{EdgeID: s.Edge, OtherID: -1}}
		if existing := flags[s.Vertex]; existing.touched && existing.weight <= s.Weight {
			continue
		}
		d.flags[s.Vertex] = f
		d.heap.Enqueue(s.Vertex, float64(s.Weight))
	}
	return d
}

// BoundedDijkstra is the reference implementation of the Dijkstra contract.
// A real deployment plugs in the actual router's search here; this one
// exists so the access search and its tests do not depend on one.
type BoundedDijkstra struct {
	graph     IGraph
	factor    FactorFunc
	explorer  IGraphExplorer
	flags     []dijkstraFlag
	heap      util.PriorityQueue[int32, float64]
	maxWeight float32
	dir       Direction

	lastVertex int32
	lastWeight float32
	lastOK     bool
}

func (self *BoundedDijkstra) Step() bool {
	for {
		curr, ok := self.heap.Dequeue()
		if !ok {
			return false
		}
		flag := self.flags[curr]
		if flag.visited {
			continue
		}
		flag.visited = true
		self.flags[curr] = flag
		self.lastVertex = curr
		self.lastWeight = flag.weight
		self.lastOK = true

		self.explorer.ForAdjacentEdges(curr, self.dir, func(ref EdgeRef) {
			weight := self.explorer.GetEdgeWeight(ref, self.factor)
			if weight < 0 {
				return
			}
			newWeight := flag.weight + weight
			if newWeight > self.maxWeight {
				return
			}
			other := self.flags[ref.OtherID]
			if other.visited {
				return
			}
			if !other.touched || other.weight > newWeight {
				self.flags[ref.OtherID] = dijkstraFlag{weight: newWeight, ref: ref, touched: true}
				self.heap.Enqueue(ref.OtherID, float64(newWeight))
			}
		})
		return true
	}
}

func (self *BoundedDijkstra) Run() {
	for self.Step() {
	}
}

func (self *BoundedDijkstra) WasFound(vertex int32) (float32, bool) {
	flag := self.flags[vertex]
	return flag.weight, flag.visited
}

func (self *BoundedDijkstra) TryGetVisit(vertex int32) VisitResult {
	flag := self.flags[vertex]
	return VisitResult{Weight: flag.weight, ParentRef: flag.ref, Found: flag.touched}
}

func (self *BoundedDijkstra) LastSettled() (vertex int32, weight float32, ok bool) {
	return self.lastVertex, self.lastWeight, self.lastOK
}
