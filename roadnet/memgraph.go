package roadnet

import (
	"github.com/google/uuid"

	"github.com/fantassin/transit/geo"
)

// edgeRecord is a single directed traversal stored in the graph's flat
// adjacency array; a bidirectional road edge contributes two of these.
type edgeRecord struct {
	edgeID  int32
	otherID int32
}

// MemGraph is a small, immutable, in-memory road-network graph used by tests
// and by callers that have not wired a real router yet. It stores adjacency
// as a flat CSR array the same way the teacher's AdjacencyList/
// AdjacencyArray pair does: build with AddEdge, then Freeze once before use.
type MemGraph struct {
	guid        uuid.UUID
	nodes       []geo.Coord
	edgeA       []int32
	edgeB       []int32
	edgeLength  []float32
	edgeProfile []EdgeProfile
	pointers    [][2]int32 // (start, count) into adjacency, per node
	adjacent    []edgeRecord
	frozen      bool
	pending     map[int32][]edgeRecord
}

func NewMemGraph(nodeCoords []geo.Coord) *MemGraph {
	return &MemGraph{
		guid:    uuid.New(),
		nodes:   nodeCoords,
		pending: make(map[int32][]edgeRecord, len(nodeCoords)),
	}
}

// Guid identifies this graph snapshot; a StopLinksDb built against it
// records the same value, and Deserialize refuses to open a mismatched pair
// (§6 "guid invariant").
func (self *MemGraph) Guid() uuid.UUID {
	return self.guid
}

// AddEdge registers an undirected road edge of the given physical length in
// seconds (already speed-adjusted for a reference vehicle; FactorFunc scales
// it per access mode at query time) and profile tag.
func (self *MemGraph) AddEdge(nodeA, nodeB int32, lengthSeconds float32, profile EdgeProfile) int32 {
	edgeID := int32(len(self.edgeA))
	self.edgeA = append(self.edgeA, nodeA)
	self.edgeB = append(self.edgeB, nodeB)
	self.edgeLength = append(self.edgeLength, lengthSeconds)
	self.edgeProfile = append(self.edgeProfile, profile)
	self.pending[nodeA] = append(self.pending[nodeA], edgeRecord{edgeID: edgeID, otherID: nodeB})
	self.pending[nodeB] = append(self.pending[nodeB], edgeRecord{edgeID: edgeID, otherID: nodeA})
	return edgeID
}

func (self *MemGraph) Freeze() {
	self.pointers = make([][2]int32, len(self.nodes))
	self.adjacent = make([]edgeRecord, 0, len(self.edgeA)*2)
	for n := int32(0); n < int32(len(self.nodes)); n++ {
		start := int32(len(self.adjacent))
		self.adjacent = append(self.adjacent, self.pending[n]...)
		self.pointers[n] = [2]int32{start, int32(len(self.pending[n]))}
	}
	self.pending = nil
	self.frozen = true
}

func (self *MemGraph) NodeCount() int { return len(self.nodes) }
func (self *MemGraph) EdgeCount() int { return len(self.edgeA) }

func (self *MemGraph) GetNodeGeom(node int32) geo.Coord { return self.nodes[node] }

func (self *MemGraph) GetEdgeProfile(edge int32) EdgeProfile {
	return self.edgeProfile[edge]
}

func (self *MemGraph) GetEdgeVertices(edge int32) (from, to int32) {
	return self.edgeA[edge], self.edgeB[edge]
}

// GetEdgeWeight implements IGraph.GetEdgeWeight: the full traversal weight
// of edge regardless of which end it is entered from.
func (self *MemGraph) GetEdgeWeight(edge int32, factor FactorFunc) float32 {
	f := float32(1)
	if factor != nil {
		f = factor(self.edgeProfile[edge])
	}
	if f <= 0 {
		return -1
	}
	return self.edgeLength[edge] / f
}

func (self *MemGraph) GetGraphExplorer() IGraphExplorer {
	if !self.frozen {
		panic("roadnet: MemGraph used before Freeze")
	}
	return &memGraphExplorer{g: self}
}

type memGraphExplorer struct {
	g *MemGraph
}

func (self *memGraphExplorer) ForAdjacentEdges(node int32, dir Direction, callback func(EdgeRef)) {
	p := self.g.pointers[node]
	for i := p[0]; i < p[0]+p[1]; i++ {
		rec := self.g.adjacent[i]
		callback(EdgeRef{EdgeID: rec.edgeID, OtherID: rec.otherID})
	}
}

func (self *memGraphExplorer) GetEdgeWeight(edge EdgeRef, factor FactorFunc) float32 {
	return self.g.GetEdgeWeight(edge.EdgeID, factor)
}

func (self *memGraphExplorer) GetOtherNode(edge EdgeRef, node int32) int32 {
	a := self.g.edgeA[edge.EdgeID]
	b := self.g.edgeB[edge.EdgeID]
	if node == a {
		return b
	}
	return a
}
