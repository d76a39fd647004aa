package stoplinks

// StopOffset is one stop reachable from a road-network edge, and the
// fraction along that edge (in [0,1]) where it sits.
type StopOffset struct {
	Stop     int32
	Fraction float32
}

// EdgeIndex is the reverse of Index: edge_id -> stops snapped to it. The
// access search builds one of these once per query setup (or reuses one
// built at load time) to answer "does this settled edge carry a stop link"
// in O(1) instead of scanning every stop's link list.
type EdgeIndex struct {
	byEdge map[int32][]StopOffset
}

// NewEdgeIndex builds the edge -> stops map by walking idx once.
func NewEdgeIndex(idx *Index) *EdgeIndex {
	e := &EdgeIndex{byEdge: make(map[int32][]StopOffset, len(idx.links))}
	for stop := int32(0); stop < idx.numStops; stop++ {
		idx.Enumerate(stop, func(l Link) {
			e.byEdge[l.EdgeID] = append(e.byEdge[l.EdgeID], StopOffset{
				Stop:     stop,
				Fraction: float32(l.Offset) / 65535,
			})
		})
	}
	return e
}

// Lookup returns the stops snapped to edge, or ok=false if none.
func (self *EdgeIndex) Lookup(edge int32) ([]StopOffset, bool) {
	s, ok := self.byEdge[edge]
	return s, ok
}
