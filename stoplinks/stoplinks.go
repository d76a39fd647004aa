// Package stoplinks implements the StopLinks index (§3, §4.2): for each
// transit stop, an append-only, per-access-mode-profile list of the
// road-network edges it snaps to and the offset along each edge.
package stoplinks

import "errors"

var ErrOutOfOrder = errors.New("stoplinks: links must be appended in ascending stop_id order")

// Link is one snap of a stop onto a road-network edge. Offset is the
// position along the edge as a fraction of [0,1] scaled to a uint16
// (0 = start vertex, 65535 = end vertex).
type Link struct {
	EdgeID int32
	Offset uint16
}

// Index is the StopLinks structure for a single access-mode profile: a
// (start, count) pointer per stop into a flat, append-only links array.
// Because insertions are contiguous, adding to any stop other than the most
// recently opened one would require shifting every later stop's links, so
// the build API forbids it outright rather than paying that cost silently.
type Index struct {
	pointers []pointer
	links    []Link
	numStops int32
	openStop int32 // stop currently being appended to, or -1 before the first add
}

type pointer struct {
	start int32
	count int32
}

func NewIndex(numStops int32) *Index {
	pointers := make([]pointer, numStops)
	for i := range pointers {
		pointers[i].start = -1
	}
	return &Index{
		pointers: pointers,
		links:    make([]Link, 0, numStops*2),
		numStops: numStops,
		openStop: -1,
	}
}

// Add appends one (edge_id, offset) link for stop. Calls for the same stop
// must be consecutive; calls for stops in strictly ascending order are
// required across the whole build (§4.2).
func (self *Index) Add(stop int32, edgeID int32, offset uint16) error {
	if stop < 0 || stop >= self.numStops {
		return ErrOutOfOrder
	}
	if stop != self.openStop {
		if stop < self.openStop {
			return ErrOutOfOrder
		}
		if self.pointers[stop].start != -1 {
			return ErrOutOfOrder
		}
		self.pointers[stop] = pointer{start: int32(len(self.links)), count: 0}
		self.openStop = stop
	}
	self.links = append(self.links, Link{EdgeID: edgeID, Offset: offset})
	self.pointers[stop].count++
	return nil
}

// Enumerate calls callback once per link registered for stop, in insertion
// order, with O(1) seek to the first one.
func (self *Index) Enumerate(stop int32, callback func(Link)) {
	p := self.pointers[stop]
	if p.start == -1 {
		return
	}
	for i := p.start; i < p.start+p.count; i++ {
		callback(self.links[i])
	}
}

func (self *Index) LinkCount(stop int32) int32 {
	p := self.pointers[stop]
	if p.start == -1 {
		return 0
	}
	return p.count
}

func (self *Index) StopCount() int32 {
	return self.numStops
}

func (self *Index) totalLinks() int32 {
	return int32(len(self.links))
}
