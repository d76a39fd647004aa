// Package transfers implements the TransfersStore (§3, §4.3): a sparse,
// symmetric stop-to-stop walking-time table used to propagate a profile
// update to nearby stops during the scan.
package transfers

// Store holds (stop_a, stop_b) -> seconds pairs. Entries are only kept when
// seconds is within the store's configured MaxTransferSeconds; anything
// farther than that is not a meaningful walk transfer for this deployment.
type Store struct {
	maxSeconds uint32
	neighbors  map[int32][]Neighbor
}

// Neighbor is one walkable stop reachable from another, and the seconds it
// takes on foot.
type Neighbor struct {
	Stop    int32
	Seconds uint32
}

func NewStore(maxTransferSeconds uint32) *Store {
	return &Store{
		maxSeconds: maxTransferSeconds,
		neighbors:  make(map[int32][]Neighbor),
	}
}

// Add registers a symmetric transfer between a and b. Calls beyond
// MaxTransferSeconds are dropped silently: they describe a real but
// irrelevant walk, not a build-time error.
func (self *Store) Add(a, b int32, seconds uint32) {
	if seconds > self.maxSeconds {
		return
	}
	self.neighbors[a] = append(self.neighbors[a], Neighbor{Stop: b, Seconds: seconds})
	self.neighbors[b] = append(self.neighbors[b], Neighbor{Stop: a, Seconds: seconds})
}

// Neighbors calls callback once per stop within walking range of stop.
func (self *Store) Neighbors(stop int32, callback func(Neighbor)) {
	for _, n := range self.neighbors[stop] {
		callback(n)
	}
}

func (self *Store) MaxTransferSeconds() uint32 {
	return self.maxSeconds
}
