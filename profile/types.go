// Package profile implements the ProfileSearch (§4.5): a forward
// Connection-Scan sweep that builds, for every reachable stop, a
// Pareto-front of (arrival-time, transfer-count) profiles.
package profile

const noIndex = -1

// Entry is one point ever placed on a Pareto front during the scan. Entries
// are immutable once appended to Search's arena (§9 "cyclic back-pointers
// ... by index into per-query arenas"): a stop's front can later start
// pointing at a different, better entry, but no existing entry is ever
// mutated, so anything that has already been chained onto as a PrevIndex
// stays valid for the rest of the query.
type Entry struct {
	Stop           int32
	K              int
	Seconds        uint32
	PrevIndex      int32 // arena index of the predecessor, or noIndex at a seed
	PrevConnection int32 // connection id for a transit hop, noIndex otherwise
	IsTransfer     bool
}

// frontEntry is the live, mutable Pareto-front slot for one (stop, k):
// just enough to run the dominance check without dereferencing the arena,
// plus the arena index reconstruction actually follows.
type frontEntry struct {
	idx      int32
	seconds  uint32
	hasValue bool
}

// StopProfile is the ordered-by-transfer-count front for one stop. Entry k
// is at index k; invariant (§8.1): among live entries, Seconds is strictly
// decreasing as k increases.
type StopProfile struct {
	front []frontEntry
}

func (self *StopProfile) ensureLen(k int) {
	for len(self.front) <= k {
		self.front = append(self.front, frontEntry{})
	}
}

// bestBoardable returns the smallest k with a live entry whose Seconds is no
// later than deadline — the fewest-transfer way to already be at this stop
// in time to board a connection departing at deadline (§4.5 step 3) — along
// with the arena index of that entry, the predecessor a fresh boarding
// should chain onto.
func (self *StopProfile) bestBoardable(deadline uint32) (k int, idx int32, ok bool) {
	for i, e := range self.front {
		if e.hasValue && e.seconds <= deadline {
			return i, e.idx, true
		}
	}
	return 0, noIndex, false
}

// tryUpdate proposes the arena entry at idx (whose Seconds is seconds) at
// front index k. It accepts iff it strictly improves front[k] and is not
// dominated by any front[k'] for k' < k (§4.5 step 8, §8.1); on acceptance
// it also drops any now-dominated entries at k'' > k.
func (self *StopProfile) tryUpdate(k int, seconds uint32, idx int32) bool {
	for kk := 0; kk < k && kk < len(self.front); kk++ {
		e := self.front[kk]
		if e.hasValue && e.seconds <= seconds {
			return false
		}
	}
	self.ensureLen(k)
	existing := self.front[k]
	if existing.hasValue && existing.seconds <= seconds {
		return false
	}
	self.front[k] = frontEntry{idx: idx, seconds: seconds, hasValue: true}

	for kk := k + 1; kk < len(self.front); kk++ {
		e := self.front[kk]
		if !e.hasValue {
			continue
		}
		if e.seconds < seconds {
			break
		}
		self.front[kk] = frontEntry{}
	}
	return true
}

// Seconds returns the arrival time at front index k, and whether it holds a
// value at all.
func (self *StopProfile) Seconds(k int) (uint32, bool) {
	if k >= len(self.front) || !self.front[k].hasValue {
		return 0, false
	}
	return self.front[k].seconds, true
}

func (self *StopProfile) Len() int {
	return len(self.front)
}

// TripStatus is the per-trip reachability record of §3: once a trip is
// reached, continuing it never costs another transfer, so later connections
// of the same trip just need an O(1) lookup here instead of re-deriving
// boardability from the stop profile. ChainIndex tracks the arena entry for
// this specific ride independently of whatever each intermediate stop's own
// front ends up holding, since a mid-ride stop can be (correctly) dominated
// by a faster, unrelated path while the ride itself is still the best way
// to reach a stop further along.
type TripStatus struct {
	Reached              bool
	BoardStop            int32
	BoardTime            uint32
	TransfersWhenBoarded int
	ChainIndex           int32
}
