package profile

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/fantassin/transit/connections"
	"github.com/fantassin/transit/transfers"
)

// ErrCancelled is returned by Run when ctx is cancelled mid-scan. Per §7
// this is a distinct terminal kind from "no route": a cancelled search
// never claims to have exhausted the timetable.
var ErrCancelled = errors.New("profile: search cancelled")

const infinity = uint32(math.MaxUint32)

// TripIsPossible is the schedule-filter collaborator of §4.5: given a trip
// and the service date a connection's departure falls on, reports whether
// the trip actually runs. Calendar construction is out of this module's
// scope; this is consumed as an opaque predicate.
type TripIsPossible func(trip int32, date time.Time) bool

// Search is the ProfileSearch of §4.5. One Search is built per query and
// discarded after reconstruction; its per-query state (profiles, trip
// status, arena) is never reused across queries.
type Search struct {
	store      *connections.Store
	transfers  *transfers.Store // nil if the deployment has no footpath transfers configured
	possible   TripIsPossible
	serviceDay time.Time

	profiles   []StopProfile
	tripStatus []TripStatus
	arena      []Entry

	targetWalkSeconds map[int32]uint32
	bestArrival       uint32
	bestEntryIndex    int32

	sourceSeeded bool
}

// NewSearch allocates the per-query arenas for numStops stops and numTrips
// trips. transfersStore may be nil when the deployment runs without
// footpath propagation.
func NewSearch(store *connections.Store, transfersStore *transfers.Store, possible TripIsPossible, serviceDay time.Time, numStops, numTrips int32) *Search {
	s := &Search{
		store:             store,
		transfers:         transfersStore,
		possible:          possible,
		serviceDay:        serviceDay,
		profiles:          make([]StopProfile, numStops),
		tripStatus:        make([]TripStatus, numTrips),
		targetWalkSeconds: make(map[int32]uint32),
		bestArrival:       infinity,
		bestEntryIndex:    noIndex,
	}
	for i := range s.tripStatus {
		s.tripStatus[i].ChainIndex = noIndex
	}
	return s
}

func (self *Search) appendArena(e Entry) int32 {
	idx := int32(len(self.arena))
	self.arena = append(self.arena, e)
	return idx
}

// SetSourceStop seeds stop's k=0 profile entry: "I can be here, having
// boarded no vehicle yet, by earliestTime" (§4.5).
func (self *Search) SetSourceStop(stop int32, earliestTime uint32) {
	idx := self.appendArena(Entry{
		Stop:           stop,
		K:              0,
		Seconds:        earliestTime,
		PrevIndex:      noIndex,
		PrevConnection: noIndex,
	})
	self.profiles[stop].tryUpdate(0, earliestTime, idx)
	self.sourceSeeded = true
}

// SetTargetStop registers stop as a journey end, with the extra walking
// time needed to reach the true target point from it.
func (self *Search) SetTargetStop(stop int32, walkingTimeToTarget uint32) {
	self.targetWalkSeconds[stop] = walkingTimeToTarget
}

// Run performs the single forward scan of §4.5 over store's
// departure-ordered connections. It returns (true, nil) once some target
// stop has a non-empty profile, (false, nil) if the timetable was exhausted
// without reaching one ("no route", never an error per §7), or a non-nil
// error on cancellation (ErrCancelled) or when the store has not been sorted
// (connections.ErrNotSorted).
func (self *Search) Run(ctx context.Context) (bool, error) {
	enum, err := self.store.Enumerate(connections.ByDeparture)
	if err != nil {
		return false, err
	}

	for enum.MoveNext() {
		if err := ctx.Err(); err != nil {
			return false, ErrCancelled
		}

		c := enum.Current()

		if self.possible != nil && !self.possible(c.Trip, self.serviceDay) {
			continue
		}
		if c.Departure >= self.bestArrival {
			break
		}

		self.processConnection(c)
	}

	return self.bestEntryIndex != noIndex, nil
}

func (self *Search) processConnection(c connections.Connection) {
	depProfile := &self.profiles[c.DepartureStop]
	boardK, boardIdx, hasFresh := depProfile.bestBoardable(c.Departure)

	status := &self.tripStatus[c.Trip]
	hasContinue := status.Reached

	// kNew and its predecessor are derived from the same branch: boarding
	// fresh chains onto dep_stop's own boarding-profile entry; continuing
	// the trip chains onto the entry this exact ride produced at its
	// previous stop (status.ChainIndex), which may or may not still be
	// dep_stop's own front — it can have been correctly dominated there by
	// an unrelated, faster arrival while remaining the best way onward.
	kNew := -1
	var prevIdx int32 = noIndex
	if hasFresh {
		kNew = boardK + 1
		prevIdx = boardIdx
	}
	if hasContinue && (kNew == -1 || status.TransfersWhenBoarded < kNew) {
		kNew = status.TransfersWhenBoarded
		prevIdx = status.ChainIndex
	}
	if kNew == -1 {
		return // step 5: no way to board this connection
	}

	arrival := c.ArrivalTime()
	idx := self.appendArena(Entry{
		Stop:           c.ArrivalStop,
		K:              kNew,
		Seconds:        arrival,
		PrevIndex:      prevIdx,
		PrevConnection: c.ID,
	})

	if !status.Reached || kNew < status.TransfersWhenBoarded {
		status.Reached = true
		status.BoardStop = c.DepartureStop
		status.BoardTime = c.Departure
		status.TransfersWhenBoarded = kNew
	}
	status.ChainIndex = idx

	arrProfile := &self.profiles[c.ArrivalStop]
	if arrProfile.tryUpdate(kNew, arrival, idx) {
		self.propagateTransfers(c.ArrivalStop, kNew, arrival, idx)
		self.updateTarget(c.ArrivalStop, kNew, arrival, idx)
	}
}

func (self *Search) propagateTransfers(stop int32, k int, arrival uint32, fromIdx int32) {
	if self.transfers == nil {
		return
	}
	self.transfers.Neighbors(stop, func(n transfers.Neighbor) {
		seconds := arrival + n.Seconds
		idx := self.appendArena(Entry{
			Stop:           n.Stop,
			K:              k + 1,
			Seconds:        seconds,
			PrevIndex:      fromIdx,
			PrevConnection: noIndex,
			IsTransfer:     true,
		})
		neighborProfile := &self.profiles[n.Stop]
		if neighborProfile.tryUpdate(k+1, seconds, idx) {
			self.updateTarget(n.Stop, k+1, seconds, idx)
		}
	})
}

func (self *Search) updateTarget(stop int32, k int, seconds uint32, idx int32) {
	walk, isTarget := self.targetWalkSeconds[stop]
	if !isTarget {
		return
	}
	total := seconds + walk
	if self.bestEntryIndex == noIndex || total < self.bestArrival ||
		(total == self.bestArrival && k < self.arena[self.bestEntryIndex].K) {
		self.bestArrival = total
		self.bestEntryIndex = idx
	}
}

func (self *Search) Profile(stop int32) *StopProfile {
	return &self.profiles[stop]
}

// BestTargetArrival reports the target stop, transfer count and total
// arrival time (including the final walk) of the best journey found, or
// ok=false if the scan never reached a registered target.
func (self *Search) BestTargetArrival() (stop int32, transfers int, totalSeconds uint32, ok bool) {
	if self.bestEntryIndex == noIndex {
		return 0, 0, 0, false
	}
	e := self.arena[self.bestEntryIndex]
	return e.Stop, e.K, self.bestArrival, true
}

// bestEntry exposes the arena entry behind BestTargetArrival for
// reconstruction.
func (self *Search) bestEntry() (Entry, bool) {
	if self.bestEntryIndex == noIndex {
		return Entry{}, false
	}
	return self.arena[self.bestEntryIndex], true
}
