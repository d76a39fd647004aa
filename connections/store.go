package connections

import (
	"sort"
)

// Sorting names which key the connections array is currently sorted by.
// Unsorted (value 0) is a valid third state, distinct from ByArrival — see
// the deserialization note in §9 this type's Decode logic must not collapse.
type Sorting byte

const (
	Unsorted Sorting = iota
	ByDeparture
	ByArrival
)

// Store is the ConnectionsStore of §3/§4.1: a columnar array of connections
// held in one primary order, with a secondary permutation giving the other
// order without a second copy of the records.
//
// Records are kept as []Connection rather than raw packed words while the
// store is live; packing into the four-word-per-connection on-disk layout
// happens only in Serialize (serialize.go), where the departure/duration bit
// layout actually matters for size.
type Store struct {
	records   []Connection
	order     []int32 // order[i] = primary-array position of the i-th connection in secondary order
	invOrder  []int32 // invOrder[id] = secondary-order position of connection id, for O(1) MoveTo
	sorting   Sorting
	nextID    int32
}

func NewStore(expectedSize int) *Store {
	return &Store{
		records: make([]Connection, 0, expectedSize),
		sorting: Unsorted,
	}
}

// Add appends a new connection and returns its id. Before Sort is ever
// called, ids are simply the insertion sequence; once Sort(primary) runs,
// ids become — and remain — the connection's position in the primary-sorted
// array, since the store is immutable for the rest of its lifetime.
func (self *Store) Add(depStop, arrStop, trip int32, departure, arrival uint32) (int32, error) {
	if err := validate(departure, arrival); err != nil {
		return -1, err
	}
	id := self.nextID
	self.records = append(self.records, Connection{
		DepartureStop: depStop,
		ArrivalStop:   arrStop,
		Trip:          trip,
		Departure:     departure,
		Duration:      uint16(arrival - departure),
		ID:            id,
	})
	self.nextID++
	self.sorting = Unsorted
	self.order = nil
	self.invOrder = nil
	return id, nil
}

func (self *Store) Count() int {
	return len(self.records)
}

func (self *Store) Sorting() Sorting {
	return self.sorting
}

// Sort permutes the connections array into primary order (tie-broken by
// trip id, §3) and rebuilds the secondary order permutation over the other
// key. Both sorts respect §9's dual-sort discipline: the primary sort
// permutes the actual records, the secondary sort permutes only an index
// array compared against the now-primary-ordered records.
func (self *Store) Sort(primary Sorting) {
	primaryKey := departureKey
	secondaryKey := arrivalKey
	if primary == ByArrival {
		primaryKey = arrivalKey
		secondaryKey = departureKey
	}

	sort.Slice(self.records, func(i, j int) bool {
		return less(self.records[i], self.records[j], primaryKey)
	})
	for i := range self.records {
		self.records[i].ID = int32(i)
	}

	order := make([]int32, len(self.records))
	for i := range order {
		order[i] = int32(i)
	}
	sort.Slice(order, func(i, j int) bool {
		return less(self.records[order[i]], self.records[order[j]], secondaryKey)
	})

	invOrder := make([]int32, len(order))
	for i, pos := range order {
		invOrder[pos] = int32(i)
	}

	self.order = order
	self.invOrder = invOrder
	self.sorting = primary
}

type sortKey func(Connection) uint32

func departureKey(c Connection) uint32 { return c.Departure }
func arrivalKey(c Connection) uint32   { return c.ArrivalTime() }

// less implements the tie-break rule of §3: primary key first, trip id as
// the deterministic tie-breaker so the total order never depends on
// insertion order.
func less(a, b Connection, key sortKey) bool {
	ka, kb := key(a), key(b)
	if ka != kb {
		return ka < kb
	}
	return a.Trip < b.Trip
}

// Get returns the connection currently stored at primary-order position id,
// in O(1); route reconstruction uses it to resolve a connection id.
func (self *Store) Get(id int32) Connection {
	return self.records[id]
}

// Enumerate returns a forward-scanning cursor. sorting must be Store's
// current primary sort or its secondary (order-permuted) counterpart;
// requesting the secondary order before Sort has run fails per §4.1.
func (self *Store) Enumerate(sorting Sorting) (*Enumerator, error) {
	if self.sorting == Unsorted {
		return nil, ErrNotSorted
	}
	if sorting == self.sorting {
		return &Enumerator{store: self, primary: true, pos: -1}, nil
	}
	return &Enumerator{store: self, primary: false, pos: -1}, nil
}
