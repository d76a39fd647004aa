package connections

import "testing"

func TestAddRejectsOutOfRangeDurations(t *testing.T) {
	store := NewStore(4)

	if _, err := store.Add(0, 1, 0, 100, 100); err != ErrNonPositiveDuration {
		t.Errorf("err = %v; want ErrNonPositiveDuration", err)
	}
	if _, err := store.Add(0, 1, 0, 100, 100+MaxDuration+1); err != ErrDurationTooLong {
		t.Errorf("err = %v; want ErrDurationTooLong", err)
	}
	if _, err := store.Add(0, 1, 0, MaxDeparture+1, MaxDeparture+2); err != ErrDepartureOutOfRange {
		t.Errorf("err = %v; want ErrDepartureOutOfRange", err)
	}
}

func TestEnumerateBeforeSortFails(t *testing.T) {
	store := NewStore(4)
	store.Add(0, 1, 0, 3600, 6000)

	if _, err := store.Enumerate(ByDeparture); err != ErrNotSorted {
		t.Errorf("err = %v; want ErrNotSorted", err)
	}
}

func buildSampleStore(t *testing.T) *Store {
	store := NewStore(4)
	// deliberately inserted out of departure order, with a same-time tie
	// broken by trip id.
	mustAdd(t, store, 1, 2, 1, 29700, 30300)
	mustAdd(t, store, 0, 1, 0, 28800, 29400)
	mustAdd(t, store, 2, 3, 2, 28800, 29000) // ties departure with trip 0, higher trip id
	return store
}

func mustAdd(t *testing.T, store *Store, dep, arr, trip int32, depT, arrT uint32) {
	t.Helper()
	if _, err := store.Add(dep, arr, trip, depT, arrT); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
}

func TestSortByDepartureOrdering(t *testing.T) {
	store := buildSampleStore(t)
	store.Sort(ByDeparture)

	enum, err := store.Enumerate(ByDeparture)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	var prev Connection
	first := true
	for enum.MoveNext() {
		c := enum.Current()
		if !first {
			if c.Departure < prev.Departure {
				t.Fatalf("out of order: %v after %v", c, prev)
			}
			if c.Departure == prev.Departure && c.Trip < prev.Trip {
				t.Fatalf("tie-break violated: %v after %v", c, prev)
			}
		}
		prev = c
		first = false
	}
}

func TestSortSecondaryOrderMatchesArrival(t *testing.T) {
	store := buildSampleStore(t)
	store.Sort(ByDeparture)

	enum, err := store.Enumerate(ByArrival)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	var prev Connection
	first := true
	for enum.MoveNext() {
		c := enum.Current()
		if !first && c.ArrivalTime() < prev.ArrivalTime() {
			t.Fatalf("secondary order not by arrival: %v after %v", c, prev)
		}
		prev = c
		first = false
	}
}

func TestMoveToIsConsistentAcrossOrders(t *testing.T) {
	store := buildSampleStore(t)
	store.Sort(ByDeparture)

	primary, _ := store.Enumerate(ByDeparture)
	secondary, _ := store.Enumerate(ByArrival)

	for id := int32(0); id < int32(store.Count()); id++ {
		if !primary.MoveTo(id) {
			t.Fatalf("primary MoveTo(%d) failed", id)
		}
		if !secondary.MoveTo(id) {
			t.Fatalf("secondary MoveTo(%d) failed", id)
		}
		if primary.Current() != secondary.Current() {
			t.Fatalf("MoveTo(%d) mismatch: %v vs %v", id, primary.Current(), secondary.Current())
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	store := buildSampleStore(t)
	store.Sort(ByDeparture)

	data := store.Serialize()
	restored, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if restored.Count() != store.Count() {
		t.Fatalf("count = %d; want %d", restored.Count(), store.Count())
	}
	if restored.Sorting() != store.Sorting() {
		t.Fatalf("sorting = %v; want %v", restored.Sorting(), store.Sorting())
	}

	a, _ := store.Enumerate(ByDeparture)
	b, _ := restored.Enumerate(ByDeparture)
	for a.MoveNext() {
		if !b.MoveNext() {
			t.Fatalf("restored store enumerator ran out early")
		}
		if a.Current() != b.Current() {
			t.Fatalf("record mismatch: %v vs %v", a.Current(), b.Current())
		}
	}
	if b.MoveNext() {
		t.Fatalf("restored store enumerator has extra records")
	}
}

func TestDeserializeRejectsUnsupportedVersion(t *testing.T) {
	data := []byte{2, 1, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := Deserialize(data); err != ErrVersionMismatch {
		t.Errorf("err = %v; want ErrVersionMismatch", err)
	}
}

func TestDeserializeRejectsTruncatedStream(t *testing.T) {
	data := []byte{1, 1, 0, 0}
	if _, err := Deserialize(data); err != ErrTruncated {
		t.Errorf("err = %v; want ErrTruncated", err)
	}
}
