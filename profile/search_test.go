package profile

import (
	"context"
	"testing"
	"time"

	"github.com/fantassin/transit/connections"
	"github.com/fantassin/transit/transfers"
)

func newSortedStore(t *testing.T, rows [][5]uint32) *connections.Store {
	t.Helper()
	store := connections.NewStore(len(rows))
	for _, r := range rows {
		if _, err := store.Add(int32(r[0]), int32(r[1]), int32(r[2]), r[3], r[4]); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	store.Sort(connections.ByDeparture)
	return store
}

// Scenario A — one-hop success (§8). The scenario table's literal k=2 for a
// single boarding conflicts with step 6's explicit rule that the first
// boarding from the source sets k_new=1; this implementation follows the
// algorithmic rule (see DESIGN.md).
func TestScenarioAOneHopSuccess(t *testing.T) {
	store := newSortedStore(t, [][5]uint32{
		{0, 1, 0, 3600, 6000},
	})
	search := NewSearch(store, nil, nil, time.Time{}, 2, 1)
	search.SetSourceStop(0, 3000)
	search.SetTargetStop(1, 0)

	ok, err := search.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ok {
		t.Fatal("expected success")
	}
	stop, transfers, total, ok := search.BestTargetArrival()
	if !ok || stop != 1 || total != 6000 {
		t.Fatalf("got stop=%d total=%d ok=%v", stop, total, ok)
	}
	if transfers != 1 {
		t.Errorf("transfers = %d; want 1 (first boarding sets k_new=1)", transfers)
	}
}

// Scenario B — one-hop miss.
func TestScenarioBOneHopMiss(t *testing.T) {
	store := newSortedStore(t, [][5]uint32{
		{0, 1, 0, 3600, 6000},
	})
	search := NewSearch(store, nil, nil, time.Time{}, 2, 1)
	search.SetSourceStop(0, 30600)
	search.SetTargetStop(1, 0)

	ok, err := search.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ok {
		t.Fatal("expected failure")
	}
}

// Scenario C — two-hop same trip: back-pointer reconstruction must merge
// the two connections into a single transit leg.
func TestScenarioCTwoHopSameTrip(t *testing.T) {
	store := newSortedStore(t, [][5]uint32{
		{0, 1, 0, 28800, 29400},
		{1, 2, 0, 29460, 30000},
	})
	search := NewSearch(store, nil, nil, time.Time{}, 3, 1)
	search.SetSourceStop(0, 27000)
	search.SetTargetStop(2, 0)

	ok, err := search.Run(context.Background())
	if err != nil || !ok {
		t.Fatalf("Run: ok=%v err=%v", ok, err)
	}
	_, _, total, _ := search.BestTargetArrival()
	if total != 30000 {
		t.Errorf("total = %d; want 30000", total)
	}

	steps, ok := search.Reconstruct()
	if !ok {
		t.Fatal("Reconstruct failed")
	}
	if len(steps) != 1 {
		t.Fatalf("steps = %v; want exactly one merged leg", steps)
	}
	if steps[0].FromStop != 0 || steps[0].ToStop != 2 || steps[0].Trip != 0 || steps[0].IsTransfer {
		t.Errorf("steps[0] = %+v", steps[0])
	}
}

// Scenario D — two-hop with a trip change at stop 1.
func TestScenarioDTripChange(t *testing.T) {
	store := newSortedStore(t, [][5]uint32{
		{0, 1, 0, 28800, 29400},
		{1, 2, 1, 29700, 30300},
	})
	search := NewSearch(store, nil, nil, time.Time{}, 3, 2)
	search.SetSourceStop(0, 27000)
	search.SetTargetStop(2, 0)

	ok, err := search.Run(context.Background())
	if err != nil || !ok {
		t.Fatalf("Run: ok=%v err=%v", ok, err)
	}
	_, _, total, _ := search.BestTargetArrival()
	if total != 30300 {
		t.Errorf("total = %d; want 30300", total)
	}

	steps, ok := search.Reconstruct()
	if !ok {
		t.Fatal("Reconstruct failed")
	}
	if len(steps) != 2 {
		t.Fatalf("steps = %v; want two legs (trip change at stop 1)", steps)
	}
	if steps[0].Trip != 0 || steps[1].Trip != 1 || steps[0].ToStop != 1 || steps[1].FromStop != 1 {
		t.Errorf("steps = %+v", steps)
	}
}

// Scenario E — a direct connection dominates the two-hop alternative:
// same arrival time, fewer transfers.
func TestScenarioEDirectDominates(t *testing.T) {
	store := newSortedStore(t, [][5]uint32{
		{0, 1, 0, 28800, 29400},
		{1, 2, 1, 29700, 30300},
		{0, 2, 2, 28860, 30300},
	})
	search := NewSearch(store, nil, nil, time.Time{}, 3, 3)
	search.SetSourceStop(0, 27000)
	search.SetTargetStop(2, 0)

	ok, err := search.Run(context.Background())
	if err != nil || !ok {
		t.Fatalf("Run: ok=%v err=%v", ok, err)
	}

	steps, ok := search.Reconstruct()
	if !ok {
		t.Fatal("Reconstruct failed")
	}
	if len(steps) != 1 || steps[0].Trip != 2 {
		t.Fatalf("steps = %+v; want single leg on trip 2", steps)
	}
}

// Scenario F — footpath transfer between two unconnected trips.
func TestScenarioFFootpathTransfer(t *testing.T) {
	store := newSortedStore(t, [][5]uint32{
		{0, 1, 0, 28800, 29400},
		{2, 3, 1, 29700, 30300},
	})
	transferStore := transfers.NewStore(600)
	transferStore.Add(1, 2, 100)

	search := NewSearch(store, transferStore, nil, time.Time{}, 4, 2)
	search.SetSourceStop(0, 27000)
	search.SetTargetStop(3, 0)

	ok, err := search.Run(context.Background())
	if err != nil || !ok {
		t.Fatalf("Run: ok=%v err=%v", ok, err)
	}
	_, _, total, _ := search.BestTargetArrival()
	if total != 30300 {
		t.Errorf("total = %d; want 30300", total)
	}

	seconds, hasValue := profileEntryAt(search.Profile(2), 2)
	if !hasValue || seconds != 29500 {
		t.Errorf("profile at stop 2 = (%d, %v); want (29500, true)", seconds, hasValue)
	}

	steps, ok := search.Reconstruct()
	if !ok {
		t.Fatal("Reconstruct failed")
	}
	if len(steps) != 3 {
		t.Fatalf("steps = %+v; want board/transfer/board", steps)
	}
	if !steps[1].IsTransfer || steps[1].FromStop != 1 || steps[1].ToStop != 2 {
		t.Errorf("transfer step = %+v", steps[1])
	}
}

func profileEntryAt(p *StopProfile, k int) (uint32, bool) {
	return p.Seconds(k)
}
