package transfers

import "testing"

func TestAddIsSymmetric(t *testing.T) {
	store := NewStore(300)
	store.Add(1, 2, 100)

	var fromOne, fromTwo []Neighbor
	store.Neighbors(1, func(n Neighbor) { fromOne = append(fromOne, n) })
	store.Neighbors(2, func(n Neighbor) { fromTwo = append(fromTwo, n) })

	if len(fromOne) != 1 || fromOne[0].Stop != 2 || fromOne[0].Seconds != 100 {
		t.Errorf("fromOne = %v", fromOne)
	}
	if len(fromTwo) != 1 || fromTwo[0].Stop != 1 || fromTwo[0].Seconds != 100 {
		t.Errorf("fromTwo = %v", fromTwo)
	}
}

func TestAddDropsTransfersBeyondMax(t *testing.T) {
	store := NewStore(60)
	store.Add(1, 2, 100)

	var got []Neighbor
	store.Neighbors(1, func(n Neighbor) { got = append(got, n) })
	if len(got) != 0 {
		t.Errorf("expected no neighbors beyond max, got %v", got)
	}
}
