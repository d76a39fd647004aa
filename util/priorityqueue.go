package util

// PriorityQueue is a binary min-heap keyed on a separately-supplied ordering
// value. The bounded road-network Dijkstra (roadnet.BoundedDijkstra) that
// the access search drives keeps its frontier in one of these instead of
// re-sorting a slice on every relaxation.
type PriorityQueue[T any, K int32 | int | float64] struct {
	items []pqEntry[T, K]
}

type pqEntry[T any, K int32 | int | float64] struct {
	item T
	key  K
}

func NewPriorityQueue[T any, K int32 | int | float64](capacity int) PriorityQueue[T, K] {
	return PriorityQueue[T, K]{items: make([]pqEntry[T, K], 0, capacity)}
}

func (self *PriorityQueue[T, K]) Length() int {
	return len(self.items)
}

func (self *PriorityQueue[T, K]) Enqueue(item T, key K) {
	self.items = append(self.items, pqEntry[T, K]{item: item, key: key})
	self.siftUp(len(self.items) - 1)
}

func (self *PriorityQueue[T, K]) Dequeue() (T, bool) {
	if len(self.items) == 0 {
		var zero T
		return zero, false
	}
	top := self.items[0]
	last := len(self.items) - 1
	self.items[0] = self.items[last]
	self.items = self.items[:last]
	if len(self.items) > 0 {
		self.siftDown(0)
	}
	return top.item, true
}

func (self *PriorityQueue[T, K]) Peek() (T, K, bool) {
	if len(self.items) == 0 {
		var zero T
		var zeroK K
		return zero, zeroK, false
	}
	return self.items[0].item, self.items[0].key, true
}

func (self *PriorityQueue[T, K]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if self.items[parent].key <= self.items[i].key {
			break
		}
		self.items[parent], self.items[i] = self.items[i], self.items[parent]
		i = parent
	}
}

func (self *PriorityQueue[T, K]) siftDown(i int) {
	n := len(self.items)
	for {
		left := 2*i + 1
		right := 2*i + 2
		smallest := i
		if left < n && self.items[left].key < self.items[smallest].key {
			smallest = left
		}
		if right < n && self.items[right].key < self.items[smallest].key {
			smallest = right
		}
		if smallest == i {
			return
		}
		self.items[smallest], self.items[i] = self.items[i], self.items[smallest]
		i = smallest
	}
}
