package connections

// Enumerator walks a Store in one of its two orderings with O(1)
// MoveNext/MovePrevious/MoveTo, per §4.1. A primary enumerator reads
// records directly by position; a secondary enumerator indirects through
// Store.order so that reading position i yields the alternate ordering.
type Enumerator struct {
	store   *Store
	primary bool
	pos     int32 // position within the enumeration order, -1 before first MoveNext
}

func (self *Enumerator) toID(pos int32) int32 {
	if self.primary {
		return pos
	}
	return self.store.order[pos]
}

func (self *Enumerator) MoveNext() bool {
	if self.pos+1 >= int32(len(self.store.records)) {
		return false
	}
	self.pos++
	return true
}

func (self *Enumerator) MovePrevious() bool {
	if self.pos <= 0 {
		return false
	}
	self.pos--
	return true
}

// MoveTo seeks directly to the connection with the given stable id (as
// returned by Store.Sort's renumbering), in O(1): primary enumerators seek
// by position directly, secondary enumerators use the precomputed inverse
// permutation rather than the source's ambiguous byte-offset indexing (§9).
func (self *Enumerator) MoveTo(id int32) bool {
	if id < 0 || id >= int32(len(self.store.records)) {
		return false
	}
	if self.primary {
		self.pos = id
	} else {
		self.pos = self.store.invOrder[id]
	}
	return true
}

func (self *Enumerator) Current() Connection {
	return self.store.records[self.toID(self.pos)]
}
