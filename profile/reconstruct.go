package profile

// Step is one leg of a reconstructed journey, in travel order.
type Step struct {
	FromStop   int32
	ToStop     int32
	Departure  uint32
	Arrival    uint32
	Trip       int32 // valid only when IsTransfer is false
	IsTransfer bool
}

// Reconstruct walks the arena back-pointer chain from the best target entry
// found by Run to the seeded source entry, and returns the journey as an
// ordered list of steps with consecutive connections of the same trip
// merged into a single transit leg (Scenario C: one leg on trip 0 from
// stop 0 to stop 2, not two one-hop legs).
func (self *Search) Reconstruct() ([]Step, bool) {
	best, ok := self.bestEntry()
	if !ok {
		return nil, false
	}

	// Walk arena entries from target back to source, collecting raw hops.
	var hops []Entry
	for cur := best; ; {
		hops = append(hops, cur)
		if cur.PrevIndex == noIndex {
			break
		}
		cur = self.arena[cur.PrevIndex]
	}
	// hops is target-to-source; reverse to source-to-target.
	for i, j := 0, len(hops)-1; i < j; i, j = i+1, j-1 {
		hops[i], hops[j] = hops[j], hops[i]
	}

	var steps []Step
	for i := 1; i < len(hops); i++ {
		prev, cur := hops[i-1], hops[i]
		if cur.IsTransfer {
			steps = append(steps, Step{
				FromStop:   prev.Stop,
				ToStop:     cur.Stop,
				Departure:  prev.Seconds,
				Arrival:    cur.Seconds,
				IsTransfer: true,
			})
			continue
		}

		c := self.store.Get(cur.PrevConnection)

		if n := len(steps); n > 0 && !steps[n-1].IsTransfer && steps[n-1].Trip == c.Trip {
			// Same ride continuing: extend the previous leg instead of
			// appending a new one.
			steps[n-1].ToStop = cur.Stop
			steps[n-1].Arrival = cur.Seconds
			continue
		}

		steps = append(steps, Step{
			FromStop:  prev.Stop,
			ToStop:    cur.Stop,
			Departure: c.Departure,
			Arrival:   cur.Seconds,
			Trip:      c.Trip,
		})
	}

	return steps, true
}
