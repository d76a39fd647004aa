// Package connections implements the ConnectionsStore (§3, §4.1): a compact
// columnar database of timetabled connections, sortable by departure or
// arrival time, that the profile search scans forward over.
package connections

import "errors"

const (
	// MaxDuration is the largest representable connection duration (2^15-1
	// seconds, about 9h6m). It is packed into the high 15 bits of word 3.
	MaxDuration = 1<<15 - 1
	// MaxDeparture is the largest representable departure time-of-day (2^17-1
	// seconds, about 36h), sized to permit overnight trips that depart late
	// on one service day and are still indexed under it.
	MaxDeparture = 1<<17 - 1

	wordsPerConnection = 4
)

var (
	ErrNonPositiveDuration = errors.New("connections: arrival must be after departure")
	ErrDurationTooLong     = errors.New("connections: duration exceeds 32767 seconds")
	ErrDepartureOutOfRange = errors.New("connections: departure time exceeds 131071 seconds")
	ErrNotSorted           = errors.New("connections: store has not been sorted for this enumeration order")
)

// Connection is a single vehicle hop from one stop to the next along one
// trip. It decodes from four packed 32-bit words; see packWordThree for the
// departure/duration bit layout.
type Connection struct {
	DepartureStop int32
	ArrivalStop   int32
	Trip          int32
	Departure     uint32 // seconds since midnight of the service day
	Duration      uint16 // seconds; ArrivalTime = Departure + Duration
	ID            int32
}

func (self Connection) ArrivalTime() uint32 {
	return self.Departure + uint32(self.Duration)
}

// packWordThree encodes (departure, duration) as departure in the low 17
// bits and duration in the next 15 bits, per §4.1.
func packWordThree(departure uint32, duration uint16) uint32 {
	return (departure & MaxDeparture) | (uint32(duration) << 17)
}

func unpackWordThree(word uint32) (departure uint32, duration uint16) {
	departure = word & MaxDeparture
	duration = uint16(word >> 17)
	return
}

func validate(departure, arrival uint32) error {
	if arrival <= departure {
		return ErrNonPositiveDuration
	}
	if arrival-departure > MaxDuration {
		return ErrDurationTooLong
	}
	if departure > MaxDeparture {
		return ErrDepartureOutOfRange
	}
	return nil
}
