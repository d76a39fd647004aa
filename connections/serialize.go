package connections

import (
	"errors"

	"github.com/fantassin/transit/util"
)

const formatVersion = 1

var (
	ErrVersionMismatch = errors.New("connections: unsupported on-disk version")
	ErrTruncated       = errors.New("connections: truncated stream")
)

// Serialize writes the on-disk layout of §6:
//
//	byte  0     : version = 1
//	byte  1     : sorting {0=none, 1=ByDeparture, 2=ByArrival}
//	bytes 2..9  : int64 count N
//	bytes 10..  : 4*N x u32 packed connections
//	            : N x u32 order permutation (empty when unsorted)
func (self *Store) Serialize() []byte {
	writer := util.NewBufferWriter()
	util.Write(&writer, uint8(formatVersion))
	util.Write(&writer, uint8(self.sorting))
	util.Write(&writer, int64(len(self.records)))

	words := util.NewArray[uint32](len(self.records) * wordsPerConnection)
	for i, c := range self.records {
		words[i*wordsPerConnection+0] = uint32(c.DepartureStop)
		words[i*wordsPerConnection+1] = uint32(c.ArrivalStop)
		words[i*wordsPerConnection+2] = uint32(c.Trip)
		words[i*wordsPerConnection+3] = packWordThree(c.Departure, c.Duration)
	}
	util.WriteArray(&writer, words)

	if self.sorting != Unsorted {
		orderWords := util.NewArray[uint32](len(self.order))
		for i, v := range self.order {
			orderWords[i] = uint32(v)
		}
		util.WriteArray(&writer, orderWords)
	}
	return writer.Bytes()
}

// Deserialize reconstructs a Store from bytes produced by Serialize. It
// fails open (returns an error, never a partially-built store) on a version
// mismatch or truncated stream, per §7.
func Deserialize(data []byte) (*Store, error) {
	reader := util.NewBufferReader(data)

	var version uint8
	if err := util.Read(&reader, &version); err != nil {
		return nil, ErrTruncated
	}
	if version != formatVersion {
		return nil, ErrVersionMismatch
	}

	var sortingByte uint8
	if err := util.Read(&reader, &sortingByte); err != nil {
		return nil, ErrTruncated
	}
	// The three states (none/ByDeparture/ByArrival) must be preserved
	// explicitly — collapsing anything non-1 to ByArrival (a bug noted in
	// §9) would silently misreport an unsorted store as arrival-sorted.
	var sorting Sorting
	switch sortingByte {
	case 0:
		sorting = Unsorted
	case 1:
		sorting = ByDeparture
	case 2:
		sorting = ByArrival
	default:
		return nil, ErrVersionMismatch
	}

	var count int64
	if err := util.Read(&reader, &count); err != nil {
		return nil, ErrTruncated
	}

	words, err := util.ReadArray[uint32](&reader, int(count)*wordsPerConnection)
	if err != nil {
		return nil, ErrTruncated
	}

	records := make([]Connection, count)
	for i := range records {
		departure, duration := unpackWordThree(words[i*wordsPerConnection+3])
		records[i] = Connection{
			DepartureStop: int32(words[i*wordsPerConnection+0]),
			ArrivalStop:   int32(words[i*wordsPerConnection+1]),
			Trip:          int32(words[i*wordsPerConnection+2]),
			Departure:     departure,
			Duration:      duration,
			ID:            int32(i),
		}
	}

	store := &Store{
		records: records,
		sorting: sorting,
		nextID:  int32(count),
	}

	if sorting != Unsorted {
		orderWords, err := util.ReadArray[uint32](&reader, int(count))
		if err != nil {
			return nil, ErrTruncated
		}
		order := make([]int32, count)
		invOrder := make([]int32, count)
		for i, w := range orderWords {
			order[i] = int32(w)
			invOrder[order[i]] = int32(i)
		}
		store.order = order
		store.invOrder = invOrder
	}

	return store, nil
}
