package stoplinks

import (
	"errors"
	"unicode/utf16"

	"github.com/google/uuid"

	"github.com/fantassin/transit/util"
)

const formatVersion = 1

var (
	ErrVersionMismatch = errors.New("stoplinks: unsupported on-disk version")
	ErrTruncated       = errors.New("stoplinks: truncated stream")
	ErrGuidMismatch    = errors.New("stoplinks: road-network db guid does not match this index")
)

// Db is a StopLinks Index paired with the identity of the road-network
// database and access-mode profile it was built against (§6). The guid
// invariant is what lets a query server refuse to open a stop-links file
// against the wrong road-network snapshot instead of silently misrouting.
type Db struct {
	Guid        uuid.UUID
	ProfileName string
	Index       *Index
}

// Serialize writes the on-disk layout of §6:
//
//	byte  0     : version = 1
//	bytes 1..16 : Guid of the associated road-network db
//	bytes 17..  : length-prefixed UTF-16 profile name
//	bytes +8    : int64 pointer-array length P
//	bytes +8    : int64 data-array length D
//	bytes       : P x u32 pointers (pairs of start/count)
//	bytes       : D x u32 data (pairs of edge_id/offset)
func (self *Db) Serialize() []byte {
	writer := util.NewBufferWriter()
	util.Write(&writer, uint8(formatVersion))
	guidBytes, _ := self.Guid.MarshalBinary()
	util.WriteBytes(&writer, guidBytes)

	nameUnits := utf16.Encode([]rune(self.ProfileName))
	util.Write(&writer, int32(len(nameUnits)))
	for _, u := range nameUnits {
		util.Write(&writer, u)
	}

	idx := self.Index
	util.Write(&writer, int64(len(idx.pointers)*2))
	util.Write(&writer, int64(len(idx.links)*2))

	pointerWords := util.NewArray[uint32](len(idx.pointers) * 2)
	for i, p := range idx.pointers {
		start := p.start
		if start == -1 {
			start = 0
		}
		pointerWords[i*2+0] = uint32(start)
		pointerWords[i*2+1] = uint32(p.count)
	}
	util.WriteArray(&writer, pointerWords)

	dataWords := util.NewArray[uint32](len(idx.links) * 2)
	for i, l := range idx.links {
		dataWords[i*2+0] = uint32(l.EdgeID)
		dataWords[i*2+1] = uint32(l.Offset)
	}
	util.WriteArray(&writer, dataWords)

	return writer.Bytes()
}

// Deserialize reconstructs a Db and checks it against expectedGraphGuid,
// the road-network db's own identity at open time. A mismatch fails open
// per §6/§7 rather than returning a usable-but-wrong index.
func Deserialize(data []byte, expectedGraphGuid uuid.UUID) (*Db, error) {
	reader := util.NewBufferReader(data)

	var version uint8
	if err := util.Read(&reader, &version); err != nil {
		return nil, ErrTruncated
	}
	if version != formatVersion {
		return nil, ErrVersionMismatch
	}

	guidBytes, err := util.ReadBytes(&reader, 16)
	if err != nil {
		return nil, ErrTruncated
	}
	guid, err := uuid.FromBytes(guidBytes)
	if err != nil {
		return nil, ErrTruncated
	}
	if guid != expectedGraphGuid {
		return nil, ErrGuidMismatch
	}

	var nameLen int32
	if err := util.Read(&reader, &nameLen); err != nil {
		return nil, ErrTruncated
	}
	nameUnits := make([]uint16, nameLen)
	for i := range nameUnits {
		if err := util.Read(&reader, &nameUnits[i]); err != nil {
			return nil, ErrTruncated
		}
	}
	profileName := string(utf16.Decode(nameUnits))

	var pointerLen, dataLen int64
	if err := util.Read(&reader, &pointerLen); err != nil {
		return nil, ErrTruncated
	}
	if err := util.Read(&reader, &dataLen); err != nil {
		return nil, ErrTruncated
	}

	pointerWords, err := util.ReadArray[uint32](&reader, int(pointerLen))
	if err != nil {
		return nil, ErrTruncated
	}
	dataWords, err := util.ReadArray[uint32](&reader, int(dataLen))
	if err != nil {
		return nil, ErrTruncated
	}

	numStops := int32(pointerLen / 2)
	idx := &Index{
		pointers: make([]pointer, numStops),
		links:    make([]Link, dataLen/2),
		numStops: numStops,
		openStop: numStops,
	}
	for i := int32(0); i < numStops; i++ {
		start := int32(pointerWords[i*2+0])
		count := int32(pointerWords[i*2+1])
		if count == 0 {
			start = -1
		}
		idx.pointers[i] = pointer{start: start, count: count}
	}
	for i := range idx.links {
		idx.links[i] = Link{
			EdgeID: int32(dataWords[i*2+0]),
			Offset: uint16(dataWords[i*2+1]),
		}
	}

	return &Db{Guid: guid, ProfileName: profileName, Index: idx}, nil
}
