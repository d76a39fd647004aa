package roadnet

import (
	"errors"

	"github.com/google/uuid"

	"github.com/fantassin/transit/geo"
	"github.com/fantassin/transit/util"
)

const formatVersion = 1

var (
	ErrVersionMismatch = errors.New("roadnet: unsupported on-disk version")
	ErrTruncated       = errors.New("roadnet: truncated stream")
)

// Serialize writes a MemGraph in the same "fail open" spirit as the other
// stores: a version byte, node coordinates, then one row per undirected edge
// (endpoints, length, road class). Freeze rebuilds the adjacency CSR from the
// edge list, so it is not persisted.
//
//	byte  0      : version = 1
//	bytes 1..16  : Guid of this graph snapshot
//	bytes 17..24 : int64 node count
//	bytes        : node count x (f32 lon, f32 lat)
//	bytes +8     : int64 edge count
//	bytes        : edge count x (i32 nodeA, i32 nodeB, f32 lengthSeconds, u8 roadClass)
func (self *MemGraph) Serialize() []byte {
	writer := util.NewBufferWriter()
	util.Write(&writer, uint8(formatVersion))
	guidBytes, _ := self.guid.MarshalBinary()
	util.WriteBytes(&writer, guidBytes)
	util.Write(&writer, int64(len(self.nodes)))
	for _, c := range self.nodes {
		util.Write(&writer, c.Lon())
		util.Write(&writer, c.Lat())
	}
	util.Write(&writer, int64(len(self.edgeA)))
	for i := range self.edgeA {
		util.Write(&writer, self.edgeA[i])
		util.Write(&writer, self.edgeB[i])
		util.Write(&writer, self.edgeLength[i])
		util.Write(&writer, uint8(self.edgeProfile[i].(RoadClass)))
	}
	return writer.Bytes()
}

// DeserializeMemGraph reconstructs a frozen MemGraph from bytes produced by
// Serialize.
func DeserializeMemGraph(data []byte) (*MemGraph, error) {
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

	var nodeCount int64
	if err := util.Read(&reader, &nodeCount); err != nil {
		return nil, ErrTruncated
	}
	nodes := make([]geo.Coord, nodeCount)
	for i := range nodes {
		var lon, lat float32
		if err := util.Read(&reader, &lon); err != nil {
			return nil, ErrTruncated
		}
		if err := util.Read(&reader, &lat); err != nil {
			return nil, ErrTruncated
		}
		nodes[i] = geo.NewCoord(lon, lat)
	}

	g := NewMemGraph(nodes)
	g.guid = guid

	var edgeCount int64
	if err := util.Read(&reader, &edgeCount); err != nil {
		return nil, ErrTruncated
	}
	for i := int64(0); i < edgeCount; i++ {
		var a, b int32
		var length float32
		var class uint8
		if err := util.Read(&reader, &a); err != nil {
			return nil, ErrTruncated
		}
		if err := util.Read(&reader, &b); err != nil {
			return nil, ErrTruncated
		}
		if err := util.Read(&reader, &length); err != nil {
			return nil, ErrTruncated
		}
		if err := util.Read(&reader, &class); err != nil {
			return nil, ErrTruncated
		}
		g.AddEdge(a, b, length, RoadClass(class))
	}
	g.Freeze()
	return g, nil
}
