package roadnet

import (
	"testing"

	"github.com/fantassin/transit/geo"
)

func TestSerializeRoundTrip(t *testing.T) {
	g := NewMemGraph([]geo.Coord{
		geo.NewCoord(0, 0),
		geo.NewCoord(1, 0),
		geo.NewCoord(1, 1),
	})
	g.AddEdge(0, 1, 100, RoadClassStreet)
	g.AddEdge(1, 2, 50, RoadClassSteps)
	g.Freeze()

	back, err := DeserializeMemGraph(g.Serialize())
	if err != nil {
		t.Fatalf("DeserializeMemGraph: %v", err)
	}
	if back.NodeCount() != 3 || back.EdgeCount() != 2 {
		t.Fatalf("node/edge count = %d/%d", back.NodeCount(), back.EdgeCount())
	}
	if w := back.GetEdgeWeight(1, func(p EdgeProfile) float32 {
		if p.(RoadClass) == RoadClassSteps {
			return 0
		}
		return 1
	}); w != -1 {
		t.Errorf("steps edge weight = %v; want -1 (impassable)", w)
	}
	from, to := back.GetEdgeVertices(0)
	if from != 0 || to != 1 {
		t.Errorf("GetEdgeVertices(0) = (%d,%d)", from, to)
	}
	if back.Guid() != g.Guid() {
		t.Errorf("Guid() = %v; want %v", back.Guid(), g.Guid())
	}
}

func TestDeserializeRejectsBadVersion(t *testing.T) {
	if _, err := DeserializeMemGraph([]byte{99}); err != ErrVersionMismatch {
		t.Errorf("err = %v; want ErrVersionMismatch", err)
	}
}

func TestDeserializeRejectsTruncatedStream(t *testing.T) {
	if _, err := DeserializeMemGraph([]byte{1}); err != ErrTruncated {
		t.Errorf("err = %v; want ErrTruncated", err)
	}
}
