package main

import (
	"github.com/fantassin/transit/geo"
	"github.com/fantassin/transit/roadnet"
)

// RouterPointDTO is the wire shape of a roadnet.RouterPoint: the engine does
// not snap raw coordinates onto the road network itself (§1 Non-goals), so a
// caller must already have resolved the query endpoint to an edge and offset
// through the external router.
type RouterPointDTO struct {
	EdgeID int32   `json:"edge_id" validate:"gte=0"`
	Offset float32 `json:"offset" validate:"gte=0,lte=1"`
	Lon    float32 `json:"lon"`
	Lat    float32 `json:"lat"`
}

func (self RouterPointDTO) toRouterPoint() roadnet.RouterPoint {
	return roadnet.RouterPoint{
		EdgeID: self.EdgeID,
		Offset: self.Offset,
		Coord:  geo.NewCoord(self.Lon, self.Lat),
	}
}

// RouteRequest is the body of POST /v1/route.
type RouteRequest struct {
	Source    RouterPointDTO `json:"source" validate:"required"`
	Target    RouterPointDTO `json:"target" validate:"required"`
	Profile   string         `json:"profile" validate:"required"`
	Departure uint32         `json:"departure_seconds"`
	Date      string         `json:"date" validate:"required,datetime=2006-01-02"`
}
