package main

import "github.com/fantassin/transit/route"

// LegDTO is the wire shape of a route.Leg.
type LegDTO struct {
	Kind      string  `json:"kind"`
	FromLon   float32 `json:"from_lon"`
	FromLat   float32 `json:"from_lat"`
	ToLon     float32 `json:"to_lon"`
	ToLat     float32 `json:"to_lat"`
	Departure uint32  `json:"departure_seconds"`
	Arrival   uint32  `json:"arrival_seconds"`
	Trip      int32   `json:"trip,omitempty"`
}

func legKindName(kind route.Kind) string {
	switch kind {
	case route.Walk:
		return "walk"
	case route.Transit:
		return "transit"
	case route.Transfer:
		return "transfer"
	default:
		return "unknown"
	}
}

func newLegDTO(leg route.Leg) LegDTO {
	dto := LegDTO{
		Kind:      legKindName(leg.Kind),
		FromLon:   leg.From.Lon(),
		FromLat:   leg.From.Lat(),
		ToLon:     leg.To.Lon(),
		ToLat:     leg.To.Lat(),
		Departure: leg.Departure,
		Arrival:   leg.Arrival,
	}
	if leg.Kind == route.Transit {
		dto.Trip = leg.Trip
	}
	return dto
}

// RouteResponse is the successful body of POST /v1/route.
type RouteResponse struct {
	Legs      []LegDTO `json:"legs"`
	Transfers int      `json:"transfers"`
	Arrival   uint32   `json:"arrival_seconds"`
}

func newRouteResponse(itinerary *route.Itinerary, transfersCount int, arrival uint32) RouteResponse {
	resp := RouteResponse{
		Legs:      make([]LegDTO, 0, len(itinerary.Legs)),
		Transfers: transfersCount,
		Arrival:   arrival,
	}
	for _, leg := range itinerary.Legs {
		resp.Legs = append(resp.Legs, newLegDTO(leg))
	}
	return resp
}

// ErrorResponse mirrors the failed shape of every handler in this package.
type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, err any) ErrorResponse {
	return ErrorResponse{Request: request, Error: err}
}
