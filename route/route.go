// Package route implements the RouteBuilder (§4.6): concatenating the two
// road-network boundary legs found by ClosestStopsSearch around the transit
// itinerary ProfileSearch reconstructed.
package route

import (
	"errors"

	"github.com/fantassin/transit/access"
	"github.com/fantassin/transit/geo"
	"github.com/fantassin/transit/profile"
	"github.com/fantassin/transit/roadnet"
)

// defaultToleranceMeters is the epsilon §4.6 allows when two independently
// computed legs are expected to share an endpoint.
const defaultToleranceMeters = 5.0

var (
	ErrNoBoundaryPath = errors.New("route: boundary search did not reach the transit stop")
	ErrLegMismatch    = errors.New("route: adjacent legs do not share an endpoint within tolerance")
)

// Kind distinguishes a leg's mode of travel.
type Kind int

const (
	Walk Kind = iota
	Transit
	Transfer
)

// Leg is one contiguous stretch of an itinerary.
type Leg struct {
	Kind      Kind
	From, To  geo.Coord
	Departure uint32
	Arrival   uint32
	Trip      int32 // valid only when Kind == Transit
}

// Itinerary is the full assembled journey, in travel order.
type Itinerary struct {
	Legs []Leg
}

// StopCoord resolves a stop id to its geographic location; stop geometry is
// an external registry this module does not own (§1 Non-goals).
type StopCoord func(stop int32) geo.Coord

// Build concatenates the forward boundary leg (source point to firstStop),
// the transit legs from a profile.Search.Reconstruct call, and the backward
// boundary leg (lastStop to target point).
//
// forward must have already been Run from sourcePoint in the FORWARD
// direction; backward must have already been Run from targetPoint in the
// BACKWARD direction (§4.4), so backward's weights and paths read as
// lastStop -> targetPoint.
func Build(sourcePoint roadnet.RouterPoint, forward *access.Search, firstStop int32,
	transit []profile.Step,
	backward *access.Search, lastStop int32, targetPoint roadnet.RouterPoint,
	stopCoord StopCoord, toleranceMeters float64) (*Itinerary, error) {

	if toleranceMeters <= 0 {
		toleranceMeters = defaultToleranceMeters
	}

	fwdWeight, ok := forward.WeightTo(firstStop)
	if !ok {
		return nil, ErrNoBoundaryPath
	}
	fwdOnNetwork, _ := forward.TargetPoint(firstStop)
	if !geo.SameLocation(fwdOnNetwork.Coord, stopCoord(firstStop), toleranceMeters) {
		return nil, ErrLegMismatch
	}

	bwdWeight, ok := backward.WeightTo(lastStop)
	if !ok {
		return nil, ErrNoBoundaryPath
	}
	bwdOnNetwork, _ := backward.TargetPoint(lastStop)
	if !geo.SameLocation(bwdOnNetwork.Coord, stopCoord(lastStop), toleranceMeters) {
		return nil, ErrLegMismatch
	}

	legs := make([]Leg, 0, len(transit)+2)
	legs = append(legs, Leg{
		Kind: Walk,
		From: sourcePoint.Coord,
		To:   stopCoord(firstStop),
		// Build is not given the query's departure time, so Departure stays
		// zero and Arrival holds only the walk's duration (fwdWeight).
		Arrival: uint32(fwdWeight),
	})

	for _, s := range transit {
		kind := Transit
		if s.IsTransfer {
			kind = Transfer
		}
		legs = append(legs, Leg{
			Kind:      kind,
			From:      stopCoord(s.FromStop),
			To:        stopCoord(s.ToStop),
			Departure: s.Departure,
			Arrival:   s.Arrival,
			Trip:      s.Trip,
		})
	}

	legs = append(legs, Leg{
		Kind:    Walk,
		From:    stopCoord(lastStop),
		To:      targetPoint.Coord,
		Arrival: uint32(bwdWeight),
	})

	return &Itinerary{Legs: legs}, nil
}
