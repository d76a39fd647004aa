package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fantassin/transit/access"
	"github.com/fantassin/transit/profile"
	"github.com/fantassin/transit/roadnet"
	"github.com/fantassin/transit/route"
)

// RunQuery executes the full per-query pipeline of §5: a forward access
// search from the source point, a backward access search from the target
// point, a single profile scan seeded from both, and route reconstruction.
// Every store it reads is immutable; every slice and map it allocates is
// local to this call, so RunQuery is safe to run concurrently from many
// goroutines against the same Manager.
func (self *Manager) RunQuery(ctx context.Context, req RouteRequest) (RouteResponse, error) {
	ap, ok := self.config.AccessProfiles[req.Profile]
	if !ok || ap == nil {
		return RouteResponse{}, fmt.Errorf("unknown access profile %q", req.Profile)
	}
	links, ok := self.stopLinksByProfile[req.Profile]
	if !ok {
		return RouteResponse{}, fmt.Errorf("no stop-links index loaded for profile %q", req.Profile)
	}

	factor := ap.Value.Factor()
	budget := float32(ap.Value.MaxSecondsBudget())
	metricIsSeconds := ap.Value.Metric().IsTimeInSeconds()

	sourcePoint := req.Source.toRouterPoint()
	targetPoint := req.Target.toRouterPoint()

	forward, err := access.New(self.graph, links, factor, sourcePoint, roadnet.FORWARD, budget, metricIsSeconds)
	if err != nil {
		return RouteResponse{}, err
	}
	backward, err := access.New(self.graph, links, factor, targetPoint, roadnet.BACKWARD, budget, metricIsSeconds)
	if err != nil {
		return RouteResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return RouteResponse{}, fmt.Errorf("bad date %q: %w", req.Date, err)
	}

	var possible profile.TripIsPossible
	if self.calendar != nil {
		possible = self.calendar.IsPossible
	}

	search := profile.NewSearch(self.connStore, self.transferStore, possible, date, int32(len(self.stopCoords)), self.numTrips)

	forward.Run(func(stop int32, seconds float32) bool {
		search.SetSourceStop(stop, req.Departure+uint32(seconds))
		return false
	})
	backward.Run(func(stop int32, seconds float32) bool {
		search.SetTargetStop(stop, uint32(seconds))
		return false
	})

	found, err := search.Run(ctx)
	if err != nil {
		return RouteResponse{}, err
	}
	if !found {
		return RouteResponse{}, errNoRoute
	}

	lastStop, transfersCount, totalSeconds, ok := search.BestTargetArrival()
	if !ok {
		return RouteResponse{}, errNoRoute
	}

	steps, _ := search.Reconstruct()
	firstStop := lastStop
	if len(steps) > 0 {
		firstStop = steps[0].FromStop
	}

	itinerary, err := route.Build(sourcePoint, forward, firstStop, steps, backward, lastStop, targetPoint, self.stopCoord, 0)
	if err != nil {
		return RouteResponse{}, err
	}

	return newRouteResponse(itinerary, transfersCount, totalSeconds), nil
}

var errNoRoute = fmt.Errorf("no route found before the search deadline")

// HandleRoute wraps Manager.RunQuery as the handler for POST /v1/route. §7
// treats "no route" as a normal query outcome, not an error the caller
// should retry against, so it comes back as 200 with an empty leg list
// rather than a 4xx/5xx status.
func HandleRoute(mgr *Manager) func(RouteRequest) Result {
	return func(req RouteRequest) Result {
		resp, err := mgr.RunQuery(context.Background(), req)
		if err == errNoRoute {
			return OK(RouteResponse{Legs: []LegDTO{}})
		}
		if err != nil {
			return BadRequest(err.Error())
		}
		return OK(resp)
	}
}
