package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/fantassin/transit/config"
	"github.com/fantassin/transit/connections"
	"github.com/fantassin/transit/geo"
	"github.com/fantassin/transit/roadnet"
	"github.com/fantassin/transit/schedule"
	"github.com/fantassin/transit/stoplinks"
	"github.com/fantassin/transit/transfers"
)

// stopMeta is the on-disk shape of one entry of the stop coordinate array,
// indexed by stop id: the coordinate part of §3's per-stop (lat, lon,
// meta_id) record, without meta_id. Building it from a GTFS feed or similar
// source is an external collaborator's job (§1 Non-goals).
type stopMeta struct {
	Lon float32 `json:"lon"`
	Lat float32 `json:"lat"`
}

// Manager owns every read-only store loaded once at process startup. Per
// §5, stores are immutable during queries and safe to share across the
// worker goroutines httprouter dispatches requests onto; Manager itself
// holds no mutable per-query state.
type Manager struct {
	config             config.Config
	graph              roadnet.IGraph
	connStore          *connections.Store
	transferStore      *transfers.Store
	stopLinksByProfile map[string]*stoplinks.EdgeIndex
	stopCoords         []geo.Coord
	numTrips           int32
	calendar           *schedule.Calendar
}

type hasGuid interface {
	Guid() uuid.UUID
}

func guidOf(g roadnet.IGraph) uuid.UUID {
	if hg, ok := g.(hasGuid); ok {
		return hg.Guid()
	}
	return uuid.Nil
}

// NewManager loads every store named in cfg. A calendar is optional: when
// calendarPath is empty, trips are treated as running every day, which is the
// right default for a deployment that has not wired a real schedule source.
func NewManager(cfg config.Config, calendarPath string) (*Manager, error) {
	graphData, err := os.ReadFile(cfg.Stores.RoadNetwork)
	if err != nil {
		return nil, fmt.Errorf("manager: road network: %w", err)
	}
	graph, err := roadnet.DeserializeMemGraph(graphData)
	if err != nil {
		return nil, fmt.Errorf("manager: road network: %w", err)
	}

	connData, err := os.ReadFile(cfg.Stores.Connections)
	if err != nil {
		return nil, fmt.Errorf("manager: connections: %w", err)
	}
	connStore, err := connections.Deserialize(connData)
	if err != nil {
		return nil, fmt.Errorf("manager: connections: %w", err)
	}
	if connStore.Sorting() != connections.ByDeparture {
		connStore.Sort(connections.ByDeparture)
	}

	graphGuid := guidOf(graph)
	stopLinksByProfile := make(map[string]*stoplinks.EdgeIndex, len(cfg.AccessProfiles))
	for name, ap := range cfg.AccessProfiles {
		if ap == nil || ap.StopLinksPath == "" {
			continue
		}
		data, err := os.ReadFile(ap.StopLinksPath)
		if err != nil {
			return nil, fmt.Errorf("manager: stop-links %q: %w", name, err)
		}
		db, err := stoplinks.Deserialize(data, graphGuid)
		if err != nil {
			return nil, fmt.Errorf("manager: stop-links %q: %w", name, err)
		}
		stopLinksByProfile[name] = stoplinks.NewEdgeIndex(db.Index)
	}

	stopCoords, err := loadStopMeta(cfg.Stores.StopMeta)
	if err != nil {
		return nil, fmt.Errorf("manager: stop meta: %w", err)
	}

	var calendar *schedule.Calendar
	if calendarPath != "" {
		calendar, err = loadCalendar(calendarPath)
		if err != nil {
			return nil, fmt.Errorf("manager: calendar: %w", err)
		}
	}

	return &Manager{
		config:             cfg,
		graph:              graph,
		connStore:          connStore,
		transferStore:      transfers.NewStore(cfg.Stores.TransfersMaxSeconds),
		stopLinksByProfile: stopLinksByProfile,
		stopCoords:         stopCoords,
		numTrips:           maxTripID(connStore) + 1,
		calendar:           calendar,
	}, nil
}

func loadStopMeta(path string) ([]geo.Coord, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []stopMeta
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	coords := make([]geo.Coord, len(raw))
	for i, m := range raw {
		coords[i] = geo.NewCoord(m.Lon, m.Lat)
	}
	return coords, nil
}

// calendarDoc is the on-disk shape loadCalendar reads: one entry per GTFS-
// style service plus the trip-to-service assignments, expressed directly in
// schedule.Calendar's own vocabulary so no separate parsing layer is needed.
type calendarDoc struct {
	Services []struct {
		ID           int32    `json:"id"`
		WeekdayMask  uint8    `json:"weekday_mask"`
		Start        string   `json:"start"`
		End          string   `json:"end"`
		AddedDates   []string `json:"added_dates"`
		RemovedDates []string `json:"removed_dates"`
	} `json:"services"`
	TripServices map[string]int32 `json:"trip_services"`
}

func loadCalendar(path string) (*schedule.Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc calendarDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	cal := schedule.NewCalendar()
	for _, s := range doc.Services {
		start, err := time.Parse("2006-01-02", s.Start)
		if err != nil {
			return nil, err
		}
		end, err := time.Parse("2006-01-02", s.End)
		if err != nil {
			return nil, err
		}
		cal.AddService(schedule.ServiceID(s.ID), s.WeekdayMask, start, end)
		for _, d := range s.AddedDates {
			date, err := time.Parse("2006-01-02", d)
			if err != nil {
				return nil, err
			}
			cal.AddException(schedule.ServiceID(s.ID), date, true)
		}
		for _, d := range s.RemovedDates {
			date, err := time.Parse("2006-01-02", d)
			if err != nil {
				return nil, err
			}
			cal.AddException(schedule.ServiceID(s.ID), date, false)
		}
	}
	for tripKey, serviceID := range doc.TripServices {
		var trip int32
		if _, err := fmt.Sscanf(tripKey, "%d", &trip); err != nil {
			return nil, fmt.Errorf("manager: bad trip id %q: %w", tripKey, err)
		}
		cal.SetTripService(trip, schedule.ServiceID(serviceID))
	}
	return cal, nil
}

func maxTripID(store *connections.Store) int32 {
	enum, err := store.Enumerate(connections.ByDeparture)
	if err != nil {
		return -1
	}
	max := int32(-1)
	for enum.MoveNext() {
		if t := enum.Current().Trip; t > max {
			max = t
		}
	}
	return max
}

func (self *Manager) stopCoord(stop int32) geo.Coord {
	if int(stop) < len(self.stopCoords) {
		return self.stopCoords[stop]
	}
	return geo.Coord{}
}
