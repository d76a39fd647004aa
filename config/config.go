// Package config loads the deployment-level configuration: where the
// on-disk stores live, and one AccessProfile per access mode the query
// server exposes (§4.4's factor function, plumbed in from YAML).
package config

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"github.com/fantassin/transit/roadnet"
	"github.com/fantassin/transit/util"
)

// ReadConfig loads and parses file. It panics on read/parse failure, since
// a broken deployment config is not a condition any caller can recover
// from at startup.
func ReadConfig(file string) Config {
	slog.Info("reading config file", "path", file)
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file", "error", err)
		panic(err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		slog.Error("failed to parse config file", "error", err)
		panic(err)
	}
	return config
}

type Config struct {
	Stores struct {
		Connections         string `yaml:"connections"`
		RoadNetwork         string `yaml:"road-network"`
		StopMeta            string `yaml:"stop-meta"`
		TransfersMaxSeconds uint32 `yaml:"transfers-max-seconds"`
	} `yaml:"stores"`
	AccessProfiles util.Dict[string, *AccessProfile] `yaml:"access-profiles"`
	Server         struct {
		ListenAddr string `yaml:"listen-addr"`
	} `yaml:"server"`
}

// AccessProfile is one named access mode (walking, wheelchair, ...); its
// Value dispatches on the profile's declared vehicle so the query server can
// look up the right factor function. StopLinksPath is kept per profile, not
// globally, since the StopLinks index itself is profile-keyed (§4.2): a
// wheelchair profile that avoids steps snaps to a different edge set than a
// walking profile.
type AccessProfile struct {
	Value         IAccessOptions
	StopLinksPath string
}

func (self *AccessProfile) UnmarshalYAML(value *yaml.Node) error {
	m := map[string]interface{}{}
	if err := value.Decode(&m); err != nil {
		return err
	}
	rawVehicle, ok := m["vehicle"].(string)
	if !ok {
		return errors.New("config: access-profile missing \"vehicle\"")
	}
	if path, ok := m["stop-links"].(string); ok {
		self.StopLinksPath = path
	}
	vehicle, err := VehicleTypeFromString(rawVehicle)
	if err != nil {
		return err
	}
	switch vehicle {
	case WALKING:
		val := WalkingOptions{}
		if err := value.Decode(&val); err != nil {
			return err
		}
		self.Value = val
	case WHEELCHAIR:
		val := WheelchairOptions{}
		if err := value.Decode(&val); err != nil {
			return err
		}
		self.Value = val
	default:
		return fmt.Errorf("config: unsupported access vehicle %q", rawVehicle)
	}
	return nil
}

// IAccessOptions is the plumbing point between deployment config and the
// access search: Factor gives the FactorFunc the search's edge-relaxing
// Dijkstra applies, MaxSecondsBudget the T_max it is bounded by.
type IAccessOptions interface {
	Vehicle() VehicleType
	Metric() MetricType
	Factor() roadnet.FactorFunc
	MaxSecondsBudget() uint32
}

type WalkingOptions struct {
	SpeedMetersPerSecond float32 `yaml:"speed-mps"`
	MaxSeconds           uint32  `yaml:"max-seconds"`
}

func (self WalkingOptions) Vehicle() VehicleType   { return WALKING }
func (self WalkingOptions) Metric() MetricType     { return SECONDS }
func (self WalkingOptions) MaxSecondsBudget() uint32 { return self.MaxSeconds }

// Factor allows every road class a walker can traverse; edge lengths are
// already expressed in seconds for the reference walking speed.
func (self WalkingOptions) Factor() roadnet.FactorFunc {
	return func(roadnet.EdgeProfile) float32 { return 1 }
}

type WheelchairOptions struct {
	SpeedMetersPerSecond float32 `yaml:"speed-mps"`
	MaxSeconds           uint32  `yaml:"max-seconds"`
	AvoidSteps           bool    `yaml:"avoid-steps"`
}

func (self WheelchairOptions) Vehicle() VehicleType   { return WHEELCHAIR }
func (self WheelchairOptions) Metric() MetricType     { return SECONDS }
func (self WheelchairOptions) MaxSecondsBudget() uint32 { return self.MaxSeconds }

// Factor makes RoadClassSteps impassable when AvoidSteps is set; every other
// class is unrestricted.
func (self WheelchairOptions) Factor() roadnet.FactorFunc {
	avoidSteps := self.AvoidSteps
	return func(p roadnet.EdgeProfile) float32 {
		if class, ok := p.(roadnet.RoadClass); ok && avoidSteps && class == roadnet.RoadClassSteps {
			return 0
		}
		return 1
	}
}

type VehicleType byte

const (
	WALKING VehicleType = iota
	WHEELCHAIR
)

func (self VehicleType) String() string {
	switch self {
	case WALKING:
		return "walking"
	case WHEELCHAIR:
		return "wheelchair"
	default:
		panic("config: unknown vehicle type")
	}
}

func VehicleTypeFromString(s string) (VehicleType, error) {
	switch s {
	case "walking":
		return WALKING, nil
	case "wheelchair":
		return WHEELCHAIR, nil
	default:
		return 0, fmt.Errorf("config: unknown vehicle type %q", s)
	}
}

// MetricType names what an access profile's edge weight measures. §4.4
// requires ClosestStopsSearch to fail fast unless it is SECONDS.
type MetricType byte

const (
	SECONDS MetricType = iota
	METERS
)

func (self MetricType) String() string {
	switch self {
	case SECONDS:
		return "seconds"
	case METERS:
		return "meters"
	default:
		panic("config: unknown metric type")
	}
}

// IsTimeInSeconds is the assertion ClosestStopsSearch's caller must make
// before construction (§4.4, §7 "invalid profile" fails fast).
func (self MetricType) IsTimeInSeconds() bool {
	return self == SECONDS
}
