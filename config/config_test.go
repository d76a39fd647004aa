package config

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/fantassin/transit/roadnet"
)

func TestAccessProfileDispatchesOnVehicle(t *testing.T) {
	doc := `
vehicle: walking
speed-mps: 1.4
max-seconds: 900
`
	var p AccessProfile
	if err := yaml.Unmarshal([]byte(doc), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	walking, ok := p.Value.(WalkingOptions)
	if !ok {
		t.Fatalf("Value = %T; want WalkingOptions", p.Value)
	}
	if walking.MaxSeconds != 900 || walking.Vehicle() != WALKING || walking.Metric() != SECONDS {
		t.Errorf("walking = %+v", walking)
	}
	if walking.MaxSecondsBudget() != 900 {
		t.Errorf("MaxSecondsBudget() = %d; want 900", walking.MaxSecondsBudget())
	}
}

func TestWheelchairFactorBlocksStepsWhenAvoiding(t *testing.T) {
	opts := WheelchairOptions{AvoidSteps: true}
	factor := opts.Factor()
	if f := factor(roadnet.RoadClassSteps); f != 0 {
		t.Errorf("factor(steps) = %v; want 0", f)
	}
	if f := factor(roadnet.RoadClassStreet); f != 1 {
		t.Errorf("factor(street) = %v; want 1", f)
	}
}

func TestAccessProfileRejectsUnknownVehicle(t *testing.T) {
	doc := `vehicle: teleport`
	var p AccessProfile
	if err := yaml.Unmarshal([]byte(doc), &p); err == nil {
		t.Error("expected an error for an unknown vehicle")
	}
}

func TestFullConfigParses(t *testing.T) {
	doc := `
stores:
  connections: ./data/connections.bin
  road-network: ./data/roadnet.bin
  stop-meta: ./data/stops.json
  transfers-max-seconds: 300
access-profiles:
  foot:
    vehicle: walking
    speed-mps: 1.4
    max-seconds: 900
    stop-links: ./data/stoplinks-foot.bin
server:
  listen-addr: ":8080"
`
	var cfg Config
	if err := yaml.Unmarshal([]byte(doc), &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.Stores.TransfersMaxSeconds != 300 {
		t.Errorf("TransfersMaxSeconds = %d", cfg.Stores.TransfersMaxSeconds)
	}
	foot, ok := cfg.AccessProfiles["foot"]
	if !ok || foot.Value.Vehicle() != WALKING {
		t.Errorf("access-profiles[foot] = %+v", foot)
	}
	if foot.StopLinksPath != "./data/stoplinks-foot.bin" {
		t.Errorf("StopLinksPath = %q", foot.StopLinksPath)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.Server.ListenAddr)
	}
}
