package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPAddr != ":8080" || cfg.Log.Level != "info" {
		t.Errorf("Unexpected server/log defaults: %+v %+v", cfg.Server, cfg.Log)
	}
	if cfg.Scoring.Weights != entities.DefaultWeights() {
		t.Errorf("Expected default weights, got %+v", cfg.Scoring.Weights)
	}
	if cfg.Forecast.Window != 7 || cfg.Forecast.Horizon != 14 {
		t.Errorf("Expected window 7 and horizon 14, got %d and %d", cfg.Forecast.Window, cfg.Forecast.Horizon)
	}

	p, err := cfg.Simulation.Params()
	if err != nil {
		t.Fatalf("Default simulation params invalid: %v", err)
	}
	if *p != entities.DefaultSimulationParams() {
		t.Errorf("Expected default params, got %+v", *p)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SUPPLYPLAN_FORECAST_WINDOW", "28")
	t.Setenv("SUPPLYPLAN_SIMULATION_SHIPMENT_POLICY", "full_backorder")

	cfg, err := Load("", true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Forecast.Window != 28 {
		t.Errorf("Expected window 28 from environment, got %d", cfg.Forecast.Window)
	}

	p, err := cfg.Simulation.Params()
	if err != nil {
		t.Fatalf("Params failed: %v", err)
	}
	if p.ShipmentPolicy != entities.FullBackorder {
		t.Errorf("Expected full backorder policy, got %v", p.ShipmentPolicy)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supplyplan.yaml")
	content := `
scoring:
  weights:
    otd: 1
    cost: 0
    qual: 0
    risk: 0
simulation:
  lead_time_days: 14
  safety_stock_mode: service_level
  service_level: 0.99
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scoring.Weights != (entities.WeightVector{OTD: 1}) {
		t.Errorf("Expected OTD-only weights, got %+v", cfg.Scoring.Weights)
	}

	p, err := cfg.Simulation.Params()
	if err != nil {
		t.Fatalf("Params failed: %v", err)
	}
	if p.LeadTimeDays != 14 || p.SafetyStockMode != entities.ServiceLevelZ || p.ServiceLevel != 0.99 {
		t.Errorf("Unexpected params from file: %+v", *p)
	}
	// Keys absent from the file keep their defaults
	if p.HorizonDays != 90 || cfg.Forecast.Window != 7 {
		t.Errorf("Expected defaults for missing keys, got horizon %d and window %d", p.HorizonDays, cfg.Forecast.Window)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestSimulationConfig_InvalidParams(t *testing.T) {
	cfg, err := Load("", true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	bad := cfg.Simulation
	bad.SafetyStockMode = "kanban"
	if _, err := bad.Params(); err == nil ||
		err.Error() != "invalid safety stock mode: kanban (expected: sigma or service_level)" {
		t.Errorf("Expected mode error, got %v", err)
	}

	bad = cfg.Simulation
	bad.LeadTimeDays = -1
	if _, err := bad.Params(); err == nil || err.Error() != "lead time cannot be negative, got -1" {
		t.Errorf("Expected lead time error, got %v", err)
	}
}

func TestConfig_ValidatedConstructors(t *testing.T) {
	cfg, err := Load("", true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	sim := cfg.Simulation
	sim.HistoryDays = 30
	sim.ShipmentPolicy = "full_backorder"
	p, err := sim.Params()
	if err != nil {
		t.Fatalf("Params failed: %v", err)
	}
	if p.HistoryDays != 30 || p.ShipmentPolicy != entities.FullBackorder || p.LeadTimeDays != 30 {
		t.Errorf("Expected configured params, got %+v", *p)
	}

	sim.HistoryDays = 0
	if _, err := sim.Params(); err == nil || err.Error() != "history must be at least 1 day, got 0" {
		t.Errorf("Expected history error, got %v", err)
	}

	w, err := cfg.Scoring.WeightVector()
	if err != nil {
		t.Fatalf("WeightVector failed: %v", err)
	}
	if *w != entities.DefaultWeights() {
		t.Errorf("Expected default weights, got %+v", *w)
	}

	scoring := cfg.Scoring
	scoring.Weights.Qual = -0.25
	if _, err := scoring.WeightVector(); err == nil || err.Error() != "qual weight cannot be negative, got -0.25" {
		t.Errorf("Expected weight error, got %v", err)
	}
}
