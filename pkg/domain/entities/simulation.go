package entities

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SafetyStockMode selects how the safety stock level is derived from demand variability
type SafetyStockMode int

const (
	// SigmaMultiple uses SafetyFactor * sigma
	SigmaMultiple SafetyStockMode = iota
	// ServiceLevelZ uses z(ServiceLevel) * sigma
	ServiceLevelZ
)

// String method for SafetyStockMode enum
func (m SafetyStockMode) String() string {
	switch m {
	case SigmaMultiple:
		return "sigma"
	case ServiceLevelZ:
		return "service_level"
	default:
		return "Unknown"
	}
}

// ParseSafetyStockMode parses the configuration spelling of a SafetyStockMode
func ParseSafetyStockMode(s string) (SafetyStockMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sigma":
		return SigmaMultiple, nil
	case "service_level":
		return ServiceLevelZ, nil
	default:
		return SigmaMultiple, fmt.Errorf("invalid safety stock mode: %s (expected: sigma or service_level)", s)
	}
}

// ShipmentPolicy selects how a day's shipment settles backlog and demand
type ShipmentPolicy int

const (
	// NetOfBacklog ships from on-hand net of backlog. When the shipment cannot
	// retire the whole backlog, on-hand is untouched and the day's demand is
	// not carried.
	NetOfBacklog ShipmentPolicy = iota
	// FullBackorder ships from on-hand and carries every unit of unmet demand.
	FullBackorder
)

// String method for ShipmentPolicy enum
func (p ShipmentPolicy) String() string {
	switch p {
	case NetOfBacklog:
		return "net_of_backlog"
	case FullBackorder:
		return "full_backorder"
	default:
		return "Unknown"
	}
}

// ParseShipmentPolicy parses the configuration spelling of a ShipmentPolicy
func ParseShipmentPolicy(s string) (ShipmentPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "net_of_backlog":
		return NetOfBacklog, nil
	case "full_backorder":
		return FullBackorder, nil
	default:
		return NetOfBacklog, fmt.Errorf("invalid shipment policy: %s (expected: net_of_backlog or full_backorder)", s)
	}
}

// DefaultHistoryDays is the number of trailing observed days used to fit demand
const DefaultHistoryDays = 120

// SimulationParams holds the policy parameters of an inventory what-if run
type SimulationParams struct {
	LeadTimeDays    int
	MOQ             int
	SafetyFactor    float64
	ServiceLevel    float64
	HorizonDays     int
	Seed            int64
	HistoryDays     int
	SafetyStockMode SafetyStockMode
	ShipmentPolicy  ShipmentPolicy
}

// DefaultSimulationParams returns the parameters used when none are configured
func DefaultSimulationParams() SimulationParams {
	return SimulationParams{
		LeadTimeDays:    30,
		MOQ:             0,
		SafetyFactor:    1.0,
		ServiceLevel:    0.95,
		HorizonDays:     90,
		Seed:            123,
		HistoryDays:     DefaultHistoryDays,
		SafetyStockMode: SigmaMultiple,
		ShipmentPolicy:  NetOfBacklog,
	}
}

// SimulationOption overrides a parameter NewSimulationParams otherwise defaults
type SimulationOption func(*SimulationParams)

// WithHistoryDays sets how many trailing observed days fit the demand model
func WithHistoryDays(days int) SimulationOption {
	return func(p *SimulationParams) { p.HistoryDays = days }
}

func WithSafetyStockMode(mode SafetyStockMode) SimulationOption {
	return func(p *SimulationParams) { p.SafetyStockMode = mode }
}

func WithShipmentPolicy(policy ShipmentPolicy) SimulationOption {
	return func(p *SimulationParams) { p.ShipmentPolicy = policy }
}

// NewSimulationParams creates validated SimulationParams. Options are applied
// before validation.
func NewSimulationParams(leadTimeDays, moq int, safetyFactor, serviceLevel float64, horizonDays int, seed int64, opts ...SimulationOption) (*SimulationParams, error) {
	p := DefaultSimulationParams()
	p.LeadTimeDays = leadTimeDays
	p.MOQ = moq
	p.SafetyFactor = safetyFactor
	p.ServiceLevel = serviceLevel
	p.HorizonDays = horizonDays
	p.Seed = seed
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks every parameter against its domain
func (p SimulationParams) Validate() error {
	if p.LeadTimeDays < 0 {
		return fmt.Errorf("lead time cannot be negative, got %d", p.LeadTimeDays)
	}
	if p.MOQ < 0 {
		return fmt.Errorf("moq cannot be negative, got %d", p.MOQ)
	}
	if math.IsNaN(p.SafetyFactor) || math.IsInf(p.SafetyFactor, 0) || p.SafetyFactor < 0 {
		return fmt.Errorf("safety factor must be a non-negative number, got %v", p.SafetyFactor)
	}
	if !(p.ServiceLevel > 0 && p.ServiceLevel < 1) {
		return fmt.Errorf("service level must be between 0 and 1 exclusive, got %v", p.ServiceLevel)
	}
	if p.HorizonDays < 1 {
		return fmt.Errorf("horizon must be at least 1 day, got %d", p.HorizonDays)
	}
	if p.HistoryDays < 1 {
		return fmt.Errorf("history must be at least 1 day, got %d", p.HistoryDays)
	}
	return nil
}

// PendingOrder is a replenishment order in the pipeline
type PendingOrder struct {
	PlacedOn time.Time `json:"placed_on"`
	Arrival  time.Time `json:"arrival"`
	Quantity float64   `json:"quantity"`
}

// DailySimulationRow records the end-of-day state of one simulated day
type DailySimulationRow struct {
	Date    time.Time `json:"date"`
	Demand  float64   `json:"demand"`
	OnHand  float64   `json:"on_hand"`
	Backlog float64   `json:"backlog"`
}

// InventoryPosition returns on-hand net of backlog
func (r DailySimulationRow) InventoryPosition() float64 {
	return r.OnHand - r.Backlog
}
