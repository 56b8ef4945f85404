package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

// EnvPrefix prefixes every environment override, e.g. SUPPLYPLAN_SIMULATION_LEAD_TIME_DAYS
const EnvPrefix = "SUPPLYPLAN"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Data       DataConfig       `mapstructure:"data"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Forecast   ForecastConfig   `mapstructure:"forecast"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Report     ReportConfig     `mapstructure:"report"`
	Generator  GeneratorConfig  `mapstructure:"generator"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
	Mode     string `mapstructure:"mode"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// DataConfig points at the input tables used when no flag overrides them
type DataConfig struct {
	SuppliersFile string `mapstructure:"suppliers_file"`
	DemandFile    string `mapstructure:"demand_file"`
}

type ScoringConfig struct {
	Weights entities.WeightVector `mapstructure:"weights"`
}

type ForecastConfig struct {
	Window  int `mapstructure:"window"`
	Horizon int `mapstructure:"horizon"`
}

type SimulationConfig struct {
	LeadTimeDays    int     `mapstructure:"lead_time_days"`
	MOQ             int     `mapstructure:"moq"`
	SafetyFactor    float64 `mapstructure:"safety_factor"`
	ServiceLevel    float64 `mapstructure:"service_level"`
	HorizonDays     int     `mapstructure:"horizon_days"`
	Seed            int64   `mapstructure:"seed"`
	HistoryDays     int     `mapstructure:"history_days"`
	SafetyStockMode string  `mapstructure:"safety_stock_mode"`
	ShipmentPolicy  string  `mapstructure:"shipment_policy"`
}

type ReportConfig struct {
	TopN         int `mapstructure:"top_n"`
	UpcomingDays int `mapstructure:"upcoming_days"`
}

type GeneratorConfig struct {
	Seed      int64  `mapstructure:"seed"`
	Suppliers int    `mapstructure:"suppliers"`
	SKU       string `mapstructure:"sku"`
	From      string `mapstructure:"from"`
	To        string `mapstructure:"to"`
}

// Params converts the simulation section into validated domain parameters
func (c SimulationConfig) Params() (*entities.SimulationParams, error) {
	mode, err := entities.ParseSafetyStockMode(c.SafetyStockMode)
	if err != nil {
		return nil, err
	}
	policy, err := entities.ParseShipmentPolicy(c.ShipmentPolicy)
	if err != nil {
		return nil, err
	}

	return entities.NewSimulationParams(c.LeadTimeDays, c.MOQ, c.SafetyFactor, c.ServiceLevel, c.HorizonDays, c.Seed,
		entities.WithHistoryDays(c.HistoryDays),
		entities.WithSafetyStockMode(mode),
		entities.WithShipmentPolicy(policy))
}

// WeightVector returns the configured weights, validated
func (c ScoringConfig) WeightVector() (*entities.WeightVector, error) {
	return entities.NewWeightVector(c.Weights.OTD, c.Weights.Cost, c.Weights.Qual, c.Weights.Risk)
}

// Load reads configuration from the YAML file at path, then environment overrides.
// With envOnly the file is skipped and only defaults and environment apply.
func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	setDefaults(v)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)

	v.SetDefault("data.suppliers_file", "data/suppliers.csv")
	v.SetDefault("data.demand_file", "data/demand.csv")

	w := entities.DefaultWeights()
	v.SetDefault("scoring.weights.otd", w.OTD)
	v.SetDefault("scoring.weights.cost", w.Cost)
	v.SetDefault("scoring.weights.qual", w.Qual)
	v.SetDefault("scoring.weights.risk", w.Risk)

	v.SetDefault("forecast.window", 7)
	v.SetDefault("forecast.horizon", 14)

	p := entities.DefaultSimulationParams()
	v.SetDefault("simulation.lead_time_days", p.LeadTimeDays)
	v.SetDefault("simulation.moq", p.MOQ)
	v.SetDefault("simulation.safety_factor", p.SafetyFactor)
	v.SetDefault("simulation.service_level", p.ServiceLevel)
	v.SetDefault("simulation.horizon_days", p.HorizonDays)
	v.SetDefault("simulation.seed", p.Seed)
	v.SetDefault("simulation.history_days", p.HistoryDays)
	v.SetDefault("simulation.safety_stock_mode", p.SafetyStockMode.String())
	v.SetDefault("simulation.shipment_policy", p.ShipmentPolicy.String())

	v.SetDefault("report.top_n", 10)
	v.SetDefault("report.upcoming_days", 14)

	v.SetDefault("generator.seed", 42)
	v.SetDefault("generator.suppliers", 20)
	v.SetDefault("generator.sku", "HVLV-256")
	v.SetDefault("generator.from", "2024-01-01")
	v.SetDefault("generator.to", "2024-06-30")
}
