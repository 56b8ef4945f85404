package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/supplyplan/pkg/interfaces/cli/commands"
)

func (a *app) outputOptions() commands.OutputOptions {
	return commands.OutputOptions{
		OutputDir: a.outputDir,
		Format:    a.format,
		Verbose:   a.verbose,
	}
}

func scoreCmd(a *app) *cobra.Command {
	var (
		suppliersFile         string
		otd, cost, qual, risk float64
		topN, paretoN         int
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rank suppliers by a weighted OTD, cost, quality and risk score",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := commands.ScoreConfig{
				SuppliersFile: a.cfg.Data.SuppliersFile,
				Weights:       a.cfg.Scoring.Weights,
				TopN:          a.cfg.Report.TopN,
				ParetoN:       paretoN,
				OutputOptions: a.outputOptions(),
			}
			f := c.Flags()
			if f.Changed("suppliers") {
				cfg.SuppliersFile = suppliersFile
			}
			if f.Changed("w-otd") {
				cfg.Weights.OTD = otd
			}
			if f.Changed("w-cost") {
				cfg.Weights.Cost = cost
			}
			if f.Changed("w-qual") {
				cfg.Weights.Qual = qual
			}
			if f.Changed("w-risk") {
				cfg.Weights.Risk = risk
			}
			if f.Changed("top") {
				cfg.TopN = topN
			}
			weights, err := entities.NewWeightVector(cfg.Weights.OTD, cfg.Weights.Cost, cfg.Weights.Qual, cfg.Weights.Risk)
			if err != nil {
				return fmt.Errorf("validation error: %w", err)
			}
			cfg.Weights = *weights
			return commands.NewScoreCommand(cfg, a.logger).Execute(c.Context())
		},
	}

	cmd.Flags().StringVar(&suppliersFile, "suppliers", "", "Path to suppliers CSV file")
	cmd.Flags().Float64Var(&otd, "w-otd", 0, "Weight of on-time delivery")
	cmd.Flags().Float64Var(&cost, "w-cost", 0, "Weight of cost variance")
	cmd.Flags().Float64Var(&qual, "w-qual", 0, "Weight of quality (PPM)")
	cmd.Flags().Float64Var(&risk, "w-risk", 0, "Weight of risk events")
	cmd.Flags().IntVar(&topN, "top", 0, "Number of ranked suppliers to report")
	cmd.Flags().IntVar(&paretoN, "pareto", 10, "Number of worst-PPM suppliers to report (0 disables)")
	return cmd
}

func forecastCmd(a *app) *cobra.Command {
	var (
		demandFile, sku string
		window, horizon int
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project a moving-average demand forecast for one SKU",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := commands.ForecastConfig{
				DemandFile:    a.cfg.Data.DemandFile,
				SKU:           entities.SKU(sku),
				Window:        a.cfg.Forecast.Window,
				Horizon:       a.cfg.Forecast.Horizon,
				OutputOptions: a.outputOptions(),
			}
			f := c.Flags()
			if f.Changed("demand") {
				cfg.DemandFile = demandFile
			}
			if f.Changed("window") {
				cfg.Window = window
			}
			if f.Changed("horizon") {
				cfg.Horizon = horizon
			}
			return commands.NewForecastCommand(cfg, a.logger).Execute(c.Context())
		},
	}

	cmd.Flags().StringVar(&demandFile, "demand", "", "Path to demand CSV file")
	cmd.Flags().StringVar(&sku, "sku", "", "SKU to forecast (default: first SKU in the table)")
	cmd.Flags().IntVar(&window, "window", 0, "Moving-average window in days")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Forecast horizon in days")
	return cmd
}

func simulateCmd(a *app) *cobra.Command {
	var (
		demandFile, sku    string
		all                bool
		lead, moq, horizon int
		history, bins      int
		factor, service    float64
		seed               int64
		mode, policy       string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the inventory what-if with a safety-stock reorder policy",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			sim := a.cfg.Simulation
			f := c.Flags()
			if f.Changed("lead-time") {
				sim.LeadTimeDays = lead
			}
			if f.Changed("moq") {
				sim.MOQ = moq
			}
			if f.Changed("safety-factor") {
				sim.SafetyFactor = factor
			}
			if f.Changed("service-level") {
				sim.ServiceLevel = service
			}
			if f.Changed("horizon") {
				sim.HorizonDays = horizon
			}
			if f.Changed("seed") {
				sim.Seed = seed
			}
			if f.Changed("history") {
				sim.HistoryDays = history
			}
			if f.Changed("safety-mode") {
				sim.SafetyStockMode = mode
			}
			if f.Changed("shipment-policy") {
				sim.ShipmentPolicy = policy
			}

			params, err := sim.Params()
			if err != nil {
				return fmt.Errorf("validation error: %w", err)
			}

			cfg := commands.SimulateConfig{
				DemandFile:    a.cfg.Data.DemandFile,
				SKU:           entities.SKU(sku),
				All:           all,
				Params:        *params,
				HistogramBins: bins,
				OutputOptions: a.outputOptions(),
			}
			if f.Changed("demand") {
				cfg.DemandFile = demandFile
			}
			return commands.NewSimulateCommand(cfg, a.logger).Execute(c.Context())
		},
	}

	cmd.Flags().StringVar(&demandFile, "demand", "", "Path to demand CSV file")
	cmd.Flags().StringVar(&sku, "sku", "", "SKU to simulate (default: first SKU in the table)")
	cmd.Flags().BoolVar(&all, "all", false, "Simulate every SKU in the demand table")
	cmd.Flags().IntVar(&lead, "lead-time", 0, "Replenishment lead time in days")
	cmd.Flags().IntVar(&moq, "moq", 0, "Minimum order quantity")
	cmd.Flags().Float64Var(&factor, "safety-factor", 0, "Safety stock as a multiple of demand std dev")
	cmd.Flags().Float64Var(&service, "service-level", 0, "Target service level in (0,1), used by --safety-mode service_level")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Simulation horizon in days")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for demand draws")
	cmd.Flags().IntVar(&history, "history", 0, "Trailing days of history used to fit demand")
	cmd.Flags().StringVar(&mode, "safety-mode", "", "Safety stock mode: sigma or service_level")
	cmd.Flags().StringVar(&policy, "shipment-policy", "", "Shipment policy: net_of_backlog or full_backorder")
	cmd.Flags().IntVar(&bins, "bins", commands.DefaultHistogramBins, "Backlog histogram bins")
	return cmd
}

func overviewCmd(a *app) *cobra.Command {
	var (
		suppliersFile, demandFile, asOf string
		days                            int
	)

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show headline KPIs of the supplier and demand tables",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := commands.OverviewConfig{
				SuppliersFile: a.cfg.Data.SuppliersFile,
				DemandFile:    a.cfg.Data.DemandFile,
				Days:          a.cfg.Report.UpcomingDays,
				OutputOptions: a.outputOptions(),
			}
			f := c.Flags()
			if f.Changed("suppliers") {
				cfg.SuppliersFile = suppliersFile
			}
			if f.Changed("demand") {
				cfg.DemandFile = demandFile
			}
			if f.Changed("days") {
				cfg.Days = days
			}
			if asOf != "" {
				t, err := csv.ParseDate(asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
				cfg.AsOf = t
			}
			return commands.NewOverviewCommand(cfg, a.logger).Execute(c.Context())
		},
	}

	cmd.Flags().StringVar(&suppliersFile, "suppliers", "", "Path to suppliers CSV file")
	cmd.Flags().StringVar(&demandFile, "demand", "", "Path to demand CSV file")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Reference date YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&days, "days", 0, "Number of upcoming demand rows to sum")
	return cmd
}

func generateCmd(a *app) *cobra.Command {
	var (
		outputDir, sku, from, to string
		suppliers                int
		seed                     int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic suppliers.csv and demand.csv",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			gen := a.cfg.Generator
			f := c.Flags()
			if f.Changed("suppliers") {
				gen.Suppliers = suppliers
			}
			if f.Changed("seed") {
				gen.Seed = seed
			}
			if f.Changed("sku") {
				gen.SKU = sku
			}
			if f.Changed("from") {
				gen.From = from
			}
			if f.Changed("to") {
				gen.To = to
			}

			start, err := parseFlagDate("from", gen.From)
			if err != nil {
				return err
			}
			end, err := parseFlagDate("to", gen.To)
			if err != nil {
				return err
			}

			cfg := commands.GenerateConfig{
				Suppliers: gen.Suppliers,
				SKU:       entities.SKU(gen.SKU),
				From:      start,
				To:        end,
				OutputDir: outputDir,
				Seed:      gen.Seed,
				Verbose:   a.verbose,
			}
			return commands.NewGenerateCommand(cfg, a.logger).Execute(c.Context())
		},
	}

	cmd.Flags().StringVar(&outputDir, "dir", "data", "Directory for the generated CSV files")
	cmd.Flags().IntVar(&suppliers, "suppliers", 0, "Number of suppliers")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed")
	cmd.Flags().StringVar(&sku, "sku", "", "SKU of the demand table")
	cmd.Flags().StringVar(&from, "from", "", "First demand date YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Last demand date YYYY-MM-DD")
	return cmd
}

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning JSON API",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := a.cfg
			if c.Flags().Changed("addr") {
				cfg.Server.HTTPAddr = addr
			}
			return commands.NewServeCommand(commands.ServeConfig{
				Config:  cfg,
				Verbose: a.verbose,
			}, a.logger).Execute(c.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default from config, :8080)")
	return cmd
}

func parseFlagDate(name, value string) (time.Time, error) {
	t, err := csv.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return t, nil
}
