package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/supplyplan/pkg/application/services/analytics"
	"github.com/vsinha/supplyplan/pkg/interfaces/cli/output"
)

// OverviewConfig holds configuration for the overview command
type OverviewConfig struct {
	SuppliersFile string
	DemandFile    string
	AsOf          time.Time
	Days          int
	OutputOptions
}

// OverviewCommand prints the headline KPIs of the loaded tables
type OverviewCommand struct {
	config OverviewConfig
	logger *zap.Logger
}

// NewOverviewCommand creates a new overview command
func NewOverviewCommand(config OverviewConfig, logger *zap.Logger) *OverviewCommand {
	if config.AsOf.IsZero() {
		config.AsOf = time.Now()
	}
	return &OverviewCommand{
		config: config,
		logger: newRunLogger(logger, "overview"),
	}
}

// Execute runs the overview command
func (c *OverviewCommand) Execute(ctx context.Context) error {
	if c.config.Days < 1 {
		return fmt.Errorf("validation error: days must be at least 1, got %d", c.config.Days)
	}

	supplierRepo, err := loadSuppliers(c.config.SuppliersFile, c.logger)
	if err != nil {
		return err
	}
	demandRepo, err := loadDemand(c.config.DemandFile, c.logger)
	if err != nil {
		return err
	}

	suppliers, err := supplierRepo.GetAllSuppliers()
	if err != nil {
		return err
	}
	demands, err := demandRepo.GetDemands()
	if err != nil {
		return err
	}

	report := &output.OverviewReport{
		Overview: analytics.Overview(suppliers, demands, c.config.AsOf, c.config.Days),
	}
	c.logger.Info("overview computed",
		zap.Int("suppliers", report.Overview.SuppliersLoaded),
		zap.Float64("upcoming_demand", report.Overview.UpcomingDemand))

	if err := output.Generate(report, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}
