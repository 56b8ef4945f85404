package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/supplyplan/pkg/application/services/analytics"
	"github.com/vsinha/supplyplan/pkg/application/services/forecasting"
	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/domain/services"
	"github.com/vsinha/supplyplan/pkg/interfaces/cli/output"
)

// ForecastConfig holds configuration for the forecast command
type ForecastConfig struct {
	DemandFile string
	SKU        entities.SKU
	Window     int
	Horizon    int
	OutputOptions
}

// ForecastCommand projects a moving average forward for one SKU
type ForecastCommand struct {
	config ForecastConfig
	logger *zap.Logger
}

// NewForecastCommand creates a new forecast command
func NewForecastCommand(config ForecastConfig, logger *zap.Logger) *ForecastCommand {
	return &ForecastCommand{
		config: config,
		logger: newRunLogger(logger, "forecast"),
	}
}

// Execute runs the forecast command
func (c *ForecastCommand) Execute(ctx context.Context) error {
	repo, err := loadDemand(c.config.DemandFile, c.logger)
	if err != nil {
		return err
	}

	sku, err := resolveSKU(repo, c.config.SKU)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("📈 Forecasting %s with a %d-day moving average over %d days\n",
			sku, c.config.Window, c.config.Horizon)
	}

	series, err := repo.GetSeries(sku)
	if err != nil {
		return err
	}

	result, err := forecasting.Forecast(series, c.config.Window, c.config.Horizon)
	if err != nil {
		return fmt.Errorf("error forecasting demand: %w", err)
	}
	c.logger.Info("forecast computed",
		zap.String("sku", string(sku)),
		zap.Int("history_days", series.Len()),
		zap.Int("horizon", c.config.Horizon))

	demands, err := repo.GetDemandsForSKU(sku)
	if err != nil {
		return err
	}
	observed := services.ObservedPoints(demands, sku)

	report := &output.ForecastReport{
		Forecast:       result,
		WeekdayProfile: analytics.WeekdayProfile(observed),
		WeekHeatmap:    analytics.WeekHeatmap(observed),
	}
	if err := output.Generate(report, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("🏁 Forecast complete!")
	}
	return nil
}
