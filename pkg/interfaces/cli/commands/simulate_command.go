package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/vsinha/supplyplan/pkg/application/services/analytics"
	"github.com/vsinha/supplyplan/pkg/application/services/simulation"
	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/infrastructure/events"
	"github.com/vsinha/supplyplan/pkg/interfaces/cli/output"
)

// DefaultHistogramBins is the number of backlog histogram bins in a simulation report
const DefaultHistogramBins = 20

// SimulateConfig holds configuration for the simulate command
type SimulateConfig struct {
	DemandFile    string
	SKU           entities.SKU
	All           bool
	Params        entities.SimulationParams
	HistogramBins int
	OutputOptions
}

// SimulateCommand runs the inventory what-if for one SKU or every SKU
type SimulateCommand struct {
	config SimulateConfig
	logger *zap.Logger
}

// NewSimulateCommand creates a new simulate command
func NewSimulateCommand(config SimulateConfig, logger *zap.Logger) *SimulateCommand {
	if config.HistogramBins <= 0 {
		config.HistogramBins = DefaultHistogramBins
	}
	return &SimulateCommand{
		config: config,
		logger: newRunLogger(logger, "simulate"),
	}
}

// Execute runs the simulate command
func (c *SimulateCommand) Execute(ctx context.Context) error {
	if err := c.config.Params.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	repo, err := loadDemand(c.config.DemandFile, c.logger)
	if err != nil {
		return err
	}

	var skus []entities.SKU
	if c.config.All {
		skus, err = repo.GetSKUs()
		if err != nil {
			return err
		}
	} else {
		sku, err := resolveSKU(repo, c.config.SKU)
		if err != nil {
			return err
		}
		skus = []entities.SKU{sku}
	}

	p := c.config.Params
	if c.config.Verbose {
		fmt.Printf("📦 Simulating %d SKU(s): lead time %d days, MOQ %d, horizon %d days, seed %d\n",
			len(skus), p.LeadTimeDays, p.MOQ, p.HorizonDays, p.Seed)
		fmt.Printf("🛡️  Safety stock: %s (factor %v, service level %v), shipment policy: %s\n",
			p.SafetyStockMode, p.SafetyFactor, p.ServiceLevel, p.ShipmentPolicy)
	}

	journal := events.NewMemoryStore()
	logStockout := events.HandlerFunc(func(e events.Event) error {
		c.logger.Debug("stockout transition",
			zap.String("stream", e.Stream),
			zap.String("event", e.Type),
			zap.String("date", e.Date.Format(entities.DateLayout)),
			zap.Any("data", e.Data))
		return nil
	})
	if err := journal.Subscribe(logStockout, events.StockoutStartedEvent, events.StockoutEndedEvent); err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if len(skus) > 1 {
		bar = progressbar.Default(int64(len(skus)))
	}

	var reports []*output.SimulationReport
	for _, sku := range skus {
		if err := ctx.Err(); err != nil {
			return err
		}

		series, err := repo.GetSeries(sku)
		if err != nil {
			return err
		}

		result, err := simulation.Simulate(series, p)
		if errors.Is(err, simulation.ErrNoHistory) && c.config.All {
			c.logger.Warn("skipping sku without history", zap.String("sku", string(sku)))
			continue
		}
		if err != nil {
			return fmt.Errorf("error simulating %s: %w", sku, err)
		}

		c.logger.Info("simulation complete",
			zap.String("sku", string(sku)),
			zap.Float64("fill_rate", result.Summary.FillRate),
			zap.Int("stockout_days", result.Summary.StockoutDays),
			zap.Int("orders", len(result.Orders)))

		if err := events.Journal(journal, result); err != nil {
			return fmt.Errorf("error recording events for %s: %w", sku, err)
		}
		reports = append(reports, &output.SimulationReport{
			Simulation:       result,
			BacklogHistogram: analytics.BacklogHistogram(result.Rows, c.config.HistogramBins),
			Events:           journal.ReadStream(events.SimulationStream(sku), 1),
		})

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	all := journal.ReadAll(0)
	counts := events.Tally(all)
	fields := []zap.Field{zap.Int("streams", len(journal.Streams())), zap.Int("events", len(all))}
	for _, t := range events.SimulationEventTypes {
		fields = append(fields, zap.Int(t, counts[t]))
	}
	c.logger.Info("event journal", fields...)
	if c.config.Verbose {
		fmt.Printf("🗓️  Journal: %d events across %d SKU(s), %d orders placed, %d stockouts\n",
			len(all), len(journal.Streams()), counts[events.OrderPlacedEvent], counts[events.StockoutStartedEvent])
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
	for _, report := range reports {
		if err := output.Generate(report, outputConfig); err != nil {
			return fmt.Errorf("error generating output: %w", err)
		}
	}

	if c.config.Verbose {
		fmt.Println("🏁 Simulation complete!")
	}
	return nil
}
