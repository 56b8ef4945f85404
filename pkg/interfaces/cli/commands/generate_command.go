package commands

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/infrastructure/generator"
	"github.com/vsinha/supplyplan/pkg/infrastructure/repositories/csv"
)

// GenerateConfig holds configuration for sample data generation
type GenerateConfig struct {
	Suppliers int          // Number of suppliers to generate
	SKU       entities.SKU // Item of the demand table
	From      time.Time    // First demand date
	To        time.Time    // Last demand date, inclusive
	OutputDir string       // Output directory for generated files
	Seed      int64        // Random seed for reproducible generation
	Verbose   bool         // Verbose output
}

// GenerateCommand writes a synthetic suppliers.csv and demand.csv
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
	logger *zap.Logger
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig, logger *zap.Logger) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		logger: newRunLogger(logger, "generate"),
	}
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if err := cmd.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Printf(
			"🔧 Generating %d suppliers and %s demand from %s to %s\n",
			cmd.config.Suppliers,
			cmd.config.SKU,
			cmd.config.From.Format(entities.DateLayout),
			cmd.config.To.Format(entities.DateLayout),
		)
		fmt.Printf("📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Printf("🎲 Random seed: %d\n", cmd.config.Seed)
	}

	// Draw order is part of the seeded output: suppliers, then demand
	suppliers := generator.Suppliers(cmd.rand, cmd.config.Suppliers)
	demands := generator.Demand(cmd.rand, cmd.config.SKU, cmd.config.From, cmd.config.To)

	writer := csv.NewWriter()

	if cmd.config.Verbose {
		fmt.Println("🏭 Generating suppliers.csv...")
	}
	if _, err := writer.WriteFile(cmd.config.OutputDir, "suppliers.csv", func(w io.Writer) error {
		return writer.WriteSuppliers(w, suppliers)
	}); err != nil {
		return fmt.Errorf("failed to generate suppliers: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Println("📋 Generating demand.csv...")
	}
	if _, err := writer.WriteFile(cmd.config.OutputDir, "demand.csv", func(w io.Writer) error {
		return writer.WriteDemand(w, demands)
	}); err != nil {
		return fmt.Errorf("failed to generate demand: %w", err)
	}

	cmd.logger.Info("sample data generated",
		zap.String("dir", cmd.config.OutputDir),
		zap.Int("suppliers", len(suppliers)),
		zap.Int("demand_rows", len(demands)))

	if cmd.config.Verbose {
		fmt.Printf("✅ Sample data generated successfully in %s\n", cmd.config.OutputDir)
	}

	return nil
}

func (cmd *GenerateCommand) validate() error {
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if cmd.config.Suppliers < 1 {
		return fmt.Errorf("suppliers must be at least 1, got %d", cmd.config.Suppliers)
	}
	if cmd.config.SKU == "" {
		return fmt.Errorf("sku cannot be empty")
	}
	if cmd.config.To.Before(cmd.config.From) {
		return fmt.Errorf("end date %s is before start date %s",
			cmd.config.To.Format(entities.DateLayout), cmd.config.From.Format(entities.DateLayout))
	}
	return nil
}
