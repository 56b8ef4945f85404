package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/supplyplan/pkg/application/dto"
	"github.com/vsinha/supplyplan/pkg/application/services/analytics"
	"github.com/vsinha/supplyplan/pkg/application/services/scoring"
	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/interfaces/cli/output"
)

// ScoreConfig holds configuration for the score command
type ScoreConfig struct {
	SuppliersFile string
	Weights       entities.WeightVector
	TopN          int
	ParetoN       int
	OutputOptions
}

// ScoreCommand ranks suppliers by their composite score
type ScoreCommand struct {
	config ScoreConfig
	logger *zap.Logger
}

// NewScoreCommand creates a new score command
func NewScoreCommand(config ScoreConfig, logger *zap.Logger) *ScoreCommand {
	return &ScoreCommand{
		config: config,
		logger: newRunLogger(logger, "score"),
	}
}

// Execute runs the score command
func (c *ScoreCommand) Execute(ctx context.Context) error {
	if err := c.config.Weights.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("🏭 Scoring suppliers from %s\n", c.config.SuppliersFile)
		fmt.Printf("⚖️  Weights: otd=%v cost=%v qual=%v risk=%v\n",
			c.config.Weights.OTD, c.config.Weights.Cost, c.config.Weights.Qual, c.config.Weights.Risk)
	}

	repo, err := loadSuppliers(c.config.SuppliersFile, c.logger)
	if err != nil {
		return err
	}
	suppliers, err := repo.GetAllSuppliers()
	if err != nil {
		return err
	}

	startTime := time.Now()
	scored, err := scoring.Score(suppliers, c.config.Weights)
	if err != nil {
		return fmt.Errorf("error scoring suppliers: %w", err)
	}
	c.logger.Info("suppliers scored",
		zap.Int("suppliers", len(scored)),
		zap.Duration("elapsed", time.Since(startTime)))

	result := &dto.ScorecardResult{Weights: c.config.Weights, Suppliers: scored}
	var pareto []entities.SupplierRecord
	if c.config.ParetoN > 0 {
		pareto = analytics.QualityPareto(suppliers, c.config.ParetoN)
	}

	report := output.NewScorecardReport(result, scoring.TopN(scored, c.config.TopN), pareto)
	if err := output.Generate(report, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("🏁 Scoring complete!")
	}
	return nil
}
