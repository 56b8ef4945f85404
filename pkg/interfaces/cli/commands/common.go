package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/supplyplan/pkg/infrastructure/repositories/memory"
)

// OutputOptions are the report flags shared by every reporting command
type OutputOptions struct {
	OutputDir string
	Format    string
	Verbose   bool
}

// newRunLogger tags every log line of one command run with a fresh run id
func newRunLogger(logger *zap.Logger, command string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.With(zap.String("command", command), zap.String("run_id", uuid.NewString()))
}

func requireFile(kind, path string) error {
	if path == "" {
		return fmt.Errorf("%s file is required", kind)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%s file not found: %s", kind, path)
	}
	return nil
}

// loadSuppliers reads the suppliers table into an in-memory repository
func loadSuppliers(path string, logger *zap.Logger) (*memory.SupplierRepository, error) {
	if err := requireFile("suppliers", path); err != nil {
		return nil, err
	}

	suppliers, err := csv.NewLoader().LoadSuppliers(path)
	if err != nil {
		return nil, fmt.Errorf("error loading suppliers: %w", err)
	}

	incomplete := 0
	for _, s := range suppliers {
		if s.HasUnknownMetric() {
			incomplete++
		}
	}
	if incomplete > 0 {
		logger.Warn("suppliers with unparseable metrics will score as unknown",
			zap.Int("suppliers", incomplete))
	}

	repo := memory.NewSupplierRepository(len(suppliers))
	if err := repo.LoadSuppliers(suppliers); err != nil {
		return nil, fmt.Errorf("failed to load suppliers into repository: %w", err)
	}
	logger.Info("suppliers loaded", zap.String("file", path), zap.Int("count", repo.Count()))
	return repo, nil
}

// loadDemand reads the demand table into an in-memory repository
func loadDemand(path string, logger *zap.Logger) (*memory.DemandRepository, error) {
	if err := requireFile("demand", path); err != nil {
		return nil, err
	}

	result, err := csv.NewLoader().LoadDemand(path)
	if err != nil {
		return nil, fmt.Errorf("error loading demand: %w", err)
	}
	if result.Dropped > 0 {
		logger.Warn("dropped demand rows with an invalid date, sku or quantity",
			zap.Int("rows", result.Dropped))
	}

	repo := memory.NewDemandRepository()
	if err := repo.LoadDemands(result.Demands); err != nil {
		return nil, fmt.Errorf("failed to load demand into repository: %w", err)
	}
	logger.Info("demand loaded", zap.String("file", path), zap.Int("rows", len(result.Demands)))
	return repo, nil
}

// resolveSKU returns sku, or the first SKU in repo when sku is empty
func resolveSKU(repo *memory.DemandRepository, sku entities.SKU) (entities.SKU, error) {
	skus, err := repo.GetSKUs()
	if err != nil {
		return "", err
	}
	if len(skus) == 0 {
		return "", fmt.Errorf("demand table has no valid rows")
	}
	if sku == "" {
		return skus[0], nil
	}
	for _, s := range skus {
		if s == sku {
			return sku, nil
		}
	}
	return "", fmt.Errorf("sku not found in demand table: %s", sku)
}
