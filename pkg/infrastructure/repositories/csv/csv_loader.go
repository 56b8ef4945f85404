package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

// SupplierColumns are the required columns of the suppliers table
var SupplierColumns = []string{"supplier_id", "name", "otd_rate", "cost_variance", "quality_ppm", "risk_events_12m"}

// DemandColumns are the required columns of the demand table
var DemandColumns = []string{"date", "sku", "qty"}

// Loader handles loading supplier and demand tables from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// DemandLoadResult holds the parsed demand rows and how many rows were dropped
type DemandLoadResult struct {
	Demands []*entities.DemandPoint
	Dropped int
}

// LoadSuppliers loads suppliers from a CSV file
func (l *Loader) LoadSuppliers(filename string) ([]*entities.SupplierRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open suppliers file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadSuppliers(file)
}

// ReadSuppliers parses a suppliers table. Columns may appear in any order and extra
// columns are ignored. Numeric cells that do not parse are stored as NaN.
func (l *Loader) ReadSuppliers(r io.Reader) ([]*entities.SupplierRecord, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read suppliers CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("suppliers CSV must have a header row")
	}

	cols, err := columnIndex(records[0], SupplierColumns)
	if err != nil {
		return nil, fmt.Errorf("suppliers CSV: %w", err)
	}

	suppliers := make([]*entities.SupplierRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		suppliers = append(suppliers, &entities.SupplierRecord{
			SupplierID:    entities.SupplierID(cell(record, cols["supplier_id"])),
			Name:          cell(record, cols["name"]),
			OTDRate:       entities.ParseMetric(cell(record, cols["otd_rate"])),
			CostVariance:  entities.ParseMetric(cell(record, cols["cost_variance"])),
			QualityPPM:    entities.ParseMetric(cell(record, cols["quality_ppm"])),
			RiskEvents12m: entities.ParseMetric(cell(record, cols["risk_events_12m"])),
		})
	}

	return suppliers, nil
}

// LoadDemand loads demand observations from a CSV file
func (l *Loader) LoadDemand(filename string) (*DemandLoadResult, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open demand file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadDemand(file)
}

// ReadDemand parses a demand table. Rows with an unparseable date, a missing SKU or
// an invalid quantity are dropped and counted rather than failing the load.
func (l *Loader) ReadDemand(r io.Reader) (*DemandLoadResult, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read demand CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("demand CSV must have a header row")
	}

	cols, err := columnIndex(records[0], DemandColumns)
	if err != nil {
		return nil, fmt.Errorf("demand CSV: %w", err)
	}

	result := &DemandLoadResult{Demands: make([]*entities.DemandPoint, 0, len(records)-1)}
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}

		date, err := ParseDate(cell(record, cols["date"]))
		if err != nil {
			result.Dropped++
			continue
		}

		qty, err := strconv.ParseFloat(cell(record, cols["qty"]), 64)
		if err != nil {
			result.Dropped++
			continue
		}

		demand, err := entities.NewDemandPoint(date, entities.SKU(cell(record, cols["sku"])), qty)
		if err != nil {
			result.Dropped++
			continue
		}
		result.Demands = append(result.Demands, demand)
	}

	return result, nil
}

// ParseDate accepts a YYYY-MM-DD date or an RFC 3339 timestamp, which is truncated
// to its calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(entities.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return entities.CalendarDay(t), nil
}

// Helper functions for parsing CSV records

func readAll(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// columnIndex maps each required column to its position in header
func columnIndex(header, required []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	cols := make(map[string]int, len(required))
	var missing []string
	for _, col := range required {
		i, ok := positions[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		cols[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

