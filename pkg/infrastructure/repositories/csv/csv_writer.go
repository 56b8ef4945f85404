package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/vsinha/supplyplan/pkg/application/dto"
	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

// ScorecardHeader is the header of the exported scorecard table
var ScorecardHeader = append(append([]string{}, SupplierColumns...), "score")

// ForecastHeader is the header of the exported forecast table
var ForecastHeader = []string{"date", "qty", "ma", "forecast"}

// SimulationHeader is the header of the exported simulation trace
var SimulationHeader = []string{"date", "demand", "on_hand", "backlog"}

// DemandHeader is the header of a written demand table, matching DemandColumns
var DemandHeader = DemandColumns

// Writer writes report tables and sample inputs as CSV
type Writer struct{}

// NewWriter creates a new CSV writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteScorecard writes ranked suppliers with their score. Unknown values are empty cells.
func (w *Writer) WriteScorecard(out io.Writer, suppliers []entities.ScoredSupplier) error {
	rows := make([][]string, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, append(supplierRow(s.SupplierRecord), FormatNumber(s.Score)))
	}
	return writeTable(out, ScorecardHeader, rows)
}

// WriteSuppliers writes a suppliers input table
func (w *Writer) WriteSuppliers(out io.Writer, suppliers []*entities.SupplierRecord) error {
	rows := make([][]string, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, supplierRow(*s))
	}
	return writeTable(out, SupplierColumns, rows)
}

// WriteDemand writes a demand input table
func (w *Writer) WriteDemand(out io.Writer, demands []*entities.DemandPoint) error {
	rows := make([][]string, 0, len(demands))
	for _, d := range demands {
		rows = append(rows, []string{d.Date.Format(entities.DateLayout), string(d.SKU), FormatNumber(d.Qty)})
	}
	return writeTable(out, DemandHeader, rows)
}

// WriteForecast writes one row per day of history and horizon
func (w *Writer) WriteForecast(out io.Writer, result *dto.ForecastResult) error {
	forecastRows := result.Rows()
	rows := make([][]string, 0, len(forecastRows))
	for _, r := range forecastRows {
		rows = append(rows, []string{
			r.Date.Format(entities.DateLayout),
			formatOptional(r.Qty),
			formatOptional(r.MA),
			formatOptional(r.Forecast),
		})
	}
	return writeTable(out, ForecastHeader, rows)
}

// WriteSimulation writes the daily trace of a simulation run
func (w *Writer) WriteSimulation(out io.Writer, result *dto.SimulationResult) error {
	rows := make([][]string, 0, len(result.Rows))
	for _, r := range result.Rows {
		rows = append(rows, []string{
			r.Date.Format(entities.DateLayout),
			FormatNumber(r.Demand),
			FormatNumber(r.OnHand),
			FormatNumber(r.Backlog),
		})
	}
	return writeTable(out, SimulationHeader, rows)
}

// WriteFile creates dir if needed and writes one table to dir/name through write.
// name must be a plain file name.
func (w *Writer) WriteFile(dir, name string, write func(io.Writer) error) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid output file name: %q", name)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(dir, name)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filename, err)
	}

	if err := write(file); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", filename, err)
	}
	return filename, nil
}

// FormatNumber renders v in its shortest exact decimal form; NaN and infinities
// render as an empty string.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return decimal.NewFromFloat(v).String()
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatNumber(*v)
}

func supplierRow(s entities.SupplierRecord) []string {
	return []string{
		string(s.SupplierID),
		s.Name,
		FormatNumber(s.OTDRate),
		FormatNumber(s.CostVariance),
		FormatNumber(s.QualityPPM),
		FormatNumber(s.RiskEvents12m),
	}
}

func writeTable(out io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}
