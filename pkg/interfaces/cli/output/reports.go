package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/vsinha/supplyplan/pkg/application/dto"
	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/domain/services"
	"github.com/vsinha/supplyplan/pkg/infrastructure/events"
	csvrepo "github.com/vsinha/supplyplan/pkg/infrastructure/repositories/csv"
)

var writer = csvrepo.NewWriter()

// num renders a value for the text tables; unknown values print as "n/a"
func num(v float64) string {
	s := csvrepo.FormatNumber(v)
	if s == "" {
		return "n/a"
	}
	return s
}

// fileSafe maps a SKU to a file name fragment: anything other than letters,
// digits, '-' and '_' becomes '_'
func fileSafe(sku entities.SKU) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, string(sku))
}

// roundReport keeps two decimals for summary figures
func roundReport(v float64) float64 {
	return services.RoundPlaces(v, 2)
}

func rule(widths ...int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, " ")
}

// ScorecardReport is the ranked supplier table plus the quality pareto
type ScorecardReport struct {
	Weights        entities.WeightVector     `json:"weights"`
	TotalSuppliers int                       `json:"total_suppliers"`
	Ranked         []entities.ScoredSupplier `json:"ranked"`
	QualityPareto  []entities.SupplierRecord `json:"quality_pareto,omitempty"`
}

// NewScorecardReport builds a report from the ranked rows to show and the quality pareto
func NewScorecardReport(result *dto.ScorecardResult, top []entities.ScoredSupplier, pareto []entities.SupplierRecord) *ScorecardReport {
	return &ScorecardReport{
		Weights:        result.Weights,
		TotalSuppliers: len(result.Suppliers),
		Ranked:         top,
		QualityPareto:  pareto,
	}
}

func (r *ScorecardReport) Name() string { return "supplier_scorecard" }

func (r *ScorecardReport) writeText(w io.Writer) {
	fmt.Fprintf(w, "🏭 Supplier Scorecard\n")
	fmt.Fprintf(w, "====================\n\n")
	fmt.Fprintf(w, "Suppliers scored: %d\n", r.TotalSuppliers)
	fmt.Fprintf(w, "Weights: otd=%s cost=%s qual=%s risk=%s\n\n",
		num(r.Weights.OTD), num(r.Weights.Cost), num(r.Weights.Qual), num(r.Weights.Risk))

	if len(r.Ranked) > 0 {
		fmt.Fprintf(w, "🏆 Top %d Suppliers:\n", len(r.Ranked))
		fmt.Fprintf(w, "%-4s %-10s %-20s %-8s %-10s %-8s %-6s %-8s\n",
			"#", "ID", "Name", "OTD", "Cost Var", "PPM", "Risk", "Score")
		fmt.Fprintln(w, rule(4, 10, 20, 8, 10, 8, 6, 8))
		for i, s := range r.Ranked {
			fmt.Fprintf(w, "%-4d %-10s %-20s %-8s %-10s %-8s %-6s %-8s\n",
				i+1,
				s.SupplierID,
				s.Name,
				num(s.OTDRate),
				num(s.CostVariance),
				num(s.QualityPPM),
				num(s.RiskEvents12m),
				num(s.Score))
		}
		fmt.Fprintln(w)
	}

	if len(r.QualityPareto) > 0 {
		fmt.Fprintf(w, "⚠️  Quality Pareto (highest PPM):\n")
		for _, s := range r.QualityPareto {
			fmt.Fprintf(w, "  %-10s %-20s %s ppm\n", s.SupplierID, s.Name, num(s.QualityPPM))
		}
		fmt.Fprintln(w)
	}
}

func (r *ScorecardReport) tables() []table {
	tables := []table{{
		file: fmt.Sprintf("supplier_scorecard_top%d.csv", len(r.Ranked)),
		write: func(out io.Writer) error {
			return writer.WriteScorecard(out, r.Ranked)
		},
	}}
	if len(r.QualityPareto) > 0 {
		tables = append(tables, table{
			file: "quality_pareto.csv",
			write: func(out io.Writer) error {
				pareto := make([]*entities.SupplierRecord, len(r.QualityPareto))
				for i := range r.QualityPareto {
					pareto[i] = &r.QualityPareto[i]
				}
				return writer.WriteSuppliers(out, pareto)
			},
		})
	}
	return tables
}

// ForecastReport is a forecast run with the weekday and ISO week views of the history
type ForecastReport struct {
	Forecast       *dto.ForecastResult  `json:"forecast"`
	WeekdayProfile []dto.WeekdayAverage `json:"weekday_profile,omitempty"`
	WeekHeatmap    []dto.HeatmapCell    `json:"week_heatmap,omitempty"`
}

func (r *ForecastReport) Name() string { return "forecast_" + fileSafe(r.Forecast.SKU) }

func (r *ForecastReport) writeText(w io.Writer) {
	f := r.Forecast
	fmt.Fprintf(w, "📈 Demand Forecast: %s\n", f.SKU)
	fmt.Fprintf(w, "==========================\n\n")
	fmt.Fprintf(w, "History days: %d\n", len(f.Actual))
	fmt.Fprintf(w, "Window: %d days\n", f.Window)
	fmt.Fprintf(w, "Horizon: %d days\n\n", f.Horizon)

	if len(f.Future) > 0 {
		fmt.Fprintf(w, "🔮 Forecast:\n")
		fmt.Fprintf(w, "%-12s %-10s\n", "Date", "Qty")
		fmt.Fprintln(w, rule(12, 10))
		for _, p := range f.Future {
			fmt.Fprintf(w, "%-12s %-10s\n", p.Date.Format(entities.DateLayout), num(p.Qty))
		}
		fmt.Fprintln(w)
	}

	if len(r.WeekdayProfile) > 0 {
		fmt.Fprintf(w, "📅 Average by weekday:\n")
		for _, d := range r.WeekdayProfile {
			fmt.Fprintf(w, "  %-10s %-10s (%d days)\n", d.Weekday, num(d.AvgQty), d.Samples)
		}
		fmt.Fprintln(w)
	}
}

func (r *ForecastReport) tables() []table {
	return []table{{
		file: r.Name() + ".csv",
		write: func(out io.Writer) error {
			return writer.WriteForecast(out, r.Forecast)
		},
	}}
}

// SimulationReport is a what-if run with its backlog distribution and event journal
type SimulationReport struct {
	Simulation       *dto.SimulationResult `json:"simulation"`
	BacklogHistogram []dto.HistogramBin    `json:"backlog_histogram,omitempty"`
	Events           []events.Event        `json:"events,omitempty"`
}

func (r *SimulationReport) Name() string { return "simulation_" + fileSafe(r.Simulation.SKU) }

func (r *SimulationReport) writeText(w io.Writer) {
	s := r.Simulation
	fmt.Fprintf(w, "📦 Inventory What-If: %s\n", s.SKU)
	fmt.Fprintf(w, "==========================\n\n")
	fmt.Fprintf(w, "Mean daily demand: %s\n", num(roundReport(s.Mu)))
	fmt.Fprintf(w, "Demand std dev: %s\n", num(roundReport(s.Sigma)))
	fmt.Fprintf(w, "Safety stock: %s\n", num(roundReport(s.SafetyStock)))
	fmt.Fprintf(w, "Order quantity: %s\n", num(s.OrderQty))
	fmt.Fprintf(w, "Orders placed: %d\n\n", len(s.Orders))

	fmt.Fprintf(w, "📊 Summary:\n")
	fmt.Fprintf(w, "  Fill rate: %s%%\n", num(roundReport(s.Summary.FillRate*100)))
	fmt.Fprintf(w, "  Stockout days: %d\n", s.Summary.StockoutDays)
	fmt.Fprintf(w, "  Average on-hand: %s\n\n", num(roundReport(s.Summary.AvgOnHand)))

	if len(s.Orders) > 0 {
		fmt.Fprintf(w, "🚚 Replenishment Orders:\n")
		fmt.Fprintf(w, "%-12s %-12s %-10s\n", "Placed", "Arrival", "Qty")
		fmt.Fprintln(w, rule(12, 12, 10))
		for _, o := range s.Orders {
			fmt.Fprintf(w, "%-12s %-12s %-10s\n",
				o.PlacedOn.Format(entities.DateLayout),
				o.Arrival.Format(entities.DateLayout),
				num(o.Quantity))
		}
		fmt.Fprintln(w)
	}

	if len(r.Events) > 0 {
		fmt.Fprintf(w, "🗓️  Timeline:\n")
		for _, e := range r.Events {
			fmt.Fprintf(w, "  %-12s %-18s %v\n", e.Date.Format(entities.DateLayout), e.Type, e.Data)
		}
		fmt.Fprintln(w)
	}
}

func (r *SimulationReport) tables() []table {
	return []table{{
		file: r.Name() + ".csv",
		write: func(out io.Writer) error {
			return writer.WriteSimulation(out, r.Simulation)
		},
	}}
}

// OverviewReport holds the headline KPIs of the loaded tables
type OverviewReport struct {
	Overview dto.OverviewResult `json:"overview"`
}

func (r *OverviewReport) Name() string { return "overview" }

func (r *OverviewReport) writeText(w io.Writer) {
	o := r.Overview
	fmt.Fprintf(w, "🧭 Supply Plan Overview\n")
	fmt.Fprintf(w, "======================\n\n")
	fmt.Fprintf(w, "Suppliers loaded: %d\n", o.SuppliersLoaded)
	fmt.Fprintf(w, "Average OTD: %s%%\n", num(roundReport(o.AvgOTDPercent)))
	fmt.Fprintf(w, "Demand next %d days from %s: %s\n",
		o.UpcomingDays, o.AsOf.Format(entities.DateLayout), num(o.UpcomingDemand))
}

func (r *OverviewReport) tables() []table {
	return nil
}
