package dto

import (
	"time"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

// ScorecardResult contains the ranked output of a scoring run
type ScorecardResult struct {
	Weights   entities.WeightVector     `json:"weights"`
	Suppliers []entities.ScoredSupplier `json:"suppliers"`
}

// ForecastResult contains the moving average and flat forecast of one SKU
type ForecastResult struct {
	SKU           entities.SKU           `json:"sku"`
	Window        int                    `json:"window"`
	Horizon       int                    `json:"horizon"`
	Actual        []entities.SeriesPoint `json:"actual"`
	MovingAverage []entities.SeriesPoint `json:"moving_average"`
	Future        []entities.SeriesPoint `json:"future"`
}

// ForecastRow is one line of the forecast export table.
// Qty and MA are nil on future days; Forecast is nil on historical days.
type ForecastRow struct {
	Date     time.Time `json:"date"`
	Qty      *float64  `json:"qty,omitempty"`
	MA       *float64  `json:"ma,omitempty"`
	Forecast *float64  `json:"forecast,omitempty"`
}

// Rows flattens the result into one row per day across history and horizon
func (r ForecastResult) Rows() []ForecastRow {
	rows := make([]ForecastRow, 0, len(r.Actual)+len(r.Future))
	for i, p := range r.Actual {
		qty := p.Qty
		row := ForecastRow{Date: p.Date, Qty: &qty}
		if i < len(r.MovingAverage) {
			ma := r.MovingAverage[i].Qty
			row.MA = &ma
		}
		rows = append(rows, row)
	}
	for _, p := range r.Future {
		f := p.Qty
		rows = append(rows, ForecastRow{Date: p.Date, Forecast: &f})
	}
	return rows
}

// SimulationSummary holds the derived metrics of a simulation run
type SimulationSummary struct {
	FillRate     float64 `json:"fill_rate"`
	StockoutDays int     `json:"stockout_days"`
	AvgOnHand    float64 `json:"avg_on_hand"`
}

// SimulationResult contains the daily trace and metrics of a what-if run
type SimulationResult struct {
	SKU         entities.SKU                  `json:"sku"`
	Mu          float64                       `json:"mu"`
	Sigma       float64                       `json:"sigma"`
	SafetyStock float64                       `json:"safety_stock"`
	OrderQty    float64                       `json:"order_qty"`
	Rows        []entities.DailySimulationRow `json:"rows"`
	Orders      []entities.PendingOrder       `json:"orders"`
	Summary     SimulationSummary             `json:"summary"`
}

// OverviewResult contains the headline KPIs of the loaded tables
type OverviewResult struct {
	SuppliersLoaded int       `json:"suppliers_loaded"`
	AvgOTDPercent   float64   `json:"avg_otd_percent"`
	UpcomingDemand  float64   `json:"upcoming_demand"`
	UpcomingDays    int       `json:"upcoming_days"`
	AsOf            time.Time `json:"as_of"`
}

// WeekdayAverage is the mean observed quantity of one weekday.
// AvgQty is zero when Samples is zero.
type WeekdayAverage struct {
	Weekday string  `json:"weekday"`
	AvgQty  float64 `json:"avg_qty"`
	Samples int     `json:"samples"`
}

// HeatmapCell is the summed quantity of one weekday within one ISO week
type HeatmapCell struct {
	ISOYear int     `json:"iso_year"`
	ISOWeek int     `json:"iso_week"`
	Weekday string  `json:"weekday"`
	Qty     float64 `json:"qty"`
}

// HistogramBin counts the days whose backlog falls in [Lower, Upper).
// The last bin also includes its upper edge.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Days  int     `json:"days"`
}
