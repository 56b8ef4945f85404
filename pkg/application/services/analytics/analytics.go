// Package analytics computes the descriptive views that accompany the scorecard,
// forecast and what-if reports.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/vsinha/supplyplan/pkg/application/dto"
	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/domain/services"
)

// Weekdays lists weekdays Monday first, the order used by every weekday view
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// weekdayIndex maps a weekday to its Monday-first position
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Overview summarizes the loaded tables: supplier count, average OTD in percent
// (unknown rates skipped) and the sum of the first days demand rows on or after asOf.
func Overview(suppliers []*entities.SupplierRecord, demand []*entities.DemandPoint, asOf time.Time, days int) dto.OverviewResult {
	result := dto.OverviewResult{
		SuppliersLoaded: len(suppliers),
		UpcomingDays:    days,
		AsOf:            entities.CalendarDay(asOf),
	}

	var otd []float64
	for _, s := range suppliers {
		if !math.IsNaN(s.OTDRate) {
			otd = append(otd, s.OTDRate)
		}
	}
	result.AvgOTDPercent = services.Mean(otd) * 100

	var upcoming []entities.DemandPoint
	for _, p := range demand {
		if p != nil && !p.Date.Before(result.AsOf) {
			upcoming = append(upcoming, *p)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	for i, p := range upcoming {
		if i >= days {
			break
		}
		result.UpcomingDemand += p.Qty
	}

	return result
}

// WeekdayProfile averages observed quantities per weekday, Monday first.
// Weekdays without observations report zero samples and a zero average.
func WeekdayProfile(points []entities.DemandPoint) []dto.WeekdayAverage {
	sums := make([]float64, 7)
	counts := make([]int, 7)
	for _, p := range points {
		i := weekdayIndex(p.Date.Weekday())
		sums[i] += p.Qty
		counts[i]++
	}

	profile := make([]dto.WeekdayAverage, 7)
	for i, d := range Weekdays {
		avg := 0.0
		if counts[i] > 0 {
			avg = sums[i] / float64(counts[i])
		}
		profile[i] = dto.WeekdayAverage{Weekday: d.String(), AvgQty: avg, Samples: counts[i]}
	}
	return profile
}

// WeekHeatmap sums observed quantities by ISO week and weekday, ordered by week
// then Monday-first weekday. Only populated cells are returned.
func WeekHeatmap(points []entities.DemandPoint) []dto.HeatmapCell {
	type key struct {
		year, week, day int
	}
	sums := make(map[key]float64)
	for _, p := range points {
		y, w := p.Date.ISOWeek()
		sums[key{y, w, weekdayIndex(p.Date.Weekday())}] += p.Qty
	}

	keys := make([]key, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.year != b.year {
			return a.year < b.year
		}
		if a.week != b.week {
			return a.week < b.week
		}
		return a.day < b.day
	})

	cells := make([]dto.HeatmapCell, len(keys))
	for i, k := range keys {
		cells[i] = dto.HeatmapCell{ISOYear: k.year, ISOWeek: k.week, Weekday: Weekdays[k.day].String(), Qty: sums[k]}
	}
	return cells
}

// QualityPareto returns the n suppliers with the highest quality_ppm, worst first.
// Suppliers with unknown PPM are left out.
func QualityPareto(suppliers []*entities.SupplierRecord, n int) []entities.SupplierRecord {
	var known []entities.SupplierRecord
	for _, s := range suppliers {
		if !math.IsNaN(s.QualityPPM) {
			known = append(known, *s)
		}
	}
	sort.SliceStable(known, func(i, j int) bool {
		return known[i].QualityPPM > known[j].QualityPPM
	})
	if n > 0 && n < len(known) {
		known = known[:n]
	}
	return known
}

// BacklogHistogram bins the backlog of a simulation trace into equal-width bins
func BacklogHistogram(rows []entities.DailySimulationRow, bins int) []dto.HistogramBin {
	if len(rows) == 0 || bins < 1 {
		return nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		lo = math.Min(lo, r.Backlog)
		hi = math.Max(hi, r.Backlog)
	}
	// A constant backlog gets a unit-wide range centered on it
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(bins)
	hist := make([]dto.HistogramBin, bins)
	for i := range hist {
		hist[i] = dto.HistogramBin{Lower: lo + float64(i)*width, Upper: lo + float64(i+1)*width}
	}
	for _, r := range rows {
		i := int((r.Backlog - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		hist[i].Days++
	}
	return hist
}
