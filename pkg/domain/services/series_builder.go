package services

import (
	"sort"
	"time"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

// BuildDemandSeries filters points to one SKU and resamples them to one value per
// calendar day over [min date, max date]. Same-day observations are summed and
// missing days take the value of the nearest following observed day.
func BuildDemandSeries(points []*entities.DemandPoint, sku entities.SKU) entities.DemandSeries {
	byDay := make(map[time.Time]float64)
	for _, p := range points {
		if p == nil || p.SKU != sku {
			continue
		}
		byDay[entities.CalendarDay(p.Date)] += p.Qty
	}

	series := entities.DemandSeries{SKU: sku}
	if len(byDay) == 0 {
		return series
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	first, last := days[0], days[len(days)-1]
	span := int(last.Sub(first).Hours()/24) + 1
	series.Points = make([]entities.SeriesPoint, span)

	// Walk backwards so each gap inherits the next observed value
	next := byDay[last]
	for i := span - 1; i >= 0; i-- {
		day := entities.AddDays(first, i)
		if qty, observed := byDay[day]; observed {
			next = qty
		}
		series.Points[i] = entities.SeriesPoint{Date: day, Qty: next}
	}

	return series
}

// ObservedPoints returns the raw observations for one SKU sorted by date.
// Unlike BuildDemandSeries no resampling is applied.
func ObservedPoints(points []*entities.DemandPoint, sku entities.SKU) []entities.DemandPoint {
	var out []entities.DemandPoint
	for _, p := range points {
		if p != nil && p.SKU == sku {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// DistinctSKUs returns every SKU present in points, sorted
func DistinctSKUs(points []*entities.DemandPoint) []entities.SKU {
	seen := make(map[entities.SKU]bool)
	var skus []entities.SKU
	for _, p := range points {
		if p == nil || seen[p.SKU] {
			continue
		}
		seen[p.SKU] = true
		skus = append(skus, p.SKU)
	}
	sort.Slice(skus, func(i, j int) bool {
		return skus[i] < skus[j]
	})
	return skus
}
