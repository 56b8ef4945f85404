package testing

import (
	"math/rand"
	"time"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/infrastructure/generator"
	"github.com/vsinha/supplyplan/pkg/infrastructure/repositories/memory"
)

// Day returns midnight UTC of the given date
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// BuildPlanningTestData builds repositories holding the seeded sample tables:
// 20 suppliers and daily HVLV-256 demand for the first half of 2024.
func BuildPlanningTestData() (*memory.SupplierRepository, *memory.DemandRepository) {
	rng := rand.New(rand.NewSource(generator.DefaultSeed))
	suppliers := generator.Suppliers(rng, generator.DefaultSuppliers)
	demands := generator.Demand(rng, generator.DefaultSKU, generator.DefaultFrom, generator.DefaultTo)

	supplierRepo := memory.NewSupplierRepository(len(suppliers))
	if err := supplierRepo.LoadSuppliers(suppliers); err != nil {
		panic(err)
	}

	demandRepo := memory.NewDemandRepository()
	if err := demandRepo.LoadDemands(demands); err != nil {
		panic(err)
	}

	return supplierRepo, demandRepo
}

// TwoSupplierFixture returns a supplier that dominates on every metric followed by
// one that is worse on every metric.
func TwoSupplierFixture() []*entities.SupplierRecord {
	return []*entities.SupplierRecord{
		{SupplierID: "S1", Name: "Strong", OTDRate: 0.99, CostVariance: -0.02, QualityPPM: 100, RiskEvents12m: 0},
		{SupplierID: "S2", Name: "Weak", OTDRate: 0.85, CostVariance: 0.05, QualityPPM: 1000, RiskEvents12m: 4},
	}
}

// Series builds a gap-free daily series starting at start with the given quantities
func Series(sku entities.SKU, start time.Time, qtys ...float64) entities.DemandSeries {
	series := entities.DemandSeries{SKU: sku, Points: make([]entities.SeriesPoint, len(qtys))}
	for i, q := range qtys {
		series.Points[i] = entities.SeriesPoint{Date: entities.AddDays(start, i), Qty: q}
	}
	return series
}

// ConstantSeries builds an n-day series with the same quantity every day
func ConstantSeries(sku entities.SKU, start time.Time, n int, qty float64) entities.DemandSeries {
	qtys := make([]float64, n)
	for i := range qtys {
		qtys[i] = qty
	}
	return Series(sku, start, qtys...)
}

// DemandPoints builds one observation per consecutive day starting at start
func DemandPoints(sku entities.SKU, start time.Time, qtys ...float64) []*entities.DemandPoint {
	points := make([]*entities.DemandPoint, len(qtys))
	for i, q := range qtys {
		points[i] = &entities.DemandPoint{Date: entities.AddDays(start, i), SKU: sku, Qty: q}
	}
	return points
}
