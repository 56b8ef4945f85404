// Package generator produces seeded synthetic supplier and demand tables for demos and tests.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

const (
	// DefaultSeed reproduces the bundled sample tables
	DefaultSeed int64 = 42
	// DefaultSuppliers is the number of sample suppliers
	DefaultSuppliers = 20
	// DefaultSKU is the sample item
	DefaultSKU entities.SKU = "HVLV-256"
	// DemandRate is the Poisson mean of the daily sample demand
	DemandRate = 20.0
	// DemandNoise is the standard deviation of the normal noise added to demand
	DemandNoise = 3.0
)

// DefaultFrom and DefaultTo bound the sample demand dates, inclusive
var (
	DefaultFrom = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	DefaultTo   = time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
)

// Suppliers generates n suppliers S001..Snnn with plausible metric ranges
func Suppliers(rng *rand.Rand, n int) []*entities.SupplierRecord {
	suppliers := make([]*entities.SupplierRecord, 0, n)
	for i := 1; i <= n; i++ {
		suppliers = append(suppliers, &entities.SupplierRecord{
			SupplierID:    entities.SupplierID(fmt.Sprintf("S%03d", i)),
			Name:          fmt.Sprintf("Supplier %d", i),
			OTDRate:       0.85 + rng.Float64()*0.14,
			CostVariance:  rng.NormFloat64() * 0.03,
			QualityPPM:    float64(80 + rng.Intn(1200-80)),
			RiskEvents12m: float64(rng.Intn(5)),
		})
	}
	return suppliers
}

// Demand generates one row per day in [from, to] for sku:
// clip(poisson(20) + normal(0, 3), 0) truncated to whole units.
func Demand(rng *rand.Rand, sku entities.SKU, from, to time.Time) []*entities.DemandPoint {
	from, to = entities.CalendarDay(from), entities.CalendarDay(to)

	var demands []*entities.DemandPoint
	for day := from; !day.After(to); day = entities.AddDays(day, 1) {
		qty := float64(Poisson(rng, DemandRate)) + rng.NormFloat64()*DemandNoise
		demands = append(demands, &entities.DemandPoint{
			Date: day,
			SKU:  sku,
			Qty:  math.Trunc(math.Max(0, qty)),
		})
	}
	return demands
}

// Poisson samples a Poisson variate with mean lambda. rng is the only source of
// randomness, so a seeded rng reproduces the same draws.
func Poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: lambda, Src: rng}.Rand())
}
