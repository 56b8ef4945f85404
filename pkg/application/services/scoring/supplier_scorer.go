// Package scoring ranks suppliers by a weighted composite of delivery, cost,
// quality and risk metrics.
package scoring

import (
	"math"
	"sort"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/domain/services"
)

// ScorePlaces is the number of decimal places kept on every score
const ScorePlaces = 4

// Score computes the composite score of every supplier and returns them sorted by
// score descending. Ties keep input order and NaN scores sort last.
//
// Each metric is min-max normalized over the current batch after being oriented so
// that higher is better: OTD as is, cost variance and risk events negated, and PPM
// negated after log1p compression.
func Score(suppliers []*entities.SupplierRecord, w entities.WeightVector) ([]entities.ScoredSupplier, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	n := len(suppliers)
	scored := make([]entities.ScoredSupplier, 0, n)
	if n == 0 {
		return scored, nil
	}

	otd := make([]float64, n)
	cost := make([]float64, n)
	qual := make([]float64, n)
	risk := make([]float64, n)
	for i, s := range suppliers {
		rec := *s
		if math.IsInf(rec.OTDRate, 0) {
			rec.OTDRate = math.NaN()
		}
		rec.OTDRate = services.Clip(rec.OTDRate, 0, 1)
		scored = append(scored, entities.ScoredSupplier{SupplierRecord: rec})

		otd[i] = rec.OTDRate
		cost[i] = -rec.CostVariance
		qual[i] = -math.Log1p(rec.QualityPPM)
		risk[i] = -rec.RiskEvents12m
	}

	otd = services.MinMaxNormalize(otd)
	cost = services.MinMaxNormalize(cost)
	qual = services.MinMaxNormalize(qual)
	risk = services.MinMaxNormalize(risk)

	for i := range scored {
		raw := w.OTD*otd[i] + w.Cost*cost[i] + w.Qual*qual[i] + w.Risk*risk[i]
		scored[i].Score = services.RoundPlaces(raw, ScorePlaces)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i].Score, scored[j].Score
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		if math.IsNaN(a) {
			return false
		}
		return a > b
	})

	return scored, nil
}

// TopN returns the first n ranked suppliers; n <= 0 returns all of them
func TopN(scored []entities.ScoredSupplier, n int) []entities.ScoredSupplier {
	if n <= 0 || n >= len(scored) {
		return scored
	}
	return scored[:n]
}
