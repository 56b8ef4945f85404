// Package simulation runs a day-stepped inventory what-if under stochastic demand
// with a safety-stock reorder policy and backlog.
package simulation

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/vsinha/supplyplan/pkg/application/dto"
	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/domain/services"
)

// ErrNoHistory is returned when the selected item has no observed demand
var ErrNoHistory = errors.New("no demand history for the selected item")

// state is the mutable inventory state of one run
type state struct {
	onHand   float64
	backlog  float64
	pipeline []entities.PendingOrder
}

// receive moves every order due on or before day into on-hand
func (s *state) receive(day time.Time) {
	kept := s.pipeline[:0]
	for _, order := range s.pipeline {
		if order.Arrival.After(day) {
			kept = append(kept, order)
			continue
		}
		s.onHand += order.Quantity
	}
	s.pipeline = kept
}

// shipNetOfBacklog serves backlog first from stock net of backlog
func (s *state) shipNetOfBacklog(demand float64) {
	available := math.Max(0, s.onHand-s.backlog)
	shipped := math.Min(available, demand+s.backlog)
	if shipped >= s.backlog {
		shippedNet := shipped - s.backlog
		s.onHand = math.Max(0, s.onHand-shippedNet)
		s.backlog = math.Max(0, demand-shippedNet)
		return
	}
	s.backlog -= shipped
}

// shipFullBackorder serves backlog then demand from on-hand and carries the rest
func (s *state) shipFullBackorder(demand float64) {
	owed := s.backlog + demand
	shipped := math.Min(s.onHand, owed)
	s.onHand -= shipped
	s.backlog = owed - shipped
}

// Simulate runs the what-if over p.HorizonDays days starting the day after the last
// date of series. Demand is fitted on the trailing p.HistoryDays days and drawn from a
// normal distribution seeded with p.Seed, so identical inputs give identical rows.
func Simulate(series entities.DemandSeries, p entities.SimulationParams) (*dto.SimulationResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if series.IsEmpty() {
		return nil, ErrNoHistory
	}

	hist := series.Tail(p.HistoryDays)
	values := hist.Values()
	mu := services.Mean(values)
	sigma := services.SampleStdDev(values)

	safety := p.SafetyFactor * sigma
	if p.SafetyStockMode == entities.ServiceLevelZ {
		safety = services.ServiceLevelZ(p.ServiceLevel) * sigma
	}
	orderQty := math.Max(float64(p.MOQ), services.RoundPlaces(mu*float64(p.LeadTimeDays), 0))

	demand := DrawDemand(mu, sigma, p.HorizonDays, p.Seed)
	start := entities.AddDays(hist.LastDate(), 1)

	result := &dto.SimulationResult{
		SKU:         series.SKU,
		Mu:          mu,
		Sigma:       sigma,
		SafetyStock: safety,
		OrderQty:    orderQty,
		Rows:        make([]entities.DailySimulationRow, 0, p.HorizonDays),
	}

	s := &state{}
	for i, dem := range demand {
		day := entities.AddDays(start, i)

		s.receive(day)

		if s.onHand-s.backlog < safety && orderQty > 0 {
			order := entities.PendingOrder{
				PlacedOn: day,
				Arrival:  entities.AddDays(day, p.LeadTimeDays),
				Quantity: orderQty,
			}
			s.pipeline = append(s.pipeline, order)
			result.Orders = append(result.Orders, order)
		}

		switch p.ShipmentPolicy {
		case entities.FullBackorder:
			s.shipFullBackorder(dem)
		default:
			s.shipNetOfBacklog(dem)
		}

		result.Rows = append(result.Rows, entities.DailySimulationRow{
			Date:    day,
			Demand:  dem,
			OnHand:  s.onHand,
			Backlog: s.backlog,
		})
	}

	result.Summary = Summarize(result.Rows)
	return result, nil
}

// DrawDemand samples n daily demands from normal(mu, sigma), clipped at zero and
// rounded to whole units. A zero sigma is replaced by max(mu*0.1, 1).
func DrawDemand(mu, sigma float64, n int, seed int64) []float64 {
	sd := sigma
	if !(sd > 0) {
		sd = math.Max(mu*0.1, 1)
	}
	rng := rand.New(rand.NewSource(seed))
	draws := make([]float64, n)
	for i := range draws {
		v := rng.NormFloat64()*sd + mu
		draws[i] = services.RoundPlaces(math.Max(0, v), 0)
	}
	return draws
}

// Summarize derives fill rate, stockout days and average on-hand from a trace.
// Fill rate counts day-over-day backlog increases as late demand.
func Summarize(rows []entities.DailySimulationRow) dto.SimulationSummary {
	summary := dto.SimulationSummary{FillRate: 1}
	if len(rows) == 0 {
		return summary
	}

	totalDemand, delayed, onHand := 0.0, 0.0, 0.0
	for i, r := range rows {
		totalDemand += r.Demand
		onHand += r.OnHand
		if r.OnHand <= 0 {
			summary.StockoutDays++
		}
		if i > 0 {
			delayed += math.Max(0, r.Backlog-rows[i-1].Backlog)
		}
	}

	if totalDemand > 0 {
		summary.FillRate = 1 - delayed/totalDemand
	}
	summary.AvgOnHand = onHand / float64(len(rows))
	return summary
}
