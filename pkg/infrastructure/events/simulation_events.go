package events

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/supplyplan/pkg/application/dto"
	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

const (
	OrderPlacedEvent   = "order.placed"
	OrderReceivedEvent = "order.received"

	StockoutStartedEvent = "stockout.started"
	StockoutEndedEvent   = "stockout.ended"
)

// SimulationEventTypes lists every event type a simulation journal can contain
var SimulationEventTypes = []string{
	OrderPlacedEvent,
	OrderReceivedEvent,
	StockoutStartedEvent,
	StockoutEndedEvent,
}

type OrderPlaced struct {
	Quantity float64 `json:"quantity"`
	Arrival  string  `json:"arrival"`
}

func (e OrderPlaced) String() string {
	return fmt.Sprintf("%s units due %s", units(e.Quantity), e.Arrival)
}

type OrderReceived struct {
	Quantity float64 `json:"quantity"`
	PlacedOn string  `json:"placed_on"`
}

func (e OrderReceived) String() string {
	return fmt.Sprintf("%s units placed %s", units(e.Quantity), e.PlacedOn)
}

type StockoutStarted struct {
	Backlog float64 `json:"backlog"`
}

func (e StockoutStarted) String() string {
	return fmt.Sprintf("backlog %s", units(e.Backlog))
}

type StockoutEnded struct {
	Days    int     `json:"days"`
	Backlog float64 `json:"backlog"`
}

func (e StockoutEnded) String() string {
	return fmt.Sprintf("after %d days, backlog %s", e.Days, units(e.Backlog))
}

// SimulationStream returns the stream id holding the journal of one SKU
func SimulationStream(sku entities.SKU) string {
	return "simulation/" + string(sku)
}

// Journal appends the order and stockout events of a simulation trace to store,
// in day order. On each day receipts come before placements, matching the order
// in which the simulator processes them. An order is never received on the day it
// was placed, so a zero lead time order arrives the following day.
func Journal(store Store, result *dto.SimulationResult) error {
	stream := SimulationStream(result.SKU)
	stockoutDays := 0

	for _, row := range result.Rows {
		day := row.Date

		for _, order := range result.Orders {
			if receivedOn(order).Equal(day) {
				if _, err := store.Append(stream, OrderReceivedEvent, day, OrderReceived{
					Quantity: order.Quantity,
					PlacedOn: order.PlacedOn.Format(entities.DateLayout),
				}); err != nil {
					return err
				}
			}
		}

		for _, order := range result.Orders {
			if order.PlacedOn.Equal(day) {
				if _, err := store.Append(stream, OrderPlacedEvent, day, OrderPlaced{
					Quantity: order.Quantity,
					Arrival:  order.Arrival.Format(entities.DateLayout),
				}); err != nil {
					return err
				}
			}
		}

		switch {
		case row.OnHand <= 0 && stockoutDays == 0:
			if _, err := store.Append(stream, StockoutStartedEvent, day, StockoutStarted{Backlog: row.Backlog}); err != nil {
				return err
			}
			stockoutDays = 1
		case row.OnHand <= 0:
			stockoutDays++
		case stockoutDays > 0:
			if _, err := store.Append(stream, StockoutEndedEvent, day, StockoutEnded{Days: stockoutDays, Backlog: row.Backlog}); err != nil {
				return err
			}
			stockoutDays = 0
		}
	}

	return nil
}

// Tally counts events per type, with every simulation event type present
func Tally(journal []Event) map[string]int {
	counts := make(map[string]int, len(SimulationEventTypes))
	for _, t := range SimulationEventTypes {
		counts[t] = 0
	}
	for _, e := range journal {
		counts[e.Type]++
	}
	return counts
}

func receivedOn(order entities.PendingOrder) time.Time {
	next := entities.AddDays(order.PlacedOn, 1)
	if order.Arrival.Before(next) {
		return next
	}
	return order.Arrival
}

func units(v float64) string {
	return decimal.NewFromFloat(v).String()
}
