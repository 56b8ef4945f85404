package entities

import (
	"fmt"
	"math"
	"time"
)

// SKU represents a stock keeping unit identifier
type SKU string

// DateLayout is the calendar date format used by every input and output table
const DateLayout = "2006-01-02"

// DemandPoint represents one observed row of the demand table
type DemandPoint struct {
	Date time.Time `json:"date"`
	SKU  SKU       `json:"sku"`
	Qty  float64   `json:"qty"`
}

// NewDemandPoint creates a validated DemandPoint truncated to its calendar day
func NewDemandPoint(date time.Time, sku SKU, qty float64) (*DemandPoint, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if date.IsZero() {
		return nil, fmt.Errorf("date cannot be zero")
	}
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return nil, fmt.Errorf("quantity must be finite, got %v", qty)
	}
	if qty < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %v", qty)
	}
	return &DemandPoint{
		Date: CalendarDay(date),
		SKU:  sku,
		Qty:  qty,
	}, nil
}

// SeriesPoint is one day of a DemandSeries
type SeriesPoint struct {
	Date time.Time `json:"date"`
	Qty  float64   `json:"qty"`
}

// DemandSeries holds exactly one point per calendar day for a single SKU,
// sorted ascending with no gaps.
type DemandSeries struct {
	SKU    SKU           `json:"sku"`
	Points []SeriesPoint `json:"points"`
}

// Len returns the number of days in the series
func (s DemandSeries) Len() int {
	return len(s.Points)
}

// IsEmpty reports whether the series has no days
func (s DemandSeries) IsEmpty() bool {
	return len(s.Points) == 0
}

// Values returns the daily quantities in date order
func (s DemandSeries) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Qty
	}
	return values
}

// LastDate returns the final date of the series, or the zero time when empty
func (s DemandSeries) LastDate() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].Date
}

// Tail returns a series holding at most the last n days
func (s DemandSeries) Tail(n int) DemandSeries {
	if n <= 0 || n >= len(s.Points) {
		return s
	}
	return DemandSeries{SKU: s.SKU, Points: s.Points[len(s.Points)-n:]}
}

// CalendarDay truncates t to midnight UTC of its calendar date
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar day n days after t
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
