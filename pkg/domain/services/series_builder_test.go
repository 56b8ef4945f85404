package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDemandSeries_BackFillsGaps(t *testing.T) {
	points := []*entities.DemandPoint{
		{Date: day(1), SKU: "A", Qty: 5},
		{Date: day(4), SKU: "A", Qty: 9},
		{Date: day(2), SKU: "B", Qty: 100},
		{Date: day(6), SKU: "A", Qty: 2},
	}

	series := BuildDemandSeries(points, "A")
	if series.SKU != "A" {
		t.Errorf("Expected SKU A, got %s", series.SKU)
	}
	if series.Len() != 6 {
		t.Fatalf("Expected 6 days from Jan 1 to Jan 6, got %d", series.Len())
	}

	// Jan 2-3 take Jan 4's value, Jan 5 takes Jan 6's value
	want := []float64{5, 9, 9, 9, 2, 2}
	if got := series.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected values %v, got %v", want, got)
	}
	for i, p := range series.Points {
		if !p.Date.Equal(day(i + 1)) {
			t.Errorf("Point %d: expected date %v, got %v", i, day(i+1), p.Date)
		}
	}
}

func TestBuildDemandSeries_SumsSameDay(t *testing.T) {
	points := []*entities.DemandPoint{
		{Date: day(1), SKU: "A", Qty: 5},
		{Date: day(1).Add(15 * time.Hour), SKU: "A", Qty: 3},
		{Date: day(2), SKU: "A", Qty: 1},
	}

	series := BuildDemandSeries(points, "A")
	want := []float64{8, 1}
	if got := series.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected values %v, got %v", want, got)
	}
}

func TestBuildDemandSeries_UnknownSKU(t *testing.T) {
	points := []*entities.DemandPoint{{Date: day(1), SKU: "A", Qty: 5}}

	series := BuildDemandSeries(points, "Z")
	if !series.IsEmpty() {
		t.Errorf("Expected empty series for unknown SKU, got %d points", series.Len())
	}
}

func TestObservedPoints_SortsWithoutResampling(t *testing.T) {
	points := []*entities.DemandPoint{
		{Date: day(5), SKU: "A", Qty: 2},
		{Date: day(1), SKU: "A", Qty: 1},
		{Date: day(3), SKU: "B", Qty: 7},
	}

	observed := ObservedPoints(points, "A")
	if len(observed) != 2 {
		t.Fatalf("Expected 2 observations, got %d", len(observed))
	}
	if !observed[0].Date.Equal(day(1)) || !observed[1].Date.Equal(day(5)) {
		t.Errorf("Expected observations sorted by date, got %v and %v", observed[0].Date, observed[1].Date)
	}
}

func TestDistinctSKUs(t *testing.T) {
	points := []*entities.DemandPoint{
		{Date: day(1), SKU: "C"},
		{Date: day(1), SKU: "A"},
		{Date: day(2), SKU: "C"},
		nil,
		{Date: day(2), SKU: "B"},
	}

	want := []entities.SKU{"A", "B", "C"}
	if got := DistinctSKUs(points); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
