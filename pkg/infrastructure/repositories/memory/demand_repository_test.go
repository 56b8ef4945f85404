package memory

import (
	"reflect"
	"testing"
	"time"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

func jan(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestDemandRepository_LoadAndQuery(t *testing.T) {
	repo := NewDemandRepository()

	err := repo.LoadDemands([]*entities.DemandPoint{
		{Date: jan(3), SKU: "B", Qty: 1},
		{Date: jan(1), SKU: "A", Qty: 4},
		nil,
		{Date: jan(3), SKU: "A", Qty: 6},
	})
	if err != nil {
		t.Fatalf("Failed to load demands: %v", err)
	}

	all, err := repo.GetDemands()
	if err != nil {
		t.Fatalf("Failed to get demands: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 demands with the nil entry skipped, got %d", len(all))
	}

	forA, err := repo.GetDemandsForSKU("A")
	if err != nil {
		t.Fatalf("Failed to get demands for A: %v", err)
	}
	if len(forA) != 2 || forA[0].Qty != 4 || forA[1].Qty != 6 {
		t.Errorf("Expected A demands [4 6] in load order, got %d rows", len(forA))
	}

	none, err := repo.GetDemandsForSKU("Z")
	if err != nil || len(none) != 0 {
		t.Errorf("Expected no demands for unknown SKU, got %d rows, err %v", len(none), err)
	}

	skus, err := repo.GetSKUs()
	if err != nil {
		t.Fatalf("Failed to get SKUs: %v", err)
	}
	if want := []entities.SKU{"A", "B"}; !reflect.DeepEqual(skus, want) {
		t.Errorf("Expected SKUs %v, got %v", want, skus)
	}
}

func TestDemandRepository_GetSeries(t *testing.T) {
	repo := NewDemandRepository()
	if err := repo.LoadDemands([]*entities.DemandPoint{
		{Date: jan(1), SKU: "A", Qty: 4},
		{Date: jan(3), SKU: "A", Qty: 6},
	}); err != nil {
		t.Fatalf("Failed to load demands: %v", err)
	}

	series, err := repo.GetSeries("A")
	if err != nil {
		t.Fatalf("Failed to get series: %v", err)
	}
	if want := []float64{4, 6, 6}; !reflect.DeepEqual(series.Values(), want) {
		t.Errorf("Expected back-filled series %v, got %v", want, series.Values())
	}
}
