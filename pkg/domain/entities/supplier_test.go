package entities

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestWeightVector_Validation(t *testing.T) {
	w, err := NewWeightVector(0.4, 0.2, 0.25, 0.15)
	if err != nil {
		t.Fatalf("Expected valid weights to succeed: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 1e-12 {
		t.Errorf("Expected weights to sum to 1, got %v", w.Sum())
	}

	if _, err := NewWeightVector(0, 0, 0, 0); err != nil {
		t.Errorf("Expected all-zero weights to be accepted: %v", err)
	}

	testCases := []struct {
		name        string
		weights     WeightVector
		expectError string
	}{
		{"negative otd", WeightVector{OTD: -0.1, Cost: 0.2, Qual: 0.2, Risk: 0.2}, "otd weight cannot be negative, got -0.1"},
		{"negative cost", WeightVector{OTD: 0.4, Cost: -1, Qual: 0.2, Risk: 0.2}, "cost weight cannot be negative, got -1"},
		{"NaN qual", WeightVector{OTD: 0.4, Cost: 0.2, Qual: math.NaN(), Risk: 0.2}, "qual weight must be finite, got NaN"},
		{"infinite risk", WeightVector{OTD: 0.4, Cost: 0.2, Qual: 0.2, Risk: math.Inf(1)}, "risk weight must be finite, got +Inf"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWeightVector(tc.weights.OTD, tc.weights.Cost, tc.weights.Qual, tc.weights.Risk)
			if err == nil {
				t.Fatalf("Expected error %q, got nil", tc.expectError)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	if w.OTD != 0.40 || w.Cost != 0.20 || w.Qual != 0.25 || w.Risk != 0.15 {
		t.Errorf("Unexpected default weights: %+v", w)
	}
	if err := w.Validate(); err != nil {
		t.Errorf("Expected default weights to be valid: %v", err)
	}
}

func TestSupplierRecord_HasUnknownMetric(t *testing.T) {
	known := SupplierRecord{SupplierID: "S1", OTDRate: 0.9, CostVariance: 0, QualityPPM: 100, RiskEvents12m: 1}
	if known.HasUnknownMetric() {
		t.Error("Expected fully populated record to have no unknown metric")
	}

	unknown := known
	unknown.QualityPPM = math.NaN()
	if !unknown.HasUnknownMetric() {
		t.Error("Expected NaN quality to be reported as unknown")
	}

	infinite := known
	infinite.CostVariance = math.Inf(-1)
	if !infinite.HasUnknownMetric() {
		t.Error("Expected infinite cost variance to be reported as unknown")
	}
}

func TestParseMetric(t *testing.T) {
	testCases := []struct {
		in   string
		want float64
	}{
		{"0.95", 0.95},
		{" -0.02 ", -0.02},
		{"120", 120},
		{"1e3", 1000},
	}
	for _, tc := range testCases {
		if got := ParseMetric(tc.in); got != tc.want {
			t.Errorf("ParseMetric(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "n/a", "inf", "+Inf", "-inf", "Infinity", "1e400", "NaN"} {
		if got := ParseMetric(in); !math.IsNaN(got) {
			t.Errorf("ParseMetric(%q) = %v, want NaN", in, got)
		}
	}
}

func TestSupplierRecord_JSONUnknownMetrics(t *testing.T) {
	rec := SupplierRecord{SupplierID: "S1", Name: "Acme", OTDRate: math.NaN(), CostVariance: 0.01, QualityPPM: 250, RiskEvents12m: 2}

	data, err := json.Marshal(ScoredSupplier{SupplierRecord: rec, Score: math.NaN()})
	if err != nil {
		t.Fatalf("Failed to marshal supplier with NaN metrics: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"otd_rate":null`) {
		t.Errorf("Expected unknown otd_rate to encode as null, got %s", body)
	}
	if !strings.Contains(body, `"score":null`) {
		t.Errorf("Expected NaN score to encode as null, got %s", body)
	}
	if !strings.Contains(body, `"quality_ppm":250`) {
		t.Errorf("Expected quality_ppm 250, got %s", body)
	}

	var decoded SupplierRecord
	if err := json.Unmarshal([]byte(`{"supplier_id":"S9","name":"Nine","otd_rate":0.9,"quality_ppm":null}`), &decoded); err != nil {
		t.Fatalf("Failed to unmarshal supplier: %v", err)
	}
	if decoded.SupplierID != "S9" || decoded.OTDRate != 0.9 {
		t.Errorf("Unexpected decoded supplier: %+v", decoded)
	}
	if !math.IsNaN(decoded.QualityPPM) || !math.IsNaN(decoded.CostVariance) {
		t.Errorf("Expected null and missing metrics to decode as NaN, got ppm=%v cost=%v",
			decoded.QualityPPM, decoded.CostVariance)
	}
}

func TestSupplierRecord_JSONLenientMetrics(t *testing.T) {
	input := `{"supplier_id":"S7","name":"Seven","otd_rate":"n/a","cost_variance":"0.02",` +
		`"quality_ppm":"inf","risk_events_12m":true}`

	var decoded SupplierRecord
	if err := json.Unmarshal([]byte(input), &decoded); err != nil {
		t.Fatalf("Expected bad metrics to degrade instead of failing, got %v", err)
	}
	if decoded.SupplierID != "S7" || decoded.Name != "Seven" {
		t.Errorf("Unexpected identity: %+v", decoded)
	}
	if decoded.CostVariance != 0.02 {
		t.Errorf("Expected numeric string to be parsed, got %v", decoded.CostVariance)
	}
	for name, v := range map[string]float64{
		"otd_rate":        decoded.OTDRate,
		"quality_ppm":     decoded.QualityPPM,
		"risk_events_12m": decoded.RiskEvents12m,
	} {
		if !math.IsNaN(v) {
			t.Errorf("Expected %s to decode as NaN, got %v", name, v)
		}
	}

	var overflow SupplierRecord
	if err := json.Unmarshal([]byte(`{"supplier_id":"S8","otd_rate":1e400}`), &overflow); err != nil {
		t.Fatalf("Expected an out-of-range number to degrade, got %v", err)
	}
	if !math.IsNaN(overflow.OTDRate) {
		t.Errorf("Expected out-of-range otd_rate to decode as NaN, got %v", overflow.OTDRate)
	}
}
