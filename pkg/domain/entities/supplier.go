package entities

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SupplierID represents a unique supplier identifier
type SupplierID string

// SupplierRecord represents one row of the suppliers table.
// Numeric fields that could not be parsed are stored as NaN.
type SupplierRecord struct {
	SupplierID    SupplierID `json:"supplier_id"`
	Name          string     `json:"name"`
	OTDRate       float64    `json:"otd_rate"`
	CostVariance  float64    `json:"cost_variance"`
	QualityPPM    float64    `json:"quality_ppm"`
	RiskEvents12m float64    `json:"risk_events_12m"`
}

// HasUnknownMetric reports whether any numeric field is NaN or infinite
func (s SupplierRecord) HasUnknownMetric() bool {
	for _, v := range []float64{s.OTDRate, s.CostVariance, s.QualityPPM, s.RiskEvents12m} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// ScoredSupplier is a SupplierRecord augmented with its composite score.
// Score is NaN when any metric of the record is unknown.
type ScoredSupplier struct {
	SupplierRecord
	Score float64 `json:"score"`
}

// supplierJSON is the wire form of SupplierRecord; unknown metrics travel as null
type supplierJSON struct {
	SupplierID    SupplierID `json:"supplier_id"`
	Name          string     `json:"name"`
	OTDRate       *float64   `json:"otd_rate"`
	CostVariance  *float64   `json:"cost_variance"`
	QualityPPM    *float64   `json:"quality_ppm"`
	RiskEvents12m *float64   `json:"risk_events_12m"`
}

func (s SupplierRecord) wire() supplierJSON {
	return supplierJSON{
		SupplierID:    s.SupplierID,
		Name:          s.Name,
		OTDRate:       knownOrNil(s.OTDRate),
		CostVariance:  knownOrNil(s.CostVariance),
		QualityPPM:    knownOrNil(s.QualityPPM),
		RiskEvents12m: knownOrNil(s.RiskEvents12m),
	}
}

// MarshalJSON encodes NaN metrics as null
func (s SupplierRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

// supplierInput is the lenient decoding form of SupplierRecord
type supplierInput struct {
	SupplierID    SupplierID `json:"supplier_id"`
	Name          string     `json:"name"`
	OTDRate       *Metric    `json:"otd_rate"`
	CostVariance  *Metric    `json:"cost_variance"`
	QualityPPM    *Metric    `json:"quality_ppm"`
	RiskEvents12m *Metric    `json:"risk_events_12m"`
}

// UnmarshalJSON decodes metrics leniently: numbers and numeric strings are kept,
// null, missing or anything else becomes NaN.
func (s *SupplierRecord) UnmarshalJSON(data []byte) error {
	var in supplierInput
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = SupplierRecord{
		SupplierID:    in.SupplierID,
		Name:          in.Name,
		OTDRate:       in.OTDRate.Value(),
		CostVariance:  in.CostVariance.Value(),
		QualityPPM:    in.QualityPPM.Value(),
		RiskEvents12m: in.RiskEvents12m.Value(),
	}
	return nil
}

// MarshalJSON flattens the record and encodes a NaN score as null
func (s ScoredSupplier) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		supplierJSON
		Score *float64 `json:"score"`
	}{s.wire(), knownOrNil(s.Score)})
}

// UnmarshalJSON decodes the flattened form written by MarshalJSON
func (s *ScoredSupplier) UnmarshalJSON(data []byte) error {
	var score struct {
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal(data, &score); err != nil {
		return err
	}
	if err := s.SupplierRecord.UnmarshalJSON(data); err != nil {
		return err
	}
	s.Score = nanIfNil(score.Score)
	return nil
}

func knownOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseMetric converts a table cell to a supplier metric. Anything that is not a
// finite number, including "inf", is unknown and becomes NaN.
func ParseMetric(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// Metric is a leniently decoded JSON number: numbers and numeric strings are
// kept, anything else decodes as NaN instead of failing the whole document.
type Metric float64

func (m *Metric) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*m = Metric(math.NaN())
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*m = Metric(v)
	case string:
		*m = Metric(ParseMetric(v))
	default:
		*m = Metric(math.NaN())
	}
	return nil
}

// Value returns the decoded number; a nil Metric (null or missing) is NaN
func (m *Metric) Value() float64 {
	if m == nil {
		return math.NaN()
	}
	return float64(*m)
}

func nanIfNil(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// WeightVector holds the per-metric weights of the composite score.
// Weights are not required to sum to 1.
type WeightVector struct {
	OTD  float64 `json:"otd" mapstructure:"otd"`
	Cost float64 `json:"cost" mapstructure:"cost"`
	Qual float64 `json:"qual" mapstructure:"qual"`
	Risk float64 `json:"risk" mapstructure:"risk"`
}

// DefaultWeights returns the weights used when none are configured
func DefaultWeights() WeightVector {
	return WeightVector{OTD: 0.40, Cost: 0.20, Qual: 0.25, Risk: 0.15}
}

// NewWeightVector creates a validated WeightVector
func NewWeightVector(otd, cost, qual, risk float64) (*WeightVector, error) {
	w := WeightVector{OTD: otd, Cost: cost, Qual: qual, Risk: risk}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// Validate checks that every weight is finite and non-negative
func (w WeightVector) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"otd", w.OTD},
		{"cost", w.Cost},
		{"qual", w.Qual},
		{"risk", w.Risk},
	}
	for _, n := range named {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return fmt.Errorf("%s weight must be finite, got %v", n.name, n.value)
		}
		if n.value < 0 {
			return fmt.Errorf("%s weight cannot be negative, got %v", n.name, n.value)
		}
	}
	return nil
}

// Sum returns the total of all weights, the upper bound of any score
func (w WeightVector) Sum() float64 {
	return w.OTD + w.Cost + w.Qual + w.Risk
}
