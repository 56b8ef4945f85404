package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/supplyplan/pkg/infrastructure/config"
)

type testResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cfg, err := config.Load("", true)
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	return NewRouter(cfg, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (int, testResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp testResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return rec.Code, resp
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestScoreSuppliers(t *testing.T) {
	router := newTestRouter(t)
	body := `{
		"suppliers": [
			{"supplier_id": "S2", "name": "Weak", "otd_rate": 0.85, "cost_variance": 0.05, "quality_ppm": 1000, "risk_events_12m": 4},
			{"supplier_id": "S1", "name": "Strong", "otd_rate": 0.99, "cost_variance": -0.02, "quality_ppm": 100, "risk_events_12m": 0},
			{"supplier_id": "S3", "name": "Partial", "otd_rate": 0.9, "cost_variance": 0, "quality_ppm": null, "risk_events_12m": 1}
		],
		"top_n": 2
	}`

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/suppliers/score", body)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", code, resp.Message)
	}

	var data struct {
		Suppliers []struct {
			SupplierID string   `json:"supplier_id"`
			Score      *float64 `json:"score"`
		} `json:"suppliers"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if len(data.Suppliers) != 2 {
		t.Fatalf("Expected top 2 suppliers, got %d", len(data.Suppliers))
	}
	if data.Suppliers[0].SupplierID != "S1" || data.Suppliers[0].Score == nil || *data.Suppliers[0].Score != 1 {
		t.Errorf("Expected S1 first with score 1, got %+v", data.Suppliers[0])
	}
	if resp.Meta["total_suppliers"] != float64(3) {
		t.Errorf("Expected total_suppliers 3, got %v", resp.Meta["total_suppliers"])
	}
}

func TestScoreSuppliers_BadMetricDegrades(t *testing.T) {
	router := newTestRouter(t)
	body := `{
		"suppliers": [
			{"supplier_id": "S1", "name": "Strong", "otd_rate": 0.99, "cost_variance": -0.02, "quality_ppm": 100, "risk_events_12m": 0},
			{"supplier_id": "S2", "name": "Weak", "otd_rate": 0.85, "cost_variance": 0.05, "quality_ppm": 1000, "risk_events_12m": 4},
			{"supplier_id": "S3", "name": "Garbled", "otd_rate": "n/a", "cost_variance": "0.01", "quality_ppm": 300, "risk_events_12m": 1}
		]
	}`

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/suppliers/score", body)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", code, resp.Message)
	}

	var data struct {
		Suppliers []struct {
			SupplierID string   `json:"supplier_id"`
			OTDRate    *float64 `json:"otd_rate"`
			Score      *float64 `json:"score"`
		} `json:"suppliers"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if len(data.Suppliers) != 3 {
		t.Fatalf("Expected all 3 suppliers, got %d", len(data.Suppliers))
	}
	if data.Suppliers[0].SupplierID != "S1" || data.Suppliers[0].Score == nil || *data.Suppliers[0].Score != 1 {
		t.Errorf("Expected S1 first with score 1, got %+v", data.Suppliers[0])
	}
	last := data.Suppliers[2]
	if last.SupplierID != "S3" || last.Score != nil || last.OTDRate != nil {
		t.Errorf("Expected S3 last with null otd_rate and score, got %+v", last)
	}
}

func TestScoreSuppliers_BadRequests(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed body", `{"suppliers": [`, "invalid body"},
		{"negative weight", `{"suppliers": [], "weights": {"otd": -1, "cost": 0, "qual": 0, "risk": 0}}`, "otd weight cannot be negative, got -1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := doJSON(t, router, http.MethodPost, "/api/v1/suppliers/score", tc.body)
			if code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", code)
			}
			if resp.Message != tc.message {
				t.Errorf("Expected message %q, got %q", tc.message, resp.Message)
			}
		})
	}
}

func TestForecastDemand(t *testing.T) {
	router := newTestRouter(t)
	body := `{
		"sku": "A",
		"window": 2,
		"horizon": 3,
		"demand": [
			{"date": "2024-01-01", "sku": "A", "qty": 4},
			{"date": "2024-01-02", "sku": "A", "qty": 8},
			{"date": "not a date", "sku": "A", "qty": 1},
			{"date": "2024-01-03", "sku": "A", "qty": "lots"},
			{"date": "2024-01-02", "sku": "B", "qty": 100}
		]
	}`

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/demand/forecast", body)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", code, resp.Message)
	}

	var data struct {
		Future []struct {
			Date string  `json:"date"`
			Qty  float64 `json:"qty"`
		} `json:"future"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if len(data.Future) != 3 {
		t.Fatalf("Expected 3 forecast days, got %d", len(data.Future))
	}
	if data.Future[0].Qty != 6 {
		t.Errorf("Expected flat forecast 6, got %v", data.Future[0].Qty)
	}
	if resp.Meta["dropped_rows"] != float64(2) {
		t.Errorf("Expected 2 dropped rows, got %v", resp.Meta["dropped_rows"])
	}
}

func TestForecastDemand_Errors(t *testing.T) {
	router := newTestRouter(t)

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/demand/forecast", `{"sku": "Z", "demand": []}`)
	if code != http.StatusBadRequest || resp.Message != "no demand history for the selected item" {
		t.Errorf("Expected 400 for missing history, got %d %q", code, resp.Message)
	}

	body := `{"window": 0, "demand": [{"date": "2024-01-01", "sku": "A", "qty": 1}]}`
	code, resp = doJSON(t, router, http.MethodPost, "/api/v1/demand/forecast", body)
	if code != http.StatusBadRequest || resp.Message != "window must be at least 1, got 0" {
		t.Errorf("Expected 400 for zero window, got %d %q", code, resp.Message)
	}
}

func TestSimulateInventory(t *testing.T) {
	router := newTestRouter(t)
	body := `{
		"params": {"lead_time_days": 5, "horizon_days": 10, "seed": 7},
		"demand": [
			{"date": "2024-01-01", "sku": "A", "qty": 10},
			{"date": "2024-01-02", "sku": "A", "qty": 10},
			{"date": "2024-01-03", "sku": "A", "qty": 10}
		]
	}`

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/inventory/simulate", body)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", code, resp.Message)
	}

	var data struct {
		SKU      string            `json:"sku"`
		OrderQty float64           `json:"order_qty"`
		Rows     []json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if data.SKU != "A" || data.OrderQty != 50 || len(data.Rows) != 10 {
		t.Errorf("Unexpected simulation: sku %s, order qty %v, %d rows", data.SKU, data.OrderQty, len(data.Rows))
	}
}

func TestSimulateInventory_Errors(t *testing.T) {
	router := newTestRouter(t)

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/inventory/simulate", `{"sku": "A", "demand": []}`)
	if code != http.StatusUnprocessableEntity || resp.Message != "no demand history for the selected item" {
		t.Errorf("Expected 422 without history, got %d %q", code, resp.Message)
	}

	body := `{"params": {"shipment_policy": "lost_sales"}, "demand": [{"date": "2024-01-01", "sku": "A", "qty": 1}]}`
	code, resp = doJSON(t, router, http.MethodPost, "/api/v1/inventory/simulate", body)
	if code != http.StatusBadRequest ||
		resp.Message != "invalid shipment policy: lost_sales (expected: net_of_backlog or full_backorder)" {
		t.Errorf("Expected 400 for unknown policy, got %d %q", code, resp.Message)
	}
}
