package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vsinha/supplyplan/pkg/application/dto"
	"github.com/vsinha/supplyplan/pkg/application/services/forecasting"
	"github.com/vsinha/supplyplan/pkg/application/services/scoring"
	"github.com/vsinha/supplyplan/pkg/application/services/simulation"
	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/domain/services"
	"github.com/vsinha/supplyplan/pkg/infrastructure/config"
	csvrepo "github.com/vsinha/supplyplan/pkg/infrastructure/repositories/csv"
)

// PlanningHandler serves the scoring, forecasting and simulation endpoints.
// Every request carries its own tables; nothing is shared between requests.
type PlanningHandler struct {
	Defaults config.Config
	Logger   *zap.Logger
}

func (h *PlanningHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1")
	group.POST("/suppliers/score", h.scoreSuppliers)
	group.POST("/demand/forecast", h.forecastDemand)
	group.POST("/inventory/simulate", h.simulateInventory)
}

type scoreRequest struct {
	Suppliers []entities.SupplierRecord `json:"suppliers"`
	Weights   *entities.WeightVector    `json:"weights"`
	TopN      int                       `json:"top_n"`
}

type demandRow struct {
	Date string           `json:"date"`
	SKU  string           `json:"sku"`
	Qty  *entities.Metric `json:"qty"`
}

type forecastRequest struct {
	SKU     string      `json:"sku"`
	Demand  []demandRow `json:"demand"`
	Window  *int        `json:"window"`
	Horizon *int        `json:"horizon"`
}

type simulationParamsRequest struct {
	LeadTimeDays    *int     `json:"lead_time_days"`
	MOQ             *int     `json:"moq"`
	SafetyFactor    *float64 `json:"safety_factor"`
	ServiceLevel    *float64 `json:"service_level"`
	HorizonDays     *int     `json:"horizon_days"`
	Seed            *int64   `json:"seed"`
	HistoryDays     *int     `json:"history_days"`
	SafetyStockMode *string  `json:"safety_stock_mode"`
	ShipmentPolicy  *string  `json:"shipment_policy"`
}

type simulateRequest struct {
	SKU    string                  `json:"sku"`
	Demand []demandRow             `json:"demand"`
	Params simulationParamsRequest `json:"params"`
}

func (h *PlanningHandler) scoreSuppliers(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}

	scoringConfig := h.Defaults.Scoring
	if req.Weights != nil {
		scoringConfig.Weights = *req.Weights
	}
	weights, err := scoringConfig.WeightVector()
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	suppliers := make([]*entities.SupplierRecord, len(req.Suppliers))
	for i := range req.Suppliers {
		suppliers[i] = &req.Suppliers[i]
	}

	scored, err := scoring.Score(suppliers, *weights)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	h.logger().Info("suppliers scored", zap.Int("suppliers", len(scored)))
	Ok(c, dto.ScorecardResult{Weights: *weights, Suppliers: scoring.TopN(scored, req.TopN)},
		map[string]any{"total_suppliers": len(scored)})
}

func (h *PlanningHandler) forecastDemand(c *gin.Context) {
	var req forecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}

	window := intOr(req.Window, h.Defaults.Forecast.Window)
	horizon := intOr(req.Horizon, h.Defaults.Forecast.Horizon)

	demands, dropped := parseDemandRows(req.Demand)
	sku := pickSKU(demands, req.SKU)
	series := services.BuildDemandSeries(demands, sku)
	if series.IsEmpty() {
		Error(c, http.StatusBadRequest, "no demand history for the selected item",
			map[string]any{"dropped_rows": dropped})
		return
	}

	result, err := forecasting.Forecast(series, window, horizon)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	h.logger().Info("forecast computed", zap.String("sku", string(sku)), zap.Int("history_days", series.Len()))
	Ok(c, result, map[string]any{"dropped_rows": dropped})
}

func (h *PlanningHandler) simulateInventory(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}

	params, err := req.Params.merge(h.Defaults.Simulation).Params()
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	demands, dropped := parseDemandRows(req.Demand)
	sku := pickSKU(demands, req.SKU)
	series := services.BuildDemandSeries(demands, sku)

	result, err := simulation.Simulate(series, *params)
	if errors.Is(err, simulation.ErrNoHistory) {
		Error(c, http.StatusUnprocessableEntity, err.Error(), map[string]any{"dropped_rows": dropped})
		return
	}
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	h.logger().Info("simulation complete",
		zap.String("sku", string(sku)),
		zap.Float64("fill_rate", result.Summary.FillRate))
	Ok(c, result, map[string]any{"dropped_rows": dropped})
}

func (h *PlanningHandler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// merge overlays the fields present in the request onto the configured defaults
func (r simulationParamsRequest) merge(defaults config.SimulationConfig) config.SimulationConfig {
	out := defaults
	out.LeadTimeDays = intOr(r.LeadTimeDays, out.LeadTimeDays)
	out.MOQ = intOr(r.MOQ, out.MOQ)
	out.HorizonDays = intOr(r.HorizonDays, out.HorizonDays)
	out.HistoryDays = intOr(r.HistoryDays, out.HistoryDays)
	if r.SafetyFactor != nil {
		out.SafetyFactor = *r.SafetyFactor
	}
	if r.ServiceLevel != nil {
		out.ServiceLevel = *r.ServiceLevel
	}
	if r.Seed != nil {
		out.Seed = *r.Seed
	}
	if r.SafetyStockMode != nil {
		out.SafetyStockMode = *r.SafetyStockMode
	}
	if r.ShipmentPolicy != nil {
		out.ShipmentPolicy = *r.ShipmentPolicy
	}
	return out
}

// parseDemandRows applies the demand table rules to request rows: a bad date,
// missing SKU or invalid quantity drops the row.
func parseDemandRows(rows []demandRow) ([]*entities.DemandPoint, int) {
	demands := make([]*entities.DemandPoint, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		date, err := csvrepo.ParseDate(row.Date)
		if err != nil {
			dropped++
			continue
		}
		demand, err := entities.NewDemandPoint(date, entities.SKU(row.SKU), row.Qty.Value())
		if err != nil {
			dropped++
			continue
		}
		demands = append(demands, demand)
	}
	return demands, dropped
}

// pickSKU returns sku, or the first SKU present when the request names none
func pickSKU(demands []*entities.DemandPoint, sku string) entities.SKU {
	if sku != "" {
		return entities.SKU(sku)
	}
	if skus := services.DistinctSKUs(demands); len(skus) > 0 {
		return skus[0]
	}
	return ""
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
