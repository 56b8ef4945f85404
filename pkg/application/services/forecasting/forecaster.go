// Package forecasting projects a trailing moving average forward as a flat forecast.
package forecasting

import (
	"fmt"

	"github.com/vsinha/supplyplan/pkg/application/dto"
	"github.com/vsinha/supplyplan/pkg/domain/entities"
)

// MovingAverage returns the trailing mean of series ending at each day.
// The first window-1 days average over however many days are available.
func MovingAverage(series entities.DemandSeries, window int) ([]entities.SeriesPoint, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be at least 1, got %d", window)
	}

	// Each window is summed afresh; a running sum drifts in floating point
	ma := make([]entities.SeriesPoint, len(series.Points))
	for i, p := range series.Points {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for _, q := range series.Points[start : i+1] {
			sum += q.Qty
		}
		ma[i] = entities.SeriesPoint{Date: p.Date, Qty: sum / float64(i+1-start)}
	}
	return ma, nil
}

// Forecast computes the moving average of series and a flat forecast of horizon days
// starting the day after the last date of series, valued at the last moving average.
//
// An empty series forecasts zeros from the day after the zero time; callers are
// expected to pass at least one day.
func Forecast(series entities.DemandSeries, window, horizon int) (*dto.ForecastResult, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be at least 1, got %d", horizon)
	}
	ma, err := MovingAverage(series, window)
	if err != nil {
		return nil, err
	}

	last := 0.0
	if len(ma) > 0 {
		last = ma[len(ma)-1].Qty
	}

	base := series.LastDate()
	future := make([]entities.SeriesPoint, horizon)
	for i := range future {
		future[i] = entities.SeriesPoint{Date: entities.AddDays(base, i+1), Qty: last}
	}

	actual := make([]entities.SeriesPoint, len(series.Points))
	copy(actual, series.Points)

	return &dto.ForecastResult{
		SKU:           series.SKU,
		Window:        window,
		Horizon:       horizon,
		Actual:        actual,
		MovingAverage: ma,
		Future:        future,
	}, nil
}
