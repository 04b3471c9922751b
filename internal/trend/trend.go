// Package trend summarises a country's case series.
package trend

import (
	"errors"
	"fmt"

	"github.com/sajari/regression"
)

// ErrNotEnoughData is returned when a fit has fewer than MinPoints values.
var ErrNotEnoughData = errors.New("not enough data points")

// MinPoints is the smallest series Fit accepts.
const MinPoints = 3

// Trend is a least-squares line through the trailing Window days, with day
// 0 being the first day of the window.
type Trend struct {
	Window    int
	Intercept float64
	Slope     float64
	R2        float64
}

// AveragePerDay divides the last cumulative count by the number of days.
func AveragePerDay(cumulative []float64) float64 {
	if len(cumulative) == 0 {
		return 0
	}
	return cumulative[len(cumulative)-1] / float64(len(cumulative))
}

// Fit regresses the last window values against their day index. A window
// larger than the series uses the whole series.
func Fit(values []float64, window int) (Trend, error) {
	if window <= 0 || window > len(values) {
		window = len(values)
	}
	if window < MinPoints {
		return Trend{}, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughData, window, MinPoints)
	}

	r := new(regression.Regression)
	r.SetObserved("cases")
	r.SetVar(0, "day")
	for i, v := range values[len(values)-window:] {
		r.Train(regression.DataPoint(v, []float64{float64(i)}))
	}
	if err := r.Run(); err != nil {
		return Trend{}, fmt.Errorf("failed to fit trend: %w", err)
	}

	return Trend{
		Window:    window,
		Intercept: r.Coeff(0),
		Slope:     r.Coeff(1),
		R2:        r.R2,
	}, nil
}
