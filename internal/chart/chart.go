// Package chart draws a country's daily series as a bar chart.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"berkotech.co/covid/internal/timeseries"
)

// Options controls chart geometry, output format and row selection.
type Options struct {
	Width     vg.Length
	Height    vg.Length
	TickEvery int
	Format    string
	Policy    timeseries.Policy
}

// DefaultOptions returns a 25x12cm PNG with weekly ticks.
func DefaultOptions() Options {
	return Options{
		Width:     25 * vg.Centimeter,
		Height:    12 * vg.Centimeter,
		TickEvery: 7,
		Format:    "png",
		Policy:    timeseries.PolicySum,
	}
}

var barColor = color.RGBA{B: 255, A: 255}

// New draws one bar per date.
func New(values []float64, dates []time.Time, title string, opts Options) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, errors.New("no values to plot")
	}
	if len(values) != len(dates) {
		return nil, fmt.Errorf("have %d values for %d dates", len(values), len(dates))
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Cases"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(plotter.Values(values), opts.Width/vg.Length(len(values)+2))
	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.X.Tick.Marker = DateTicks{Dates: dates, Every: opts.TickEvery}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	return p, nil
}

// Draw selects country from t and charts its series.
func Draw(t timeseries.Table, country, title string, opts Options) (*plot.Plot, error) {
	sel, err := timeseries.Select(t.Frame, country)
	if err != nil {
		return nil, err
	}
	values, err := sel.Values(opts.Policy)
	if err != nil {
		return nil, err
	}
	return New(values, t.Dates, title, opts)
}
