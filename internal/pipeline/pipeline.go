// Package pipeline runs one load, derive, plot and publish pass.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"berkotech.co/covid/internal/chart"
	"berkotech.co/covid/internal/config"
	"berkotech.co/covid/internal/gallery"
	"berkotech.co/covid/internal/timeseries"
	"berkotech.co/covid/internal/trend"
)

// Result lists the files a run produced.
type Result struct {
	Images  []string
	Gallery string
	Summary gallery.Summary
}

// Run renders the charts selected by cfg for cfg.Country. A nil logger
// discards output.
func Run(cfg *config.Config, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kinds, err := cfg.Kinds()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.ChartOptions()
	if err != nil {
		return nil, err
	}

	table, err := timeseries.Load(cfg.Data, cfg.DateLayout)
	if err != nil {
		return nil, err
	}
	rows, cols := table.Frame.Dims()
	log.Debug("dataset loaded", zap.String("path", cfg.Data), zap.Int("rows", rows), zap.Int("cols", cols))

	tables, err := derive(table)
	if err != nil {
		return nil, err
	}

	summary, err := summarize(tables, cfg, opts.Policy, log)
	if err != nil {
		return nil, err
	}
	res := &Result{Summary: summary}

	if !cfg.Show {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	for _, k := range kinds {
		title := k.Title(cfg.Country)
		if k == chart.Absolute {
			title += fmt.Sprintf("\nAverage infected per day in %s is %.2f", cfg.Country, summary.AveragePerDay)
		}
		p, err := chart.Draw(tables[k], cfg.Country, title, opts)
		if err != nil {
			return nil, fmt.Errorf("%s chart: %w", k, err)
		}

		var path string
		if cfg.Show {
			path, err = chart.Show(p, opts)
		} else {
			path = filepath.Join(cfg.OutputDir, k.FileName(cfg.Country, cfg.ImageFormat))
			err = chart.Save(p, path, opts)
		}
		if err != nil {
			return nil, err
		}
		log.Info("chart rendered",
			zap.String("country", cfg.Country),
			zap.Stringer("kind", k),
			zap.String("path", path))
		res.Images = append(res.Images, path)
	}

	if cfg.Gallery && !cfg.Show {
		path, err := gallery.Write(cfg.OutputDir, cfg.Country, cfg.ImageFormat, &summary)
		if err != nil {
			return nil, err
		}
		log.Info("gallery written", zap.String("country", cfg.Country), zap.String("path", path))
		res.Gallery = path
	}
	return res, nil
}

func derive(table timeseries.Table) (map[chart.Kind]timeseries.Table, error) {
	velocity, err := timeseries.Velocity(table)
	if err != nil {
		return nil, err
	}
	acceleration, err := timeseries.Acceleration(table)
	if err != nil {
		return nil, err
	}
	return map[chart.Kind]timeseries.Table{
		chart.Absolute:     table,
		chart.Velocity:     velocity,
		chart.Acceleration: acceleration,
	}, nil
}

// summarize fails with timeseries.ErrCountryNotFound before any file is
// written when the country is unknown.
func summarize(tables map[chart.Kind]timeseries.Table, cfg *config.Config, policy timeseries.Policy, log *zap.Logger) (gallery.Summary, error) {
	values := func(k chart.Kind) ([]float64, error) {
		sel, err := timeseries.Select(tables[k].Frame, cfg.Country)
		if err != nil {
			return nil, err
		}
		if sel.Match == timeseries.Ambiguous {
			log.Debug("country spans several rows",
				zap.String("country", cfg.Country),
				zap.Int("rows", sel.Rows.Nrow()),
				zap.Stringer("policy", policy))
		}
		return sel.Values(policy)
	}

	cumulative, err := values(chart.Absolute)
	if err != nil {
		return gallery.Summary{}, err
	}
	summary := gallery.Summary{AveragePerDay: trend.AveragePerDay(cumulative)}

	daily, err := values(chart.Velocity)
	if err != nil {
		return gallery.Summary{}, err
	}
	tr, err := trend.Fit(daily, cfg.TrendWindow)
	switch {
	case errors.Is(err, trend.ErrNotEnoughData):
		log.Warn("trend skipped", zap.String("country", cfg.Country), zap.Error(err))
	case err != nil:
		return gallery.Summary{}, err
	default:
		summary.Trend = &tr
		log.Info("trend fitted",
			zap.String("country", cfg.Country),
			zap.Int("window", tr.Window),
			zap.Float64("slope", tr.Slope),
			zap.Float64("r2", tr.R2))
	}
	return summary, nil
}
