// Package config holds the settings of a covidplot run.
package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"berkotech.co/covid/internal/chart"
	"berkotech.co/covid/internal/timeseries"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultDataPath is the confirmed-cases file of a CSSE COVID-19 checkout
// next to this repository.
const DefaultDataPath = "../COVID-19/csse_covid_19_data/csse_covid_19_time_series/time_series_covid19_confirmed_global.csv"

// Config holds all covidplot settings.
type Config struct {
	Data       string `yaml:"data"`
	DateLayout string `yaml:"date_layout"`

	Country   string `yaml:"country"`
	Chart     string `yaml:"chart"`     // abs, vel, acc or all
	Ambiguous string `yaml:"ambiguous"` // sum, first or error

	OutputDir   string  `yaml:"output_dir"`
	ImageFormat string  `yaml:"image_format"`
	WidthCM     float64 `yaml:"width_cm"`
	HeightCM    float64 `yaml:"height_cm"`
	TickEvery   int     `yaml:"tick_every"`
	TrendWindow int     `yaml:"trend_window"`

	Gallery bool `yaml:"gallery"`
	Show    bool `yaml:"show"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Data:        DefaultDataPath,
		DateLayout:  timeseries.DefaultDateLayout,
		Country:     "Israel",
		Chart:       "all",
		Ambiguous:   "sum",
		OutputDir:   ".",
		ImageFormat: "png",
		WidthCM:     25,
		HeightCM:    12,
		TickEvery:   7,
		TrendWindow: 14,
		Gallery:     true,
	}
}

// Load reads a YAML file over the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

var imageFormats = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "svg": true,
	"pdf": true, "eps": true, "tif": true, "tiff": true,
}

// Validate checks tokens and numeric ranges.
func (c *Config) Validate() error {
	if _, err := c.Kinds(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.Data == "" {
		return fmt.Errorf("%w: data path is empty", ErrInvalidConfig)
	}
	if c.Country == "" {
		return fmt.Errorf("%w: country is empty", ErrInvalidConfig)
	}
	if !imageFormats[c.ImageFormat] {
		return fmt.Errorf("%w: unsupported image format %q", ErrInvalidConfig, c.ImageFormat)
	}
	if c.WidthCM <= 0 || c.HeightCM <= 0 {
		return fmt.Errorf("%w: chart size %vx%vcm", ErrInvalidConfig, c.WidthCM, c.HeightCM)
	}
	if c.TickEvery <= 0 {
		return fmt.Errorf("%w: tick_every must be positive, got %d", ErrInvalidConfig, c.TickEvery)
	}
	if c.TrendWindow <= 0 {
		return fmt.Errorf("%w: trend_window must be positive, got %d", ErrInvalidConfig, c.TrendWindow)
	}
	return nil
}

// Kinds parses Chart.
func (c *Config) Kinds() ([]chart.Kind, error) {
	return chart.ParseKinds(c.Chart)
}

// Policy parses Ambiguous.
func (c *Config) Policy() (timeseries.Policy, error) {
	return timeseries.ParsePolicy(c.Ambiguous)
}

// ChartOptions converts the chart settings for the chart package.
func (c *Config) ChartOptions() (chart.Options, error) {
	policy, err := c.Policy()
	if err != nil {
		return chart.Options{}, err
	}
	return chart.Options{
		Width:     vg.Length(c.WidthCM) * vg.Centimeter,
		Height:    vg.Length(c.HeightCM) * vg.Centimeter,
		TickEvery: c.TickEvery,
		Format:    c.ImageFormat,
		Policy:    policy,
	}, nil
}
