// Command covidplot charts a country's confirmed COVID-19 cases, daily new
// cases and the change in daily new cases, and writes an HTML page showing
// the three charts.
//
// Usage:
//
//	covidplot [country] [chart_type]
//
// chart_type is abs, vel, acc or all (the default).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"berkotech.co/covid/internal/config"
	"berkotech.co/covid/internal/pipeline"
)

var (
	cfgFile   string
	dataPath  string
	outputDir string
	show      bool
	verbose   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "covidplot [country] [chart_type]",
	Short: "Chart COVID-19 infections, velocity and acceleration for a country",
	Long: `covidplot reads the CSSE confirmed-cases time series and draws three bar
charts for one country:

  abs  total confirmed cases
  vel  new cases per day
  acc  day-over-day change in new cases

Charts are written as abs_<country>.png, vel_<country>.png and
acc_<country>.png next to a <country>.html page that shows them.`,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPlot,
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "covidplot.yaml", "YAML config file")
	rootCmd.Flags().StringVar(&dataPath, "data", "", "confirmed-cases CSV (overrides config)")
	rootCmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory (overrides config)")
	rootCmd.Flags().BoolVar(&show, "show", false, "open charts in an image viewer instead of writing files")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	applyOverrides(cmd, cfg, args)

	_, err = pipeline.Run(cfg, logger)
	return err
}

// applyOverrides layers flags and positional arguments over cfg.
func applyOverrides(cmd *cobra.Command, cfg *config.Config, args []string) {
	if cmd.Flags().Changed("data") {
		cfg.Data = dataPath
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("show") {
		cfg.Show = show
	}
	if len(args) > 0 {
		cfg.Country = args[0]
	}
	if len(args) > 1 {
		cfg.Chart = args[1]
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
