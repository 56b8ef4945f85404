package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/supplyplan/pkg/infrastructure/config"
	"github.com/vsinha/supplyplan/pkg/infrastructure/logger"
)

// app holds the state shared by every subcommand once the root pre-run has loaded it
type app struct {
	configPath string
	verbose    bool
	format     string
	outputDir  string

	cfg    config.Config
	logger *zap.Logger
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "supplyplan",
		Short:         "Supplier scoring, demand forecasting and inventory what-if analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to YAML config file (optional)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringVar(&a.format, "format", "text", "Output format: text, json, csv")
	flags.StringVarP(&a.outputDir, "output", "o", "", "Output directory for results (required for csv)")

	rootCmd.AddCommand(scoreCmd(a))
	rootCmd.AddCommand(forecastCmd(a))
	rootCmd.AddCommand(simulateCmd(a))
	rootCmd.AddCommand(overviewCmd(a))
	rootCmd.AddCommand(generateCmd(a))
	rootCmd.AddCommand(serveCmd(a))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// load reads configuration and builds the logger
func (a *app) load() error {
	cfg, err := config.Load(a.configPath, a.configPath == "")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.verbose && cfg.Log.Level == "info" {
		cfg.Log.Level = "debug"
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	a.cfg = cfg
	a.logger = log
	return nil
}
