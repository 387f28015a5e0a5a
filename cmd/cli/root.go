package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"battery-dispatch/internal/config"
	"battery-dispatch/internal/logging"
	"battery-dispatch/internal/model"
	"battery-dispatch/internal/simulation"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfgPath string
	cfg     *config.Config
	series  model.DaySeries
	log     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "dispatch",
		Short: "Household battery dispatch simulator",
		Long: "Simulates one day of hourly battery dispatch under the self-consumption (A)\n" +
			"and price-optimized (B) strategies and reports the resulting grid cost.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "YAML config (default: built-in reference day and battery)")

	root.AddCommand(newSimulateCmd(a), newCompareCmd(a), newSweepCmd(a), newTraceCmd(a))
	return root
}

func (a *app) load() error {
	a.log = logging.NewWithWriter("cli", os.Stderr)
	if a.cfgPath == "" {
		a.cfg = config.Default()
	} else {
		cfg, err := config.Load(a.cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		a.cfg = cfg
	}
	series, err := a.cfg.Series()
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}
	a.series = series
	return nil
}

func (a *app) engine() *simulation.Engine {
	return simulation.New(
		simulation.WithLogger(a.log),
		simulation.WithPriceTiers(a.cfg.Strategy.PriceTiers),
	)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
