package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"battery-dispatch/internal/report"
	"battery-dispatch/internal/simulation"
	"battery-dispatch/internal/strategy"

	"github.com/spf13/cobra"
)

func newSimulateCmd(a *app) *cobra.Command {
	var name, outPath, chartPath string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one strategy and write the hourly ledger as CSV",
		Example: "  dispatch simulate --strategy A --out results/ledger.csv\n" +
			"  dispatch simulate -c examples/config.yaml --strategy B --chart results/soc.png",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = a.cfg.Strategy.Name
			}
			if name == "" {
				name = string(strategy.SelfConsumption)
			}
			s, err := strategy.Parse(name)
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()
			res, err := a.engine().Simulate(ctx, s, a.cfg.Battery.ToModel(), &a.series)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = filepath.Join(a.cfg.Output.Dir, "ledger_"+strings.ToLower(s.Label())+".csv")
			}
			if err := simulation.WriteLedgerCSV(outPath, res); err != nil {
				return fmt.Errorf("write ledger: %w", err)
			}
			a.log.Info().Str("path", outPath).Int("rows", len(res.Hours)).Msg("wrote ledger")

			if chartPath != "" {
				png, err := report.SOCChart(res)
				if err != nil {
					return err
				}
				if err := report.WriteFile(chartPath, png); err != nil {
					return fmt.Errorf("write chart: %w", err)
				}
				a.log.Info().Str("path", chartPath).Msg("wrote chart")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Strategy %s Cost: %.2f NTD (Buy: %.2f kWh, Sell: %.2f kWh) Final energy: %.3f kWh\n",
				res.Strategy, res.TotalCost, res.TotalBuyKWh, res.TotalSellKWh, res.FinalEnergyKWh)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "strategy", "s", "", "strategy: A (self-consumption) or B (price-optimized)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "ledger CSV path (default <output.dir>/ledger_<strategy>.csv)")
	cmd.Flags().StringVar(&chartPath, "chart", "", "optional SOC chart PNG path")
	return cmd
}
