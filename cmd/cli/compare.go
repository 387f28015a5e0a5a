package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"battery-dispatch/internal/analysis"
	"battery-dispatch/internal/report"
	"battery-dispatch/internal/simulation"
	"battery-dispatch/internal/strategy"

	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run both strategies on the same day and print the savings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				outDir = a.cfg.Output.Dir
			}
			ctx, stop := signalContext()
			defer stop()

			eng := a.engine()
			batt := a.cfg.Battery.ToModel()
			var results []*simulation.Result
			for _, name := range strategy.All() {
				res, err := eng.Simulate(ctx, name, batt, &a.series)
				if err != nil {
					return err
				}
				results = append(results, res)
			}

			if a.cfg.Output.LedgerCSV {
				for _, res := range results {
					path := filepath.Join(outDir, "ledger_"+strings.ToLower(res.Strategy.Label())+".csv")
					if err := simulation.WriteLedgerCSV(path, res); err != nil {
						return fmt.Errorf("write ledger: %w", err)
					}
					a.log.Info().Str("path", path).Msg("wrote ledger")
				}
			}
			if a.cfg.Output.Charts {
				if err := writeDayCharts(a, outDir, results); err != nil {
					return err
				}
			}

			return report.WriteSummary(cmd.OutOrStdout(), analysis.Compare(&a.series, results[0], results[1]))
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for ledgers and charts (default output.dir)")
	return cmd
}

func writeDayCharts(a *app, dir string, results []*simulation.Result) error {
	charts := []struct {
		file   string
		render func() ([]byte, error)
	}{
		{"soc.png", func() ([]byte, error) { return report.SOCChart(results...) }},
		{"cumulative_cost.png", func() ([]byte, error) { return report.CumulativeCostChart(results...) }},
		{"load_pv.png", func() ([]byte, error) { return report.LoadPVChart(&a.series) }},
		{"grid_flow.png", func() ([]byte, error) { return report.GridFlowChart(results...) }},
	}
	for _, c := range charts {
		png, err := c.render()
		if err != nil {
			return fmt.Errorf("%s: %w", c.file, err)
		}
		path := filepath.Join(dir, c.file)
		if err := report.WriteFile(path, png); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		a.log.Info().Str("path", path).Msg("wrote chart")
	}
	return nil
}
