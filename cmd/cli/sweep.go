package main

import (
	"fmt"
	"path/filepath"

	"battery-dispatch/internal/report"
	"battery-dispatch/internal/sweep"

	"github.com/spf13/cobra"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		capacities []float64
		outPath    string
		workers    int
		noChart    bool
	)
	cmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Evaluate both strategies across battery capacities",
		Example: "  dispatch sweep --capacities 5,8,10,12,15 --out sensitivity_emax.png",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(capacities) == 0 {
				capacities = a.cfg.Sweep.Capacities
			}
			ctx, stop := signalContext()
			defer stop()

			driver := sweep.New(a.engine(), sweep.WithLogger(a.log), sweep.WithWorkers(workers))
			res, err := driver.Capacity(ctx, a.cfg.Battery.ToModel(), &a.series, capacities)
			if err != nil {
				return err
			}

			if err := report.WriteSweepTable(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if noChart {
				return nil
			}

			if outPath == "" {
				outPath = filepath.Join(a.cfg.Output.Dir, report.SensitivityFile)
			}
			png, err := report.SensitivityChart(res)
			if err != nil {
				return err
			}
			if err := report.WriteFile(outPath, png); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nSensitivity Analysis Saved: %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&capacities, "capacities", nil, "capacities in kWh (default sweep.capacities)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "chart PNG path (default <output.dir>/"+report.SensitivityFile+")")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent simulations (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "print the table only")
	return cmd
}
