package main

import (
	"fmt"

	"battery-dispatch/internal/strategy"

	"github.com/spf13/cobra"
)

func newTraceCmd(a *app) *cobra.Command {
	var (
		name  string
		hours int
	)
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the first hours of a run to show how the pieces fit together",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Strategy=%s\n", s.Label())
			fmt.Fprintf(out, "Starting energy=%.3f kWh of %.1f kWh\n\n", res.Battery.InitialEnergyKWh, res.Battery.CapacityKWh)
			for _, r := range res.Hours[:max(0, min(hours, len(res.Hours)))] {
				fmt.Fprintf(out,
					"%02d:00 buy=%5.2f  net=%6.2f  action=%-11s  ch=%5.2f  dis=%5.2f  grid=%6.2f  e=%6.3f->%6.3f  cost=%7.3f  cum=%8.3f\n",
					r.Hour,
					r.BuyPrice,
					r.NetLoadKW,
					string(r.Action),
					r.ChargeKW,
					r.DischargeKW,
					r.GridKW,
					r.EnergyStartKWh,
					r.EnergyEndKWh,
					r.Cost,
					r.CumulativeCost,
				)
			}
			fmt.Fprintf(out, "\nDone. Final energy=%.3f kWh  Total cost=%.2f NTD\n", res.FinalEnergyKWh, res.TotalCost)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "strategy", "s", "A", "strategy: A or B")
	cmd.Flags().IntVarP(&hours, "hours", "n", 12, "number of hours to print")
	return cmd
}
