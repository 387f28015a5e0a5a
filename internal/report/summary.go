package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"battery-dispatch/internal/analysis"
	"battery-dispatch/internal/simulation"
	"battery-dispatch/internal/sweep"
)

// WriteSummary prints the per-strategy totals and the A-B savings.
func WriteSummary(w io.Writer, cmp analysis.Comparison) error {
	if cmp.A == nil || cmp.B == nil {
		return errNoData
	}
	if _, err := fmt.Fprintln(w, "Final Results:"); err != nil {
		return err
	}
	for _, r := range []*simulation.Result{cmp.A, cmp.B} {
		if _, err := fmt.Fprintln(w, resultLine(r)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Savings (A - B): %.2f NTD\nCheaper: %s\nSelf-sufficiency: A %.1f%%, B %.1f%%\n",
		cmp.Savings, cmp.Cheaper.Label(), 100*cmp.SelfSufficiencyA, 100*cmp.SelfSufficiencyB)
	return err
}

func resultLine(r *simulation.Result) string {
	return fmt.Sprintf("Strategy %s Cost: %.2f NTD (Buy: %.2f kWh, Sell: %.2f kWh)",
		r.Strategy, r.TotalCost, r.TotalBuyKWh, r.TotalSellKWh)
}

// WriteSweepTable prints one row per capacity followed by any point where a
// larger battery cost more.
func WriteSweepTable(w io.Writer, res *sweep.Result) error {
	if res == nil {
		return errNoData
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "E_max (kWh)\tCost A (NTD)\tCost B (NTD)\tSavings (NTD)")
	for i, c := range res.Capacities {
		fmt.Fprintf(tw, "%g\t%.2f\t%.2f\t%.2f\n", c, res.CostA[i], res.CostB[i], res.Savings[i])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, curve := range []struct {
		label string
		costs []float64
	}{{"A", res.CostA}, {"B", res.CostB}} {
		for _, v := range sweep.NonIncreasingViolations(res.Capacities, curve.costs) {
			if _, err := fmt.Fprintf(w, "warning: strategy %s %s\n", curve.label, v); err != nil {
				return err
			}
		}
	}
	return nil
}
