package analysis

import (
	"sort"

	"battery-dispatch/internal/model"
	"battery-dispatch/internal/simulation"
	"battery-dispatch/internal/strategy"
)

// Comparison is the head-to-head of the two strategies over the same day.
type Comparison struct {
	A *simulation.Result
	B *simulation.Result

	// Savings is A.TotalCost - B.TotalCost; positive means B is cheaper.
	Savings float64
	Cheaper strategy.Name

	SelfSufficiencyA float64
	SelfSufficiencyB float64
}

// Compare assumes a was run with SelfConsumption and b with PriceOptimized.
func Compare(series *model.DaySeries, a, b *simulation.Result) Comparison {
	c := Comparison{
		A:                a,
		B:                b,
		Savings:          a.TotalCost - b.TotalCost,
		Cheaper:          strategy.SelfConsumption,
		SelfSufficiencyA: SelfSufficiency(series, a),
		SelfSufficiencyB: SelfSufficiency(series, b),
	}
	if b.TotalCost < a.TotalCost {
		c.Cheaper = strategy.PriceOptimized
	}
	return c
}

// SelfSufficiency is the share of the day's load energy that was not bought
// from the grid, clipped to [0, 1]. Charging from the grid can push purchases
// above the load, which reads as zero.
func SelfSufficiency(series *model.DaySeries, res *simulation.Result) float64 {
	load := Describe(series.LoadKW[:]).Sum * simulation.StepHours
	if load <= 0 {
		return 1
	}
	share := 1 - res.TotalBuyKWh/load
	if share < 0 {
		return 0
	}
	if share > 1 {
		return 1
	}
	return share
}

// Ranked orders results by ascending total cost (cheapest first).
func Ranked(results ...*simulation.Result) []*simulation.Result {
	out := append([]*simulation.Result(nil), results...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCost < out[j].TotalCost
	})
	return out
}
