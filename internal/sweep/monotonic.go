package sweep

import "fmt"

// costTolerance absorbs floating-point noise when comparing costs.
const costTolerance = 1e-9

// Violation is an adjacent pair of sweep points where capacity grew but cost
// did too.
type Violation struct {
	Index        int
	FromCapacity float64
	ToCapacity   float64
	FromCost     float64
	ToCost       float64
}

func (v Violation) String() string {
	return fmt.Sprintf("cost rose from %.4f to %.4f as capacity grew from %g to %g kWh",
		v.FromCost, v.ToCost, v.FromCapacity, v.ToCapacity)
}

// NonIncreasingViolations checks the expectation that more storage never
// raises the daily cost. Pairs where capacity does not increase are skipped.
//
// The expectation is not a law of the model: when the sell price is above the
// buy price, PV surplus stored in a bigger battery is worth less than the
// export it replaces, so the self-consumption cost can rise with capacity.
func NonIncreasingViolations(capacities, costs []float64) []Violation {
	var out []Violation
	for i := 0; i+1 < len(capacities) && i+1 < len(costs); i++ {
		if capacities[i+1] <= capacities[i] {
			continue
		}
		if costs[i+1] > costs[i]+costTolerance {
			out = append(out, Violation{
				Index:        i + 1,
				FromCapacity: capacities[i],
				ToCapacity:   capacities[i+1],
				FromCost:     costs[i],
				ToCost:       costs[i+1],
			})
		}
	}
	return out
}
