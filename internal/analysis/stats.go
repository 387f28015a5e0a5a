package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SeriesStats summarizes one hourly input series (load, PV or a price).
type SeriesStats struct {
	Min  float64
	Max  float64
	Mean float64
	Sum  float64
	P05  float64
	P95  float64

	// Spread is P95 - P05.
	Spread float64
}

// Describe computes SeriesStats. Quantiles use the empirical CDF.
func Describe(values []float64) SeriesStats {
	s := SeriesStats{}
	if len(values) == 0 {
		return s
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Mean = stat.Mean(sorted, nil)
	for _, v := range sorted {
		s.Sum += v
	}
	s.P05 = stat.Quantile(0.05, stat.Empirical, sorted, nil)
	s.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	s.Spread = s.P95 - s.P05
	return s
}
