package analysis

import (
	"context"
	"testing"

	"battery-dispatch/internal/data"
	"battery-dispatch/internal/simulation"
	"battery-dispatch/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	assert.Equal(t, SeriesStats{}, Describe(nil))

	s := Describe([]float64{3, 1, 2, 5, 4})
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.InDelta(t, 3.0, s.Mean, 1e-12)
	assert.InDelta(t, 15.0, s.Sum, 1e-12)
	assert.Equal(t, 1.0, s.P05)
	assert.Equal(t, 5.0, s.P95)
	assert.Equal(t, 4.0, s.Spread)

	ref := data.ReferenceDay()
	prices := Describe(ref.BuyPrice[:])
	assert.Equal(t, 1.99, prices.Min)
	assert.Equal(t, 4.48, prices.Max)
	load := Describe(ref.LoadKW[:])
	assert.InDelta(t, 25.3, load.Sum, 1e-9)
}

func TestCompareReferenceDay(t *testing.T) {
	series := data.ReferenceDay()
	eng := simulation.New()
	a, err := eng.Simulate(context.Background(), strategy.SelfConsumption, data.ReferenceBattery(), &series)
	require.NoError(t, err)
	b, err := eng.Simulate(context.Background(), strategy.PriceOptimized, data.ReferenceBattery(), &series)
	require.NoError(t, err)

	c := Compare(&series, a, b)
	assert.InDelta(t, 11.538622631578946-(-19.175815041551257), c.Savings, 1e-9)
	assert.Equal(t, strategy.PriceOptimized, c.Cheaper)
	assert.InDelta(t, 1-4.05/25.3, c.SelfSufficiencyA, 1e-9)
	assert.InDelta(t, 1-11.36315789473684/25.3, c.SelfSufficiencyB, 1e-9)

	ranked := Ranked(a, b)
	assert.Same(t, b, ranked[0])
	assert.Same(t, a, ranked[1])
}

func TestSelfSufficiencyBounds(t *testing.T) {
	series := data.ReferenceDay()
	assert.Equal(t, 0.0, SelfSufficiency(&series, &simulation.Result{TotalBuyKWh: 100}))
	assert.Equal(t, 1.0, SelfSufficiency(&series, &simulation.Result{}))

	dark := series
	for i := range dark.LoadKW {
		dark.LoadKW[i] = 0
	}
	assert.Equal(t, 1.0, SelfSufficiency(&dark, &simulation.Result{TotalBuyKWh: 3}))
}
