package sweep

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"battery-dispatch/internal/data"
	"battery-dispatch/internal/model"
	"battery-dispatch/internal/simulation"
	"battery-dispatch/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observerFunc func(int, time.Duration)

func (f observerFunc) ObserveSweep(n int, d time.Duration) { f(n, d) }

func TestCapacityReferenceDay(t *testing.T) {
	series := data.ReferenceDay()
	d := New(simulation.New())
	res, err := d.Capacity(context.Background(), data.ReferenceBattery(), &series, data.ReferenceCapacities())
	require.NoError(t, err)

	wantA := []float64{11.783846315789475, 12.458412105263164, 11.538622631578946, 9.142559999999994, 2.7585599999999886}
	wantB := []float64{-3.132657146814407, -12.758551883656516, -19.175815041551257, -25.59307819944598, -26.93097293628808}
	assert.Equal(t, []float64{5, 8, 10, 12, 15}, res.Capacities)
	require.Len(t, res.CostA, 5)
	require.Len(t, res.CostB, 5)
	require.Len(t, res.Savings, 5)
	for i := range wantA {
		assert.InDelta(t, wantA[i], res.CostA[i], 1e-9, "A at %v", res.Capacities[i])
		assert.InDelta(t, wantB[i], res.CostB[i], 1e-9, "B at %v", res.Capacities[i])
		assert.InDelta(t, wantA[i]-wantB[i], res.Savings[i], 1e-9)
	}
}

func TestCapacityMatchesDirectSimulation(t *testing.T) {
	series := data.ReferenceDay()
	eng := simulation.New()
	caps := []float64{15, 3, 7.5, 12, 1, 20, 9}
	res, err := New(eng, WithWorkers(3)).Capacity(context.Background(), data.ReferenceBattery(), &series, caps)
	require.NoError(t, err)

	for i, c := range caps {
		cfg := data.ReferenceBattery().WithCapacity(c)
		a, err := eng.Simulate(context.Background(), strategy.SelfConsumption, cfg, &series)
		require.NoError(t, err)
		b, err := eng.Simulate(context.Background(), strategy.PriceOptimized, cfg, &series)
		require.NoError(t, err)
		assert.Equal(t, a.TotalCost, res.CostA[i], "capacity %v", c)
		assert.Equal(t, b.TotalCost, res.CostB[i], "capacity %v", c)
	}
}

func TestCapacityErrors(t *testing.T) {
	series := data.ReferenceDay()
	d := New(simulation.New())

	_, err := d.Capacity(context.Background(), data.ReferenceBattery(), &series, []float64{5, 0, 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidConfig))

	bad := series
	bad.SellPrice[0] = -1
	_, err = d.Capacity(context.Background(), data.ReferenceBattery(), &bad, []float64{5})
	assert.True(t, errors.Is(err, model.ErrInvalidSeries))
}

func TestCapacityEmpty(t *testing.T) {
	series := data.ReferenceDay()
	res, err := New(simulation.New()).Capacity(context.Background(), data.ReferenceBattery(), &series, nil)
	require.NoError(t, err)
	assert.Empty(t, res.CostA)
	assert.Empty(t, res.CostB)
}

func TestCapacityObserver(t *testing.T) {
	series := data.ReferenceDay()
	var points int
	obs := observerFunc(func(n int, _ time.Duration) { points = n })
	_, err := New(simulation.New(), WithObserver(obs), WithWorkers(0)).Capacity(context.Background(), data.ReferenceBattery(), &series, []float64{4, 6})
	require.NoError(t, err)
	assert.Equal(t, 2, points)
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"explicit", 3, 3},
		{"zero keeps default", 0, runtime.GOMAXPROCS(0)},
		{"negative keeps default", -2, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(simulation.New(), WithWorkers(tt.n)).workers)
		})
	}
	assert.Equal(t, runtime.GOMAXPROCS(0), New(simulation.New()).workers)
}

func TestSelfConsumptionCostMonotonicity(t *testing.T) {
	caps := data.ReferenceCapacities()

	t.Run("reference day violates at 5 to 8 kWh", func(t *testing.T) {
		series := data.ReferenceDay()
		res, err := New(simulation.New()).Capacity(context.Background(), data.ReferenceBattery(), &series, caps)
		require.NoError(t, err)
		v := NonIncreasingViolations(res.Capacities, res.CostA)
		require.Len(t, v, 1)
		assert.Equal(t, 1, v[0].Index)
		assert.Equal(t, 5.0, v[0].FromCapacity)
		assert.Equal(t, 8.0, v[0].ToCapacity)
		assert.Contains(t, v[0].String(), "capacity grew from 5 to 8 kWh")
	})

	t.Run("holds when export is cheaper than import", func(t *testing.T) {
		series := data.ReferenceDay()
		for i := range series.SellPrice {
			series.SellPrice[i] = 1.0
		}
		res, err := New(simulation.New()).Capacity(context.Background(), data.ReferenceBattery(), &series, caps)
		require.NoError(t, err)
		assert.Empty(t, NonIncreasingViolations(res.Capacities, res.CostA))
		assert.InDelta(t, 41.57290789473685, res.CostA[0], 1e-9)
		assert.InDelta(t, 2.7585599999999886, res.CostA[4], 1e-9)
	})
}

func TestNonIncreasingViolations(t *testing.T) {
	assert.Empty(t, NonIncreasingViolations(nil, nil))
	assert.Empty(t, NonIncreasingViolations([]float64{1, 2, 3}, []float64{3, 3, 1}))
	assert.Empty(t, NonIncreasingViolations([]float64{3, 2}, []float64{1, 5}), "decreasing capacity is skipped")
	assert.Empty(t, NonIncreasingViolations([]float64{1, 2}, []float64{1, 1 + 1e-12}), "noise is tolerated")
	v := NonIncreasingViolations([]float64{1, 2, 3, 4}, []float64{4, 5, 3, 3.5})
	require.Len(t, v, 2)
	assert.Equal(t, 1, v[0].Index)
	assert.Equal(t, 3, v[1].Index)
}
