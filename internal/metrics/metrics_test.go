package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.RecordSimulation("A_Self_Consumption", 11.5)
	c.RecordSimulation("A_Self_Consumption", 9.1)
	c.RecordSimulation("B_Price_Optimized", -19.2)
	c.ObserveSweep(5, 3*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.simulations.WithLabelValues("A_Self_Consumption")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.simulations.WithLabelValues("B_Price_Optimized")))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.sweepPoints))
	assert.Equal(t, 1, testutil.CollectAndCount(c.sweeps))
}

func TestCollectorReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	second.RecordSimulation("A_Self_Consumption", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.simulations.WithLabelValues("A_Self_Consumption")))
}
