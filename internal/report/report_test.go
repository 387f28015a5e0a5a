package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"battery-dispatch/internal/analysis"
	"battery-dispatch/internal/data"
	"battery-dispatch/internal/simulation"
	"battery-dispatch/internal/strategy"
	"battery-dispatch/internal/sweep"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG")

func referenceRuns(t *testing.T) (a, b *simulation.Result) {
	t.Helper()
	series := data.ReferenceDay()
	eng := simulation.New()
	a, err := eng.Simulate(context.Background(), strategy.SelfConsumption, data.ReferenceBattery(), &series)
	require.NoError(t, err)
	b, err = eng.Simulate(context.Background(), strategy.PriceOptimized, data.ReferenceBattery(), &series)
	require.NoError(t, err)
	return a, b
}

func TestCharts(t *testing.T) {
	a, b := referenceRuns(t)
	series := data.ReferenceDay()
	sw, err := sweep.New(simulation.New()).Capacity(context.Background(), data.ReferenceBattery(), &series, data.ReferenceCapacities())
	require.NoError(t, err)

	tests := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{"soc", func() ([]byte, error) { return SOCChart(a, b) }},
		{"cumulative cost", func() ([]byte, error) { return CumulativeCostChart(a, b) }},
		{"load pv", func() ([]byte, error) { return LoadPVChart(&series) }},
		{"grid flow", func() ([]byte, error) { return GridFlowChart(a, b) }},
		{"sensitivity", func() ([]byte, error) { return SensitivityChart(sw) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := tt.render()
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(png, pngMagic))
		})
	}
}

func TestChartsRejectEmptyInput(t *testing.T) {
	_, err := SOCChart()
	assert.ErrorIs(t, err, errNoData)
	_, err = GridFlowChart()
	assert.ErrorIs(t, err, errNoData)
	_, err = LoadPVChart(nil)
	assert.ErrorIs(t, err, errNoData)
	_, err = SensitivityChart(&sweep.Result{})
	assert.ErrorIs(t, err, errNoData)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", SensitivityFile)
	require.NoError(t, WriteFile(path, pngMagic))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, got)
}

func TestWriteSummary(t *testing.T) {
	a, b := referenceRuns(t)
	series := data.ReferenceDay()

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, analysis.Compare(&series, a, b)))
	out := buf.String()

	assert.Contains(t, out, "Strategy A Cost: 11.54 NTD (Buy: 4.05 kWh, Sell: 1.17 kWh)")
	assert.Contains(t, out, "Strategy B Cost: -19.18 NTD (Buy: 11.36 kWh, Sell: 8.71 kWh)")
	assert.Contains(t, out, "Savings (A - B): 30.71 NTD")
	assert.Contains(t, out, "Cheaper: B_Price_Optimized")

	assert.ErrorIs(t, WriteSummary(&buf, analysis.Comparison{}), errNoData)
}

func TestWriteSweepTable(t *testing.T) {
	series := data.ReferenceDay()
	sw, err := sweep.New(simulation.New()).Capacity(context.Background(), data.ReferenceBattery(), &series, data.ReferenceCapacities())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSweepTable(&buf, sw))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	require.Len(t, lines, 1+len(sw.Capacities)+1)
	assert.True(t, strings.HasPrefix(lines[0], "E_max (kWh)"))
	assert.Contains(t, lines[3], "11.54")
	assert.Contains(t, lines[3], "-19.18")
	assert.Equal(t, "warning: strategy A cost rose from 11.7838 to 12.4584 as capacity grew from 5 to 8 kWh", lines[len(lines)-1])
}
