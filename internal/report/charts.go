package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"battery-dispatch/internal/model"
	"battery-dispatch/internal/simulation"
	"battery-dispatch/internal/sweep"

	"github.com/vicanso/go-charts/v2"
)

// SensitivityFile is the default name of the capacity sweep chart.
const SensitivityFile = "sensitivity_emax.png"

const (
	chartWidth  = 1000
	chartHeight = 560
)

var errNoData = errors.New("nothing to plot")

// SOCChart plots the end-of-hour stored energy of each result.
func SOCChart(results ...*simulation.Result) ([]byte, error) {
	if len(results) == 0 {
		return nil, errNoData
	}
	values := make([][]float64, 0, len(results))
	names := make([]string, 0, len(results))
	for _, r := range results {
		values = append(values, r.EnergySeries())
		names = append(names, fmt.Sprintf("Strategy %s: SOC", r.Strategy))
	}
	return lineChart("Battery State of Charge (SOC) Comparison", "Battery Energy (kWh)", hourLabels(len(values[0])), names, values)
}

// CumulativeCostChart plots the running cost of each result.
func CumulativeCostChart(results ...*simulation.Result) ([]byte, error) {
	if len(results) == 0 {
		return nil, errNoData
	}
	values := make([][]float64, 0, len(results))
	names := make([]string, 0, len(results))
	for _, r := range results {
		values = append(values, r.CumulativeCostSeries())
		names = append(names, fmt.Sprintf("Strategy %s (Total %.1f NTD)", r.Strategy, r.TotalCost))
	}
	return lineChart("Cumulative Cost Comparison", "Cumulative Cost (NTD)", hourLabels(len(values[0])), names, values)
}

// LoadPVChart plots the load and PV profiles of the day.
func LoadPVChart(series *model.DaySeries) ([]byte, error) {
	if series == nil {
		return nil, errNoData
	}
	values := [][]float64{
		append([]float64(nil), series.LoadKW[:]...),
		append([]float64(nil), series.PVKW[:]...),
	}
	return lineChart("Load and PV Profiles", "Power (kW)", hourLabels(model.HoursPerDay),
		[]string{"Load (kW)", "PV (kW)"}, values)
}

// GridFlowChart plots hourly grid purchases and exports of each result.
func GridFlowChart(results ...*simulation.Result) ([]byte, error) {
	if len(results) == 0 {
		return nil, errNoData
	}
	var values [][]float64
	var names []string
	for _, r := range results {
		buy, sell := r.GridFlowSeries()
		values = append(values, buy, sell)
		names = append(names,
			fmt.Sprintf("%s: Grid Buy (kW)", r.Strategy),
			fmt.Sprintf("%s: Grid Sell (kW)", r.Strategy))
	}
	return lineChart("Grid Buy/Sell Power Comparison", "Grid Power (kW)", hourLabels(len(values[0])), names, values)
}

// SensitivityChart plots the daily cost of both strategies against capacity.
func SensitivityChart(res *sweep.Result) ([]byte, error) {
	if res == nil || len(res.Capacities) == 0 {
		return nil, errNoData
	}
	labels := make([]string, len(res.Capacities))
	for i, c := range res.Capacities {
		labels[i] = fmt.Sprintf("%g", c)
	}
	return lineChart("Effect of Battery Capacity on Daily Cost", "Battery Capacity E_max (kWh) vs Total Daily Cost (NTD)", labels,
		[]string{"Strategy A: Total Cost", "Strategy B: Total Cost"},
		[][]float64{res.CostA, res.CostB})
}

// WriteFile writes a rendered chart, creating the parent directory.
func WriteFile(path string, png []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, png, 0o644)
}

func lineChart(title, subtitle string, xLabels, names []string, values [][]float64) ([]byte, error) {
	split := len(xLabels) / 3
	if split < 3 {
		split = len(xLabels)
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc(title, subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: split,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: names,
			Left: charts.PositionRight,
			Top:  charts.PositionTop,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(chartWidth),
		charts.HeightOptionFunc(chartHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}

func hourLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%02d", i)
	}
	return out
}
