package simulation

import (
	"battery-dispatch/internal/model"
	"battery-dispatch/internal/strategy"
)

// HourlyResult is one row of per-hour output. Rows are appended once and never
// modified afterwards.
type HourlyResult struct {
	Hour int

	Action model.Action

	NetLoadKW   float64
	ChargeKW    float64
	DischargeKW float64

	// GridKW is positive when buying, negative when selling.
	GridKW     float64
	GridBuyKW  float64
	GridSellKW float64

	EnergyStartKWh float64
	EnergyEndKWh   float64

	BuyPrice  float64
	SellPrice float64

	Cost           float64
	CumulativeCost float64
}

type Result struct {
	Strategy strategy.Name
	Battery  model.BatteryConfig

	TotalCost      float64
	TotalBuyKWh    float64
	TotalSellKWh   float64
	FinalEnergyKWh float64

	Hours []HourlyResult
}

// EnergySeries returns the end-of-hour stored energy for each hour.
func (r *Result) EnergySeries() []float64 {
	out := make([]float64, len(r.Hours))
	for i, h := range r.Hours {
		out[i] = h.EnergyEndKWh
	}
	return out
}

// CumulativeCostSeries returns the running cost at the end of each hour.
func (r *Result) CumulativeCostSeries() []float64 {
	out := make([]float64, len(r.Hours))
	for i, h := range r.Hours {
		out[i] = h.CumulativeCost
	}
	return out
}

// GridFlowSeries returns the hourly buy and sell power.
func (r *Result) GridFlowSeries() (buy, sell []float64) {
	buy = make([]float64, len(r.Hours))
	sell = make([]float64, len(r.Hours))
	for i, h := range r.Hours {
		buy[i] = h.GridBuyKW
		sell[i] = h.GridSellKW
	}
	return buy, sell
}
