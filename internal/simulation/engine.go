package simulation

import (
	"context"
	"fmt"

	"battery-dispatch/internal/model"
	"battery-dispatch/internal/strategy"

	"github.com/rs/zerolog"
)

// StepHours is the length of one simulation step.
const StepHours = 1.0

// Recorder receives one observation per completed simulation.
type Recorder interface {
	RecordSimulation(strategy string, totalCost float64)
}

type Engine struct {
	log      zerolog.Logger
	recorder Recorder
	tiers    strategy.PriceTiers
}

type Option func(*Engine)

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithPriceTiers overrides the price-optimized thresholds.
func WithPriceTiers(t strategy.PriceTiers) Option {
	return func(e *Engine) { e.tiers = t }
}

func New(opts ...Option) *Engine {
	e := &Engine{log: zerolog.Nop(), tiers: strategy.DefaultPriceTiers()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Simulate runs one day of hourly dispatch under the named strategy.
// An unknown strategy, an invalid battery or a malformed series fails before
// any hour is processed.
func (e *Engine) Simulate(ctx context.Context, name strategy.Name, batt model.BatteryConfig, series *model.DaySeries) (*Result, error) {
	name, err := strategy.Parse(string(name))
	if err != nil {
		return nil, err
	}
	if err := batt.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if err := e.tiers.Validate(); err != nil {
		return nil, fmt.Errorf("price tiers: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Strategy: name,
		Battery:  batt,
		Hours:    make([]HourlyResult, 0, model.HoursPerDay),
	}
	state := batt.InitialState()

	for t := 0; t < model.HoursPerDay; t++ {
		d, err := strategy.Decide(name, strategy.Context{
			Hour:      t,
			LoadKW:    series.LoadKW[t],
			PVKW:      series.PVKW[t],
			BuyPrice:  series.BuyPrice[t],
			EnergyKWh: state.StoredEnergyKWh,
			Battery:   batt,
			Tiers:     e.tiers,
		})
		if err != nil {
			return nil, fmt.Errorf("hour %d: %w", t, err)
		}

		next := model.Update(state, batt, d.ChargeKW, d.DischargeKW, StepHours)

		row := HourlyResult{
			Hour:           t,
			Action:         model.ActionFor(d.ChargeKW, d.DischargeKW),
			NetLoadKW:      series.NetLoadKW(t),
			ChargeKW:       d.ChargeKW,
			DischargeKW:    d.DischargeKW,
			GridKW:         d.GridKW,
			EnergyStartKWh: state.StoredEnergyKWh,
			EnergyEndKWh:   next.StoredEnergyKWh,
			BuyPrice:       series.BuyPrice[t],
			SellPrice:      series.SellPrice[t],
		}

		if d.GridKW > 0 {
			row.GridBuyKW = d.GridKW
			row.Cost = d.GridKW * series.BuyPrice[t] * StepHours
			res.TotalBuyKWh += d.GridKW * StepHours
		} else {
			// negative cost is export revenue
			if d.GridKW < 0 {
				row.GridSellKW = -d.GridKW
			}
			row.Cost = d.GridKW * series.SellPrice[t] * StepHours
			res.TotalSellKWh += -d.GridKW * StepHours
		}

		res.TotalCost += row.Cost
		row.CumulativeCost = res.TotalCost
		res.Hours = append(res.Hours, row)
		state = next
	}
	res.FinalEnergyKWh = state.StoredEnergyKWh

	e.log.Debug().
		Str("strategy", name.Label()).
		Float64("capacity_kwh", batt.CapacityKWh).
		Float64("total_cost", res.TotalCost).
		Float64("buy_kwh", res.TotalBuyKWh).
		Float64("sell_kwh", res.TotalSellKWh).
		Msg("simulation complete")
	if e.recorder != nil {
		e.recorder.RecordSimulation(name.Label(), res.TotalCost)
	}
	return res, nil
}
