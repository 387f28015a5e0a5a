package model

import "math"

// BatteryConfig defines the physical parameters of a household battery.
// Units:
// - CapacityKWh, InitialEnergyKWh: kWh
// - MaxChargePowerKW, MaxDischargePowerKW: kW
// - Efficiencies: (0, 1]
//
// A BatteryConfig is immutable for the duration of a simulation run; build one
// with NewBatteryConfig so it is validated exactly once.
type BatteryConfig struct {
	CapacityKWh         float64
	InitialEnergyKWh    float64
	MaxChargePowerKW    float64
	MaxDischargePowerKW float64
	ChargeEfficiency    float64
	DischargeEfficiency float64
}

// BatteryState captures mutable state.
type BatteryState struct {
	// StoredEnergyKWh is kept within [0, CapacityKWh] by Update.
	StoredEnergyKWh float64
}

// NewBatteryConfig validates params and returns them unchanged on success.
func NewBatteryConfig(params BatteryConfig) (BatteryConfig, error) {
	if err := params.Validate(); err != nil {
		return BatteryConfig{}, err
	}
	return params, nil
}

// Validate reports the first out-of-range parameter as a *ConfigurationError.
func (c BatteryConfig) Validate() error {
	switch {
	case !finite(c.CapacityKWh) || c.CapacityKWh <= 0:
		return configErr("capacity_kwh", "must be > 0")
	case !finite(c.MaxChargePowerKW) || c.MaxChargePowerKW < 0:
		return configErr("max_charge_power_kw", "must be >= 0")
	case !finite(c.MaxDischargePowerKW) || c.MaxDischargePowerKW < 0:
		return configErr("max_discharge_power_kw", "must be >= 0")
	case !finite(c.ChargeEfficiency) || c.ChargeEfficiency <= 0 || c.ChargeEfficiency > 1:
		return configErr("charge_efficiency", "must be in (0, 1]")
	case !finite(c.DischargeEfficiency) || c.DischargeEfficiency <= 0 || c.DischargeEfficiency > 1:
		return configErr("discharge_efficiency", "must be in (0, 1]")
	case !finite(c.InitialEnergyKWh) || c.InitialEnergyKWh < 0 || c.InitialEnergyKWh > c.CapacityKWh:
		return configErr("initial_energy_kwh", "must be within [0, capacity_kwh]")
	}
	return nil
}

// InitialState returns the state a simulation starts from.
func (c BatteryConfig) InitialState() BatteryState {
	return BatteryState{StoredEnergyKWh: c.InitialEnergyKWh}
}

// WithCapacity returns a copy resized to capacityKWh, starting at half charge.
func (c BatteryConfig) WithCapacity(capacityKWh float64) BatteryConfig {
	out := c
	out.CapacityKWh = capacityKWh
	out.InitialEnergyKWh = 0.5 * capacityKWh
	return out
}

// ChargeHeadroomKW is the largest one-hour charge power that still fits,
// measured before efficiency loss.
func (c BatteryConfig) ChargeHeadroomKW(energyKWh float64) float64 {
	return (c.CapacityKWh - energyKWh) / c.ChargeEfficiency
}

// DischargeAvailableKW is the stored energy recoverable at the discharge efficiency.
func (c BatteryConfig) DischargeAvailableKW(energyKWh float64) float64 {
	return energyKWh * c.DischargeEfficiency
}

// Update applies one step of charge/discharge to the stored energy:
//
//	E_next = E + (eta_ch*P_ch - P_dis/eta_dis) * dt
//
// The result is clamped to [0, CapacityKWh]. Clamping does not feed back into
// the grid flow the caller has already computed, so a step that saturates the
// battery can leave a small energy-balance residue.
func Update(s BatteryState, c BatteryConfig, chargeKW, dischargeKW, dtHours float64) BatteryState {
	next := s.StoredEnergyKWh + (c.ChargeEfficiency*chargeKW-dischargeKW/c.DischargeEfficiency)*dtHours
	return BatteryState{StoredEnergyKWh: clamp(next, 0, c.CapacityKWh)}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
