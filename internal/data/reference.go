package data

import "battery-dispatch/internal/model"

// ReferenceDay is the winter-day profile the simulator ships with: a
// residential load curve, a low-sun PV curve, a two-tier time-of-use buy
// price (1.99 off-peak, 4.48 peak) and a flat export price.
func ReferenceDay() model.DaySeries {
	return model.DaySeries{
		LoadKW: [model.HoursPerDay]float64{
			0.6, 0.5, 0.5, 0.5, 0.5, 0.6,
			1.2, 1.5, 1.0, 0.8, 0.7, 0.7,
			0.8, 0.7, 0.8, 0.9, 1.2, 1.8,
			2.5, 2.3, 2.0, 1.5, 1.0, 0.7,
		},
		PVKW: [model.HoursPerDay]float64{
			0.0, 0.0, 0.0, 0.0, 0.0, 0.0,
			0.0, 0.2, 0.8, 1.5, 2.5, 3.2,
			3.5, 3.0, 2.2, 1.2, 0.5, 0.1,
			0.0, 0.0, 0.0, 0.0, 0.0, 0.0,
		},
		BuyPrice: [model.HoursPerDay]float64{
			1.99, 1.99, 1.99, 1.99, 1.99, 1.99,
			4.48, 4.48, 4.48, 4.48, 4.48,
			1.99, 1.99, 1.99,
			4.48, 4.48, 4.48, 4.48, 4.48, 4.48, 4.48, 4.48, 4.48, 4.48,
		},
		SellPrice: flat(5.6279),
	}
}

// ReferenceBattery is the default 10 kWh / 3.3 kW home battery at half charge.
func ReferenceBattery() model.BatteryConfig {
	return model.BatteryConfig{
		CapacityKWh:         10,
		InitialEnergyKWh:    5,
		MaxChargePowerKW:    3.3,
		MaxDischargePowerKW: 3.3,
		ChargeEfficiency:    0.95,
		DischargeEfficiency: 0.95,
	}
}

// ReferenceCapacities are the capacity values of the default sensitivity sweep.
func ReferenceCapacities() []float64 {
	return []float64{5, 8, 10, 12, 15}
}

func flat(v float64) [model.HoursPerDay]float64 {
	var out [model.HoursPerDay]float64
	for i := range out {
		out[i] = v
	}
	return out
}
