package strategy

import "math"

// chargeLimitKW caps charging by the offered power, the inverter limit and the
// remaining headroom (before efficiency loss).
func chargeLimitKW(ctx Context, offeredKW float64) float64 {
	return math.Min(offeredKW, math.Min(ctx.Battery.MaxChargePowerKW, ctx.Battery.ChargeHeadroomKW(ctx.EnergyKWh)))
}

// dischargeLimitKW caps discharging by the requested power, the inverter limit
// and the stored energy recoverable at the discharge efficiency.
func dischargeLimitKW(ctx Context, requestedKW float64) float64 {
	return math.Min(requestedKW, math.Min(ctx.Battery.MaxDischargePowerKW, ctx.Battery.DischargeAvailableKW(ctx.EnergyKWh)))
}
