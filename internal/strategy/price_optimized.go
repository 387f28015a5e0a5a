package strategy

import (
	"fmt"
	"math"
)

// PriceTiers are the buy-price thresholds of the price-optimized strategy.
type PriceTiers struct {
	// Below this buy price the battery is force-charged at the highest rate
	// that still fits, regardless of load or PV.
	CheapBelow float64 `yaml:"cheap_below" json:"cheap_below"`
	// Above this buy price a deficit is covered from the battery.
	ExpensiveAbove float64 `yaml:"expensive_above" json:"expensive_above"`
}

func DefaultPriceTiers() PriceTiers {
	return PriceTiers{CheapBelow: 2.5, ExpensiveAbove: 4.0}
}

// OrDefault returns the defaults for an unset (zero) PriceTiers.
func (p PriceTiers) OrDefault() PriceTiers {
	if p == (PriceTiers{}) {
		return DefaultPriceTiers()
	}
	return p
}

func (p PriceTiers) Validate() error {
	if math.IsNaN(p.CheapBelow) || math.IsNaN(p.ExpensiveAbove) {
		return fmt.Errorf("price tiers must be numbers")
	}
	if p.CheapBelow > p.ExpensiveAbove {
		return fmt.Errorf("cheap_below (%v) must not exceed expensive_above (%v)", p.CheapBelow, p.ExpensiveAbove)
	}
	return nil
}

// priceOptimized evaluates three buy-price branches in order:
//   - cheap hour: force charge, no discharge; the grid covers load + charge - pv,
//     which is an export when PV exceeds both
//   - expensive deficit hour: cover the deficit from the battery, never export
//   - otherwise: same as self-consumption
func priceOptimized(ctx Context) Decision {
	tiers := ctx.Tiers.OrDefault()
	switch {
	case ctx.BuyPrice < tiers.CheapBelow:
		ch := math.Min(ctx.Battery.MaxChargePowerKW, ctx.Battery.ChargeHeadroomKW(ctx.EnergyKWh))
		return Decision{ChargeKW: ch, GridKW: ctx.LoadKW + ch - ctx.PVKW}
	case ctx.BuyPrice > tiers.ExpensiveAbove && ctx.NetLoadKW() > 0:
		deficit := ctx.NetLoadKW()
		dis := dischargeLimitKW(ctx, deficit)
		return Decision{DischargeKW: dis, GridKW: deficit - dis}
	default:
		return selfConsumption(ctx)
	}
}
