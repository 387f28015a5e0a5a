package strategy

import (
	"fmt"
	"strings"

	"battery-dispatch/internal/model"
)

// Name identifies one of the closed set of dispatch strategies.
type Name string

const (
	// SelfConsumption stores local PV surplus before exporting and covers
	// deficits from the battery before buying.
	SelfConsumption Name = "A"
	// PriceOptimized shifts charge/discharge by time-of-use buy price tier.
	PriceOptimized Name = "B"
)

// All lists every strategy in presentation order.
func All() []Name { return []Name{SelfConsumption, PriceOptimized} }

// Label is the long display name used in reports and CSV file names.
func (n Name) Label() string {
	switch n {
	case SelfConsumption:
		return "A_Self_Consumption"
	case PriceOptimized:
		return "B_Price_Optimized"
	}
	return string(n)
}

func (n Name) String() string { return string(n) }

// Parse maps a user-supplied identifier onto a Name.
func Parse(s string) (Name, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "a_self_consumption", "self_consumption", "self-consumption":
		return SelfConsumption, nil
	case "b", "b_price_optimized", "price_optimized", "price-optimized":
		return PriceOptimized, nil
	}
	return "", fmt.Errorf("%w: %q", model.ErrInvalidStrategy, s)
}

// Context is everything a policy may look at for one hour.
type Context struct {
	Hour      int
	LoadKW    float64
	PVKW      float64
	BuyPrice  float64
	EnergyKWh float64
	Battery   model.BatteryConfig
	Tiers     PriceTiers
}

// NetLoadKW is positive on a deficit hour and negative on a surplus hour.
func (c Context) NetLoadKW() float64 { return c.LoadKW - c.PVKW }

// Decision is one hour's dispatch.
// Convention: GridKW positive = buy, negative = sell.
// Invariant: GridKW + PVKW == LoadKW + ChargeKW - DischargeKW.
type Decision struct {
	ChargeKW    float64
	DischargeKW float64
	GridKW      float64
}

// Decide runs the policy selected by name.
func Decide(name Name, ctx Context) (Decision, error) {
	switch name {
	case SelfConsumption:
		return selfConsumption(ctx), nil
	case PriceOptimized:
		return priceOptimized(ctx), nil
	}
	return Decision{}, fmt.Errorf("%w: %q", model.ErrInvalidStrategy, string(name))
}
