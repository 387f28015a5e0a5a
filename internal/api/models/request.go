package models

// SimulateRequest represents the request body for POST /api/v1/simulate
type SimulateRequest struct {
	Strategy      string        `json:"strategy" binding:"required"` // "A" or "B"
	BatteryFile   string        `json:"battery_file,omitempty"`      // preset ID, e.g. "home_10kwh"
	Battery       BatteryConfig `json:"battery,omitempty"`
	Series        *SeriesInput  `json:"series,omitempty"` // default: reference day
	PriceTiers    *PriceTiers   `json:"price_tiers,omitempty"`
	IncludeLedger bool          `json:"include_ledger,omitempty"` // default: false
}

// CompareRequest runs both strategies on the same battery and day
type CompareRequest struct {
	BatteryFile   string        `json:"battery_file,omitempty"`
	Battery       BatteryConfig `json:"battery,omitempty"`
	Series        *SeriesInput  `json:"series,omitempty"`
	PriceTiers    *PriceTiers   `json:"price_tiers,omitempty"`
	IncludeLedger bool          `json:"include_ledger,omitempty"`
}

// SweepRequest runs both strategies once per capacity
type SweepRequest struct {
	Capacities  []float64     `json:"capacities,omitempty"` // default: 5, 8, 10, 12, 15
	BatteryFile string        `json:"battery_file,omitempty"`
	Battery     BatteryConfig `json:"battery,omitempty"`
	Series      *SeriesInput  `json:"series,omitempty"`
	PriceTiers  *PriceTiers   `json:"price_tiers,omitempty"`
}

// BatteryConfig defines battery parameters. Zero or absent fields keep the
// preset (or reference) value; the pointer fields accept an explicit 0.
type BatteryConfig struct {
	Name                string   `json:"name,omitempty"`
	CapacityKWh         float64  `json:"capacity_kwh,omitempty"`
	InitialEnergyKWh    *float64 `json:"initial_energy_kwh,omitempty"` // default: half of capacity
	MaxChargePowerKW    *float64 `json:"max_charge_power_kw,omitempty"`
	MaxDischargePowerKW *float64 `json:"max_discharge_power_kw,omitempty"`
	ChargeEfficiency    float64  `json:"charge_efficiency,omitempty"`
	DischargeEfficiency float64  `json:"discharge_efficiency,omitempty"`
}

// SeriesInput is a 24-hour day profile
type SeriesInput struct {
	LoadKW    []float64 `json:"load_kw" binding:"required"`
	PVKW      []float64 `json:"pv_kw" binding:"required"`
	BuyPrice  []float64 `json:"buy_price" binding:"required"`
	SellPrice []float64 `json:"sell_price" binding:"required"`
}

// PriceTiers are the buy-price thresholds of the price-optimized strategy
type PriceTiers struct {
	CheapBelow     float64 `json:"cheap_below"`
	ExpensiveAbove float64 `json:"expensive_above"`
}
