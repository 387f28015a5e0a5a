package models

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	ID      string            `json:"id,omitempty"`
	Status  string            `json:"status"`
	Summary SimulationSummary `json:"summary"`
	Ledger  []LedgerRow       `json:"ledger,omitempty"`
}

// SimulationSummary contains the day totals of one strategy
type SimulationSummary struct {
	Strategy        string  `json:"strategy"`
	Label           string  `json:"label"`
	TotalCost       float64 `json:"total_cost"`
	TotalBuyKWh     float64 `json:"total_buy_kwh"`
	TotalSellKWh    float64 `json:"total_sell_kwh"`
	FinalEnergyKWh  float64 `json:"final_energy_kwh"`
	CapacityKWh     float64 `json:"capacity_kwh"`
	SelfSufficiency float64 `json:"self_sufficiency"`
	TotalHours      int     `json:"total_hours"`
}

// LedgerRow represents one hour of the simulation ledger
type LedgerRow struct {
	Hour           int     `json:"hour"`
	Action         string  `json:"action"` // "CHARGING", "DISCHARGING", "IDLE"
	NetLoadKW      float64 `json:"net_load_kw"`
	ChargeKW       float64 `json:"charge_kw"`
	DischargeKW    float64 `json:"discharge_kw"`
	GridKW         float64 `json:"grid_kw"`
	GridBuyKW      float64 `json:"grid_buy_kw"`
	GridSellKW     float64 `json:"grid_sell_kw"`
	EnergyStartKWh float64 `json:"energy_start_kwh"`
	EnergyEndKWh   float64 `json:"energy_end_kwh"`
	BuyPrice       float64 `json:"buy_price"`
	SellPrice      float64 `json:"sell_price"`
	Cost           float64 `json:"cost"`
	CumCost        float64 `json:"cum_cost"`
}

// LedgerResponse is returned by GET /api/v1/simulate/:id/ledger
type LedgerResponse struct {
	ID      string            `json:"id"`
	Summary SimulationSummary `json:"summary"`
	Ledger  []LedgerRow       `json:"ledger"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
	Savings    float64            `json:"savings"` // A - B
	Cheaper    string             `json:"cheaper"`
}

// ComparisonResult contains results for one strategy
type ComparisonResult struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Summary SimulationSummary `json:"summary"`
	Ledger  []LedgerRow       `json:"ledger,omitempty"`
}

// SweepResponse is the capacity sensitivity of both strategies
type SweepResponse struct {
	Capacities []float64        `json:"capacities"`
	CostA      []float64        `json:"cost_a"`
	CostB      []float64        `json:"cost_b"`
	Savings    []float64        `json:"savings"`
	Violations []SweepViolation `json:"violations,omitempty"`
}

// SweepViolation flags a capacity step where a larger battery cost more
type SweepViolation struct {
	Strategy     string  `json:"strategy"`
	FromCapacity float64 `json:"from_capacity_kwh"`
	ToCapacity   float64 `json:"to_capacity_kwh"`
	FromCost     float64 `json:"from_cost"`
	ToCost       float64 `json:"to_cost"`
}

// BatteryInfo represents information about a battery preset
type BatteryInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	File  string       `json:"file"`
	Specs BatterySpecs `json:"specs"`
}

// BatterySpecs contains battery specifications
type BatterySpecs struct {
	CapacityKWh         float64 `json:"capacity_kwh"`
	MaxChargePowerKW    float64 `json:"max_charge_power_kw"`
	MaxDischargePowerKW float64 `json:"max_discharge_power_kw"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
