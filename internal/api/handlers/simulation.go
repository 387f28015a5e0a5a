package handlers

import (
	"net/http"
	"path/filepath"

	"battery-dispatch/internal/analysis"
	"battery-dispatch/internal/api/models"
	"battery-dispatch/internal/config"
	"battery-dispatch/internal/data"
	"battery-dispatch/internal/metrics"
	"battery-dispatch/internal/model"
	"battery-dispatch/internal/simulation"
	"battery-dispatch/internal/strategy"
	"battery-dispatch/internal/sweep"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SimulationOptions configures a SimulationHandler.
type SimulationOptions struct {
	Logger     zerolog.Logger
	Metrics    *metrics.Collector // optional
	Cache      *data.ResultCache  // optional; without it ledgers cannot be fetched by id
	BatteryDir string
	Workers    int // sweep concurrency, 0 = GOMAXPROCS
}

// SimulationHandler handles simulate, compare and sweep requests
type SimulationHandler struct {
	opts SimulationOptions
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(opts SimulationOptions) *SimulationHandler {
	return &SimulationHandler{opts: opts}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
		return
	}

	name, err := strategy.Parse(req.Strategy)
	if err != nil {
		respondSimulationError(c, err)
		return
	}
	in, ok := h.bindInputs(c, req.BatteryFile, req.Battery, req.Series, req.PriceTiers)
	if !ok {
		return
	}

	res, err := h.engine(in.tiers).Simulate(c.Request.Context(), name, in.battery, &in.series)
	if err != nil {
		respondSimulationError(c, err)
		return
	}

	response := models.SimulateResponse{
		ID:      h.opts.Cache.Put(res),
		Status:  "completed",
		Summary: buildSummary(&in.series, res),
	}
	if req.IncludeLedger {
		response.Ledger = convertLedger(res.Hours)
	}
	c.JSON(http.StatusOK, response)
}

// GetLedger handles GET /api/v1/simulate/:id/ledger
func (h *SimulationHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")
	res, ok := h.opts.Cache.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, CodeNotFound, "no simulation with this id (results expire)", map[string]interface{}{
			"id": id,
		})
		return
	}
	c.JSON(http.StatusOK, models.LedgerResponse{
		ID:      id,
		Summary: buildSummary(nil, res),
		Ledger:  convertLedger(res.Hours),
	})
}

// CompareStrategies handles POST /api/v1/compare
func (h *SimulationHandler) CompareStrategies(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
		return
	}
	in, ok := h.bindInputs(c, req.BatteryFile, req.Battery, req.Series, req.PriceTiers)
	if !ok {
		return
	}

	eng := h.engine(in.tiers)
	results := make([]*simulation.Result, 0, len(strategy.All()))
	for _, name := range strategy.All() {
		res, err := eng.Simulate(c.Request.Context(), name, in.battery, &in.series)
		if err != nil {
			respondSimulationError(c, err)
			return
		}
		results = append(results, res)
	}

	cmp := analysis.Compare(&in.series, results[0], results[1])
	response := models.CompareResponse{
		Savings: cmp.Savings,
		Cheaper: cmp.Cheaper.String(),
	}
	for _, res := range results {
		row := models.ComparisonResult{
			ID:      h.opts.Cache.Put(res),
			Name:    res.Strategy.Label(),
			Summary: buildSummary(&in.series, res),
		}
		if req.IncludeLedger {
			row.Ledger = convertLedger(res.Hours)
		}
		response.Comparison = append(response.Comparison, row)
	}
	c.JSON(http.StatusOK, response)
}

// RunSweep handles POST /api/v1/sweep
func (h *SimulationHandler) RunSweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
		return
	}
	capacities := req.Capacities
	if len(capacities) == 0 {
		capacities = data.ReferenceCapacities()
	}
	in, ok := h.bindInputs(c, req.BatteryFile, req.Battery, req.Series, req.PriceTiers)
	if !ok {
		return
	}

	opts := []sweep.Option{sweep.WithLogger(h.opts.Logger), sweep.WithWorkers(h.opts.Workers)}
	if h.opts.Metrics != nil {
		opts = append(opts, sweep.WithObserver(h.opts.Metrics))
	}
	res, err := sweep.New(h.engine(in.tiers), opts...).Capacity(c.Request.Context(), in.battery, &in.series, capacities)
	if err != nil {
		respondSimulationError(c, err)
		return
	}

	response := models.SweepResponse{
		Capacities: res.Capacities,
		CostA:      res.CostA,
		CostB:      res.CostB,
		Savings:    res.Savings,
	}
	for _, curve := range []struct {
		name  strategy.Name
		costs []float64
	}{{strategy.SelfConsumption, res.CostA}, {strategy.PriceOptimized, res.CostB}} {
		for _, v := range sweep.NonIncreasingViolations(res.Capacities, curve.costs) {
			response.Violations = append(response.Violations, models.SweepViolation{
				Strategy:     curve.name.String(),
				FromCapacity: v.FromCapacity,
				ToCapacity:   v.ToCapacity,
				FromCost:     v.FromCost,
				ToCost:       v.ToCost,
			})
		}
	}
	c.JSON(http.StatusOK, response)
}

type inputs struct {
	battery model.BatteryConfig
	series  model.DaySeries
	tiers   strategy.PriceTiers
}

// bindInputs resolves battery, series and price tiers from a request. On
// failure it has already written the error response.
func (h *SimulationHandler) bindInputs(c *gin.Context, batteryFile string, battery models.BatteryConfig, series *models.SeriesInput, tiers *models.PriceTiers) (inputs, bool) {
	var in inputs
	var err error

	if in.battery, err = h.buildBattery(batteryFile, battery); err != nil {
		respondSimulationError(c, err)
		return in, false
	}

	in.series = data.ReferenceDay()
	if series != nil {
		if in.series, err = model.SeriesFromSlices(series.LoadKW, series.PVKW, series.BuyPrice, series.SellPrice); err != nil {
			respondSimulationError(c, err)
			return in, false
		}
	}

	in.tiers = strategy.DefaultPriceTiers()
	if tiers != nil {
		in.tiers = strategy.PriceTiers{CheapBelow: tiers.CheapBelow, ExpensiveAbove: tiers.ExpensiveAbove}
		if err := in.tiers.Validate(); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest, "price_tiers: "+err.Error(), nil)
			return in, false
		}
	}
	return in, true
}

// buildBattery layers the request over the preset (if any) over the
// reference battery.
func (h *SimulationHandler) buildBattery(file string, req models.BatteryConfig) (model.BatteryConfig, error) {
	base := config.FromModel(data.ReferenceBattery())
	if file != "" {
		// battery_file is a preset ID; files are always looked up in the battery directory
		path := filepath.Join(h.opts.BatteryDir, filepath.Base(file)+".yaml")
		loaded, err := config.LoadBatteryFile(path)
		if err != nil {
			h.opts.Logger.Warn().Err(err).Str("path", path).Msg("failed to load battery file")
			return model.BatteryConfig{}, &model.ConfigurationError{Field: "battery_file", Reason: "unknown preset " + file}
		}
		base = config.MergeBattery(base, loaded)
	}
	merged := config.MergeBattery(base, config.BatteryConfig{
		Name:                req.Name,
		CapacityKWh:         req.CapacityKWh,
		InitialEnergyKWh:    req.InitialEnergyKWh,
		MaxChargePowerKW:    req.MaxChargePowerKW,
		MaxDischargePowerKW: req.MaxDischargePowerKW,
		ChargeEfficiency:    req.ChargeEfficiency,
		DischargeEfficiency: req.DischargeEfficiency,
	})
	return model.NewBatteryConfig(merged.ToModel())
}

func (h *SimulationHandler) engine(tiers strategy.PriceTiers) *simulation.Engine {
	opts := []simulation.Option{simulation.WithLogger(h.opts.Logger), simulation.WithPriceTiers(tiers)}
	if h.opts.Metrics != nil {
		opts = append(opts, simulation.WithRecorder(h.opts.Metrics))
	}
	return simulation.New(opts...)
}

// buildSummary converts a result; series may be nil when the day profile is
// no longer known, in which case self-sufficiency is omitted.
func buildSummary(series *model.DaySeries, res *simulation.Result) models.SimulationSummary {
	s := models.SimulationSummary{
		Strategy:       res.Strategy.String(),
		Label:          res.Strategy.Label(),
		TotalCost:      res.TotalCost,
		TotalBuyKWh:    res.TotalBuyKWh,
		TotalSellKWh:   res.TotalSellKWh,
		FinalEnergyKWh: res.FinalEnergyKWh,
		CapacityKWh:    res.Battery.CapacityKWh,
		TotalHours:     len(res.Hours),
	}
	if series != nil {
		s.SelfSufficiency = analysis.SelfSufficiency(series, res)
	}
	return s
}

func convertLedger(hours []simulation.HourlyResult) []models.LedgerRow {
	out := make([]models.LedgerRow, len(hours))
	for i, h := range hours {
		out[i] = models.LedgerRow{
			Hour:           h.Hour,
			Action:         string(h.Action),
			NetLoadKW:      h.NetLoadKW,
			ChargeKW:       h.ChargeKW,
			DischargeKW:    h.DischargeKW,
			GridKW:         h.GridKW,
			GridBuyKW:      h.GridBuyKW,
			GridSellKW:     h.GridSellKW,
			EnergyStartKWh: h.EnergyStartKWh,
			EnergyEndKWh:   h.EnergyEndKWh,
			BuyPrice:       h.BuyPrice,
			SellPrice:      h.SellPrice,
			Cost:           h.Cost,
			CumCost:        h.CumulativeCost,
		}
	}
	return out
}
