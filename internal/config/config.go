package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"battery-dispatch/internal/data"
	"battery-dispatch/internal/model"
	"battery-dispatch/internal/strategy"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load battery parameters from a separate YAML (e.g. examples/batteries/*.yaml).
	// If both BatteryFile and Battery are provided, Battery overrides BatteryFile.
	BatteryFile string         `yaml:"battery_file"`
	Battery     BatteryConfig  `yaml:"battery"`
	Strategy    StrategyConfig `yaml:"strategy"`
	// Optional: day profile (JSON or YAML). Defaults to the built-in reference day.
	SeriesFile string       `yaml:"series_file"`
	Sweep      SweepConfig  `yaml:"sweep"`
	Output     OutputConfig `yaml:"output"`
}

type BatteryConfig struct {
	Name                string  `yaml:"name"`
	CapacityKWh         float64 `yaml:"capacity_kwh"`
	ChargeEfficiency    float64 `yaml:"charge_efficiency"`
	DischargeEfficiency float64 `yaml:"discharge_efficiency"`
	// Pointers so an explicit 0 can be told apart from "not set". A 0 power
	// limit disables that direction; an unset initial energy means half of
	// the capacity.
	MaxChargePowerKW    *float64 `yaml:"max_charge_power_kw"`
	MaxDischargePowerKW *float64 `yaml:"max_discharge_power_kw"`
	InitialEnergyKWh    *float64 `yaml:"initial_energy_kwh"`
}

type StrategyConfig struct {
	Name       string              `yaml:"name"`
	PriceTiers strategy.PriceTiers `yaml:"price_tiers"`
}

type SweepConfig struct {
	Capacities []float64 `yaml:"capacities"`
}

type OutputConfig struct {
	Dir       string `yaml:"dir"`
	LedgerCSV bool   `yaml:"ledger_csv"`
	Charts    bool   `yaml:"charts"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Battery:  FromModel(data.ReferenceBattery()),
		Strategy: StrategyConfig{PriceTiers: strategy.DefaultPriceTiers()},
		Sweep:    SweepConfig{Capacities: data.ReferenceCapacities()},
		Output:   OutputConfig{Dir: "results", LedgerCSV: true, Charts: true},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the file over Default() and merges in battery_file,
// but does not validate. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	base := Default()
	// Output flags keep their defaults unless the file sets them.
	c := Config{Output: base.Output}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}

	if c.BatteryFile != "" {
		loaded, err := loadBatteryFile(resolvePath(path, c.BatteryFile))
		if err != nil {
			return nil, err
		}
		base.Battery = MergeBattery(base.Battery, loaded)
	}
	c.Battery = MergeBattery(base.Battery, c.Battery)
	if c.Strategy.PriceTiers == (strategy.PriceTiers{}) {
		c.Strategy.PriceTiers = base.Strategy.PriceTiers
	}
	if len(c.Sweep.Capacities) == 0 {
		c.Sweep.Capacities = base.Sweep.Capacities
	}
	if c.Output.Dir == "" {
		c.Output.Dir = base.Output.Dir
	}
	if c.SeriesFile != "" {
		c.SeriesFile = resolvePath(path, c.SeriesFile)
	}
	return &c, nil
}

// resolvePath prefers interpreting ref relative to the config file directory,
// but falls back to the provided path (relative to cwd) if that doesn't exist.
func resolvePath(configPath, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	cand := filepath.Join(filepath.Dir(configPath), ref)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return ref
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Strategy.Name != "" {
		if _, err := strategy.Parse(c.Strategy.Name); err != nil {
			return fmt.Errorf("strategy.name: %w", err)
		}
	}
	if err := c.Strategy.PriceTiers.Validate(); err != nil {
		return fmt.Errorf("strategy.price_tiers: %w", err)
	}
	if _, err := model.NewBatteryConfig(c.Battery.ToModel()); err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	for _, capacity := range c.Sweep.Capacities {
		if capacity <= 0 {
			return fmt.Errorf("sweep.capacities: %v must be > 0", capacity)
		}
	}
	return nil
}

// Series loads SeriesFile, or returns the reference day when unset.
func (c *Config) Series() (model.DaySeries, error) {
	if c.SeriesFile == "" {
		return data.ReferenceDay(), nil
	}
	return data.LoadSeriesFile(c.SeriesFile)
}

// ToModel converts to model parameters. An unset initial energy means half
// of the capacity.
func (b BatteryConfig) ToModel() model.BatteryConfig {
	initial := 0.5 * b.CapacityKWh
	if b.InitialEnergyKWh != nil {
		initial = *b.InitialEnergyKWh
	}
	return model.BatteryConfig{
		CapacityKWh:         b.CapacityKWh,
		InitialEnergyKWh:    initial,
		MaxChargePowerKW:    valueOf(b.MaxChargePowerKW),
		MaxDischargePowerKW: valueOf(b.MaxDischargePowerKW),
		ChargeEfficiency:    b.ChargeEfficiency,
		DischargeEfficiency: b.DischargeEfficiency,
	}
}

func FromModel(m model.BatteryConfig) BatteryConfig {
	return BatteryConfig{
		CapacityKWh:         m.CapacityKWh,
		InitialEnergyKWh:    Float(m.InitialEnergyKWh),
		MaxChargePowerKW:    Float(m.MaxChargePowerKW),
		MaxDischargePowerKW: Float(m.MaxDischargePowerKW),
		ChargeEfficiency:    m.ChargeEfficiency,
		DischargeEfficiency: m.DischargeEfficiency,
	}
}

// Float returns a pointer to a copy of v, for the optional battery fields.
func Float(v float64) *float64 { return &v }

func valueOf(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func copyOf(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return Float(*p)
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

// LoadBatteryFile reads a battery preset file (a top-level `battery:` block).
func LoadBatteryFile(path string) (BatteryConfig, error) {
	return loadBatteryFile(path)
}

func loadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields and non-nil pointers from override
// onto base.
// This is used when loading a battery file and then applying overrides from the request.
// When the capacity is overridden without an initial energy, the inherited
// initial energy is dropped so the battery starts at half of the new capacity.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.CapacityKWh != 0 {
		out.CapacityKWh = override.CapacityKWh
		if override.InitialEnergyKWh == nil {
			out.InitialEnergyKWh = nil
		}
	}
	if override.MaxChargePowerKW != nil {
		out.MaxChargePowerKW = copyOf(override.MaxChargePowerKW)
	}
	if override.MaxDischargePowerKW != nil {
		out.MaxDischargePowerKW = copyOf(override.MaxDischargePowerKW)
	}
	if override.ChargeEfficiency != 0 {
		out.ChargeEfficiency = override.ChargeEfficiency
	}
	if override.DischargeEfficiency != 0 {
		out.DischargeEfficiency = override.DischargeEfficiency
	}
	if override.InitialEnergyKWh != nil {
		out.InitialEnergyKWh = copyOf(override.InitialEnergyKWh)
	}
	return out
}
