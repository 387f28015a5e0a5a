package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"battery-dispatch/internal/data"
	"battery-dispatch/internal/model"
	"battery-dispatch/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, data.ReferenceBattery(), c.Battery.ToModel())
	assert.Equal(t, strategy.DefaultPriceTiers(), c.Strategy.PriceTiers)
	assert.Equal(t, []float64{5, 8, 10, 12, 15}, c.Sweep.Capacities)

	s, err := c.Series()
	require.NoError(t, err)
	assert.Equal(t, data.ReferenceDay(), s)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty file falls back to defaults", func(t *testing.T) {
		path := writeFile(t, dir, "empty.yaml", "strategy:\n  name: B\n")
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "B", c.Strategy.Name)
		assert.Equal(t, data.ReferenceBattery(), c.Battery.ToModel())
		assert.Equal(t, "results", c.Output.Dir)
		assert.True(t, c.Output.LedgerCSV)
		assert.True(t, c.Output.Charts)
	})

	t.Run("battery override without initial energy starts half full", func(t *testing.T) {
		path := writeFile(t, dir, "cap.yaml", "battery:\n  capacity_kwh: 14\n")
		c, err := Load(path)
		require.NoError(t, err)
		m := c.Battery.ToModel()
		assert.Equal(t, 14.0, m.CapacityKWh)
		assert.Equal(t, 7.0, m.InitialEnergyKWh)
		assert.Equal(t, 3.3, m.MaxChargePowerKW)
	})

	t.Run("explicit zero initial energy", func(t *testing.T) {
		path := writeFile(t, dir, "zero.yaml", "battery:\n  initial_energy_kwh: 0\n")
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 0.0, c.Battery.ToModel().InitialEnergyKWh)
		assert.Equal(t, 10.0, c.Battery.ToModel().CapacityKWh)
	})

	t.Run("explicit zero power limit", func(t *testing.T) {
		path := writeFile(t, dir, "nodis.yaml", "battery:\n  max_discharge_power_kw: 0\n")
		c, err := Load(path)
		require.NoError(t, err)
		m := c.Battery.ToModel()
		assert.Equal(t, 0.0, m.MaxDischargePowerKW)
		assert.Equal(t, 3.3, m.MaxChargePowerKW)
	})

	t.Run("battery file relative to config, inline overrides win", func(t *testing.T) {
		writeFile(t, dir, "batteries/big.yaml", "battery:\n  name: Big\n  capacity_kwh: 20\n  max_charge_power_kw: 5\n  max_discharge_power_kw: 5\n  initial_energy_kwh: 4\n")
		path := writeFile(t, dir, "with_file.yaml", "battery_file: batteries/big.yaml\nbattery:\n  max_discharge_power_kw: 7\n")
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Big", c.Battery.Name)
		m := c.Battery.ToModel()
		assert.Equal(t, 20.0, m.CapacityKWh)
		assert.Equal(t, 4.0, m.InitialEnergyKWh)
		assert.Equal(t, 5.0, m.MaxChargePowerKW)
		assert.Equal(t, 7.0, m.MaxDischargePowerKW)
		assert.Equal(t, 0.95, m.ChargeEfficiency)
	})

	t.Run("series file and sweep", func(t *testing.T) {
		writeFile(t, dir, "series/flat.yaml", flatSeriesYAML(1, 0, 2, 1))
		path := writeFile(t, dir, "sweep.yaml", "series_file: series/flat.yaml\nsweep:\n  capacities: [2, 4]\nstrategy:\n  price_tiers:\n    cheap_below: 1.5\n    expensive_above: 3\n")
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 4}, c.Sweep.Capacities)
		assert.Equal(t, strategy.PriceTiers{CheapBelow: 1.5, ExpensiveAbove: 3}, c.Strategy.PriceTiers)
		s, err := c.Series()
		require.NoError(t, err)
		assert.Equal(t, 2.0, s.BuyPrice[12])
	})

	t.Run("invalid strategy", func(t *testing.T) {
		path := writeFile(t, dir, "bad_strategy.yaml", "strategy:\n  name: peak_shaving\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidStrategy))
	})

	t.Run("invalid battery", func(t *testing.T) {
		path := writeFile(t, dir, "bad_battery.yaml", "battery:\n  charge_efficiency: 1.5\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidConfig))
		var ce *model.ConfigurationError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "charge_efficiency", ce.Field)
	})

	t.Run("initial energy above capacity", func(t *testing.T) {
		path := writeFile(t, dir, "over.yaml", "battery:\n  capacity_kwh: 4\n  initial_energy_kwh: 5\n")
		_, err := Load(path)
		assert.True(t, errors.Is(err, model.ErrInvalidConfig))
	})

	t.Run("bad sweep capacity", func(t *testing.T) {
		path := writeFile(t, dir, "bad_sweep.yaml", "sweep:\n  capacities: [5, -1]\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "sweep.capacities")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, dir, "broken.yaml", "battery: [\n")
		_, err := LoadUnchecked(path)
		assert.Error(t, err)
	})
}

func TestMergeBattery(t *testing.T) {
	five := 5.0
	base := BatteryConfig{Name: "base", CapacityKWh: 10, InitialEnergyKWh: &five, MaxChargePowerKW: Float(3.3), ChargeEfficiency: 0.9}

	out := MergeBattery(base, BatteryConfig{ChargeEfficiency: 0.97})
	assert.Equal(t, "base", out.Name)
	assert.Equal(t, 0.97, out.ChargeEfficiency)
	require.NotNil(t, out.InitialEnergyKWh)
	assert.Equal(t, 5.0, *out.InitialEnergyKWh)

	out = MergeBattery(base, BatteryConfig{CapacityKWh: 6})
	assert.Nil(t, out.InitialEnergyKWh)
	assert.Equal(t, 3.0, out.ToModel().InitialEnergyKWh)

	two := 2.0
	out = MergeBattery(base, BatteryConfig{CapacityKWh: 6, InitialEnergyKWh: &two})
	assert.Equal(t, 2.0, out.ToModel().InitialEnergyKWh)
	two = 9
	assert.Equal(t, 2.0, *out.InitialEnergyKWh, "merge copies the override value")

	out = MergeBattery(base, BatteryConfig{MaxChargePowerKW: Float(0)})
	require.NotNil(t, out.MaxChargePowerKW)
	assert.Equal(t, 0.0, out.ToModel().MaxChargePowerKW, "explicit zero disables charging")
	assert.Equal(t, 3.3, *base.MaxChargePowerKW)

	out = MergeBattery(base, BatteryConfig{})
	assert.Equal(t, 3.3, out.ToModel().MaxChargePowerKW)
	assert.Nil(t, out.MaxDischargePowerKW)
}

func TestFromModelRoundTrip(t *testing.T) {
	m := data.ReferenceBattery()
	assert.Equal(t, m, FromModel(m).ToModel())
}

func TestLoadServer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadServer()
		require.NoError(t, err)
		assert.Equal(t, DefaultServer().Port, cfg.Port)
		assert.Equal(t, time.Hour, cfg.CacheTTL)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
		assert.False(t, cfg.Production())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("API_PORT", "9191")
		t.Setenv("API_ENV", "production")
		t.Setenv("API_CACHE_TTL", "15m")
		t.Setenv("API_BATTERY_DIR", "/srv/batteries")
		t.Setenv("API_CORS_ORIGINS", "http://localhost:5173, https://example.org")
		cfg, err := LoadServer()
		require.NoError(t, err)
		assert.Equal(t, "9191", cfg.Port)
		assert.True(t, cfg.Production())
		assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
		assert.Equal(t, "/srv/batteries", cfg.BatteryDir)
		assert.Equal(t, []string{"http://localhost:5173", "https://example.org"}, cfg.AllowedOrigins())
	})

	t.Run("bad ttl", func(t *testing.T) {
		t.Setenv("API_CACHE_TTL", "-1s")
		_, err := LoadServer()
		assert.Error(t, err)
	})
}

func flatSeriesYAML(load, pv, buy, sell float64) string {
	line := func(key string, v float64) string {
		out := key + ": ["
		for i := 0; i < model.HoursPerDay; i++ {
			if i > 0 {
				out += ", "
			}
			out += formatNum(v)
		}
		return out + "]\n"
	}
	return line("load_kw", load) + line("pv_kw", pv) + line("buy_price", buy) + line("sell_price", sell)
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func TestLoadExampleConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Home 10 kWh", c.Battery.Name)
	assert.Equal(t, data.ReferenceBattery(), c.Battery.ToModel())

	s, err := c.Series()
	require.NoError(t, err)
	assert.Equal(t, data.ReferenceDay(), s)

	for _, name := range []string{"home_10kwh", "compact_5kwh", "large_13_5kwh"} {
		b, err := LoadBatteryFile(filepath.Join("..", "..", "examples", "batteries", name+".yaml"))
		require.NoError(t, err, name)
		_, err = model.NewBatteryConfig(b.ToModel())
		assert.NoError(t, err, name)
	}
}
