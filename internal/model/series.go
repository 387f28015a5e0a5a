package model

import "fmt"

// HoursPerDay is the fixed simulation horizon.
const HoursPerDay = 24

// DaySeries holds the exogenous hourly inputs for one day, indexed by hour of day.
// Units:
// - LoadKW, PVKW: kW (average over the hour)
// - BuyPrice, SellPrice: currency/kWh
type DaySeries struct {
	LoadKW    [HoursPerDay]float64
	PVKW      [HoursPerDay]float64
	BuyPrice  [HoursPerDay]float64
	SellPrice [HoursPerDay]float64
}

// NetLoadKW is load minus PV for hour t: positive = deficit, negative = surplus.
func (s *DaySeries) NetLoadKW(t int) float64 {
	return s.LoadKW[t] - s.PVKW[t]
}

// Validate rejects negative and non-finite entries.
func (s *DaySeries) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: series is nil", ErrInvalidSeries)
	}
	check := func(name string, xs [HoursPerDay]float64) error {
		for t, x := range xs {
			if !finite(x) || x < 0 {
				return fmt.Errorf("%w: %s[%d]=%v must be a non-negative number", ErrInvalidSeries, name, t, x)
			}
		}
		return nil
	}
	if err := check("load_kw", s.LoadKW); err != nil {
		return err
	}
	if err := check("pv_kw", s.PVKW); err != nil {
		return err
	}
	if err := check("buy_price", s.BuyPrice); err != nil {
		return err
	}
	return check("sell_price", s.SellPrice)
}

// SeriesFromSlices copies variable-length slices into a DaySeries, rejecting
// any slice that is not exactly HoursPerDay long.
func SeriesFromSlices(load, pv, buy, sell []float64) (DaySeries, error) {
	var s DaySeries
	for _, f := range []struct {
		name string
		src  []float64
		dst  *[HoursPerDay]float64
	}{
		{"load_kw", load, &s.LoadKW},
		{"pv_kw", pv, &s.PVKW},
		{"buy_price", buy, &s.BuyPrice},
		{"sell_price", sell, &s.SellPrice},
	} {
		if len(f.src) != HoursPerDay {
			return DaySeries{}, fmt.Errorf("%w: %s has %d values, want %d", ErrInvalidSeries, f.name, len(f.src), HoursPerDay)
		}
		copy(f.dst[:], f.src)
	}
	if err := s.Validate(); err != nil {
		return DaySeries{}, err
	}
	return s, nil
}
