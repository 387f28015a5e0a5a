package sweep

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"battery-dispatch/internal/model"
	"battery-dispatch/internal/simulation"
	"battery-dispatch/internal/strategy"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Result is the capacity sensitivity of both strategies. All slices are
// index-aligned with Capacities.
type Result struct {
	Capacities []float64
	CostA      []float64
	CostB      []float64
	// Savings is CostA - CostB.
	Savings []float64
}

// Observer is notified once per completed sweep.
type Observer interface {
	ObserveSweep(points int, elapsed time.Duration)
}

type Driver struct {
	engine   *simulation.Engine
	log      zerolog.Logger
	observer Observer
	workers  int
}

type Option func(*Driver)

func WithLogger(l zerolog.Logger) Option {
	return func(d *Driver) { d.log = l }
}

func WithObserver(o Observer) Option {
	return func(d *Driver) { d.observer = o }
}

// WithWorkers bounds the number of concurrent simulations. n <= 0 keeps the
// default of GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.workers = n
		}
	}
}

func New(engine *simulation.Engine, opts ...Option) *Driver {
	d := &Driver{
		engine:  engine,
		log:     zerolog.Nop(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Capacity simulates both strategies for every capacity. Each point uses base
// with the capacity replaced and the initial energy set to half of it.
// Points are independent and run concurrently; output order follows input.
func (d *Driver) Capacity(ctx context.Context, base model.BatteryConfig, series *model.DaySeries, capacities []float64) (*Result, error) {
	start := time.Now()
	n := len(capacities)
	res := &Result{
		Capacities: append([]float64(nil), capacities...),
		CostA:      make([]float64, n),
		CostB:      make([]float64, n),
		Savings:    make([]float64, n),
	}

	configs := make([]model.BatteryConfig, n)
	for i, c := range capacities {
		cfg, err := model.NewBatteryConfig(base.WithCapacity(c))
		if err != nil {
			return nil, fmt.Errorf("capacity %v: %w", c, err)
		}
		configs[i] = cfg
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i := range configs {
		i := i
		g.Go(func() error {
			a, err := d.engine.Simulate(gctx, strategy.SelfConsumption, configs[i], series)
			if err != nil {
				return fmt.Errorf("capacity %v: %w", capacities[i], err)
			}
			b, err := d.engine.Simulate(gctx, strategy.PriceOptimized, configs[i], series)
			if err != nil {
				return fmt.Errorf("capacity %v: %w", capacities[i], err)
			}
			res.CostA[i] = a.TotalCost
			res.CostB[i] = b.TotalCost
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	floats.SubTo(res.Savings, res.CostA, res.CostB)

	elapsed := time.Since(start)
	d.log.Debug().Int("points", n).Dur("elapsed", elapsed).Msg("capacity sweep complete")
	if d.observer != nil {
		d.observer.ObserveSweep(n, elapsed)
	}
	return res, nil
}
