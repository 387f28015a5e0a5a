package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records simulation and sweep activity in Prometheus metrics.
// It satisfies simulation.Recorder and sweep.Observer.
type Collector struct {
	simulations *prometheus.CounterVec
	cost        *prometheus.HistogramVec
	sweeps      prometheus.Histogram
	sweepPoints prometheus.Counter
}

// NewCollector registers the collectors on reg. If reg is nil, the default
// registerer is used. Collectors that are already registered are reused.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	simulations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_simulations_total",
		Help: "Total number of completed day simulations",
	}, []string{"strategy"})
	cost := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dispatch_simulation_cost",
		Help:    "Total daily grid cost of completed simulations",
		Buckets: prometheus.LinearBuckets(-40, 10, 10),
	}, []string{"strategy"})
	sweeps := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_sweep_duration_seconds",
		Help:    "Wall time of capacity sweeps",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
	sweepPoints := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_sweep_points_total",
		Help: "Total number of capacity points evaluated by sweeps",
	})

	var err error
	if simulations, err = register(reg, simulations); err != nil {
		return nil, err
	}
	if cost, err = register(reg, cost); err != nil {
		return nil, err
	}
	if sweeps, err = register(reg, sweeps); err != nil {
		return nil, err
	}
	if sweepPoints, err = register(reg, sweepPoints); err != nil {
		return nil, err
	}
	return &Collector{simulations: simulations, cost: cost, sweeps: sweeps, sweepPoints: sweepPoints}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (c *Collector) RecordSimulation(strategy string, totalCost float64) {
	c.simulations.WithLabelValues(strategy).Inc()
	c.cost.WithLabelValues(strategy).Observe(totalCost)
}

func (c *Collector) ObserveSweep(points int, elapsed time.Duration) {
	c.sweeps.Observe(elapsed.Seconds())
	c.sweepPoints.Add(float64(points))
}
