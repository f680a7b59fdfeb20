// Package metrics exposes the Prometheus collectors of the dispatch service.
//
// A nil *Dispatch is valid and records nothing, so components can be built
// without metrics in tests.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a batch generation run.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeFailure = "failure"
)

// Geocode cache tiers.
const (
	TierMemory     = "memory"
	TierPersistent = "persistent"
)

// Dispatch records batch generation and geocoding metrics.
type Dispatch struct {
	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
	batches     prometheus.Counter
	orders      prometheus.Counter
	cacheHits   *prometheus.CounterVec
	cacheMisses prometheus.Counter
	lookups     *prometheus.CounterVec
}

// NewDispatch registers the dispatch collectors on reg, or on the default
// registerer when reg is nil. Collectors that are already registered are
// reused.
func NewDispatch(reg prometheus.Registerer) (*Dispatch, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	d := &Dispatch{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_generation_runs_total",
			Help: "Batch generation runs by outcome",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_generation_duration_seconds",
			Help:    "Duration of batch generation runs",
			Buckets: prometheus.DefBuckets,
		}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_batches_created_total",
			Help: "Batches persisted by generation runs",
		}),
		orders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_orders_assigned_total",
			Help: "Orders moved to ASSIGNED by generation runs",
		}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_geocode_cache_hits_total",
			Help: "Postal codes served from a geocode cache",
		}, []string{"tier"}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_geocode_cache_misses_total",
			Help: "Postal codes that required an upstream lookup",
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_geocode_lookups_total",
			Help: "Upstream geocoder calls by outcome",
		}, []string{"outcome"}),
	}

	var err error
	d.runs, err = register(reg, d.runs)
	if err != nil {
		return nil, err
	}
	if d.runDuration, err = register(reg, d.runDuration); err != nil {
		return nil, err
	}
	if d.batches, err = register(reg, d.batches); err != nil {
		return nil, err
	}
	if d.orders, err = register(reg, d.orders); err != nil {
		return nil, err
	}
	if d.cacheHits, err = register(reg, d.cacheHits); err != nil {
		return nil, err
	}
	if d.cacheMisses, err = register(reg, d.cacheMisses); err != nil {
		return nil, err
	}
	if d.lookups, err = register(reg, d.lookups); err != nil {
		return nil, err
	}

	return d, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RunFinished records one generation run.
func (d *Dispatch) RunFinished(outcome string, elapsed time.Duration, batches, orders int) {
	if d == nil {
		return
	}
	d.runs.WithLabelValues(outcome).Inc()
	d.runDuration.Observe(elapsed.Seconds())
	d.batches.Add(float64(batches))
	d.orders.Add(float64(orders))
}

func (d *Dispatch) GeocodeCacheHit(tier string) {
	if d == nil {
		return
	}
	d.cacheHits.WithLabelValues(tier).Inc()
}

func (d *Dispatch) GeocodeCacheMiss() {
	if d == nil {
		return
	}
	d.cacheMisses.Inc()
}

// GeocodeLookup records an upstream call; ok is false when it failed.
func (d *Dispatch) GeocodeLookup(ok bool) {
	if d == nil {
		return
	}
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeFailure
	}
	d.lookups.WithLabelValues(outcome).Inc()
}

// Handler serves the metrics gathered by g, or the default gatherer when g is
// nil, in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
