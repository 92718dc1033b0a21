package seqbuf

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusConfig is a config of the Prometheus metrics provided by the pipe.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig struct {
	// Options for the pulled items counter.
	ItemsPulled prometheus.CounterOpts
	// Options for the yielded items counter.
	ItemsYielded prometheus.CounterOpts
	// Options for the cached items gauge.
	CachedItems prometheus.GaugeOpts
	// Options for the source errors counter.
	SourceErrors prometheus.CounterOpts
	// Options for the histogram of time consumers spend waiting for items.
	WaitDuration prometheus.HistogramOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
//
// A registered config can be used by one pipe only.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "seqbuf"
		subsystem = "pipe"
	)

	c := PrometheusConfig{
		registerer: registerer,
		ItemsPulled: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items_pulled",
			Help:      "Number of items pulled from the source",
		},
		ItemsYielded: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items_yielded",
			Help:      "Number of items handed to consumers",
		},
		CachedItems: prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cached_items",
			Help:      "Number of items in the cache",
		},
		SourceErrors: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "source_errors",
			Help:      "Number of producer failures",
		},
		WaitDuration: prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "wait_duration_seconds",
			Help:      "Time consumers spent waiting for an item",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

func (c *PrometheusConfig) metrics() *metrics {
	m := metrics{
		itemsPulled:  prometheus.NewCounter(c.ItemsPulled),
		itemsYielded: prometheus.NewCounter(c.ItemsYielded),
		cachedItems:  prometheus.NewGauge(c.CachedItems),
		sourceErrors: prometheus.NewCounter(c.SourceErrors),
		waitDuration: prometheus.NewHistogram(c.WaitDuration),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			m.itemsPulled,
			m.itemsYielded,
			m.cachedItems,
			m.sourceErrors,
			m.waitDuration,
		)
	}

	return &m
}

type metrics struct {
	itemsPulled  prometheus.Counter
	itemsYielded prometheus.Counter
	cachedItems  prometheus.Gauge
	sourceErrors prometheus.Counter
	waitDuration prometheus.Histogram
}
