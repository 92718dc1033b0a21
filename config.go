package seqbuf

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/teenjuna/seqbuf/cache"
)

// Config is a config of the pipe.
//
// The zero value is invalid: a config can only be changed through the configuration functions
// passed to [New].
type Config[Item any] struct {
	newCache   func() (Cache[Item], error)
	logger     zerolog.Logger
	prometheus *PrometheusConfig
}

// Cache sets the factory of the pipe's cache. It is called once, by [New].
func (c *Config[Item]) Cache(factory func() Cache[Item]) {
	if factory == nil {
		panic("cache factory can't be nil")
	}
	c.newCache = func() (Cache[Item], error) {
		created := factory()
		if created == nil {
			return nil, errors.New("cache factory returned nil")
		}
		return created, nil
	}
}

// Capacity makes the pipe use a [cache.Bounded] cache holding at most capacity items. Capacity
// 0 hands every item over directly. A negative capacity makes [New] fail with
// [cache.ErrInvalidCapacity].
func (c *Config[Item]) Capacity(capacity int) {
	c.newCache = func() (Cache[Item], error) {
		bounded, err := cache.NewBounded[Item](capacity)
		if err != nil {
			return nil, err
		}
		return bounded, nil
	}
}

// Logger sets the logger of the pipe.
func (c *Config[Item]) Logger(logger zerolog.Logger) {
	c.logger = logger
}

// Prometheus sets the Prometheus metrics config. See [Prometheus].
func (c *Config[Item]) Prometheus(prometheus *PrometheusConfig) {
	if prometheus == nil {
		panic("prometheus config can't be nil")
	}
	c.prometheus = prometheus
}

func newConfig[Item any](configFuncs ...func(*Config[Item])) *Config[Item] {
	cfg := Config[Item]{}
	cfg.Cache(func() Cache[Item] {
		return cache.NewUnbounded[Item]()
	})
	cfg.Logger(zerolog.Nop())
	cfg.Prometheus(Prometheus(nil))

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&cfg)
		}
	}

	return &cfg
}
