package expr

import (
	"github.com/ardnew/stencil/log"
)

type config struct {
	logger log.Logger
	cache  bool
}

// Option configures compilation and evaluation.
type Option func(*config)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCache controls whether compiled programs are shared through the
// package cache, which holds at most [CacheSize] programs. It is enabled by
// default.
func WithCache(enable bool) Option {
	return func(c *config) {
		c.cache = enable
	}
}

func makeConfig(opts ...Option) config {
	c := config{cache: true}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
