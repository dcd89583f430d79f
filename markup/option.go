package markup

import (
	"slices"

	"github.com/ardnew/stencil/log"
)

// config holds parsing options.
type config struct {
	logger   log.Logger
	rawText  []string
	comments bool
}

// Option configures lexing and tree assembly.
type Option func(*config)

// WithComments retains comment nodes in the assembled tree.
func WithComments(keep bool) Option {
	return func(c *config) {
		c.comments = keep
	}
}

// WithRawText replaces the set of elements whose content is read verbatim.
// Names are matched case-insensitively.
func WithRawText(names ...string) Option {
	return func(c *config) {
		c.rawText = slices.Clone(names)
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func makeConfig(opts ...Option) config {
	c := config{rawText: DefaultRawText}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
