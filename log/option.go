package log

import (
	"io"
	"sync"
)

// Option modifies a logger configuration.
type Option func(config) config

func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// set wraps fn as an Option that holds the configuration's write lock.
func set(fn func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		}

		c.mutex.Lock()
		defer c.mutex.Unlock()

		fn(&c)

		return c
	}
}

// WithDefaults resets every setting to its default and writes to w.
func WithDefaults(w io.Writer) Option {
	return set(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
		c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller
		c.pretty = DefaultPretty
	})
}

// WithOutput sets the destination of log records. A nil writer discards
// them.
func WithOutput(w io.Writer) Option {
	return set(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	})
}

// WithLevel sets the minimum level of records written.
func WithLevel(level Level) Option {
	return set(func(c *config) { c.level = level })
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return set(func(c *config) { c.format = format })
}

// WithTimeLayout sets the timestamp layout. The layout may name one of the
// [time] package layouts, such as "RFC3339Nano" or "Kitchen", or be a literal
// layout for [time.Time.Format]. A blank layout or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return set(func(c *config) { c.formatTime = format })
}

// WithCaller controls whether records include the source location of the
// logging call.
func WithCaller(enable bool) Option {
	return set(func(c *config) { c.caller = enable })
}

// WithPretty controls colorized output. Colors are only emitted when the
// output is a terminal.
func WithPretty(enable bool) Option {
	return set(func(c *config) { c.pretty = enable })
}
