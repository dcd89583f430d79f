package profile

// Config reports the profiler settings: the mode name, the output
// directory and whether profile.Start should stay silent.
type Config func() (mode, path string, quiet bool)

// Disabled is the zero configuration. Its Start is a no-op.
func Disabled() (mode, path string, quiet bool) { return "", "", false }

// Start begins profiling and returns a handle to stop it. The handle is a
// no-op when the mode is empty, unknown, or the binary was built without
// the pprof tag.
func (c Config) Start() interface{ Stop() } {
	if c == nil {
		return ignore{}
	}

	mode, path, quiet := c()
	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// With applies opts to c in order.
func (c Config) With(opts ...func(Config) Config) Config {
	if c == nil {
		c = Disabled
	}

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// WithMode sets the profiling mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithPath sets the output directory.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

type ignore struct{}

func (ignore) Stop() {}
