// Package profile provides optional runtime profiling for stencil.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only when
// the binary is built with the "pprof" build tag. Without the tag every
// operation is a no-op and [Modes] reports nothing.
//
// # Modes
//
// With the pprof tag the following modes are available:
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     synchronization blocking
//   - clock:     wall-clock time
//   - cpu:       CPU time
//   - goroutine: goroutine stacks
//   - heap:      live heap allocations
//   - mem:       general memory profiling
//   - mutex:     mutex contention
//   - thread:    thread creation
//   - trace:     execution trace
//
// # Usage
//
// A [Config] is built from functional options and started:
//
//	cfg := profile.Config(profile.Disabled).With(
//		profile.WithMode("cpu"),
//		profile.WithPath(dir),
//	)
//	defer cfg.Start().Stop()
//
// From the command line:
//
//	go build -tags pprof .
//	stencil --pprof-mode=cpu markup page.html
//	go tool pprof -http=: "$XDG_CACHE_HOME/stencil/pprof/cpu.pprof"
//
// Profiles are written to <cache>/stencil/pprof unless --pprof-dir says
// otherwise. Building with the tag also registers the [net/http/pprof]
// handlers.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
