// Package cli contains the command line interface for stencil.
//
// # Usage
//
//	stencil [flags] <command> [args]
//
// The default command is markup, so a bare file argument parses it:
//
//	stencil page.html
//	stencil markup --output yaml --select 'name == "a"' page.html
//	stencil eval --target data.yaml 'items.length > 2'
//	stencil set --target data.yaml --in-place server.port 8080
//	stencil repl --target data.yaml
//
// # Input Files
//
// Files named on the command line that do not exist relative to the
// working directory are searched for in each --path directory, then in
// each directory listed in STENCIL_PATH. The name "-" reads standard
// input.
//
// # Configuration
//
// Flag defaults are read from config.yaml and config.json in the user
// configuration directory (for example ~/.config/stencil). The YAML file
// accepts flag names at the top level, nested by prefix (log: {level: ...})
// or under a command name (markup: {raw-text: [...]}). stencil init writes
// the current global flags to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o stencil .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/stencil/pprof)
package cli
