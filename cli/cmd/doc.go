// Package cmd implements the stencil subcommands.
//
//   - [Markup] parses markup files and prints the tree as an outline, JSON,
//     YAML, markup or raw tokens, optionally filtered by a selector
//     expression.
//   - [Eval], [Get] and [Set] evaluate expressions and read or write paths
//     against YAML or JSON data files.
//   - [Repl] runs the interactive evaluator.
//   - [Init] writes the current global flag values as a YAML
//     configuration file.
//
// Commands receive their environment through [context.Context]: the
// parsed [kong.Context] ([WithContext]), the search path for input files
// ([WithSearchPath]), and the standard streams ([WithStdio]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
