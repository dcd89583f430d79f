// Package log provides leveled, structured logging on top of [log/slog].
//
// A [Logger] is created with [Make] and configured with functional options.
// Configuration is fixed at creation; [Logger.Wrap] derives a reconfigured
// copy and [Logger.With] one that adds attributes to every record.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//	logger.Debug("compiled", slog.String("expression", src))
//
// Five levels are defined, from [LevelTrace] to [LevelError]. Both [Level]
// and [Format] implement [encoding.TextUnmarshaler], so they can be decoded
// from command-line flags and configuration files.
//
// Records are written as text (the default) or JSON. With [WithPretty],
// which is on by default, text records are colorized and JSON records are
// indented. Colors are emitted only when the output is a terminal.
//
// The package-level functions such as [Info] write to a default logger that
// writes text to standard error. [Config] reconfigures it.
//
// Methods without a context argument use [DefaultContextProvider].
package log
