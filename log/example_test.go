package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/stencil/log"
)

func Example() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))
	logger.Info("parsed", slog.String("input", "page.html"), slog.Int("nodes", 12))
	logger.Debug("not shown")
	// Output:
	// level=INFO msg=parsed input=page.html nodes=12
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelTrace))

	logger.With(slog.String("component", "expr")).Trace("cache hit")
	// Output:
	// {"level":"TRACE","msg":"cache hit","component":"expr"}
}
