// Command stencil parses lenient markup and evaluates path expressions
// against YAML and JSON data.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/stencil/cli"
	"github.com/ardnew/stencil/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		log.ErrorContext(ctx, "run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
