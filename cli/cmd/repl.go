package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/stencil/cli/cmd/repl"
	"github.com/ardnew/stencil/log"
	"github.com/ardnew/stencil/markup"
)

// Vars returns the kong variables referenced by command flag defaults.
func Vars() kong.Vars {
	return kong.Vars{
		"rawText": strings.Join(markup.DefaultRawText, ","),
	}
}

// Repl starts an interactive session for evaluating expressions.
type Repl struct {
	dataFlags `embed:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	target, scope, err := r.load(ctx)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "starting repl",
		slog.String("target", r.Target),
		slog.String("scope", r.Scope),
	)

	// Streams are only overridden when set explicitly, so the terminal is
	// reopened when stdin was consumed by a data file.
	std, _ := ctx.Value(stdioKey{}).(stdio)

	return repl.Run(ctx,
		repl.WithTarget(r.Target, target),
		repl.WithScope(r.Scope, scope),
		repl.WithLoader(func(name string) (any, error) { return loadDocument(ctx, name) }),
		repl.WithCacheDir(kongVar(ctx, CacheIdentifier)),
		repl.WithLogger(log.Default()),
		repl.WithIO(std.in, std.out),
	)
}
