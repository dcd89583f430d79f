package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/stencil/expr"
	"github.com/ardnew/stencil/log"
)

// Eval evaluates an expression against a target and scope.
type Eval struct {
	dataFlags `embed:""`

	Output string `default:"yaml" enum:"yaml,json,text" help:"Output format (${enum})" short:"o"`

	Expr string `arg:"" help:"Expression to evaluate" name:"expr"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	target, scope, err := e.load(ctx)
	if err != nil {
		return err
	}

	result, err := expr.Evaluate(target, e.Expr, scope, expr.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "expression evaluated",
		slog.String("expr", e.Expr),
		slog.String("type", expr.Type(result)),
	)

	return encode(stdioFrom(ctx).out, e.Output, result)
}

// Get reads the value addressed by a path expression.
type Get struct {
	dataFlags `embed:""`

	Output string `default:"yaml" enum:"yaml,json,text" help:"Output format (${enum})" short:"o"`

	Expr string `arg:"" help:"Path expression to read" name:"path"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	target, scope, err := g.load(ctx)
	if err != nil {
		return err
	}

	value, err := expr.GetValue(target, g.Expr, scope, expr.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	return encode(stdioFrom(ctx).out, g.Output, value)
}

// Set writes a value at the path addressed by an expression and prints
// the updated target.
type Set struct {
	dataFlags `embed:""`

	Output  string `default:"yaml" enum:"yaml,json" help:"Output format (${enum})" short:"o"`
	InPlace bool   `help:"Write the updated target back to its file instead of printing it" short:"i"`

	Expr  string `arg:"" help:"Path expression to write" name:"path"`
	Value string `arg:"" help:"Value to store, decoded as YAML" name:"value"`
}

// Run executes the set command.
func (s *Set) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if s.InPlace && (s.Target == "" || s.Target == stdinSource) {
		return ErrFlagConflict.With(
			slog.Bool("in-place", true),
			slog.String("target", s.Target),
		)
	}

	target, scope, err := s.load(ctx)
	if err != nil {
		return err
	}

	target, err = expr.SetValue(target, s.Expr, decodeValue(s.Value), scope,
		expr.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	if s.InPlace {
		return s.writeBack(ctx, target)
	}

	return encode(stdioFrom(ctx).out, s.Output, target)
}

func (s *Set) writeBack(ctx context.Context, target any) error {
	src, err := openSources(ctx, s.Target)
	if err != nil {
		return err
	}

	path := src.Names()[0]

	if err := src.Close(); err != nil {
		return ErrWriteData.Wrap(err).With(slog.String("file", path))
	}

	if err := writeDocument(path, target); err != nil {
		return err
	}

	log.DebugContext(ctx, "target updated", slog.String("file", path))

	return nil
}
