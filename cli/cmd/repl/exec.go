package repl

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/stencil/expr"
	"github.com/ardnew/stencil/log"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode, or prefix a line with ':'):

  get PATH        Print the value at PATH
  set PATH VALUE  Store VALUE (decoded as YAML) at PATH in the target
  scope [FILE]    Print the scope, or replace it with the contents of FILE
  target [FILE]   Print the target, or replace it with the contents of FILE
  help            Print this cruft
  clear           Clear screen
  quit            Exit REPL

Usage:
  Type an expression to evaluate it against the target and scope
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// session holds the data expressions are evaluated against.
type session struct {
	target, scope         any
	targetName, scopeName string
	load                  func(name string) (any, error)
	logger                log.Logger
}

// outcome is the result of a control command.
type outcome struct {
	text  string
	quit  bool
	clear bool
}

// eval evaluates an expression and formats the result.
func (s *session) eval(input string) (string, error) {
	v, err := expr.Evaluate(s.target, input, s.scope, expr.WithLogger(s.logger))
	if err != nil {
		return "", err
	}

	return formatResult(v), nil
}

// command runs a control command. A leading ':' is ignored.
func (s *session) command(input string) (outcome, error) {
	name, args, _ := strings.Cut(strings.TrimSpace(strings.TrimPrefix(input, ":")), " ")
	args = strings.TrimSpace(args)

	s.logger.Trace("repl exec command",
		slog.String("command", name),
		slog.String("args", args),
	)

	switch name {
	case "q", "quit", "exit":
		return outcome{quit: true}, nil

	case "h", "help":
		return outcome{text: helpMessage()}, nil

	case "c", "clear":
		return outcome{clear: true}, nil

	case "get":
		if args == "" {
			return outcome{}, fmt.Errorf("%w: get PATH", ErrUsage)
		}

		v, err := expr.GetValue(s.target, args, s.scope, expr.WithLogger(s.logger))
		if err != nil {
			return outcome{}, err
		}

		return outcome{text: formatResult(v)}, nil

	case "set":
		path, value, ok := strings.Cut(args, " ")
		if !ok || path == "" {
			return outcome{}, fmt.Errorf("%w: set PATH VALUE", ErrUsage)
		}

		v := decodeValue(strings.TrimSpace(value))

		target, err := expr.SetValue(s.target, path, v, s.scope, expr.WithLogger(s.logger))
		if err != nil {
			return outcome{}, err
		}

		s.target = target

		return outcome{text: path + " = " + formatResult(v)}, nil

	case "scope":
		return s.swap(&s.scope, &s.scopeName, args)

	case "target":
		return s.swap(&s.target, &s.targetName, args)

	default:
		return outcome{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
}

// swap prints *data when file is empty, or replaces it with the document
// loaded from file.
func (s *session) swap(data *any, name *string, file string) (outcome, error) {
	if file == "" {
		return outcome{text: formatDocument(*name, *data)}, nil
	}

	if s.load == nil {
		return outcome{}, ErrNoLoader
	}

	v, err := s.load(file)
	if err != nil {
		return outcome{}, err
	}

	*data, *name = v, file

	return outcome{text: "loaded " + file}, nil
}

// decodeValue decodes s as YAML, falling back to the raw string.
func decodeValue(s string) any {
	var v any

	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}

	return v
}

// formatResult renders v on a single line: strings quoted, collections in
// YAML flow style.
func formatResult(v any) string {
	switch expr.Type(v) {
	case "string":
		return strconv.Quote(expr.ToString(v))

	case "object":
		buf, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
		if err != nil {
			return fmt.Sprint(v)
		}

		return strings.TrimSpace(string(buf))

	default:
		return expr.ToString(v)
	}
}

// formatDocument renders a target or scope as a YAML block under a header
// naming its source.
func formatDocument(name string, v any) string {
	if name == "" {
		name = "(none)"
	}

	buf, err := yaml.MarshalWithOptions(v, yaml.IndentSequence(true))
	if err != nil {
		return name + "\n" + fmt.Sprint(v)
	}

	return hintStyle.Render("# "+name) + "\n" + strings.TrimRight(string(buf), "\n")
}
