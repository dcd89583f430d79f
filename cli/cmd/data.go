package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/stencil/expr"
	"github.com/ardnew/stencil/log"
)

// Output encodings shared by the data commands.
const (
	outputYAML = "yaml"
	outputJSON = "json"
	outputText = "text"
)

// dataFlags locate the target and scope an expression is evaluated
// against.
type dataFlags struct {
	Target string   `help:"YAML or JSON file the expression is evaluated against ('-' for stdin)" placeholder:"FILE" short:"t"`
	Scope  string   `help:"YAML or JSON file of scope values consulted before the target"           placeholder:"FILE"`
	Set    []string `help:"Assign a scope value; VALUE is decoded as YAML (repeatable)"             placeholder:"PATH=VALUE" sep:"none" short:"s"`
}

// load reads the target and scope documents and applies the --set
// assignments to the scope.
func (f *dataFlags) load(ctx context.Context) (target, scope any, err error) {
	if target, err = loadDocument(ctx, f.Target); err != nil {
		return nil, nil, err
	}

	if scope, err = loadDocument(ctx, f.Scope); err != nil {
		return nil, nil, err
	}

	if scope, err = assign(ctx, scope, f.Set...); err != nil {
		return nil, nil, err
	}

	log.DebugContext(ctx, "data loaded",
		slog.String("target", f.Target),
		slog.String("scope", f.Scope),
		slog.Int("assignments", len(f.Set)),
	)

	return target, scope, nil
}

// loadDocument reads and decodes the YAML or JSON document named by name.
// An empty name yields a nil document.
func loadDocument(ctx context.Context, name string) (any, error) {
	if name == "" {
		return nil, nil
	}

	src, err := openSources(ctx, name)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return decodeDocument(src, strings.Join(src.Names(), ","))
}

// decodeDocument decodes the first YAML document in r. JSON input is
// accepted as YAML. An empty document decodes to nil.
func decodeDocument(r io.Reader, name string) (any, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	var doc any

	err := yaml.NewDecoder(ra).Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrDecodeData.Wrap(err).With(slog.String("source", name))
	}

	return doc, nil
}

// decodeValue decodes s as a YAML scalar or flow collection. Text that is
// not valid YAML is returned as a string.
func decodeValue(s string) any {
	var v any

	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}

	return v
}

// assign applies each PATH=VALUE assignment to scope in order and returns
// the updated scope.
func assign(ctx context.Context, scope any, assignments ...string) (any, error) {
	for _, a := range assignments {
		path, value, ok := strings.Cut(a, "=")
		if !ok || strings.TrimSpace(path) == "" {
			return nil, ErrAssignment.With(slog.String("assignment", a))
		}

		var err error

		scope, err = expr.SetValue(scope, strings.TrimSpace(path), decodeValue(value), nil,
			expr.WithLogger(log.Default()))
		if err != nil {
			return nil, ErrAssignment.Wrap(err).With(slog.String("assignment", a))
		}

		log.TraceContext(ctx, "scope assignment", slog.String("path", path))
	}

	return scope, nil
}

// encode writes v to w in the named output format.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		buf, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintf(w, "%s\n", buf)

		return err

	case outputText:
		_, err := fmt.Fprintln(w, expr.ToString(v))

		return err

	default:
		buf, err := yaml.MarshalWithOptions(v,
			yaml.Indent(2),
			yaml.IndentSequence(true),
		)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(buf)

		return err
	}
}

// writeDocument replaces the file at path with v encoded as YAML, or as
// JSON when path ends in ".json".
func writeDocument(path string, v any) error {
	format := outputYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = outputJSON
	}

	info, err := os.Stat(path)
	if err != nil {
		return ErrWriteData.Wrap(err).With(slog.String("file", path))
	}

	var sb strings.Builder
	if err := encode(&sb, format, v); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(sb.String()), info.Mode().Perm()); err != nil {
		return ErrWriteData.Wrap(err).With(slog.String("file", path))
	}

	return nil
}
