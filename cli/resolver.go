package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Keys are flag names, with hyphens or underscores. A flag may also be
// nested under the part of its name before a hyphen, and flags of a
// command may be nested under the command name:
//
//	log-level: debug
//	log:
//	  format: json
//	path: [templates, data]
//	markup:
//	  raw-text: [script, style]
//
// Command-line flags override configuration values. An empty file is an
// empty configuration; a malformed one is an error.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var conf config
	if err := yaml.Unmarshal(buf, &conf); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	return conf, nil
}

// config implements [kong.Resolver] over a decoded configuration document.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if parent != nil && parent.Command != nil {
		if section, ok := c[parent.Command.Name].(map[string]any); ok {
			if v, ok := lookup(section, flag.Name); ok {
				return scalar(v), nil
			}
		}
	}

	if v, ok := lookup(c, flag.Name); ok {
		return scalar(v), nil
	}

	return nil, nil
}

// lookup finds name in m, spelled with hyphens or underscores, or nested
// under a hyphen-separated prefix of name.
func lookup(m map[string]any, name string) (any, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}

	if v, ok := m[strings.ReplaceAll(name, "-", "_")]; ok {
		return v, true
	}

	for i := strings.IndexByte(name, '-'); i > 0; {
		if sub, ok := m[name[:i]].(map[string]any); ok {
			if v, ok := lookup(sub, name[i+1:]); ok {
				return v, true
			}
		}

		next := strings.IndexByte(name[i+1:], '-')
		if next < 0 {
			break
		}

		i += next + 1
	}

	return nil, false
}

// scalar converts decoded numbers to the strings kong parses flag values
// from.
func scalar(v any) any {
	switch n := v.(type) {
	case uint64:
		return strconv.FormatUint(n, 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	return v
}
