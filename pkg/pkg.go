//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the module, embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It also names the configuration and cache
	// directories and prefixes environment variables.
	Name = "stencil"
	// Description is a one-line summary used in help output.
	Description = "Lenient markup parser and path expression evaluator"
)

// AuthorInfo identifies a project author.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the project authors.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
