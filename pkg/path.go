package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Prefix returns the base name of the running executable with its extension
// removed. The default dlv output name is replaced by [Name], and leading
// dots are removed.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	id := os.Args[0]
	if exe, err := os.Executable(); err == nil {
		id = exe
	}

	id = filepath.Base(id)
	id = strings.TrimSuffix(id, filepath.Ext(id))
	id = debugBin.ReplaceAllString(id, Name)
	id = strings.TrimLeft(id, ".")

	if id == "" {
		return Name
	}

	return id
})

var debugBin = regexp.MustCompile(`^__debug_bin\d*$`)

// ConfigDir returns the directory holding configuration files.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding transient files such as REPL
// history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// userDir returns the Prefix subdirectory of the directory reported by
// base, falling back to hidden under the home directory and then the
// working directory.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// PathEnv is the environment variable holding the default search path.
var PathEnv = strings.ToUpper(Name) + "_PATH"

// SearchPath returns the directories searched for data and markup files.
// The dirs given come first, followed by the list in [PathEnv]. Empty and
// duplicate entries are dropped.
func SearchPath(dirs ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
	).String()

	var (
		seen = map[string]bool{}
		path []string
	)

	for _, dir := range filepath.SplitList(list) {
		if dir == "" || seen[filepath.Clean(dir)] {
			continue
		}

		seen[filepath.Clean(dir)] = true
		path = append(path, dir)
	}

	return path
}

// Find locates name. Absolute names and names that exist relative to the
// working directory are returned unchanged; otherwise each directory of
// the search path is tried in order. The result is empty if name is not
// found.
func Find(name string, dirs ...string) string {
	if name == "" {
		return ""
	}

	if isFile(name) {
		return name
	}

	if filepath.IsAbs(name) {
		return ""
	}

	for _, dir := range SearchPath(dirs...) {
		if p := filepath.Join(dir, name); isFile(p) {
			return p
		}
	}

	return ""
}

func isFile(name string) bool {
	info, err := os.Stat(name)

	return err == nil && !info.IsDir()
}
