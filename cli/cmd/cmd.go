package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/stencil/pkg"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable name, or the empty string when ctx
// carries no kong.Context.
func kongVar(ctx context.Context, name string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[name]
}

type searchPathKey struct{}

// WithSearchPath returns a new context.Context carrying the directories
// searched for input files named on the command line. They are tried
// before the directories listed in [pkg.PathEnv].
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

type stdioKey struct{}

type stdio struct {
	in  io.Reader
	out io.Writer
}

// WithStdio returns a new context.Context whose commands read standard
// input from in and write results to out. Commands use os.Stdin and
// os.Stdout when either is nil.
func WithStdio(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, stdioKey{}, stdio{in: in, out: out})
}

func stdioFrom(ctx context.Context) stdio {
	s, _ := ctx.Value(stdioKey{}).(stdio)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	return s
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Sources reads the concatenated content of a set of input files.
type Sources struct {
	r     io.Reader
	files []*os.File
	names []string
}

// IsZero reports whether there are no sources.
func (s *Sources) IsZero() bool { return s == nil || len(s.names) == 0 }

// Names returns the resolved path of each source in read order. Standard
// input is named "-".
func (s *Sources) Names() []string { return s.names }

// Read implements io.Reader by reading every source in order.
func (s *Sources) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, io.EOF
	}

	return s.r.Read(p)
}

// WriteTo implements io.WriterTo by copying every source to w in order.
func (s *Sources) WriteTo(w io.Writer) (int64, error) {
	if s.r == nil {
		return 0, nil
	}

	return io.Copy(w, s.r)
}

// Close closes every opened file.
func (s *Sources) Close() error {
	var errs []error

	for _, f := range s.files {
		errs = append(errs, f.Close())
	}

	s.files = nil

	return errors.Join(errs...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens the named inputs for reading.
//
// Names other than "-" are located with [pkg.Find] using the search path
// stored in ctx. Files reached more than once, through symlinks or
// different relative paths, are read once. Every "-", and any name that
// resolves to the file behind standard input, collapses into a single
// stdin reader placed last.
func openSources(ctx context.Context, names ...string) (*Sources, error) {
	var (
		src      Sources
		seen     = make(map[fileKey]struct{})
		hasStdin bool
	)

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, stdinOK := makeFileKey(stdinInfo)

	for _, name := range names {
		if name == stdinSource {
			hasStdin = true

			continue
		}

		path := pkg.Find(name, searchPathFrom(ctx)...)
		if path == "" {
			_ = src.Close()

			return nil, ErrInputNotFound.With(slog.String("file", name))
		}

		file, key, err := openUniqueFile(path, seen)
		if err != nil {
			_ = src.Close()

			return nil, ErrReadInput.Wrap(err).With(slog.String("file", path))
		}

		if file == nil {
			continue
		}

		if stdinOK && key == stdinKey {
			_ = file.Close()
			hasStdin = true

			continue
		}

		src.files = append(src.files, file)
		src.names = append(src.names, path)
	}

	readers := make([]io.Reader, 0, len(src.files)+1)
	for _, f := range src.files {
		readers = append(readers, f)
	}

	if hasStdin {
		readers = append(readers, stdioFrom(ctx).in)
		src.names = append(src.names, stdinSource)
	}

	src.r = io.MultiReader(readers...)

	return &src, nil
}

// openUniqueFile opens the file at path unless a file with the same
// identity is already in seen. A nil file with a nil error marks a
// duplicate.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (*os.File, fileKey, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fileKey{}, err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fileKey{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, fileKey{}, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()

		return nil, fileKey{}, err
	}

	key, ok := makeFileKey(info)
	if !ok {
		return file, key, nil
	}

	if _, dup := seen[key]; dup {
		_ = file.Close()

		return nil, key, nil
	}

	seen[key] = struct{}{}

	return file, key, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
