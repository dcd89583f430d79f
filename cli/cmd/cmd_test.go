package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// writeFiles creates each name=content pair under dir and returns the
// paths in order.
func writeFiles(t *testing.T, dir string, files ...[2]string) []string {
	t.Helper()

	paths := make([]string, 0, len(files))

	for _, f := range files {
		p := filepath.Join(dir, f[0])
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(p, []byte(f[1]), 0o644); err != nil {
			t.Fatal(err)
		}

		paths = append(paths, p)
	}

	return paths
}

func readSources(t *testing.T, src *Sources) string {
	t.Helper()

	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("reading sources: %v", err)
	}

	return string(data)
}

func TestOpenSources(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir,
		[2]string{"a.txt", "alpha\n"},
		[2]string{"b.txt", "beta\n"},
	)

	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(paths[0], link); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		names     []string
		stdin     string
		want      string
		wantNames []string
	}{
		{
			name:      "single",
			names:     []string{paths[0]},
			want:      "alpha\n",
			wantNames: []string{paths[0]},
		},
		{
			name:      "multiple_in_order",
			names:     []string{paths[1], paths[0]},
			want:      "beta\nalpha\n",
			wantNames: []string{paths[1], paths[0]},
		},
		{
			name:      "duplicate_path",
			names:     []string{paths[0], paths[0]},
			want:      "alpha\n",
			wantNames: []string{paths[0]},
		},
		{
			name:      "symlink_duplicate",
			names:     []string{paths[0], link},
			want:      "alpha\n",
			wantNames: []string{paths[0]},
		},
		{
			name:      "stdin_last",
			names:     []string{"-", paths[1]},
			stdin:     "gamma\n",
			want:      "beta\ngamma\n",
			wantNames: []string{paths[1], "-"},
		},
		{
			name:      "stdin_collapsed",
			names:     []string{"-", "-"},
			stdin:     "gamma\n",
			want:      "gamma\n",
			wantNames: []string{"-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithStdio(t.Context(), strings.NewReader(tt.stdin), io.Discard)

			src, err := openSources(ctx, tt.names...)
			if err != nil {
				t.Fatalf("openSources(%v): %v", tt.names, err)
			}

			if got := src.Names(); !slices.Equal(got, tt.wantNames) {
				t.Errorf("Names() = %v, want %v", got, tt.wantNames)
			}

			if got := readSources(t, src); got != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenSourcesSearchPath(t *testing.T) {
	dir := t.TempDir()
	envDir := t.TempDir()

	writeFiles(t, dir, [2]string{"data/page.html", "<p>flag</p>"})
	writeFiles(t, envDir,
		[2]string{"data/page.html", "<p>env</p>"},
		[2]string{"only.yaml", "a: 1"},
	)

	t.Setenv("STENCIL_PATH", envDir)

	ctx := WithSearchPath(t.Context(), []string{dir})

	src, err := openSources(ctx, filepath.Join("data", "page.html"))
	if err != nil {
		t.Fatal(err)
	}

	if got := readSources(t, src); got != "<p>flag</p>" {
		t.Errorf("content = %q, want the file from the --path directory", got)
	}

	src, err = openSources(ctx, "only.yaml")
	if err != nil {
		t.Fatal(err)
	}

	if got := readSources(t, src); got != "a: 1" {
		t.Errorf("content = %q, want the file from the environment path", got)
	}
}

func TestOpenSourcesNotFound(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, [2]string{"a.txt", "alpha"})

	for _, names := range [][]string{
		{filepath.Join(dir, "missing.txt")},
		{paths[0], "missing.txt"},
		{dir},
	} {
		_, err := openSources(t.Context(), names...)
		if !errors.Is(err, ErrInputNotFound) {
			t.Errorf("openSources(%v) error = %v, want ErrInputNotFound", names, err)
		}
	}
}

func TestSourcesZero(t *testing.T) {
	var nilSrc *Sources
	if !nilSrc.IsZero() {
		t.Error("nil Sources is not zero")
	}

	src, err := openSources(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	if !src.IsZero() {
		t.Error("Sources with no names is not zero")
	}

	var sb strings.Builder
	if n, err := src.WriteTo(&sb); n != 0 || err != nil {
		t.Errorf("WriteTo() = (%d, %v), want (0, nil)", n, err)
	}
}
