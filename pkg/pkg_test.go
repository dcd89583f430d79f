package pkg

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "stencil" {
		t.Errorf("Name = %q, want %q", Name, "stencil")
	}

	if PathEnv != "STENCIL_PATH" {
		t.Errorf("PathEnv = %q, want %q", PathEnv, "STENCIL_PATH")
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version != want {
		t.Errorf("Version = %q, want %q", Version, want)
	}

	if Version == "" || strings.TrimSpace(Version) != Version {
		t.Errorf("Version %q is empty or untrimmed", Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Author = %v, want entry for ardnew", Author)
	}

	for i, a := range Author {
		if a.Name == "" && a.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestUserDirs(t *testing.T) {
	for name, dir := range map[string]string{
		"config": ConfigDir(),
		"cache":  CacheDir(),
	} {
		if filepath.Base(dir) != Prefix() {
			t.Errorf("%s dir %q does not end in %q", name, dir, Prefix())
		}
	}
}

func TestSearchPath(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name string
		env  string
		dirs []string
		want []string
	}{
		{"empty", "", nil, nil},
		{"env_only", "/a" + sep + "/b", nil, []string{"/a", "/b"}},
		{"dirs_first", "/b", []string{"/a"}, []string{"/a", "/b"}},
		{"dedupe", "/a" + sep + "/b" + sep + "/a/", []string{"/b"}, []string{"/b", "/a"}},
		{"skip_empty", sep + "/a" + sep, nil, []string{"/a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(PathEnv, tt.env)

			if got := SearchPath(tt.dirs...); !slices.Equal(got, tt.want) {
				t.Errorf("SearchPath(%q) = %q, want %q", tt.dirs, got, tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	lib := t.TempDir()
	extra := t.TempDir()

	write := func(dir, name string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}

		return p
	}

	inLib := write(lib, "data.yaml")
	inExtra := write(extra, "page.html")

	if err := os.Mkdir(filepath.Join(lib, "sub"), 0o700); err != nil {
		t.Fatal(err)
	}

	t.Setenv(PathEnv, lib)

	tests := []struct {
		name string
		file string
		dirs []string
		want string
	}{
		{"empty", "", nil, ""},
		{"absolute", inLib, nil, inLib},
		{"absolute_missing", filepath.Join(lib, "nope"), nil, ""},
		{"env", "data.yaml", nil, inLib},
		{"flag_dir", "page.html", []string{extra}, inExtra},
		{"directory", "sub", nil, ""},
		{"missing", "nope.yaml", []string{extra}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Find(tt.file, tt.dirs...); got != tt.want {
				t.Errorf("Find(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}
