package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"dot_separated", "bar.baz", 7, "baz", 4, 7},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_minus", "a-fo", 4, "fo", 2, 4},
		{"after_paren", "(fo", 3, "fo", 1, 3},
		{"after_bracket", "a[fo", 4, "fo", 2, 4},
		{"in_ternary", "x ? fo", 6, "fo", 4, 6},
		{"after_comparison", "a >= fo", 7, "fo", 5, 7},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore_dollar", "$x_1", 4, "$x_1", 0, 4},
		{"empty_after_dot", "config.", 7, "", 7, 7},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wordStart int
		want      string
	}{
		{"top_level", "fo", 0, ""},
		{"simple_chain", "bar.baz.", 8, "bar.baz"},
		{"after_operator", "foo + bar.baz.", 14, "bar.baz"},
		{"after_paren", "(bar.baz.", 9, "bar.baz"},
		{"no_chain", "a + ", 4, ""},
		{"deep_chain", "a.b.c.", 6, "a.b.c"},
		{"partial_word", "a.b.c", 4, "a.b"},
		{"after_equals", "x == a.b.", 9, "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parentPath(tt.input, tt.wordStart); got != tt.want {
				t.Errorf("parentPath(%q, %d) = %q, want %q",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestChildCandidates(t *testing.T) {
	s := &session{
		target: map[string]any{
			"server": map[string]any{"host": "h", "port": 80},
			"tags":   []any{"a", "b"},
		},
		scope: map[string]any{"env": "prod", "server": nil},
	}

	tests := []struct {
		parent string
		want   []string
	}{
		{"", []string{"env", "false", "null", "server", "tags", "true", "undefined"}},
		{"server", nil}, // the scope's null shadows the target
		{"tags", []string{"0", "1"}},
		{"missing", nil},
		{"env", nil},
	}

	for _, tt := range tests {
		t.Run(tt.parent, func(t *testing.T) {
			if got := s.childCandidates(tt.parent); !slices.Equal(got, tt.want) {
				t.Errorf("childCandidates(%q) = %q, want %q", tt.parent, got, tt.want)
			}
		})
	}

	s.scope = nil
	if got := s.childCandidates("server"); !slices.Equal(got, []string{"host", "port"}) {
		t.Errorf("childCandidates(server) = %q, want [host port]", got)
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want []string
	}{
		{"nil", nil, nil},
		{"scalar", 3, nil},
		{"map", map[string]any{"b": 1, "a": 2}, []string{"a", "b"}},
		{"typed_map", map[string]int{"y": 1, "x": 2}, []string{"x", "y"}},
		{"int_keys", map[int]string{1: "a"}, nil},
		{"slice", []any{1, 2, 3}, []string{"0", "1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys(tt.v); !slices.Equal(got, tt.want) {
				t.Errorf("keys(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
