package expr

import (
	"math"
	"testing"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{true, 1},
		{false, 0},
		{"", 0},
		{"  12.5 ", 12.5},
		{"-3", -3},
		{"Infinity", math.Inf(1)},
		{int8(-4), -4},
		{uint64(7), 7},
		{float32(0.5), 0.5},
		{[]any{}, 0},
		{[]any{"8"}, 8},
	}

	for _, tt := range tests {
		if got := ToNumber(tt.in); got != tt.want {
			t.Errorf("ToNumber(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []any{Undefined, "abc", "inf", "NaN", "1_000", []any{1, 2}, map[string]any{}} {
		if got := ToNumber(in); !math.IsNaN(got) {
			t.Errorf("ToNumber(%#v) = %v, want NaN", in, got)
		}
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{Undefined, "undefined"},
		{true, "true"},
		{1.0, "1"},
		{-0.25, "-0.25"},
		{1e21, "1e+21"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
		{42, "42"},
		{[]any{1, nil, "a"}, "1,,a"},
		{map[string]any{"a": 1}, "[object Object]"},
	}

	for _, tt := range tests {
		if got := ToString(tt.in); got != tt.want {
			t.Errorf("ToString(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	for _, v := range []any{true, 1, -1.5, "0", " ", []any{}, map[string]any{}} {
		if !Truthy(v) {
			t.Errorf("Truthy(%#v) = false", v)
		}
	}

	for _, v := range []any{false, 0, 0.0, math.NaN(), "", nil, Undefined} {
		if Truthy(v) {
			t.Errorf("Truthy(%#v) = true", v)
		}
	}
}

func TestEquality(t *testing.T) {
	m := map[string]any{}
	s := []any{1}

	tests := []struct {
		a, b          any
		loose, strict bool
	}{
		{nil, nil, true, true},
		{nil, Undefined, true, false},
		{nil, 0, false, false},
		{Undefined, "", false, false},
		{1, 1.0, true, true},
		{uint8(2), int64(2), true, true},
		{"2", 2, true, false},
		{"", 0, true, false},
		{true, "1", true, false},
		{false, 0, true, false},
		{math.NaN(), math.NaN(), false, false},
		{m, m, true, true},
		{m, map[string]any{}, false, false},
		{s, s, true, true},
		{s, "1", true, false},
		{s, 1, true, false},
	}

	for _, tt := range tests {
		if got := LooseEqual(tt.a, tt.b); got != tt.loose {
			t.Errorf("LooseEqual(%#v, %#v) = %v", tt.a, tt.b, got)
		}

		if got := LooseEqual(tt.b, tt.a); got != tt.loose {
			t.Errorf("LooseEqual(%#v, %#v) = %v (reversed)", tt.b, tt.a, got)
		}

		if got := StrictEqual(tt.a, tt.b); got != tt.strict {
			t.Errorf("StrictEqual(%#v, %#v) = %v", tt.a, tt.b, got)
		}
	}
}

func TestType(t *testing.T) {
	tests := map[string]any{
		"undefined": Undefined,
		"null":      nil,
		"boolean":   false,
		"number":    uint16(3),
		"string":    "",
		"object":    []string{},
	}

	for want, v := range tests {
		if got := Type(v); got != want {
			t.Errorf("Type(%#v) = %q, want %q", v, got, want)
		}
	}
}

func TestPath_String(t *testing.T) {
	tests := []struct {
		path Path
		want string
	}{
		{Path{"a", "b"}, "a.b"},
		{Path{"a", 0.0, "c"}, "a[0].c"},
		{Path{"a b", 2}, `["a b"][2]`},
		{Path{0.0}, "[0]"},
	}

	for _, tt := range tests {
		if got := tt.path.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.path, got, tt.want)
		}
	}
}
