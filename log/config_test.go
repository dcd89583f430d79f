package log

import (
	"bytes"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{" TRACE ", LevelTrace},
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"info+2", Level(slog.LevelInfo + 2)},
		{"debug-1", Level(slog.LevelDebug - 1)},
		{"verbose", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevel_Text(t *testing.T) {
	for name := range Levels() {
		var l Level
		if err := l.UnmarshalText([]byte(name)); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", name, err)
		}

		text, err := l.MarshalText()
		if err != nil || string(text) != name {
			t.Errorf("MarshalText() = %q, %v; want %q", text, err, name)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{" JSON", FormatJSON},
		{"text", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f Format
			if err := f.UnmarshalText([]byte(tt.in)); err != nil || f != tt.want {
				t.Errorf("UnmarshalText(%q) = %v, %v; want %v", tt.in, f, err, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	levels := slices.Collect(Levels())
	if want := []string{"trace", "debug", "info", "warn", "error"}; !slices.Equal(levels, want) {
		t.Errorf("Levels() = %v, want %v", levels, want)
	}

	formats := slices.Collect(Formats())
	if want := []string{"text", "json"}; !slices.Equal(formats, want) {
		t.Errorf("Formats() = %v, want %v", formats, want)
	}
}

func TestSet_ZeroConfig(t *testing.T) {
	c := WithLevel(LevelWarn)(config{})

	if c.mutex == nil {
		t.Fatal("set did not allocate a mutex")
	}

	if c.level != LevelWarn {
		t.Errorf("level = %v, want %v", c.level, LevelWarn)
	}
}

func TestWithDefaults(t *testing.T) {
	var buf bytes.Buffer

	c := apply(config{},
		WithLevel(LevelError),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
		WithTimeLayout("none"),
		WithDefaults(&buf),
	)

	if c.output != &buf {
		t.Errorf("output = %T, want the given buffer", c.output)
	}

	if c.level != DefaultLevel || c.format != DefaultFormat ||
		c.caller != DefaultCaller || c.pretty != DefaultPretty {
		t.Errorf("settings not reset: %+v", c)
	}

	when := time.Date(2024, 3, 9, 8, 7, 6, 0, time.UTC)
	if got, want := c.formatTime(when), when.Format(DefaultTimeLayout); got != want {
		t.Errorf("formatTime = %q, want %q", got, want)
	}

	if c := WithDefaults(nil)(config{}); c.output != io.Discard {
		t.Errorf("WithDefaults(nil) output = %T, want io.Discard", c.output)
	}

	if c := WithOutput(nil)(config{}); c.output != io.Discard {
		t.Errorf("WithOutput(nil) output = %T, want io.Discard", c.output)
	}
}

func TestConfig_Clone(t *testing.T) {
	base := makeConfig(io.Discard, WithLevel(LevelDebug))
	copied := base.clone(WithLevel(LevelError))

	if base.mutex == copied.mutex {
		t.Error("clone shares the mutex")
	}

	if base.level != LevelDebug || copied.level != LevelError {
		t.Errorf("levels = %v, %v", base.level, copied.level)
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	when := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2023-10-15T14:30:45Z"},
		{"rfc-3339-nano", "2023-10-15T14:30:45.123456789Z"},
		{"Kitchen", "2:30PM"},
		{"ms", "Oct 15 14:30:45.123"},
		{"DateTime", "2023-10-15 14:30:45"},
		{"2006/01/02", "2023/10/15"},
		{"none", ""},
		{"", ""},
		{" \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(when); got != tt.want {
				t.Errorf("layout %q: got %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestConfig_ReplaceAttr(t *testing.T) {
	when := time.Date(2023, 10, 15, 14, 30, 45, 0, time.UTC)

	c := makeConfig(io.Discard, WithTimeLayout("DateTime"))

	if a := c.replaceAttr(nil, slog.Time(slog.TimeKey, when)); a.Value.String() != "2023-10-15 14:30:45" {
		t.Errorf("time attr = %v", a.Value)
	}

	if a := c.replaceAttr(nil, slog.Any(slog.LevelKey, slog.Level(LevelTrace))); a.Value.String() != "TRACE" {
		t.Errorf("level attr = %v", a.Value)
	}

	if a := c.replaceAttr(nil, slog.String("key", "value")); a.Value.String() != "value" {
		t.Errorf("other attr = %v", a.Value)
	}

	c = makeConfig(io.Discard, WithTimeLayout("none"))
	if a := c.replaceAttr(nil, slog.Time(slog.TimeKey, when)); !a.Equal(slog.Attr{}) {
		t.Errorf("time attr = %v, want empty", a)
	}
}

func TestConfig_Handler(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		pretty bool
		check  func(slog.Handler) bool
	}{
		{"pretty text", FormatText, true, func(h slog.Handler) bool {
			_, ok := h.(*prettyTextHandler)
			return ok
		}},
		{"plain text", FormatText, false, func(h slog.Handler) bool {
			_, ok := h.(*slog.TextHandler)
			return ok
		}},
		{"pretty json", FormatJSON, true, func(h slog.Handler) bool {
			_, ok := h.(*prettyJSONHandler)
			return ok
		}},
		{"plain json", FormatJSON, false, func(h slog.Handler) bool {
			_, ok := h.(*slog.JSONHandler)
			return ok
		}},
		{"unknown", Format(7), true, func(h slog.Handler) bool {
			return h == slog.DiscardHandler
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := makeConfig(io.Discard, WithFormat(tt.format), WithPretty(tt.pretty)).handler()
			if !tt.check(h) {
				t.Errorf("handler = %T", h)
			}
		})
	}
}

// A pretty handler writing to a buffer has no terminal to color, so its
// renderer emits plain text.
func TestPretty_NoColorOffTerminal(t *testing.T) {
	for format := range Formats() {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, WithFormat(ParseFormat(format)), WithPretty(true)).
				Warn("message", slog.Bool("ok", true), slog.Int("n", 3))

			out := buf.String()
			if strings.Contains(out, "\x1b[") {
				t.Errorf("escape sequences in %q", out)
			}

			for _, want := range []string{"WARN", "message", "true", "3"} {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestPalette_Level(t *testing.T) {
	p := makePalette(io.Discard)

	tests := []struct {
		level slog.Level
		text  string
	}{
		{slog.Level(LevelTrace), "trace"},
		{slog.LevelDebug, "debug"},
		{slog.LevelInfo, "info"},
		{slog.LevelWarn + 1, "warn"},
		{slog.LevelError + 4, "error"},
	}

	for _, tt := range tests {
		if got := p.level(tt.level).Render(tt.text); got != tt.text {
			t.Errorf("level %v rendered %q, want %q", tt.level, got, tt.text)
		}
	}
}

func BenchmarkFormatTime(b *testing.B) {
	for _, layout := range []string{"RFC3339", "RFC3339Nano", "none"} {
		b.Run(layout, func(b *testing.B) {
			format := makeFormatTimeFunc(layout)
			when := time.Now()

			for b.Loop() {
				_ = format(when)
			}
		})
	}
}
