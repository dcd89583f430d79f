package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if got := logger.Level(); got != LevelInfo {
		t.Errorf("Level() = %v, want %v", got, LevelInfo)
	}

	if got := logger.Format(); got != FormatText {
		t.Errorf("Format() = %v, want %v", got, FormatText)
	}

	if logger.caller {
		t.Error("caller enabled by default")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		log    func(Logger, string, ...slog.Attr)
		min    Level
		logged bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at trace", Logger.Error, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.min)), "message")

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_LevelNames(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		for level := range Levels() {
			t.Run(level, func(t *testing.T) {
				var buf bytes.Buffer

				logger := Make(&buf, WithLevel(LevelTrace), WithPretty(pretty))
				logger.log(t.Context(), ParseLevel(level), "message", nil)

				want := "level=" + strings.ToUpper(level)
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q does not contain %q", buf.String(), want)
				}
			})
		}
	}
}

func TestLogger_JSON(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatJSON), WithPretty(pretty)).
			With(slog.String("component", "parser"))
		logger.Info("parsed", slog.Int("nodes", 3), slog.Group("input",
			slog.String("name", "page.html"), slog.Bool("raw", true)))

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("pretty=%v: output is not JSON: %v\n%s", pretty, err, buf.String())
		}

		if entry["msg"] != "parsed" || entry["level"] != "INFO" {
			t.Errorf("pretty=%v: msg/level = %v/%v", pretty, entry["msg"], entry["level"])
		}

		if entry["component"] != "parser" {
			t.Errorf("pretty=%v: With attribute missing: %v", pretty, entry)
		}

		if entry["nodes"] != float64(3) {
			t.Errorf("pretty=%v: nodes = %v", pretty, entry["nodes"])
		}

		input, _ := entry["input"].(map[string]any)
		if input["name"] != "page.html" || input["raw"] != true {
			t.Errorf("pretty=%v: group = %v", pretty, entry["input"])
		}
	}
}

type resolved struct{ name string }

func (r resolved) LogValue() slog.Value {
	return slog.GroupValue(slog.String("name", r.name), slog.Int("size", len(r.name)))
}

func TestPrettyText_Attrs(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none")).With(slog.String("component", "expr"))
	logger.Info("evaluated",
		slog.Any("node", resolved{"div"}),
		slog.Float64("ratio", 0.5),
		slog.Bool("ok", false),
	)

	want := "level=INFO msg=evaluated component=expr node.name=div node.size=3 ratio=0.5 ok=false\n"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestPrettyText_Group(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))
	logger.Logger = logger.Logger.WithGroup("req")
	logger.Info("done", slog.String("id", "7"))

	want := "level=INFO msg=done req.id=7\n"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestLogger_Caller(t *testing.T) {
	for _, enable := range []bool{true, false} {
		var buf bytes.Buffer

		Make(&buf, WithCaller(enable), WithPretty(false)).Info("message")

		if got := strings.Contains(buf.String(), "log_test.go"); got != enable {
			t.Errorf("WithCaller(%v): source present = %v in %q", enable, got, buf.String())
		}
	}
}

func TestLogger_TimeLayout(t *testing.T) {
	tests := []struct {
		layout string
		want   string
		absent bool
	}{
		{layout: "RFC3339", want: "time="},
		{layout: "none", want: "time=", absent: true},
		{layout: "", want: "time=", absent: true},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, WithTimeLayout(tt.layout), WithPretty(false)).Info("message")

			if got := strings.Contains(buf.String(), tt.want); got == tt.absent {
				t.Errorf("output %q: contains %q = %v", buf.String(), tt.want, got)
			}
		})
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError || wrapped.Level() != LevelDebug {
		t.Fatalf("levels = %v, %v", base.Level(), wrapped.Level())
	}

	wrapped.Debug("visible")
	base.Debug("hidden")

	if out := buf.String(); !strings.Contains(out, "visible") || strings.Contains(out, "hidden") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("ignored")
	l.Error("ignored")

	if l.With(slog.String("k", "v")).Logger != nil {
		t.Error("With on zero Logger created a handler")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("zero Logger does not report defaults")
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var (
		buf bytes.Buffer
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	logger := Make(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		return buf.Write(p)
	}), WithPretty(false))

	for i := range 100 {
		wg.Go(func() { logger.Info("message", slog.Int("id", i)) })
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 100 {
		t.Errorf("got %d lines, want 100", n)
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func BenchmarkLogger_Info(b *testing.B) {
	logger := Make(&bytes.Buffer{})

	for b.Loop() {
		logger.Info("message", slog.Int("n", 1))
	}
}

func BenchmarkLogger_Info_Disabled(b *testing.B) {
	logger := Make(&bytes.Buffer{}, WithLevel(LevelError))

	for b.Loop() {
		logger.Info("message", slog.Int("n", 1))
	}
}
