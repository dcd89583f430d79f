package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_DefaultLogger(t *testing.T) {
	original := Default()
	t.Cleanup(func() { defaultLog = original })

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"InfoContext", func(msg string, attrs ...slog.Attr) {
			InfoContext(t.Context(), msg, attrs...)
		}, "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			for _, want := range []string{`"msg":"message"`, `"level":"` + tt.level + `"`, `"key":"value"`} {
				if !strings.Contains(out, want) {
					t.Errorf("output %q does not contain %s", out, want)
				}
			}
		})
	}

	buf.Reset()
	With(slog.String("scope", "pkg")).Info("with")

	if !strings.Contains(buf.String(), `"scope":"pkg"`) {
		t.Errorf("With attribute missing: %q", buf.String())
	}
}
