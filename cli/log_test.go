package cli

import (
	"testing"

	"github.com/ardnew/stencil/log"
)

func TestLogConfigScan(t *testing.T) {
	// scan reconfigures the default logger.
	t.Cleanup(func() {
		log.Config(log.WithLevel(log.DefaultLevel), log.WithFormat(log.DefaultFormat))
	})

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate_values",
			args: []string{"--log-level", "debug", "markup", "--log-format", "json"},
			want: logConfig{Level: "debug", Format: "json"},
		},
		{
			name: "assigned_values",
			args: []string{"--log-level=warn", "--log-format=text"},
			want: logConfig{Level: "warn", Format: "text"},
		},
		{
			name: "booleans",
			args: []string{"--log-caller", "--no-log-pretty"},
			want: logConfig{Caller: true, Pretty: false},
		},
		{
			name: "assigned_booleans",
			args: []string{"--log-pretty=false", "--no-log-caller=false"},
			want: logConfig{Caller: true, Pretty: false},
		},
		{
			name: "stops_at_terminator",
			args: []string{"--", "--log-level", "debug"},
			want: logConfig{},
		},
		{
			name: "missing_operand",
			args: []string{"--log-level", "--log-caller"},
			want: logConfig{Caller: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got logConfig

			got.scan(tt.args)

			if got != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}

	var f logConfig

	f.scan([]string{"--log-level=error", "--log-format=json"})

	if got := log.Default().Level(); got != log.LevelError {
		t.Errorf("default logger level = %v, want error", got)
	}

	if got := log.Default().Format(); got != log.FormatJSON {
		t.Errorf("default logger format = %v, want json", got)
	}
}

func TestScanBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		assigned bool
		want     bool
		ok       bool
	}{
		{"--log-caller", "", false, true, true},
		{"--no-log-caller", "", false, false, true},
		{"--log-caller", "false", true, false, true},
		{"--no-log-caller", "0", true, true, true},
		{"--log-caller", "maybe", true, false, false},
	}

	for _, tt := range tests {
		got, ok := scanBool(tt.name, tt.value, tt.assigned)
		if got != tt.want || ok != tt.ok {
			t.Errorf("scanBool(%q, %q, %v) = (%v, %v), want (%v, %v)",
				tt.name, tt.value, tt.assigned, got, ok, tt.want, tt.ok)
		}
	}
}
