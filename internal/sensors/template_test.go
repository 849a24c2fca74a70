package sensors

import (
	"testing"
	"time"
)

func TestExpand(t *testing.T) {
	values := map[string]string{
		"hostname": "thinkpad",
		"loadavg":  "0.42 0.31 0.22",
	}
	tests := []struct {
		in   string
		want string
	}{
		{"${hostname}", "thinkpad"},
		{"host: ${hostname} load: ${loadavg}", "host: thinkpad load: 0.42 0.31 0.22"},
		{"no vars here", "no vars here"},
		{"${unknown}", "${unknown}"},
		{"$$5", "$5"},
		{"${hostname", "${hostname"},
		{"trailing $", "trailing $"},
		{"", ""},
	}
	for _, tt := range tests {
		got := expandLine(tt.in, values)
		if got != tt.want {
			t.Errorf("expandLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandLines(t *testing.T) {
	out := Expand([]string{"a ${x}", "b"}, map[string]string{"x": "1"})
	if len(out) != 2 || out[0] != "a 1" || out[1] != "b" {
		t.Errorf("Expand = %v", out)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{59, "0m"},
		{60, "1m"},
		{3700, "1h 1m"},
		{90061, "1d 1h 1m"},
	}
	for _, tt := range tests {
		d := time.Duration(tt.secs) * time.Second
		if got := formatDuration(d); got != tt.want {
			t.Errorf("formatDuration(%ds) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatKiB(t *testing.T) {
	tests := []struct {
		kb   uint64
		want string
	}{
		{512, "512KiB"},
		{2048, "2.0MiB"},
		{3 << 20, "3.0GiB"},
	}
	for _, tt := range tests {
		if got := formatKiB(tt.kb); got != tt.want {
			t.Errorf("formatKiB(%d) = %q, want %q", tt.kb, got, tt.want)
		}
	}
}

func TestSnapshotAlwaysResolves(t *testing.T) {
	snap := NewRegistry().Snapshot()
	for _, name := range []string{"hostname", "kernel", "uptime", "loadavg", "memused", "memtotal"} {
		if v, ok := snap[name]; !ok || v == "" {
			t.Errorf("variable %q missing or empty", name)
		}
	}
}
