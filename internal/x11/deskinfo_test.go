package x11

import "testing"

func TestCurrentDesktopName(t *testing.T) {
	names := "web\x00mail\x00code\x00"
	tests := []struct {
		current int
		want    string
	}{
		{1, "web"},
		{2, "mail"},
		{3, "code"},
		{4, ""},
		{0, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := currentDesktopName(names, tt.current); got != tt.want {
			t.Errorf("currentDesktopName(%d) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestCurrentDesktopNameNoTrailingNul(t *testing.T) {
	names := "one\x00two"
	if got := currentDesktopName(names, 2); got != "two" {
		t.Errorf("got %q, want %q", got, "two")
	}
	if got := currentDesktopName(names, 3); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestCurrentDesktopNameEmptyList(t *testing.T) {
	if got := currentDesktopName("", 1); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
