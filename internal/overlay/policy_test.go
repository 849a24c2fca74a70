package overlay

import (
	"testing"

	"github.com/j3din00b/conky/internal/config"
)

func TestPolicyMatchesSubstrings(t *testing.T) {
	p := NewPolicy(config.WMConfig{
		WithdrawnStateWMs: []string{"fluxbox"},
		CutoutWMs:         []string{"compiz", "i3", "KWin"},
	})

	if !p.WithdrawnStart("Fluxbox 1.3.7") {
		t.Error("version suffix should still match")
	}
	if p.WithdrawnStart("Openbox") {
		t.Error("openbox should not match fluxbox")
	}
	if !p.Cutout("kwin_x11") {
		t.Error("list entries must match case-insensitively")
	}
	if p.Cutout("") {
		t.Error("unknown window manager must never match")
	}
}
