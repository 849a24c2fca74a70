package overlay

import (
	"strings"

	"github.com/j3din00b/conky/internal/config"
)

// Policy captures per-window-manager compatibility behavior. Matching is a
// case-insensitive substring test against the detected window-manager name,
// so "Fluxbox 1.3.7" matches a "fluxbox" entry.
type Policy struct {
	withdrawn []string
	cutout    []string
}

func NewPolicy(cfg config.WMConfig) Policy {
	return Policy{
		withdrawn: lowered(cfg.WithdrawnStateWMs),
		cutout:    lowered(cfg.CutoutWMs),
	}
}

// WithdrawnStart reports whether docks and panels must map in the withdrawn
// state so the window manager's slit picks them up.
func (p Policy) WithdrawnStart(wmName string) bool {
	return matchWM(p.withdrawn, wmName)
}

// Cutout reports whether partial struts may follow the window's shape
// instead of the conservative whole-edge choice.
func (p Policy) Cutout(wmName string) bool {
	return matchWM(p.cutout, wmName)
}

func matchWM(list []string, wmName string) bool {
	name := strings.ToLower(wmName)
	if name == "" {
		return false
	}
	for _, entry := range list {
		if entry != "" && strings.Contains(name, entry) {
			return true
		}
	}
	return false
}

func lowered(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
