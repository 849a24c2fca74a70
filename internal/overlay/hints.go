package overlay

import (
	"fmt"
	"strings"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/motif"
	"github.com/jezek/xgbutil/xprop"
	log "github.com/sirupsen/logrus"
)

// Hint is a bitset of window-manager hints applied to a managed overlay
// window. Hints are independent: any combination may be requested and each
// is applied on its own, so an unsupported one degrades in isolation.
type Hint uint

const (
	HintUndecorated Hint = 1 << iota
	HintBelow
	HintAbove
	HintSticky
	HintSkipTaskbar
	HintSkipPager
)

var hintNames = map[string]Hint{
	"undecorated":  HintUndecorated,
	"below":        HintBelow,
	"above":        HintAbove,
	"sticky":       HintSticky,
	"skip_taskbar": HintSkipTaskbar,
	"skip_pager":   HintSkipPager,
}

// ParseHints folds a list of hint names into a bitset. Unknown names are an
// error so configuration typos surface instead of silently dropping a hint.
func ParseHints(names []string) (Hint, error) {
	var hints Hint
	for _, name := range names {
		h, ok := hintNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown window hint %q", name)
		}
		hints |= h
	}
	return hints, nil
}

// Has reports whether h includes the given hint.
func (h Hint) Has(hint Hint) bool { return h&hint != 0 }

// statesFor maps a hint bitset to the _NET_WM_STATE atom names it implies,
// in a fixed order independent of how the hints were listed.
func statesFor(h Hint) []string {
	var states []string
	if h.Has(HintBelow) {
		states = append(states, "_NET_WM_STATE_BELOW")
	}
	if h.Has(HintAbove) {
		states = append(states, "_NET_WM_STATE_ABOVE")
	}
	if h.Has(HintSticky) {
		states = append(states, "_NET_WM_STATE_STICKY")
	}
	if h.Has(HintSkipTaskbar) {
		states = append(states, "_NET_WM_STATE_SKIP_TASKBAR")
	}
	if h.Has(HintSkipPager) {
		states = append(states, "_NET_WM_STATE_SKIP_PAGER")
	}
	return states
}

// applyHints writes the window properties implied by the hint bitset. All
// writes are best effort; a window manager that ignores a property simply
// does not honor that hint.
func (w *Window) applyHints(h Hint) {
	xu := w.conn.XUtil

	if h.Has(HintUndecorated) {
		hints := motif.Hints{
			Flags:      motif.HintDecorations,
			Decoration: motif.DecorationNone,
		}
		if err := motif.WmHintsSet(xu, w.ID, &hints); err != nil {
			log.Debug("Cannot set motif hints: ", err)
		}
	}

	if states := statesFor(h); len(states) > 0 {
		if err := ewmh.WmStateSet(xu, w.ID, states); err != nil {
			log.Debug("Cannot set window states: ", err)
		}
	}

	// Gnome-era window managers stack by _WIN_LAYER rather than the EWMH
	// states; 0 is the lowest layer, 6 is on-top.
	switch {
	case h.Has(HintBelow):
		w.setWinLayer(0)
	case h.Has(HintAbove):
		w.setWinLayer(6)
	}

	if h.Has(HintSticky) {
		if err := ewmh.WmDesktopSet(xu, w.ID, 0xffffffff); err != nil {
			log.Debug("Cannot set sticky desktop: ", err)
		}
	}
}

func (w *Window) setWinLayer(layer uint) {
	err := xprop.ChangeProp32(w.conn.XUtil, w.ID, "_WIN_LAYER", "CARDINAL", layer)
	if err != nil {
		log.Debug("Cannot set gnome layer: ", err)
	}
}

// windowTypeAtom maps the configured window type to its EWMH
// _NET_WM_WINDOW_TYPE member. The override type has no EWMH representation
// because it bypasses the window manager entirely.
func windowTypeAtom(winType string) string {
	switch winType {
	case "desktop":
		return "_NET_WM_WINDOW_TYPE_DESKTOP"
	case "dock":
		return "_NET_WM_WINDOW_TYPE_DOCK"
	case "panel":
		return "_NET_WM_WINDOW_TYPE_DOCK"
	case "utility":
		return "_NET_WM_WINDOW_TYPE_UTILITY"
	default:
		return "_NET_WM_WINDOW_TYPE_NORMAL"
	}
}

// lower pushes the window to the bottom of the stacking order.
func (w *Window) lower() {
	xproto.ConfigureWindow(w.conn.XUtil.Conn(), w.ID,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeBelow})
}
