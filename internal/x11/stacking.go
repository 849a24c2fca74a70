package x11

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/xwindow"
)

// Eager tree walks stop after this many windows so a pathological client
// tree cannot stall event handling.
const maxTreeWalk = 4096

// StackedWindows enumerates managed client windows in bottom-to-top
// stacking order. It prefers _NET_CLIENT_LIST_STACKING, falls back to
// _NET_CLIENT_LIST, and (only when eager is set) finally walks the window
// tree keeping windows that carry WM hints.
func (c *Connection) StackedWindows(eager bool) []xproto.Window {
	if wins, err := ewmh.ClientListStackingGet(c.XUtil); err == nil && len(wins) > 0 {
		return wins
	}
	if wins, err := ewmh.ClientListGet(c.XUtil); err == nil && len(wins) > 0 {
		return wins
	}
	if !eager {
		return nil
	}
	return c.walkTree()
}

// walkTree collects mapped client windows by breadth-first traversal from
// the root. A window qualifies when it has ICCCM WM hints set; nested
// children of a qualified window are not descended into, matching how a
// reparenting window manager frames clients.
func (c *Connection) walkTree() []xproto.Window {
	var (
		found   []xproto.Window
		queue   = []xproto.Window{c.Root}
		visited = 0
	)
	for len(queue) > 0 && visited < maxTreeWalk {
		win := queue[0]
		queue = queue[1:]
		visited++

		tree, err := xproto.QueryTree(c.XUtil.Conn(), win).Reply()
		if err != nil {
			continue
		}
		for _, child := range tree.Children {
			if _, err := icccm.WmHintsGet(c.XUtil, child); err == nil {
				found = append(found, child)
				continue
			}
			queue = append(queue, child)
		}
	}
	return found
}

// WindowsAt reports the managed windows whose geometry contains the given
// root-relative point, bottom-to-top, skipping exclude and unmapped
// windows. The topmost entry is the natural target for forwarded input.
func (c *Connection) WindowsAt(x, y int, exclude xproto.Window, eager bool) []xproto.Window {
	var hits []xproto.Window
	for _, win := range c.StackedWindows(eager) {
		if win == exclude || win == 0 {
			continue
		}
		attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
		if err != nil || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		geom, err := xwindow.New(c.XUtil, win).DecorGeometry()
		if err != nil {
			continue
		}
		if x < geom.X() || x >= geom.X()+geom.Width() {
			continue
		}
		if y < geom.Y() || y >= geom.Y()+geom.Height() {
			continue
		}
		hits = append(hits, win)
	}
	return hits
}

// TopWindowAt returns the topmost managed window at the point, or zero
// when nothing but the root is there.
func (c *Connection) TopWindowAt(x, y int, exclude xproto.Window, eager bool) xproto.Window {
	hits := c.WindowsAt(x, y, exclude, eager)
	if len(hits) == 0 {
		return 0
	}
	return hits[len(hits)-1]
}
