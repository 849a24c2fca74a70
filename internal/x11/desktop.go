package x11

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/xprop"
	log "github.com/sirupsen/logrus"
)

func fmt0x(v uint32) string { return fmt.Sprintf("0x%x", v) }

// Desktop search is bounded: window managers nest at most a few levels of
// wrappers between the (virtual) root and the background window.
const maxDesktopSearchDepth = 10

// VirtualRoot returns the window acting as the root of the current
// workspace. Some window managers (swm, tvtwm, amiwm, enlightenment) manage
// workspaces through virtual root windows that are direct descendants of the
// true root; all clients are reparented to them. Without virtual roots the
// true root is returned.
func (c *Connection) VirtualRoot() xproto.Window {
	root := c.Root

	atom, err := xprop.Atom(c.XUtil, "_NET_VIRTUAL_ROOTS", true)
	if err != nil || atom == 0 {
		return root
	}

	vroots := c.windowListProperty(root, atom)
	if len(vroots) == 0 {
		return root
	}

	atom, err = xprop.Atom(c.XUtil, "_NET_CURRENT_DESKTOP", true)
	if err != nil || atom == 0 {
		return root
	}

	idx, ok := c.cardinalProperty(root, atom)
	if !ok {
		return root
	}

	if int(idx) < len(vroots) {
		root = vroots[idx]
	}
	return root
}

// ResolveDesktop finds the virtual root and the desktop window: the real
// background window beneath all managed windows. The search runs twice, once
// against the full display size and once against the current workarea,
// preferring the workarea-based result. If no candidate matches, the root
// itself is the desktop.
func (c *Connection) ResolveDesktop(head int) (root, desktop xproto.Window) {
	root = c.VirtualRoot()

	w, h := c.DisplaySize()
	desktop = c.findDesktopWindow(root, w, h)

	// Head layout may have changed since the last query.
	workarea := c.Workarea(head)
	desktop = c.findDesktopWindow(desktop, workarea.Width, workarea.Height)

	if desktop != root {
		log.WithFields(log.Fields{
			"desktop": fmt0x(uint32(desktop)),
			"root":    fmt0x(uint32(root)),
		}).Info("Desktop window is subwindow of root window")
	} else {
		log.WithField("desktop", fmt0x(uint32(desktop))).Info("Desktop window is root window")
	}
	return root, desktop
}

// findDesktopWindow descends through child windows looking for a mapped,
// non-override-redirect window whose size matches exactly w x h. At each
// level the first matching child (in stable enumeration order) wins; the
// search stops when a level has no match or the depth bound is reached.
func (c *Connection) findDesktopWindow(win xproto.Window, w, h int) xproto.Window {
	conn := c.XUtil.Conn()

	for depth := 0; depth < maxDesktopSearchDepth; depth++ {
		tree, err := xproto.QueryTree(conn, win).Reply()
		if err != nil {
			break
		}

		matched := false
		for _, child := range tree.Children {
			attrs, err := xproto.GetWindowAttributes(conn, child).Reply()
			if err != nil {
				continue
			}
			if attrs.MapState != xproto.MapStateViewable || attrs.OverrideRedirect {
				continue
			}
			geom, err := xproto.GetGeometry(conn, xproto.Drawable(child)).Reply()
			if err != nil {
				continue
			}
			if int(geom.Width) == w && int(geom.Height) == h {
				win = child
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}

	return win
}

// TopParent walks from child up to the top-level window directly beneath the
// virtual root. Returns the child itself when it is the root or none.
func (c *Connection) TopParent(child xproto.Window) xproto.Window {
	root := c.VirtualRoot()
	if child == 0 || child == root {
		return child
	}

	conn := c.XUtil.Conn()
	cur := child
	for {
		tree, err := xproto.QueryTree(conn, cur).Reply()
		if err != nil {
			break
		}
		if tree.Parent == root || tree.Parent == 0 {
			break
		}
		cur = tree.Parent
	}
	return cur
}

// windowListProperty reads a WINDOW-array property, returning nil when the
// property is absent or malformed.
func (c *Connection) windowListProperty(win xproto.Window, atom xproto.Atom) []xproto.Window {
	conn := c.XUtil.Conn()
	reply, err := xproto.GetProperty(conn, false, win, atom,
		xproto.AtomWindow, 0, (1<<32-1)/4).Reply()
	if err != nil || reply == nil {
		return nil
	}
	if reply.Type != xproto.AtomWindow || reply.Format != 32 || reply.ValueLen == 0 {
		return nil
	}

	windows := make([]xproto.Window, 0, reply.ValueLen)
	for i := 0; i < int(reply.ValueLen); i++ {
		windows = append(windows, xproto.Window(xgb.Get32(reply.Value[i*4:])))
	}
	return windows
}

// cardinalProperty reads a single CARDINAL value, reporting whether the
// property was present and well-formed.
func (c *Connection) cardinalProperty(win xproto.Window, atom xproto.Atom) (uint32, bool) {
	conn := c.XUtil.Conn()
	reply, err := xproto.GetProperty(conn, false, win, atom,
		xproto.AtomCardinal, 0, 1).Reply()
	if err != nil || reply == nil {
		return 0, false
	}
	if reply.Type != xproto.AtomCardinal || reply.Format != 32 || reply.ValueLen != 1 {
		return 0, false
	}
	return xgb.Get32(reply.Value), true
}
