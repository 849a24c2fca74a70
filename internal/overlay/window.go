package overlay

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	log "github.com/sirupsen/logrus"

	"github.com/j3din00b/conky/internal/config"
	"github.com/j3din00b/conky/internal/geometry"
	"github.com/j3din00b/conky/internal/x11"
)

// Pseudo-transparency must mark every ancestor; fifty levels is far beyond
// any real window-manager frame depth.
const maxAncestorWalk = 50

// Window is the overlay window on screen. Override windows live as children
// of the desktop window, below everything, invisible to the window manager.
// All other types are regular top-level windows negotiated with the window
// manager through hints.
type Window struct {
	conn *x11.Connection

	ID      xproto.Window
	Root    xproto.Window
	Desktop xproto.Window

	Geometry geometry.Rect
	Override bool

	depth    byte
	visual   xproto.Visualid
	colormap xproto.Colormap

	warnedStruts bool
}

// Create builds the overlay window according to the window configuration,
// placed by the alignment inside the workarea. The window is created mapped
// and lowered; the caller owns rendering into it.
func Create(conn *x11.Connection, cfg *config.Config, policy Policy) (*Window, error) {
	align, err := geometry.ParseAlignment(cfg.Alignment)
	if err != nil {
		return nil, err
	}
	hints, err := ParseHints(cfg.Window.Hints)
	if err != nil {
		return nil, err
	}

	root, desktop := conn.ResolveDesktop(cfg.Head)

	w := &Window{
		conn:    conn,
		Root:    root,
		Desktop: desktop,
	}

	workarea := conn.Workarea(cfg.Head)

	// A zero-sized window is a protocol error; bump to a sane minimum so
	// the window exists and can grow once content is known.
	width, height := cfg.Window.Width, cfg.Window.Height
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	w.Geometry = geometry.Place(width, height, workarea, align, cfg.GapX, cfg.GapY)

	if cfg.Window.Type == "override" {
		err = w.createOverride(cfg)
	} else {
		err = w.createManaged(cfg, policy, hints)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Window.Transparency == "pseudo" {
		w.applyPseudoTransparency()
	}

	xproto.MapWindow(conn.XUtil.Conn(), w.ID)
	w.lower()

	log.WithFields(log.Fields{
		"window": fmt.Sprintf("0x%x", w.ID),
		"type":   cfg.Window.Type,
		"x":      w.Geometry.X,
		"y":      w.Geometry.Y,
		"w":      w.Geometry.Width,
		"h":      w.Geometry.Height,
	}).Info("Created overlay window")

	return w, nil
}

// createOverride makes a window the window manager never sees: a child of
// the desktop with override-redirect set, drawn directly over the wallpaper.
func (w *Window) createOverride(cfg *config.Config) (err error) {
	conn := w.conn.XUtil.Conn()

	w.ID, err = xproto.NewWindowId(conn)
	if err != nil {
		return fmt.Errorf("can't allocate window id: %w", err)
	}
	w.Override = true
	w.depth = xproto.WindowClassCopyFromParent
	w.visual = w.conn.XUtil.Screen().RootVisual

	err = xproto.CreateWindowChecked(conn, xproto.WindowClassCopyFromParent,
		w.ID, w.Desktop,
		int16(w.Geometry.X), int16(w.Geometry.Y),
		uint16(w.Geometry.Width), uint16(w.Geometry.Height),
		0, xproto.WindowClassInputOutput, w.visual,
		xproto.CwBackPixmap|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{
			xproto.BackPixmapParentRelative,
			1,
			xproto.EventMaskExposure | xproto.EventMaskStructureNotify,
		}).Check()
	if err != nil {
		return fmt.Errorf("can't create override window: %w", err)
	}
	return nil
}

// createManaged makes a regular top-level window and negotiates its role
// with the window manager through ICCCM and EWMH properties.
func (w *Window) createManaged(cfg *config.Config, policy Policy, hints Hint) (err error) {
	xu := w.conn.XUtil
	conn := xu.Conn()
	screen := xu.Screen()

	w.ID, err = xproto.NewWindowId(conn)
	if err != nil {
		return fmt.Errorf("can't allocate window id: %w", err)
	}

	// Docks and panels attach to a screen edge; the window manager places
	// them from the origin.
	if cfg.Window.Type == "dock" || cfg.Window.Type == "panel" {
		w.Geometry.X, w.Geometry.Y = 0, 0
	}

	w.depth = screen.RootDepth
	w.visual = screen.RootVisual

	var (
		mask   uint32
		values []uint32
	)
	if cfg.Window.Transparency == "argb" {
		if visual, ok := findARGBVisual(screen); ok {
			w.depth = 32
			w.visual = visual
			w.colormap, err = xproto.NewColormapId(conn)
			if err != nil {
				return fmt.Errorf("can't allocate colormap id: %w", err)
			}
			xproto.CreateColormap(conn, xproto.ColormapAllocNone,
				w.colormap, screen.Root, w.visual)

			pixel := uint32(cfg.Window.Alpha)<<24 | cfg.Window.Background&0xffffff
			mask = xproto.CwBackPixel | xproto.CwBorderPixel |
				xproto.CwEventMask | xproto.CwColormap
			values = []uint32{
				pixel,
				0,
				xproto.EventMaskExposure | xproto.EventMaskStructureNotify,
				uint32(w.colormap),
			}
		} else {
			log.Warn("No ARGB visual found, disabling true transparency")
		}
	}
	if mask == 0 {
		mask = xproto.CwBackPixel | xproto.CwEventMask
		values = []uint32{
			cfg.Window.Background & 0xffffff,
			xproto.EventMaskExposure | xproto.EventMaskStructureNotify,
		}
	}

	err = xproto.CreateWindowChecked(conn, w.depth, w.ID, screen.Root,
		int16(w.Geometry.X), int16(w.Geometry.Y),
		uint16(w.Geometry.Width), uint16(w.Geometry.Height),
		0, xproto.WindowClassInputOutput, w.visual, mask, values).Check()
	if err != nil {
		return fmt.Errorf("can't create window: %w", err)
	}

	w.setManagedProps(cfg, policy, hints)
	return nil
}

func (w *Window) setManagedProps(cfg *config.Config, policy Policy, hints Hint) {
	xu := w.conn.XUtil

	wmHints := icccm.Hints{
		Flags:        icccm.HintInput | icccm.HintState,
		Input:        1,
		InitialState: icccm.StateNormal,
	}
	if hints.Has(HintUndecorated) {
		wmHints.Input = 0
	}
	isDock := cfg.Window.Type == "dock" || cfg.Window.Type == "panel"
	if isDock && policy.WithdrawnStart(w.conn.WMName) {
		// Slit-style window managers adopt docks only from the
		// withdrawn state.
		wmHints.InitialState = icccm.StateWithdrawn
	}
	if err := icccm.WmHintsSet(xu, w.ID, &wmHints); err != nil {
		log.Debug("Cannot set WM hints: ", err)
	}

	class := icccm.WmClass{Instance: cfg.Window.Title, Class: cfg.Window.Class}
	if err := icccm.WmClassSet(xu, w.ID, &class); err != nil {
		log.Debug("Cannot set WM class: ", err)
	}

	if err := icccm.WmNameSet(xu, w.ID, cfg.Window.Title); err != nil {
		log.Debug("Cannot set WM name: ", err)
	}
	if err := ewmh.WmNameSet(xu, w.ID, cfg.Window.Title); err != nil {
		log.Debug("Cannot set EWMH name: ", err)
	}

	typeAtom := windowTypeAtom(cfg.Window.Type)
	if err := ewmh.WmWindowTypeSet(xu, w.ID, []string{typeAtom}); err != nil {
		log.Debug("Cannot set window type: ", err)
	}

	w.applyHints(hints)
}

// applyPseudoTransparency sets a parent-relative background on the window
// and every ancestor up to the root, so the wallpaper shows through.
func (w *Window) applyPseudoTransparency() {
	conn := w.conn.XUtil.Conn()

	cur := w.ID
	for i := 0; i < maxAncestorWalk && cur != w.Root && cur != 0; i++ {
		xproto.ChangeWindowAttributes(conn, cur,
			xproto.CwBackPixmap, []uint32{xproto.BackPixmapParentRelative})

		tree, err := xproto.QueryTree(conn, cur).Reply()
		if err != nil {
			break
		}
		cur = tree.Parent
	}
}

// MoveResize repositions the window and records the new geometry.
func (w *Window) MoveResize(r geometry.Rect) {
	conn := w.conn.XUtil.Conn()
	xproto.ConfigureWindow(conn, w.ID,
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{
			uint32(r.X), uint32(r.Y),
			uint32(r.Width), uint32(r.Height),
		})
	w.Geometry = r
}

// SyncGeometry updates the recorded geometry from a ConfigureNotify,
// keeping strut computation in sync with where the window manager actually
// put us.
func (w *Window) SyncGeometry(x, y, width, height int) {
	w.Geometry = geometry.Rect{X: x, Y: y, Width: width, Height: height}
}

// Destroy releases the window and all server resources backing it. Safe to
// call more than once.
func (w *Window) Destroy() error {
	if w == nil || w.ID == 0 {
		return nil
	}
	conn := w.conn.XUtil.Conn()
	err := xproto.DestroyWindowChecked(conn, w.ID).Check()
	if w.colormap != 0 {
		xproto.FreeColormap(conn, w.colormap)
	}
	w.ID = 0
	w.colormap = 0
	if err != nil {
		return fmt.Errorf("can't destroy overlay window: %w", err)
	}
	return nil
}

// findARGBVisual scans the screen's visuals for a 32-bit true-color visual
// with the standard 8-bit channel masks.
func findARGBVisual(screen *xproto.ScreenInfo) (xproto.Visualid, bool) {
	for _, depth := range screen.AllowedDepths {
		if depth.Depth != 32 {
			continue
		}
		for _, v := range depth.Visuals {
			if v.Class != xproto.VisualClassTrueColor {
				continue
			}
			if v.RedMask == 0xff0000 && v.GreenMask == 0xff00 && v.BlueMask == 0xff {
				return v.VisualId, true
			}
		}
	}
	return 0, false
}
