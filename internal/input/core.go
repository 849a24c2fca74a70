package input

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/j3din00b/conky/internal/config"
	"github.com/j3din00b/conky/internal/geometry"
	"github.com/j3din00b/conky/internal/x11"
)

// coreBackend is the core-protocol input path: it selects plain X event
// masks on the overlay window and the root. Where the events land depends
// on who owns the surface: a self-owned interactive window takes button
// events itself, while click-through and not-self-owned overlays leave
// button selection to the root so clicks are still observed.
type coreBackend struct {
	conn *x11.Connection
	root xproto.Window
	geom func() geometry.Rect
}

func newCoreBackend(conn *x11.Connection, overlay xproto.Window,
	geom func() geometry.Rect, cfg config.InputConfig,
	winType string, selfOwned bool) *coreBackend {

	b := &coreBackend{conn: conn, root: conn.Root, geom: geom}
	c := conn.XUtil.Conn()

	clickThrough := winType == "desktop"
	xproto.ChangeWindowAttributes(c, overlay, xproto.CwEventMask,
		[]uint32{overlayEventMask(cfg.MouseEvents, clickThrough, selfOwned)})
	xproto.ChangeWindowAttributes(c, conn.Root, xproto.CwEventMask,
		[]uint32{rootEventMask(cfg.MouseEvents, clickThrough, selfOwned)})

	log.Debug("Using core-protocol input handling")
	return b
}

// HandleEvent drops root-level pointer motion outside the overlay; it is
// selection noise from the root mask, not input the overlay should react
// to. Everything else flows on to the regular dispatch.
func (b *coreBackend) HandleEvent(ev xgb.Event) bool {
	if e, ok := ev.(xproto.MotionNotifyEvent); ok {
		if e.Event == b.root && !b.geom().Contains(int(e.RootX), int(e.RootY)) {
			return true
		}
	}
	return false
}

// Close resets the root selection to the property-change mask other
// components rely on, dropping any motion or button selection this
// backend added.
func (b *coreBackend) Close() {
	xproto.ChangeWindowAttributes(b.conn.XUtil.Conn(), b.root, xproto.CwEventMask,
		[]uint32{uint32(xproto.EventMaskPropertyChange)})
}

// overlayEventMask is the event selection on the overlay window itself.
// Button selection belongs here only for a self-owned interactive window;
// a click-through window must not intercept presses. Motion tracking is
// opt-in and never applies to click-through windows, which cover the whole
// screen and would swamp the loop.
func overlayEventMask(mouseEvents, clickThrough, selfOwned bool) uint32 {
	mask := uint32(xproto.EventMaskExposure | xproto.EventMaskPropertyChange)
	if selfOwned {
		mask |= xproto.EventMaskStructureNotify
		if !clickThrough {
			mask |= xproto.EventMaskButtonPress |
				xproto.EventMaskButtonRelease
		}
	}
	if mouseEvents && !clickThrough {
		mask |= xproto.EventMaskPointerMotion |
			xproto.EventMaskEnterWindow |
			xproto.EventMaskLeaveWindow
	}
	return mask
}

// rootEventMask is the selection on the root window: property changes feed
// the desktop cache; button press/release moves to the root when the
// overlay cannot take it itself, so clicks over a click-through or
// not-self-owned surface are still observed.
func rootEventMask(mouseEvents, clickThrough, selfOwned bool) uint32 {
	mask := uint32(xproto.EventMaskPropertyChange)
	if clickThrough || !selfOwned {
		mask |= xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease
	}
	if mouseEvents {
		mask |= xproto.EventMaskPointerMotion
	}
	return mask
}
