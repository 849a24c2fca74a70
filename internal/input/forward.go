package input

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/j3din00b/conky/internal/x11"
)

// Forwarder re-delivers input events that land on the overlay to whatever
// the user would have hit if the overlay were not there: the topmost managed
// window under the pointer, or the desktop window when nothing else is.
type Forwarder struct {
	conn    *x11.Connection
	overlay xproto.Window
	root    xproto.Window
	desktop xproto.Window
	eager   bool
}

func NewForwarder(conn *x11.Connection, overlay, root, desktop xproto.Window, eager bool) *Forwarder {
	return &Forwarder{
		conn:    conn,
		overlay: overlay,
		root:    root,
		desktop: desktop,
		eager:   eager,
	}
}

// Propagate forwards the event to the window beneath the overlay. Only the
// seven pointer and key event kinds are forwardable; anything else reports
// false and is left to the regular dispatch. A button press also moves input
// focus to the target, since the synthetic event alone does not.
func (f *Forwarder) Propagate(ev xgb.Event) bool {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		target, x, y := f.resolveTarget(int(e.RootX), int(e.RootY))
		e.Event, e.EventX, e.EventY = target, x, y
		e.Time = xproto.TimeCurrentTime
		f.send(target, xproto.EventMaskKeyPress, e.Bytes(), false)
	case xproto.KeyReleaseEvent:
		target, x, y := f.resolveTarget(int(e.RootX), int(e.RootY))
		e.Event, e.EventX, e.EventY = target, x, y
		e.Time = xproto.TimeCurrentTime
		f.send(target, xproto.EventMaskKeyRelease, e.Bytes(), false)
	case xproto.ButtonPressEvent:
		target, x, y := f.resolveTarget(int(e.RootX), int(e.RootY))
		e.Event, e.EventX, e.EventY = target, x, y
		e.Time = xproto.TimeCurrentTime
		f.send(target, xproto.EventMaskButtonPress, e.Bytes(), true)
	case xproto.ButtonReleaseEvent:
		target, x, y := f.resolveTarget(int(e.RootX), int(e.RootY))
		e.Event, e.EventX, e.EventY = target, x, y
		e.Time = xproto.TimeCurrentTime
		f.send(target, releaseMask(e.Detail), e.Bytes(), false)
	case xproto.MotionNotifyEvent:
		target, x, y := f.resolveTarget(int(e.RootX), int(e.RootY))
		e.Event, e.EventX, e.EventY = target, x, y
		e.Time = xproto.TimeCurrentTime
		f.send(target, xproto.EventMaskPointerMotion, e.Bytes(), false)
	case xproto.EnterNotifyEvent:
		target, x, y := f.resolveTarget(int(e.RootX), int(e.RootY))
		e.Event, e.EventX, e.EventY = target, x, y
		e.Time = xproto.TimeCurrentTime
		f.send(target, xproto.EventMaskEnterWindow, e.Bytes(), false)
	case xproto.LeaveNotifyEvent:
		target, x, y := f.resolveTarget(int(e.RootX), int(e.RootY))
		e.Event, e.EventX, e.EventY = target, x, y
		e.Time = xproto.TimeCurrentTime
		f.send(target, xproto.EventMaskLeaveWindow, e.Bytes(), false)
	default:
		return false
	}
	return true
}

// resolveTarget picks the forwarding destination for a root-relative point
// and rebases the coordinates into the target's space. The desktop window
// is the fallback target, so clicks through the overlay always land
// somewhere sensible.
func (f *Forwarder) resolveTarget(rootX, rootY int) (xproto.Window, int16, int16) {
	target := f.desktop
	if top := f.conn.TopWindowAt(rootX, rootY, f.overlay, f.eager); top != 0 {
		// Client-list hits can be the inner client window; lift to the
		// top-level ancestor under the virtual root so the synthetic
		// event enters through the same window a real one would.
		target = f.conn.TopParent(top)
	}

	x, y := int16(rootX), int16(rootY)
	conn := f.conn.XUtil.Conn()
	tr, err := xproto.TranslateCoordinates(conn, f.root, target,
		int16(rootX), int16(rootY)).Reply()
	if err == nil {
		x, y = tr.DstX, tr.DstY
	}
	return target, x, y
}

func (f *Forwarder) send(target xproto.Window, mask uint32, raw []byte, focus bool) {
	conn := f.conn.XUtil.Conn()

	// An implicit pointer grab from the press on the overlay would swallow
	// the forwarded event.
	xproto.UngrabPointer(conn, xproto.TimeCurrentTime)

	// Propagate is set so an event the target did not select for walks up
	// the ancestor chain until a window that did select it takes delivery.
	xproto.SendEvent(conn, true, target, mask, string(raw))
	if focus {
		xproto.SetInputFocus(conn, xproto.InputFocusParent, target,
			xproto.TimeCurrentTime)
	}
	log.WithFields(log.Fields{
		"target": target,
		"mask":   mask,
	}).Trace("Forwarded input event")
}

// releaseMask is the delivery mask of a button-release event; the server
// also delivers releases to clients holding the matching button-motion mask.
func releaseMask(button xproto.Button) uint32 {
	mask := uint32(xproto.EventMaskButtonRelease)
	switch button {
	case 1:
		mask |= xproto.EventMaskButton1Motion
	case 2:
		mask |= xproto.EventMaskButton2Motion
	case 3:
		mask |= xproto.EventMaskButton3Motion
	case 4:
		mask |= xproto.EventMaskButton4Motion
	case 5:
		mask |= xproto.EventMaskButton5Motion
	}
	return mask
}
