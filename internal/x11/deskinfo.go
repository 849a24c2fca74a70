package x11

import (
	"strings"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/xprop"
	log "github.com/sirupsen/logrus"
)

// DesktopState is the cached view of the window manager's virtual-desktop
// configuration. Current is 1-based; AllNames is the raw NUL-delimited name
// list as published by the window manager.
type DesktopState struct {
	Current  int
	Count    int
	AllNames string
	Name     string
}

// DesktopCache tracks desktop index, count and names via the EWMH root
// properties, refreshed on property-change notifications. Reads that find
// the property absent or malformed leave the corresponding field unchanged,
// preserving last-known-good state.
type DesktopCache struct {
	conn *Connection

	atomCurrent xproto.Atom
	atomNumber  xproto.Atom
	atomNames   xproto.Atom
	atomUTF8    xproto.Atom

	State DesktopState
}

// NewDesktopCache performs cold-start initialization: the three well-known
// atoms are resolved once, all fields are read, and PropertyChangeMask is
// ensured on the root window so later changes are delivered.
func NewDesktopCache(c *Connection) *DesktopCache {
	dc := &DesktopCache{
		conn:  c,
		State: DesktopState{Current: 1, Count: 1},
	}

	dc.atomCurrent = internExisting(c, "_NET_CURRENT_DESKTOP")
	dc.atomNumber = internExisting(c, "_NET_NUMBER_OF_DESKTOPS")
	dc.atomNames = internExisting(c, "_NET_DESKTOP_NAMES")
	dc.atomUTF8 = internExisting(c, "UTF8_STRING")

	dc.readCurrent()
	dc.readNumber()
	dc.readNames()
	dc.State.Name = currentDesktopName(dc.State.AllNames, dc.State.Current)

	dc.ensureRootPropertyMask()
	return dc
}

// Refresh re-reads the field backing the changed property. A change to
// either the current index or the name list also recomputes the derived
// current name, since both are inputs of that derivation.
func (dc *DesktopCache) Refresh(changed xproto.Atom) {
	switch changed {
	case dc.atomCurrent:
		dc.readCurrent()
		dc.State.Name = currentDesktopName(dc.State.AllNames, dc.State.Current)
	case dc.atomNumber:
		dc.readNumber()
	case dc.atomNames:
		dc.readNames()
		dc.State.Name = currentDesktopName(dc.State.AllNames, dc.State.Current)
	}
}

// Watches reports whether the atom belongs to this cache.
func (dc *DesktopCache) Watches(atom xproto.Atom) bool {
	if atom == 0 {
		return false
	}
	return atom == dc.atomCurrent || atom == dc.atomNumber || atom == dc.atomNames
}

func (dc *DesktopCache) readCurrent() {
	if dc.atomCurrent == 0 {
		return
	}
	if v, ok := dc.conn.cardinalProperty(dc.conn.Root, dc.atomCurrent); ok {
		dc.State.Current = int(v) + 1
	}
}

func (dc *DesktopCache) readNumber() {
	if dc.atomNumber == 0 {
		return
	}
	if v, ok := dc.conn.cardinalProperty(dc.conn.Root, dc.atomNumber); ok {
		dc.State.Count = int(v)
	}
}

func (dc *DesktopCache) readNames() {
	if dc.atomNames == 0 || dc.atomUTF8 == 0 {
		return
	}
	conn := dc.conn.XUtil.Conn()
	reply, err := xproto.GetProperty(conn, false, dc.conn.Root, dc.atomNames,
		dc.atomUTF8, 0, (1<<32-1)/4).Reply()
	if err != nil || reply == nil {
		return
	}
	if reply.Type != dc.atomUTF8 || reply.Format != 8 || reply.ValueLen == 0 {
		return
	}
	dc.State.AllNames = string(reply.Value[:reply.ValueLen])
}

// ensureRootPropertyMask adds PropertyChangeMask to the root window's event
// mask if not already selected, without clobbering existing selections.
func (dc *DesktopCache) ensureRootPropertyMask() {
	conn := dc.conn.XUtil.Conn()
	attrs, err := xproto.GetWindowAttributes(conn, dc.conn.Root).Reply()
	if err != nil {
		log.Debug("Cannot query root event mask: ", err)
		return
	}
	if attrs.YourEventMask&xproto.EventMaskPropertyChange != 0 {
		return
	}
	mask := attrs.YourEventMask | xproto.EventMaskPropertyChange
	xproto.ChangeWindowAttributes(conn, dc.conn.Root,
		xproto.CwEventMask, []uint32{mask})
}

// currentDesktopName derives the name of the 1-based current desktop from
// the NUL-delimited name list. An index beyond the list yields "".
func currentDesktopName(names string, current int) string {
	if current < 1 {
		return ""
	}
	var (
		count = 0
		start = 0
	)
	for i := 0; i < len(names); i++ {
		if names[i] != 0 {
			continue
		}
		count++
		if count == current {
			return names[start:i]
		}
		start = i + 1
	}
	// Tolerate a list without a trailing NUL.
	if start < len(names) && count+1 == current {
		return names[start:]
	}
	return ""
}

func internExisting(c *Connection, name string) xproto.Atom {
	atom, err := xprop.Atom(c.XUtil, name, true)
	if err != nil {
		log.WithField("atom", name).Debug("Atom not present: ",
			strings.TrimSpace(err.Error()))
		return 0
	}
	return atom
}
