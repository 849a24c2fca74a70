package input

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/j3din00b/conky/internal/config"
	"github.com/j3din00b/conky/internal/geometry"
	"github.com/j3din00b/conky/internal/x11"
)

// Backend is an input-event source. HandleEvent consumes events the
// backend takes for itself and reports whether the event was taken;
// everything else flows on to the daemon's regular dispatch.
type Backend interface {
	HandleEvent(ev xgb.Event) bool
	Close()
}

// New sets up input-event delivery on the overlay and the root. The
// XInput2 version is negotiated and logged when present, but selection
// always goes through the core protocol since the wire library
// cannot carry the extension's generic events. selfOwned says whether the
// overlay owns its surface; click-through desktop-type windows and
// not-self-owned surfaces get their button selection on the root instead.
// geom reports the overlay's current geometry for pointer filtering.
func New(conn *x11.Connection, overlay xproto.Window, geom func() geometry.Rect,
	cfg config.InputConfig, winType string, selfOwned bool) Backend {

	if major, minor, err := queryXIVersion(conn); err != nil {
		log.Debug("XInput2 not negotiated: ", err)
	} else {
		log.WithField("version", fmt.Sprintf("%d.%d", major, minor)).
			Debug("XInput2 present, selecting events through the core protocol")
	}
	return newCoreBackend(conn, overlay, geom, cfg, winType, selfOwned)
}
