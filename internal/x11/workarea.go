package x11

import (
	"github.com/jezek/xgb/xinerama"
	log "github.com/sirupsen/logrus"

	"github.com/j3din00b/conky/internal/geometry"
)

// Workarea computes the usable screen region. The default is the full
// display; when Xinerama is present and active and head selects a valid
// output, the workarea becomes exactly that head's rectangle. Any failure
// along the way logs one warning and falls back to the full display.
//
// Callers must recompute the workarea whenever head configuration could have
// changed, in particular before computing strut placement.
func (c *Connection) Workarea(head int) geometry.Rect {
	w, h := c.DisplaySize()
	full := geometry.Rect{X: 0, Y: 0, Width: w, Height: h}

	if head < 0 {
		return full
	}

	conn := c.XUtil.Conn()
	if err := xinerama.Init(conn); err != nil {
		log.Warn("warning: Xinerama is not available, ignoring head settings")
		return full
	}

	active, err := xinerama.IsActive(conn).Reply()
	if err != nil || active.State == 0 {
		log.Warn("warning: Xinerama is inactive, ignoring head settings")
		return full
	}

	screens, err := xinerama.QueryScreens(conn).Reply()
	if err != nil || len(screens.ScreenInfo) == 0 {
		log.Warn("warning: Xinerama screen query failed, ignoring head settings")
		return full
	}

	if head >= len(screens.ScreenInfo) {
		log.Warn("warning: invalid head index, ignoring head settings")
		return full
	}

	si := screens.ScreenInfo[head]
	rect := geometry.Rect{
		X:      int(si.XOrg),
		Y:      int(si.YOrg),
		Width:  int(si.Width),
		Height: int(si.Height),
	}
	rect = geometry.ClampInto(rect, full)

	log.WithFields(log.Fields{
		"head": head,
		"x":    rect.X,
		"y":    rect.Y,
		"w":    rect.Width,
		"h":    rect.Height,
	}).Debug("Fixed workarea to Xinerama head")

	return rect
}
