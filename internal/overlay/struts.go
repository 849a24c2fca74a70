package overlay

import (
	"github.com/jezek/xgbutil/ewmh"
	log "github.com/sirupsen/logrus"

	"github.com/j3din00b/conky/internal/geometry"
)

// Strut slot indices of the _NET_WM_STRUT_PARTIAL property.
const (
	strutLeft = iota
	strutRight
	strutTop
	strutBottom
	strutLeftStartY
	strutLeftEndY
	strutRightStartY
	strutRightEndY
	strutTopStartX
	strutTopEndX
	strutBottomStartX
	strutBottomEndX
	strutCount
)

type strutEdge int

const (
	edgeNone strutEdge = iota
	edgeLeft
	edgeRight
	edgeTop
	edgeBottom
)

// ComputeStruts builds the 12-slot strut array reserving screen space for a
// window at win, for a display of dispW x dispH pixels. Middle and none
// alignments reserve nothing.
//
// Window managers on the cutout list handle partial struts well enough that
// the reserved edge can follow the window's shape: a wide window cuts a
// horizontal band, a tall one a vertical band. Elsewhere the edge is chosen
// conservatively, picking whichever anchored edge loses the least screen
// space, since over-wide reservations are the common failure mode.
func ComputeStruts(win geometry.Rect, dispW, dispH int, align geometry.Alignment, cutout bool) [strutCount]uint32 {
	var struts [strutCount]uint32
	if !align.Edged() {
		return struts
	}

	edge := edgeNone
	if cutout {
		edge = shapedEdge(win, align)
	} else {
		edge = cheapestEdge(win, dispW, dispH)
	}

	switch edge {
	case edgeLeft:
		struts[strutLeft] = clampDim(win.EndX(), dispW)
		struts[strutLeftStartY] = clampDim(win.Y, dispH)
		struts[strutLeftEndY] = clampDim(win.EndY(), dispH)
	case edgeRight:
		struts[strutRight] = clampDim(dispW-win.X, dispW)
		struts[strutRightStartY] = clampDim(win.Y, dispH)
		struts[strutRightEndY] = clampDim(win.EndY(), dispH)
	case edgeTop:
		struts[strutTop] = clampDim(win.EndY(), dispH)
		struts[strutTopStartX] = clampDim(win.X, dispW)
		struts[strutTopEndX] = clampDim(win.EndX(), dispW)
	case edgeBottom:
		struts[strutBottom] = clampDim(dispH-win.Y, dispH)
		struts[strutBottomStartX] = clampDim(win.X, dispW)
		struts[strutBottomEndX] = clampDim(win.EndX(), dispW)
	}

	return struts
}

// shapedEdge picks the edge matching the window's orientation: a window
// wider than tall belongs to a horizontal edge, a tall one to a vertical
// edge, falling back to whatever edge the alignment anchors to.
func shapedEdge(win geometry.Rect, align geometry.Alignment) strutEdge {
	wide := win.Width > win.Height

	if wide {
		switch {
		case align.Top():
			return edgeTop
		case align.Bottom():
			return edgeBottom
		}
	}
	switch {
	case align.Left():
		return edgeLeft
	case align.Right():
		return edgeRight
	case align.Top():
		return edgeTop
	case align.Bottom():
		return edgeBottom
	}
	return edgeNone
}

// cheapestEdge is the conservative choice: the aspect ratio fixes the axis
// (horizontal edges for wide windows, vertical for tall, so near-square
// windows don't flip between reservations), then the edge with the least
// leftover space wins.
func cheapestEdge(win geometry.Rect, dispW, dispH int) strutEdge {
	if win.Width > win.Height {
		if win.EndY() <= dispH-win.Y {
			return edgeTop
		}
		return edgeBottom
	}
	if win.EndX() <= dispW-win.X {
		return edgeLeft
	}
	return edgeRight
}

func clampDim(v, dim int) uint32 {
	if v < 0 {
		return 0
	}
	if v > dim {
		return uint32(dim)
	}
	return uint32(v)
}

// ReserveSpace publishes both the legacy 4-value strut and the partial
// strut for the window's current geometry. Alignments that touch no edge
// cannot reserve space; the first such attempt logs a warning.
func (w *Window) ReserveSpace(align geometry.Alignment, cutout bool) {
	if !align.Edged() {
		if !w.warnedStruts {
			w.warnedStruts = true
			log.Warn("Struts can't be placed with middle alignment, ignoring")
		}
		return
	}

	dispW, dispH := w.conn.DisplaySize()
	s := ComputeStruts(w.Geometry, dispW, dispH, align, cutout)

	xu := w.conn.XUtil
	err := ewmh.WmStrutSet(xu, w.ID, &ewmh.WmStrut{
		Left:   uint(s[strutLeft]),
		Right:  uint(s[strutRight]),
		Top:    uint(s[strutTop]),
		Bottom: uint(s[strutBottom]),
	})
	if err != nil {
		log.Debug("Cannot set struts: ", err)
		return
	}
	err = ewmh.WmStrutPartialSet(xu, w.ID, &ewmh.WmStrutPartial{
		Left:         uint(s[strutLeft]),
		Right:        uint(s[strutRight]),
		Top:          uint(s[strutTop]),
		Bottom:       uint(s[strutBottom]),
		LeftStartY:   uint(s[strutLeftStartY]),
		LeftEndY:     uint(s[strutLeftEndY]),
		RightStartY:  uint(s[strutRightStartY]),
		RightEndY:    uint(s[strutRightEndY]),
		TopStartX:    uint(s[strutTopStartX]),
		TopEndX:      uint(s[strutTopEndX]),
		BottomStartX: uint(s[strutBottomStartX]),
		BottomEndX:   uint(s[strutBottomEndX]),
	})
	if err != nil {
		log.Debug("Cannot set partial struts: ", err)
	}
}
