package geometry

import "fmt"

// Alignment names one of the nine anchor positions of the overlay inside the
// workarea, or none for a free-floating window.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignTopLeft
	AlignTopMiddle
	AlignTopRight
	AlignMiddleLeft
	AlignMiddleMiddle
	AlignMiddleRight
	AlignBottomLeft
	AlignBottomMiddle
	AlignBottomRight
)

var alignNames = map[string]Alignment{
	"none":          AlignNone,
	"top_left":      AlignTopLeft,
	"top_middle":    AlignTopMiddle,
	"top_right":     AlignTopRight,
	"middle_left":   AlignMiddleLeft,
	"middle_middle": AlignMiddleMiddle,
	"middle_right":  AlignMiddleRight,
	"bottom_left":   AlignBottomLeft,
	"bottom_middle": AlignBottomMiddle,
	"bottom_right":  AlignBottomRight,
}

// ParseAlignment maps a configuration string like "top_left" to an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	if s == "" {
		return AlignTopLeft, nil
	}
	if a, ok := alignNames[s]; ok {
		return a, nil
	}
	return AlignNone, fmt.Errorf("unknown alignment %q", s)
}

func (a Alignment) String() string {
	for name, v := range alignNames {
		if v == a {
			return name
		}
	}
	return "none"
}

// Top reports whether the alignment anchors to the top edge.
func (a Alignment) Top() bool {
	return a == AlignTopLeft || a == AlignTopMiddle || a == AlignTopRight
}

// Bottom reports whether the alignment anchors to the bottom edge.
func (a Alignment) Bottom() bool {
	return a == AlignBottomLeft || a == AlignBottomMiddle || a == AlignBottomRight
}

// Left reports whether the alignment anchors to the left edge.
func (a Alignment) Left() bool {
	return a == AlignTopLeft || a == AlignMiddleLeft || a == AlignBottomLeft
}

// Right reports whether the alignment anchors to the right edge.
func (a Alignment) Right() bool {
	return a == AlignTopRight || a == AlignMiddleRight || a == AlignBottomRight
}

// Edged reports whether the alignment touches any screen edge at all.
// Middle/none alignments cannot reserve screen space.
func (a Alignment) Edged() bool {
	return a != AlignNone && a != AlignMiddleMiddle
}

// Place positions a window of the given size inside the workarea according to
// the alignment, keeping gapX/gapY pixels away from the anchored edges. The
// result is clamped into the workarea.
func Place(width, height int, workarea Rect, a Alignment, gapX, gapY int) Rect {
	r := Rect{Width: width, Height: height}

	switch {
	case a.Left():
		r.X = workarea.X + gapX
	case a.Right():
		r.X = workarea.EndX() - width - gapX
	default:
		r.X = workarea.X + (workarea.Width-width)/2
	}

	switch {
	case a.Top():
		r.Y = workarea.Y + gapY
	case a.Bottom():
		r.Y = workarea.EndY() - height - gapY
	default:
		r.Y = workarea.Y + (workarea.Height-height)/2
	}

	if a == AlignNone {
		r.X = workarea.X + gapX
		r.Y = workarea.Y + gapY
	}

	return ClampInto(r, workarea)
}
