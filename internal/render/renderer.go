package render

import (
	"fmt"

	"github.com/jezek/xgb/xproto"

	"github.com/j3din00b/conky/internal/geometry"
	"github.com/j3din00b/conky/internal/x11"
)

// Core-font metrics used for layout. The server fonts below are all close
// to these cell sizes; exact metrics would need font queries for no visible
// gain on a status overlay.
const (
	lineHeight = 16
	charWidth  = 7
	paddingX   = 10
	paddingY   = 8
)

var fontNames = []string{"fixed", "9x15", "8x13", "6x13"}

// Renderer draws text lines into the overlay window using a server-side
// core font. It owns a graphics context and an open font, both released by
// Close.
type Renderer struct {
	conn   *x11.Connection
	win    xproto.Window
	gc     xproto.Gcontext
	font   xproto.Font
	fg, bg uint32
}

// New creates a renderer for the window. The first available font from the
// core-font candidates is used; failure to open any of them is an error
// since the overlay would be permanently blank.
func New(conn *x11.Connection, win xproto.Window, fg, bg uint32) (*Renderer, error) {
	c := conn.XUtil.Conn()

	font, err := xproto.NewFontId(c)
	if err != nil {
		return nil, fmt.Errorf("can't allocate font id: %w", err)
	}
	opened := false
	for _, name := range fontNames {
		if xproto.OpenFontChecked(c, font, uint16(len(name)), name).Check() == nil {
			opened = true
			break
		}
	}
	if !opened {
		return nil, fmt.Errorf("%w: no core font available (tried %v)",
			x11.ErrResourceUnavailable, fontNames)
	}

	gc, err := xproto.NewGcontextId(c)
	if err != nil {
		xproto.CloseFont(c, font)
		return nil, fmt.Errorf("can't allocate gc id: %w", err)
	}
	err = xproto.CreateGCChecked(c, gc, xproto.Drawable(win),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{fg, bg, uint32(font), 0}).Check()
	if err != nil {
		xproto.FreeGC(c, gc)
		xproto.CloseFont(c, font)
		return nil, fmt.Errorf("can't create gc: %w", err)
	}

	return &Renderer{conn: conn, win: win, gc: gc, font: font, fg: fg, bg: bg}, nil
}

// Draw clears the window and renders the lines top to bottom. Lines longer
// than the protocol's single-request limit are truncated.
func (r *Renderer) Draw(lines []string) {
	c := r.conn.XUtil.Conn()

	xproto.ClearArea(c, false, r.win, 0, 0, 0, 0)

	y := int16(paddingY + lineHeight - 4)
	for _, line := range lines {
		if line != "" {
			text := line
			if len(text) > 255 {
				text = text[:255]
			}
			xproto.ImageText8(c, byte(len(text)), xproto.Drawable(r.win),
				r.gc, paddingX, y, text)
		}
		y += lineHeight
	}
}

// SetColors updates the drawing colours on the live graphics context,
// used when the resource database changes under a running overlay.
func (r *Renderer) SetColors(fg, bg uint32) {
	if r.gc == 0 {
		return
	}
	r.fg, r.bg = fg, bg
	xproto.ChangeGC(r.conn.XUtil.Conn(), r.gc,
		xproto.GcForeground|xproto.GcBackground, []uint32{fg, bg})
}

// Measure computes the window size needed to show the lines with padding.
func Measure(lines []string) geometry.Rect {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	return geometry.Rect{
		Width:  maxLen*charWidth + 2*paddingX,
		Height: len(lines)*lineHeight + 2*paddingY,
	}
}

// Close releases the server resources. Safe to call twice.
func (r *Renderer) Close() error {
	if r == nil || r.gc == 0 {
		return nil
	}
	c := r.conn.XUtil.Conn()
	err := xproto.FreeGCChecked(c, r.gc).Check()
	if ferr := xproto.CloseFontChecked(c, r.font).Check(); err == nil {
		err = ferr
	}
	r.gc = 0
	r.font = 0
	if err != nil {
		return fmt.Errorf("can't release render resources: %w", err)
	}
	return nil
}
