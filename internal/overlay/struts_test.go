package overlay

import (
	"testing"

	"github.com/j3din00b/conky/internal/geometry"
)

const (
	dispW = 1920
	dispH = 1080
)

func TestComputeStrutsTopCutout(t *testing.T) {
	// A wide bar at the top reserves a horizontal band over its extent.
	win := geometry.Rect{X: 100, Y: 0, Width: 800, Height: 40}
	s := ComputeStruts(win, dispW, dispH, geometry.AlignTopLeft, true)

	if s[strutTop] != 40 {
		t.Errorf("top = %d, want 40", s[strutTop])
	}
	if s[strutTopStartX] != 100 || s[strutTopEndX] != 900 {
		t.Errorf("top span = [%d, %d], want [100, 900]", s[strutTopStartX], s[strutTopEndX])
	}
	if s[strutLeft] != 0 || s[strutRight] != 0 || s[strutBottom] != 0 {
		t.Error("only the top edge should be reserved")
	}
}

func TestComputeStrutsTallCutoutPrefersVerticalEdge(t *testing.T) {
	// A tall window in the top-left corner belongs to the left edge.
	win := geometry.Rect{X: 0, Y: 0, Width: 200, Height: 900}
	s := ComputeStruts(win, dispW, dispH, geometry.AlignTopLeft, true)

	if s[strutLeft] != 200 {
		t.Errorf("left = %d, want 200", s[strutLeft])
	}
	if s[strutTop] != 0 {
		t.Errorf("top = %d, want 0", s[strutTop])
	}
	if s[strutLeftStartY] != 0 || s[strutLeftEndY] != 900 {
		t.Errorf("left span = [%d, %d], want [0, 900]", s[strutLeftStartY], s[strutLeftEndY])
	}
}

func TestComputeStrutsConservativePicksCheapestEdge(t *testing.T) {
	// Bottom-right corner, close to the right edge: reserving the right
	// band loses less than reserving the bottom band.
	win := geometry.Rect{X: 1820, Y: 500, Width: 100, Height: 500}
	s := ComputeStruts(win, dispW, dispH, geometry.AlignBottomRight, false)

	if s[strutRight] != 100 {
		t.Errorf("right = %d, want 100", s[strutRight])
	}
	if s[strutBottom] != 0 {
		t.Errorf("bottom = %d, want 0", s[strutBottom])
	}
}

func TestComputeStrutsBottom(t *testing.T) {
	win := geometry.Rect{X: 0, Y: 1040, Width: 1920, Height: 40}
	s := ComputeStruts(win, dispW, dispH, geometry.AlignBottomLeft, true)

	if s[strutBottom] != 40 {
		t.Errorf("bottom = %d, want 40", s[strutBottom])
	}
	if s[strutBottomStartX] != 0 || s[strutBottomEndX] != 1920 {
		t.Errorf("bottom span = [%d, %d]", s[strutBottomStartX], s[strutBottomEndX])
	}
}

func TestComputeStrutsMiddleReservesNothing(t *testing.T) {
	win := geometry.Rect{X: 800, Y: 400, Width: 320, Height: 240}
	for _, cutout := range []bool{true, false} {
		s := ComputeStruts(win, dispW, dispH, geometry.AlignMiddleMiddle, cutout)
		for i, v := range s {
			if v != 0 {
				t.Errorf("cutout=%v slot %d = %d, want 0", cutout, i, v)
			}
		}
	}
}

func TestComputeStrutsClamped(t *testing.T) {
	// A window hanging off-screen must not produce values outside the
	// display dimensions.
	win := geometry.Rect{X: -50, Y: -20, Width: 3000, Height: 60}
	s := ComputeStruts(win, dispW, dispH, geometry.AlignTopLeft, true)

	for i, v := range s {
		dim := uint32(dispW)
		switch i {
		case strutLeft, strutRight, strutTopStartX, strutTopEndX,
			strutBottomStartX, strutBottomEndX:
			dim = uint32(dispW)
		default:
			dim = uint32(dispH)
		}
		if v > dim {
			t.Errorf("slot %d = %d exceeds dimension %d", i, v, dim)
		}
	}
	if s[strutTopStartX] != 0 {
		t.Errorf("top start = %d, want clamped 0", s[strutTopStartX])
	}
}
