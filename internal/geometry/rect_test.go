package geometry

import "testing"

func TestIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 50, Width: 100, Height: 100}

	got, ok := Intersect(a, b)
	if !ok {
		t.Fatal("expected rectangles to intersect")
	}
	want := Rect{X: 50, Y: 50, Width: 50, Height: 50}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	c := Rect{X: 200, Y: 200, Width: 10, Height: 10}
	if _, ok := Intersect(a, c); ok {
		t.Fatal("expected disjoint rectangles not to intersect")
	}
}

func TestIntersect_TouchingEdgesAreDisjoint(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 50, Height: 50}
	b := Rect{X: 50, Y: 0, Width: 50, Height: 50}
	if Intersects(a, b) {
		t.Fatal("rectangles sharing only an edge must not intersect")
	}
}

func TestClampInto(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	r := ClampInto(Rect{X: 1900, Y: -10, Width: 100, Height: 100}, bounds)
	if r.X != 1820 || r.Y != 0 {
		t.Fatalf("expected clamped origin (1820,0), got (%d,%d)", r.X, r.Y)
	}

	// Oversized rectangles are truncated to the bounds.
	r = ClampInto(Rect{X: 0, Y: 0, Width: 4000, Height: 4000}, bounds)
	if r.Width != 1920 || r.Height != 1080 {
		t.Fatalf("expected truncation to 1920x1080, got %dx%d", r.Width, r.Height)
	}
}

func TestPlace(t *testing.T) {
	wa := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	cases := []struct {
		name  string
		align Alignment
		wantX int
		wantY int
	}{
		{"top_left", AlignTopLeft, 10, 20},
		{"top_right", AlignTopRight, 1920 - 200 - 10, 20},
		{"bottom_left", AlignBottomLeft, 10, 1080 - 100 - 20},
		{"bottom_right", AlignBottomRight, 1910 - 200, 1060 - 100},
		{"middle_middle", AlignMiddleMiddle, (1920 - 200) / 2, (1080 - 100) / 2},
		{"bottom_middle", AlignBottomMiddle, (1920 - 200) / 2, 1060 - 100},
	}
	for _, tc := range cases {
		got := Place(200, 100, wa, tc.align, 10, 20)
		if got.X != tc.wantX || got.Y != tc.wantY {
			t.Errorf("%s: expected origin (%d,%d), got (%d,%d)",
				tc.name, tc.wantX, tc.wantY, got.X, got.Y)
		}
		if got.Width != 200 || got.Height != 100 {
			t.Errorf("%s: size changed to %dx%d", tc.name, got.Width, got.Height)
		}
	}
}

func TestPlace_ResultContainedInWorkarea(t *testing.T) {
	wa := Rect{X: 100, Y: 50, Width: 800, Height: 600}
	for name, a := range alignNames {
		r := Place(300, 200, wa, a, 5, 5)
		if r.X < wa.X || r.Y < wa.Y || r.EndX() > wa.EndX() || r.EndY() > wa.EndY() {
			t.Errorf("%s: %+v escapes workarea %+v", name, r, wa)
		}
	}
}

func TestParseAlignment(t *testing.T) {
	a, err := ParseAlignment("bottom_right")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != AlignBottomRight {
		t.Fatalf("expected AlignBottomRight, got %v", a)
	}

	if _, err := ParseAlignment("sideways"); err == nil {
		t.Fatal("expected error for unknown alignment")
	}

	// Empty string keeps the historical default.
	a, err = ParseAlignment("")
	if err != nil || a != AlignTopLeft {
		t.Fatalf("expected default top_left, got %v (%v)", a, err)
	}
}
