package geometry

// Rect is a rectangle in display pixels.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// EndX returns the x coordinate one past the right edge.
func (r Rect) EndX() int { return r.X + r.Width }

// EndY returns the y coordinate one past the bottom edge.
func (r Rect) EndY() int { return r.Y + r.Height }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersect returns the overlap of two rectangles and whether it is non-empty.
func Intersect(a, b Rect) (Rect, bool) {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.EndX(), b.EndX())
	y2 := min(a.EndY(), b.EndY())

	if x2 <= x1 || y2 <= y1 {
		return Rect{}, false
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// Intersects reports whether two rectangles overlap.
func Intersects(a, b Rect) bool {
	_, ok := Intersect(a, b)
	return ok
}

// ClampInto shrinks and moves r so it lies fully inside bounds. A rectangle
// larger than bounds is truncated to the bounds size.
func ClampInto(r, bounds Rect) Rect {
	if r.Width > bounds.Width {
		r.Width = bounds.Width
	}
	if r.Height > bounds.Height {
		r.Height = bounds.Height
	}
	if r.X < bounds.X {
		r.X = bounds.X
	}
	if r.Y < bounds.Y {
		r.Y = bounds.Y
	}
	if r.EndX() > bounds.EndX() {
		r.X = bounds.EndX() - r.Width
	}
	if r.EndY() > bounds.EndY() {
		r.Y = bounds.EndY() - r.Height
	}
	return r
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
