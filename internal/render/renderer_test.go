package render

import "testing"

func TestMeasure(t *testing.T) {
	r := Measure([]string{"abc", "abcdefgh", "x"})
	wantW := 8*charWidth + 2*paddingX
	wantH := 3*lineHeight + 2*paddingY
	if r.Width != wantW || r.Height != wantH {
		t.Errorf("Measure = %dx%d, want %dx%d", r.Width, r.Height, wantW, wantH)
	}
}

func TestMeasureEmpty(t *testing.T) {
	r := Measure(nil)
	if r.Width != 2*paddingX || r.Height != 2*paddingY {
		t.Errorf("Measure(nil) = %dx%d, want padding only", r.Width, r.Height)
	}
}
