package input

import (
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestReleaseMaskIncludesButtonMotion(t *testing.T) {
	tests := []struct {
		button xproto.Button
		motion uint32
	}{
		{1, xproto.EventMaskButton1Motion},
		{2, xproto.EventMaskButton2Motion},
		{3, xproto.EventMaskButton3Motion},
		{4, xproto.EventMaskButton4Motion},
		{5, xproto.EventMaskButton5Motion},
	}
	for _, tt := range tests {
		mask := releaseMask(tt.button)
		if mask&xproto.EventMaskButtonRelease == 0 {
			t.Errorf("button %d: release bit missing", tt.button)
		}
		if mask&tt.motion == 0 {
			t.Errorf("button %d: motion bit missing", tt.button)
		}
	}
}

func TestReleaseMaskUnknownButton(t *testing.T) {
	if got := releaseMask(9); got != xproto.EventMaskButtonRelease {
		t.Errorf("got %#x, want bare release mask", got)
	}
}

func TestOverlayEventMaskSelfOwned(t *testing.T) {
	mask := overlayEventMask(false, false, true)
	for _, bit := range []uint32{
		xproto.EventMaskExposure,
		xproto.EventMaskPropertyChange,
		xproto.EventMaskStructureNotify,
		xproto.EventMaskButtonPress,
		xproto.EventMaskButtonRelease,
	} {
		if mask&bit == 0 {
			t.Errorf("self-owned mask missing bit %#x", bit)
		}
	}
	if mask&xproto.EventMaskPointerMotion != 0 {
		t.Error("motion must be opt-in")
	}
}

func TestOverlayEventMaskNotSelfOwned(t *testing.T) {
	mask := overlayEventMask(false, false, false)
	if mask&xproto.EventMaskButtonPress != 0 || mask&xproto.EventMaskButtonRelease != 0 {
		t.Error("a surface the overlay does not own must not take button events")
	}
	if mask&xproto.EventMaskStructureNotify != 0 {
		t.Error("structural events only make sense on an owned window")
	}
	if mask&xproto.EventMaskExposure == 0 || mask&xproto.EventMaskPropertyChange == 0 {
		t.Error("base mask must survive regardless of ownership")
	}
}

func TestOverlayEventMaskClickThrough(t *testing.T) {
	mask := overlayEventMask(true, true, true)
	if mask&xproto.EventMaskButtonPress != 0 || mask&xproto.EventMaskButtonRelease != 0 {
		t.Error("click-through windows must not intercept button events")
	}
	if mask&xproto.EventMaskPointerMotion != 0 {
		t.Error("click-through windows must not track motion")
	}
}

func TestOverlayEventMaskMouseEvents(t *testing.T) {
	mask := overlayEventMask(true, false, true)
	for _, bit := range []uint32{
		xproto.EventMaskPointerMotion,
		xproto.EventMaskEnterWindow,
		xproto.EventMaskLeaveWindow,
	} {
		if mask&bit == 0 {
			t.Errorf("mouse mask missing bit %#x", bit)
		}
	}
}

func TestRootEventMask(t *testing.T) {
	base := rootEventMask(false, false, true)
	if base&xproto.EventMaskPropertyChange == 0 {
		t.Error("property changes must always be selected on the root")
	}
	if base&xproto.EventMaskButtonPress != 0 {
		t.Error("a self-owned interactive overlay takes its own buttons")
	}
	if base&xproto.EventMaskPointerMotion != 0 {
		t.Error("motion on root requires mouse events")
	}
	if rootEventMask(true, false, true)&xproto.EventMaskPointerMotion == 0 {
		t.Error("mouse events should select root motion")
	}
}

func TestRootEventMaskTakesButtonsForClickThrough(t *testing.T) {
	tests := []struct {
		clickThrough bool
		selfOwned    bool
	}{
		{true, true},
		{false, false},
		{true, false},
	}
	for _, tt := range tests {
		mask := rootEventMask(false, tt.clickThrough, tt.selfOwned)
		if mask&xproto.EventMaskButtonPress == 0 || mask&xproto.EventMaskButtonRelease == 0 {
			t.Errorf("clickThrough=%v selfOwned=%v: buttons must move to the root",
				tt.clickThrough, tt.selfOwned)
		}
	}
}
