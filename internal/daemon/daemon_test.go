package daemon

import (
	"testing"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/j3din00b/conky/internal/geometry"
	"github.com/j3din00b/conky/internal/x11"
)

func TestDesiredSizeHonorsMinimum(t *testing.T) {
	got := desiredSize(geometry.Rect{Width: 100, Height: 40}, 320, 240)
	if got.Width != 320 || got.Height != 240 {
		t.Errorf("got %dx%d, want 320x240", got.Width, got.Height)
	}
}

func TestDesiredSizeTracksText(t *testing.T) {
	got := desiredSize(geometry.Rect{Width: 500, Height: 300}, 320, 240)
	if got.Width != 500 || got.Height != 300 {
		t.Errorf("got %dx%d, want 500x300", got.Width, got.Height)
	}
}

func TestDesktopLabel(t *testing.T) {
	d := &Daemon{desks: &x11.DesktopCache{State: x11.DesktopState{
		Current: 2, Count: 4, Name: "web",
	}}}
	if got := d.desktopLabel(); got != "web (2/4)" {
		t.Errorf("got %q, want %q", got, "web (2/4)")
	}

	d.desks.State.Name = ""
	if got := d.desktopLabel(); got != "2/4" {
		t.Errorf("got %q, want %q", got, "2/4")
	}
}

func TestEventPumpStopsWhenDoneCloses(t *testing.T) {
	wait := func() (xgb.Event, xgb.Error) {
		return xproto.ExposeEvent{}, nil
	}
	out := make(chan eventOrError)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		pumpEvents(wait, out, done)
		close(finished)
	}()

	// Take one event, then stop receiving; the pump's next send must not
	// hold the goroutine alive once done closes.
	<-out
	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pump still running with no receiver after done closed")
	}
}

func TestEventPumpClosesOnConnectionLoss(t *testing.T) {
	calls := 0
	wait := func() (xgb.Event, xgb.Error) {
		calls++
		if calls > 1 {
			return nil, nil
		}
		return xproto.ExposeEvent{}, nil
	}
	out := make(chan eventOrError, 1)
	pumpEvents(wait, out, make(chan struct{}))

	if _, ok := <-out; !ok {
		t.Fatal("expected one event before the close")
	}
	if _, ok := <-out; ok {
		t.Fatal("channel must close once the connection is gone")
	}
}
