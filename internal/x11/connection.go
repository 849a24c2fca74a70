package x11

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	log "github.com/sirupsen/logrus"
)

// ErrConnection indicates the display connection could not be established or
// has been lost. Unlike ordinary protocol errors it is fatal.
var ErrConnection = errors.New("display connection error")

// ErrResourceUnavailable indicates a required server resource (visual, font,
// colormap) could not be obtained on this display.
var ErrResourceUnavailable = errors.New("x11 resource unavailable")

// Connection manages the X11 connection and core X resources. At most one
// live connection exists per process; all window and graphics resources
// created through it become unusable once it is closed.
type Connection struct {
	XUtil  *xgbutil.XUtil
	Root   xproto.Window
	WMName string

	rdbMu sync.Mutex
	rdb   map[string]string

	closed bool
}

var (
	openMu  sync.Mutex
	current *Connection
)

// Open establishes a connection to the X server. An empty display name uses
// the DISPLAY environment variable. Open is idempotent: if a connection is
// already established it is returned unchanged.
func Open(display string) (*Connection, error) {
	openMu.Lock()
	defer openMu.Unlock()

	if current != nil && !current.closed {
		return current, nil
	}

	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: can't open display %q: %v", ErrConnection, display, err)
	}

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
		rdb:   make(map[string]string),
	}

	// The window-manager name drives the strut and initial-state
	// compatibility policies. A non-EWMH window manager is fine, we just
	// can't special-case it.
	if name, err := ewmh.GetEwmhWM(xu); err == nil {
		c.WMName = name
		log.WithField("wm", name).Info("Detected window manager")
	} else {
		log.Debug("Window manager is not EWMH compliant: ", err)
	}

	c.ReloadResources()

	current = c
	return c, nil
}

// Close releases the connection and invalidates all dependent resources.
// Safe to call on a nil or already-closed connection.
func (c *Connection) Close() error {
	if c == nil || c.closed {
		return nil
	}

	openMu.Lock()
	defer openMu.Unlock()

	c.closed = true
	c.XUtil.Conn().Close()
	if current == c {
		current = nil
	}
	return nil
}

// Closed reports whether the connection has been shut down.
func (c *Connection) Closed() bool {
	return c == nil || c.closed
}

// DisplaySize returns the dimensions of the whole display in pixels.
func (c *Connection) DisplaySize() (int, int) {
	screen := c.XUtil.Screen()
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}
