package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	log "github.com/sirupsen/logrus"

	"github.com/j3din00b/conky/internal/config"
	"github.com/j3din00b/conky/internal/geometry"
	"github.com/j3din00b/conky/internal/input"
	"github.com/j3din00b/conky/internal/overlay"
	"github.com/j3din00b/conky/internal/render"
	"github.com/j3din00b/conky/internal/sensors"
	"github.com/j3din00b/conky/internal/x11"
)

// Colours used when neither the configuration nor the resource database
// names any.
const (
	fallbackForeground = 0xffffff
	fallbackBackground = 0x000000
)

// Daemon runs the overlay: it owns the display connection, the window, the
// renderer and the input backend, and multiplexes X events with the sensor
// refresh tick and configuration reloads.
type Daemon struct {
	cfg     *config.Config
	cfgPath string
	conn    *x11.Connection

	win      *overlay.Window
	renderer *render.Renderer
	backend  input.Backend
	fwd      *input.Forwarder
	desks    *x11.DesktopCache
	registry *sensors.Registry

	align   geometry.Alignment
	cutout  bool
	reload  chan struct{}
	resAtom xproto.Atom
}

// New connects to the display and builds the full overlay stack. cfgPath
// is the file watched for reloads; empty disables watching. The returned
// daemon is ready to Run.
func New(cfg *config.Config, cfgPath string) (*Daemon, error) {
	conn, err := x11.Open(cfg.Display)
	if err != nil {
		return nil, err
	}

	d := &Daemon{
		cfg:      cfg,
		cfgPath:  cfgPath,
		conn:     conn,
		registry: sensors.NewRegistry(),
		reload:   make(chan struct{}, 1),
	}
	if err := d.build(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

// build creates everything that depends on the configuration. A reload
// tears the previous generation down and calls build again.
func (d *Daemon) build() error {
	align, err := geometry.ParseAlignment(d.cfg.Alignment)
	if err != nil {
		return err
	}
	d.align = align

	policy := overlay.NewPolicy(d.cfg.WM)
	d.cutout = policy.Cutout(d.conn.WMName)

	win, err := overlay.Create(d.conn, d.cfg, policy)
	if err != nil {
		return fmt.Errorf("can't create overlay window: %w", err)
	}
	d.win = win

	fg, bg := d.colors()
	renderer, err := render.New(d.conn, win.ID, fg, bg)
	if err != nil {
		win.Destroy()
		return err
	}
	d.renderer = renderer

	d.fwd = input.NewForwarder(d.conn, win.ID, win.Root, win.Desktop,
		d.cfg.Input.EagerWindowSearch)

	// The overlay always draws into a window of its own here, so the
	// surface is self-owned; desktop-type windows are still treated as
	// click-through by the backend.
	d.backend = input.New(d.conn, win.ID, func() geometry.Rect { return d.win.Geometry },
		d.cfg.Input, d.cfg.Window.Type, true)

	d.desks = x11.NewDesktopCache(d.conn)
	d.resAtom = xproto.AtomResourceManager

	if !d.win.Override && d.align.Edged() &&
		(d.cfg.Window.Type == "dock" || d.cfg.Window.Type == "panel") {
		d.win.ReserveSpace(d.align, d.cutout)
	}

	d.redraw()
	return nil
}

// teardown releases the per-generation resources, keeping the connection.
func (d *Daemon) teardown() error {
	var errs *multierror.Error
	if d.backend != nil {
		d.backend.Close()
	}
	if d.renderer != nil {
		if err := d.renderer.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if d.win != nil {
		if err := d.win.Destroy(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// Run blocks until the context is cancelled or the connection is lost.
// Connection loss is returned as an error wrapping x11.ErrConnection;
// cancellation is a clean shutdown.
func (d *Daemon) Run(ctx context.Context) error {
	events := make(chan eventOrError, 64)
	done := make(chan struct{})
	defer close(done)
	go d.readEvents(events, done)

	if d.cfgPath != "" {
		stop, err := config.Watch(d.cfgPath, func() {
			select {
			case d.reload <- struct{}{}:
			default:
			}
		})
		if err != nil {
			log.Debug("Config watch unavailable: ", err)
		} else {
			defer stop()
		}
	}

	ticker := time.NewTicker(time.Duration(d.cfg.UpdateInterval))
	defer ticker.Stop()
	defer d.conn.Close()
	defer d.teardown()

	log.WithField("interval", time.Duration(d.cfg.UpdateInterval)).Info("Overlay running")

	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down")
			return nil

		case <-ticker.C:
			d.redraw()

		case <-d.reload:
			if err := d.rebuild(); err != nil {
				log.Error("Reload failed, keeping previous configuration: ", err)
			}
			ticker.Reset(time.Duration(d.cfg.UpdateInterval))

		case ee, ok := <-events:
			if !ok {
				return fmt.Errorf("%w: event stream closed", x11.ErrConnection)
			}
			if ee.err != nil {
				d.conn.LogError(ee.err)
				continue
			}
			d.dispatch(ee.ev)
		}
	}
}

type eventOrError struct {
	ev  xgb.Event
	err xgb.Error
}

// readEvents pumps the wire into the daemon loop.
func (d *Daemon) readEvents(out chan<- eventOrError, done <-chan struct{}) {
	pumpEvents(d.conn.XUtil.Conn().WaitForEvent, out, done)
}

// pumpEvents forwards events from wait to out until the connection dies or
// done closes. wait returning two nils means the connection is gone; the
// channel close propagates that to Run. done unblocks a pending send once
// the loop on the other side has stopped receiving, so the goroutine never
// outlives Run.
func pumpEvents(wait func() (xgb.Event, xgb.Error), out chan<- eventOrError,
	done <-chan struct{}) {

	defer close(out)
	for {
		ev, err := wait()
		if ev == nil && err == nil {
			return
		}
		select {
		case out <- eventOrError{ev: ev, err: err}:
		case <-done:
			return
		}
	}
}

func (d *Daemon) dispatch(ev xgb.Event) {
	if d.backend.HandleEvent(ev) {
		return
	}
	if d.fwd.Propagate(ev) {
		return
	}

	switch e := ev.(type) {
	case xproto.ExposeEvent:
		if e.Window == d.win.ID && e.Count == 0 {
			d.redraw()
		}
	case xproto.ConfigureNotifyEvent:
		if e.Window == d.win.ID {
			d.win.SyncGeometry(int(e.X), int(e.Y), int(e.Width), int(e.Height))
		}
	case xproto.PropertyNotifyEvent:
		d.handleProperty(e)
	case xproto.DestroyNotifyEvent:
		if e.Window == d.win.ID {
			log.Warn("Overlay window destroyed externally, rebuilding")
			if err := d.rebuild(); err != nil {
				log.Error("Rebuild failed: ", err)
			}
		}
	}
}

func (d *Daemon) handleProperty(e xproto.PropertyNotifyEvent) {
	switch {
	case d.desks.Watches(e.Atom):
		d.desks.Refresh(e.Atom)
		d.redraw()
	case e.Atom == d.resAtom:
		d.conn.ReloadResources()
		fg, bg := d.colors()
		d.renderer.SetColors(fg, bg)
		d.redraw()
	}
}

// rebuild applies a configuration change by recreating the overlay stack.
func (d *Daemon) rebuild() error {
	fresh := d.cfg
	if d.cfgPath != "" {
		loaded, err := config.Load(d.cfgPath)
		if err != nil {
			return err
		}
		fresh = loaded
	}
	if err := d.teardown(); err != nil {
		log.Debug("Teardown issues during reload: ", err)
	}
	d.cfg = fresh
	if err := d.build(); err != nil {
		return err
	}
	log.Info("Configuration reloaded")
	return nil
}

func (d *Daemon) redraw() {
	values := d.registry.Snapshot()
	values["desktop"] = d.desktopLabel()
	lines := sensors.Expand(d.cfg.Template, values)
	d.fitWindow(lines)
	d.renderer.Draw(lines)
}

// fitWindow grows the overlay to the rendered text, re-placing it in the
// workarea so the anchored edge stays put. The configured width and height
// act as a minimum. Docks and panels stay at the origin and re-publish
// their struts when the size changes, since the reservation depends on it.
func (d *Daemon) fitWindow(lines []string) {
	want := desiredSize(render.Measure(lines), d.cfg.Window.Width, d.cfg.Window.Height)
	cur := d.win.Geometry
	if want.Width == cur.Width && want.Height == cur.Height {
		return
	}

	area := d.conn.Workarea(d.cfg.Head)
	r := geometry.Place(want.Width, want.Height, area, d.align, d.cfg.GapX, d.cfg.GapY)
	edged := d.cfg.Window.Type == "dock" || d.cfg.Window.Type == "panel"
	if edged {
		r.X, r.Y = 0, 0
	}
	d.win.MoveResize(r)

	if edged && !d.win.Override && d.align.Edged() {
		d.win.ReserveSpace(d.align, d.cutout)
	}
}

// desiredSize grows the measured text size to the configured minimum.
func desiredSize(measured geometry.Rect, minWidth, minHeight int) geometry.Rect {
	if minWidth > measured.Width {
		measured.Width = minWidth
	}
	if minHeight > measured.Height {
		measured.Height = minHeight
	}
	return measured
}

// colors resolves the drawing colours: explicit configuration wins, then
// the resource database's foreground/background entries, then white text
// on black.
func (d *Daemon) colors() (fg, bg uint32) {
	fg, bg = fallbackForeground, fallbackBackground
	if v, ok := d.conn.Resource("foreground"); ok {
		if c, err := x11.ParseColor(v); err == nil {
			fg = c
		}
	}
	if v, ok := d.conn.Resource("background"); ok {
		if c, err := x11.ParseColor(v); err == nil {
			bg = c
		}
	}
	if d.cfg.Window.Foreground != 0 {
		fg = d.cfg.Window.Foreground & 0xffffff
	}
	if d.cfg.Window.Background != 0 {
		bg = d.cfg.Window.Background & 0xffffff
	}
	return fg, bg
}

// desktopLabel renders the cached desktop state as "name (n/count)" or just
// the number when the window manager publishes no names.
func (d *Daemon) desktopLabel() string {
	if d.desks == nil {
		return ""
	}
	s := d.desks.State
	if s.Name != "" {
		return fmt.Sprintf("%s (%d/%d)", s.Name, s.Current, s.Count)
	}
	return fmt.Sprintf("%d/%d", s.Current, s.Count)
}
