package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/j3din00b/conky/internal/geometry"
)

// Duration decodes YAML values like "2s" or "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"2s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// WindowConfig describes the overlay window requested from the X server.
type WindowConfig struct {
	// Type is one of: normal, desktop, dock, panel, utility, override.
	Type string `yaml:"type"`
	// Hints is any combination of: undecorated, below, above, sticky,
	// skip_taskbar, skip_pager.
	Hints []string `yaml:"hints"`
	// Transparency is one of: none, pseudo, argb.
	Transparency string `yaml:"transparency"`
	// Alpha is the background alpha used with argb transparency (0-255).
	Alpha uint8 `yaml:"alpha"`
	// Background and Foreground are 0xRRGGBB colours for the window fill
	// and the rendered text. Zero means unset: the foreground/background
	// entries of the X resource database apply, then white on black.
	Background uint32 `yaml:"background"`
	Foreground uint32 `yaml:"foreground"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Class      string `yaml:"class"`
}

// InputConfig controls input-event handling and propagation.
type InputConfig struct {
	// MouseEvents enables pointer-motion tracking on the root window.
	MouseEvents bool `yaml:"mouse_events"`
	// EagerWindowSearch allows the expensive window-tree walk when the
	// window manager publishes neither client-list property.
	EagerWindowSearch bool `yaml:"eager_window_search"`
}

// WMConfig holds window-manager compatibility policy. Both lists are matched
// case-insensitively as substrings of the detected window-manager name, so
// new affected window managers can be added without a code change.
type WMConfig struct {
	// WithdrawnStateWMs lists window managers whose slit/dock handling
	// requires docks and panels to start in the withdrawn state.
	WithdrawnStateWMs []string `yaml:"withdrawn_state_wms"`
	// CutoutWMs lists window managers that honor partial-edge struts.
	CutoutWMs []string `yaml:"cutout_wms"`
}

// Config is the full configuration of the overlay.
type Config struct {
	Display string `yaml:"display"`
	// Head selects a Xinerama head for the workarea; -1 uses the whole
	// display.
	Head      int          `yaml:"head"`
	Alignment string       `yaml:"alignment"`
	GapX      int          `yaml:"gap_x"`
	GapY      int          `yaml:"gap_y"`
	Window    WindowConfig `yaml:"window"`
	Input     InputConfig  `yaml:"input"`
	WM        WMConfig     `yaml:"wm"`
	// UpdateInterval is the sensor refresh period.
	UpdateInterval Duration `yaml:"update_interval"`
	// Template is the list of text lines rendered into the overlay.
	// ${name} references a sensor value.
	Template []string `yaml:"template"`
	Debug    bool     `yaml:"debug"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Head:      -1,
		Alignment: "top_left",
		GapX:      12,
		GapY:      12,
		Window: WindowConfig{
			Type:         "normal",
			Hints:        []string{"undecorated", "below", "sticky", "skip_taskbar", "skip_pager"},
			Transparency: "pseudo",
			Alpha:        0xff,
			Background:   0,
			Foreground:   0,
			Width:        320,
			Height:       240,
			Title:        "conky",
			Class:        "Conky",
		},
		Input: InputConfig{
			MouseEvents: false,
			// The tree walk touches every window; keep it opt-in.
			EagerWindowSearch: false,
		},
		WM: WMConfig{
			WithdrawnStateWMs: []string{"fluxbox"},
			CutoutWMs:         []string{"compiz", "fluxbox", "i3", "kwin"},
		},
		UpdateInterval: Duration(2 * time.Second),
		Template: []string{
			"${hostname} - ${kernel}",
			"uptime: ${uptime}",
			"load: ${loadavg}",
			"mem: ${memused} / ${memtotal}",
		},
	}
}

// ConfigError reports a configuration value that failed validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Validate checks cross-field constraints that cannot be expressed in the
// YAML schema itself.
func (c *Config) Validate() error {
	if _, err := geometry.ParseAlignment(c.Alignment); err != nil {
		return &ConfigError{Field: "alignment", Reason: err.Error()}
	}
	switch c.Window.Type {
	case "", "normal", "desktop", "dock", "panel", "utility", "override":
	default:
		return &ConfigError{Field: "window.type",
			Reason: fmt.Sprintf("unknown window type %q", c.Window.Type)}
	}
	switch c.Window.Transparency {
	case "", "none", "pseudo", "argb":
	default:
		return &ConfigError{Field: "window.transparency",
			Reason: fmt.Sprintf("unknown mode %q", c.Window.Transparency)}
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return &ConfigError{Field: "window",
			Reason: fmt.Sprintf("size must not be negative, got %dx%d",
				c.Window.Width, c.Window.Height)}
	}
	if c.UpdateInterval <= 0 {
		return &ConfigError{Field: "update_interval",
			Reason: fmt.Sprintf("must be positive, got %s",
				time.Duration(c.UpdateInterval))}
	}
	return nil
}
