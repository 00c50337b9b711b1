// Package config loads the TOML configuration shared by the render and
// watch commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"falsecolor/canvas"
	"falsecolor/colormap"
	"falsecolor/orient"
	"falsecolor/overlay"
	"falsecolor/palette"

	"github.com/BurntSushi/toml"
)

var ErrUnknownTable = errors.New("unknown colour table")

type RenderConfig struct {
	Table    string          `toml:"table"`
	Strategy canvas.Strategy `toml:"strategy"`
	Rotate   orient.Factor   `toml:"rotate"`
	Width    int             `toml:"width"`  // 0 keeps the source width
	Height   int             `toml:"height"` // 0 keeps the source height
	// Normalize rescales intensities so this level maps to full scale.
	// 0 disables it.
	Normalize int `toml:"normalize"`
	// Thick draws every overlay with thick strokes.
	Thick  bool   `toml:"thick"`
	Format string `toml:"format"`
	Scale  int    `toml:"scale"`
}

type BreakpointConfig struct {
	At     float64 `toml:"at"`
	Colour string  `toml:"colour"`
}

// TableConfig describes a user colour table. Exactly one of Breakpoints,
// Hex or Pal must be set.
type TableConfig struct {
	Breakpoints   []BreakpointConfig     `toml:"breakpoints"`
	Interpolation colormap.Interpolation `toml:"interpolation"`
	Hex           []string               `toml:"hex"`
	// Pal is a RIFF PAL file, relative to the config file.
	Pal string `toml:"pal"`
}

type WatchConfig struct {
	Dirs         []string `toml:"dirs"`
	PollInterval int      `toml:"poll_interval"` // seconds, 0 disables polling
	Debounce     int      `toml:"debounce"`      // milliseconds, 0 = default (500ms)
}

func (w WatchConfig) PollDuration() time.Duration {
	return time.Duration(w.PollInterval) * time.Second
}

func (w WatchConfig) DebounceDuration() time.Duration {
	if w.Debounce > 0 {
		return time.Duration(w.Debounce) * time.Millisecond
	}
	return 500 * time.Millisecond
}

type Config struct {
	Render  RenderConfig           `toml:"render"`
	Tables  map[string]TableConfig `toml:"tables"`
	Overlay []overlay.Spec         `toml:"overlay"`
	Watch   WatchConfig            `toml:"watch"`

	dir string
}

func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Table:    "iron",
			Strategy: canvas.WordPointer,
			Rotate:   orient.Identity,
			Format:   "png",
			Scale:    1,
		},
		dir: ".",
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	r := c.Render
	switch {
	case r.Width < 0:
		return fmt.Errorf("invalid width: %d", r.Width)
	case r.Height < 0:
		return fmt.Errorf("invalid height: %d", r.Height)
	case r.Normalize < 0:
		return fmt.Errorf("invalid normalize level: %d", r.Normalize)
	case r.Scale < 1:
		return fmt.Errorf("invalid scale: %d", r.Scale)
	}
	for name, t := range c.Tables {
		if n := t.sources(); n != 1 {
			return fmt.Errorf("table %q: need exactly one of breakpoints, hex or pal, got %d", name, n)
		}
	}
	return nil
}

func (t TableConfig) sources() int {
	n := 0
	if len(t.Breakpoints) > 0 {
		n++
	}
	if len(t.Hex) > 0 {
		n++
	}
	if t.Pal != "" {
		n++
	}
	return n
}

// Build constructs the table. Relative Pal paths are resolved against dir.
func (t TableConfig) Build(dir string) (*colormap.Table, error) {
	switch {
	case len(t.Breakpoints) > 0:
		bps := make([]colormap.Breakpoint, len(t.Breakpoints))
		for i, bp := range t.Breakpoints {
			c, err := colormap.ParseHex(bp.Colour)
			if err != nil {
				return nil, fmt.Errorf("breakpoint %d: %w", i, err)
			}
			bps[i] = colormap.Breakpoint{At: bp.At, Colour: colormap.ColourOf(c)}
		}
		return colormap.NewBreakpoints(bps, colormap.WithInterpolation(t.Interpolation)), nil
	case len(t.Hex) > 0:
		return colormap.ParseHexTable(t.Hex)
	case t.Pal != "":
		path := t.Pal
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return palette.LoadTable(path)
	}
	return nil, errors.New("empty table definition")
}

// Table resolves name against the user tables first, then the built-ins.
func (c *Config) Table(name string) (*colormap.Table, error) {
	if tc, ok := c.Tables[name]; ok {
		t, err := tc.Build(c.dir)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", name, err)
		}
		return t, nil
	}
	if t, ok := colormap.Lookup(name); ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownTable, name)
}

// Overlays builds the configured overlays, forcing thick strokes when
// the render section asks for it.
func (c *Config) Overlays() (overlay.List, error) {
	specs := c.Overlay
	if c.Render.Thick {
		specs = make([]overlay.Spec, len(c.Overlay))
		for i, s := range c.Overlay {
			s.Thick = true
			specs[i] = s
		}
	}
	return overlay.Build(specs)
}
