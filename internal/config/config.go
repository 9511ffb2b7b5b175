package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding a default config file path.
const EnvPath = "LIFE_CONFIG"

// Config is the complete runtime configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid" yaml:"grid"`
	Sim     SimConfig     `toml:"sim" yaml:"sim"`
	Window  WindowConfig  `toml:"window" yaml:"window"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// GridConfig sizes the toroidal grid in cells.
type GridConfig struct {
	Cols int `toml:"cols" yaml:"cols"`
	Rows int `toml:"rows" yaml:"rows"`
}

// SimConfig holds playback speed and its bounds.
type SimConfig struct {
	SpeedMs     int  `toml:"speed_ms" yaml:"speed_ms"`         // delay between generations
	MinSpeedMs  int  `toml:"min_speed_ms" yaml:"min_speed_ms"` // lower clamp for speed changes
	MaxSpeedMs  int  `toml:"max_speed_ms" yaml:"max_speed_ms"` // upper clamp for speed changes
	SpeedStepMs int  `toml:"speed_step_ms" yaml:"speed_step_ms"`
	Autostart   bool `toml:"autostart" yaml:"autostart"`
}

// WindowConfig sizes the GUI drawing surface and control panel.
type WindowConfig struct {
	Width      int    `toml:"width" yaml:"width"`   // drawing surface width in pixels
	Height     int    `toml:"height" yaml:"height"` // drawing surface height in pixels
	PanelWidth int    `toml:"panel_width" yaml:"panel_width"`
	Title      string `toml:"title" yaml:"title"`
}

// LoggingConfig selects the log level and encoder.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
	Output string `toml:"output" yaml:"output"` // "stderr", "stdout" or a file path
}

// CellSize returns the pixel edge of one cell on the drawing surface.
func (c *Config) CellSize() int {
	if c.Grid.Cols <= 0 {
		return 0
	}
	return c.Window.Width / c.Grid.Cols
}

// Defaults returns the reference configuration: a 50x50 grid stepping every
// 200ms on a 500px surface.
func Defaults() *Config {
	return &Config{
		Grid: GridConfig{
			Cols: 50,
			Rows: 50,
		},
		Sim: SimConfig{
			SpeedMs:     200,
			MinSpeedMs:  10,
			MaxSpeedMs:  1000,
			SpeedStepMs: 10,
		},
		Window: WindowConfig{
			Width:      500,
			Height:     500,
			PanelWidth: 180,
			Title:      "conway-ca",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}

// Load reads a TOML or YAML file over the defaults. The format is chosen by
// extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml", "":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the ranges the simulation depends on.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Cols <= 0 || c.Grid.Rows <= 0 {
		errs = append(errs, fmt.Errorf("grid must be positive, got %dx%d", c.Grid.Cols, c.Grid.Rows))
	}
	if c.Sim.MinSpeedMs <= 0 {
		errs = append(errs, fmt.Errorf("min_speed_ms must be positive, got %d", c.Sim.MinSpeedMs))
	}
	if c.Sim.MaxSpeedMs < c.Sim.MinSpeedMs {
		errs = append(errs, fmt.Errorf("max_speed_ms %d below min_speed_ms %d", c.Sim.MaxSpeedMs, c.Sim.MinSpeedMs))
	}
	if c.Sim.SpeedMs < c.Sim.MinSpeedMs || c.Sim.SpeedMs > c.Sim.MaxSpeedMs {
		errs = append(errs, fmt.Errorf("speed_ms %d outside [%d, %d]", c.Sim.SpeedMs, c.Sim.MinSpeedMs, c.Sim.MaxSpeedMs))
	}
	if c.Sim.SpeedStepMs <= 0 {
		errs = append(errs, fmt.Errorf("speed_step_ms must be positive, got %d", c.Sim.SpeedStepMs))
	}
	if c.Window.Width < c.Grid.Cols || c.Window.Height < c.Grid.Rows {
		errs = append(errs, fmt.Errorf("surface %dx%d smaller than one pixel per cell", c.Window.Width, c.Window.Height))
	} else if cs := c.CellSize(); c.Window.Height < c.Grid.Rows*cs {
		// Cells are square and sized from the width, so the rows must fit the height.
		errs = append(errs, fmt.Errorf("surface height %d cannot fit %d rows of %dpx cells", c.Window.Height, c.Grid.Rows, cs))
	}
	return errors.Join(errs...)
}

// flagValues mirrors the overridable settings so only flags the user set are
// applied on top of a loaded file.
type flagValues struct {
	path   string
	cols   int
	rows   int
	speed  int
	width  int
	height int
	auto   bool
	level  string
	format string
	output string
}

// Bind attaches the configuration flags to fs.
func (v *flagValues) Bind(fs *flag.FlagSet, def *Config) {
	fs.StringVar(&v.path, "config", os.Getenv(EnvPath), "path to a .toml or .yaml config file")
	fs.IntVar(&v.cols, "cols", def.Grid.Cols, "grid columns")
	fs.IntVar(&v.rows, "rows", def.Grid.Rows, "grid rows")
	fs.IntVar(&v.speed, "speed", def.Sim.SpeedMs, "milliseconds between generations")
	fs.IntVar(&v.width, "width", def.Window.Width, "drawing surface width in pixels")
	fs.IntVar(&v.height, "height", def.Window.Height, "drawing surface height in pixels")
	fs.BoolVar(&v.auto, "autostart", def.Sim.Autostart, "start the simulation immediately")
	fs.StringVar(&v.level, "log-level", def.Logging.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&v.format, "log-format", def.Logging.Format, "log format (console or json)")
	fs.StringVar(&v.output, "log-output", def.Logging.Output, "log destination (stderr, stdout or a file path)")
}

// Parse resolves configuration from defaults, an optional file and flags, in
// increasing order of precedence.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	var v flagValues
	v.Bind(fs, Defaults())
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := Defaults()
	if v.path != "" {
		loaded, err := Load(v.path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cols":
			cfg.Grid.Cols = v.cols
		case "rows":
			cfg.Grid.Rows = v.rows
		case "speed":
			cfg.Sim.SpeedMs = v.speed
		case "width":
			cfg.Window.Width = v.width
		case "height":
			cfg.Window.Height = v.height
		case "autostart":
			cfg.Sim.Autostart = v.auto
		case "log-level":
			cfg.Logging.Level = v.level
		case "log-format":
			cfg.Logging.Format = v.format
		case "log-output":
			cfg.Logging.Output = v.output
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
