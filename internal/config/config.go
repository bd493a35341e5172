// Package config loads diagdeck.toml.
//
// The file is optional and found by walking up from the working directory.
// Values left out keep their defaults; command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"diagdeck/internal/diag"
	"diagdeck/internal/diagio"
)

// FileName is the config file looked up by Find.
const FileName = "diagdeck.toml"

var (
	displayFormats = []string{"pretty", "short", "json", "yaml", "sarif"}
	colorModes     = []string{"auto", "on", "off"}
	pathModes      = []string{"auto", "absolute", "relative", "basename"}
)

// Config mirrors diagdeck.toml.
type Config struct {
	Display Display      `toml:"display"`
	Filter  Filter       `toml:"filter"`
	Load    LoadSettings `toml:"load"`
	Rename  Rename       `toml:"rename"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type Display struct {
	Format    string `toml:"format"`
	Color     string `toml:"color"`
	Max       int    `toml:"max"`
	ShowEmpty bool   `toml:"show_empty"`
	Width     int    `toml:"width"`
	PathMode  string `toml:"path_mode"`
	Provider  bool   `toml:"show_provider"`
}

type Filter struct {
	Groups []string `toml:"groups"`
	FailOn []string `toml:"fail_on"`
}

type LoadSettings struct {
	Format string `toml:"format"`
	Jobs   int    `toml:"jobs"`
	Cache  bool   `toml:"cache"`
}

type Rename struct {
	Normalize bool `toml:"normalize"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display: Display{
			Format:   "pretty",
			Color:    "auto",
			PathMode: "auto",
		},
		Filter: Filter{
			Groups: []string{"all"},
			FailOn: []string{"errors"},
		},
		Load: LoadSettings{
			Format: "auto",
			Cache:  true,
		},
		Rename: Rename{Normalize: true},
	}
}

// Find walks up from startDir looking for diagdeck.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads the config at path, or the one found from the working
// directory when path is empty. Without a file it returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		found, ok, err := Find(".")
		if err != nil {
			return Config{}, err
		}
		if !ok {
			return Default(), nil
		}
		path = found
	}
	return LoadFile(path)
}

// LoadFile decodes and validates one config file.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("filter", "groups") && len(cfg.Filter.Groups) == 0 {
		return Config{}, fmt.Errorf("%s: [filter].groups must not be empty", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values and bounds.
func (c *Config) Validate() error {
	if !slices.Contains(displayFormats, c.Display.Format) {
		return fmt.Errorf("[display].format: unknown format %q (expected %s)", c.Display.Format, strings.Join(displayFormats, "|"))
	}
	if !slices.Contains(colorModes, c.Display.Color) {
		return fmt.Errorf("[display].color: unknown mode %q (expected %s)", c.Display.Color, strings.Join(colorModes, "|"))
	}
	if !slices.Contains(pathModes, c.Display.PathMode) {
		return fmt.Errorf("[display].path_mode: unknown mode %q (expected %s)", c.Display.PathMode, strings.Join(pathModes, "|"))
	}
	if c.Display.Max < 0 {
		return fmt.Errorf("[display].max must be >= 0, got %d", c.Display.Max)
	}
	if c.Display.Width < 0 {
		return fmt.Errorf("[display].width must be >= 0, got %d", c.Display.Width)
	}
	if _, err := c.Groups(); err != nil {
		return fmt.Errorf("[filter].groups: %w", err)
	}
	if _, err := c.FailOn(); err != nil {
		return fmt.Errorf("[filter].fail_on: %w", err)
	}
	if _, err := diagio.ParseFormat(c.Load.Format); err != nil {
		return fmt.Errorf("[load].format: %w", err)
	}
	if c.Load.Jobs < 0 {
		return fmt.Errorf("[load].jobs must be >= 0, got %d", c.Load.Jobs)
	}
	return nil
}

// Groups returns the enabled filter groups.
func (c *Config) Groups() (diag.GroupSet, error) {
	return diag.ParseGroupSet(strings.Join(c.Filter.Groups, ","))
}

// FailOn returns the groups that make `group` exit non-zero.
func (c *Config) FailOn() (diag.GroupSet, error) {
	if len(c.Filter.FailOn) == 0 || slices.Equal(c.Filter.FailOn, []string{"none"}) {
		return diag.NewGroupSet(), nil
	}
	return diag.ParseGroupSet(strings.Join(c.Filter.FailOn, ","))
}
