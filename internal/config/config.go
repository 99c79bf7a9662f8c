package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds window, render and asset settings.
type Config struct {
	// Window
	Title  string `json:"title" toml:"title" yaml:"title"`
	Width  int    `json:"width" toml:"width" yaml:"width"`
	Height int    `json:"height" toml:"height" yaml:"height"`

	// Render settings
	TickMillis   int    `json:"tick_ms" toml:"tick_ms" yaml:"tick_ms"`
	Background   []int  `json:"background" toml:"background" yaml:"background"`
	FillMode     string `json:"fill_mode" toml:"fill_mode" yaml:"fill_mode"`
	RetainShapes bool   `json:"retain_shapes" toml:"retain_shapes" yaml:"retain_shapes"`
	PixelFormat  string `json:"pixel_format" toml:"pixel_format" yaml:"pixel_format"`

	// Sprites
	SpriteDir      string `json:"sprite_dir" toml:"sprite_dir" yaml:"sprite_dir"`
	SpriteManifest string `json:"sprite_manifest" toml:"sprite_manifest" yaml:"sprite_manifest"`
	WatchSprites   bool   `json:"watch_sprites" toml:"watch_sprites" yaml:"watch_sprites"`
	Workers        int    `json:"workers" toml:"workers" yaml:"workers"`

	// Capture
	CapturePath  string `json:"capture_path" toml:"capture_path" yaml:"capture_path"`
	CaptureScale int    `json:"capture_scale" toml:"capture_scale" yaml:"capture_scale"`
}

// Load reads a config file; the extension selects JSON, TOML or YAML.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: unknown extension %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Relative asset paths are relative to the config file.
	dir := filepath.Dir(path)
	cfg.SpriteDir = relativeTo(dir, cfg.SpriteDir)
	cfg.SpriteManifest = relativeTo(dir, cfg.SpriteManifest)
	cfg.CapturePath = relativeTo(dir, cfg.CapturePath)

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width       int
	Height      int
	SpriteDir   string
	Manifest    string
	CapturePath string
	Workers     int
}

// Resolve applies flag overrides, expands "~" in paths and fills defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) error {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.SpriteDir != "" {
		c.SpriteDir = flags.SpriteDir
	}
	if flags.Manifest != "" {
		c.SpriteManifest = flags.Manifest
	}
	if flags.CapturePath != "" {
		c.CapturePath = flags.CapturePath
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	for _, p := range []*string{&c.SpriteDir, &c.SpriteManifest, &c.CapturePath} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("config: expand %s: %w", *p, err)
		}
		*p = expanded
	}

	// Defaults
	if c.Title == "" {
		c.Title = "DavinciGL Window"
	}
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.TickMillis <= 0 {
		c.TickMillis = 16
	}
	if len(c.Background) != 3 {
		c.Background = []int{192, 192, 192}
	}
	if c.CaptureScale <= 0 {
		c.CaptureScale = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

// Tick returns the render period.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

func relativeTo(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "~") {
		return p
	}
	return filepath.Join(dir, p)
}
