// Package config loads and saves the viewer settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config holds all user-tunable settings.
type Config struct {
	// Extensions is the lowercase file extension filter for directory scans.
	Extensions []string `yaml:"extensions"`

	// SortOrder is "name", "modtime" or "size".
	SortOrder string `yaml:"sort_order"`

	// PreloadWindow is how many pictures on each side of the current one
	// are preloaded into memory.
	PreloadWindow int `yaml:"preload_window"`

	// PreloadWorkers bounds how many pictures are decoded concurrently.
	PreloadWorkers int `yaml:"preload_workers"`

	// SlideshowIntervalMS is the delay between slideshow advances.
	SlideshowIntervalMS int `yaml:"slideshow_interval_ms"`

	// HistoryLimit is how many recent directories are remembered.
	HistoryLimit int `yaml:"history_limit"`

	// WindowWidth and WindowHeight are the initial main window size.
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Extensions:          []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".webp", ".tif", ".tiff", ".svg"},
		SortOrder:           "name",
		PreloadWindow:       2,
		PreloadWorkers:      2,
		SlideshowIntervalMS: 3000,
		HistoryLimit:        20,
		WindowWidth:         1080,
		WindowHeight:        720,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "axiv", "config.yaml")
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file returns ErrConfigNotFound; callers that did not ask
// for a specific file should fall back to Default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()

	return cfg, nil
}

// LoadOrDefault loads the config at path, falling back to defaults when no
// file exists. Other errors are still reported.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the config to path, or the default location when path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// normalize clamps nonsensical values back to the defaults.
func (c *Config) normalize() {
	def := Default()

	if len(c.Extensions) == 0 {
		c.Extensions = def.Extensions
	}
	if c.PreloadWindow < 0 {
		c.PreloadWindow = def.PreloadWindow
	}
	if c.PreloadWorkers < 1 {
		c.PreloadWorkers = def.PreloadWorkers
	}
	if c.SlideshowIntervalMS < 100 {
		c.SlideshowIntervalMS = def.SlideshowIntervalMS
	}
	if c.HistoryLimit < 1 {
		c.HistoryLimit = def.HistoryLimit
	}
	if c.WindowWidth < 320 {
		c.WindowWidth = def.WindowWidth
	}
	if c.WindowHeight < 240 {
		c.WindowHeight = def.WindowHeight
	}
}
