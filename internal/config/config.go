// Package config loads the painter's settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
type Config struct {
	Palette PaletteConfig `yaml:"palette"`
	Drawing DrawingConfig `yaml:"drawing"`
	Preview PreviewConfig `yaml:"preview"`
}

type PaletteConfig struct {
	Path     string `yaml:"path"`     // empty selects the built-in wool palette
	Fallback string `yaml:"fallback"` // overrides the palette's fallback block
	Dither   bool   `yaml:"dither"`
}

type DrawingConfig struct {
	MaxChanges        int `yaml:"max_changes"` // 0 is unbounded
	ImageWidth        int `yaml:"image_width"`
	MeshSize          int `yaml:"mesh_size"`
	TextureResolution int `yaml:"texture_resolution"`
}

type PreviewConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"` // pixels; two per terminal row
	FPS       int     `yaml:"fps"`
	Pitch     float64 `yaml:"pitch"`      // degrees above the horizon
	TurnSpeed float64 `yaml:"turn_speed"` // degrees per second
	Frequency float64 `yaml:"frequency"`  // spring angular frequency
	Damping   float64 `yaml:"damping"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Drawing: DrawingConfig{
			MaxChanges:        100000,
			ImageWidth:        64,
			MeshSize:          32,
			TextureResolution: 16,
		},
		Preview: PreviewConfig{
			Width:     120,
			Height:    80,
			FPS:       30,
			Pitch:     25,
			TurnSpeed: 45,
			Frequency: 6,
			Damping:   0.8,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Drawing.MaxChanges < 0 {
		return errors.New("drawing.max_changes cannot be negative")
	}
	if c.Drawing.ImageWidth <= 0 {
		return errors.New("drawing.image_width must be positive")
	}
	if c.Drawing.MeshSize <= 0 {
		return errors.New("drawing.mesh_size must be positive")
	}
	if c.Drawing.TextureResolution <= 0 {
		return errors.New("drawing.texture_resolution must be positive")
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return errors.New("preview dimensions must be positive")
	}
	if c.Preview.FPS <= 0 {
		return errors.New("preview.fps must be positive")
	}
	if c.Preview.Pitch < -90 || c.Preview.Pitch > 90 {
		return fmt.Errorf("preview.pitch %v out of range [-90, 90]", c.Preview.Pitch)
	}
	if c.Preview.Frequency <= 0 {
		return errors.New("preview.frequency must be positive")
	}
	if c.Preview.Damping < 0 {
		return errors.New("preview.damping cannot be negative")
	}
	return nil
}
