// Package config loads game settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/plus3/glyphwalk/input"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const maxHalfExtent = 512

// Config holds the viewport, input and logging settings of a game.
type Config struct {
	// HalfWidth and HalfHeight size the viewport around the origin:
	// it shows [-HalfWidth, HalfWidth) by [-HalfHeight, HalfHeight).
	HalfWidth  int    `yaml:"half_width"`
	HalfHeight int    `yaml:"half_height"`
	Glyph      string `yaml:"glyph"`
	FrameRate  int    `yaml:"frame_rate"`
	LogLevel   string `yaml:"log_level"`
	LogFile    string `yaml:"log_file"`
	// Bindings maps platform key codes to logical key names (up, left, down, right).
	Bindings map[string]string `yaml:"bindings"`
}

// Default returns the stock settings: a 20x20 viewport, '@' player, WASD.
func Default() *Config {
	return &Config{
		HalfWidth:  10,
		HalfHeight: 10,
		Glyph:      "@",
		FrameRate:  60,
		LogLevel:   "info",
		Bindings: map[string]string{
			"KeyW": "up",
			"KeyA": "left",
			"KeyS": "down",
			"KeyD": "right",
		},
	}
}

// Load decodes YAML from r over the defaults and validates the result.
// A bindings section replaces the default bindings entirely.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	defaults := cfg.Bindings
	cfg.Bindings = nil

	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Bindings == nil {
		cfg.Bindings = defaults
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file. An empty path returns the defaults.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Validate checks ranges and bindings.
func (c *Config) Validate() error {
	if c.HalfWidth <= 0 || c.HalfWidth > maxHalfExtent {
		return fmt.Errorf("%w: half_width %d out of range 1..%d", ErrInvalidConfig, c.HalfWidth, maxHalfExtent)
	}
	if c.HalfHeight <= 0 || c.HalfHeight > maxHalfExtent {
		return fmt.Errorf("%w: half_height %d out of range 1..%d", ErrInvalidConfig, c.HalfHeight, maxHalfExtent)
	}
	if utf8.RuneCountInString(c.Glyph) != 1 {
		return fmt.Errorf("%w: glyph %q must be a single character", ErrInvalidConfig, c.Glyph)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame_rate must be positive", ErrInvalidConfig)
	}
	if _, err := c.KeyBindings(); err != nil {
		return err
	}
	return nil
}

// GlyphRune returns the player glyph.
func (c *Config) GlyphRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Glyph)
	return r
}

// KeyBindings resolves Bindings to logical keys.
func (c *Config) KeyBindings() (map[string]input.Key, error) {
	bindings := make(map[string]input.Key, len(c.Bindings))
	for code, name := range c.Bindings {
		k, ok := input.ParseKey(name)
		if !ok {
			return nil, fmt.Errorf("%w: binding %s: unknown key %q", ErrInvalidConfig, code, name)
		}
		bindings[code] = k
	}
	return bindings, nil
}
