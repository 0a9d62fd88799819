// Package config provides YAML-based configuration loading for the engine,
// its terminal backends and the demo games.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cge/internal/core"
)

// Config is the whole cge configuration file.
type Config struct {
	Backend      string        `yaml:"backend"`       // ansi, tcell or memory
	HoldWindow   time.Duration `yaml:"hold_window"`   // How long a terminal key stays down after its last event
	SetFont      bool          `yaml:"set_font"`      // ansi: request the face for the font size
	ResizeWindow bool          `yaml:"resize_window"` // ansi: request the window size
	Difficulty   Difficulty    `yaml:"difficulty"`

	LogFile  string `yaml:"log_file"` // Empty discards logs
	LogLevel string `yaml:"log_level"`
	DBPath   string `yaml:"db_path"`

	// Games overrides the designed geometry per game ID. Zero fields keep
	// the game's own values.
	Games map[string]core.Geometry `yaml:"games"`
}

// GeometryFor returns the geometry game id should run with.
func (c Config) GeometryFor(id string, designed core.Geometry) core.Geometry {
	return designed.Merge(c.Games[id])
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Validate checks the values a YAML decoder cannot.
func (c Config) Validate() error {
	if c.HoldWindow < 0 {
		return fmt.Errorf("config: hold_window must not be negative, got %s", c.HoldWindow)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	if _, err := ParseDifficulty(string(c.Difficulty)); err != nil {
		return err
	}
	for id, g := range c.Games {
		if g.Width < 0 || g.Height < 0 || g.FontWidth < 0 || g.FontHeight < 0 {
			return fmt.Errorf("config: games.%s: sizes must not be negative, got %s", id, g)
		}
	}
	return nil
}

// Normalize lowercases the enumerated string values.
func (c *Config) Normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Difficulty = Difficulty(strings.ToLower(strings.TrimSpace(string(c.Difficulty))))
}
