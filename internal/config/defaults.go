package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/cge/internal/core"
)

//go:embed defaults/cge.yaml
var defaultYAML []byte

// DefaultHoldWindow matches the key repeat delay of most terminals.
const DefaultHoldWindow = 120 * time.Millisecond

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Backend:      "ansi",
		HoldWindow:   DefaultHoldWindow,
		SetFont:      false,
		ResizeWindow: true,
		Difficulty:   DifficultyNormal,
		LogFile:      "",
		LogLevel:     "info",
		DBPath:       "~/.cge/records.db",
		Games:        map[string]core.Geometry{},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
