// Package config provides YAML-based configuration loading and
// difficulty presets for the game.
package config

import (
	"github.com/vovakirdan/twenty48/internal/variant"
)

// Config is the full configuration file.
type Config struct {
	Game     GameConfig        `yaml:"game"`
	UI       UIConfig          `yaml:"ui"`
	Variants []variant.Variant `yaml:"variants"`
}

// GameConfig selects what is played by default.
type GameConfig struct {
	// Variant is the default variant ID when none is given on the
	// command line.
	Variant string `yaml:"variant"`

	// Difficulty is the default difficulty preset name.
	Difficulty string `yaml:"difficulty"`
}

// UIConfig tunes the terminal presentation.
type UIConfig struct {
	// SettleDelayMS is the pause between the tiles landing and the next
	// tile spawning, in milliseconds. Zero spawns immediately.
	SettleDelayMS int `yaml:"settle_delay_ms"`

	// ShowHints toggles the key help line under the board.
	ShowHints bool `yaml:"show_hints"`
}

// RegisterVariants merges user-defined variants from the config into the
// variant registry.
func (c Config) RegisterVariants() {
	variant.Merge(c.Variants)
}
