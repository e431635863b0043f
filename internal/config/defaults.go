package config

import (
	_ "embed"
)

//go:embed defaults/twenty48.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration, used when no config
// file is found and the embedded default fails to parse.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			Variant:    "classic",
			Difficulty: "fixed",
		},
		UI: UIConfig{
			SettleDelayMS: 120,
			ShowHints:     true,
		},
	}
}
