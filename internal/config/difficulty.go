package config

import "github.com/vovakirdan/twenty48/internal/variant"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ValidPreset returns true if name is a known difficulty preset.
func ValidPreset(name string) bool {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}

// ApplyDifficulty adjusts a variant's rules for a preset. Harder presets
// spawn more 4s and remember fewer moves; DifficultyFixed plays the
// variant exactly as written.
func ApplyDifficulty(v *variant.Variant, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		v.FourProb = 0.05
		v.UndoDepth = 10
	case DifficultyNormal:
		v.FourProb = 0.10
		v.UndoDepth = 5
	case DifficultyHard:
		v.FourProb = 0.20
		v.UndoDepth = 2
	}
}
