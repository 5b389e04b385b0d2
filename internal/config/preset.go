package config

// Preset is a named difficulty level.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
	PresetCustom Preset = "custom" // Keep the loaded settings
)

// Presets lists the presets in the order offered to the user.
var Presets = []Preset{PresetEasy, PresetNormal, PresetHard, PresetCustom}

// ApplyPreset modifies the session settings based on a difficulty preset.
func ApplyPreset(cfg *TrainerConfig, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Session.BPM = 60
		cfg.Session.Figures = []string{"whole", "half", "quarter"}
		cfg.Session.IncludeRests = false
	case PresetNormal:
		cfg.Session.BPM = 80
		cfg.Session.Figures = []string{"half", "quarter", "eighth"}
		cfg.Session.IncludeRests = true
	case PresetHard:
		cfg.Session.BPM = 110
		cfg.Session.Figures = []string{"quarter", "eighth", "sixteenth"}
		cfg.Session.IncludeRests = true
	}
}

// IsPreset reports whether s names a known preset.
func IsPreset(s string) bool {
	for _, p := range Presets {
		if string(p) == s {
			return true
		}
	}
	return false
}
