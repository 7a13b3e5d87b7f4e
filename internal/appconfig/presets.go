// internal/appconfig/presets.go
package appconfig

// ChatPreset is the sampling preset for plain chat and for the generic side of a comparison prompt.
func ChatPreset() Settings {
	return Settings{
		Temperature: ptrFloat(0.7),
		TopP:        ptrFloat(1.0),
		MaxTokens:   ptrInt(1000),
		Stream:      true,
	}
}

// TestDefaultPreset is the generic ("default") side of a comparison.
func TestDefaultPreset() Settings {
	return Settings{
		Temperature: ptrFloat(0.7),
		TopP:        ptrFloat(1.0),
		MaxTokens:   ptrInt(1000),
		Stream:      true,
	}
}

// TestSpecializedPreset is the base of the specialized side of a comparison,
// before aspect blending.
func TestSpecializedPreset() Settings {
	return Settings{
		Temperature: ptrFloat(0.9),
		TopP:        ptrFloat(0.9),
		MaxTokens:   ptrInt(1500),
		Stream:      true,
	}
}

// MergeSettings overlays every parameter set in override onto a copy of base.
func MergeSettings(base Settings, override Settings) Settings {
	out := base.Clone()
	if override.Temperature != nil {
		out.Temperature = ptrFloat(*override.Temperature)
	}
	if override.TopP != nil {
		out.TopP = ptrFloat(*override.TopP)
	}
	if override.MaxTokens != nil {
		out.MaxTokens = ptrInt(*override.MaxTokens)
	}
	if override.FrequencyPenalty != nil {
		out.FrequencyPenalty = ptrFloat(*override.FrequencyPenalty)
	}
	if override.PresencePenalty != nil {
		out.PresencePenalty = ptrFloat(*override.PresencePenalty)
	}
	return out
}

// Pointer helpers (keeps structs clean + preserves unset vs explicitly set).
func ptrInt(v int) *int           { return &v }
func ptrFloat(v float64) *float64 { return &v }

// Float returns a pointer to v. It is exported for callers building Settings literals.
func Float(v float64) *float64 { return ptrFloat(v) }

// Int returns a pointer to v.
func Int(v int) *int { return ptrInt(v) }
