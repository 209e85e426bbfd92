package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSkyraid loads skyraid configuration.
// Search order: customPath -> ~/.skyraid/configs/skyraid.yaml -> ./configs/skyraid.yaml -> embedded default
// Files are decoded over the defaults, so a partial file only overrides the keys it names.
func LoadSkyraid(customPath string) (SkyraidConfig, error) {
	cfg := DefaultSkyraidConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("skyraid.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultSkyraidConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "skyraid.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultSkyraidConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSkyraidYAML, &cfg); err != nil {
		return DefaultSkyraidConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path under ~/.skyraid/configs, or "" without a home dir.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skyraid", "configs", filename)
}

// ApplySkyraidPreset selects a difficulty preset. The spawn ramp picks the
// preset up when a run starts; milestones and caps change here.
func ApplySkyraidPreset(cfg *SkyraidConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	// Adjust milestones so easy runs see bosses later and hard runs sooner
	switch preset {
	case DifficultyEasy:
		cfg.Milestones.MidBossFirst = 2000
		cfg.Spawn.SniperCap = 1
	case DifficultyHard:
		cfg.Milestones.MidBossFirst = 1000
		cfg.Spawn.WaveCap = 4
	}
}
