package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the stacker configuration.
// Search order: customPath -> ~/.stacker/configs/stacker.yaml -> ./configs/stacker.yaml -> embedded default
//
// A custom path that cannot be read, parsed, or validated is an error. The
// other locations are skipped when unusable.
func Load(customPath string) (StackerConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath("stacker.yaml"),
		filepath.Join("configs", "stacker.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultStackerYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultStackerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func loadFile(path string) (StackerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StackerConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parse decodes YAML on top of the defaults, so a file only needs the keys
// it changes.
func parse(data []byte) (StackerConfig, error) {
	cfg := DefaultStackerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stacker", "configs", filename)
}
