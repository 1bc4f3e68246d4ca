package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the simulation config file name searched for on disk.
const ConfigFile = "gunsim.yaml"

// LoadSim loads the simulation configuration.
// Search order: customPath -> ~/.gunsim/configs/gunsim.yaml -> ./configs/gunsim.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadSim(customPath string) (SimConfig, error) {
	return LoadSimOver(embeddedDefaults(), customPath)
}

// LoadSimOver loads like LoadSim but decodes the first config file found
// over base instead of the defaults. When no file is found base is returned
// as is.
func LoadSimOver(base SimConfig, customPath string) (SimConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := base
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath, base); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", ConfigFile), base); ok {
		return loaded, nil
	}

	return base, nil
}

// embeddedDefaults decodes the embedded default YAML.
func embeddedDefaults() SimConfig {
	cfg := DefaultSimConfig()
	if err := yaml.Unmarshal(defaultSimYAML, &cfg); err != nil {
		return DefaultSimConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// tryLoad reads an optional config file over base. Missing, unparsable or
// invalid files are skipped so the next location in the search order is used.
func tryLoad(path string, base SimConfig) (SimConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SimConfig{}, false
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SimConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return SimConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gunsim", "configs", filename)
}
