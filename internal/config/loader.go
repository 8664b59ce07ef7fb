package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in every search directory.
const FileName = "rollball.yaml"

// LoadRollball loads the course configuration.
// Search order: customPath -> ~/.rollball/configs/rollball.yaml -> ./configs/rollball.yaml -> embedded default
// Keys missing from a file keep their default values.
func LoadRollball(customPath string) (RollballConfig, error) {
	cfg := DefaultRollballConfig()

	// A custom path must exist and be valid
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return parse(data, customPath)
	}

	for _, p := range searchPaths() {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if parsed, err := parse(data, p); err == nil {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	parsed, err := parse(defaultRollballYAML, "embedded default")
	if err != nil {
		return DefaultRollballConfig(), nil // Fallback to hardcoded if embed fails
	}
	return parsed, nil
}

// Locate returns the file LoadRollball(customPath) would read, or "" for the
// embedded default.
func Locate(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func parse(data []byte, source string) (RollballConfig, error) {
	cfg := DefaultRollballConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", source, err)
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", FileName))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rollball", "configs", filename)
}
