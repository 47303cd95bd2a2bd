package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "usdlog.yaml"

// Load builds the effective configuration. An explicit path must
// exist; otherwise the standard locations are probed and a missing
// file just means defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		if err := cfg.loadFromFile(file); err != nil {
			return nil, fmt.Errorf("load config %s: %w", file, err)
		}
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// findConfigFile resolves the config file location. Search order:
// explicit path, current directory, then the user config dir.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	if dir, err := ConfigDir(); err == nil {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", nil
}

// ConfigDir returns the per-user directory for this tool's files.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "usdlog"), nil
}
