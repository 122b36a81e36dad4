package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/substantialcattle5/dupescan/internal/constants"
)

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return constants.DefaultConfigFileName
	}
	return filepath.Join(home, constants.DefaultConfigFileName)
}

// LoadScanConfig reads a YAML config file and overlays it on the defaults.
// A missing file is not an error: the defaults are returned unchanged.
func LoadScanConfig(path string) (*ScanConfig, error) {
	cfg := DefaultScanConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return &cfg, nil
}

// SaveScanConfig writes the config as YAML, creating parent directories.
func SaveScanConfig(path string, cfg *ScanConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.StandardDirPerms); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, data, constants.StandardFilePerms); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}

	return nil
}
