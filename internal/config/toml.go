// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Lab LabConfig `toml:"lab"`
	Log LogConfig `toml:"log"`
}

// LabConfig maps engine and playback settings.
type LabConfig struct {
	Preset    *string `toml:"preset"`
	Size      *int    `toml:"size"`
	Min       *int    `toml:"min"`
	Max       *int    `toml:"max"`
	SpeedMs   *int    `toml:"speed"`
	Optimized *bool   `toml:"optimized"`
	TwoPhase  *bool   `toml:"two-phase"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	File  *string `toml:"file"`
	Debug *bool   `toml:"debug"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
