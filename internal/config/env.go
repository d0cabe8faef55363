package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds SORTLAB_* overrides. Unset variables leave fields nil.
type EnvConfig struct {
	Preset    *string `env:"SORTLAB_PRESET"`
	Size      *int    `env:"SORTLAB_SIZE"`
	Min       *int    `env:"SORTLAB_MIN"`
	Max       *int    `env:"SORTLAB_MAX"`
	SpeedMs   *int    `env:"SORTLAB_SPEED_MS"`
	Optimized *bool   `env:"SORTLAB_OPTIMIZED"`
	TwoPhase  *bool   `env:"SORTLAB_TWO_PHASE"`
	LogFile   *string `env:"SORTLAB_LOG_FILE"`
	Debug     *bool   `env:"SORTLAB_DEBUG"`
	DBPath    *string `env:"SORTLAB_DB_PATH"`
}

// LoadEnv parses SORTLAB_* variables from the process environment.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse env: %w", err)
	}
	return cfg, nil
}

// LoadEnvFrom parses SORTLAB_* variables from the given map.
func LoadEnvFrom(vars map[string]string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse env: %w", err)
	}
	return cfg, nil
}

// Merge overlays set environment values on top of the file config.
func (c FileConfig) Merge(e EnvConfig) FileConfig {
	c.Lab.Preset = pick(e.Preset, c.Lab.Preset)
	c.Lab.Size = pick(e.Size, c.Lab.Size)
	c.Lab.Min = pick(e.Min, c.Lab.Min)
	c.Lab.Max = pick(e.Max, c.Lab.Max)
	c.Lab.SpeedMs = pick(e.SpeedMs, c.Lab.SpeedMs)
	c.Lab.Optimized = pick(e.Optimized, c.Lab.Optimized)
	c.Lab.TwoPhase = pick(e.TwoPhase, c.Lab.TwoPhase)
	c.Log.File = pick(e.LogFile, c.Log.File)
	c.Log.Debug = pick(e.Debug, c.Log.Debug)
	return c
}

// DBPathOrDefault returns the run log location, honouring SORTLAB_DB_PATH.
func (e EnvConfig) DBPathOrDefault() string {
	if e.DBPath != nil && *e.DBPath != "" {
		return *e.DBPath
	}
	return DefaultDBPath()
}

func pick[T any](override, base *T) *T {
	if override != nil {
		return override
	}
	return base
}
