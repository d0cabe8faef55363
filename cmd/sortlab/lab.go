package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/sortlab/internal/config"
	"github.com/verte-zerg/sortlab/internal/dataset"
	"github.com/verte-zerg/sortlab/internal/generator"
	"github.com/verte-zerg/sortlab/internal/logging"
	"github.com/verte-zerg/sortlab/internal/model"
)

const (
	defaultSize    = 8
	defaultMin     = 1
	defaultMax     = 12
	defaultSpeedMs = 500
	minSpeedMs     = 50
	maxSpeedMs     = 2000
)

type labFlags struct {
	values    string
	file      string
	preset    string
	size      int
	min       int
	max       int
	speedMs   int
	optimized bool
	twoPhase  bool
}

type labSettings struct {
	cfg  model.Config
	env  config.EnvConfig
	file config.FileConfig
}

func addLabFlags(cmd *cobra.Command, f *labFlags) {
	cmd.Flags().StringVar(&f.values, "values", "", "comma or space separated integers to sort")
	cmd.Flags().StringVar(&f.file, "file", "", "read integers from a file")
	cmd.Flags().StringVar(&f.preset, "preset", "", "example array (see: sortlab presets)")
	cmd.Flags().IntVar(&f.size, "size", defaultSize, "length of a random array")
	cmd.Flags().IntVar(&f.min, "min", defaultMin, "smallest random value")
	cmd.Flags().IntVar(&f.max, "max", defaultMax, "largest random value")
	cmd.Flags().IntVar(&f.speedMs, "speed", defaultSpeedMs, "delay between playback steps in ms")
	cmd.Flags().BoolVar(&f.optimized, "optimized", false, "stop after the first pass without swaps")
	cmd.Flags().BoolVar(&f.twoPhase, "two-phase", false, "highlight each pair before a manual step resolves it")
}

// loadLab resolves lab settings. Flags win over SORTLAB_* variables, which
// win over the config file.
func loadLab(cmd *cobra.Command, f *labFlags) (labSettings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return labSettings{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return labSettings{}, err
	}
	merged := fileCfg.Merge(envCfg)

	applyStringConfig(cmd, "preset", &f.preset, merged.Lab.Preset)
	applyIntConfig(cmd, "size", &f.size, merged.Lab.Size)
	applyIntConfig(cmd, "min", &f.min, merged.Lab.Min)
	applyIntConfig(cmd, "max", &f.max, merged.Lab.Max)
	applyIntConfig(cmd, "speed", &f.speedMs, merged.Lab.SpeedMs)
	applyBoolConfig(cmd, "optimized", &f.optimized, merged.Lab.Optimized)
	applyBoolConfig(cmd, "two-phase", &f.twoPhase, merged.Lab.TwoPhase)

	cfg := model.Config{
		Values:    f.values,
		File:      f.file,
		Preset:    f.preset,
		Size:      f.size,
		Min:       f.min,
		Max:       f.max,
		SpeedMs:   f.speedMs,
		Optimized: f.optimized,
		TwoPhase:  f.twoPhase,
	}
	if err := validateConfig(cfg); err != nil {
		return labSettings{}, err
	}
	return labSettings{cfg: cfg, env: envCfg, file: merged}, nil
}

// openLogger builds the logger for a command. Interactive commands log to a
// file by default because the TUI owns the terminal.
func openLogger(cmd *cobra.Command, fileCfg config.FileConfig, interactive bool) (*log.Logger, func(), error) {
	debug := logDebug
	path := logFile
	applyBoolConfig(cmd, "debug", &debug, fileCfg.Log.Debug)
	applyStringConfig(cmd, "log-file", &path, fileCfg.Log.File)
	if interactive && path == "" {
		path = config.DefaultLogPath()
	}
	logger, closer, err := logging.New(logging.Options{Path: path, Debug: debug})
	if err != nil {
		return nil, nil, err
	}
	return logger, func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}, nil
}

// resolveValues picks the input array: explicit values, then a file, then a
// preset, then fallbackPreset, and finally a random array.
func resolveValues(cfg model.Config, gen *generator.Generator, fallbackPreset string) ([]int, error) {
	switch {
	case cfg.Values != "":
		values, err := dataset.ParseInts(cfg.Values)
		if err != nil {
			return nil, fmt.Errorf("invalid --values: %w", err)
		}
		return values, nil
	case cfg.File != "":
		values, err := dataset.LoadInts(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", cfg.File, err)
		}
		return values, nil
	}
	name := cfg.Preset
	if name == "" {
		name = fallbackPreset
	}
	if name != "" {
		values, ok := generator.Preset(name)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(generator.PresetNames(), ", "))
		}
		return values, nil
	}
	return gen.Ints(cfg.Size, cfg.Min, cfg.Max), nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Values != "" && cfg.File != "" {
		return fmt.Errorf("--values and --file are mutually exclusive")
	}
	if cfg.Size < 1 || cfg.Size > dataset.MaxLength {
		return fmt.Errorf("--size must be between 1 and %d", dataset.MaxLength)
	}
	if cfg.Min > cfg.Max {
		return fmt.Errorf("--min must be <= --max")
	}
	if cfg.SpeedMs < minSpeedMs || cfg.SpeedMs > maxSpeedMs {
		return fmt.Errorf("--speed must be between %d and %d", minSpeedMs, maxSpeedMs)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sortlab configuration
# Uncomment a value to enable it. SORTLAB_* variables override config values,
# CLI flags override both.

[lab]
# preset = "concept"      # Example array: %s
# size = %d               # Length of a random array
# min = %d                # Smallest random value
# max = %d               # Largest random value
# speed = %d            # Delay between playback steps in ms (%d-%d)
# optimized = false       # Stop after the first pass without swaps
# two-phase = false       # Highlight each pair before a manual step resolves it

[log]
# file = %q
# debug = false
`,
		strings.Join(generator.PresetNames(), ", "),
		defaultSize,
		defaultMin,
		defaultMax,
		defaultSpeedMs,
		minSpeedMs,
		maxSpeedMs,
		config.DefaultLogPath(),
	)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
