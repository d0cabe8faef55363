package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored: %v", err)
	}
	if cfg.Lab.SpeedMs != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigParsesLabSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[lab]\nspeed = 250\noptimized = true\npreset = \"worst\"\n\n[log]\ndebug = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Lab.SpeedMs == nil || *cfg.Lab.SpeedMs != 250 {
		t.Fatalf("unexpected speed: %v", cfg.Lab.SpeedMs)
	}
	if cfg.Lab.Optimized == nil || !*cfg.Lab.Optimized {
		t.Fatalf("expected optimized=true")
	}
	if cfg.Lab.Preset == nil || *cfg.Lab.Preset != "worst" {
		t.Fatalf("unexpected preset: %v", cfg.Lab.Preset)
	}
	if cfg.Lab.Size != nil {
		t.Fatalf("expected size to stay unset")
	}
	if cfg.Log.Debug == nil || !*cfg.Log.Debug {
		t.Fatalf("expected debug=true")
	}
}

func TestLoadConfigRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[lab\nspeed = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	speed := 900
	size := 6
	file := FileConfig{Lab: LabConfig{SpeedMs: &speed, Size: &size}}

	envCfg, err := LoadEnvFrom(map[string]string{
		"SORTLAB_SPEED_MS":  "120",
		"SORTLAB_OPTIMIZED": "true",
		"SORTLAB_DB_PATH":   "/tmp/lab.db",
	})
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	merged := file.Merge(envCfg)
	if *merged.Lab.SpeedMs != 120 {
		t.Fatalf("expected env speed, got %d", *merged.Lab.SpeedMs)
	}
	if *merged.Lab.Size != 6 {
		t.Fatalf("expected file size to survive, got %d", *merged.Lab.Size)
	}
	if merged.Lab.Optimized == nil || !*merged.Lab.Optimized {
		t.Fatalf("expected optimized from env")
	}
	if envCfg.DBPathOrDefault() != "/tmp/lab.db" {
		t.Fatalf("unexpected db path: %s", envCfg.DBPathOrDefault())
	}
}

func TestEnvRejectsBadInt(t *testing.T) {
	if _, err := LoadEnvFrom(map[string]string{"SORTLAB_SIZE": "many"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	if got := DefaultConfigPath(); got != filepath.Join(dir, "sortlab", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join(dir, "sortlab", "sortlab.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
}
