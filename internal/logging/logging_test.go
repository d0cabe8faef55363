package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToStderrAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Stderr: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer func() { _ = closer.Close() }()

	logger.Info("hidden")
	logger.Warn("shown", "speed", 300)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "speed=300") {
		t.Fatalf("expected warn entry, got %q", out)
	}
}

func TestNewFileLoggerDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sortlab.log")
	logger, closer, err := New(Options{Path: path, Debug: true})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("tick", "pass", 2)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "pass=2") {
		t.Fatalf("expected logfmt entry, got %q", data)
	}
}
