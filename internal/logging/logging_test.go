package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLevelHidesDebug(t *testing.T) {
	t.Setenv("INVADERS_LOG_LEVEL", "")
	var buf bytes.Buffer
	logger := New(&buf, "test")

	logger.Debug("hidden")
	logger.Info("shown", "score", 10)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at default level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "score=10") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("INVADERS_LOG_LEVEL", "debug")
	var buf bytes.Buffer
	New(&buf, "").Debug("wave spawned", "enemies", 3)
	if !strings.Contains(buf.String(), "enemies=3") {
		t.Fatalf("debug line missing: %q", buf.String())
	}
}

func TestNewFromEnvWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invaders.log")
	t.Setenv("INVADERS_LOG", path)
	t.Setenv("INVADERS_LOG_LEVEL", "")

	logger, closeLog, err := NewFromEnv("game")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("game over", "reason", "time up")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "game over") {
		t.Fatalf("log file = %q", data)
	}
}

func TestNewFromEnvDiscards(t *testing.T) {
	t.Setenv("INVADERS_LOG", "")
	logger, closeLog, err := NewFromEnv("game")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("nowhere")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}
}
