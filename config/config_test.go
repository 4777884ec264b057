package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Layout.DepthSpacing != 8 || cfg.History.Capacity != 50 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Layout.Orientation != "vertical" {
		t.Errorf("default orientation should be vertical, got %q", cfg.Layout.Orientation)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
layout:
  orientation: horizontal
drag:
  snapGrid: 4
analysis:
  url: http://localhost:9000
  timeoutSeconds: 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Layout.Orientation != "horizontal" {
		t.Error("orientation override lost")
	}
	if cfg.Drag.SnapGrid != 4 {
		t.Error("snap grid override lost")
	}
	if cfg.Layout.DepthSpacing != 8 {
		t.Error("omitted keys must keep defaults")
	}
	if cfg.AnalysisTimeout() != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.AnalysisTimeout())
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("layout: [not a mapping"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("invalid yaml should error")
	}
}

func TestAnalysisTimeoutFallback(t *testing.T) {
	cfg := &Config{}
	if cfg.AnalysisTimeout() != 15*time.Second {
		t.Errorf("zero timeout should fall back, got %v", cfg.AnalysisTimeout())
	}
}
