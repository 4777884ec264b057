// Package config loads editor settings from a YAML file, falling back
// to defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full editor configuration.
type Config struct {
	Layout   LayoutConfig   `yaml:"layout"`
	Drag     DragConfig     `yaml:"drag"`
	History  HistoryConfig  `yaml:"history"`
	Storage  StorageConfig  `yaml:"storage"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// LayoutConfig tunes the layout engine.
type LayoutConfig struct {
	DepthSpacing int    `yaml:"depthSpacing"`
	SiblingGap   int    `yaml:"siblingGap"`
	SubtreeGap   int    `yaml:"subtreeGap"`
	MaxNodeWidth int    `yaml:"maxNodeWidth"`
	Orientation  string `yaml:"orientation"` // "vertical" or "horizontal"
}

// DragConfig tunes the drag controller.
type DragConfig struct {
	Threshold int `yaml:"threshold"`
	SnapGrid  int `yaml:"snapGrid"`
}

// HistoryConfig tunes undo history.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// StorageConfig locates the snapshot database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// AnalysisConfig points at the load-analysis service.
type AnalysisConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Layout: LayoutConfig{
			DepthSpacing: 8,
			SiblingGap:   4,
			SubtreeGap:   10,
			MaxNodeWidth: 40,
			Orientation:  "vertical",
		},
		Drag: DragConfig{
			Threshold: 2,
			SnapGrid:  1,
		},
		History: HistoryConfig{
			Capacity: 50,
		},
		Storage: StorageConfig{
			Path: filepath.Join(home, ".sld", "projects.db"),
		},
		Analysis: AnalysisConfig{
			TimeoutSeconds: 15,
		},
	}
}

// Load reads configuration from path. A missing file yields defaults;
// a present but invalid file is an error. Values the file omits keep
// their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// AnalysisTimeout returns the configured timeout as a duration.
func (c *Config) AnalysisTimeout() time.Duration {
	if c.Analysis.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Analysis.TimeoutSeconds) * time.Second
}
