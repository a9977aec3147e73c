package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type MainConfig struct {
	NodeID    string `yaml:"node_id" validate:"omitempty,len=6"`
	LogPath   string `yaml:"log_path" validate:"required"`
	GroupAddr string `yaml:"group_addr" validate:"required,hostname_port"`

	DefaultTTL   int    `yaml:"default_ttl" validate:"min=0,max=16"`
	SeenCapacity int    `yaml:"seen_capacity" validate:"min=1"`
	FrameType    string `yaml:"frame_type" validate:"required,len=1"`

	InjectPeriodMs int64 `yaml:"inject_period_ms" validate:"min=100"`
	InjectJitterMs int64 `yaml:"inject_jitter_ms" validate:"min=0"`

	AdvBurstMs    int `yaml:"adv_burst_ms" validate:"min=10"`
	AdvIntervalMs int `yaml:"adv_interval_ms" validate:"min=20"`

	ScanWindowMs      int `yaml:"scan_window_ms" validate:"min=100"`
	ScanIntervalMinMs int `yaml:"scan_interval_min_ms" validate:"min=1"`
	ScanIntervalMaxMs int `yaml:"scan_interval_max_ms" validate:"min=1"`

	PollIntervalMs int `yaml:"poll_interval_ms" validate:"min=1"`
}

// DefaultConfig mirrors the node's stock timing: one injection per minute
// with up to ten seconds of jitter, 300 ms advertising bursts at a 200 ms
// interval, ten second scan windows, hop budget 3, seen capacity 400.
func DefaultConfig() MainConfig {
	return MainConfig{
		LogPath:           "./log/",
		GroupAddr:         "239.76.49.77:40412",
		DefaultTTL:        3,
		SeenCapacity:      400,
		FrameType:         "T",
		InjectPeriodMs:    60_000,
		InjectJitterMs:    10_000,
		AdvBurstMs:        300,
		AdvIntervalMs:     200,
		ScanWindowMs:      10_000,
		ScanIntervalMinMs: 30,
		ScanIntervalMaxMs: 30,
		PollIntervalMs:    20,
	}
}

// LoadMainConfig reads config/mesh.yml under basePath, layering it over the
// defaults. A missing file leaves the defaults untouched; any other read or
// parse problem is an error. The result is validated before it is returned.
func LoadMainConfig(basePath string) (*MainConfig, error) {
	cfg := DefaultConfig()

	exePath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if basePath == "" {
		basePath = filepath.Dir(exePath)
	}
	configPath := filepath.Join(basePath, "config", "mesh.yml")

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags plus the cross-field scan interval order.
func Validate(cfg *MainConfig) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.ScanIntervalMaxMs < cfg.ScanIntervalMinMs {
		return fmt.Errorf("invalid config: scan_interval_max_ms < scan_interval_min_ms")
	}
	return nil
}
