package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(&cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMainConfigOverlaysFile(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "config"), 0755); err != nil {
		t.Fatal(err)
	}
	yml := []byte("node_id: \"AB12CD\"\ndefault_ttl: 5\nseen_capacity: 16\n")
	if err := os.WriteFile(filepath.Join(base, "config", "mesh.yml"), yml, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMainConfig(base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.NodeID != "AB12CD" || cfg.DefaultTTL != 5 || cfg.SeenCapacity != 16 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.AdvBurstMs != 300 || cfg.InjectPeriodMs != 60_000 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMainConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadMainConfig(t.TempDir())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*MainConfig)
	}{
		{"short node id", func(c *MainConfig) { c.NodeID = "AB" }},
		{"zero seen capacity", func(c *MainConfig) { c.SeenCapacity = 0 }},
		{"oversized ttl", func(c *MainConfig) { c.DefaultTTL = 99 }},
		{"multi-char frame type", func(c *MainConfig) { c.FrameType = "TT" }},
		{"bad group addr", func(c *MainConfig) { c.GroupAddr = "not an address" }},
		{"inverted scan intervals", func(c *MainConfig) {
			c.ScanIntervalMinMs = 50
			c.ScanIntervalMaxMs = 10
		}},
	}

	for _, c := range cases {
		cfg := DefaultConfig()
		c.mutate(&cfg)
		if err := Validate(&cfg); err == nil {
			t.Errorf("%s: validation passed, want error", c.name)
		}
	}
}
