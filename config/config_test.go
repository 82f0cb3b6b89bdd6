package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Field.Width != 35 || cfg.Field.Height != 19 {
		t.Errorf("expected 35x19 field, got %dx%d", cfg.Field.Width, cfg.Field.Height)
	}
	if cfg.Values.MaxSporeSize != 0.75 {
		t.Errorf("expected max_spore_size 0.75, got %v", cfg.Values.MaxSporeSize)
	}
	if cfg.Values.PortalGrowthSpeedFast != 5.0 {
		t.Errorf("expected portal_growth_speed_fast 5.0, got %v", cfg.Values.PortalGrowthSpeedFast)
	}

	wantW := float32(35 * 1.3)
	if diff := cfg.Derived.WorldW32 - wantW; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("expected world width %v, got %v", wantW, cfg.Derived.WorldW32)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("field:\n  width: 9\nvalues:\n  growth_speed_fast: 1.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Field.Width != 9 {
		t.Errorf("expected overridden width 9, got %d", cfg.Field.Width)
	}
	if cfg.Field.Height != 19 {
		t.Errorf("expected default height 19, got %d", cfg.Field.Height)
	}
	if cfg.Values.GrowthSpeedFast != 1.5 {
		t.Errorf("expected growth_speed_fast 1.5, got %v", cfg.Values.GrowthSpeedFast)
	}
	if cfg.Values.GrowthSpeedSlow != 0.125 {
		t.Errorf("expected default growth_speed_slow, got %v", cfg.Values.GrowthSpeedSlow)
	}
}

func TestLoadRejectsBadGeometry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("field:\n  width: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for zero-width field")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Values.PortalGrowthFactorEvil = 1.25

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Values.PortalGrowthFactorEvil != 1.25 {
		t.Errorf("expected factor 1.25 after roundtrip, got %v", loaded.Values.PortalGrowthFactorEvil)
	}
}
