package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Spheres != 100 {
		t.Errorf("expected 100 spheres, got %d", cfg.Spheres)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Strength != 8.0 {
		t.Errorf("expected strength 8, got %f", cfg.Strength)
	}
	if cfg.Threshold != 15.0 {
		t.Errorf("expected threshold 15, got %f", cfg.Threshold)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("party")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Strength != 14.0 {
		t.Errorf("expected strength 14, got %f", cfg.Strength)
	}
	if len(cfg.Triggers) != 5 {
		t.Errorf("expected 5 scripted shakes, got %d", len(cfg.Triggers))
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 {
		t.Errorf("expected 3 presets, got %d", len(presets))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Spheres = 42
	cfg.Seed = 7
	cfg.Trace = "shake.yaml"
	cfg.Triggers = []float64{1.5}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Spheres != 42 || loaded.Seed != 7 || loaded.Trace != "shake.yaml" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if len(loaded.Triggers) != 1 || loaded.Triggers[0] != 1.5 {
		t.Errorf("triggers did not survive round trip: %v", loaded.Triggers)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	sparse := filepath.Join(t.TempDir(), "sparse.yaml")
	if err := os.WriteFile(sparse, []byte("spheres: 10\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := Load(sparse)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Spheres != 10 {
		t.Errorf("expected 10 spheres, got %d", loaded.Spheres)
	}
	if loaded.Dt != DefaultDt || loaded.Threshold != DefaultThreshold {
		t.Errorf("missing fields should keep defaults, got %+v", loaded)
	}
}
