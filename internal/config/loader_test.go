package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEngineCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	body := []byte("simulation:\n  tick_rate: 30\n  max_catch_up: 4\n  player_speed: 200\ncamera:\n  width: 60\n  height: 24\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadEngine(path)
	if err != nil {
		t.Fatalf("LoadEngine: %v", err)
	}
	if cfg.Simulation.TickRate != 30 {
		t.Errorf("TickRate = %d, want 30", cfg.Simulation.TickRate)
	}
	if cfg.Camera.Width != 60 || cfg.Camera.Height != 24 {
		t.Errorf("Camera = %dx%d", cfg.Camera.Width, cfg.Camera.Height)
	}
}

func TestLoadEngineMissingCustomPath(t *testing.T) {
	if _, err := LoadEngine("/nonexistent/engine.yaml"); err == nil {
		t.Error("expected error for missing custom path")
	}
}

func TestLoadEngineMalformedCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	if err := os.WriteFile(path, []byte("simulation: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEngine(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadEngineEmbeddedDefault(t *testing.T) {
	// Run from a temp dir with no local configs/ and a home without
	// ~/.wander so the embedded default wins.
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := LoadEngine("")
	if err != nil {
		t.Fatalf("LoadEngine: %v", err)
	}
	want := DefaultEngineConfig()
	if cfg != want {
		t.Errorf("embedded default = %+v, want %+v", cfg, want)
	}
}

func TestValidateClampsBadValues(t *testing.T) {
	cfg := EngineConfig{}
	cfg.Validate()
	want := DefaultEngineConfig()
	if cfg.Simulation.TickRate != want.Simulation.TickRate {
		t.Errorf("TickRate = %d", cfg.Simulation.TickRate)
	}
	if cfg.Camera.Width != want.Camera.Width || cfg.Camera.Height != want.Camera.Height {
		t.Errorf("Camera = %dx%d", cfg.Camera.Width, cfg.Camera.Height)
	}

	cfg = EngineConfig{}
	cfg.Simulation.TickRate = 10000
	cfg.Validate()
	if cfg.Simulation.TickRate != want.Simulation.TickRate {
		t.Errorf("over-limit TickRate = %d, want clamp", cfg.Simulation.TickRate)
	}
}
