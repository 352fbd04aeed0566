package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Screen.Width != 1280 || cfg.Screen.Height != 720 {
		t.Errorf("expected 1280x720 screen, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if len(cfg.Layers) != 4 {
		t.Fatalf("expected 4 default layers, got %d", len(cfg.Layers))
	}
	if cfg.Particles.Count != 300 {
		t.Errorf("expected 300 particles, got %d", cfg.Particles.Count)
	}
	if cfg.Derived.TargetDT <= 0 {
		t.Errorf("expected positive target dt, got %f", cfg.Derived.TargetDT)
	}
	if idx, ok := cfg.Derived.LayerByID["front"]; !ok || idx != 3 {
		t.Errorf("expected front layer at index 3, got %d (%v)", idx, ok)
	}
	if cfg.Layers[3].Glow == nil || len(cfg.Layers[3].Glow.Shells) != 3 {
		t.Error("expected front layer to carry a three-shell glow")
	}
	if cfg.Layers[0].Deform.Kind != "wave" || len(cfg.Layers[0].Deform.Components) != 3 {
		t.Errorf("expected ripple layer with three wave components, got %+v", cfg.Layers[0].Deform)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("screen:\n  width: 640\nscene:\n  reveal_seconds: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Screen.Width != 640 {
		t.Errorf("expected overridden width 640, got %d", cfg.Screen.Width)
	}
	if cfg.Screen.Height != 720 {
		t.Errorf("expected default height 720 to survive overlay, got %d", cfg.Screen.Height)
	}
	if cfg.Scene.RevealSeconds != 0 {
		t.Errorf("expected reveal disabled, got %f", cfg.Scene.RevealSeconds)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestDerivedDefaultsForUnnamedLayers(t *testing.T) {
	cfg := Default()
	if err := Overlay(cfg, []byte("layers:\n  - mesh: {width: 1, height: 1, segments_x: 2, segments_y: 2}\n")); err != nil {
		t.Fatalf("Overlay: %v", err)
	}
	if len(cfg.Layers) != 1 {
		t.Fatalf("expected layers replaced by overlay, got %d", len(cfg.Layers))
	}
	if cfg.Layers[0].Name != "layer0" || cfg.Layers[0].Deform.Kind != "bend" {
		t.Errorf("expected derived name and kind, got %q %q", cfg.Layers[0].Name, cfg.Layers[0].Deform.Kind)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Layers) != len(cfg.Layers) {
		t.Errorf("expected %d layers after roundtrip, got %d", len(cfg.Layers), len(loaded.Layers))
	}
	if loaded.Layers[1].Material.Target.Color != cfg.Layers[1].Material.Target.Color {
		t.Error("expected material colors to survive roundtrip")
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg before Init")
		}
	}()
	Cfg()
}
