package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/veil/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v %v", om, err)
	}
	// Methods are nil-safe.
	if err := om.WriteWindow(WindowStats{}, PerfStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for i := 1; i <= 2; i++ {
		ws := WindowStats{WindowEndTick: int64(i * 60), Preset: "wide"}
		if err := om.WriteWindow(ws, PerfStats{AvgTickDuration: time.Millisecond}); err != nil {
			t.Fatalf("WriteWindow: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{WindowsFile, PerfFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Errorf("%s: expected header plus 2 rows, got %d lines", name, len(lines))
		}
		if !strings.HasPrefix(lines[0], "window_end") {
			t.Errorf("%s: expected window_end header, got %q", name, lines[0])
		}
	}

	if _, err := config.Load(filepath.Join(dir, ConfigFile)); err != nil {
		t.Errorf("expected config snapshot to reload, got %v", err)
	}
}

func TestOutputManagerNoWindowsNoCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for _, name := range []string{WindowsFile, PerfFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("expected no %s before the first window, got %v", name, err)
		}
	}
}

func TestOutputManagerRowsKeyedByWindowEnd(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	if err := om.WriteWindow(WindowStats{WindowEndTick: 300}, PerfStats{}); err != nil {
		t.Fatalf("WriteWindow: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, PerfFile))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "300,") {
		t.Errorf("expected perf row keyed by tick 300, got %q", lines)
	}
}
