package glow

import (
	"errors"
	"testing"
)

func TestNewStackDefaults(t *testing.T) {
	s, err := NewStack(DefaultShells)
	if err != nil {
		t.Fatalf("NewStack: %v", err)
	}
	if len(s.Opacities) != 3 {
		t.Fatalf("expected 3 opacities, got %d", len(s.Opacities))
	}
	if s.Visible() {
		t.Error("expected new stack to be invisible")
	}
}

func TestNewStackRejects(t *testing.T) {
	testCases := []struct {
		name   string
		shells []Shell
	}{
		{"empty", nil},
		{"single", []Shell{{Grow: 0.4, Weight: 0.9}}},
		{"too many", []Shell{{Grow: 0.1, Weight: 1}, {Grow: 0.2, Weight: 0.5}, {Grow: 0.3, Weight: 0.2}, {Grow: 0.4, Weight: 0.1}}},
		{"zero grow", []Shell{{Grow: 0, Weight: 0.5}, {Grow: 0.4, Weight: 0.2}}},
		{"weight above one", []Shell{{Grow: 0.2, Weight: 1.5}, {Grow: 0.4, Weight: 0.2}}},
		{"shrinking", []Shell{{Grow: 0.6, Weight: 0.5}, {Grow: 0.4, Weight: 0.2}}},
		{"rising weight", []Shell{{Grow: 0.4, Weight: 0.2}, {Grow: 0.6, Weight: 0.9}}},
	}
	for _, tc := range testCases {
		if _, err := NewStack(tc.shells); !errors.Is(err, ErrInvalidShells) {
			t.Errorf("%s: expected ErrInvalidShells, got %v", tc.name, err)
		}
	}
}

func TestNewStackTwoShells(t *testing.T) {
	s, err := NewStack(DefaultShells[:MinShells])
	if err != nil {
		t.Fatalf("expected two-shell halo accepted, got %v", err)
	}
	if len(s.Opacities) != 2 {
		t.Errorf("expected 2 opacities, got %d", len(s.Opacities))
	}
}

func TestUpdateScalesWeights(t *testing.T) {
	s, _ := NewStack(DefaultShells)

	s.Update(1)
	want := []float32{0.9, 0.2, 0.1}
	for i, w := range want {
		if s.Opacities[i] != w {
			t.Errorf("shell %d: expected opacity %f, got %f", i, w, s.Opacities[i])
		}
	}

	s.Update(0.5)
	for i := 1; i < len(s.Opacities); i++ {
		if s.Opacities[i] > s.Opacities[i-1] {
			t.Errorf("expected opacities to fall outward, got %v", s.Opacities)
		}
	}
	if s.Opacities[0] != 0.45 {
		t.Errorf("expected first opacity 0.45, got %f", s.Opacities[0])
	}

	s.Update(0)
	if s.Visible() {
		t.Errorf("expected invisible halo at zero intensity, got %v", s.Opacities)
	}

	s.Update(5)
	if s.Opacities[0] != 0.9 {
		t.Errorf("expected clamped intensity, got %f", s.Opacities[0])
	}
}

func TestScale(t *testing.T) {
	s, _ := NewStack(DefaultShells)
	sx, sy := s.Scale(2, 2, 4)
	if sx != 1.5 || sy != 1.25 {
		t.Errorf("expected scale (1.5, 1.25), got (%f, %f)", sx, sy)
	}
}
