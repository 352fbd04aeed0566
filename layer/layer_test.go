package layer

import (
	"errors"
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/veil/components"
	"github.com/pthm-cable/veil/config"
	"github.com/pthm-cable/veil/glow"
	"github.com/pthm-cable/veil/material"
	"github.com/pthm-cable/veil/wavefield"
)

func bendLayer() config.LayerConfig {
	return config.LayerConfig{
		Name:   "panel",
		Mesh:   config.MeshConfig{Width: 3, Height: 2, SegmentsX: 8, SegmentsY: 4},
		Hover:  config.HoverConfig{Radius: 1.5},
		Deform: config.DeformConfig{Kind: "bend", MaxBend: 0.3},
		Material: config.MaterialConfig{
			Baseline: config.SurfaceConfig{Color: "#202040", Opacity: 0.4, Transmission: 0.8, Roughness: 0.2},
			Target:   config.SurfaceConfig{Color: "#80c0ff", Emissive: 0.6, Opacity: 0.8, Transmission: 0.5, Roughness: 0.1},
		},
	}
}

func TestBuildDefaults(t *testing.T) {
	cfg := config.Default()
	parts, err := BuildAll(cfg.Layers)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(parts) != len(cfg.Layers) {
		t.Fatalf("expected %d layers, got %d", len(cfg.Layers), len(parts))
	}
	for i, p := range parts {
		if p.Layer.Order != i {
			t.Errorf("%s: expected order %d, got %d", p.Layer.Name, i, p.Layer.Order)
		}
		n := p.Surface.Grid.VertexCount()
		if len(p.Surface.Positions) != n || len(p.Surface.Normals) != n {
			t.Errorf("%s: expected buffers of %d, got %d/%d", p.Layer.Name, n, len(p.Surface.Positions), len(p.Surface.Normals))
		}
		if p.Look.Snapshot != p.Look.Blend.Baseline {
			t.Errorf("%s: expected snapshot to start at baseline", p.Layer.Name)
		}
	}
	if parts[0].Deformer.Kind != components.DeformWave || parts[0].Deformer.Wave == nil {
		t.Error("expected first default layer to be a wave")
	}
	if len(parts[0].Deformer.Wave.PerVertex) != parts[0].Surface.Grid.VertexCount() {
		t.Error("expected per-vertex wave params for every vertex")
	}
	if parts[3].Halo.Stack == nil {
		t.Error("expected front layer glow stack")
	}
	if !parts[1].Drift.Enabled() || parts[2].Drift.Enabled() {
		t.Error("expected drift only on the back layer")
	}
}

func TestBuildBendNormalizerFallback(t *testing.T) {
	p, err := Build(0, bendLayer())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := p.Surface.Grid.HalfDiagonal()
	if got := p.Deformer.Bend.Normalizer; got != want {
		t.Errorf("expected normalizer %f, got %f", want, got)
	}
}

func TestBuildFailsFast(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*config.LayerConfig)
		cause  error
	}{
		{"zero segments", func(l *config.LayerConfig) { l.Mesh.SegmentsX = 0 }, wavefield.ErrInvalidGeometry},
		{"negative segments", func(l *config.LayerConfig) { l.Mesh.SegmentsY = -2 }, wavefield.ErrInvalidGeometry},
		{"zero width", func(l *config.LayerConfig) { l.Mesh.Width = 0 }, wavefield.ErrInvalidGeometry},
		{"bad color", func(l *config.LayerConfig) { l.Material.Target.Color = "blue" }, material.ErrInvalidColor},
		{"bad shells", func(l *config.LayerConfig) {
			l.Glow = &config.GlowConfig{Color: "#ffffff", Shells: []config.ShellConfig{{Grow: 0.6, Weight: 0.2}, {Grow: 0.4, Weight: 0.9}}}
		}, glow.ErrInvalidShells},
		{"negative radius", func(l *config.LayerConfig) { l.Hover.Radius = -1 }, nil},
		{"opacity above one", func(l *config.LayerConfig) { l.Material.Baseline.Opacity = 1.5 }, nil},
		{"unknown kind", func(l *config.LayerConfig) { l.Deform.Kind = "twist" }, nil},
		{"empty wave", func(l *config.LayerConfig) { l.Deform = config.DeformConfig{Kind: "wave"} }, nil},
		{"unknown axis", func(l *config.LayerConfig) {
			l.Deform = config.DeformConfig{Kind: "wave", Components: []config.ComponentConfig{{Amplitude: 0.1, Frequency: 1, Axis: "z"}}}
		}, nil},
		{"drift above one", func(l *config.LayerConfig) { l.Drift.Coefficient = 2 }, nil},
		{"nan bend", func(l *config.LayerConfig) { l.Deform.MaxBend = float32(math.NaN()) }, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lc := bendLayer()
			tc.mutate(&lc)
			_, err := Build(0, lc)
			if !errors.Is(err, ErrInvalidLayer) {
				t.Fatalf("expected ErrInvalidLayer, got %v", err)
			}
			if tc.cause != nil && !errors.Is(err, tc.cause) {
				t.Errorf("expected cause %v, got %v", tc.cause, err)
			}
		})
	}
}

func TestBuildAllDuplicateNames(t *testing.T) {
	_, err := BuildAll([]config.LayerConfig{bendLayer(), bendLayer()})
	if !errors.Is(err, ErrInvalidLayer) {
		t.Errorf("expected ErrInvalidLayer for duplicate names, got %v", err)
	}
}

func TestSpawnerSpawnRemove(t *testing.T) {
	w := ecs.NewWorld()
	s := NewSpawner(w)
	p, err := Build(0, bendLayer())
	if err != nil {
		t.Fatal(err)
	}

	e := s.Spawn(p)
	if !w.Alive(e) {
		t.Fatal("expected spawned entity alive")
	}

	filter := ecs.NewFilter2[components.Layer, components.Surface](w)
	query := filter.Query()
	count := 0
	for query.Next() {
		l, surf := query.Get()
		if l.Name != "panel" || len(surf.Positions) != p.Surface.Grid.VertexCount() {
			t.Errorf("unexpected entity %q with %d positions", l.Name, len(surf.Positions))
		}
		count++
	}
	if count != 1 {
		t.Errorf("expected 1 layer entity, got %d", count)
	}

	s.Remove(e)
	if w.Alive(e) {
		t.Error("expected entity removed")
	}
	s.Remove(e)
}

func TestSpawnerRemountCycle(t *testing.T) {
	w := ecs.NewWorld()
	s := NewSpawner(w)
	for cycle := 0; cycle < 3; cycle++ {
		p, err := Build(0, bendLayer())
		if err != nil {
			t.Fatal(err)
		}
		e := s.Spawn(p)
		s.Remove(e)
		if w.Alive(e) {
			t.Errorf("cycle %d: expected entity destroyed", cycle)
		}
	}

	filter := ecs.NewFilter1[components.Layer](w)
	query := filter.Query()
	count := 0
	for query.Next() {
		count++
	}
	if count != 0 {
		t.Errorf("expected no entities left after remount cycles, got %d", count)
	}
}
