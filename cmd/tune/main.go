// Layer tuning tool - runs the hero scene with a live parameter panel.
//
// Usage: go run ./cmd/tune [-config config.yaml]
//
// Tab cycles the selected layer; C copies its YAML to the clipboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/veil/components"
	"github.com/pthm-cable/veil/config"
	"github.com/pthm-cable/veil/renderer"
	"github.com/pthm-cable/veil/renderer/window"
	"github.com/pthm-cable/veil/scene"
	"github.com/pthm-cable/veil/systems"
)

const panelWidth = 320

// tuneBackend draws the panel over each frame inside the same drawing pass.
type tuneBackend struct {
	*window.Backend
	panel *panel
}

func (b *tuneBackend) Submit(f *renderer.Frame) {
	rl.BeginDrawing()
	b.Render(f)
	if b.panel != nil {
		b.panel.draw(f)
	}
	rl.EndDrawing()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.Screen.Title = "veil tune"

	b := &tuneBackend{Backend: window.New(cfg.Screen.TargetFPS)}
	s, err := scene.New(cfg, b, scene.Options{})
	if err != nil {
		slog.Error("failed to mount scene", "error", err)
		os.Exit(1)
	}
	defer s.Unload()
	b.panel = newPanel(s, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loop := scene.Loop{Scene: s}
	if err := loop.Run(ctx); err != nil {
		slog.Info("tune stopped", "reason", err)
	}
}

// panel edits one layer at a time and shows per-phase timings.
type panel struct {
	scene    *scene.Scene
	cfg      *config.Config
	registry *systems.SystemRegistry
	selected int

	layerMap *ecs.Map[components.Layer]
	hoverMap *ecs.Map[components.Hover]
	defMap   *ecs.Map[components.Deformer]
	lookMap  *ecs.Map[components.Look]
	haloMap  *ecs.Map[components.Halo]
	driftMap *ecs.Map[components.Drift]
}

func newPanel(s *scene.Scene, cfg *config.Config) *panel {
	w := s.World()
	return &panel{
		scene:    s,
		cfg:      cfg,
		registry: systems.NewSystemRegistry(),
		layerMap: ecs.NewMap[components.Layer](w),
		hoverMap: ecs.NewMap[components.Hover](w),
		defMap:   ecs.NewMap[components.Deformer](w),
		lookMap:  ecs.NewMap[components.Look](w),
		haloMap:  ecs.NewMap[components.Halo](w),
		driftMap: ecs.NewMap[components.Drift](w),
	}
}

func (p *panel) draw(f *renderer.Frame) {
	layers := p.scene.Layers()
	if len(layers) == 0 {
		return
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		p.selected = (p.selected + 1) % len(layers)
	}
	e := layers[p.selected]

	x := float32(f.Width - panelWidth)
	y := float32(10)
	rl.DrawRectangle(int32(x)-10, 0, panelWidth+10, int32(f.Height), rl.Color{R: 20, G: 22, B: 30, A: 220})

	l := p.layerMap.Get(e)
	hover := p.hoverMap.Get(e)
	def := p.defMap.Get(e)
	look := p.lookMap.Get(e)
	halo := p.haloMap.Get(e)
	drift := p.driftMap.Get(e)

	rl.DrawText(fmt.Sprintf("Layer: %s (%d/%d)  %s", l.Name, p.selected+1, len(layers), def.Kind), int32(x), int32(y), 18, rl.RayWhite)
	y += 28

	// Readouts
	for _, desc := range components.LayerFieldDescriptors() {
		v := components.Readout(desc.ID, hover, def, look, halo)
		label := fmt.Sprintf(desc.Format, v)
		if desc.IsBar {
			gui.ProgressBar(rl.Rectangle{X: x + 80, Y: y, Width: panelWidth - 140, Height: 14}, desc.Label, label, v, desc.Min, desc.Max)
		} else {
			rl.DrawText(fmt.Sprintf("%s  %s", desc.Label, label), int32(x), int32(y), 14, rl.LightGray)
		}
		y += 20
	}
	y += 10

	// Sliders
	hover.Radius = p.slider(x, &y, "Hover radius", hover.Radius, 0, 3)
	hover.TiltMax = p.slider(x, &y, "Tilt max", hover.TiltMax, 0, 0.5)
	if def.Bend != nil {
		def.Bend.MaxBend = p.slider(x, &y, "Max bend", def.Bend.MaxBend, 0, 1)
	}
	coeff := p.slider(x, &y, "Drift coefficient", drift.X.Coefficient, 0, 0.2)
	drift.X.Coefficient, drift.Y.Coefficient = coeff, coeff
	drift.Reach = p.slider(x, &y, "Drift reach", drift.Reach, 0, 0.5)
	y += 10

	// Perf breakdown
	stats := p.scene.PerfStats()
	rl.DrawText(fmt.Sprintf("Preset %s  FPS %.0f  p95 %s", f.Camera.Preset, stats.FPS, stats.P95TickDuration), int32(x), int32(y), 14, rl.RayWhite)
	y += 20
	for _, id := range p.registry.IDs() {
		rl.DrawText(fmt.Sprintf("%-12s %5.1f%%", p.registry.GetName(id), stats.PhasePct[id]), int32(x), int32(y), 12, rl.Gray)
		y += 15
	}

	if rl.IsKeyPressed(rl.KeyC) {
		if out, err := p.layerYAML(l.Name, hover, def, drift); err == nil {
			rl.SetClipboardText(out)
		} else {
			slog.Error("failed to encode layer", "error", err)
		}
	}
	rl.DrawText("Tab: next layer   C: copy YAML", int32(x), int32(f.Height-24), 12, rl.DarkGray)
}

func (p *panel) slider(x float32, y *float32, label string, v, lo, hi float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: panelWidth - 80, Height: 16},
		"", fmt.Sprintf("%.3f", v),
		v, lo, hi,
	)
	*y += 24
	return next
}

// layerYAML returns the configured layer with the panel's edits applied.
func (p *panel) layerYAML(name string, hover *components.Hover, def *components.Deformer, drift *components.Drift) (string, error) {
	idx, ok := p.cfg.Derived.LayerByID[name]
	if !ok {
		return "", fmt.Errorf("unknown layer %q", name)
	}
	lc := p.cfg.Layers[idx]
	lc.Hover.Radius = hover.Radius
	lc.Hover.TiltMax = hover.TiltMax
	if def.Bend != nil {
		lc.Deform.MaxBend = def.Bend.MaxBend
	}
	lc.Drift.Coefficient = drift.X.Coefficient
	lc.Drift.Reach = drift.Reach

	data, err := yaml.Marshal([]config.LayerConfig{lc})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
