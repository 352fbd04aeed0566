// Package scene mounts the layer stack in an ECS world, drives the per-tick
// systems and composes frames for a renderer backend.
package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/veil/camera"
	"github.com/pthm-cable/veil/components"
	"github.com/pthm-cable/veil/config"
	"github.com/pthm-cable/veil/interaction"
	"github.com/pthm-cable/veil/layer"
	"github.com/pthm-cable/veil/material"
	"github.com/pthm-cable/veil/particles"
	"github.com/pthm-cable/veil/pointer"
	"github.com/pthm-cable/veil/renderer"
	"github.com/pthm-cable/veil/systems"
	"github.com/pthm-cable/veil/telemetry"
)

// Options configures a scene beyond the loaded config.
type Options struct {
	Seed           int64   // overrides particles.seed when non-zero
	LogStats       bool    // log each telemetry window via slog
	StatsWindowSec float64 // 0 = telemetry.stats_window
	OutputDir      string  // CSV and config snapshot directory; empty disables
	StatsCallback  func(telemetry.WindowStats)
}

// Scene holds the complete hero state.
type Scene struct {
	cfg     *config.Config
	backend renderer.Backend

	world    *ecs.World
	spawner  *layer.Spawner
	entities []ecs.Entity

	drawFilter *ecs.Filter5[
		components.Layer,
		components.Transform,
		components.Surface,
		components.Look,
		components.Halo,
	]
	hoverFilter *ecs.Filter1[components.Hover]

	// Per-tick systems, in execution order
	interaction *systems.InteractionSystem
	drift       *systems.DriftSystem
	deform      *systems.DeformSystem
	material    *systems.MaterialSystem
	glow        *systems.GlowSystem

	tracker *pointer.Tracker
	rig     *camera.Rig
	field   *particles.Field

	// Resolved colors and lighting
	clear      material.LinearRGB
	pointColor material.LinearRGB
	light      material.Light

	// Intro fade; nil once finished
	reveal      *gween.Tween
	revealValue float32

	// Telemetry
	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	frame    renderer.Frame
	views    []layerView
	tick     int64
	elapsed  float32
	tickOpen bool
	unloaded bool
}

// New builds every layer declared in cfg, opens the backend and mounts the
// scene. Malformed layers fail here; an unsupported backend is replaced by
// renderer.Nop so the scene still mounts but never draws.
func New(cfg *config.Config, backend renderer.Backend, opts Options) (*Scene, error) {
	parts, err := layer.BuildAll(cfg.Layers)
	if err != nil {
		return nil, err
	}

	clearColor, err := material.ParseHex(cfg.Scene.ClearColor)
	if err != nil {
		return nil, fmt.Errorf("scene clear color: %w", err)
	}
	pointColor, err := material.ParseHex(cfg.Particles.Color)
	if err != nil {
		return nil, fmt.Errorf("particle color: %w", err)
	}
	lightColor, err := material.ParseHex(cfg.Light.Color)
	if err != nil {
		return nil, fmt.Errorf("light color: %w", err)
	}

	if err := backend.Init(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.Title); err != nil {
		if !errors.Is(err, renderer.ErrUnsupported) {
			return nil, fmt.Errorf("initializing backend: %w", err)
		}
		slog.Warn("graphics backend unsupported, rendering disabled", "error", err)
		backend = renderer.Nop{}
	}

	world := ecs.NewWorld()
	s := &Scene{
		cfg:     cfg,
		backend: backend,
		world:   world,
		spawner: layer.NewSpawner(world),
		drawFilter: ecs.NewFilter5[
			components.Layer,
			components.Transform,
			components.Surface,
			components.Look,
			components.Halo,
		](world),
		hoverFilter: ecs.NewFilter1[components.Hover](world),

		interaction: systems.NewInteractionSystem(world),
		drift:       systems.NewDriftSystem(world),
		deform:      systems.NewDeformSystem(world),
		material:    systems.NewMaterialSystem(world),
		glow:        systems.NewGlowSystem(world),

		tracker:    pointer.NewTracker(),
		rig:        camera.New(cfg.Screen.Width, cfg.Screen.Height, presetsFromConfig(cfg.Camera)),
		field:      particles.NewField(particleConfig(cfg.Particles, opts.Seed)),
		clear:      clearColor,
		pointColor: pointColor,
		light: material.Light{
			Direction: cfg.Light.Direction,
			Color:     lightColor,
			Ambient:   cfg.Light.Ambient,
		},

		revealValue:   1,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	for _, p := range parts {
		s.entities = append(s.entities, s.spawner.Spawn(p))
	}

	if cfg.Scene.RevealSeconds > 0 {
		s.reveal = gween.New(0, 1, float32(cfg.Scene.RevealSeconds), ease.OutCubic)
		s.revealValue = 0
	}

	s.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	if cfg.Telemetry.FrameBudgetMS > 0 {
		s.perf.Budget = time.Duration(cfg.Telemetry.FrameBudgetMS * float64(time.Millisecond))
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	s.collector = telemetry.NewCollector(statsWindow, cfg.Derived.TargetDT)

	s.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		s.Unload()
		return nil, err
	}
	if err := s.output.WriteConfig(cfg); err != nil {
		s.Unload()
		return nil, err
	}

	slog.Info("scene mounted",
		"layers", len(s.entities),
		"particles", len(s.field.Particles),
		"preset", s.rig.Active.Name,
	)
	return s, nil
}

// Update advances every layer by dt seconds. dt is clamped to
// scene.max_dt so a stalled frame does not jump the animation.
func (s *Scene) Update(dt float32) {
	if s.unloaded {
		return
	}
	if !(dt >= 0) {
		dt = 0
	}
	if dt > s.cfg.Derived.MaxDT32 {
		dt = s.cfg.Derived.MaxDT32
	}

	s.perf.StartTick()
	s.tickOpen = true

	s.perf.StartPhase(telemetry.PhasePointer)
	s.elapsed += dt
	s.tick++
	ctx := interaction.Context{
		Pointer: s.tracker.Load(),
		Elapsed: s.elapsed,
		DT:      dt,
		Tick:    s.tick,
	}

	s.perf.StartPhase(telemetry.PhaseInteraction)
	s.interaction.Update(ctx)
	s.drift.Update(ctx)

	s.perf.StartPhase(telemetry.PhaseDeform)
	s.deform.Update(ctx)

	s.perf.StartPhase(telemetry.PhaseMaterial)
	s.material.Update()

	s.perf.StartPhase(telemetry.PhaseGlow)
	s.glow.Update()

	s.perf.StartPhase(telemetry.PhaseParticles)
	s.field.Update(ctx)

	if s.reveal != nil {
		v, done := s.reveal.Update(dt)
		s.revealValue = interaction.Clamp01(v)
		if done {
			s.reveal = nil
			s.revealValue = 1
		}
	}

	s.recordTelemetry()
	s.flushTelemetry()
}

// Draw composes the current state into a frame and submits it.
func (s *Scene) Draw() {
	if s.unloaded {
		return
	}
	if !s.tickOpen {
		s.perf.StartTick()
	}
	s.perf.StartPhase(telemetry.PhaseSubmit)

	s.compose(&s.frame)
	if renderer.CountNonFinite(&s.frame) > 0 {
		s.collector.RecordNonFiniteFrame()
	}
	s.backend.Submit(&s.frame)

	s.perf.EndTick()
	s.perf.RecordFrame()
	s.tickOpen = false
}

// HandleInput applies one batch of backend input. Resizes are applied
// first so pointer positions normalize against the new viewport.
func (s *Scene) HandleInput(in renderer.Input) {
	if in.Resized {
		s.Resize(in.Width, in.Height)
	}
	if in.PointerMoved {
		s.PointerMove(in.PX, in.PY)
	}
	if in.PointerLeft {
		s.PointerLeave()
	}
}

// Resize re-selects the camera preset for a new viewport.
func (s *Scene) Resize(width, height int) {
	if s.unloaded {
		return
	}
	prev := s.rig.Active.Name
	if !s.rig.Resize(width, height) {
		return
	}
	s.collector.RecordPresetSwitch()
	slog.Info("camera preset switched",
		"from", prev,
		"to", s.rig.Active.Name,
		"width", s.rig.Width,
		"height", s.rig.Height,
	)
}

// PointerMove records a pointer position in viewport pixels. It must be
// called from the loop goroutine; other goroutines write Tracker directly.
func (s *Scene) PointerMove(px, py float32) {
	if s.unloaded {
		return
	}
	s.tracker.Move(px, py, float32(s.rig.Width), float32(s.rig.Height))
	s.collector.RecordPointerMove()
}

// PointerLeave recenters the pointer when it leaves the viewport.
func (s *Scene) PointerLeave() {
	if s.unloaded {
		return
	}
	s.tracker.Reset()
	s.collector.RecordPointerLeave()
}

// Unload removes every layer, releases the backend and closes telemetry
// output. It is safe to call more than once.
func (s *Scene) Unload() {
	if s.unloaded {
		return
	}
	s.unloaded = true

	for _, e := range s.entities {
		if s.world.Alive(e) {
			s.spawner.Remove(e)
		}
	}
	s.entities = nil
	s.views = nil

	s.backend.Unload()
	if err := s.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	slog.Info("scene unloaded", "tick", s.tick)
}

// Tick returns the number of updates since mount.
func (s *Scene) Tick() int64 {
	return s.tick
}

// Elapsed returns scene seconds since mount.
func (s *Scene) Elapsed() float32 {
	return s.elapsed
}

// Reveal returns the intro fade in [0,1].
func (s *Scene) Reveal() float32 {
	return s.revealValue
}

// Preset returns the active camera preset.
func (s *Scene) Preset() camera.Preset {
	return s.rig.Active
}

// Tracker returns the shared pointer signal.
func (s *Scene) Tracker() *pointer.Tracker {
	return s.tracker
}

// World returns the ECS world holding the layers.
func (s *Scene) World() *ecs.World {
	return s.world
}

// Layers returns the layer entities in declaration order.
func (s *Scene) Layers() []ecs.Entity {
	return s.entities
}

// Field returns the particle field.
func (s *Scene) Field() *particles.Field {
	return s.field
}

// Frame returns the most recently composed frame.
func (s *Scene) Frame() *renderer.Frame {
	return &s.frame
}

// Backend returns the backend in use, which is renderer.Nop when the
// requested backend was unsupported.
func (s *Scene) Backend() renderer.Backend {
	return s.backend
}

// PerfStats returns performance statistics for the current window.
func (s *Scene) PerfStats() telemetry.PerfStats {
	return s.perf.Stats()
}

// presetsFromConfig converts configured presets; entries without a field
// of view fall back to camera defaults.
func presetsFromConfig(cc config.CameraConfig) camera.Presets {
	presets := make(camera.Presets, 3)
	for name, pc := range map[camera.PresetName]config.PresetConfig{
		camera.Narrow: cc.Narrow,
		camera.Medium: cc.Medium,
		camera.Wide:   cc.Wide,
	} {
		if !(pc.FOV > 0) {
			continue
		}
		presets[name] = camera.Preset{
			Name:     name,
			Position: pc.Position,
			Target:   pc.Target,
			FOV:      pc.FOV,
		}
	}
	return presets
}

func particleConfig(pc config.ParticlesConfig, seed int64) particles.Config {
	if seed == 0 {
		seed = pc.Seed
	}
	return particles.Config{
		Count:         pc.Count,
		Bound:         pc.Bound,
		Depth:         pc.Depth,
		Speed:         pc.Speed,
		FlowScale:     pc.FlowScale,
		FlowStrength:  pc.FlowStrength,
		WaveAmplitude: pc.WaveAmplitude,
		WaveFrequency: pc.WaveFrequency,
		PointerPull:   pc.PointerPull,
		Size:          pc.Size,
		Seed:          seed,
	}
}
