// Package layer turns declared layer configuration into ECS entities.
package layer

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/veil/components"
	"github.com/pthm-cable/veil/config"
	"github.com/pthm-cable/veil/glow"
	"github.com/pthm-cable/veil/interaction"
	"github.com/pthm-cable/veil/material"
	"github.com/pthm-cable/veil/wavefield"
)

// ErrInvalidLayer is returned for malformed layer configuration.
var ErrInvalidLayer = errors.New("layer: invalid layer")

// Parts is a fully resolved layer, ready to spawn.
type Parts struct {
	Layer     components.Layer
	Transform components.Transform
	Surface   components.Surface
	Hover     components.Hover
	Deformer  components.Deformer
	Look      components.Look
	Halo      components.Halo
	Drift     components.Drift
}

// Build validates lc and allocates the layer's mesh and buffers.
// Any problem is reported as ErrInvalidLayer wrapping the underlying cause.
func Build(order int, lc config.LayerConfig) (*Parts, error) {
	grid, err := wavefield.NewGrid(lc.Mesh.Width, lc.Mesh.Height, lc.Mesh.SegmentsX, lc.Mesh.SegmentsY)
	if err != nil {
		return nil, invalid(lc.Name, err)
	}

	if bad(lc.Hover.Radius) || lc.Hover.Radius < 0 {
		return nil, invalid(lc.Name, fmt.Errorf("hover radius %g", lc.Hover.Radius))
	}
	if bad(lc.Hover.TiltMax) {
		return nil, invalid(lc.Name, fmt.Errorf("tilt max %g", lc.Hover.TiltMax))
	}

	deformer, err := buildDeformer(lc.Deform, grid)
	if err != nil {
		return nil, invalid(lc.Name, err)
	}

	blend, err := buildBlend(lc.Material)
	if err != nil {
		return nil, invalid(lc.Name, err)
	}

	halo, err := buildHalo(lc.Glow)
	if err != nil {
		return nil, invalid(lc.Name, err)
	}

	if bad(lc.Drift.Coefficient) || lc.Drift.Coefficient < 0 || lc.Drift.Coefficient > 1 {
		return nil, invalid(lc.Name, fmt.Errorf("drift coefficient %g outside [0,1]", lc.Drift.Coefficient))
	}
	if bad(lc.Drift.Reach) {
		return nil, invalid(lc.Name, fmt.Errorf("drift reach %g", lc.Drift.Reach))
	}

	positions, normals := grid.NewBuffers()
	p := &Parts{
		Layer: components.Layer{Name: lc.Name, Order: order},
		Transform: components.Transform{
			Position: mgl32.Vec3(lc.Position),
			Rotation: mgl32.Vec3(lc.Rotation),
		},
		Surface: components.Surface{Grid: grid, Positions: positions, Normals: normals},
		Hover: components.Hover{
			Origin:   mgl32.Vec2(lc.Hover.Origin),
			Radius:   lc.Hover.Radius,
			TiltMax:  lc.Hover.TiltMax,
			Smoothed: interaction.NewSmoother(interaction.HoverSmoothing),
			TiltX:    interaction.NewSmoother(interaction.TiltSmoothing),
			TiltY:    interaction.NewSmoother(interaction.TiltSmoothing),
		},
		Deformer: deformer,
		Look: components.Look{
			Blend:    blend,
			Snapshot: blend.Baseline,
			Smoothed: lc.Material.Smoothed,
		},
		Halo: halo,
		Drift: components.Drift{
			X:     interaction.NewSmoother(lc.Drift.Coefficient),
			Y:     interaction.NewSmoother(lc.Drift.Coefficient),
			Reach: lc.Drift.Reach,
		},
	}
	return p, nil
}

// BuildAll builds every declared layer, failing on the first malformed one.
// Layer names must be unique.
func BuildAll(layers []config.LayerConfig) ([]*Parts, error) {
	seen := make(map[string]bool, len(layers))
	out := make([]*Parts, 0, len(layers))
	for i, lc := range layers {
		if seen[lc.Name] {
			return nil, invalid(lc.Name, errors.New("duplicate name"))
		}
		seen[lc.Name] = true
		p, err := Build(i, lc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func buildDeformer(dc config.DeformConfig, grid *wavefield.Grid) (components.Deformer, error) {
	switch dc.Kind {
	case "bend", "":
		if bad(dc.MaxBend) || bad(dc.Normalizer) || dc.Normalizer < 0 {
			return components.Deformer{}, fmt.Errorf("bend max %g normalizer %g", dc.MaxBend, dc.Normalizer)
		}
		return components.Deformer{
			Kind: components.DeformBend,
			Bend: wavefield.NewRadialBend(dc.MaxBend, dc.Normalizer, grid.HalfDiagonal()),
		}, nil

	case "wave":
		w := &wavefield.TravelingWave{}
		for i, c := range dc.Components {
			if bad(c.Amplitude) || bad(c.Frequency) || bad(c.Rate) || bad(c.Phase) {
				return components.Deformer{}, fmt.Errorf("wave component %d not finite", i)
			}
			switch c.Axis {
			case "", "x", "y", "diagonal", "radial":
			default:
				return components.Deformer{}, fmt.Errorf("wave component %d: unknown axis %q", i, c.Axis)
			}
			w.Components = append(w.Components, wavefield.WaveComponent{
				Amplitude: c.Amplitude,
				Frequency: c.Frequency,
				Rate:      c.Rate,
				Phase:     c.Phase,
				Axis:      wavefield.ParseAxis(c.Axis),
			})
		}
		if b := dc.Bump; b != nil {
			if bad(b.Peak) || bad(b.Falloff) || bad(b.Rate) {
				return components.Deformer{}, errors.New("bump not finite")
			}
			w.Bump = &wavefield.Bump{Peak: b.Peak, Falloff: b.Falloff, Rate: b.Rate}
		}
		if o := dc.Organic; o != nil {
			if bad(o.Amplitude) || bad(o.Scale) || bad(o.Rate) {
				return components.Deformer{}, errors.New("organic term not finite")
			}
			w.Organic = wavefield.NewOrganic(o.Amplitude, o.Scale, o.Rate, dc.Seed+1)
		}
		if len(w.Components) == 0 && w.Bump == nil && w.Organic == nil {
			return components.Deformer{}, errors.New("wave has no terms")
		}
		j := dc.Jitter
		if bad(j.Phase) || bad(j.Amp) || bad(j.Freq) {
			return components.Deformer{}, errors.New("jitter not finite")
		}
		w.PerVertex = wavefield.NewPerVertexParams(grid.VertexCount(), dc.Seed, wavefield.Jitter{
			Phase: j.Phase,
			Amp:   j.Amp,
			Freq:  j.Freq,
		})
		return components.Deformer{Kind: components.DeformWave, Wave: w}, nil
	}
	return components.Deformer{}, fmt.Errorf("unknown deform kind %q", dc.Kind)
}

func buildBlend(mc config.MaterialConfig) (material.Blend, error) {
	base, err := buildParams(mc.Baseline)
	if err != nil {
		return material.Blend{}, fmt.Errorf("baseline: %w", err)
	}
	target, err := buildParams(mc.Target)
	if err != nil {
		return material.Blend{}, fmt.Errorf("target: %w", err)
	}
	return material.Blend{Baseline: base, Target: target}, nil
}

func buildParams(sc config.SurfaceConfig) (material.Params, error) {
	c, err := material.ParseHex(sc.Color)
	if err != nil {
		return material.Params{}, err
	}
	for name, v := range map[string]float32{
		"opacity":      sc.Opacity,
		"transmission": sc.Transmission,
		"roughness":    sc.Roughness,
	} {
		if bad(v) || v < 0 || v > 1 {
			return material.Params{}, fmt.Errorf("%s %g outside [0,1]", name, v)
		}
	}
	if bad(sc.Emissive) || sc.Emissive < 0 {
		return material.Params{}, fmt.Errorf("emissive %g", sc.Emissive)
	}
	return material.Params{
		Color:             c,
		EmissiveIntensity: sc.Emissive,
		Opacity:           sc.Opacity,
		Transmission:      sc.Transmission,
		Roughness:         sc.Roughness,
	}, nil
}

func buildHalo(gc *config.GlowConfig) (components.Halo, error) {
	if gc == nil {
		return components.Halo{}, nil
	}
	c, err := material.ParseHex(gc.Color)
	if err != nil {
		return components.Halo{}, fmt.Errorf("glow: %w", err)
	}
	shells := make([]glow.Shell, len(gc.Shells))
	for i, s := range gc.Shells {
		shells[i] = glow.Shell{Grow: s.Grow, Weight: s.Weight, Depth: s.Depth}
	}
	stack, err := glow.NewStack(shells)
	if err != nil {
		return components.Halo{}, err
	}
	return components.Halo{Stack: stack, Color: c}, nil
}

func invalid(name string, err error) error {
	return fmt.Errorf("%w %q: %w", ErrInvalidLayer, name, err)
}

// bad reports NaN or ±Inf.
func bad(v float32) bool {
	return math.IsNaN(float64(v)) || math.IsInf(float64(v), 0)
}

// Spawner creates and removes layer entities in an ark world.
type Spawner struct {
	world  *ecs.World
	mapper *ecs.Map8[
		components.Layer,
		components.Transform,
		components.Surface,
		components.Hover,
		components.Deformer,
		components.Look,
		components.Halo,
		components.Drift,
	]
}

// NewSpawner creates a spawner bound to w.
func NewSpawner(w *ecs.World) *Spawner {
	return &Spawner{
		world: w,
		mapper: ecs.NewMap8[
			components.Layer,
			components.Transform,
			components.Surface,
			components.Hover,
			components.Deformer,
			components.Look,
			components.Halo,
			components.Drift,
		](w),
	}
}

// Spawn creates one entity for p.
func (s *Spawner) Spawn(p *Parts) ecs.Entity {
	return s.mapper.NewEntity(&p.Layer, &p.Transform, &p.Surface, &p.Hover, &p.Deformer, &p.Look, &p.Halo, &p.Drift)
}

// Remove destroys a layer entity. Dead entities are ignored.
func (s *Spawner) Remove(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	s.world.RemoveEntity(e)
}
