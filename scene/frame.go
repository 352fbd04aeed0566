package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/veil/components"
	"github.com/pthm-cable/veil/material"
	"github.com/pthm-cable/veil/renderer"
)

// layerView gathers the components compose reads for one layer.
type layerView struct {
	layer *components.Layer
	tr    *components.Transform
	surf  *components.Surface
	look  *components.Look
	halo  *components.Halo
}

// compose rebuilds f from the current state. Layers are emitted back to
// front; each layer's glow shells precede it, outermost first.
func (s *Scene) compose(f *renderer.Frame) {
	f.Reset()
	f.Tick = s.tick
	f.Elapsed = s.elapsed
	f.Width, f.Height = s.rig.Width, s.rig.Height
	f.Clear = s.clear
	f.Light = s.light
	f.Reveal = s.revealValue

	p := s.rig.Active
	f.Camera = renderer.Camera{
		Position: p.Position,
		Target:   p.Target,
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      p.FOV,
		Preset:   string(p.Name),
	}

	s.gatherViews()
	for _, v := range s.views {
		model := v.tr.Matrix()
		grid := v.surf.Grid

		if st := v.halo.Stack; st != nil && st.Visible() {
			for k := len(st.Shells) - 1; k >= 0; k-- {
				sx, sy := st.Scale(k, grid.Width, grid.Height)
				shell := model.
					Mul4(mgl32.Translate3D(0, 0, -st.Shells[k].Depth)).
					Mul4(mgl32.Scale3D(sx, sy, 1))
				f.Surfaces = append(f.Surfaces, renderer.DrawSurface{
					Layer:     v.layer.Name,
					Positions: v.surf.Positions,
					Normals:   v.surf.Normals,
					Indices:   grid.Indices,
					Model:     shell,
					Material: material.Params{
						Color:             v.halo.Color,
						EmissiveIntensity: 1,
						Opacity:           st.Opacities[k] * s.revealValue,
						Roughness:         1,
					},
					Blend: renderer.BlendAdditive,
					Shell: k + 1,
				})
			}
		}

		snap := v.look.Snapshot
		snap.Opacity *= s.revealValue
		f.Surfaces = append(f.Surfaces, renderer.DrawSurface{
			Layer:      v.layer.Name,
			Positions:  v.surf.Positions,
			Normals:    v.surf.Normals,
			Indices:    grid.Indices,
			Model:      model,
			Material:   snap,
			Blend:      renderer.BlendAlpha,
			DepthWrite: true,
		})
	}

	cfg := s.field.Config()
	f.PointColor = s.pointColor
	f.PointSize = cfg.Size
	for _, pt := range s.field.Particles {
		f.Points = append(f.Points, renderer.Point{Pos: pt.Pos, Alpha: pt.Alpha * s.revealValue})
	}
}

// gatherViews fills s.views sorted by declaration order.
func (s *Scene) gatherViews() {
	s.views = s.views[:0]
	query := s.drawFilter.Query()
	for query.Next() {
		l, tr, surf, look, halo := query.Get()
		s.views = append(s.views, layerView{layer: l, tr: tr, surf: surf, look: look, halo: halo})
	}
	sort.Slice(s.views, func(i, j int) bool {
		return s.views[i].layer.Order < s.views[j].layer.Order
	})
}
