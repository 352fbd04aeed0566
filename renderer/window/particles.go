package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/veil/material"
	"github.com/pthm-cable/veil/renderer"
)

// ParticleRenderer draws the background particle field.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders every point as a small additive cube. Must be called inside BeginMode3D.
func (r *ParticleRenderer) Draw(points []renderer.Point, tint material.LinearRGB, size, reveal float32) {
	if len(points) == 0 || size <= 0 {
		return
	}
	base := tint.SRGBA(1)

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range points {
		p := &points[i]
		alpha := p.Alpha * reveal
		if alpha <= 0 {
			continue
		}
		if alpha > 1 {
			alpha = 1
		}
		color := rl.Color{R: base.R, G: base.G, B: base.B, A: uint8(alpha * 255)}
		rl.DrawCube(vec3(p.Pos), size, size, size, color)
	}
	rl.EndBlendMode()
}
