// Package components defines ECS components for the layer stack.
package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/veil/glow"
	"github.com/pthm-cable/veil/interaction"
	"github.com/pthm-cable/veil/material"
	"github.com/pthm-cable/veil/wavefield"
)

// DeformKind selects how a layer's surface is displaced each tick.
type DeformKind uint8

const (
	DeformBend DeformKind = iota // smoothed radial bulge toward the camera
	DeformWave                   // traveling sine sum with optional pointer bump
)

// String returns the config name of the deform kind.
func (k DeformKind) String() string {
	switch k {
	case DeformWave:
		return "wave"
	default:
		return "bend"
	}
}

// Layer identifies one surface panel in the stack.
type Layer struct {
	Name  string
	Order int // declaration order; back to front
}

// Surface holds a layer's mesh and its per-tick buffers.
// Buffer lengths equal Grid.VertexCount() for the layer's lifetime.
type Surface struct {
	Grid      *wavefield.Grid
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
}

// Hover holds a layer's pointer proximity state.
type Hover struct {
	Origin  mgl32.Vec2 // normalized pointer space
	Radius  float32
	TiltMax float32 // radians at full intensity

	State    interaction.State    // recomputed every tick
	Smoothed interaction.Smoother // HoverSmoothing low-pass of State.Intensity
	TiltX    interaction.Smoother // TiltSmoothing
	TiltY    interaction.Smoother // TiltSmoothing
}

// Deformer is either a traveling wave or a radial bend.
type Deformer struct {
	Kind DeformKind
	Wave *wavefield.TravelingWave
	Bend *wavefield.RadialBend
}

// Look holds the material blend and the snapshot computed this tick.
type Look struct {
	Blend    material.Blend
	Snapshot material.Params
	Smoothed bool // blend by the smoothed intensity instead of the raw one
}

// Halo is the optional glow stack behind a layer. Stack is nil when the
// layer has no glow.
type Halo struct {
	Stack *glow.Stack
	Color material.LinearRGB
}
