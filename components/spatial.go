package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/veil/interaction"
)

// Transform places a layer in the scene. Position and Rotation are the
// declared base values; Offset and Tilt are the per-tick contributions of
// drift and hover tilt.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // euler XYZ, radians
	Offset   mgl32.Vec3
	Tilt     mgl32.Vec2 // x, y rotation added on top of Rotation
}

// Matrix returns the model matrix: translate * rotZ * rotY * rotX.
func (t Transform) Matrix() mgl32.Mat4 {
	p := t.Position.Add(t.Offset)
	rx := t.Rotation[0] + t.Tilt[0]
	ry := t.Rotation[1] + t.Tilt[1]
	return mgl32.Translate3D(p[0], p[1], p[2]).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation[2])).
		Mul4(mgl32.HomogRotate3DY(ry)).
		Mul4(mgl32.HomogRotate3DX(rx))
}

// Drift is the opt-in cross-tick float of a layer toward the pointer.
// A zero coefficient leaves Offset at zero forever.
type Drift struct {
	X, Y  interaction.Smoother
	Reach float32
}

// Enabled reports whether the layer drifts at all.
func (d Drift) Enabled() bool {
	return d.X.Coefficient > 0 && d.Reach != 0
}
