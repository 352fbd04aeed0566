// Package interaction derives hover intensity from the shared pointer signal.
package interaction

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/veil/pointer"
)

// Named smoothing coefficients. Each is the per-tick blend factor of a
// first-order low-pass filter (v += (target - v) * k).
const (
	// HoverSmoothing softens the intensity used for material blending.
	HoverSmoothing float32 = 0.1
	// BendSmoothing eases the radial bend magnitude toward intensity*MaxBend.
	BendSmoothing float32 = 0.1
	// TiltSmoothing eases the hover tilt rotation toward the pointer.
	TiltSmoothing float32 = 0.08
)

// Context is the per-tick input handed to every layer update.
// It is built once per tick by the render loop and never mutated afterwards.
type Context struct {
	Pointer pointer.State
	Elapsed float32 // seconds since mount
	DT      float32 // seconds since previous tick
	Tick    int64
}

// PointerVec returns the pointer as a 2D vector.
func (c Context) PointerVec() mgl32.Vec2 {
	return mgl32.Vec2{c.Pointer.X, c.Pointer.Y}
}

// State is the hover state of one layer for the current tick.
type State struct {
	Active    bool
	Intensity float32 // always in [0,1]
}

// Evaluate computes the hover state for a pointer against a layer's origin
// and hover radius. Intensity falls off linearly from 1 at the origin to 0
// at the radius. A non-positive radius never activates.
func Evaluate(p pointer.State, origin mgl32.Vec2, hoverRadius float32) State {
	if !(hoverRadius > 0) {
		return State{}
	}
	dx := float64(p.X - origin[0])
	dy := float64(p.Y - origin[1])
	d := float32(math.Hypot(dx, dy))
	if d != d || d >= hoverRadius {
		return State{}
	}
	intensity := Clamp01(1 - d/hoverRadius)
	return State{Active: intensity > 0, Intensity: intensity}
}

// Smoother is a first-order low-pass filter with a fixed per-tick coefficient.
// It is the only hover-derived quantity that carries state across ticks.
type Smoother struct {
	Coefficient float32
	Value       float32
}

// NewSmoother returns a smoother starting at zero.
func NewSmoother(coefficient float32) Smoother {
	return Smoother{Coefficient: Clamp01(coefficient)}
}

// Step moves the value toward target and returns the new value.
// A coefficient of 1 snaps; 0 freezes.
func (s *Smoother) Step(target float32) float32 {
	if target != target {
		return s.Value
	}
	s.Value += (target - s.Value) * s.Coefficient
	return s.Value
}

// Clamp01 restricts v to [0,1]; NaN maps to 0.
func Clamp01(v float32) float32 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
