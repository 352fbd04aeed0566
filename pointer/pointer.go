// Package pointer normalizes raw pointer events into the shared [-1,1] signal
// read by every layer each tick.
package pointer

import (
	"math"
	"sync/atomic"
)

// State is a normalized pointer position. Both axes lie in [-1, 1] with +Y up.
type State struct {
	X, Y float32
}

// Normalize maps a pixel position inside a w×h viewport to [-1,1]².
// Viewport dimensions below 1 are treated as 1. Positions outside the
// viewport pin to the nearest edge.
func Normalize(px, py, w, h float32) State {
	if !(w >= 1) {
		w = 1
	}
	if !(h >= 1) {
		h = 1
	}
	nx := (px/w)*2 - 1
	ny := -((py/h)*2 - 1)
	return State{X: clampUnit(nx), Y: clampUnit(ny)}
}

// Tracker holds the single shared pointer pair.
//
// Move is called from the input path and Load from the render loop. Both
// axes are packed into one 64-bit word so a reader always sees a pair that
// was written together; it may still be up to one event stale.
type Tracker struct {
	packed atomic.Uint64
}

// NewTracker returns a tracker centered at (0,0).
func NewTracker() *Tracker {
	return &Tracker{}
}

// Move normalizes a raw pointer event against the current viewport and stores it.
func (t *Tracker) Move(px, py, w, h float32) {
	t.Store(Normalize(px, py, w, h))
}

// Store writes an already-normalized state, clamping it into range.
func (t *Tracker) Store(s State) {
	x := math.Float32bits(clampUnit(s.X))
	y := math.Float32bits(clampUnit(s.Y))
	t.packed.Store(uint64(x)<<32 | uint64(y))
}

// Load returns the most recently stored state.
func (t *Tracker) Load() State {
	v := t.packed.Load()
	return State{
		X: math.Float32frombits(uint32(v >> 32)),
		Y: math.Float32frombits(uint32(v)),
	}
}

// Reset recenters the pointer, e.g. when it leaves the viewport.
func (t *Tracker) Reset() {
	t.packed.Store(0)
}

// clampUnit restricts v to [-1,1]; NaN maps to 0.
func clampUnit(v float32) float32 {
	if v != v {
		return 0
	}
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
