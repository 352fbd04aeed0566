// Package camera selects the hero camera from discrete viewport presets.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Breakpoints in CSS pixels.
const (
	NarrowBelow = 768
	MediumBelow = 1024
)

// Clip planes shared by every preset.
const (
	Near = 0.1
	Far  = 100.0
)

// PresetName identifies one of the three viewport presets.
type PresetName string

const (
	Narrow PresetName = "narrow"
	Medium PresetName = "medium"
	Wide   PresetName = "wide"
)

// Preset fixes a camera position, look target and vertical field of view.
type Preset struct {
	Name     PresetName
	Position mgl32.Vec3
	Target   mgl32.Vec3
	FOV      float32 // vertical, degrees
}

// Presets is the preset table, indexed by name.
type Presets map[PresetName]Preset

// DefaultPresets pulls the camera back and widens the lens as the viewport narrows,
// so the full panel stack stays in frame on phones.
func DefaultPresets() Presets {
	return Presets{
		Narrow: {Name: Narrow, Position: mgl32.Vec3{0, 0, 7.5}, FOV: 65},
		Medium: {Name: Medium, Position: mgl32.Vec3{0, 0, 6}, FOV: 55},
		Wide:   {Name: Wide, Position: mgl32.Vec3{0, 0, 5}, FOV: 50},
	}
}

// SelectPreset maps a viewport width to a preset name. It is a step function:
// widths below 768 are narrow, below 1024 medium, everything else wide.
func SelectPreset(width int) PresetName {
	switch {
	case width < NarrowBelow:
		return Narrow
	case width < MediumBelow:
		return Medium
	default:
		return Wide
	}
}

// Rig is the active camera for a viewport.
type Rig struct {
	// Viewport dimensions, never below 1.
	Width, Height int

	Active  Preset
	presets Presets
}

// New creates a rig for the given viewport. Missing presets fall back to defaults.
func New(width, height int, presets Presets) *Rig {
	defaults := DefaultPresets()
	merged := make(Presets, len(defaults))
	for name, p := range defaults {
		if custom, ok := presets[name]; ok {
			custom.Name = name
			p = custom
		}
		merged[name] = p
	}

	r := &Rig{presets: merged}
	r.Width, r.Height = clampDim(width), clampDim(height)
	r.Active = merged[SelectPreset(r.Width)]
	return r
}

// Resize updates the viewport and re-selects the preset.
// It returns true when the preset changed.
func (r *Rig) Resize(width, height int) bool {
	r.Width, r.Height = clampDim(width), clampDim(height)
	next := SelectPreset(r.Width)
	if next == r.Active.Name {
		return false
	}
	r.Active = r.presets[next]
	return true
}

// Aspect returns width/height; both dimensions are at least 1.
func (r *Rig) Aspect() float32 {
	return float32(r.Width) / float32(r.Height)
}

// View returns the look-at matrix for the active preset.
func (r *Rig) View() mgl32.Mat4 {
	return mgl32.LookAtV(r.Active.Position, r.Active.Target, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the active preset.
func (r *Rig) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(r.Active.FOV), r.Aspect(), Near, Far)
}

// ViewProjection returns Projection*View.
func (r *Rig) ViewProjection() mgl32.Mat4 {
	return r.Projection().Mul4(r.View())
}

// Preset returns the configured preset by name.
func (r *Rig) Preset(name PresetName) (Preset, bool) {
	p, ok := r.presets[name]
	return p, ok
}

// clampDim keeps a viewport dimension at least 1 so aspect never divides by zero.
func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
