// Package renderer defines the frame handed to a graphics backend and the
// backends that consume it.
package renderer

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/veil/material"
)

// ErrUnsupported is returned by Init when no usable graphics context exists.
var ErrUnsupported = errors.New("renderer: graphics backend unsupported")

// BlendMode selects how a surface combines with the framebuffer.
type BlendMode uint8

const (
	BlendAlpha BlendMode = iota
	BlendAdditive
)

// Camera is the resolved view for one frame.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FOV      float32 // vertical, degrees
	Preset   string
}

// DrawSurface is one triangle mesh to rasterize. Positions and Normals
// alias the layer's buffers and are only valid until the next tick.
type DrawSurface struct {
	Layer      string
	Positions  []mgl32.Vec3
	Normals    []mgl32.Vec3
	Indices    []uint32
	Model      mgl32.Mat4
	Material   material.Params
	Blend      BlendMode
	DepthWrite bool
	Shell      int // 0 for the primary surface, k for glow shell k
}

// Point is one background particle.
type Point struct {
	Pos   mgl32.Vec3
	Alpha float32
}

// Frame is everything a backend needs to draw one tick.
type Frame struct {
	Tick    int64
	Elapsed float32
	Width   int
	Height  int

	Camera Camera
	Clear  material.LinearRGB
	Light  material.Light

	// Surfaces are ordered back to front; glow shells precede their layer.
	Surfaces []DrawSurface

	Points     []Point
	PointColor material.LinearRGB
	PointSize  float32

	// Reveal is the global intro fade in [0,1], already folded into opacities.
	Reveal float32
}

// Reset clears the frame for reuse, keeping slice capacity.
func (f *Frame) Reset() {
	f.Surfaces = f.Surfaces[:0]
	f.Points = f.Points[:0]
}

// Input is the host events gathered since the previous poll.
type Input struct {
	PointerMoved bool
	PX, PY       float32 // window pixels
	PointerLeft  bool    // pointer left the window

	Resized       bool
	Width, Height int
}

// Backend rasterizes frames and reports host input.
type Backend interface {
	// Init opens the output. It returns ErrUnsupported when rendering is impossible.
	Init(width, height int, title string) error
	// ShouldClose reports whether the host asked to stop.
	ShouldClose() bool
	// FrameTime returns seconds since the previous frame.
	FrameTime() float32
	// Poll returns input received since the last call.
	Poll() Input
	// Submit draws a frame.
	Submit(f *Frame)
	// Unload releases every resource and detaches input.
	Unload()
}
