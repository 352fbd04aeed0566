package renderer

import (
	"math"
)

// Headless records frames instead of drawing them. Scripted inputs are
// returned one per Poll, in order.
type Headless struct {
	DT     float32 // fixed frame time
	Inputs []Input

	Frames    int
	Last      Frame
	NonFinite int // count of NaN/Inf values seen in submitted buffers
	Presets   []string

	initialized bool
	closed      bool
	polled      int
}

// NewHeadless returns a recorder ticking at 60 Hz.
func NewHeadless() *Headless {
	return &Headless{DT: 1.0 / 60}
}

// Init implements Backend.
func (h *Headless) Init(width, height int, title string) error {
	h.initialized = true
	return nil
}

// ShouldClose implements Backend.
func (h *Headless) ShouldClose() bool {
	return h.closed
}

// Close makes the next ShouldClose return true.
func (h *Headless) Close() {
	h.closed = true
}

// FrameTime implements Backend.
func (h *Headless) FrameTime() float32 {
	return h.DT
}

// Poll implements Backend.
func (h *Headless) Poll() Input {
	if h.polled >= len(h.Inputs) {
		return Input{}
	}
	in := h.Inputs[h.polled]
	h.polled++
	return in
}

// Submit implements Backend. The frame is copied shallowly; surface buffers
// still alias layer memory.
func (h *Headless) Submit(f *Frame) {
	h.Frames++
	h.Last = *f
	h.Last.Surfaces = append([]DrawSurface(nil), f.Surfaces...)
	h.Last.Points = append([]Point(nil), f.Points...)
	if n := len(h.Presets); n == 0 || h.Presets[n-1] != f.Camera.Preset {
		h.Presets = append(h.Presets, f.Camera.Preset)
	}
	h.NonFinite += CountNonFinite(f)
}

// Unload implements Backend.
func (h *Headless) Unload() {
	h.initialized = false
	h.closed = true
}

// Initialized reports whether Init ran and Unload has not.
func (h *Headless) Initialized() bool {
	return h.initialized
}

// CountNonFinite returns the number of NaN or Inf components in f's buffers and materials.
func CountNonFinite(f *Frame) int {
	n := 0
	for i := range f.Surfaces {
		s := &f.Surfaces[i]
		for _, v := range s.Positions {
			n += badVec(v[0], v[1], v[2])
		}
		for _, v := range s.Normals {
			n += badVec(v[0], v[1], v[2])
		}
		m := s.Material
		n += badVec(m.Color.R, m.Color.G, m.Color.B)
		n += badVec(m.Opacity, m.EmissiveIntensity, m.Roughness)
	}
	for _, p := range f.Points {
		n += badVec(p.Pos[0], p.Pos[1], p.Pos[2])
	}
	return n
}

func badVec(a, b, c float32) int {
	n := 0
	for _, v := range [3]float32{a, b, c} {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			n++
		}
	}
	return n
}

// Nop draws nothing and asks to close immediately. It stands in for a
// backend whose Init reported ErrUnsupported.
type Nop struct{}

func (Nop) Init(width, height int, title string) error { return nil }
func (Nop) ShouldClose() bool                          { return true }
func (Nop) FrameTime() float32                         { return 0 }
func (Nop) Poll() Input                                { return Input{} }
func (Nop) Submit(*Frame)                              {}
func (Nop) Unload()                                    {}
