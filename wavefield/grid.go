// Package wavefield provides the parametric surface mesh and the procedural
// displacement functions applied to it every tick.
//
// Every displacement is a pure transform (base, time, pointer) -> positions:
// the caller owns a preallocated destination buffer that is fully overwritten
// on each call, so no displacement accumulates across ticks.
package wavefield

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidGeometry is returned for non-positive sizes or segment counts.
var ErrInvalidGeometry = errors.New("wavefield: invalid geometry")

// maxVertices keeps grids within a 32-bit index range with a wide margin.
const maxVertices = 1 << 20

// Grid is a flat rectangular plane in the XY plane, centered on the origin,
// facing +Z. Vertices are stored row-major from the bottom-left corner.
type Grid struct {
	Width, Height float32
	SegX, SegY    int

	// Base holds the rest positions; it is never modified after construction.
	Base    []mgl32.Vec3
	Indices []uint32
}

// NewGrid builds a width×height plane subdivided into segX×segY quads.
func NewGrid(width, height float32, segX, segY int) (*Grid, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(float64(width), 0) || math.IsInf(float64(height), 0) {
		return nil, fmt.Errorf("%w: size %gx%g", ErrInvalidGeometry, width, height)
	}
	if segX < 1 || segY < 1 {
		return nil, fmt.Errorf("%w: segments %dx%d", ErrInvalidGeometry, segX, segY)
	}
	cols := segX + 1
	rows := segY + 1
	if cols*rows > maxVertices {
		return nil, fmt.Errorf("%w: %d vertices exceeds limit %d", ErrInvalidGeometry, cols*rows, maxVertices)
	}

	g := &Grid{
		Width:   width,
		Height:  height,
		SegX:    segX,
		SegY:    segY,
		Base:    make([]mgl32.Vec3, 0, cols*rows),
		Indices: make([]uint32, 0, segX*segY*6),
	}

	for j := 0; j < rows; j++ {
		y := -height/2 + height*float32(j)/float32(segY)
		for i := 0; i < cols; i++ {
			x := -width/2 + width*float32(i)/float32(segX)
			g.Base = append(g.Base, mgl32.Vec3{x, y, 0})
		}
	}

	// Two counter-clockwise triangles per quad, viewed from +Z.
	for j := 0; j < segY; j++ {
		for i := 0; i < segX; i++ {
			a := uint32(j*cols + i)
			b := a + 1
			c := a + uint32(cols)
			d := c + 1
			g.Indices = append(g.Indices, a, b, d, a, d, c)
		}
	}

	return g, nil
}

// VertexCount returns the number of vertices. Constant for the grid's lifetime.
func (g *Grid) VertexCount() int {
	return len(g.Base)
}

// TriangleCount returns the number of triangles.
func (g *Grid) TriangleCount() int {
	return len(g.Indices) / 3
}

// HalfDiagonal returns the distance from the center to a corner.
func (g *Grid) HalfDiagonal() float32 {
	return float32(math.Hypot(float64(g.Width/2), float64(g.Height/2)))
}

// NewBuffers allocates position and normal buffers sized for this grid.
// Positions start at rest; normals start facing +Z.
func (g *Grid) NewBuffers() (positions, normals []mgl32.Vec3) {
	positions = make([]mgl32.Vec3, len(g.Base))
	copy(positions, g.Base)
	normals = make([]mgl32.Vec3, len(g.Base))
	for i := range normals {
		normals[i] = mgl32.Vec3{0, 0, 1}
	}
	return positions, normals
}

// ProjectPointer maps a normalized pointer onto the grid's local plane.
func (g *Grid) ProjectPointer(p mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{p[0] * g.Width / 2, p[1] * g.Height / 2}
}
