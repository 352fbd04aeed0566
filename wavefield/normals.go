package wavefield

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// up is the fallback normal for vertices with no usable face contribution.
var up = mgl32.Vec3{0, 0, 1}

// ComputeNormals recomputes per-vertex normals from positions and triangle
// indices. Face normals are area weighted (unnormalized cross products are
// summed) and the sum normalized. Vertices whose accumulated normal is zero
// or non-finite get +Z, so the output never contains NaN or Inf.
func ComputeNormals(positions []mgl32.Vec3, indices []uint32, normals []mgl32.Vec3) {
	n := len(positions)
	if len(normals) < n {
		n = len(normals)
	}
	for i := 0; i < n; i++ {
		normals[i] = mgl32.Vec3{}
	}

	for t := 0; t+2 < len(indices); t += 3 {
		ia, ib, ic := int(indices[t]), int(indices[t+1]), int(indices[t+2])
		if ia >= n || ib >= n || ic >= n {
			continue
		}
		a, b, c := positions[ia], positions[ib], positions[ic]
		face := b.Sub(a).Cross(c.Sub(a))
		if !finite(face) {
			continue
		}
		normals[ia] = normals[ia].Add(face)
		normals[ib] = normals[ib].Add(face)
		normals[ic] = normals[ic].Add(face)
	}

	for i := 0; i < n; i++ {
		normals[i] = safeNormalize(normals[i])
	}
}

// safeNormalize returns v scaled to unit length, or +Z for degenerate input.
func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if !finite(v) {
		return up
	}
	l := float64(v[0])*float64(v[0]) + float64(v[1])*float64(v[1]) + float64(v[2])*float64(v[2])
	if l < 1e-24 {
		return up
	}
	inv := 1 / math.Sqrt(l)
	out := mgl32.Vec3{float32(float64(v[0]) * inv), float32(float64(v[1]) * inv), float32(float64(v[2]) * inv)}
	if !finite(out) {
		return up
	}
	return out
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
