package material

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Light is a single directional light plus ambient term.
type Light struct {
	Direction mgl32.Vec3 // direction the light travels toward; normalized by Shade
	Color     LinearRGB
	Ambient   float32
}

// DefaultLight is a soft key light from the upper left, in front of the panels.
var DefaultLight = Light{
	Direction: mgl32.Vec3{0.4, -0.5, -1},
	Color:     LinearRGB{R: 1, G: 1, B: 1},
	Ambient:   0.25,
}

// Shade lights a surface point. Diffuse is Lambertian; the highlight is
// Blinn-Phong with an exponent that falls as roughness rises; the emissive
// term adds Color*EmissiveIntensity. Transmission lets a fraction of the
// back-face light through. The result is clamped to [0,1].
func Shade(p Params, normal, view mgl32.Vec3, light Light) LinearRGB {
	n := normalizeOr(normal, mgl32.Vec3{0, 0, 1})
	v := normalizeOr(view, mgl32.Vec3{0, 0, 1})
	l := normalizeOr(light.Direction.Mul(-1), mgl32.Vec3{0, 0, 1})

	ndl := n.Dot(l)
	diffuse := maxf(ndl, 0)
	back := maxf(-ndl, 0) * clamp01(p.Transmission)

	h := normalizeOr(l.Add(v), n)
	rough := clamp01(p.Roughness)
	shininess := 2 + (1-rough)*(1-rough)*126
	spec := float32(0)
	if ndl > 0 {
		spec = float32(math.Pow(float64(maxf(n.Dot(h), 0)), float64(shininess))) * (1 - rough)
	}

	lit := p.Color.Scale(light.Ambient + diffuse + back)
	lit = LinearRGB{R: lit.R * light.Color.R, G: lit.G * light.Color.G, B: lit.B * light.Color.B}
	lit = lit.Add(light.Color.Scale(spec))
	lit = lit.Add(p.Color.Scale(maxf(p.EmissiveIntensity, 0)))
	return lit.Clamp()
}

func normalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if !(l > 1e-12) || math.IsInf(float64(l), 0) {
		return fallback
	}
	return v.Mul(1 / l)
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
