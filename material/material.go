// Package material blends per-layer surface parameters as a pure function of
// hover intensity and shades lit triangles from them.
package material

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a configured color cannot be parsed.
var ErrInvalidColor = errors.New("material: invalid color")

// LinearRGB is a color in linear light. Blending happens in this space.
type LinearRGB struct {
	R, G, B float32
}

// ParseHex converts an sRGB hex string ("#rrggbb") to linear RGB.
func ParseHex(s string) (LinearRGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return LinearRGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := c.LinearRgb()
	return LinearRGB{R: float32(r), G: float32(g), B: float32(b)}, nil
}

// MustParseHex is like ParseHex but panics on error. For literals only.
func MustParseHex(s string) LinearRGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the sRGB hex form of the color.
func (c LinearRGB) Hex() string {
	return colorful.LinearRgb(float64(c.R), float64(c.G), float64(c.B)).Clamped().Hex()
}

// SRGBA converts to 8-bit sRGB with the given alpha in [0,1].
func (c LinearRGB) SRGBA(alpha float32) color.RGBA {
	r, g, b := colorful.LinearRgb(float64(c.R), float64(c.G), float64(c.B)).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}
}

// Scale multiplies every channel by k.
func (c LinearRGB) Scale(k float32) LinearRGB {
	return LinearRGB{R: c.R * k, G: c.G * k, B: c.B * k}
}

// Add sums two colors channel-wise.
func (c LinearRGB) Add(o LinearRGB) LinearRGB {
	return LinearRGB{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Clamp restricts every channel to [0,1].
func (c LinearRGB) Clamp() LinearRGB {
	return LinearRGB{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

// Params is the full set of blended surface parameters. A Params value is
// also the per-tick snapshot: it is rebuilt from scratch every tick.
type Params struct {
	Color             LinearRGB
	EmissiveIntensity float32
	Opacity           float32
	Transmission      float32
	Roughness         float32
}

// Blend holds the resting and fully-hovered parameters of one layer.
type Blend struct {
	Baseline Params
	Target   Params
}

// At returns the parameters at intensity t, clamped to [0,1].
// At(0) equals Baseline and At(1) equals Target exactly.
func (b Blend) At(t float32) Params {
	t = clamp01(t)
	return Params{
		Color: LinearRGB{
			R: lerp(b.Baseline.Color.R, b.Target.Color.R, t),
			G: lerp(b.Baseline.Color.G, b.Target.Color.G, t),
			B: lerp(b.Baseline.Color.B, b.Target.Color.B, t),
		},
		EmissiveIntensity: lerp(b.Baseline.EmissiveIntensity, b.Target.EmissiveIntensity, t),
		Opacity:           lerp(b.Baseline.Opacity, b.Target.Opacity, t),
		Transmission:      lerp(b.Baseline.Transmission, b.Target.Transmission, t),
		Roughness:         lerp(b.Baseline.Roughness, b.Target.Roughness, t),
	}
}

// lerp uses the two-weight form so both endpoints are reproduced exactly.
func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func clamp01(v float32) float32 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
