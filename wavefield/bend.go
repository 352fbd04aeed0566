package wavefield

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/veil/interaction"
)

// BendFactor returns the radial falloff for a vertex at distance d from the
// panel center: 1 at the center, 0 at and beyond the normalizer.
func BendFactor(d, normalizer float32) float32 {
	if !(normalizer > 0) {
		return 0
	}
	r := interaction.Clamp01(d / normalizer)
	return float32(math.Cos(float64(r) * math.Pi / 2))
}

// Bend writes base positions pushed toward the camera by magnitude*BendFactor
// into dst. Pure; dst must be at least len(base) long.
func Bend(base, dst []mgl32.Vec3, magnitude, normalizer float32) {
	if magnitude != magnitude {
		magnitude = 0
	}
	for i, v := range base {
		d := float32(math.Hypot(float64(v[0]), float64(v[1])))
		dst[i] = mgl32.Vec3{v[0], v[1], v[2] + BendFactor(d, normalizer)*magnitude}
	}
}

// RadialBend is the "flexible panel" deformer. Its magnitude is the one
// stateful quantity: it eases toward intensity*MaxBend with BendSmoothing.
type RadialBend struct {
	MaxBend    float32
	Normalizer float32
	magnitude  interaction.Smoother
}

// NewRadialBend creates a bend deformer. A non-positive normalizer is
// replaced by fallback (typically the grid half-diagonal).
func NewRadialBend(maxBend, normalizer, fallback float32) *RadialBend {
	if !(normalizer > 0) {
		normalizer = fallback
	}
	return &RadialBend{
		MaxBend:    maxBend,
		Normalizer: normalizer,
		magnitude:  interaction.NewSmoother(interaction.BendSmoothing),
	}
}

// Step advances the smoothed magnitude toward the target for this intensity.
func (b *RadialBend) Step(intensity float32) float32 {
	return b.magnitude.Step(interaction.Clamp01(intensity) * b.MaxBend)
}

// Magnitude returns the current smoothed bend magnitude.
func (b *RadialBend) Magnitude() float32 {
	return b.magnitude.Value
}

// Apply bends base into dst using the current magnitude.
func (b *RadialBend) Apply(base, dst []mgl32.Vec3) {
	Bend(base, dst, b.magnitude.Value, b.Normalizer)
}
