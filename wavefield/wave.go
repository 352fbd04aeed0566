package wavefield

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"
)

// Axis selects the spatial coordinate a wave component travels along.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisDiagonal
	AxisRadial
)

// ParseAxis maps a config name to an Axis. Unknown names map to AxisX.
func ParseAxis(name string) Axis {
	switch name {
	case "y":
		return AxisY
	case "diagonal":
		return AxisDiagonal
	case "radial":
		return AxisRadial
	default:
		return AxisX
	}
}

// WaveComponent is one sine term of a traveling-wave sum.
type WaveComponent struct {
	Amplitude float32
	Frequency float32
	Rate      float32 // radians per second
	Phase     float32
	Axis      Axis
}

// WaveParams is the per-vertex jitter assigned once at layer construction.
type WaveParams struct {
	Phase    float32
	AmpScale float32
	FreqX    float32
	FreqY    float32
}

// identityParams leaves every component unmodified.
var identityParams = WaveParams{AmpScale: 1, FreqX: 1, FreqY: 1}

// Jitter bounds the random per-vertex variation.
type Jitter struct {
	Phase float32 // max absolute phase offset, radians
	Amp   float32 // max relative amplitude deviation, e.g. 0.2 = ±20%
	Freq  float32 // max relative frequency deviation per axis
}

// NewPerVertexParams draws n parameter sets from a seeded source.
// The same seed always yields the same parameters.
func NewPerVertexParams(n int, seed int64, j Jitter) []WaveParams {
	rng := rand.New(rand.NewSource(seed))
	params := make([]WaveParams, n)
	for i := range params {
		params[i] = WaveParams{
			Phase:    (rng.Float32()*2 - 1) * j.Phase,
			AmpScale: 1 + (rng.Float32()*2-1)*j.Amp,
			FreqX:    1 + (rng.Float32()*2-1)*j.Freq,
			FreqY:    1 + (rng.Float32()*2-1)*j.Freq,
		}
	}
	return params
}

// Bump is a pointer-local gaussian swell that pulses over time.
type Bump struct {
	Peak    float32
	Falloff float32 // squared-distance scale; <= 0 disables the bump
	Rate    float32 // pulse rate; 0 holds the bump at zero
}

// eval returns the bump height at squared distance d2 from the pointer.
func (b *Bump) eval(d2, t float32) float32 {
	if b == nil || !(b.Falloff > 0) || b.Peak == 0 {
		return 0
	}
	pulse := float32(math.Sin(float64(t * b.Rate)))
	return b.Peak * float32(math.Exp(-float64(d2/b.Falloff))) * pulse
}

// Organic is an optional OpenSimplex term layered over the sine sum.
type Organic struct {
	Amplitude float32
	Scale     float32
	Rate      float32
	noise     opensimplex.Noise
}

// NewOrganic builds a seeded noise term.
func NewOrganic(amplitude, scale, rate float32, seed int64) *Organic {
	return &Organic{
		Amplitude: amplitude,
		Scale:     scale,
		Rate:      rate,
		noise:     opensimplex.New(seed),
	}
}

func (o *Organic) eval(x, y, t float32) float32 {
	if o == nil || o.Amplitude == 0 || o.noise == nil {
		return 0
	}
	n := o.noise.Eval3(float64(x*o.Scale), float64(y*o.Scale), float64(t*o.Rate))
	return o.Amplitude * float32(n)
}

// TravelingWave is a sum of sine components with optional pointer bump and
// organic noise. It is immutable after construction.
type TravelingWave struct {
	Components []WaveComponent
	PerVertex  []WaveParams // nil or one entry per vertex
	Bump       *Bump
	Organic    *Organic
}

// Height evaluates the displacement of a single vertex.
func (w *TravelingWave) Height(v mgl32.Vec3, params WaveParams, t float32, pointer mgl32.Vec2) float32 {
	var z float32
	for k := range w.Components {
		c := &w.Components[k]
		arg := c.Frequency*axisValue(c.Axis, v[0], v[1], params) + t*c.Rate + c.Phase + params.Phase
		z += c.Amplitude * params.AmpScale * float32(math.Sin(float64(arg)))
	}
	dx := v[0] - pointer[0]
	dy := v[1] - pointer[1]
	z += w.Bump.eval(dx*dx+dy*dy, t)
	z += w.Organic.eval(v[0], v[1], t)
	return z
}

// Apply writes displaced positions for every base vertex into dst.
// dst must be at least len(base) long. The result depends only on the
// arguments, so repeated calls with identical inputs produce identical buffers.
func (w *TravelingWave) Apply(base, dst []mgl32.Vec3, t float32, pointer mgl32.Vec2) {
	for i, v := range base {
		params := identityParams
		if i < len(w.PerVertex) {
			params = w.PerVertex[i]
		}
		z := w.Height(v, params, t, pointer)
		if z != z || math.IsInf(float64(z), 0) {
			z = 0
		}
		dst[i] = mgl32.Vec3{v[0], v[1], v[2] + z}
	}
}

// MaxAmplitude returns an upper bound on |z| for finite inputs.
func (w *TravelingWave) MaxAmplitude(maxAmpScale float32) float32 {
	var sum float32
	for _, c := range w.Components {
		sum += absf(c.Amplitude) * maxAmpScale
	}
	if w.Bump != nil && w.Bump.Falloff > 0 {
		sum += absf(w.Bump.Peak)
	}
	if w.Organic != nil {
		// OpenSimplex output stays within roughly [-1,1].
		sum += absf(w.Organic.Amplitude) * 1.1
	}
	return sum
}

func axisValue(a Axis, x, y float32, p WaveParams) float32 {
	fx := x * p.FreqX
	fy := y * p.FreqY
	switch a {
	case AxisY:
		return fy
	case AxisDiagonal:
		return (fx + fy) * math.Sqrt2 / 2
	case AxisRadial:
		return float32(math.Hypot(float64(fx), float64(fy)))
	default:
		return fx
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
