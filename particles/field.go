// Package particles runs the ambient particle/wave background behind the panels.
package particles

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/veil/interaction"
)

// Config controls the background field.
type Config struct {
	Count         int
	Bound         float32 // particles live in [-Bound, Bound]² on the XY plane
	Depth         float32 // z offset of the field behind the panels
	Speed         float32 // base drift speed, units per second
	FlowScale     float32 // spatial frequency of the simplex flow
	FlowStrength  float32
	WaveAmplitude float32 // z ripple amplitude
	WaveFrequency float32
	PointerPull   float32 // attraction toward the projected pointer, per second
	Size          float32
	Seed          int64
}

// DefaultConfig is a 300-particle field.
func DefaultConfig() Config {
	return Config{
		Count:         300,
		Bound:         6,
		Depth:         -3,
		Speed:         0.15,
		FlowScale:     0.35,
		FlowStrength:  0.25,
		WaveAmplitude: 0.3,
		WaveFrequency: 0.8,
		PointerPull:   0.05,
		Size:          0.03,
		Seed:          1,
	}
}

// Particle is one background point.
type Particle struct {
	Pos   mgl32.Vec3
	Phase float32
	Alpha float32
}

// Field owns the particle pool. It is the one background element that
// integrates position across ticks; escapes are reset into bounds.
type Field struct {
	Particles []Particle
	cfg       Config
	rng       *rand.Rand
	noise     opensimplex.Noise
	resets    int

	// Scratch used by InBounds.
	xs, ys []float64
}

// NewField creates a field with every particle placed inside the bound.
func NewField(cfg Config) *Field {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	if !(cfg.Bound > 0) {
		cfg.Bound = 1
	}
	f := &Field{
		Particles: make([]Particle, cfg.Count),
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		noise:     opensimplex.New(cfg.Seed),
		xs:        make([]float64, cfg.Count),
		ys:        make([]float64, cfg.Count),
	}
	for i := range f.Particles {
		f.respawn(&f.Particles[i])
	}
	return f
}

// Config returns the field configuration.
func (f *Field) Config() Config {
	return f.cfg
}

// Update advances every particle by one tick and resets any particle that left
// the bound. pointer is in normalized [-1,1] coordinates.
func (f *Field) Update(ctx interaction.Context) {
	f.resets = 0
	dt := ctx.DT
	if !(dt > 0) {
		return
	}
	t := ctx.Elapsed
	b := f.cfg.Bound
	px := ctx.Pointer.X * b
	py := ctx.Pointer.Y * b

	for i := range f.Particles {
		p := &f.Particles[i]

		angle := f.noise.Eval3(
			float64(p.Pos[0]*f.cfg.FlowScale),
			float64(p.Pos[1]*f.cfg.FlowScale),
			float64(t*0.1),
		) * 2 * math.Pi
		vx := f.cfg.Speed + float32(math.Cos(angle))*f.cfg.FlowStrength
		vy := float32(math.Sin(angle)) * f.cfg.FlowStrength

		vx += (px - p.Pos[0]) * f.cfg.PointerPull
		vy += (py - p.Pos[1]) * f.cfg.PointerPull

		p.Pos[0] += vx * dt
		p.Pos[1] += vy * dt
		p.Pos[2] = f.cfg.Depth + f.cfg.WaveAmplitude*float32(math.Sin(float64(p.Pos[0]*f.cfg.WaveFrequency+t+p.Phase)))

		if outside(p.Pos, b) {
			f.respawn(p)
			f.resets++
		}
	}
}

// Resets returns how many particles the last Update moved back into bounds.
func (f *Field) Resets() int {
	return f.resets
}

// InBounds reports whether every particle lies within the bound.
func (f *Field) InBounds() bool {
	if len(f.Particles) == 0 {
		return true
	}
	for i, p := range f.Particles {
		f.xs[i] = math.Abs(float64(p.Pos[0]))
		f.ys[i] = math.Abs(float64(p.Pos[1]))
	}
	b := float64(f.cfg.Bound)
	return floats.Max(f.xs) <= b && floats.Max(f.ys) <= b
}

// respawn places p at a random position inside the bound.
func (f *Field) respawn(p *Particle) {
	b := f.cfg.Bound
	p.Pos = mgl32.Vec3{
		(f.rng.Float32()*2 - 1) * b,
		(f.rng.Float32()*2 - 1) * b,
		f.cfg.Depth,
	}
	p.Phase = f.rng.Float32() * 2 * math.Pi
	p.Alpha = 0.3 + f.rng.Float32()*0.5
}

func outside(v mgl32.Vec3, b float32) bool {
	x, y := v[0], v[1]
	return x != x || y != y || x > b || x < -b || y > b || y < -b
}
