package wavefield

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func mustGrid(t *testing.T, w, h float32, sx, sy int) *Grid {
	t.Helper()
	g, err := NewGrid(w, h, sx, sy)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func TestNewGrid(t *testing.T) {
	g := mustGrid(t, 4, 2, 8, 4)

	if g.VertexCount() != 9*5 {
		t.Errorf("expected 45 vertices, got %d", g.VertexCount())
	}
	if g.TriangleCount() != 8*4*2 {
		t.Errorf("expected 64 triangles, got %d", g.TriangleCount())
	}

	first := g.Base[0]
	last := g.Base[len(g.Base)-1]
	if first != (mgl32.Vec3{-2, -1, 0}) {
		t.Errorf("expected first vertex (-2,-1,0), got %v", first)
	}
	if last != (mgl32.Vec3{2, 1, 0}) {
		t.Errorf("expected last vertex (2,1,0), got %v", last)
	}
	for _, idx := range g.Indices {
		if int(idx) >= g.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestNewGridRejectsMalformed(t *testing.T) {
	testCases := []struct {
		name   string
		w, h   float32
		sx, sy int
	}{
		{"zero width", 0, 1, 4, 4},
		{"negative height", 1, -1, 4, 4},
		{"zero segments", 1, 1, 0, 4},
		{"negative segments", 1, 1, 4, -2},
		{"nan size", float32(math.NaN()), 1, 4, 4},
		{"infinite size", float32(math.Inf(1)), 1, 4, 4},
		{"too many vertices", 1, 1, 2000, 2000},
	}

	for _, tc := range testCases {
		_, err := NewGrid(tc.w, tc.h, tc.sx, tc.sy)
		if !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("%s: expected ErrInvalidGeometry, got %v", tc.name, err)
		}
	}
}

func TestGridNormalsFaceCamera(t *testing.T) {
	g := mustGrid(t, 2, 2, 4, 4)
	pos, nrm := g.NewBuffers()
	ComputeNormals(pos, g.Indices, nrm)
	for i, n := range nrm {
		if math.Abs(float64(n[2]-1)) > 1e-6 {
			t.Fatalf("vertex %d: expected +Z normal on flat grid, got %v", i, n)
		}
	}
}

func testWave(n int) *TravelingWave {
	return &TravelingWave{
		Components: []WaveComponent{
			{Amplitude: 0.1, Frequency: 2, Rate: 1.3, Axis: AxisX},
			{Amplitude: 0.05, Frequency: 3.5, Rate: 0.7, Phase: 1, Axis: AxisDiagonal},
			{Amplitude: 0.03, Frequency: 5, Rate: 2, Axis: AxisRadial},
		},
		PerVertex: NewPerVertexParams(n, 7, Jitter{Phase: math.Pi, Amp: 0.2, Freq: 0.1}),
		Bump:      &Bump{Peak: 0.3, Falloff: 0.5, Rate: 2},
		Organic:   NewOrganic(0.02, 1.5, 0.3, 11),
	}
}

func TestTravelingWaveIdempotent(t *testing.T) {
	g := mustGrid(t, 4, 3, 16, 12)
	w := testWave(g.VertexCount())

	a := make([]mgl32.Vec3, g.VertexCount())
	b := make([]mgl32.Vec3, g.VertexCount())
	ptr := mgl32.Vec2{0.3, -0.2}

	w.Apply(g.Base, a, 2.5, ptr)
	// Dirty b first to prove the buffer is fully overwritten.
	for i := range b {
		b[i] = mgl32.Vec3{9, 9, 9}
	}
	w.Apply(g.Base, b, 2.5, ptr)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vertex %d differs between calls: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTravelingWaveNoDrift(t *testing.T) {
	g := mustGrid(t, 2, 2, 8, 8)
	w := testWave(g.VertexCount())
	dst := make([]mgl32.Vec3, g.VertexCount())

	w.Apply(g.Base, dst, 1, mgl32.Vec2{})
	want := make([]mgl32.Vec3, len(dst))
	copy(want, dst)

	// Evaluating other times in between must not affect the result for t=1.
	for tick := 0; tick < 50; tick++ {
		w.Apply(g.Base, dst, float32(tick)*0.016, mgl32.Vec2{0.5, 0.5})
	}
	w.Apply(g.Base, dst, 1, mgl32.Vec2{})
	for i := range dst {
		if dst[i] != want[i] {
			t.Fatalf("vertex %d drifted: %v vs %v", i, dst[i], want[i])
		}
	}
}

func TestTravelingWaveBounded(t *testing.T) {
	g := mustGrid(t, 4, 4, 20, 20)
	w := testWave(g.VertexCount())
	bound := w.MaxAmplitude(1.2) + 1e-5
	dst := make([]mgl32.Vec3, g.VertexCount())

	for tick := 0; tick < 120; tick++ {
		w.Apply(g.Base, dst, float32(tick)/60, mgl32.Vec2{float32(tick%7) * 0.1, 0})
		for i, v := range dst {
			if absf(v[2]) > bound {
				t.Fatalf("tick %d vertex %d: |z|=%f exceeds bound %f", tick, i, v[2], bound)
			}
			if v[0] != g.Base[i][0] || v[1] != g.Base[i][1] {
				t.Fatalf("vertex %d moved in-plane", i)
			}
		}
	}
}

func TestBumpDisabledByZeroFalloff(t *testing.T) {
	w := &TravelingWave{Bump: &Bump{Peak: 1, Falloff: 0, Rate: 1}}
	z := w.Height(mgl32.Vec3{}, identityParams, 1, mgl32.Vec2{})
	if z != 0 {
		t.Errorf("expected no bump with zero falloff, got %f", z)
	}

	// Pointer exactly on the vertex (distance 0) stays finite.
	w.Bump.Falloff = 0.2
	z = w.Height(mgl32.Vec3{}, identityParams, 0.5, mgl32.Vec2{})
	if math.IsNaN(float64(z)) || math.IsInf(float64(z), 0) {
		t.Errorf("expected finite bump at distance 0, got %f", z)
	}
	want := float32(math.Sin(0.5))
	if math.Abs(float64(z-want)) > 1e-6 {
		t.Errorf("expected %f, got %f", want, z)
	}
}

func TestBumpZeroRateStaysFlat(t *testing.T) {
	w := &TravelingWave{Bump: &Bump{Peak: 1, Falloff: 0.2, Rate: 0}}
	for _, tm := range []float32{0, 0.5, 3} {
		if z := w.Height(mgl32.Vec3{}, identityParams, tm, mgl32.Vec2{}); z != 0 {
			t.Errorf("t=%g: expected flat bump at zero rate, got %f", tm, z)
		}
	}
}

func TestPerVertexParamsDeterministic(t *testing.T) {
	a := NewPerVertexParams(100, 42, Jitter{Phase: 1, Amp: 0.2, Freq: 0.1})
	b := NewPerVertexParams(100, 42, Jitter{Phase: 1, Amp: 0.2, Freq: 0.1})
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("param %d differs for the same seed", i)
		}
		if a[i].AmpScale < 0.8 || a[i].AmpScale > 1.2 {
			t.Fatalf("param %d amp scale %f out of jitter range", i, a[i].AmpScale)
		}
	}
}

func TestBendFactor(t *testing.T) {
	if f := BendFactor(0, 2); f != 1 {
		t.Errorf("expected factor 1 at center, got %f", f)
	}
	if f := BendFactor(2, 2); math.Abs(float64(f)) > 1e-6 {
		t.Errorf("expected factor 0 at normalizer, got %f", f)
	}
	if f := BendFactor(5, 2); math.Abs(float64(f)) > 1e-6 {
		t.Errorf("expected factor 0 beyond normalizer, got %f", f)
	}
	if f := BendFactor(1, 0); f != 0 {
		t.Errorf("expected factor 0 for zero normalizer, got %f", f)
	}
	prev := float32(2)
	for i := 0; i <= 20; i++ {
		f := BendFactor(float32(i)*0.1, 2)
		if f > prev {
			t.Fatalf("bend factor increased at d=%f", float32(i)*0.1)
		}
		prev = f
	}
}

func TestRadialBendSmoothing(t *testing.T) {
	g := mustGrid(t, 2, 2, 10, 10)
	b := NewRadialBend(0.5, 0, g.HalfDiagonal())
	if b.Normalizer != g.HalfDiagonal() {
		t.Errorf("expected fallback normalizer %f, got %f", g.HalfDiagonal(), b.Normalizer)
	}

	// First step moves 10% of the way to intensity*MaxBend.
	if m := b.Step(1); math.Abs(float64(m-0.05)) > 1e-6 {
		t.Errorf("expected magnitude 0.05 after one step, got %f", m)
	}
	for i := 0; i < 300; i++ {
		b.Step(1)
	}
	if math.Abs(float64(b.Magnitude()-0.5)) > 1e-4 {
		t.Errorf("expected magnitude to settle at 0.5, got %f", b.Magnitude())
	}

	pos := make([]mgl32.Vec3, g.VertexCount())
	b.Apply(g.Base, pos)
	center := g.VertexCount() / 2
	if math.Abs(float64(pos[center][2]-b.Magnitude())) > 1e-5 {
		t.Errorf("expected center bulge %f, got %f", b.Magnitude(), pos[center][2])
	}
	if math.Abs(float64(pos[0][2])) > 1e-5 {
		t.Errorf("expected flat corner, got %f", pos[0][2])
	}
}

func TestComputeNormalsFinite(t *testing.T) {
	g := mustGrid(t, 2, 2, 6, 6)
	pos := make([]mgl32.Vec3, g.VertexCount())
	nrm := make([]mgl32.Vec3, g.VertexCount())

	testCases := []struct {
		name  string
		setup func()
	}{
		{"bent", func() { Bend(g.Base, pos, 0.8, g.HalfDiagonal()) }},
		{"collapsed to a point", func() {
			for i := range pos {
				pos[i] = mgl32.Vec3{}
			}
		}},
		{"collapsed to a line", func() {
			for i := range pos {
				pos[i] = mgl32.Vec3{float32(i), 0, 0}
			}
		}},
		{"huge coordinates", func() {
			for i := range pos {
				pos[i] = mgl32.Vec3{g.Base[i][0] * 1e30, g.Base[i][1] * 1e30, float32(i%3) * 1e30}
			}
		}},
		{"waved", func() { testWave(g.VertexCount()).Apply(g.Base, pos, 3, mgl32.Vec2{}) }},
	}

	for _, tc := range testCases {
		tc.setup()
		ComputeNormals(pos, g.Indices, nrm)
		for i, n := range nrm {
			if !finite(n) {
				t.Fatalf("%s: vertex %d has non-finite normal %v", tc.name, i, n)
			}
			l := n.Len()
			if math.Abs(float64(l-1)) > 1e-4 {
				t.Fatalf("%s: vertex %d normal length %f", tc.name, i, l)
			}
		}
	}
}

func TestComputeNormalsTracksDeformation(t *testing.T) {
	// A stale normal buffer after bending would still point straight at +Z.
	g := mustGrid(t, 2, 2, 8, 8)
	pos := make([]mgl32.Vec3, g.VertexCount())
	nrm := make([]mgl32.Vec3, g.VertexCount())
	Bend(g.Base, pos, 0.6, g.HalfDiagonal())
	ComputeNormals(pos, g.Indices, nrm)

	// Vertex to the right of center tilts toward +X on a bulging panel.
	cols := g.SegX + 1
	idx := (g.SegY/2)*cols + g.SegX/2 + 2
	if nrm[idx][0] <= 0 {
		t.Errorf("expected normal tilted toward +X, got %v", nrm[idx])
	}
	if nrm[idx][2] <= 0 {
		t.Errorf("expected normal facing camera, got %v", nrm[idx])
	}
}

func BenchmarkTravelingWave(b *testing.B) {
	g, _ := NewGrid(4, 3, 64, 48)
	w := &TravelingWave{
		Components: []WaveComponent{{Amplitude: 0.1, Frequency: 2, Rate: 1}, {Amplitude: 0.05, Frequency: 3, Rate: 0.5, Axis: AxisY}},
		PerVertex:  NewPerVertexParams(g.VertexCount(), 1, Jitter{Phase: 1, Amp: 0.1, Freq: 0.1}),
		Bump:       &Bump{Peak: 0.2, Falloff: 0.4, Rate: 2},
	}
	pos, nrm := g.NewBuffers()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		w.Apply(g.Base, pos, float32(n)*0.016, mgl32.Vec2{})
		ComputeNormals(pos, g.Indices, nrm)
	}
}
