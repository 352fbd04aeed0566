package components

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/veil/interaction"
)

func TestTransformMatrixIdentity(t *testing.T) {
	m := Transform{}.Matrix()
	if !m.ApproxEqual(mgl32.Ident4()) {
		t.Errorf("expected identity for zero transform, got %v", m)
	}
}

func TestTransformMatrixOffset(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{1, 2, -3},
		Offset:   mgl32.Vec3{0.5, 0, 0},
	}
	p := tr.Matrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	want := mgl32.Vec3{1.5, 2, -3}
	if !p.Vec3().ApproxEqual(want) {
		t.Errorf("expected origin at %v, got %v", want, p.Vec3())
	}
}

func TestTransformTiltAddsToRotation(t *testing.T) {
	tr := Transform{Rotation: mgl32.Vec3{0, 0.1, 0}, Tilt: mgl32.Vec2{0, 0.2}}
	got := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	want := mgl32.HomogRotate3DY(0.3).Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDriftEnabled(t *testing.T) {
	testCases := []struct {
		coeff, reach float32
		want         bool
	}{
		{0, 0.1, false},
		{0.02, 0, false},
		{0.02, 0.1, true},
	}
	for _, tc := range testCases {
		d := Drift{X: interaction.NewSmoother(tc.coeff), Reach: tc.reach}
		if got := d.Enabled(); got != tc.want {
			t.Errorf("coeff %g reach %g: expected %v, got %v", tc.coeff, tc.reach, tc.want, got)
		}
	}
}

func TestReadoutMissingParts(t *testing.T) {
	hover := &Hover{State: interaction.State{Active: true, Intensity: 0.5}}
	for _, fd := range LayerFieldDescriptors() {
		v := Readout(fd.ID, hover, &Deformer{}, &Look{}, &Halo{})
		if math.IsNaN(float64(v)) {
			t.Errorf("%s: expected finite readout, got NaN", fd.ID)
		}
	}
	if v := Readout("intensity", hover, &Deformer{}, &Look{}, &Halo{}); v != 0.5 {
		t.Errorf("expected intensity 0.5, got %f", v)
	}
}

func TestDeformKindString(t *testing.T) {
	if DeformWave.String() != "wave" || DeformBend.String() != "bend" {
		t.Errorf("expected wave/bend, got %s/%s", DeformWave, DeformBend)
	}
}
