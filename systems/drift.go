package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/veil/components"
	"github.com/pthm-cable/veil/interaction"
)

// DriftSystem floats opted-in layers toward the pointer. It is the only
// positional state integrated across ticks, and only for layers whose
// drift coefficient is non-zero.
type DriftSystem struct {
	filter ecs.Filter2[components.Drift, components.Transform]
}

// NewDriftSystem creates a new drift system.
func NewDriftSystem(w *ecs.World) *DriftSystem {
	return &DriftSystem{
		filter: *ecs.NewFilter2[components.Drift, components.Transform](w),
	}
}

// Update runs the drift system.
func (s *DriftSystem) Update(ctx interaction.Context) {
	query := s.filter.Query()
	for query.Next() {
		drift, tr := query.Get()
		if !drift.Enabled() {
			continue
		}
		tr.Offset[0] = drift.X.Step(ctx.Pointer.X * drift.Reach)
		tr.Offset[1] = drift.Y.Step(ctx.Pointer.Y * drift.Reach)
	}
}
