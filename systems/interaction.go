package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/veil/components"
	"github.com/pthm-cable/veil/interaction"
)

// InteractionSystem recomputes every layer's hover state and eases its tilt.
type InteractionSystem struct {
	filter ecs.Filter2[components.Hover, components.Transform]
}

// NewInteractionSystem creates a new interaction system.
func NewInteractionSystem(w *ecs.World) *InteractionSystem {
	return &InteractionSystem{
		filter: *ecs.NewFilter2[components.Hover, components.Transform](w),
	}
}

// Update runs the interaction system.
func (s *InteractionSystem) Update(ctx interaction.Context) {
	query := s.filter.Query()
	for query.Next() {
		hover, tr := query.Get()
		UpdateHover(hover, tr, ctx)
	}
}

// UpdateHover evaluates one layer. Intensity is recomputed from scratch;
// only the smoothed intensity and the tilt carry over between ticks.
func UpdateHover(hover *components.Hover, tr *components.Transform, ctx interaction.Context) {
	hover.State = interaction.Evaluate(ctx.Pointer, hover.Origin, hover.Radius)
	hover.Smoothed.Step(hover.State.Intensity)

	// Tilt the panel so its face turns toward the pointer.
	k := hover.TiltMax * hover.State.Intensity
	tr.Tilt[0] = hover.TiltX.Step(-ctx.Pointer.Y * k)
	tr.Tilt[1] = hover.TiltY.Step(ctx.Pointer.X * k)
}
