package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/veil/components"
)

// GlowSystem sets halo shell opacities from hover intensity.
type GlowSystem struct {
	filter ecs.Filter2[components.Hover, components.Halo]
}

// NewGlowSystem creates a new glow system.
func NewGlowSystem(w *ecs.World) *GlowSystem {
	return &GlowSystem{
		filter: *ecs.NewFilter2[components.Hover, components.Halo](w),
	}
}

// Update runs the glow system. Layers without a stack are skipped.
func (s *GlowSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		hover, halo := query.Get()
		if halo.Stack == nil {
			continue
		}
		halo.Stack.Update(hover.State.Intensity)
	}
}
