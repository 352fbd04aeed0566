package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/veil/components"
)

// MaterialSystem rebuilds each layer's material snapshot from its blend.
type MaterialSystem struct {
	filter ecs.Filter2[components.Hover, components.Look]
}

// NewMaterialSystem creates a new material system.
func NewMaterialSystem(w *ecs.World) *MaterialSystem {
	return &MaterialSystem{
		filter: *ecs.NewFilter2[components.Hover, components.Look](w),
	}
}

// Update runs the material system. Must run after InteractionSystem.
func (s *MaterialSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		hover, look := query.Get()
		t := hover.State.Intensity
		if look.Smoothed {
			t = hover.Smoothed.Value
		}
		look.Snapshot = look.Blend.At(t)
	}
}
