package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/veil/components"
	"github.com/pthm-cable/veil/interaction"
	"github.com/pthm-cable/veil/wavefield"
)

// DeformSystem displaces every layer's surface and recomputes its normals.
type DeformSystem struct {
	filter ecs.Filter3[components.Surface, components.Deformer, components.Hover]
}

// NewDeformSystem creates a new deform system.
func NewDeformSystem(w *ecs.World) *DeformSystem {
	return &DeformSystem{
		filter: *ecs.NewFilter3[components.Surface, components.Deformer, components.Hover](w),
	}
}

// Update runs the deform system. Must run after InteractionSystem.
func (s *DeformSystem) Update(ctx interaction.Context) {
	query := s.filter.Query()
	for query.Next() {
		surf, def, hover := query.Get()
		Deform(surf, def, hover.State.Intensity, ctx)
	}
}

// Deform writes displaced positions and fresh normals for one surface.
// Positions are always rebuilt from the grid's rest positions.
func Deform(surf *components.Surface, def *components.Deformer, intensity float32, ctx interaction.Context) {
	grid := surf.Grid
	switch def.Kind {
	case components.DeformWave:
		def.Wave.Apply(grid.Base, surf.Positions, ctx.Elapsed, grid.ProjectPointer(ctx.PointerVec()))
	default:
		def.Bend.Step(intensity)
		def.Bend.Apply(grid.Base, surf.Positions)
	}
	wavefield.ComputeNormals(surf.Positions, grid.Indices, surf.Normals)
}
