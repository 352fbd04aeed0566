package systems

import "github.com/pthm-cable/veil/telemetry"

// Phase IDs, in per-tick execution order. They double as perf phase names.
const (
	PhasePointer     = telemetry.PhasePointer
	PhaseInteraction = telemetry.PhaseInteraction
	PhaseDeform      = telemetry.PhaseDeform
	PhaseMaterial    = telemetry.PhaseMaterial
	PhaseGlow        = telemetry.PhaseGlow
	PhaseParticles   = telemetry.PhaseParticles
	PhaseSubmit      = telemetry.PhaseSubmit
)

// SystemInfo describes a per-tick stage for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this stage does
	Category    string // Grouping (e.g., "input", "layer", "output")
}

// SystemRegistry holds metadata about all stages.
// This centralizes naming so the tuning UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known stages.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known stages in execution order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhasePointer, Name: "Pointer", Description: "Reads the shared pointer signal", Category: "input"})
	r.Register(SystemInfo{ID: PhaseInteraction, Name: "Interaction", Description: "Hover intensity, tilt and drift", Category: "layer"})
	r.Register(SystemInfo{ID: PhaseDeform, Name: "Deform", Description: "Wave/bend displacement and normals", Category: "layer"})
	r.Register(SystemInfo{ID: PhaseMaterial, Name: "Material", Description: "Blends baseline and hover materials", Category: "layer"})
	r.Register(SystemInfo{ID: PhaseGlow, Name: "Glow", Description: "Updates halo shell opacities", Category: "layer"})
	r.Register(SystemInfo{ID: PhaseParticles, Name: "Particles", Description: "Advances the background field", Category: "background"})
	r.Register(SystemInfo{ID: PhaseSubmit, Name: "Submit", Description: "Builds and submits the frame", Category: "output"})
}

// Register adds a stage to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns stage info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a stage ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered stages.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns stages filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all stage IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
