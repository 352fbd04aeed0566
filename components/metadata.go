package components

// FieldDescriptor describes a layer readout for UI display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Min    float32 // Minimum value (for bars)
	Max    float32 // Maximum value (for bars)
	IsBar  bool    // True to render as progress bar
}

// LayerFieldDescriptors returns metadata for the per-layer readouts shown by the tuning tool.
func LayerFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "intensity", Label: "Intensity", Format: "%.2f", Min: 0, Max: 1, IsBar: true},
		{ID: "smoothed", Label: "Smoothed", Format: "%.2f", Min: 0, Max: 1, IsBar: true},
		{ID: "bend", Label: "Bend", Format: "%.3f", Min: 0, Max: 1, IsBar: true},
		{ID: "opacity", Label: "Opacity", Format: "%.2f", Min: 0, Max: 1, IsBar: true},
		{ID: "emissive", Label: "Emissive", Format: "%.2f", Min: 0, Max: 2},
		{ID: "glow", Label: "Glow", Format: "%.2f", Min: 0, Max: 1, IsBar: true},
	}
}

// Readout returns the current value of a descriptor for one layer.
func Readout(id string, hover *Hover, def *Deformer, look *Look, halo *Halo) float32 {
	switch id {
	case "intensity":
		return hover.State.Intensity
	case "smoothed":
		return hover.Smoothed.Value
	case "bend":
		if def.Bend != nil {
			return def.Bend.Magnitude()
		}
	case "opacity":
		return look.Snapshot.Opacity
	case "emissive":
		return look.Snapshot.EmissiveIntensity
	case "glow":
		if halo.Stack != nil && len(halo.Stack.Opacities) > 0 {
			return halo.Stack.Opacities[0]
		}
	}
	return 0
}
