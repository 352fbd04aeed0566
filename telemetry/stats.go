// Package telemetry tracks frame timing and interaction statistics and
// writes them as CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated interaction statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Camera at window end
	Preset         string `csv:"preset"`
	PresetSwitches int    `csv:"preset_switches"`

	// Pointer events during window
	PointerMoves  int `csv:"pointer_moves"`
	PointerLeaves int `csv:"pointer_leaves"`

	// Hover intensity, sampled per layer per tick
	IntensityMean  float64 `csv:"intensity_mean"`
	IntensityP50   float64 `csv:"intensity_p50"`
	IntensityP90   float64 `csv:"intensity_p90"`
	IntensityMax   float64 `csv:"intensity_max"`
	ActiveFraction float64 `csv:"active_fraction"` // share of layer-ticks with Active set

	// Background field
	ParticleResets int `csv:"particle_resets"`

	// Frames whose buffers contained NaN/Inf (should stay 0)
	NonFiniteFrames int `csv:"non_finite_frames"`
}

// Distribution returns mean, p50, p90 and max of values.
// Returns zeros for an empty slice.
func Distribution(values []float64) (mean, p50, p90, peak float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	peak = sorted[n-1]
	return mean, p50, p90, peak
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("preset", s.Preset),
		slog.Int("preset_switches", s.PresetSwitches),
		slog.Int("pointer_moves", s.PointerMoves),
		slog.Int("pointer_leaves", s.PointerLeaves),
		slog.Float64("intensity_mean", s.IntensityMean),
		slog.Float64("intensity_p50", s.IntensityP50),
		slog.Float64("intensity_p90", s.IntensityP90),
		slog.Float64("intensity_max", s.IntensityMax),
		slog.Float64("active_fraction", s.ActiveFraction),
		slog.Int("particle_resets", s.ParticleResets),
		slog.Int("non_finite_frames", s.NonFiniteFrames),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
