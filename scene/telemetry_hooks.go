package scene

import (
	"log/slog"
)

// recordTelemetry samples the per-tick counters.
func (s *Scene) recordTelemetry() {
	query := s.hoverFilter.Query()
	for query.Next() {
		hover := query.Get()
		s.collector.RecordIntensity(hover.State.Intensity, hover.State.Active)
	}
	s.collector.RecordParticleResets(s.field.Resets())
}

// flushTelemetry checks if the stats window should be flushed.
func (s *Scene) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick, string(s.rig.Active.Name))
	perfStats := s.perf.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteWindow(stats, perfStats); err != nil {
		slog.Error("failed to write telemetry window", "error", err)
	}
}
