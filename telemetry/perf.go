package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame, in execution order.
const (
	PhasePointer     = "pointer"
	PhaseInteraction = "interaction"
	PhaseDeform      = "deform"
	PhaseMaterial    = "material"
	PhaseGlow        = "glow"
	PhaseParticles   = "particles"
	PhaseSubmit      = "submit"
)

// Phases lists every phase in execution order.
var Phases = []string{
	PhasePointer, PhaseInteraction, PhaseDeform, PhaseMaterial,
	PhaseGlow, PhaseParticles, PhaseSubmit,
}

// DefaultBudget is one refresh interval at 60 Hz.
const DefaultBudget = 16700 * time.Microsecond

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	// Budget is the soft per-tick deadline; ticks above it count as over budget.
	Budget time.Duration

	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of ticks to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		Budget:        DefaultBudget,
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.record(PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	})
}

// record stores a finished sample in the ring.
func (p *PerfCollector) record(sample PerfSample) {
	p.samples[p.writeIndex] = sample
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P50TickDuration time.Duration
	P95TickDuration time.Duration
	P99TickDuration time.Duration

	// Ticks in the window that exceeded Budget
	OverBudget int

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	// Frame timing is always available (independent of tick samples)
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameDuration: p.frameDuration,
			FPS:           fps,
		}
	}

	var totalTick time.Duration
	var minTick, maxTick time.Duration
	var overBudget int
	phaseSum := make(map[string]time.Duration)
	durations := make([]float64, p.sampleCount)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		totalTick += s.TickDuration
		durations[i] = float64(s.TickDuration)

		if i == 0 || s.TickDuration < minTick {
			minTick = s.TickDuration
		}
		if s.TickDuration > maxTick {
			maxTick = s.TickDuration
		}
		if p.Budget > 0 && s.TickDuration > p.Budget {
			overBudget++
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avgTick := totalTick / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avgTick > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avgTick) * 100
		}
	}

	var ticksPerSec float64
	if avgTick > 0 {
		ticksPerSec = float64(time.Second) / float64(avgTick)
	}

	sort.Float64s(durations)

	return PerfStats{
		AvgTickDuration: avgTick,
		MinTickDuration: minTick,
		MaxTickDuration: maxTick,
		P50TickDuration: time.Duration(stat.Quantile(0.50, stat.Empirical, durations, nil)),
		P95TickDuration: time.Duration(stat.Quantile(0.95, stat.Empirical, durations, nil)),
		P99TickDuration: time.Duration(stat.Quantile(0.99, stat.Empirical, durations, nil)),
		OverBudget:      overBudget,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		TicksPerSecond:  ticksPerSec,
		FrameDuration:   p.frameDuration,
		FPS:             fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"over_budget", s.OverBudget,
		"ticks_per_sec", int(s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("p50_tick_us", s.P50TickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Int64("p99_tick_us", s.P99TickDuration.Microseconds()),
		slog.Int("over_budget", s.OverBudget),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd      int64   `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	P50TickUS      int64   `csv:"p50_tick_us"`
	P95TickUS      int64   `csv:"p95_tick_us"`
	P99TickUS      int64   `csv:"p99_tick_us"`
	OverBudget     int     `csv:"over_budget"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	PointerPct     float64 `csv:"pointer_pct"`
	InteractionPct float64 `csv:"interaction_pct"`
	DeformPct      float64 `csv:"deform_pct"`
	MaterialPct    float64 `csv:"material_pct"`
	GlowPct        float64 `csv:"glow_pct"`
	ParticlesPct   float64 `csv:"particles_pct"`
	SubmitPct      float64 `csv:"submit_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		P50TickUS:      s.P50TickDuration.Microseconds(),
		P95TickUS:      s.P95TickDuration.Microseconds(),
		P99TickUS:      s.P99TickDuration.Microseconds(),
		OverBudget:     s.OverBudget,
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		PointerPct:     s.PhasePct[PhasePointer],
		InteractionPct: s.PhasePct[PhaseInteraction],
		DeformPct:      s.PhasePct[PhaseDeform],
		MaterialPct:    s.PhasePct[PhaseMaterial],
		GlowPct:        s.PhasePct[PhaseGlow],
		ParticlesPct:   s.PhasePct[PhaseParticles],
		SubmitPct:      s.PhasePct[PhaseSubmit],
	}
}
