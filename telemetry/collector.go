package telemetry

// Collector accumulates per-tick samples within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float32

	// Current window tracking
	windowStartTick int64

	// Counters for current window
	presetSwitches  int
	pointerMoves    int
	pointerLeaves   int
	particleResets  int
	nonFiniteFrames int
	activeSamples   int
	intensities     []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in scene seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int64(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordPointerMove records a pointer-move event.
func (c *Collector) RecordPointerMove() {
	c.pointerMoves++
}

// RecordPointerLeave records the pointer leaving the viewport.
func (c *Collector) RecordPointerLeave() {
	c.pointerLeaves++
}

// RecordPresetSwitch records a camera preset change.
func (c *Collector) RecordPresetSwitch() {
	c.presetSwitches++
}

// RecordParticleResets adds n particle resets.
func (c *Collector) RecordParticleResets(n int) {
	c.particleResets += n
}

// RecordNonFiniteFrame records a frame with NaN/Inf in its buffers.
func (c *Collector) RecordNonFiniteFrame() {
	c.nonFiniteFrames++
}

// RecordIntensity records one layer's hover state for the current tick.
func (c *Collector) RecordIntensity(intensity float32, active bool) {
	c.intensities = append(c.intensities, float64(intensity))
	if active {
		c.activeSamples++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// preset is the camera preset active at currentTick.
func (c *Collector) Flush(currentTick int64, preset string) WindowStats {
	mean, p50, p90, peak := Distribution(c.intensities)

	var activeFraction float64
	if len(c.intensities) > 0 {
		activeFraction = float64(c.activeSamples) / float64(len(c.intensities))
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Preset:         preset,
		PresetSwitches: c.presetSwitches,

		PointerMoves:  c.pointerMoves,
		PointerLeaves: c.pointerLeaves,

		IntensityMean:  mean,
		IntensityP50:   p50,
		IntensityP90:   p90,
		IntensityMax:   peak,
		ActiveFraction: activeFraction,

		ParticleResets:  c.particleResets,
		NonFiniteFrames: c.nonFiniteFrames,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.presetSwitches = 0
	c.pointerMoves = 0
	c.pointerLeaves = 0
	c.particleResets = 0
	c.nonFiniteFrames = 0
	c.activeSamples = 0
	c.intensities = c.intensities[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
