package config

import "math"

// SpawnRamp computes the enemy spawn interval as a run progresses.
// The interval starts at the configured value, shifted by the initial level,
// and shrinks by a fixed step every time an enemy is spawned.
type SpawnRamp struct {
	cfg          DifficultyConfig
	base         float64
	initialLevel float64
}

// NewSpawnRamp creates a ramp for the given difficulty and base interval.
func NewSpawnRamp(cfg DifficultyConfig, baseInterval float64) *SpawnRamp {
	r := &SpawnRamp{
		cfg:          cfg,
		base:         baseInterval,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
	if cfg.Preset != "" {
		r.ApplyPreset(cfg.Preset)
	}
	return r
}

// ApplyPreset switches the ramp to a named difficulty.
func (r *SpawnRamp) ApplyPreset(preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		r.SetEnabled(false)
		return
	}
	r.SetEnabled(true)
	r.SetInitialLevel(InitialLevelForPreset(preset))
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (r *SpawnRamp) SetInitialLevel(level float64) {
	r.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables the ramp.
func (r *SpawnRamp) SetEnabled(enabled bool) {
	r.cfg.Enabled = enabled
}

// IsEnabled returns whether the interval shrinks over time.
func (r *SpawnRamp) IsEnabled() bool {
	return r.cfg.Enabled && r.cfg.Ramp.Step > 0
}

// Start returns the interval at the beginning of a run.
func (r *SpawnRamp) Start() float64 {
	start := r.base - r.initialLevel*r.cfg.Ramp.HeadStart
	if start < r.cfg.Ramp.Floor {
		start = math.Min(r.base, r.cfg.Ramp.Floor)
	}
	return start
}

// Next returns the interval after one more enemy has been spawned.
func (r *SpawnRamp) Next(interval float64) float64 {
	if !r.IsEnabled() || interval <= r.cfg.Ramp.Floor {
		return interval
	}
	return math.Max(r.cfg.Ramp.Floor, interval-r.cfg.Ramp.Step)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
