package config

import (
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values return "" and false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(strings.ToLower(s)) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyHard:
		return DifficultyHard, true
	case DifficultyFixed:
		return DifficultyFixed, true
	default:
		return "", false
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal and the empty preset leave the config untouched.
func ApplyPreset(cfg *SurvivorConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spawning.IntervalStartMS *= 1.25
		scaleEnemyHealth(cfg, 0.8)
	case DifficultyHard:
		cfg.Spawning.IntervalStartMS *= 0.75
		scaleEnemyHealth(cfg, 1.25)
	case DifficultyFixed:
		cfg.Spawning.DecayPerSecond = 1
		cfg.Spawning.ScaleStats = false
	}
	if cfg.Spawning.IntervalStartMS < cfg.Spawning.IntervalMinMS {
		cfg.Spawning.IntervalStartMS = cfg.Spawning.IntervalMinMS
	}
}

func scaleEnemyHealth(cfg *SurvivorConfig, k float64) {
	for i := range cfg.Enemies {
		cfg.Enemies[i].Health = max(1, int(math.Round(float64(cfg.Enemies[i].Health)*k)))
	}
}

// DifficultyManager calculates time-based spawn pacing and enemy scaling.
type DifficultyManager struct {
	cfg SpawningConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg SpawningConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// InitialInterval returns the spawn interval at the start of a run.
func (d *DifficultyManager) InitialInterval() float64 {
	return d.cfg.IntervalStartMS
}

// DecayInterval shrinks the spawn interval for deltaMS of elapsed time.
// The decay factor applies per second, so the result does not depend on how
// the time was split into ticks. It never drops below the configured floor.
func (d *DifficultyManager) DecayInterval(current, deltaMS float64) float64 {
	scaled := current * math.Pow(d.cfg.DecayPerSecond, deltaMS/1000)
	return math.Max(d.cfg.IntervalMinMS, scaled)
}

// BatchSize returns how many enemies spawn per interval at gameTimeMS.
func (d *DifficultyManager) BatchSize(gameTimeMS float64) int {
	if d.cfg.BatchPeriodMinutes <= 0 {
		return 1
	}
	minutes := gameTimeMS / 60000
	return 1 + int(math.Floor(minutes/d.cfg.BatchPeriodMinutes))
}

// HealthMultiplier returns the spawn-time health scale at elapsedSec.
func (d *DifficultyManager) HealthMultiplier(elapsedSec float64) float64 {
	return d.ramp(elapsedSec, d.cfg.HealthGraceSec, d.cfg.HealthRampSec)
}

// SpeedMultiplier returns the spawn-time speed scale at elapsedSec.
func (d *DifficultyManager) SpeedMultiplier(elapsedSec float64) float64 {
	return d.ramp(elapsedSec, d.cfg.SpeedGraceSec, d.cfg.SpeedRampSec)
}

func (d *DifficultyManager) ramp(elapsedSec, grace, rampSec float64) float64 {
	if !d.cfg.ScaleStats || rampSec <= 0 {
		return 1
	}
	return 1 + math.Max(0, (elapsedSec-grace)/rampSec)
}
