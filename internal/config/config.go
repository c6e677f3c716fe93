// Package config provides YAML-based tuning for the survivors engine and
// the difficulty scaling derived from it.
package config

import (
	"errors"
	"fmt"
)

// SurvivorConfig contains every tunable constant of a run.
type SurvivorConfig struct {
	Timing      TimingConfig      `yaml:"timing"`
	Player      PlayerConfig      `yaml:"player"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Progression ProgressionConfig `yaml:"progression"`
	Combat      CombatConfig      `yaml:"combat"`
	Spawning    SpawningConfig    `yaml:"spawning"`
	Enemies     []EnemyConfig     `yaml:"enemies"`
}

// TimingConfig defines the nominal frame and the delta cap.
type TimingConfig struct {
	NominalFPS     int     `yaml:"nominal_fps"`      // Speeds are expressed per nominal frame
	MaxDeltaFrames float64 `yaml:"max_delta_frames"` // Delta cap in nominal frames
}

// FrameMS returns the nominal frame duration in milliseconds.
func (t TimingConfig) FrameMS() float64 {
	if t.NominalFPS <= 0 {
		return 1000.0 / 60
	}
	return 1000.0 / float64(t.NominalFPS)
}

// MaxDeltaMS returns the largest delta a single tick may simulate.
func (t TimingConfig) MaxDeltaMS() float64 {
	return t.FrameMS() * t.MaxDeltaFrames
}

// PlayerConfig defines the starting player.
type PlayerConfig struct {
	Glyph           string  `yaml:"glyph"`
	Speed           float64 `yaml:"speed"` // Cells per nominal frame
	Health          int     `yaml:"health"`
	PickupRadius    float64 `yaml:"pickup_radius"`
	InvincibilityMS float64 `yaml:"invincibility_ms"`
	StartWeapon     string  `yaml:"start_weapon"`
}

// ScoringConfig defines how score is earned and lost.
type ScoringConfig struct {
	PerSecond     float64 `yaml:"per_second"`
	PerKill       float64 `yaml:"per_kill"`
	XPMultiplier  float64 `yaml:"xp_multiplier"`  // Score per XP collected
	DamagePenalty float64 `yaml:"damage_penalty"` // Score lost per point of damage taken
}

// ProgressionConfig defines leveling and upgrade rounds.
type ProgressionConfig struct {
	FirstThreshold    int     `yaml:"first_threshold"`
	ThresholdGrowth   float64 `yaml:"threshold_growth"`
	ThresholdBonus    float64 `yaml:"threshold_bonus"`
	Options           int     `yaml:"options"`
	MaxAttempts       int     `yaml:"max_attempts"`
	FallbackMaxHealth int     `yaml:"fallback_max_health"`
}

// CombatConfig defines collision radii and projectile limits.
type CombatConfig struct {
	ContactRadius       float64 `yaml:"contact_radius"`
	ProjectileHitRadius float64 `yaml:"projectile_hit_radius"`
	OrbPickupRadius     float64 `yaml:"orb_pickup_radius"`
	OrbMagnetSpeed      float64 `yaml:"orb_magnet_speed"`
	EnemyStopDistance   float64 `yaml:"enemy_stop_distance"`
	OffscreenBuffer     float64 `yaml:"offscreen_buffer"`
	AimRadius           float64 `yaml:"aim_radius"`
	MuzzleOffset        float64 `yaml:"muzzle_offset"`
}

// SpawningConfig defines the enemy spawn schedule and stat scaling.
type SpawningConfig struct {
	IntervalStartMS    float64 `yaml:"interval_start_ms"`
	IntervalMinMS      float64 `yaml:"interval_min_ms"`
	DecayPerSecond     float64 `yaml:"decay_per_second"`
	EdgeBuffer         float64 `yaml:"edge_buffer"`
	BatchPeriodMinutes float64 `yaml:"batch_period_minutes"`
	ScaleStats         bool    `yaml:"scale_stats"`
	HealthGraceSec     float64 `yaml:"health_grace_sec"`
	HealthRampSec      float64 `yaml:"health_ramp_sec"` // Seconds past grace per +100% health
	SpeedGraceSec      float64 `yaml:"speed_grace_sec"`
	SpeedRampSec       float64 `yaml:"speed_ramp_sec"`
}

// EnemyConfig defines one enemy type template.
type EnemyConfig struct {
	Glyph         string  `yaml:"glyph"`
	Class         string  `yaml:"class"`
	Color         string  `yaml:"color"`
	Health        int     `yaml:"health"`
	Speed         float64 `yaml:"speed"`
	Damage        int     `yaml:"damage"`
	XP            int     `yaml:"xp"`
	SpawnAfterSec float64 `yaml:"spawn_after_sec"`
}

// Validation errors.
var (
	ErrNoEnemies = errors.New("config: no enemy types defined")
)

// Validate reports the first inconsistent setting.
func (c SurvivorConfig) Validate() error {
	if c.Timing.NominalFPS <= 0 {
		return fmt.Errorf("config: nominal_fps must be positive, got %d", c.Timing.NominalFPS)
	}
	if c.Timing.MaxDeltaFrames <= 0 {
		return fmt.Errorf("config: max_delta_frames must be positive, got %v", c.Timing.MaxDeltaFrames)
	}
	if c.Player.Health <= 0 {
		return fmt.Errorf("config: player health must be positive, got %d", c.Player.Health)
	}
	if c.Spawning.IntervalMinMS <= 0 || c.Spawning.IntervalMinMS > c.Spawning.IntervalStartMS {
		return fmt.Errorf("config: interval_min_ms %v must be in (0, interval_start_ms %v]",
			c.Spawning.IntervalMinMS, c.Spawning.IntervalStartMS)
	}
	if c.Spawning.DecayPerSecond <= 0 || c.Spawning.DecayPerSecond > 1 {
		return fmt.Errorf("config: decay_per_second must be in (0, 1], got %v", c.Spawning.DecayPerSecond)
	}
	if c.Progression.FirstThreshold <= 0 || c.Progression.Options <= 0 {
		return fmt.Errorf("config: progression thresholds and options must be positive")
	}
	if len(c.Enemies) == 0 {
		return ErrNoEnemies
	}
	for i, e := range c.Enemies {
		if len([]rune(e.Glyph)) != 1 {
			return fmt.Errorf("config: enemy %d glyph must be a single character, got %q", i, e.Glyph)
		}
		if e.Health <= 0 {
			return fmt.Errorf("config: enemy %q health must be positive", e.Glyph)
		}
	}
	return nil
}
