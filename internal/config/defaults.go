package config

import (
	_ "embed"
)

//go:embed defaults/survivors.yaml
var defaultSurvivorsYAML []byte

// DefaultConfig returns the built-in tuning. It mirrors the embedded YAML
// and is used when the embed cannot be parsed.
func DefaultConfig() SurvivorConfig {
	return SurvivorConfig{
		Timing: TimingConfig{
			NominalFPS:     60,
			MaxDeltaFrames: 4,
		},
		Player: PlayerConfig{
			Glyph:           "@",
			Speed:           0.15,
			Health:          100,
			PickupRadius:    2.5,
			InvincibilityMS: 600,
			StartWeapon:     "dagger",
		},
		Scoring: ScoringConfig{
			PerSecond:     10,
			PerKill:       50,
			XPMultiplier:  1.5,
			DamagePenalty: 5,
		},
		Progression: ProgressionConfig{
			FirstThreshold:    100,
			ThresholdGrowth:   1.5,
			ThresholdBonus:    50,
			Options:           3,
			MaxAttempts:       20,
			FallbackMaxHealth: 10,
		},
		Combat: CombatConfig{
			ContactRadius:       0.8,
			ProjectileHitRadius: 0.9,
			OrbPickupRadius:     1.0,
			OrbMagnetSpeed:      0.35,
			EnemyStopDistance:   0.5,
			OffscreenBuffer:     5,
			AimRadius:           15,
			MuzzleOffset:        0.6,
		},
		Spawning: SpawningConfig{
			IntervalStartMS:    1400,
			IntervalMinMS:      150,
			DecayPerSecond:     0.992,
			EdgeBuffer:         3,
			BatchPeriodMinutes: 2.5,
			ScaleStats:         true,
			HealthGraceSec:     30,
			HealthRampSec:      500,
			SpeedGraceSec:      60,
			SpeedRampSec:       1500,
		},
		Enemies: []EnemyConfig{
			{Glyph: "e", Class: "enemy-e", Color: "red", Health: 20, Speed: 0.04, Damage: 10, XP: 10, SpawnAfterSec: 0},
			{Glyph: "o", Class: "enemy-o", Color: "orange", Health: 15, Speed: 0.07, Damage: 8, XP: 15, SpawnAfterSec: 30},
			{Glyph: "X", Class: "enemy-X", Color: "bright-magenta", Health: 80, Speed: 0.03, Damage: 20, XP: 50, SpawnAfterSec: 120},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSurvivorsYAML
}
