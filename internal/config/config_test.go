package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded YAML and DefaultConfig() differ:\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte("player:\n  health: 250\n")
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Player.Health != 250 {
		t.Errorf("Player.Health = %d, expected 250", cfg.Player.Health)
	}
	if cfg.Player.Speed != 0.15 {
		t.Errorf("unmentioned fields should keep defaults, speed = %f", cfg.Player.Speed)
	}
	if len(cfg.Enemies) != 3 {
		t.Errorf("enemies should keep defaults, got %d", len(cfg.Enemies))
	}
}

func TestParseEnemyListReplaces(t *testing.T) {
	data := []byte(`
enemies:
  - glyph: "z"
    class: enemy-z
    color: green
    health: 5
    speed: 0.1
    damage: 1
    xp: 1
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(cfg.Enemies) != 1 || cfg.Enemies[0].Glyph != "z" {
		t.Errorf("enemy list should be replaced, got %+v", cfg.Enemies)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SurvivorConfig)
	}{
		{"zero fps", func(c *SurvivorConfig) { c.Timing.NominalFPS = 0 }},
		{"zero health", func(c *SurvivorConfig) { c.Player.Health = 0 }},
		{"min above start", func(c *SurvivorConfig) { c.Spawning.IntervalMinMS = 5000 }},
		{"decay above one", func(c *SurvivorConfig) { c.Spawning.DecayPerSecond = 1.2 }},
		{"no enemies", func(c *SurvivorConfig) { c.Enemies = nil }},
		{"long glyph", func(c *SurvivorConfig) { c.Enemies[0].Glyph = "ee" }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("scoring:\n  per_kill: 75\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Scoring.PerKill != 75 {
		t.Errorf("PerKill = %f, expected 75", cfg.Scoring.PerKill)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("player: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}
}

func TestMarshalRoundTripKeepsTuning(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) failed: %v", err)
	}
	if cfg.Spawning.DecayPerSecond != 0.992 {
		t.Errorf("DecayPerSecond = %f after round trip", cfg.Spawning.DecayPerSecond)
	}
}

func TestDecayIntervalIsFrameRateIndependent(t *testing.T) {
	d := NewDifficultyManager(DefaultConfig().Spawning)

	// Ten seconds in one step.
	oneStep := d.DecayInterval(1400, 10000)

	// Ten seconds in 600 small steps.
	many := 1400.0
	for i := 0; i < 600; i++ {
		many = d.DecayInterval(many, 10000.0/600)
	}

	expected := 1400 * math.Pow(0.992, 10)
	if math.Abs(oneStep-expected) > 1e-6 {
		t.Errorf("one step = %f, expected %f", oneStep, expected)
	}
	if math.Abs(many-expected) > 1e-6 {
		t.Errorf("many steps = %f, expected %f", many, expected)
	}
	if math.Abs(expected-1291.9) > 0.1 {
		t.Errorf("expected interval ~1291.9, got %f", expected)
	}
}

func TestDecayIntervalFloor(t *testing.T) {
	d := NewDifficultyManager(DefaultConfig().Spawning)
	if got := d.DecayInterval(160, 1e7); got != 150 {
		t.Errorf("DecayInterval should floor at 150, got %f", got)
	}
}

func TestBatchSize(t *testing.T) {
	d := NewDifficultyManager(DefaultConfig().Spawning)
	tests := []struct {
		ms       float64
		expected int
	}{
		{0, 1},
		{149_999, 1},
		{150_000, 2},
		{300_000, 3},
	}
	for _, tc := range tests {
		if got := d.BatchSize(tc.ms); got != tc.expected {
			t.Errorf("BatchSize(%f) = %d, expected %d", tc.ms, got, tc.expected)
		}
	}
}

func TestStatMultipliers(t *testing.T) {
	d := NewDifficultyManager(DefaultConfig().Spawning)

	if got := d.HealthMultiplier(45); math.Abs(got-1.03) > 1e-9 {
		t.Errorf("HealthMultiplier(45) = %f, expected 1.03", got)
	}
	if got := d.HealthMultiplier(10); got != 1 {
		t.Errorf("HealthMultiplier during grace = %f, expected 1", got)
	}
	if got := d.SpeedMultiplier(59); got != 1 {
		t.Errorf("SpeedMultiplier during grace = %f, expected 1", got)
	}
	if got := d.SpeedMultiplier(210); math.Abs(got-1.1) > 1e-9 {
		t.Errorf("SpeedMultiplier(210) = %f, expected 1.1", got)
	}
}

func TestApplyPreset(t *testing.T) {
	easy := DefaultConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Spawning.IntervalStartMS != 1750 {
		t.Errorf("easy IntervalStartMS = %f, expected 1750", easy.Spawning.IntervalStartMS)
	}
	if easy.Enemies[0].Health != 16 {
		t.Errorf("easy enemy health = %d, expected 16", easy.Enemies[0].Health)
	}

	fixed := DefaultConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	d := NewDifficultyManager(fixed.Spawning)
	if d.DecayInterval(1400, 60000) != 1400 {
		t.Error("fixed preset should not decay the spawn interval")
	}
	if d.HealthMultiplier(600) != 1 || d.SpeedMultiplier(600) != 1 {
		t.Error("fixed preset should not scale enemy stats")
	}

	normal := DefaultConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, DefaultConfig()) {
		t.Error("normal preset should not change the config")
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("HARD"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(HARD) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset should not parse")
	}
}
