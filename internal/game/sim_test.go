package game

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
)

const testFrame = 1000.0 / 60

func newTestSim(t *testing.T, opts ...Option) *Sim {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	s, err := New(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60}, config.DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewRejectsSmallField(t *testing.T) {
	_, err := New(core.RuntimeConfig{ScreenW: 10, ScreenH: 5}, config.DefaultConfig())
	if !errors.Is(err, ErrPlayfieldTooSmall) {
		t.Errorf("err = %v, want ErrPlayfieldTooSmall", err)
	}
}

func TestNewRejectsMissingEnemies(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Enemies = nil
	_, err := New(core.RuntimeConfig{ScreenW: 40, ScreenH: 20}, cfg)
	if !errors.Is(err, ErrNoEnemyTypes) {
		t.Errorf("err = %v, want ErrNoEnemyTypes", err)
	}
}

func TestNewRejectsUnknownStartWeapon(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Player.StartWeapon = "boomerang"
	_, err := New(core.RuntimeConfig{ScreenW: 40, ScreenH: 20}, cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestResetStartsFreshRun(t *testing.T) {
	s := newTestSim(t)
	s.run.Score = 500
	s.store.AddEnemy(&Enemy{Health: 10})
	s.Reset()

	p := s.Player()
	if p.Pos != (core.Vec{X: 20, Y: 10}) {
		t.Errorf("player at %v, want (20,10)", p.Pos)
	}
	if p.Health != 100 || p.MaxHealth != 100 {
		t.Errorf("health = %d/%d, want 100/100", p.Health, p.MaxHealth)
	}
	if p.LastMove != (core.Vec{X: 1}) {
		t.Errorf("last move = %v, want (1,0)", p.LastMove)
	}
	if len(s.store.Enemies) != 0 {
		t.Errorf("enemies = %d, want 0", len(s.store.Enemies))
	}
	if len(s.store.Weapons) != 1 || s.store.Weapons[0].Kind != WeaponDagger || s.store.Weapons[0].Level != 1 {
		t.Errorf("weapons = %+v, want one level 1 dagger", s.store.Weapons)
	}
	r := s.Run()
	if r.Level != 1 || r.XPToNext != 100 || r.Score != 0 || r.SpawnIntervalMS != 1400 {
		t.Errorf("run = %+v", r)
	}
	if s.State() != StateRunning {
		t.Errorf("state = %v, want running", s.State())
	}
}

func TestContactDamageStartsInvincibility(t *testing.T) {
	s := newTestSim(t)
	s.player.Pos = core.Vec{X: 10, Y: 10}
	s.store.AddEnemy(&Enemy{Pos: core.Vec{X: 10.5, Y: 10}, Health: 20, Damage: 10})

	s.resolveCollisions()

	p := s.Player()
	if p.Health != 90 {
		t.Errorf("health = %d, want 90", p.Health)
	}
	if !p.Invincible || p.InvincibleMS != 600 {
		t.Errorf("invincible = %v (%vms), want true (600ms)", p.Invincible, p.InvincibleMS)
	}

	s.resolveCollisions()
	if got := s.Player().Health; got != 90 {
		t.Errorf("health after second contact = %d, want 90 while invincible", got)
	}
}

func TestDamagePenaltyFloorsScoreAtZero(t *testing.T) {
	s := newTestSim(t)
	s.run.Score = 30
	s.damagePlayer(10)
	if s.run.Score != 0 {
		t.Errorf("score = %v, want 0", s.run.Score)
	}

	s.player.Invincible = false
	s.run.Score = 200
	s.damagePlayer(10)
	if s.run.Score != 150 {
		t.Errorf("score = %v, want 150", s.run.Score)
	}
}

func TestInvincibilityExpires(t *testing.T) {
	s := newTestSim(t)
	s.damagePlayer(10)
	s.updatePlayer(599, 599/testFrame, core.Intent{})
	if !s.player.Invincible {
		t.Fatal("invincibility ended early")
	}
	s.updatePlayer(1, 1/testFrame, core.Intent{})
	if s.player.Invincible || s.player.InvincibleMS != 0 {
		t.Errorf("invincible = %v (%vms), want false (0)", s.player.Invincible, s.player.InvincibleMS)
	}
}

func TestFatalContactEndsRun(t *testing.T) {
	s := newTestSim(t)
	s.player.Health = 5
	s.store.AddEnemy(&Enemy{Pos: s.player.Pos, Health: 20, Damage: 10})

	res := s.Step(testFrame, core.InputFrame{})
	if !res.GameOver || s.State() != StateGameOver {
		t.Fatalf("state = %v, want game over", s.State())
	}
	if s.Player().Health != 0 {
		t.Errorf("health = %d, want 0", s.Player().Health)
	}

	before := s.Run().GameTimeMS
	if res := s.Step(testFrame, core.InputFrame{}); res.Advanced {
		t.Error("step advanced after game over")
	}
	if s.Run().GameTimeMS != before {
		t.Error("game time moved after game over")
	}
}

func TestStepCapsDelta(t *testing.T) {
	s := newTestSim(t)
	res := s.Step(10_000, core.InputFrame{})
	want := 4 * testFrame
	if !approx(res.DeltaMS, want) {
		t.Errorf("delta = %v, want %v", res.DeltaMS, want)
	}
	if !approx(s.Run().GameTimeMS, want) {
		t.Errorf("game time = %v, want %v", s.Run().GameTimeMS, want)
	}
}

func TestStepAddsSurvivalScore(t *testing.T) {
	s := newTestSim(t)
	for range 40 {
		s.Step(25, core.InputFrame{})
	}
	if got := s.HUD().Score; got != 10 {
		t.Errorf("score after 1s = %d, want 10", got)
	}
}

func TestDiagonalMovementKeepsSpeed(t *testing.T) {
	s := newTestSim(t)
	start := s.player.Pos
	s.Step(testFrame, core.InputFrame{Move: core.KeyboardIntent(false, true, false, true)})

	moved := s.player.Pos.Sub(start).Len()
	if math.Abs(moved-0.15) > 1e-9 {
		t.Errorf("moved %v, want 0.15", moved)
	}
	if s.player.LastMove.X <= 0 || s.player.LastMove.Y <= 0 {
		t.Errorf("last move = %v, want down-right", s.player.LastMove)
	}
}

func TestPlayerClampedToField(t *testing.T) {
	s := newTestSim(t)
	s.player.Pos = core.Vec{X: 38.9, Y: 0.05}
	for range 20 {
		s.Step(testFrame, core.InputFrame{Move: core.Intent{X: 1, Y: -1}})
	}
	if s.player.Pos.X != 39 || s.player.Pos.Y != 0 {
		t.Errorf("player at %v, want (39,0)", s.player.Pos)
	}
}

func TestTickPauseAndResume(t *testing.T) {
	s := newTestSim(t)
	t0 := time.Unix(1000, 0)

	if res := s.Tick(t0, core.InputFrame{}); res.Advanced {
		t.Error("first tick should only start the clock")
	}
	s.Tick(t0.Add(16*time.Millisecond), core.InputFrame{})
	if !approx(s.Run().GameTimeMS, 16) {
		t.Fatalf("game time = %v, want 16", s.Run().GameTimeMS)
	}

	if !s.Pause() {
		t.Fatal("pause refused")
	}
	s.Tick(t0.Add(time.Second), core.InputFrame{})
	if !approx(s.Run().GameTimeMS, 16) {
		t.Errorf("game time moved while paused: %v", s.Run().GameTimeMS)
	}

	resume := t0.Add(5 * time.Second)
	if !s.TogglePause(resume) {
		t.Fatal("resume refused")
	}
	s.Tick(resume.Add(16*time.Millisecond), core.InputFrame{})
	if !approx(s.Run().GameTimeMS, 32) {
		t.Errorf("game time = %v, want 32 after resume", s.Run().GameTimeMS)
	}
}

func TestQuitStopsTicks(t *testing.T) {
	s := newTestSim(t)
	s.Quit()
	if res := s.Step(testFrame, core.InputFrame{}); res.Advanced {
		t.Error("step advanced after quit")
	}
	if s.Pause() {
		t.Error("pause accepted after quit")
	}
	if err := s.Choose(0); !errors.Is(err, ErrStopped) {
		t.Errorf("choose err = %v, want ErrStopped", err)
	}
}

func TestResize(t *testing.T) {
	s := newTestSim(t)
	s.player.Pos = core.Vec{X: 39, Y: 19}
	if err := s.Resize(32, 16); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if s.player.Pos != (core.Vec{X: 31, Y: 15}) {
		t.Errorf("player at %v, want (31,15)", s.player.Pos)
	}
	if err := s.Resize(10, 10); !errors.Is(err, ErrPlayfieldTooSmall) {
		t.Errorf("err = %v, want ErrPlayfieldTooSmall", err)
	}
	if w, h := s.Size(); w != 32 || h != 16 {
		t.Errorf("size = %dx%d, want 32x16 after rejected resize", w, h)
	}
}

func TestSnapshotSinkReceivesAdvancedTicks(t *testing.T) {
	var got []Snapshot
	s := newTestSim(t, WithSnapshotSink(func(snap Snapshot) { got = append(got, snap) }))
	s.Step(testFrame, core.InputFrame{})
	s.Pause()
	s.Step(testFrame, core.InputFrame{})

	if len(got) != 1 {
		t.Fatalf("sink calls = %d, want 1", len(got))
	}
	if got[0].Width != 40 || got[0].Player.Glyph != '@' || got[0].State != "running" {
		t.Errorf("snapshot = %+v", got[0])
	}
}

func TestPlayerFlashWhileInvincible(t *testing.T) {
	s := newTestSim(t)
	s.player.Invincible = true
	s.player.InvincibleMS = 550
	if c := s.playerClass(); c != ClassPlayer {
		t.Errorf("class at 550ms = %q, want %q", c, ClassPlayer)
	}
	s.player.InvincibleMS = 450
	if c := s.playerClass(); c != ClassPlayerFlash {
		t.Errorf("class at 450ms = %q, want %q", c, ClassPlayerFlash)
	}
	s.player.Invincible = false
	if c := s.playerClass(); c != ClassPlayer {
		t.Errorf("class = %q, want %q", c, ClassPlayer)
	}
}

func TestHUD(t *testing.T) {
	s := newTestSim(t)
	s.run.GameTimeMS = 83_500
	s.run.Score = 1234.9
	s.run.XP = 50
	s.player.Health = 25

	h := s.HUD()
	if h.Time != "01:23" || h.Score != 1234 || h.Level != 1 {
		t.Errorf("hud = %+v", h)
	}
	if h.HealthFrac != 0.25 || h.XPFrac != 0.5 {
		t.Errorf("fractions = %v, %v, want 0.25, 0.5", h.HealthFrac, h.XPFrac)
	}
}
