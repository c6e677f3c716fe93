// Package game implements the survivors simulation: entities, weapons,
// collisions, progression, spawning and the per-tick state machine.
// It knows nothing about terminals; adapters feed it input frames and read
// snapshots back.
package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
)

// Minimum playable field.
const (
	MinWidth  = 30
	MinHeight = 15
)

var (
	ErrPlayfieldTooSmall = errors.New("game: playfield too small")
	ErrNoEnemyTypes      = errors.New("game: no enemy types")
	ErrInvalidConfig     = errors.New("game: invalid config")
	ErrNotLevelingUp     = errors.New("game: no level-up pending")
	ErrBadChoice         = errors.New("game: upgrade choice out of range")
	ErrStopped           = errors.New("game: simulation stopped")
)

// State is the run phase.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateLevelingUp
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateLevelingUp:
		return "leveling-up"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// RunState holds the scalar progress of a run.
type RunState struct {
	GameTimeMS      float64
	Score           float64
	Level           int
	XP              int
	XPToNext        int
	Kills           int
	SpawnTimerMS    float64
	SpawnIntervalMS float64
}

// StepResult reports what a tick did.
type StepResult struct {
	State     State
	DeltaMS   float64 // Simulated time after capping
	Advanced  bool    // False when the tick was a no-op
	GameOver  bool    // Run ended during this tick
	LeveledUp bool    // A level-up is pending after this tick
}

// Option configures a Sim.
type Option func(*Sim)

// WithRand sets the random source. Tests pass a seeded one.
func WithRand(rng *rand.Rand) Option {
	return func(s *Sim) { s.rng = rng }
}

// WithLogger sets the logger for run lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(s *Sim) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSnapshotSink registers a callback receiving a snapshot after every
// advanced tick.
func WithSnapshotSink(fn func(Snapshot)) Option {
	return func(s *Sim) { s.sink = fn }
}

// Sim is one survivors game session. It is not safe for concurrent use.
type Sim struct {
	cfg        config.SurvivorConfig
	frameMS    float64
	difficulty *config.DifficultyManager
	enemyTypes []EnemyType
	startKind  WeaponKind
	playerRune rune

	rng    *rand.Rand
	logger *log.Logger
	sink   func(Snapshot)

	width, height int

	player  Player
	store   Store
	run     RunState
	state   State
	options []Upgrade

	lastFrame time.Time
	stopped   bool
}

// New creates a simulation and starts the first run.
func New(rt core.RuntimeConfig, cfg config.SurvivorConfig, opts ...Option) (*Sim, error) {
	if rt.ScreenW < MinWidth || rt.ScreenH < MinHeight {
		return nil, fmt.Errorf("%w: %dx%d, need %dx%d", ErrPlayfieldTooSmall, rt.ScreenW, rt.ScreenH, MinWidth, MinHeight)
	}
	if len(cfg.Enemies) == 0 {
		return nil, ErrNoEnemyTypes
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	start, ok := ParseWeaponKind(cfg.Player.StartWeapon)
	if !ok {
		return nil, fmt.Errorf("%w: unknown start weapon %q", ErrInvalidConfig, cfg.Player.StartWeapon)
	}

	s := &Sim{
		cfg:        cfg,
		frameMS:    cfg.Timing.FrameMS(),
		difficulty: config.NewDifficultyManager(cfg.Spawning),
		enemyTypes: EnemyTypesFromConfig(cfg.Enemies),
		startKind:  start,
		playerRune: '@',
		logger:     log.New(io.Discard),
		width:      rt.ScreenW,
		height:     rt.ScreenH,
	}
	if r := []rune(cfg.Player.Glyph); len(r) > 0 {
		s.playerRune = r[0]
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := rt.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}

	s.Reset()
	return s, nil
}

// Reset discards the current run and starts a fresh one on the same field.
func (s *Sim) Reset() {
	center := core.Vec{X: float64(s.width / 2), Y: float64(s.height / 2)}
	pc := s.cfg.Player
	s.player = newPlayer(center, pc.Health, pc.Speed, pc.PickupRadius)

	s.store.Reset()
	s.store.AddWeapon(newOwnedWeapon(s.startKind))

	s.run = RunState{
		Level:           1,
		XPToNext:        s.cfg.Progression.FirstThreshold,
		SpawnIntervalMS: s.difficulty.InitialInterval(),
	}
	s.state = StateRunning
	s.options = nil
	s.lastFrame = time.Time{}
	s.stopped = false

	s.logger.Debug("run started", "width", s.width, "height", s.height, "weapon", s.startKind)
}

// Tick advances the run to wall-clock time now. Paused and leveling-up runs
// only track the clock so that resuming does not produce a time jump.
func (s *Sim) Tick(now time.Time, in core.InputFrame) StepResult {
	if s.stopped || s.state == StateGameOver {
		return StepResult{State: s.state}
	}
	if s.state != StateRunning || s.lastFrame.IsZero() {
		s.lastFrame = now
		return StepResult{State: s.state}
	}
	delta := float64(now.Sub(s.lastFrame)) / float64(time.Millisecond)
	s.lastFrame = now
	return s.Step(delta, in)
}

// Step advances a running game by deltaMS. The delta is capped so a stall
// never simulates more than a few frames at once.
func (s *Sim) Step(deltaMS float64, in core.InputFrame) StepResult {
	if s.stopped || s.state != StateRunning {
		return StepResult{State: s.state}
	}
	delta := core.ClampF(deltaMS, 0, s.cfg.Timing.MaxDeltaMS())
	ratio := delta / s.frameMS
	res := StepResult{DeltaMS: delta, Advanced: true}

	s.run.GameTimeMS += delta
	s.run.Score += s.cfg.Scoring.PerSecond / 1000 * delta

	s.updatePlayer(delta, ratio, core.ResolveIntent(in.Move, core.Intent{}, false))
	s.updateEnemies(ratio)
	s.updateWeapons(delta)
	s.updateProjectiles(delta, ratio)
	s.resolveCollisions()

	if s.state == StateGameOver {
		res.State = s.state
		res.GameOver = true
		s.emit()
		return res
	}

	s.updateSpawning(delta)
	s.emit()

	res.State = s.state
	res.LeveledUp = s.state == StateLevelingUp
	return res
}

// Pause suspends a running game.
func (s *Sim) Pause() bool {
	if s.state != StateRunning || s.stopped {
		return false
	}
	s.state = StatePaused
	s.logger.Debug("paused", "time", core.FormatClock(s.run.GameTimeMS))
	return true
}

// Resume continues a paused game. The frame clock restarts at now.
func (s *Sim) Resume(now time.Time) bool {
	if s.state != StatePaused || s.stopped {
		return false
	}
	s.state = StateRunning
	s.lastFrame = now
	return true
}

// TogglePause flips between running and paused.
func (s *Sim) TogglePause(now time.Time) bool {
	if s.state == StatePaused {
		return s.Resume(now)
	}
	return s.Pause()
}

// Quit stops the session. Further ticks are no-ops.
func (s *Sim) Quit() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.logger.Debug("session stopped", "state", s.state)
}

// Stopped reports whether Quit was called.
func (s *Sim) Stopped() bool { return s.stopped }

// State returns the current phase.
func (s *Sim) State() State { return s.state }

// Run returns a copy of the scalar run progress.
func (s *Sim) Run() RunState { return s.run }

// Player returns a copy of the player.
func (s *Sim) Player() Player { return s.player }

// Store exposes the entity store. Callers must not mutate it while a tick
// is running.
func (s *Sim) Store() *Store { return &s.store }

// Size returns the playfield dimensions.
func (s *Sim) Size() (int, int) { return s.width, s.height }

// Resize changes the playfield and clamps the player into it. Entities
// outside the new bounds are left alone; offscreen projectiles expire.
func (s *Sim) Resize(width, height int) error {
	if width < MinWidth || height < MinHeight {
		return fmt.Errorf("%w: %dx%d", ErrPlayfieldTooSmall, width, height)
	}
	s.width, s.height = width, height
	s.clampPlayer()
	return nil
}

func (s *Sim) gameOver() {
	s.state = StateGameOver
	s.options = nil
	sum := s.Summary()
	s.logger.Info("game over", "score", sum.Score, "time", sum.Time, "level", sum.Level, "kills", sum.Kills)
}

func (s *Sim) emit() {
	if s.sink != nil {
		s.sink(s.Snapshot())
	}
}
