package game

import (
	"math"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

// Sprite is one drawable entity in field coordinates.
type Sprite struct {
	X     float64 `msgpack:"x" json:"x"`
	Y     float64 `msgpack:"y" json:"y"`
	Glyph rune    `msgpack:"g" json:"glyph"`
	Class string  `msgpack:"c" json:"class"`
}

// HUD is the status line data of a run.
type HUD struct {
	Time       string  `msgpack:"time" json:"time"`
	Score      int     `msgpack:"score" json:"score"`
	Health     int     `msgpack:"hp" json:"health"`
	MaxHealth  int     `msgpack:"max_hp" json:"max_health"`
	Level      int     `msgpack:"lvl" json:"level"`
	XP         int     `msgpack:"xp" json:"xp"`
	XPToNext   int     `msgpack:"xp_next" json:"xp_to_next"`
	HealthFrac float64 `msgpack:"hp_frac" json:"health_frac"`
	XPFrac     float64 `msgpack:"xp_frac" json:"xp_frac"`
}

// Snapshot is a read-only view of the world after a tick.
type Snapshot struct {
	Width       int      `msgpack:"w" json:"width"`
	Height      int      `msgpack:"h" json:"height"`
	State       string   `msgpack:"state" json:"state"`
	Player      Sprite   `msgpack:"player" json:"player"`
	Orbs        []Sprite `msgpack:"orbs" json:"orbs"`
	Projectiles []Sprite `msgpack:"proj" json:"projectiles"`
	Enemies     []Sprite `msgpack:"enemies" json:"enemies"`
	HUD         HUD      `msgpack:"hud" json:"hud"`
}

// Summary is the final result of a run.
type Summary struct {
	Score      int
	Time       string
	GameTimeMS float64
	Level      int
	Kills      int
}

// Glyphs and classes of non-templated entities.
const (
	OrbGlyph            = '*'
	BackgroundGlyph     = '.'
	ClassOrb            = "xp-orb"
	ClassPlayer         = "player"
	ClassPlayerFlash    = "player-invincible"
	playerFlashPeriodMS = 100
)

// playerClass alternates while invincible so the player visibly blinks.
func (s *Sim) playerClass() string {
	p := s.player
	if p.Invincible && int(math.Floor(p.InvincibleMS/playerFlashPeriodMS))%2 == 0 {
		return ClassPlayerFlash
	}
	return ClassPlayer
}

// Snapshot captures the current world state.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Width:       s.width,
		Height:      s.height,
		State:       s.state.String(),
		Player:      Sprite{X: s.player.Pos.X, Y: s.player.Pos.Y, Glyph: s.playerRune, Class: s.playerClass()},
		Orbs:        make([]Sprite, 0, len(s.store.Orbs)),
		Projectiles: make([]Sprite, 0, len(s.store.Projectiles)),
		Enemies:     make([]Sprite, 0, len(s.store.Enemies)),
		HUD:         s.HUD(),
	}
	for _, o := range s.store.Orbs {
		snap.Orbs = append(snap.Orbs, Sprite{X: o.Pos.X, Y: o.Pos.Y, Glyph: OrbGlyph, Class: ClassOrb})
	}
	for _, p := range s.store.Projectiles {
		snap.Projectiles = append(snap.Projectiles, Sprite{X: p.Pos.X, Y: p.Pos.Y, Glyph: p.Glyph, Class: p.Class})
	}
	for _, e := range s.store.Enemies {
		snap.Enemies = append(snap.Enemies, Sprite{X: e.Pos.X, Y: e.Pos.Y, Glyph: e.Glyph, Class: e.Class})
	}
	return snap
}

// HUD returns the status values of the current run.
func (s *Sim) HUD() HUD {
	p := s.player
	return HUD{
		Time:       core.FormatClock(s.run.GameTimeMS),
		Score:      int(math.Floor(s.run.Score)),
		Health:     max(0, p.Health),
		MaxHealth:  p.MaxHealth,
		Level:      s.run.Level,
		XP:         s.run.XP,
		XPToNext:   s.run.XPToNext,
		HealthFrac: core.Fraction(float64(p.Health), float64(p.MaxHealth)),
		XPFrac:     core.Fraction(float64(s.run.XP), float64(s.run.XPToNext)),
	}
}

// Summary returns the score line of the run so far.
func (s *Sim) Summary() Summary {
	return Summary{
		Score:      int(math.Floor(s.run.Score)),
		Time:       core.FormatClock(s.run.GameTimeMS),
		GameTimeMS: s.run.GameTimeMS,
		Level:      s.run.Level,
		Kills:      s.run.Kills,
	}
}
