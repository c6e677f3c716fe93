package game

import "github.com/vovakirdan/tui-survivors/internal/core"

// Player is the single controllable entity of a run.
type Player struct {
	Pos          core.Vec
	Health       int
	MaxHealth    int
	Speed        float64 // Cells per nominal frame
	PickupRadius float64

	// Multiplicative modifiers, all starting at 1.
	DamageBoost          float64
	CooldownReduction    float64
	ProjectileSpeedBoost float64
	AreaSizeBoost        float64

	Invincible   bool
	InvincibleMS float64

	// LastMove is the most recent non-zero movement direction.
	LastMove core.Vec
}

func newPlayer(pos core.Vec, health int, speed, pickup float64) Player {
	return Player{
		Pos:                  pos,
		Health:               health,
		MaxHealth:            health,
		Speed:                speed,
		PickupRadius:         pickup,
		DamageBoost:          1,
		CooldownReduction:    1,
		ProjectileSpeedBoost: 1,
		AreaSizeBoost:        1,
		LastMove:             core.Vec{X: 1},
	}
}

// Enemy is a hostile entity chasing the player.
type Enemy struct {
	ID        uint64
	Type      int // Index into the run's enemy types
	Glyph     rune
	Class     string
	Color     core.Color
	Pos       core.Vec
	Health    float64
	MaxHealth int
	Speed     float64
	Damage    int
	XP        int
}

// Projectile is a moving damage source.
type Projectile struct {
	Pos        core.Vec
	Vel        core.Vec // Cells per nominal frame
	Damage     float64
	LifetimeMS float64
	Piercing   bool
	Glyph      rune
	Class      string
}

// Orb is an experience pickup dropped by a killed enemy.
type Orb struct {
	Pos   core.Vec
	Value int
}

// OwnedWeapon is a weapon instance held by the player.
type OwnedWeapon struct {
	Kind        WeaponKind
	Level       int
	Stats       WeaponStats
	SinceFireMS float64

	// cycled marks a cooldown completed during the current tick.
	cycled bool
}

func newOwnedWeapon(kind WeaponKind) *OwnedWeapon {
	return &OwnedWeapon{Kind: kind, Level: 1, Stats: Weapon(kind).Base}
}

// Template returns the immutable definition of the weapon.
func (w *OwnedWeapon) Template() *WeaponTemplate {
	return Weapon(w.Kind)
}

// MaxLevel reports whether the weapon can no longer be upgraded.
func (w *OwnedWeapon) MaxLevel() bool {
	return w.Level >= w.Template().MaxLevel
}

// levelUp raises the level by one and applies that level's delta.
func (w *OwnedWeapon) levelUp() bool {
	if w.MaxLevel() {
		return false
	}
	w.Level++
	if d, ok := w.Template().LevelUpDelta(w.Level); ok {
		w.Stats = w.Stats.Add(d)
	}
	return true
}
