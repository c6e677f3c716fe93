package game

import (
	"math"
	"strings"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
)

// WeaponKind identifies a weapon template.
type WeaponKind int

const (
	WeaponDagger WeaponKind = iota
	WeaponGarlicAura
	WeaponSpinningSpikes
	weaponKindCount
)

// String returns the display name of the weapon kind.
func (k WeaponKind) String() string {
	if k < 0 || k >= weaponKindCount {
		return "Unknown"
	}
	return weaponCatalog[k].Name
}

// ParseWeaponKind maps a config key ("dagger", "garlic-aura", ...) to a kind.
func ParseWeaponKind(s string) (WeaponKind, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i := range weaponCatalog {
		if weaponCatalog[i].Key == key {
			return WeaponKind(i), true
		}
	}
	return 0, false
}

// WeaponStats are the derived numbers of a weapon instance.
// The same type carries per-level additive deltas.
type WeaponStats struct {
	Damage          float64
	CooldownMS      float64
	ProjectileSpeed float64
	Radius          float64
	Projectiles     int
}

// Add returns s with every field of d added.
func (s WeaponStats) Add(d WeaponStats) WeaponStats {
	return WeaponStats{
		Damage:          s.Damage + d.Damage,
		CooldownMS:      s.CooldownMS + d.CooldownMS,
		ProjectileSpeed: s.ProjectileSpeed + d.ProjectileSpeed,
		Radius:          s.Radius + d.Radius,
		Projectiles:     s.Projectiles + d.Projectiles,
	}
}

// LevelStep is the upgrade applied when a weapon reaches a level.
type LevelStep struct {
	Description string
	Delta       WeaponStats
}

// FireContext is everything a fire rule may read. Rules never mutate it.
type FireContext struct {
	Template     *WeaponTemplate
	Stats        WeaponStats
	Player       Player
	Enemies      []*Enemy
	GameTimeMS   float64
	AimRadius    float64
	MuzzleOffset float64
}

// ProjectileSpawn is a request to create one projectile.
type ProjectileSpawn struct {
	Pos        core.Vec
	Vel        core.Vec
	Damage     float64
	LifetimeMS float64
	Piercing   bool
	Glyph      rune
	Class      string
}

// FireRule turns weapon state into projectile spawn requests.
type FireRule func(FireContext) []ProjectileSpawn

// WeaponTemplate is the immutable definition of a weapon kind.
type WeaponTemplate struct {
	Kind            WeaponKind
	Key             string
	Name            string
	Description     string
	ProjectileGlyph rune
	ProjectileClass string
	LifetimeMS      float64
	Base            WeaponStats
	MaxLevel        int
	Area            bool // Damage applied around the player instead of by projectiles
	Levels          []LevelStep
	Fire            FireRule
}

// LevelUpDelta returns the stat delta for reaching newLevel.
// Levels outside 2..MaxLevel yield no change.
func (t *WeaponTemplate) LevelUpDelta(newLevel int) (WeaponStats, bool) {
	idx := newLevel - 2
	if newLevel > t.MaxLevel || idx < 0 || idx >= len(t.Levels) {
		return WeaponStats{}, false
	}
	return t.Levels[idx].Delta, true
}

// LevelDescription describes the upgrade for reaching newLevel.
func (t *WeaponTemplate) LevelDescription(newLevel int) string {
	idx := newLevel - 2
	if idx < 0 || idx >= len(t.Levels) {
		return "Upgrade"
	}
	return t.Levels[idx].Description
}

var weaponCatalog = [weaponKindCount]WeaponTemplate{
	WeaponDagger: {
		Kind:            WeaponDagger,
		Key:             "dagger",
		Name:            "Dagger",
		Description:     "Fires a sharp projectile towards movement/target.",
		ProjectileGlyph: '\'',
		ProjectileClass: "projectile-dagger",
		LifetimeMS:      1500,
		Base:            WeaponStats{Damage: 10, CooldownMS: 800, ProjectileSpeed: 0.4},
		MaxLevel:        5,
		Levels: []LevelStep{
			{"Damage +5", WeaponStats{Damage: 5}},
			{"Cooldown -100ms", WeaponStats{CooldownMS: -100}},
			{"Damage +10", WeaponStats{Damage: 10}},
			{"Cooldown -150ms", WeaponStats{CooldownMS: -150}},
		},
		Fire: fireAimed,
	},
	WeaponGarlicAura: {
		Kind:        WeaponGarlicAura,
		Key:         "garlic-aura",
		Name:        "Garlic Aura",
		Description: "Damages nearby enemies periodically.",
		Base:        WeaponStats{Damage: 3, CooldownMS: 500, Radius: 3.0},
		MaxLevel:    5,
		Area:        true,
		Levels: []LevelStep{
			{"Radius +0.5", WeaponStats{Radius: 0.5}},
			{"Damage +2", WeaponStats{Damage: 2}},
			{"Radius +0.75", WeaponStats{Radius: 0.75}},
			{"Damage +3", WeaponStats{Damage: 3}},
		},
	},
	WeaponSpinningSpikes: {
		Kind:            WeaponSpinningSpikes,
		Key:             "spinning-spikes",
		Name:            "Spinning Spikes",
		Description:     "Launches spikes radially that rotate slowly.",
		ProjectileGlyph: '+',
		ProjectileClass: "projectile-spike",
		LifetimeMS:      1200,
		Base:            WeaponStats{Damage: 8, CooldownMS: 1500, ProjectileSpeed: 0.2, Projectiles: 4},
		MaxLevel:        5,
		Levels: []LevelStep{
			{"+1 Spike", WeaponStats{Projectiles: 1}},
			{"Damage +4", WeaponStats{Damage: 4}},
			{"Cooldown -200ms", WeaponStats{CooldownMS: -200}},
			{"+1 Spike", WeaponStats{Projectiles: 1}},
		},
		Fire: fireRadial,
	},
}

// Weapon returns the template for a kind.
func Weapon(kind WeaponKind) *WeaponTemplate {
	return &weaponCatalog[kind]
}

// WeaponKinds lists every weapon kind in catalog order.
func WeaponKinds() []WeaponKind {
	kinds := make([]WeaponKind, 0, weaponKindCount)
	for k := WeaponKind(0); k < weaponKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// fireAimed shoots one projectile at the nearest enemy inside the
// acquisition radius, or along the last movement direction.
func fireAimed(c FireContext) []ProjectileSpawn {
	p := c.Player
	var target *Enemy
	minDist := c.AimRadius * p.AreaSizeBoost
	for _, e := range c.Enemies {
		if d := core.Distance(p.Pos, e.Pos); d < minDist {
			minDist = d
			target = e
		}
	}

	dir := p.LastMove
	if target != nil {
		dir = target.Pos.Sub(p.Pos)
	}
	dir = dir.Normalize(core.Vec{X: 1})

	return []ProjectileSpawn{c.spawn(dir)}
}

// fireRadial shoots Projectiles spikes evenly spaced around the player,
// rotated by elapsed game time.
func fireRadial(c FireContext) []ProjectileSpawn {
	n := c.Stats.Projectiles
	if n <= 0 {
		return nil
	}
	spawns := make([]ProjectileSpawn, 0, n)
	step := 2 * math.Pi / float64(n)
	for i := range n {
		angle := float64(i)*step + c.GameTimeMS/3000
		spawns = append(spawns, c.spawn(core.Vec{X: math.Cos(angle), Y: math.Sin(angle)}))
	}
	return spawns
}

func (c FireContext) spawn(dir core.Vec) ProjectileSpawn {
	speed := c.Stats.ProjectileSpeed * c.Player.ProjectileSpeedBoost
	return ProjectileSpawn{
		Pos:        c.Player.Pos.Add(dir.Scale(c.MuzzleOffset)),
		Vel:        dir.Scale(speed),
		Damage:     c.Stats.Damage * c.Player.DamageBoost,
		LifetimeMS: c.Template.LifetimeMS,
		Glyph:      c.Template.ProjectileGlyph,
		Class:      c.Template.ProjectileClass,
	}
}

// BoostKind identifies a stat boost template.
type BoostKind int

const (
	BoostMaxHealth BoostKind = iota
	BoostMoveSpeed
	BoostDamage
	BoostCooldown
	BoostPickupRadius
	BoostHeal
	boostKindCount
)

// BoostTemplate is an immutable stat upgrade.
type BoostTemplate struct {
	Kind        BoostKind
	Name        string
	Description string
	Apply       func(*Player)
}

var boostCatalog = [boostKindCount]BoostTemplate{
	BoostMaxHealth: {
		Kind: BoostMaxHealth, Name: "Max Health +20%", Description: "Increases max health by 20%.",
		Apply: func(p *Player) {
			ratio := float64(p.Health) / float64(p.MaxHealth)
			p.MaxHealth = int(math.Round(float64(p.MaxHealth) * 1.2))
			p.Health = int(math.Round(float64(p.MaxHealth) * ratio))
		},
	},
	BoostMoveSpeed: {
		Kind: BoostMoveSpeed, Name: "Move Speed +10%", Description: "Increases movement speed by 10%.",
		Apply: func(p *Player) { p.Speed *= 1.1 },
	},
	BoostDamage: {
		Kind: BoostDamage, Name: "Damage +15%", Description: "Increases all weapon damage by 15%.",
		Apply: func(p *Player) { p.DamageBoost *= 1.15 },
	},
	BoostCooldown: {
		Kind: BoostCooldown, Name: "Cooldown -10%", Description: "Reduces weapon cooldowns by 10%.",
		Apply: func(p *Player) { p.CooldownReduction *= 0.9 },
	},
	BoostPickupRadius: {
		Kind: BoostPickupRadius, Name: "Pickup Radius +25%", Description: "Increases XP orb collection radius.",
		Apply: func(p *Player) { p.PickupRadius *= 1.25 },
	},
	BoostHeal: {
		Kind: BoostHeal, Name: "Heal 30%", Description: "Restores 30% of maximum health.",
		Apply: func(p *Player) {
			p.Health = min(p.MaxHealth, p.Health+int(math.Round(float64(p.MaxHealth)*0.3)))
		},
	},
}

// Boost returns the template for a boost kind.
func Boost(kind BoostKind) *BoostTemplate {
	return &boostCatalog[kind]
}

// EnemyType is an immutable enemy template.
type EnemyType struct {
	Glyph         rune
	Class         string
	Color         core.Color
	Health        int
	Speed         float64
	Damage        int
	XP            int
	SpawnAfterSec float64
}

// EnemyTypesFromConfig builds templates from the tuning file.
func EnemyTypesFromConfig(list []config.EnemyConfig) []EnemyType {
	types := make([]EnemyType, 0, len(list))
	for _, ec := range list {
		glyph := '?'
		if r := []rune(ec.Glyph); len(r) > 0 {
			glyph = r[0]
		}
		color, _ := core.ParseColor(ec.Color)
		class := ec.Class
		if class == "" {
			class = "enemy-" + string(glyph)
		}
		types = append(types, EnemyType{
			Glyph:         glyph,
			Class:         class,
			Color:         color,
			Health:        ec.Health,
			Speed:         ec.Speed,
			Damage:        ec.Damage,
			XP:            ec.XP,
			SpawnAfterSec: ec.SpawnAfterSec,
		})
	}
	return types
}
