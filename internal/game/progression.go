package game

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
)

// UpgradeKind is the category of a level-up option.
type UpgradeKind int

const (
	UpgradeWeaponLevel UpgradeKind = iota
	UpgradeNewWeapon
	UpgradeBoost
	UpgradeFallback
)

// Upgrade is one level-up option.
type Upgrade struct {
	Kind   UpgradeKind
	Weapon WeaponKind
	Boost  BoostKind
	Amount int // Fallback max health bonus
	Text   string
}

// Signature identifies an option for de-duplication within one round.
func (u Upgrade) Signature() string {
	switch u.Kind {
	case UpgradeWeaponLevel:
		return fmt.Sprintf("level_%d", u.Weapon)
	case UpgradeNewWeapon:
		return fmt.Sprintf("new_%d", u.Weapon)
	case UpgradeBoost:
		return fmt.Sprintf("boost_%d", u.Boost)
	default:
		return "fallback"
	}
}

// GenerateUpgrades draws up to rules.Options distinct options. Each attempt
// picks uniformly among the categories that still have candidates, then a
// candidate uniformly within it. Accepted candidates leave their pool except
// the heal boost. When nothing qualifies a single max-health fallback is
// offered.
func GenerateUpgrades(rng *rand.Rand, p Player, owned []*OwnedWeapon, rules config.ProgressionConfig) []Upgrade {
	var levelable, unowned, boosts []Upgrade
	have := make(map[WeaponKind]bool, len(owned))
	for _, w := range owned {
		have[w.Kind] = true
		if w.MaxLevel() {
			continue
		}
		next := w.Level + 1
		levelable = append(levelable, Upgrade{
			Kind:   UpgradeWeaponLevel,
			Weapon: w.Kind,
			Text:   fmt.Sprintf("Upgrade %s (Lvl %d): %s", w.Kind, next, Weapon(w.Kind).LevelDescription(next)),
		})
	}
	for _, k := range WeaponKinds() {
		if have[k] {
			continue
		}
		unowned = append(unowned, Upgrade{
			Kind:   UpgradeNewWeapon,
			Weapon: k,
			Text:   fmt.Sprintf("New Weapon: %s - %s", k, Weapon(k).Description),
		})
	}
	for k := BoostKind(0); k < boostKindCount; k++ {
		if k == BoostHeal && p.Health >= p.MaxHealth {
			continue
		}
		b := Boost(k)
		boosts = append(boosts, Upgrade{Kind: UpgradeBoost, Boost: b.Kind, Text: b.Name})
	}

	pools := []*[]Upgrade{&levelable, &unowned, &boosts}
	var opts []Upgrade
	seen := make(map[string]bool)
	for attempt := 0; attempt < rules.MaxAttempts && len(opts) < rules.Options; attempt++ {
		var open []*[]Upgrade
		for _, pool := range pools {
			if len(*pool) > 0 {
				open = append(open, pool)
			}
		}
		if len(open) == 0 {
			break
		}
		pool := open[rng.Intn(len(open))]
		i := rng.Intn(len(*pool))
		u := (*pool)[i]
		sig := u.Signature()
		if seen[sig] {
			continue
		}
		seen[sig] = true
		opts = append(opts, u)
		if u.Kind != UpgradeBoost || u.Boost != BoostHeal {
			*pool = slices.Delete(*pool, i, i+1)
		}
	}

	if len(opts) == 0 {
		opts = append(opts, Upgrade{
			Kind:   UpgradeFallback,
			Amount: rules.FallbackMaxHealth,
			Text:   fmt.Sprintf("Max Health +%d (Fallback)", rules.FallbackMaxHealth),
		})
	}
	return opts
}

// collectXP adds experience and its score bonus, starting a level-up when
// the threshold is crossed.
func (s *Sim) collectXP(amount int) {
	if s.state == StateGameOver {
		return
	}
	s.run.XP += amount
	s.run.Score += math.Round(float64(amount) * s.cfg.Scoring.XPMultiplier)
	if s.run.XP >= s.run.XPToNext && s.state != StateLevelingUp {
		s.levelUp()
	}
}

func (s *Sim) levelUp() {
	pr := s.cfg.Progression
	s.run.Level++
	s.run.XP -= s.run.XPToNext
	s.run.XPToNext = int(math.Floor(float64(s.run.XPToNext)*pr.ThresholdGrowth + pr.ThresholdBonus))
	s.options = GenerateUpgrades(s.rng, s.player, s.store.Weapons, pr)
	s.state = StateLevelingUp
	if len(s.options) == 1 && s.options[0].Kind == UpgradeFallback {
		s.logger.Warn("no upgrades available, offering fallback", "level", s.run.Level)
	}
	s.logger.Debug("level up", "level", s.run.Level, "next", s.run.XPToNext, "options", len(s.options))
}

// Options returns the pending level-up options.
func (s *Sim) Options() []Upgrade {
	if s.state != StateLevelingUp {
		return nil
	}
	out := make([]Upgrade, len(s.options))
	copy(out, s.options)
	return out
}

// Choose applies option i and resumes the run.
func (s *Sim) Choose(i int) error {
	if s.stopped {
		return ErrStopped
	}
	if s.state != StateLevelingUp {
		return ErrNotLevelingUp
	}
	if i < 0 || i >= len(s.options) {
		return fmt.Errorf("%w: %d of %d", ErrBadChoice, i+1, len(s.options))
	}
	u := s.options[i]
	s.applyUpgrade(u)
	s.options = nil
	s.state = StateRunning
	s.logger.Debug("upgrade chosen", "option", u.Text)
	return nil
}

func (s *Sim) applyUpgrade(u Upgrade) {
	switch u.Kind {
	case UpgradeWeaponLevel, UpgradeNewWeapon:
		s.grantWeapon(u.Weapon)
	case UpgradeBoost:
		Boost(u.Boost).Apply(&s.player)
	case UpgradeFallback:
		s.player.MaxHealth += u.Amount
		s.player.Health += u.Amount
	}
	s.player.Health = core.Clamp(s.player.Health, 0, s.player.MaxHealth)
}
