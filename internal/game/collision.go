package game

import (
	"math"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

// resolveCollisions applies enemy contact, projectile hits and area pulses,
// in that order.
func (s *Sim) resolveCollisions() {
	p := &s.player
	cc := s.cfg.Combat

	if !p.Invincible {
		for i := len(s.store.Enemies) - 1; i >= 0; i-- {
			e := s.store.Enemies[i]
			if core.Distance(p.Pos, e.Pos) < cc.ContactRadius {
				s.damagePlayer(e.Damage)
				if s.state == StateGameOver {
					return
				}
				break
			}
		}
	}

	for i := len(s.store.Projectiles) - 1; i >= 0; i-- {
		pr := s.store.Projectiles[i]
		for j := len(s.store.Enemies) - 1; j >= 0; j-- {
			if core.Distance(pr.Pos, s.store.Enemies[j].Pos) >= cc.ProjectileHitRadius {
				continue
			}
			s.damageEnemy(j, pr.Damage)
			if !pr.Piercing {
				s.store.RemoveProjectileAt(i)
				break
			}
		}
	}

	for _, w := range s.store.Weapons {
		if !w.cycled || !w.Template().Area {
			continue
		}
		radius := w.Stats.Radius * p.AreaSizeBoost
		dmg := w.Stats.Damage * p.DamageBoost
		for j := len(s.store.Enemies) - 1; j >= 0; j-- {
			if core.Distance(p.Pos, s.store.Enemies[j].Pos) < radius {
				s.damageEnemy(j, dmg)
			}
		}
	}
}

// damagePlayer applies contact damage and starts the invincibility window.
func (s *Sim) damagePlayer(amount int) {
	p := &s.player
	if p.Invincible || s.state == StateGameOver {
		return
	}
	p.Health -= amount
	s.run.Score = math.Max(0, s.run.Score-float64(amount)*s.cfg.Scoring.DamagePenalty)
	if p.Health <= 0 {
		p.Health = 0
		s.gameOver()
		return
	}
	p.Invincible = true
	p.InvincibleMS = s.cfg.Player.InvincibilityMS
}

// damageEnemy is the only path by which enemies die. A kill drops an orb,
// awards score and removes the enemy at index i.
func (s *Sim) damageEnemy(i int, amount float64) bool {
	e := s.store.Enemies[i]
	e.Health -= amount
	if e.Health > 0 {
		return false
	}
	s.store.AddOrb(&Orb{Pos: e.Pos, Value: e.XP})
	s.run.Score += s.cfg.Scoring.PerKill
	s.run.Kills++
	s.store.RemoveEnemyAt(i)
	return true
}
