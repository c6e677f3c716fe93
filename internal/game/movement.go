package game

import (
	"github.com/vovakirdan/tui-survivors/internal/core"
)

func (s *Sim) updatePlayer(deltaMS, ratio float64, in core.Intent) {
	p := &s.player
	if p.Invincible {
		p.InvincibleMS -= deltaMS
		if p.InvincibleMS <= 0 {
			p.Invincible = false
			p.InvincibleMS = 0
		}
	}

	if !in.IsZero() {
		dir := in.Vec()
		p.LastMove = dir
		p.Pos = p.Pos.Add(dir.Scale(p.Speed * ratio))
		s.clampPlayer()
	}

	s.updateOrbs(ratio)
}

func (s *Sim) clampPlayer() {
	p := &s.player
	p.Pos.X = core.ClampF(p.Pos.X, 0, float64(s.width-1))
	p.Pos.Y = core.ClampF(p.Pos.Y, 0, float64(s.height-1))
}

// updateOrbs collects orbs touching the player and pulls the ones inside
// the pickup radius closer at a fixed speed.
func (s *Sim) updateOrbs(ratio float64) {
	p := &s.player
	cc := s.cfg.Combat
	for i := len(s.store.Orbs) - 1; i >= 0; i-- {
		o := s.store.Orbs[i]
		d := core.Distance(p.Pos, o.Pos)
		switch {
		case d < cc.OrbPickupRadius:
			s.store.RemoveOrbAt(i)
			s.collectXP(o.Value)
		case d < p.PickupRadius:
			pull := cc.OrbMagnetSpeed * ratio
			dir := p.Pos.Sub(o.Pos).Scale(1 / d)
			o.Pos = o.Pos.Add(dir.Scale(pull))
		}
	}
}

func (s *Sim) updateEnemies(ratio float64) {
	target := s.player.Pos
	stop := s.cfg.Combat.EnemyStopDistance
	for _, e := range s.store.Enemies {
		to := target.Sub(e.Pos)
		d := to.Len()
		if d > stop {
			e.Pos = e.Pos.Add(to.Scale(e.Speed * ratio / d))
		}
	}
}

// updateProjectiles moves projectiles and drops expired or far offscreen ones.
func (s *Sim) updateProjectiles(deltaMS, ratio float64) {
	buf := s.cfg.Combat.OffscreenBuffer
	w, h := float64(s.width), float64(s.height)
	for i := len(s.store.Projectiles) - 1; i >= 0; i-- {
		pr := s.store.Projectiles[i]
		pr.Pos = pr.Pos.Add(pr.Vel.Scale(ratio))
		pr.LifetimeMS -= deltaMS
		if pr.LifetimeMS <= 0 ||
			pr.Pos.X < -buf || pr.Pos.X > w+buf ||
			pr.Pos.Y < -buf || pr.Pos.Y > h+buf {
			s.store.RemoveProjectileAt(i)
		}
	}
}
