package game

// updateWeapons advances every cooldown. A weapon whose accumulator reaches
// its effective cooldown fires (or pulses, for area weapons) and resets.
func (s *Sim) updateWeapons(deltaMS float64) {
	p := &s.player
	for _, w := range s.store.Weapons {
		w.cycled = false
		w.SinceFireMS += deltaMS
		if w.SinceFireMS < w.Stats.CooldownMS*p.CooldownReduction {
			continue
		}
		t := w.Template()
		if !t.Area && t.Fire != nil {
			s.fire(t, w)
		}
		w.SinceFireMS = 0
		w.cycled = true
	}
}

func (s *Sim) fire(t *WeaponTemplate, w *OwnedWeapon) {
	ctx := FireContext{
		Template:     t,
		Stats:        w.Stats,
		Player:       s.player,
		Enemies:      s.store.Enemies,
		GameTimeMS:   s.run.GameTimeMS,
		AimRadius:    s.cfg.Combat.AimRadius,
		MuzzleOffset: s.cfg.Combat.MuzzleOffset,
	}
	for _, sp := range t.Fire(ctx) {
		s.store.AddProjectile(&Projectile{
			Pos:        sp.Pos,
			Vel:        sp.Vel,
			Damage:     sp.Damage,
			LifetimeMS: sp.LifetimeMS,
			Piercing:   sp.Piercing,
			Glyph:      sp.Glyph,
			Class:      sp.Class,
		})
	}
}

// grantWeapon levels an owned weapon or adds a new one at level 1.
func (s *Sim) grantWeapon(kind WeaponKind) {
	if w, ok := s.store.WeaponByKind(kind); ok {
		if w.levelUp() {
			s.logger.Debug("weapon upgraded", "weapon", kind, "level", w.Level)
		}
		return
	}
	s.store.AddWeapon(newOwnedWeapon(kind))
	s.logger.Debug("weapon acquired", "weapon", kind)
}
