package game

import "slices"

// Store owns every dynamic entity of a run.
//
// Removal is by index and keeps order, so callers that delete while
// iterating must walk the slice backwards.
type Store struct {
	Enemies     []*Enemy
	Projectiles []*Projectile
	Orbs        []*Orb
	Weapons     []*OwnedWeapon

	nextID uint64
}

// Reset drops all entities. IDs keep increasing across resets.
func (s *Store) Reset() {
	s.Enemies = s.Enemies[:0]
	s.Projectiles = s.Projectiles[:0]
	s.Orbs = s.Orbs[:0]
	s.Weapons = s.Weapons[:0]
}

// AddEnemy assigns a fresh ID and stores the enemy.
func (s *Store) AddEnemy(e *Enemy) uint64 {
	s.nextID++
	e.ID = s.nextID
	s.Enemies = append(s.Enemies, e)
	return e.ID
}

// RemoveEnemyAt deletes the enemy at index i.
func (s *Store) RemoveEnemyAt(i int) {
	s.Enemies = slices.Delete(s.Enemies, i, i+1)
}

// EnemyByID returns the live enemy with the given ID.
func (s *Store) EnemyByID(id uint64) (*Enemy, bool) {
	for _, e := range s.Enemies {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// AddProjectile stores a projectile.
func (s *Store) AddProjectile(p *Projectile) {
	s.Projectiles = append(s.Projectiles, p)
}

// RemoveProjectileAt deletes the projectile at index i.
func (s *Store) RemoveProjectileAt(i int) {
	s.Projectiles = slices.Delete(s.Projectiles, i, i+1)
}

// AddOrb stores an orb.
func (s *Store) AddOrb(o *Orb) {
	s.Orbs = append(s.Orbs, o)
}

// RemoveOrbAt deletes the orb at index i.
func (s *Store) RemoveOrbAt(i int) {
	s.Orbs = slices.Delete(s.Orbs, i, i+1)
}

// AddWeapon stores a weapon. Each kind may be held once.
func (s *Store) AddWeapon(w *OwnedWeapon) bool {
	if _, ok := s.WeaponByKind(w.Kind); ok {
		return false
	}
	s.Weapons = append(s.Weapons, w)
	return true
}

// WeaponByKind returns the owned weapon of a kind.
func (s *Store) WeaponByKind(kind WeaponKind) (*OwnedWeapon, bool) {
	for _, w := range s.Weapons {
		if w.Kind == kind {
			return w, true
		}
	}
	return nil, false
}
