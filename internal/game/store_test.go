package game

import "testing"

func TestStoreEnemyLookupAndRemoval(t *testing.T) {
	var s Store
	a := s.AddEnemy(&Enemy{Glyph: 'e'})
	b := s.AddEnemy(&Enemy{Glyph: 'o'})
	c := s.AddEnemy(&Enemy{Glyph: 'X'})
	if a == b || b == c {
		t.Fatalf("IDs not unique: %d %d %d", a, b, c)
	}

	// Backwards removal keeps the remaining order intact.
	for i := len(s.Enemies) - 1; i >= 0; i-- {
		if s.Enemies[i].ID == b {
			s.RemoveEnemyAt(i)
		}
	}

	if _, ok := s.EnemyByID(b); ok {
		t.Error("removed enemy still found")
	}
	e, ok := s.EnemyByID(c)
	if !ok || e.Glyph != 'X' {
		t.Errorf("EnemyByID(%d) = %v, %v", c, e, ok)
	}
	if len(s.Enemies) != 2 || s.Enemies[0].ID != a || s.Enemies[1].ID != c {
		t.Errorf("order after removal: %+v", s.Enemies)
	}

	s.Reset()
	if _, ok := s.EnemyByID(a); ok {
		t.Error("reset should drop every enemy")
	}
	if d := s.AddEnemy(&Enemy{}); d <= c {
		t.Errorf("ID %d reused after reset", d)
	}
}
