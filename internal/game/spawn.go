package game

import (
	"math"

	"github.com/vovakirdan/tui-survivors/internal/core"
)

// updateSpawning decays the spawn interval and releases a batch of enemies
// whenever the spawn timer runs past it.
func (s *Sim) updateSpawning(deltaMS float64) {
	s.run.SpawnIntervalMS = s.difficulty.DecayInterval(s.run.SpawnIntervalMS, deltaMS)
	s.run.SpawnTimerMS += deltaMS
	if s.run.SpawnTimerMS < s.run.SpawnIntervalMS {
		return
	}
	n := s.difficulty.BatchSize(s.run.GameTimeMS)
	for range n {
		s.spawnEnemy()
	}
	s.run.SpawnTimerMS = 0
}

// availableTypes returns indices of enemy types unlocked at elapsedSec.
func (s *Sim) availableTypes(elapsedSec float64) []int {
	var idx []int
	for i, t := range s.enemyTypes {
		if elapsedSec >= t.SpawnAfterSec {
			idx = append(idx, i)
		}
	}
	return idx
}

// spawnPosition picks a point just outside a random edge of the field. The
// position along the edge may overshoot into the corners.
func (s *Sim) spawnPosition() core.Vec {
	buf := s.cfg.Spawning.EdgeBuffer
	w, h := float64(s.width), float64(s.height)
	switch core.RandInt(s.rng, 1, 4) {
	case 1:
		return core.Vec{X: core.RandRange(s.rng, -buf, w+buf), Y: -buf}
	case 2:
		return core.Vec{X: w + buf, Y: core.RandRange(s.rng, -buf, h+buf)}
	case 3:
		return core.Vec{X: core.RandRange(s.rng, -buf, w+buf), Y: h + buf}
	default:
		return core.Vec{X: -buf, Y: core.RandRange(s.rng, -buf, h+buf)}
	}
}

func (s *Sim) spawnEnemy() {
	sec := s.run.GameTimeMS / 1000
	avail := s.availableTypes(sec)
	if len(avail) == 0 {
		return
	}
	ti := avail[core.RandInt(s.rng, 0, len(avail)-1)]
	s.store.AddEnemy(s.newEnemy(ti, s.spawnPosition(), sec))
}

// newEnemy builds an enemy of type ti with stats scaled for elapsedSec.
func (s *Sim) newEnemy(ti int, pos core.Vec, elapsedSec float64) *Enemy {
	t := s.enemyTypes[ti]
	health := int(math.Round(float64(t.Health) * s.difficulty.HealthMultiplier(elapsedSec)))
	return &Enemy{
		Type:      ti,
		Glyph:     t.Glyph,
		Class:     t.Class,
		Color:     t.Color,
		Pos:       pos,
		Health:    float64(health),
		MaxHealth: health,
		Speed:     t.Speed * s.difficulty.SpeedMultiplier(elapsedSec),
		Damage:    t.Damage,
		XP:        t.XP,
	}
}
