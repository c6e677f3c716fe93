package game

import "github.com/vovakirdan/tui-survivors/internal/core"

// Palette maps entity classes to colors.
type Palette map[string]core.Color

// DefaultPalette returns the colors used by the terminal renderer.
func DefaultPalette() Palette {
	return Palette{
		ClassPlayer:         core.ColorBrightYellow,
		ClassPlayerFlash:    core.ColorGray,
		ClassOrb:            core.ColorBrightCyan,
		"projectile-dagger": core.ColorBrightWhite,
		"projectile-spike":  core.ColorYellow,
		"background":        core.ColorGray,
	}
}

// Color returns the color of a class, falling back to def.
func (p Palette) Color(class string, def core.Color) core.Color {
	if c, ok := p[class]; ok {
		return c
	}
	return def
}

// Render draws the field into dst: background, orbs, projectiles, enemies,
// then the player on top. Cells outside dst are skipped.
func (s *Sim) Render(dst *core.Screen) {
	RenderSnapshot(dst, s.Snapshot(), PaletteForEnemies(s.enemyTypes))
}

// PaletteForEnemies extends the default palette with enemy class colors.
func PaletteForEnemies(types []EnemyType) Palette {
	pal := DefaultPalette()
	for _, t := range types {
		pal[t.Class] = t.Color
	}
	return pal
}

// RenderSnapshot draws a snapshot. Spectators use it without a Sim.
func RenderSnapshot(dst *core.Screen, snap Snapshot, pal Palette) {
	bg := pal.Color("background", core.ColorGray)
	for y := 0; y < snap.Height && y < dst.Height(); y++ {
		for x := 0; x < snap.Width && x < dst.Width(); x++ {
			dst.SetCell(x, y, BackgroundGlyph, bg)
		}
	}
	layers := [][]Sprite{snap.Orbs, snap.Projectiles, snap.Enemies, {snap.Player}}
	for _, layer := range layers {
		for _, sp := range layer {
			drawSprite(dst, snap, sp, pal)
		}
	}
}

func drawSprite(dst *core.Screen, snap Snapshot, sp Sprite, pal Palette) {
	x, y := core.RoundCell(sp.X), core.RoundCell(sp.Y)
	if x < 0 || y < 0 || x >= snap.Width || y >= snap.Height {
		return
	}
	dst.SetCell(x, y, sp.Glyph, pal.Color(sp.Class, core.ColorWhite))
}
