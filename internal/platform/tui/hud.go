package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-survivors/internal/game"
)

// hudRows is the number of lines the HUD occupies above the field.
const hudRows = 2

var (
	hudLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// HUDView draws the status lines: clock, score and level, then health and
// experience bars.
type HUDView struct {
	health progress.Model
	xp     progress.Model
	width  int
}

// NewHUDView creates a HUD sized for a terminal width.
func NewHUDView(width int) HUDView {
	h := HUDView{
		health: progress.New(progress.WithSolidFill("#ff5f5f"), progress.WithoutPercentage()),
		xp:     progress.New(progress.WithSolidFill("#5fd7ff"), progress.WithoutPercentage()),
	}
	h.SetWidth(width)
	return h
}

// SetWidth resizes the bars. Each bar gets a share of the line after labels.
func (h *HUDView) SetWidth(width int) {
	h.width = width
	bar := (width - 36) / 2
	if bar < 6 {
		bar = 6
	}
	if bar > 40 {
		bar = 40
	}
	h.health.Width = bar
	h.xp.Width = bar
}

// View renders the HUD for one frame.
func (h HUDView) View(hud game.HUD) string {
	stats := fmt.Sprintf("%s %s   %s %s   %s %s",
		hudLabelStyle.Render("Time"), hudValueStyle.Render(hud.Time),
		hudLabelStyle.Render("Score"), hudValueStyle.Render(humanize.Comma(int64(hud.Score))),
		hudLabelStyle.Render("Lvl"), hudValueStyle.Render(fmt.Sprint(hud.Level)),
	)
	bars := fmt.Sprintf("%s %s %s   %s %s %s",
		hudLabelStyle.Render("HP"), h.health.ViewAs(hud.HealthFrac),
		fmt.Sprintf("%d/%d", hud.Health, hud.MaxHealth),
		hudLabelStyle.Render("XP"), h.xp.ViewAs(hud.XPFrac),
		fmt.Sprintf("%d/%d", hud.XP, hud.XPToNext),
	)
	return lipgloss.NewStyle().MaxWidth(h.width).Render(stats + "\n" + bars)
}
