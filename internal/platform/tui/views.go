package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-survivors/internal/game"
	"github.com/vovakirdan/tui-survivors/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)

	bestStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// pauseItems are the pause menu entries in cursor order.
var pauseItems = []string{"Resume", "Quit to Menu"}

// overlay centers a box over a dotted field-sized backdrop.
func overlay(width, height int, box string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars("."),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("236")),
	)
}

func menuLines(items []string, cursor int) string {
	lines := make([]string, len(items))
	for i, item := range items {
		if i == cursor {
			lines[i] = cursorStyle.Render("> " + item + " ")
		} else {
			lines[i] = "  " + item
		}
	}
	return strings.Join(lines, "\n")
}

func pauseView(cursor int) string {
	return boxStyle.Render(titleStyle.Render("PAUSED") + "\n\n" + menuLines(pauseItems, cursor))
}

func levelUpView(level int, options []game.Upgrade, cursor int) string {
	items := make([]string, len(options))
	for i, o := range options {
		items[i] = fmt.Sprintf("%d. %s", i+1, o.Text)
	}
	header := titleStyle.Render(fmt.Sprintf("LEVEL UP! (Level %d)", level))
	return boxStyle.Render(header + "\n" + dimStyle.Render("Choose an upgrade") + "\n\n" + menuLines(items, cursor))
}

func gameOverView(sum game.Summary, runs []storage.RunRecord, newBest bool, status string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GAME OVER"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Survived  %s\n", sum.Time)
	fmt.Fprintf(&b, "Score     %s\n", humanize.Comma(int64(sum.Score)))
	fmt.Fprintf(&b, "Level     %d\n", sum.Level)
	fmt.Fprintf(&b, "Kills     %d\n", sum.Kills)
	if newBest {
		b.WriteString("\n")
		b.WriteString(bestStyle.Render("New high score!"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(highScoreList(runs))
	if status != "" {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render(status))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("r: restart   b: menu   q: quit"))
	return boxStyle.Render(b.String())
}

// highScoreList renders the top runs as a compact ranked list.
func highScoreList(runs []storage.RunRecord) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("High Scores"))
	b.WriteString("\n")
	if len(runs) == 0 {
		b.WriteString(dimStyle.Render("No scores yet!"))
		return b.String()
	}
	for i, r := range runs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %8s  %s  %s", i+1, humanize.Comma(int64(r.Score)), r.Time,
			dimStyle.Render(r.CreatedAt.Format("Jan 02")))
	}
	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
