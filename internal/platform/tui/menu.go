package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-survivors/internal/storage"
)

// MenuChoice is what the splash menu asks the session to do next.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoiceStart
	MenuChoiceScores
	MenuChoiceQuit
)

// MenuItem represents a selectable splash entry.
type MenuItem struct {
	Title  string
	Choice MenuChoice
}

var splashItems = []MenuItem{
	{Title: "Start Run", Choice: MenuChoiceStart},
	{Title: "High Scores", Choice: MenuChoiceScores},
	{Title: "Quit", Choice: MenuChoiceQuit},
}

const splashTitle = "A S C I I   S U R V I V O R S"

// MenuModel is the splash screen with the top runs.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	runs      []storage.RunRecord
	keyMapper *KeyMapper
	selected  MenuChoice
}

// NewMenuModel creates a splash menu. A nil store shows an empty list.
func NewMenuModel(store *storage.Store, logger *log.Logger, width, height int) MenuModel {
	m := MenuModel{
		items:     splashItems,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		runs, err := store.TopRuns(context.Background(), storage.MaxHighScores)
		if err != nil && logger != nil {
			logger.Warn("could not load high scores", "err", err)
		}
		m.runs = runs
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.selected = MenuChoiceQuit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = m.items[m.cursor].Choice

	case MenuActionScoreboard:
		m.selected = MenuChoiceScores
	}

	return m, nil
}

// View renders the splash.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(splashTitle), m.width))
	b.WriteString("\n")
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Move with WASD, arrows or a mouse drag. Weapons fire on their own."), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = cursorStyle.Render("> " + item.Title + " ")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, line := range strings.Split(highScoreList(m.runs), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or MenuChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// Runs returns the high scores shown on the splash.
func (m MenuModel) Runs() []storage.RunRecord {
	return m.runs
}
