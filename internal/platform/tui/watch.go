package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/game"
	"github.com/vovakirdan/tui-survivors/internal/spectate"
)

// FrameSource yields spectator frames. *spectate.Viewer implements it.
type FrameSource interface {
	Next() (spectate.Frame, error)
}

type frameMsg spectate.Frame

type feedEndedMsg struct{ err error }

// WatchModel renders a remote run from a spectator feed.
type WatchModel struct {
	src     FrameSource
	source  string
	palette game.Palette
	screen  *core.Screen
	hud     HUDView

	last   *spectate.Frame
	frames int
	err    error

	width, height int
}

// NewWatchModel creates a spectator view. source labels the feed in the
// footer.
func NewWatchModel(src FrameSource, source string, pal game.Palette, width, height int) WatchModel {
	return WatchModel{
		src:     src,
		source:  source,
		palette: pal,
		screen:  core.NewScreen(max(width, 1), max(height-chromeRows, 1)),
		hud:     NewHUDView(width),
		width:   width,
		height:  height,
	}
}

// Init starts reading the feed.
func (m WatchModel) Init() tea.Cmd {
	return m.waitFrame()
}

func (m WatchModel) waitFrame() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		f, err := src.Next()
		if err != nil {
			return feedEndedMsg{err: err}
		}
		return frameMsg(f)
	}
}

// Update handles feed frames and keys.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		f := spectate.Frame(msg)
		m.last = &f
		m.frames++
		return m, m.waitFrame()

	case feedEndedMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.hud.SetWidth(msg.Width)
	}
	return m, nil
}

// View draws the latest frame.
func (m WatchModel) View() string {
	if m.last == nil {
		msg := "Waiting for frames from " + m.source
		if m.err != nil {
			msg = "Feed ended: " + m.err.Error()
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	snap := m.last.Snapshot
	if m.screen.Width() != snap.Width || m.screen.Height() != snap.Height {
		m.screen.Resize(snap.Width, snap.Height)
	}
	game.RenderSnapshot(m.screen, snap, m.palette)

	var b strings.Builder
	b.WriteString(m.hud.View(snap.HUD))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	status := fmt.Sprintf("watching %s  frame %d  %s", m.source, m.last.Seq, snap.State)
	if m.err != nil {
		status = "feed ended: " + m.err.Error()
	}
	b.WriteString(dimStyle.Render(status + "   q: quit"))
	return b.String()
}

// Frames returns the number of frames received.
func (m WatchModel) Frames() int {
	return m.frames
}

// RunWatch shows a spectator feed until the user quits.
func RunWatch(src FrameSource, source string, pal game.Palette, width, height int) error {
	p := tea.NewProgram(
		NewWatchModel(src, source, pal, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
