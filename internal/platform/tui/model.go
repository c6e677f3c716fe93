package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/game"
	"github.com/vovakirdan/tui-survivors/internal/storage"
)

// chromeRows is the screen height taken by the HUD and the help line.
const chromeRows = hudRows + 1

// Deps bundles what a session needs beyond the terminal size.
type Deps struct {
	Config config.SurvivorConfig
	Store  *storage.Store // Nil disables persistence
	Logger *log.Logger    // Nil discards

	// Publish receives a snapshot after every simulated tick. Optional.
	Publish func(game.Snapshot)
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

// GameModel runs one survivors session inside a Bubble Tea program.
type GameModel struct {
	sim    *game.Sim
	screen *core.Screen
	deps   Deps
	logger *log.Logger
	config core.RuntimeConfig

	keyMapper *KeyMapper
	keys      GameKeyMap
	help      help.Model
	held      *HeldKeys
	drag      *DragState
	hud       HUDView
	frame     core.InputFrame

	width, height int
	tooSmall      bool
	cursor        int

	saved   bool
	newBest bool
	topRuns []storage.RunRecord
	status  string

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model for a terminal of cfg.ScreenW x cfg.ScreenH.
// A terminal too small to play starts with a placeholder field and waits
// for a resize.
func NewGameModel(deps Deps, cfg core.RuntimeConfig) (GameModel, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := deps.logger()

	fieldW, fieldH := cfg.ScreenW, cfg.ScreenH-chromeRows
	tooSmall := fieldW < game.MinWidth || fieldH < game.MinHeight
	simCfg := cfg
	simCfg.ScreenW = max(fieldW, game.MinWidth)
	simCfg.ScreenH = max(fieldH, game.MinHeight)

	opts := []game.Option{game.WithLogger(logger)}
	if deps.Publish != nil {
		opts = append(opts, game.WithSnapshotSink(deps.Publish))
	}
	sim, err := game.New(simCfg, deps.Config, opts...)
	if err != nil {
		return GameModel{}, fmt.Errorf("tui: cannot start run: %w", err)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		sim:       sim,
		screen:    core.NewScreen(simCfg.ScreenW, simCfg.ScreenH),
		deps:      deps,
		logger:    logger,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		keys:      DefaultGameKeyMap(),
		help:      h,
		held:      NewHeldKeys(),
		drag:      NewDragState(),
		hud:       NewHUDView(cfg.ScreenW),
		frame:     core.NewInputFrame(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		tooSmall:  tooSmall,
	}
	if tooSmall {
		sim.Pause()
	}
	return m, nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.MouseMsg:
		if m.sim.State() == game.StateRunning {
			m.drag.Handle(msg)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			m.status = "screenshot failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.sim.Quit()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.sim.State() {
	case game.StateRunning:
		switch action {
		case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
			m.held.Press(action, now)
		case core.ActionPause:
			if m.sim.Pause() {
				m.releaseInput()
				m.cursor = 0
			}
		}

	case game.StatePaused:
		switch action {
		case core.ActionPause:
			m.sim.Resume(now)
		case core.ActionUp:
			m.cursor = (m.cursor + len(pauseItems) - 1) % len(pauseItems)
		case core.ActionDown:
			m.cursor = (m.cursor + 1) % len(pauseItems)
		case core.ActionConfirm:
			if m.cursor == 0 {
				m.sim.Resume(now)
			} else {
				m.leave()
			}
		case core.ActionBack:
			m.leave()
		}

	case game.StateLevelingUp:
		n := len(m.sim.Options())
		switch {
		case action.ChoiceIndex() >= 0:
			m.choose(action.ChoiceIndex())
		case action == core.ActionUp && n > 0:
			m.cursor = (m.cursor + n - 1) % n
		case action == core.ActionDown && n > 0:
			m.cursor = (m.cursor + 1) % n
		case action == core.ActionConfirm:
			m.choose(m.cursor)
		}

	case game.StateGameOver:
		switch action {
		case core.ActionRestart, core.ActionConfirm:
			m.restart()
		case core.ActionBack, core.ActionPause:
			m.leave()
		}
	}

	return m, nil
}

func (m *GameModel) choose(i int) {
	if err := m.sim.Choose(i); err != nil {
		m.logger.Debug("upgrade rejected", "choice", i, "err", err)
		return
	}
	m.cursor = 0
}

func (m *GameModel) restart() {
	m.sim.Reset()
	m.releaseInput()
	m.saved = false
	m.newBest = false
	m.status = ""
	m.cursor = 0
}

func (m *GameModel) leave() {
	m.sim.Quit()
	m.backToMenu = true
}

func (m *GameModel) releaseInput() {
	m.held.Clear()
	m.drag.Release()
	m.frame.Clear()
}

// handleResize resizes the field without resetting the run.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	m.help.Width = msg.Width
	m.hud.SetWidth(msg.Width)

	fieldW, fieldH := msg.Width, msg.Height-chromeRows
	if err := m.sim.Resize(fieldW, fieldH); err != nil {
		if !m.tooSmall {
			m.logger.Debug("terminal too small", "width", msg.Width, "height", msg.Height)
		}
		m.tooSmall = true
		if m.sim.Pause() {
			m.releaseInput()
			m.cursor = 0
		}
		return m, nil
	}
	m.tooSmall = false
	m.screen.Resize(fieldW, fieldH)
	return m, nil
}

// handleTick advances the simulation to the tick time.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	m.frame.Move = core.ResolveIntent(m.held.Intent(now), m.drag.Intent(), m.drag.Active())
	res := m.sim.Tick(now, m.frame)
	m.frame.Clear()

	switch {
	case res.GameOver:
		m.releaseInput()
		m.finishRun()
	case res.LeveledUp:
		m.releaseInput()
		m.cursor = 0
	}

	return m, tickCmd(m.config.TickRate)
}

// finishRun stores the run once and reloads the high score list.
func (m *GameModel) finishRun() {
	if m.saved {
		return
	}
	m.saved = true

	store := m.deps.Store
	if store == nil {
		return
	}
	ctx := context.Background()
	sum := m.sim.Summary()
	rec, err := store.SaveRun(ctx, storage.RunRecord{
		Score:      sum.Score,
		Time:       sum.Time,
		SurvivalMS: int64(sum.GameTimeMS),
		Level:      sum.Level,
		Kills:      sum.Kills,
	})
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
		m.status = "score not saved"
		return
	}

	runs, err := store.TopRuns(ctx, storage.MaxHighScores)
	if err != nil {
		m.logger.Warn("could not load high scores", "err", err)
		return
	}
	m.topRuns = runs
	m.newBest = len(runs) > 0 && runs[0].ID == rec.ID
}

// saveScreenshot writes the current field as plain text.
func (m GameModel) saveScreenshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".survivors", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	m.sim.Render(m.screen)
	name := fmt.Sprintf("survivors_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.tooSmall {
		msg := fmt.Sprintf("Terminal too small\n\nNeed at least %dx%d, have %dx%d",
			game.MinWidth, game.MinHeight+chromeRows, m.width, m.height)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	var b strings.Builder
	b.WriteString(m.hud.View(m.sim.HUD()))
	b.WriteString("\n")
	b.WriteString(m.fieldView())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m GameModel) fieldView() string {
	w, h := m.sim.Size()
	switch m.sim.State() {
	case game.StatePaused:
		return overlay(w, h, pauseView(m.cursor))
	case game.StateLevelingUp:
		return overlay(w, h, levelUpView(m.sim.Run().Level, m.sim.Options(), m.cursor))
	case game.StateGameOver:
		return overlay(w, h, gameOverView(m.sim.Summary(), m.topRuns, m.newBest, m.status))
	}
	m.sim.Render(m.screen)
	return RenderScreen(m.screen)
}

func (m GameModel) footerView() string {
	line := m.help.View(m.keys.ForState(m.sim.State()))
	if m.status != "" && m.sim.State() != game.StateGameOver {
		line += "  " + dimStyle.Render(m.status)
	}
	return line
}

// Sim exposes the running simulation.
func (m GameModel) Sim() *game.Sim {
	return m.sim
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame starts a single run without the menu. It returns when the
// player quits or leaves the run.
func RunGame(deps Deps, cfg core.RuntimeConfig) error {
	model, err := NewGameModel(deps, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		gameOnly{model},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}

// gameOnly quits the program when the run is left instead of returning
// to a menu.
type gameOnly struct{ GameModel }

func (g gameOnly) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := g.GameModel.Update(msg)
	gm, _ := next.(GameModel)
	if gm.BackToMenu() {
		return gameOnly{gm}, tea.Quit
	}
	return gameOnly{gm}, cmd
}
