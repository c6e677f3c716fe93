package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/game"
	"github.com/vovakirdan/tui-survivors/internal/platform/tui"
	"github.com/vovakirdan/tui-survivors/internal/spectate"
	"github.com/vovakirdan/tui-survivors/internal/storage"
)

var (
	flagWatchAddr string
	flagNoMenu    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start the game at the splash menu.

Controls:
  WASD/Arrows  - Move (or drag with the left mouse button)
  P/Esc        - Pause
  1/2/3        - Pick an upgrade on level up
  R            - Restart (after game over)
  B            - Back to menu (paused or game over)
  Ctrl+S       - Screenshot to ~/.survivors/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower first waves and weaker enemies
  normal - Default tuning
  hard   - Faster first waves and tougher enemies
  fixed  - Spawn rate and enemy stats never ramp up

Examples:
  survivors play
  survivors play --difficulty easy
  survivors play --config ./my-survivors.yaml
  survivors play --watch :8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagWatchAddr, "watch", "", "Publish a spectator feed on this address (e.g. :8080)")
	playCmd.Flags().BoolVar(&flagNoMenu, "no-menu", false, "Skip the splash menu and start a run")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, closeLog, err := newFileLogger("survivors")
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	deps := tui.Deps{
		Config: gameCfg,
		Store:  store,
		Logger: logger,
	}

	if flagWatchAddr != "" {
		stop, err := startSpectatorFeed(flagWatchAddr, logger, &deps)
		if err != nil {
			return err
		}
		defer stop()
	}

	if flagNoMenu {
		return tui.RunGame(deps, cfg)
	}
	return tui.Run(deps, cfg)
}

// startSpectatorFeed serves a websocket hub and routes every simulated
// frame to it. The returned func stops the server.
func startSpectatorFeed(addr string, logger *log.Logger, deps *tui.Deps) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := spectate.NewHub(logger)
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Surface bind errors before the alt screen hides them.
	select {
	case err := <-errCh:
		cancel()
		return nil, fmt.Errorf("spectator feed: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	logger.Info("spectator feed listening", "addr", addr)
	deps.Publish = func(snap game.Snapshot) {
		if err := hub.Publish(snap); err != nil {
			logger.Debug("publish failed", "err", err)
		}
	}

	return func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		srv.Shutdown(shutdownCtx)
		cancel()
	}, nil
}
