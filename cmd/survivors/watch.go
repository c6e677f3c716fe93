package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-survivors/internal/game"
	"github.com/vovakirdan/tui-survivors/internal/platform/tui"
	"github.com/vovakirdan/tui-survivors/internal/spectate"
)

var watchCmd = &cobra.Command{
	Use:   "watch <ws-url>",
	Short: "Watch a run published with play --watch",
	Long: `Connect to a spectator feed and render it read-only.

Enemy colors come from the local tuning file, so pass the same --config
the player uses if it defines custom enemies.

Examples:
  survivors watch ws://localhost:8080/ws`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(_ *cobra.Command, args []string) error {
	url := args[0]

	gameCfg, err := loadGameConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	viewer, err := spectate.Dial(ctx, url)
	if err != nil {
		return err
	}
	defer viewer.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	pal := game.PaletteForEnemies(game.EnemyTypesFromConfig(gameCfg.Enemies))
	return tui.RunWatch(viewer, url, pal, width, height)
}
