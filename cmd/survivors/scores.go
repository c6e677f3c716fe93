package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivors/internal/storage"
)

var flagClearYes bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the stored top runs and lifetime totals.

Examples:
  survivors scores
  survivors scores import ./highscores.json
  survivors scores clear --yes`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

var scoresImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a legacy JSON high score list",
	Long: `Import scores from a JSON list such as
[{"score": 1234, "time": "03:12", "date": "1/2/2024"}].

Entries without a numeric score or a time string are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runScoresImport,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored run",
	Args:  cobra.NoArgs,
	RunE:  runScoresClear,
}

func init() {
	scoresClearCmd.Flags().BoolVar(&flagClearYes, "yes", false, "Confirm deletion")
	scoresCmd.AddCommand(scoresImportCmd)
	scoresCmd.AddCommand(scoresClearCmd)
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	runs, err := store.TopRuns(ctx, storage.MaxHighScores)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - ASCII Survivors")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'survivors play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-6s  %-5s  %-6s  %s\n", "Rank", "Score", "Time", "Level", "Kills", "When")
	fmt.Printf("  %-4s  %-9s  %-6s  %-5s  %-6s  %s\n", "----", "-----", "----", "-----", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-9s  %-6s  %-5d  %-6d  %s\n",
			i+1, humanize.Comma(int64(r.Score)), r.Time, r.Level, r.Kills, humanize.Time(r.CreatedAt))
	}

	if stats, err := store.Stats(ctx); err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Lifetime: %s runs, %s kills, best %s\n",
			humanize.Comma(int64(stats.Runs)), humanize.Comma(int64(stats.Kills)), humanize.Comma(int64(stats.BestScore)))
	}
	return nil
}

func runScoresImport(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	scores, err := storage.ParseLegacyScores(data)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	n, err := store.ImportLegacy(context.Background(), scores)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d of %d entries.\n", n, len(scores))
	return nil
}

func runScoresClear(_ *cobra.Command, _ []string) error {
	if !flagClearYes {
		return errors.New("refusing to clear scores without --yes")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if err := store.ClearRuns(context.Background()); err != nil {
		return err
	}
	fmt.Println("All scores cleared.")
	return nil
}
