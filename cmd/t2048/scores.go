package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the best games recorded for the given mode (default 2048),
with the board size, highest tile and move count.

Examples:
  t2048 scores
  t2048 scores 2048_endless --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of games to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "2048"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	games, err := store.TopGames(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-5s  %s\n", "Rank", "Score", "Max", "Moves", "Board", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-5s  %s\n", "----", "-----", "---", "-----", "-----", "----")

	botGames := false
	for i, g := range games {
		score := fmt.Sprintf("%d", g.Score)
		if g.Bot != "" {
			score += "*"
			botGames = true
		}
		board := fmt.Sprintf("%dx%d", g.Size, g.Size)
		fmt.Printf("  %-4d  %-8s  %-6d  %-5d  %-5s  %s\n",
			i+1, score, g.MaxTile, g.Moves, board, g.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil && stats != nil {
		fmt.Printf("Best: %d  Average: %.0f  Scored games: %d\n", stats.HighScore, stats.AvgScore, stats.GamesCount)
	}
	if botGames {
		fmt.Println("* bot assisted")
	}
}
