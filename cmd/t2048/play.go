package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var flagPreset int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (2048 or 2048_endless, default 2048).
Without --preset a board picker is shown first.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  C                - Keep going after a win
  B                - Toggle the bot
  P                - Pause
  R                - Restart (after the game ends)
  Esc              - Leave a finished or paused game
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Starts with the classic spawn table, hardens with score
  normal - Starts at 30% difficulty, hardens with score
  hard   - Starts at 70% with an extra initial tile
  fixed  - No progression, stays at the config's spawn table

Examples:
  t2048 play
  t2048 play 2048_endless
  t2048 play --preset 1
  t2048 play --difficulty hard
  t2048 play --config ./my-2048.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPreset, "preset", 0, "Board preset (see 't2048 list'), 0 = ask")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "2048"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available modes.")
		os.Exit(1)
	}

	applyGameFlags()
	cfg := runtimeConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg, ok, err := chooseBoard(game, flagPreset, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		return
	}

	store := openStore()
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
