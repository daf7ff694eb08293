package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game modes and boards",
	Long:  `Shows the registered game modes and the board presets they can be played on.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Boards:")
	fmt.Println()
	for i := 0; i < t2048.PresetCount(); i++ {
		p := t2048.GetPreset(i)
		fmt.Printf("  %d  %-8s %dx%d  goal %d\n", i+1, p.Name, p.Size, p.Size, p.WinTile)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <id>' to play a mode.")
}
