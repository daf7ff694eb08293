package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "t2048",
})

// presetSelector is implemented by modes with selectable boards.
type presetSelector interface {
	SelectPreset(id int)
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// applyGameFlags hands --config and --difficulty to the 2048 modes.
func applyGameFlags() {
	t2048.SetConfigPath(flagConfig)
	t2048.SetDifficultyPreset(flagDifficulty)
}

// loadGameConfig resolves the config the same way the modes do.
func loadGameConfig() (config.T2048Config, error) {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return cfg, err
	}
	if preset := config.ParseDifficultyPreset(flagDifficulty); preset != "" {
		config.ApplyT2048Preset(&cfg, preset)
	}
	return cfg, cfg.Validate()
}

// openStore opens the scores database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// chooseBoard applies preset, or asks for one when it is zero. It returns
// false if the player backed out.
func chooseBoard(game registry.Game, preset int, cfg core.RuntimeConfig) (core.RuntimeConfig, bool, error) {
	selector, ok := game.(presetSelector)
	if !ok {
		return cfg, true, nil
	}
	if preset > 0 {
		selector.SelectPreset(preset)
		return cfg, true, nil
	}

	endless := strings.HasSuffix(game.ID(), "_endless")
	selection, cfg, err := tui.RunT2048PresetSelector(cfg, endless)
	if err != nil || selection == nil {
		return cfg, false, err
	}
	selector.SelectPreset(selection.Preset)
	return cfg, true, nil
}
