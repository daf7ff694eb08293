package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-2048/internal/games/t2048/core"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: T2048Board{
			Size:         4,
			InitialTiles: 2,
			TilesPerTurn: 1,
		},
		Rules: T2048Rules{
			WinTile:       2048,
			RestartOnLoss: false,
		},
		Spawn: T2048Spawn{
			Weights: core.DefaultTileWeights(),
		},
		Bot: T2048Bot{
			Name:        "greedy",
			MaxAttempts: core.DefaultBotMaxAttempts,
		},
		Animation: T2048Animation{
			SlideTicks: 8, // ~133ms at 60fps
			PopTicks:   6, // ~100ms at 60fps
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				FourBonus:   3,
				EightWeight: 1,
			},
		},
	}
}
