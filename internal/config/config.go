// Package config provides YAML-based game configuration loading and
// difficulty management for the 2048 platform.
package config

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/core"
)

// MaxBoardSize is the largest board the renderers can lay out.
const MaxBoardSize = 8

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board      T2048Board       `yaml:"board"`
	Rules      T2048Rules       `yaml:"rules"`
	Spawn      T2048Spawn       `yaml:"spawn"`
	Bot        T2048Bot         `yaml:"bot"`
	Animation  T2048Animation   `yaml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// T2048Board defines the board dimensions and tile counts.
type T2048Board struct {
	Size         int `yaml:"size"`
	InitialTiles int `yaml:"initial_tiles"`
	TilesPerTurn int `yaml:"tiles_per_turn"`
}

// T2048Rules defines the win and loss behavior.
type T2048Rules struct {
	WinTile       int  `yaml:"win_tile"` // 0 = no win check
	RestartOnLoss bool `yaml:"restart_on_loss"`
}

// T2048Spawn defines the weighted table new tiles are drawn from.
type T2048Spawn struct {
	Weights []core.TileWeight `yaml:"weights"`
}

// T2048Bot defines the autoplay bot.
type T2048Bot struct {
	Name        string `yaml:"name"` // greedy, priority or random
	MaxAttempts int    `yaml:"max_attempts"`
}

// T2048Animation defines animation lengths in ticks.
type T2048Animation struct {
	SlideTicks int `yaml:"slide_ticks"`
	PopTicks   int `yaml:"pop_ticks"`
}

// CoreRules converts the config to controller rules.
func (c T2048Config) CoreRules() core.Rules {
	return core.Rules{
		InitialTiles:  c.Board.InitialTiles,
		TilesPerTurn:  c.Board.TilesPerTurn,
		WinTile:       c.Rules.WinTile,
		RestartOnLoss: c.Rules.RestartOnLoss,
	}
}

// Validate clamps counts into range and rejects values that cannot be
// played.
func (c *T2048Config) Validate() error {
	if c.Board.Size < core.MinBoardSize || c.Board.Size > MaxBoardSize {
		return fmt.Errorf("board size %d out of range [%d, %d]", c.Board.Size, core.MinBoardSize, MaxBoardSize)
	}
	if c.Rules.WinTile < 0 || (c.Rules.WinTile > 0 && (c.Rules.WinTile < 4 || c.Rules.WinTile&(c.Rules.WinTile-1) != 0)) {
		return fmt.Errorf("win tile %d is not a power of two >= 4", c.Rules.WinTile)
	}

	c.Board.InitialTiles = platformcore.Clamp(c.Board.InitialTiles, 0, c.Board.Size*c.Board.Size)
	c.Board.TilesPerTurn = platformcore.Clamp(c.Board.TilesPerTurn, 0, c.Board.Size*c.Board.Size)
	if c.Bot.Name == "" {
		c.Bot.Name = "greedy"
	}
	if c.Bot.MaxAttempts < 1 {
		c.Bot.MaxAttempts = core.DefaultBotMaxAttempts
	}
	if c.Animation.SlideTicks < 1 {
		c.Animation.SlideTicks = 1
	}
	if c.Animation.PopTicks < 1 {
		c.Animation.PopTicks = 1
	}
	return nil
}

// DifficultyConfig defines how the spawn table hardens during a game.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	FourBonus   int `yaml:"four_bonus"`   // Weight added to 4s at max difficulty
	EightWeight int `yaml:"eight_weight"` // Weight of 8s at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI value to a preset; unknown values yield "".
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
