package config

import (
	"math"

	"github.com/vovakirdan/tui-2048/internal/games/t2048/core"
)

// DifficultyManager calculates the spawn table based on score/moves.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/moves.
func (d *DifficultyManager) Level(score int, moves int) float64 {
	if !d.cfg.Enabled || d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "moves":
		progress = float64(moves) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Weights returns base adjusted for the current level: 4s gain up to
// FourBonus weight and 8s appear with up to EightWeight.
// base is not modified.
func (d *DifficultyManager) Weights(base []core.TileWeight, score int, moves int) []core.TileWeight {
	level := d.Level(score, moves)
	four := int(math.Round(level * float64(d.cfg.Scaling.FourBonus)))
	eight := int(math.Round(level * float64(d.cfg.Scaling.EightWeight)))

	out := append([]core.TileWeight(nil), base...)
	out = addWeight(out, 2, four)
	out = addWeight(out, 3, eight)
	return out
}

// Bind re-weights gen from base on every score change of ctrl while
// progression is enabled. It returns the unsubscribe function.
func (d *DifficultyManager) Bind(ctrl *core.Controller, gen *core.TileGenerator, base []core.TileWeight) func() {
	return ctrl.Subscribe(func(ev core.Event) {
		if ev.Kind != core.EventScoreChanged || !d.IsEnabled() {
			return
		}
		gen.SetWeights(d.Weights(base, ev.Score.Current, ctrl.Moves()))
	})
}

func addWeight(weights []core.TileWeight, exp, delta int) []core.TileWeight {
	if delta <= 0 {
		return weights
	}
	for i := range weights {
		if weights[i].Exponent == exp {
			weights[i].Weight += delta
			return weights
		}
	}
	return append(weights, core.TileWeight{Exponent: exp, Weight: delta})
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
