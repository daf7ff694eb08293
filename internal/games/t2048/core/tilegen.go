package core

import (
	"math/rand"

	"github.com/charmbracelet/log"
)

// FallbackExponent is used when the weight table cannot produce a value.
const FallbackExponent = 1

// TileWeight is one entry of the spawn distribution.
type TileWeight struct {
	Exponent int `yaml:"exponent" json:"exponent"`
	Weight   int `yaml:"weight" json:"weight"`
}

// DefaultTileWeights spawns a 2 nine times out of ten and a 4 otherwise.
func DefaultTileWeights() []TileWeight {
	return []TileWeight{
		{Exponent: 1, Weight: 9},
		{Exponent: 2, Weight: 1},
	}
}

// TileGenerator draws new tile exponents from a weighted table.
type TileGenerator struct {
	weights    []TileWeight
	total      int
	rng        *rand.Rand
	logger     *log.Logger
	warnedOnce bool
}

// NewTileGenerator builds a generator. Entries with a non-positive weight or
// exponent never win a draw. A nil logger falls back to log.Default().
func NewTileGenerator(weights []TileWeight, rng *rand.Rand, logger *log.Logger) *TileGenerator {
	if logger == nil {
		logger = log.Default()
	}
	g := &TileGenerator{
		rng:    rng,
		logger: logger,
	}
	g.SetWeights(weights)
	return g
}

// SetWeights replaces the distribution. The fallback warning is not repeated.
func (g *TileGenerator) SetWeights(weights []TileWeight) {
	g.weights = g.weights[:0]
	g.total = 0
	for _, w := range weights {
		if w.Weight <= 0 || w.Exponent <= Empty {
			continue
		}
		g.weights = append(g.weights, w)
		g.total += w.Weight
	}
}

// Weights returns a copy of the usable entries.
func (g *TileGenerator) Weights() []TileWeight {
	return append([]TileWeight(nil), g.weights...)
}

// Degenerate reports whether every draw falls back to FallbackExponent.
func (g *TileGenerator) Degenerate() bool {
	return g.total <= 0
}

// Generate returns the exponent for a new tile.
func (g *TileGenerator) Generate() int {
	if g.total > 0 {
		r := g.rng.Intn(g.total) + 1
		acc := 0
		for _, w := range g.weights {
			acc += w.Weight
			if r <= acc {
				return w.Exponent
			}
		}
	}

	if !g.warnedOnce {
		g.warnedOnce = true
		g.logger.Warn("tile weight table is empty, using fallback tile",
			"fallback", TileNumber(FallbackExponent))
	}
	return FallbackExponent
}
