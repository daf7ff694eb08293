package core

import (
	"fmt"
	"math/rand"
)

// Board owns the grid and applies moves and random placements to it.
// Every mutation is reported on the board's event bus.
type Board struct {
	grid    Grid
	maxExp  int
	moves   MoveSet
	rng     *rand.Rand
	tileGen *TileGenerator
	events  Bus
}

// NewBoard creates an empty size×size board. rng drives cell shuffling;
// gen draws tile values.
func NewBoard(size int, rng *rand.Rand, gen *TileGenerator) (*Board, error) {
	if size < MinBoardSize {
		return nil, fmt.Errorf("core: board size %d is below minimum %d", size, MinBoardSize)
	}
	if rng == nil {
		return nil, fmt.Errorf("core: board needs a random source")
	}
	if gen == nil {
		gen = NewTileGenerator(DefaultTileWeights(), rng, nil)
	}
	return &Board{
		grid:    NewGrid(size),
		rng:     rng,
		tileGen: gen,
	}, nil
}

// Subscribe registers a listener for board events.
func (b *Board) Subscribe(fn Listener) func() {
	return b.events.Subscribe(fn)
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.grid.Size()
}

// Snapshot returns a copy of the grid.
func (b *Board) Snapshot() Grid {
	return b.grid.Clone()
}

// AvailableMoves returns the cached set of legal moves.
func (b *Board) AvailableMoves() MoveSet {
	return b.moves
}

// MaxTile returns the highest exponent reached since the last Clear.
func (b *Board) MaxTile() int {
	return b.maxExp
}

// MaxTileNumber returns the shown number of the highest tile.
func (b *Board) MaxTileNumber() int {
	return TileNumber(b.maxExp)
}

// Clear empties every cell and resets the max tile.
func (b *Board) Clear() {
	for _, row := range b.grid {
		for j := range row {
			row[j] = Empty
		}
	}
	b.maxExp = Empty
	b.moves = 0
	b.events.Emit(Event{Kind: EventBoardCleared})
}

// PlaceRandomTiles fills up to count random empty cells and returns the
// cells it used. Fewer tiles are placed when the board lacks space.
func (b *Board) PlaceRandomTiles(count int) []TileIndex {
	empty := b.grid.EmptyCells()
	b.rng.Shuffle(len(empty), func(i, j int) {
		empty[i], empty[j] = empty[j], empty[i]
	})

	if count < 0 {
		count = 0
	}
	if count > len(empty) {
		count = len(empty)
	}
	placed := empty[:count:count]

	for _, idx := range placed {
		v := b.tileGen.Generate()
		b.grid.set(idx, v)
		b.updateMaxTile(v)
	}

	b.moves = b.grid.availableMoves()

	if len(placed) > 0 {
		b.events.Emit(Event{
			Kind:  EventTilesPlaced,
			Cells: append([]TileIndex(nil), placed...),
		})
	}
	return placed
}

// MakeMove slides the board. Moves outside AvailableMoves are rejected
// without touching the grid or emitting anything.
func (b *Board) MakeMove(move Move) ([]TileTransition, bool) {
	if !b.moves.Has(move) {
		return nil, false
	}

	transitions := b.grid.slide(move, b.updateMaxTile)
	b.moves = b.grid.availableMoves()

	b.events.Emit(Event{
		Kind:        EventTilesMoved,
		Transitions: transitions,
	})
	return transitions, true
}

// Load replaces the grid with a copy of g, for replays and tests.
// No event is emitted.
func (b *Board) Load(g Grid) error {
	if g.Size() != b.grid.Size() {
		return fmt.Errorf("core: grid size %d does not match board size %d", g.Size(), b.grid.Size())
	}
	for i, row := range g {
		if len(row) != g.Size() {
			return fmt.Errorf("core: grid row %d has %d cells, want %d", i, len(row), g.Size())
		}
		for _, v := range row {
			if v < Empty {
				return fmt.Errorf("core: negative exponent %d in row %d", v, i)
			}
		}
	}
	b.grid = g.Clone()
	b.maxExp = b.grid.MaxExponent()
	b.moves = b.grid.availableMoves()
	return nil
}

func (b *Board) updateMaxTile(exp int) {
	if exp > b.maxExp {
		b.maxExp = exp
	}
}

// TotalScore sums the score of a transition list.
func TotalScore(transitions []TileTransition) int {
	total := 0
	for _, t := range transitions {
		total += t.Score
	}
	return total
}
