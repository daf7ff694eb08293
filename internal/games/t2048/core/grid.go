package core

import (
	"strconv"
	"strings"
)

// Empty is the value of a cell without a tile.
// Any other value E is an exponent: the tile shows 2^E, and E is always >= 1.
const Empty = 0

// MinBoardSize is the smallest supported board dimension.
const MinBoardSize = 2

// TileIndex addresses a cell by row and column.
type TileIndex struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// TileTransition is one elementary slide or merge produced by a move.
type TileTransition struct {
	From  TileIndex `json:"from"`
	To    TileIndex `json:"to"`
	Score int       `json:"score"` // 2^E of the merged tile, 0 for a plain slide
}

// Merged reports whether the transition merged two tiles.
func (t TileTransition) Merged() bool {
	return t.Score > 0
}

// TileNumber returns the number shown on a tile with the given exponent.
func TileNumber(exp int) int {
	if exp <= Empty {
		return 0
	}
	return 1 << uint(exp)
}

// Grid is a square matrix of cell exponents indexed [row][col].
type Grid [][]int

// NewGrid allocates an empty size×size grid.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for i := range g {
		g[i] = make([]int, size)
	}
	return g
}

// Size returns the grid dimension.
func (g Grid) Size() int {
	return len(g)
}

// Get returns the exponent at idx.
func (g Grid) Get(idx TileIndex) int {
	return g[idx.Row][idx.Col]
}

func (g Grid) set(idx TileIndex, v int) {
	g[idx.Row][idx.Col] = v
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for i, row := range g {
		c[i] = append([]int(nil), row...)
	}
	return c
}

// Equal reports whether both grids hold the same cells.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(other[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// EmptyCells returns the empty cells in row-major order.
func (g Grid) EmptyCells() []TileIndex {
	var cells []TileIndex
	for i, row := range g {
		for j, v := range row {
			if v == Empty {
				cells = append(cells, TileIndex{Row: i, Col: j})
			}
		}
	}
	return cells
}

// MaxExponent returns the highest exponent on the grid (0 when empty).
func (g Grid) MaxExponent() int {
	maxExp := Empty
	for _, row := range g {
		for _, v := range row {
			if v > maxExp {
				maxExp = v
			}
		}
	}
	return maxExp
}

// Numbers returns the grid with exponents converted to shown numbers.
func (g Grid) Numbers() [][]int {
	out := make([][]int, len(g))
	for i, row := range g {
		out[i] = make([]int, len(row))
		for j, v := range row {
			out[i][j] = TileNumber(v)
		}
	}
	return out
}

// String renders shown numbers, one row per line, '.' for empty cells.
func (g Grid) String() string {
	var b strings.Builder
	for i, row := range g {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, v := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			if v == Empty {
				b.WriteString(".")
				continue
			}
			b.WriteString(strconv.Itoa(TileNumber(v)))
		}
	}
	return b.String()
}

// availableMoves computes the legal moves: a tile can move toward a
// neighbour that is empty or holds the same exponent.
func (g Grid) availableMoves() MoveSet {
	var moves MoveSet
	n := len(g)
	canTake := func(i, j, v int) bool {
		d := g[i][j]
		return d == Empty || d == v
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := g[i][j]
			if v == Empty {
				continue
			}
			if j-1 >= 0 && canTake(i, j-1, v) {
				moves = moves.Add(MoveLeft)
			}
			if j+1 < n && canTake(i, j+1, v) {
				moves = moves.Add(MoveRight)
			}
			if i-1 >= 0 && canTake(i-1, j, v) {
				moves = moves.Add(MoveUp)
			}
			if i+1 < n && canTake(i+1, j, v) {
				moves = moves.Add(MoveDown)
			}
		}
	}
	return moves
}

// slide applies move in place and returns the transitions in the order
// they were produced. maxExp receives every exponent created by a merge.
func (g Grid) slide(move Move, maxExp func(int)) []TileTransition {
	n := len(g)
	start, end := 0, n-1
	if move == MoveRight || move == MoveDown {
		start, end = n-1, 0
	}

	var transitions []TileTransition
	for outer := 0; outer < n; outer++ {
		transitions = g.mergeLine(outer, start, end, move.vertical(), transitions, maxExp)
	}
	return transitions
}

// mergeLine packs one row or column toward start. The cursor stays put
// after a plain slide so the tile it received can still merge once; after
// a merge it advances, which prevents chained merges.
func (g Grid) mergeLine(outer, start, end int, vertical bool, out []TileTransition, maxExp func(int)) []TileTransition {
	at := func(k int) TileIndex {
		if vertical {
			return TileIndex{Row: k, Col: outer}
		}
		return TileIndex{Row: outer, Col: k}
	}

	delta := 1
	if start > end {
		delta = -1
	}

	for i := start; i != end; i += delta {
		cur := at(i)
		curVal := g.Get(cur)
		found := false

	scan:
		for j := i + delta; j != end+delta; j += delta {
			cand := at(j)
			candVal := g.Get(cand)
			if candVal == Empty {
				continue
			}
			found = true

			score := 0
			merged := false
			switch {
			case curVal == Empty:
				curVal = candVal
				g.set(cur, curVal)
			case curVal == candVal:
				curVal++
				g.set(cur, curVal)
				score = TileNumber(curVal)
				merged = true
				if maxExp != nil {
					maxExp(curVal)
				}
			default:
				break scan
			}

			g.set(cand, Empty)
			out = append(out, TileTransition{From: cand, To: cur, Score: score})
			if merged {
				break
			}
		}

		if !found {
			// nothing left ahead of the cursor in this line
			return out
		}
	}
	return out
}

// Simulate applies move to a copy of grid and returns the result and the
// transitions. The input is not modified. Illegal moves yield an unchanged
// copy and no transitions.
func Simulate(grid Grid, move Move) (Grid, []TileTransition) {
	next := grid.Clone()
	if !move.Valid() || !grid.availableMoves().Has(move) {
		return next, nil
	}
	return next, next.slide(move, nil)
}

// AvailableMovesOf returns the legal moves for an arbitrary grid.
func AvailableMovesOf(grid Grid) MoveSet {
	return grid.availableMoves()
}
