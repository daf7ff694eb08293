// Package core implements the 2048 board simulation: the grid, the slide and
// merge rules, random tile placement, the turn state machine and bots.
// It has no UI dependencies; collaborators observe it through events.
package core

import "strings"

// Move is a slide direction.
type Move int

const (
	MoveUp Move = iota
	MoveDown
	MoveLeft
	MoveRight
)

// AllMoves lists every move in enum order.
var AllMoves = [...]Move{MoveUp, MoveDown, MoveLeft, MoveRight}

// String returns the lowercase name of the move.
func (m Move) String() string {
	switch m {
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the four directions.
func (m Move) Valid() bool {
	return m >= MoveUp && m <= MoveRight
}

// ParseMove converts a name ("up", "left", ...) or a WASD key to a Move.
func ParseMove(s string) (Move, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w":
		return MoveUp, true
	case "down", "s":
		return MoveDown, true
	case "left", "a":
		return MoveLeft, true
	case "right", "d":
		return MoveRight, true
	}
	return 0, false
}

// vertical reports whether the move runs along columns.
func (m Move) vertical() bool {
	return m == MoveUp || m == MoveDown
}

// MoveSet is a small set of moves.
type MoveSet uint8

// Has reports whether m is in the set.
func (s MoveSet) Has(m Move) bool {
	if !m.Valid() {
		return false
	}
	return s&(1<<uint(m)) != 0
}

// Add returns the set with m included.
func (s MoveSet) Add(m Move) MoveSet {
	if !m.Valid() {
		return s
	}
	return s | 1<<uint(m)
}

// Len returns the number of moves in the set.
func (s MoveSet) Len() int {
	n := 0
	for _, m := range AllMoves {
		if s.Has(m) {
			n++
		}
	}
	return n
}

// Empty reports whether no move is available.
func (s MoveSet) Empty() bool {
	return s == 0
}

// Moves returns the members in enum order.
func (s MoveSet) Moves() []Move {
	moves := make([]Move, 0, 4)
	for _, m := range AllMoves {
		if s.Has(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

func (s MoveSet) String() string {
	names := make([]string, 0, 4)
	for _, m := range s.Moves() {
		names = append(names, m.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
