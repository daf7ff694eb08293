package core

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestBoard(t *testing.T, size int, seed int64) *Board {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	gen := NewTileGenerator(DefaultTileWeights(), rng, log.New(&bytes.Buffer{}))
	b, err := NewBoard(size, rng, gen)
	if err != nil {
		t.Fatalf("NewBoard(%d) error: %v", size, err)
	}
	return b
}

func recordEvents(b interface{ Subscribe(Listener) func() }) *[]Event {
	var events []Event
	b.Subscribe(func(ev Event) { events = append(events, ev) })
	return &events
}

func TestNewBoardValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := NewBoard(1, rng, nil); err == nil {
		t.Error("NewBoard(1) should fail")
	}
	if _, err := NewBoard(4, nil, nil); err == nil {
		t.Error("NewBoard without rng should fail")
	}

	b, err := NewBoard(4, rng, nil)
	if err != nil {
		t.Fatalf("NewBoard(4) error: %v", err)
	}
	if b.Size() != 4 || len(b.Snapshot().EmptyCells()) != 16 {
		t.Error("new board should be empty 4×4")
	}
	if !b.AvailableMoves().Empty() {
		t.Error("empty board should have no moves")
	}
}

func TestPlaceRandomTiles(t *testing.T) {
	b := newTestBoard(t, 4, 7)
	events := recordEvents(b)

	placed := b.PlaceRandomTiles(2)
	if len(placed) != 2 {
		t.Fatalf("placed %d tiles, want 2", len(placed))
	}
	if placed[0] == placed[1] {
		t.Error("tiles placed on the same cell")
	}

	grid := b.Snapshot()
	for _, idx := range placed {
		if v := grid.Get(idx); v != 1 && v != 2 {
			t.Errorf("tile at %v has exponent %d", idx, v)
		}
	}
	if len(grid.EmptyCells()) != 14 {
		t.Errorf("empty cells = %d, want 14", len(grid.EmptyCells()))
	}
	if b.AvailableMoves().Empty() {
		t.Error("board with two tiles should have moves")
	}
	if b.MaxTile() != grid.MaxExponent() {
		t.Errorf("MaxTile() = %d, want %d", b.MaxTile(), grid.MaxExponent())
	}

	if len(*events) != 1 || (*events)[0].Kind != EventTilesPlaced || len((*events)[0].Cells) != 2 {
		t.Errorf("events = %+v, want one TilesPlaced with 2 cells", *events)
	}
}

func TestPlaceRandomTilesClampsToSpace(t *testing.T) {
	b := newTestBoard(t, 2, 3)
	events := recordEvents(b)

	if got := len(b.PlaceRandomTiles(10)); got != 4 {
		t.Errorf("placed %d, want 4", got)
	}
	if got := len(b.PlaceRandomTiles(1)); got != 0 {
		t.Errorf("placed %d on a full board, want 0", got)
	}
	if len(*events) != 1 {
		t.Errorf("got %d events, want only the first TilesPlaced", len(*events))
	}
}

func TestPlaceRandomTilesDeterministic(t *testing.T) {
	a := newTestBoard(t, 4, 99)
	b := newTestBoard(t, 4, 99)

	for i := 0; i < 5; i++ {
		a.PlaceRandomTiles(2)
		b.PlaceRandomTiles(2)
	}
	if !a.Snapshot().Equal(b.Snapshot()) {
		t.Errorf("same seed gave different boards:\n%s\n\n%s", a.Snapshot(), b.Snapshot())
	}
}

func TestMakeMoveRejected(t *testing.T) {
	b := newTestBoard(t, 2, 1)
	if err := b.Load(Grid{{1, 0}, {2, 0}}); err != nil {
		t.Fatal(err)
	}
	events := recordEvents(b)
	before := b.Snapshot()

	for _, m := range []Move{MoveLeft, MoveUp, MoveDown, Move(-1)} {
		if _, ok := b.MakeMove(m); ok {
			t.Errorf("MakeMove(%s) should be rejected", m)
		}
	}

	if !b.Snapshot().Equal(before) {
		t.Error("rejected move changed the grid")
	}
	if len(*events) != 0 {
		t.Errorf("rejected move emitted %d events", len(*events))
	}
}

func TestMakeMoveMerges(t *testing.T) {
	b := newTestBoard(t, 4, 1)
	if err := b.Load(rowGrid([4]int{2, 2, 0, 0})); err != nil {
		t.Fatal(err)
	}
	events := recordEvents(b)

	transitions, ok := b.MakeMove(MoveLeft)
	if !ok {
		t.Fatal("MakeMove(left) rejected")
	}
	if TotalScore(transitions) != 8 {
		t.Errorf("score = %d, want 8", TotalScore(transitions))
	}
	if b.MaxTile() != 3 || b.MaxTileNumber() != 8 {
		t.Errorf("MaxTile() = %d, want 3", b.MaxTile())
	}
	if len(*events) != 1 || (*events)[0].Kind != EventTilesMoved {
		t.Fatalf("events = %+v, want one TilesMoved", *events)
	}
	if len((*events)[0].Transitions) != len(transitions) {
		t.Error("event transitions differ from returned ones")
	}
	if b.AvailableMoves().Has(MoveLeft) {
		t.Error("left should no longer be available")
	}
}

func TestClear(t *testing.T) {
	b := newTestBoard(t, 3, 5)
	b.PlaceRandomTiles(4)
	events := recordEvents(b)

	b.Clear()

	if len(b.Snapshot().EmptyCells()) != 9 {
		t.Error("Clear left tiles behind")
	}
	if b.MaxTile() != Empty || !b.AvailableMoves().Empty() {
		t.Error("Clear should reset max tile and moves")
	}
	if len(*events) != 1 || (*events)[0].Kind != EventBoardCleared {
		t.Errorf("events = %+v, want one BoardCleared", *events)
	}
}

func TestLoadValidation(t *testing.T) {
	b := newTestBoard(t, 2, 1)

	tests := []struct {
		name string
		grid Grid
	}{
		{"wrong size", NewGrid(3)},
		{"ragged row", Grid{{0, 0}, {0}}},
		{"negative exponent", Grid{{0, -1}, {0, 0}}},
	}
	for _, tt := range tests {
		if err := b.Load(tt.grid); err == nil {
			t.Errorf("%s: Load should fail", tt.name)
		}
	}

	src := Grid{{1, 0}, {0, 0}}
	if err := b.Load(src); err != nil {
		t.Fatal(err)
	}
	src[0][0] = 5
	if b.Snapshot()[0][0] != 1 {
		t.Error("Load should copy the grid")
	}
}
