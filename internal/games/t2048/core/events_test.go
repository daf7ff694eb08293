package core

import (
	"reflect"
	"testing"
)

func TestBusOrderAndUnsubscribe(t *testing.T) {
	var bus Bus
	var got []string

	bus.Subscribe(func(Event) { got = append(got, "a") })
	unsubB := bus.Subscribe(func(Event) { got = append(got, "b") })
	bus.Subscribe(func(Event) { got = append(got, "c") })

	bus.Emit(Event{Kind: EventBoardCleared})
	unsubB()
	unsubB()
	bus.Emit(Event{Kind: EventBoardCleared})

	want := []string{"a", "b", "c", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestBusUnsubscribeDuringEmit(t *testing.T) {
	var bus Bus
	calls := 0

	var unsub func()
	unsub = bus.Subscribe(func(Event) {
		calls++
		unsub()
	})
	bus.Subscribe(func(Event) { calls++ })

	bus.Emit(Event{})
	bus.Emit(Event{})

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestEventKindString(t *testing.T) {
	tests := map[EventKind]string{
		EventBoardCleared:     "board_cleared",
		EventTilesPlaced:      "tiles_placed",
		EventTilesMoved:       "tiles_moved",
		EventGameStateChanged: "game_state_changed",
		EventScoreChanged:     "score_changed",
		EventMoveRejected:     "move_rejected",
		EventKind(99):         "unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("EventKind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}
