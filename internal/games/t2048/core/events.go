package core

// EventKind identifies a change reported by the board or the controller.
type EventKind int

const (
	EventBoardCleared EventKind = iota
	EventTilesPlaced
	EventTilesMoved
	EventGameStateChanged
	EventScoreChanged
	EventMoveRejected
)

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventBoardCleared:
		return "board_cleared"
	case EventTilesPlaced:
		return "tiles_placed"
	case EventTilesMoved:
		return "tiles_moved"
	case EventGameStateChanged:
		return "game_state_changed"
	case EventScoreChanged:
		return "score_changed"
	case EventMoveRejected:
		return "move_rejected"
	default:
		return "unknown"
	}
}

// ScoreUpdate carries the score counters after a change.
type ScoreUpdate struct {
	Current     int  `json:"current"`
	Best        int  `json:"best"`
	IsNewRecord bool `json:"is_new_record"`
}

// Event is a single change notification. Only the fields relevant to Kind
// are set.
type Event struct {
	Kind        EventKind        `json:"-"`
	Cells       []TileIndex      `json:"cells,omitempty"`       // TilesPlaced
	Transitions []TileTransition `json:"transitions,omitempty"` // TilesMoved
	State       State            `json:"-"`                     // GameStateChanged
	Outcome     Outcome          `json:"-"`                     // GameStateChanged
	Score       *ScoreUpdate     `json:"score,omitempty"`       // ScoreChanged
	Move        Move             `json:"-"`                     // MoveRejected
}

// Listener receives events synchronously, in emission order.
type Listener func(Event)

// Bus fans events out to subscribers. It is not safe for concurrent use.
type Bus struct {
	listeners map[int]Listener
	order     []int
	nextID    int
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Listener) func() {
	if b.listeners == nil {
		b.listeners = make(map[int]Listener)
	}
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.order = append(b.order, id)

	return func() {
		if _, ok := b.listeners[id]; !ok {
			return
		}
		delete(b.listeners, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers ev to every subscriber in subscription order.
func (b *Bus) Emit(ev Event) {
	// copy so listeners may unsubscribe while being notified
	ids := append([]int(nil), b.order...)
	for _, id := range ids {
		if fn, ok := b.listeners[id]; ok {
			fn(ev)
		}
	}
}
