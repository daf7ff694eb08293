package t2048

import "github.com/vovakirdan/tui-2048/internal/games/t2048/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateWin         GameStateType = "win"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64        `json:"tick"`
	Mode       string        `json:"mode"`   // "classic" or "endless"
	Preset     int           `json:"preset"` // 1-based, 0 = board from config
	Size       int           `json:"size"`
	WinTile    int           `json:"win_tile"`
	Score      int           `json:"score"`
	Best       int           `json:"best"`
	Moves      int           `json:"moves"`
	Grid       [][]int       `json:"grid"` // tile numbers, 0 = empty
	MaxTile    int           `json:"max_tile"`
	Phase      string        `json:"phase"` // turn controller state
	State      GameStateType `json:"state"`
	BotEnabled bool          `json:"bot_enabled"`
	Continued  bool          `json:"continued"`
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.ctrl.State() == core.StateEnded && g.ctrl.Outcome() == core.OutcomeWon:
		state = StateWin
	case g.ctrl.State() == core.StateEnded:
		state = StateGameOver
	case g.animating:
		state = StateAnimating
	}

	return Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Preset:     g.presetIndex,
		Size:       g.board.Size(),
		WinTile:    g.cfg.Rules.WinTile,
		Score:      g.ctrl.Score(),
		Best:       g.ctrl.BestScore(),
		Moves:      g.ctrl.Moves(),
		Grid:       g.board.Snapshot().Numbers(),
		MaxTile:    g.board.MaxTileNumber(),
		Phase:      g.ctrl.State().String(),
		State:      state,
		BotEnabled: g.bot.Enabled(),
		Continued:  g.ctrl.Continued(),
	}
}
