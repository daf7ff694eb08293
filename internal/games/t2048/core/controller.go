package core

// State is a phase of the turn state machine.
type State int

const (
	StateUninitialized State = iota
	StateNewGamePreparation
	StateWaitingForMove
	StatePerformingMove
	StateTurnInProgress
	StateEnded
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateNewGamePreparation:
		return "new_game_preparation"
	case StateWaitingForMove:
		return "waiting_for_move"
	case StatePerformingMove:
		return "performing_move"
	case StateTurnInProgress:
		return "turn_in_progress"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome tells how an ended game finished.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}

// Rules are the static turn parameters of a session.
type Rules struct {
	InitialTiles  int  // tiles placed by StartNewGame
	TilesPerTurn  int  // tiles placed after every resolved turn
	WinTile       int  // shown number that wins; 0 disables the win check
	RestartOnLoss bool // start a new game right after a loss
}

// DefaultRules returns the classic 2048 rules.
func DefaultRules() Rules {
	return Rules{
		InitialTiles: 2,
		TilesPerTurn: 1,
		WinTile:      2048,
	}
}

// Controller sequences turns on a Board: wait for a move, apply it, let the
// caller present the transitions, then resolve the turn.
type Controller struct {
	board  *Board
	rules  Rules
	events Bus

	state     State
	outcome   Outcome
	continued bool // player kept going after a win

	score int
	best  int
	moves int
}

// NewController wires a controller to board. Board events are re-published
// on the controller's bus.
func NewController(board *Board, rules Rules) *Controller {
	c := &Controller{
		board: board,
		rules: rules,
	}
	board.Subscribe(c.events.Emit)
	return c
}

// Subscribe registers a listener for board and controller events.
func (c *Controller) Subscribe(fn Listener) func() {
	return c.events.Subscribe(fn)
}

// Board returns the controlled board.
func (c *Controller) Board() *Board {
	return c.board
}

// Rules returns the session rules.
func (c *Controller) Rules() Rules {
	return c.rules
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.state
}

// Outcome returns how the game ended, or OutcomeNone while it runs.
func (c *Controller) Outcome() Outcome {
	return c.outcome
}

// Continued reports whether the player chose to keep playing after a win.
func (c *Controller) Continued() bool {
	return c.continued
}

// Score returns the score of the current game.
func (c *Controller) Score() int {
	return c.score
}

// BestScore returns the best score seen by this controller.
func (c *Controller) BestScore() int {
	return c.best
}

// IsNewRecord reports whether the current score equals the best score.
func (c *Controller) IsNewRecord() bool {
	return c.score == c.best
}

// Moves returns the number of successful moves in the current game.
func (c *Controller) Moves() int {
	return c.moves
}

// Snapshot returns a copy of the grid.
func (c *Controller) Snapshot() Grid {
	return c.board.Snapshot()
}

// AvailableMoves returns the legal moves on the board.
func (c *Controller) AvailableMoves() MoveSet {
	return c.board.AvailableMoves()
}

func (c *Controller) emitScore() {
	update := &ScoreUpdate{
		Current:     c.score,
		Best:        c.best,
		IsNewRecord: c.IsNewRecord(),
	}
	c.events.Emit(Event{Kind: EventScoreChanged, Score: update})
}

// SeedBestScore raises the best score, e.g. from persisted history.
// It never lowers it.
func (c *Controller) SeedBestScore(best int) {
	if best > c.best {
		c.best = best
		c.emitScore()
	}
}

// StartNewGame abandons whatever is in progress and deals a fresh board.
func (c *Controller) StartNewGame() {
	c.setState(StateNewGamePreparation, OutcomeNone)
	c.continued = false
	c.moves = 0
	c.score = 0
	c.emitScore()

	c.board.Clear()
	c.board.PlaceRandomTiles(c.rules.InitialTiles)
	c.setState(StateWaitingForMove, OutcomeNone)
}

// RequestMove applies move when the controller is waiting for one.
// A rejected move leaves everything unchanged and reports false.
func (c *Controller) RequestMove(move Move) ([]TileTransition, bool) {
	if c.state != StateWaitingForMove {
		return nil, false
	}

	if !c.board.AvailableMoves().Has(move) {
		c.events.Emit(Event{Kind: EventMoveRejected, Move: move})
		return nil, false
	}

	c.setState(StatePerformingMove, OutcomeNone)
	transitions, _ := c.board.MakeMove(move)

	c.moves++
	c.score += TotalScore(transitions)
	if c.score > c.best {
		c.best = c.score
	}
	c.emitScore()

	c.setState(StateTurnInProgress, OutcomeNone)
	return transitions, true
}

// ResolveTurn finishes a turn once its transitions have been presented.
// Calls outside StateTurnInProgress, including stale ones that arrive after
// StartNewGame, do nothing and report false.
func (c *Controller) ResolveTurn() bool {
	if c.state != StateTurnInProgress {
		return false
	}

	if c.rules.WinTile > 0 && !c.continued && c.board.MaxTileNumber() >= c.rules.WinTile {
		c.setState(StateEnded, OutcomeWon)
		return true
	}

	c.finishTurn()
	return true
}

// ContinueAfterWin resumes a won game. Later wins are not reported again
// until the next StartNewGame.
func (c *Controller) ContinueAfterWin() bool {
	if c.state != StateEnded || c.outcome != OutcomeWon || c.continued {
		return false
	}
	c.continued = true
	c.finishTurn()
	return true
}

// Play runs RequestMove and ResolveTurn back to back, for callers without
// a presentation step.
func (c *Controller) Play(move Move) bool {
	if _, ok := c.RequestMove(move); !ok {
		return false
	}
	c.ResolveTurn()
	return true
}

// finishTurn places the per-turn tiles and decides between another move
// and a loss.
func (c *Controller) finishTurn() {
	c.board.PlaceRandomTiles(c.rules.TilesPerTurn)
	if !c.board.AvailableMoves().Empty() {
		c.setState(StateWaitingForMove, OutcomeNone)
		return
	}

	c.setState(StateEnded, OutcomeLost)
	if c.rules.RestartOnLoss {
		c.StartNewGame()
	}
}

func (c *Controller) setState(s State, o Outcome) {
	if c.state == s && c.outcome == o {
		return
	}
	c.state = s
	c.outcome = o
	c.events.Emit(Event{Kind: EventGameStateChanged, State: s, Outcome: o})
}
