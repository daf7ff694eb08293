package core

import (
	"fmt"
	"math/rand"
	"sort"
)

// DefaultBotMaxAttempts bounds how often a driver asks its bot per turn.
const DefaultBotMaxAttempts = 10

// Bot picks the next move for a position. Returning false means the bot has
// no suggestion this time; it may also suggest an illegal move, which the
// controller rejects.
type Bot interface {
	NextMove(grid Grid, moves MoveSet) (Move, bool)
}

// BotDriver feeds a bot's suggestions to a controller.
type BotDriver struct {
	ctrl        *Controller
	bot         Bot
	maxAttempts int
	enabled     bool
	onChange    func(enabled bool)
}

// NewBotDriver attaches bot to ctrl. The driver switches itself off when a
// new game starts or the game ends.
func NewBotDriver(ctrl *Controller, bot Bot, maxAttempts int) *BotDriver {
	if maxAttempts <= 0 {
		maxAttempts = DefaultBotMaxAttempts
	}
	d := &BotDriver{
		ctrl:        ctrl,
		bot:         bot,
		maxAttempts: maxAttempts,
	}
	ctrl.Subscribe(func(ev Event) {
		if ev.Kind != EventGameStateChanged {
			return
		}
		if ev.State == StateNewGamePreparation || ev.State == StateEnded {
			d.SetEnabled(false)
		}
	})
	return d
}

// OnChange registers a callback for enable/disable transitions.
func (d *BotDriver) OnChange(fn func(enabled bool)) {
	d.onChange = fn
}

// Enabled reports whether the driver is playing.
func (d *BotDriver) Enabled() bool {
	return d.enabled
}

// SetEnabled switches the driver on or off.
func (d *BotDriver) SetEnabled(enabled bool) {
	if d.enabled == enabled {
		return
	}
	d.enabled = enabled
	if d.onChange != nil {
		d.onChange(enabled)
	}
}

// Toggle flips the enabled flag and returns the new value.
func (d *BotDriver) Toggle() bool {
	d.SetEnabled(!d.enabled)
	return d.enabled
}

// Step makes one bot move if the driver is enabled and the controller is
// waiting for a move. When no legal move turns up within the attempt budget
// the driver disables itself and Step returns false.
func (d *BotDriver) Step() bool {
	if !d.enabled || d.ctrl.State() != StateWaitingForMove {
		return false
	}

	for attempt := 0; attempt < d.maxAttempts; attempt++ {
		move, ok := d.bot.NextMove(d.ctrl.Snapshot(), d.ctrl.AvailableMoves())
		if !ok {
			continue
		}
		if _, moved := d.ctrl.RequestMove(move); moved {
			return true
		}
	}

	d.SetEnabled(false)
	return false
}

// RandomBot picks uniformly among the legal moves.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot creates a random bot drawing from rng.
func NewRandomBot(rng *rand.Rand) *RandomBot {
	return &RandomBot{rng: rng}
}

// NextMove implements Bot.
func (b *RandomBot) NextMove(_ Grid, moves MoveSet) (Move, bool) {
	options := moves.Moves()
	if len(options) == 0 {
		return 0, false
	}
	return options[b.rng.Intn(len(options))], true
}

// PriorityBot plays the first legal move of a fixed preference list.
// The default order keeps big tiles in the bottom-left corner.
type PriorityBot struct {
	Order []Move
}

// NewPriorityBot creates a priority bot; an empty order uses
// Down, Left, Right, Up.
func NewPriorityBot(order ...Move) *PriorityBot {
	if len(order) == 0 {
		order = []Move{MoveDown, MoveLeft, MoveRight, MoveUp}
	}
	return &PriorityBot{Order: order}
}

// NextMove implements Bot.
func (b *PriorityBot) NextMove(_ Grid, moves MoveSet) (Move, bool) {
	for _, m := range b.Order {
		if moves.Has(m) {
			return m, true
		}
	}
	return 0, false
}

// GreedyBot looks one move ahead and picks the position with the best
// heuristic value.
type GreedyBot struct {
	EmptyWeight  int // bonus per empty cell
	CornerWeight int // bonus when the max tile sits in a corner
}

// NewGreedyBot creates a greedy bot with default weights.
func NewGreedyBot() *GreedyBot {
	return &GreedyBot{EmptyWeight: 16, CornerWeight: 64}
}

// NextMove implements Bot.
func (b *GreedyBot) NextMove(grid Grid, moves MoveSet) (Move, bool) {
	type candidate struct {
		move  Move
		value int
	}
	var candidates []candidate
	for _, m := range moves.Moves() {
		next, transitions := Simulate(grid, m)
		if len(transitions) == 0 {
			continue
		}
		candidates = append(candidates, candidate{move: m, value: b.evaluate(next, TotalScore(transitions))})
	}
	if len(candidates) == 0 {
		return 0, false
	}

	// stable so ties keep enum order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].value > candidates[j].value
	})
	return candidates[0].move, true
}

func (b *GreedyBot) evaluate(g Grid, moveScore int) int {
	value := moveScore + len(g.EmptyCells())*b.EmptyWeight

	n := g.Size()
	maxExp := g.MaxExponent()
	corners := []int{g[0][0], g[0][n-1], g[n-1][0], g[n-1][n-1]}
	for _, v := range corners {
		if v == maxExp && v != Empty {
			value += b.CornerWeight
			break
		}
	}
	return value
}

// BotNames lists the names accepted by NewBot.
func BotNames() []string {
	return []string{"greedy", "priority", "random"}
}

// NewBot builds a bot by name.
func NewBot(name string, rng *rand.Rand) (Bot, error) {
	switch name {
	case "", "greedy":
		return NewGreedyBot(), nil
	case "priority":
		return NewPriorityBot(), nil
	case "random":
		if rng == nil {
			return nil, fmt.Errorf("core: random bot needs a random source")
		}
		return NewRandomBot(rng), nil
	default:
		return nil, fmt.Errorf("core: unknown bot %q", name)
	}
}
