package t2048

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/config"
	platformcore "github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeEndless Mode = "endless"
)

// botDelayTicks spaces out bot moves so they stay readable.
const botDelayTicks = 4

// Game implements the 2048 puzzle game.
type Game struct {
	mode Mode
	tick uint64

	cfg         config.T2048Config
	difficulty  *config.DifficultyManager
	presetIndex int // 1-based, 0 = board from config
	sessionID   string

	rng   *rand.Rand
	tiles *core.TileGenerator
	board *core.Board
	ctrl  *core.Controller
	bot   *core.BotDriver

	view    core.Grid // what the player has been shown so far
	botUsed bool
	botWait int

	// Animation state
	animating      bool
	animationPhase AnimationPhase
	animationTicks int
	animations     []TileAnimation
	moveTargets    map[core.TileIndex]bool

	// Screen dimensions
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// Package-level variables for CLI config
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.Default()
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// SetLogger sets the logger handed to new tile generators.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	logger = l
}

// New creates a new classic 2048 game.
func New() *Game {
	return &Game{
		mode: ModeClassic,
	}
}

// NewEndless creates a new endless 2048 game with no win tile.
func NewEndless() *Game {
	return &Game{
		mode: ModeEndless,
	}
}

func init() {
	registry.Register("2048", func() registry.Game {
		return New()
	})
	registry.Register("2048_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Reset initializes/restarts the game. The best score survives restarts.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	best := 0
	if g.ctrl != nil {
		best = g.ctrl.BestScore()
	}

	g.loadConfig()

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tiles = core.NewTileGenerator(g.cfg.Spawn.Weights, g.rng, logger)
	board, err := core.NewBoard(g.cfg.Board.Size, g.rng, g.tiles)
	if err != nil {
		// size was validated by the loader; fall back to the classic board
		logger.Error("invalid board, using defaults", "err", err)
		g.cfg = config.DefaultT2048Config()
		board, _ = core.NewBoard(g.cfg.Board.Size, g.rng, g.tiles)
	}
	g.board = board
	g.ctrl = core.NewController(board, g.cfg.CoreRules())
	g.ctrl.Subscribe(g.onEvent)
	g.difficulty.Bind(g.ctrl, g.tiles, g.cfg.Spawn.Weights)
	g.ctrl.SeedBestScore(best)

	bot, err := core.NewBot(g.cfg.Bot.Name, g.rng)
	if err != nil {
		logger.Warn("unknown bot, using greedy", "bot", g.cfg.Bot.Name)
		bot = core.NewGreedyBot()
	}
	g.bot = core.NewBotDriver(g.ctrl, bot, g.cfg.Bot.MaxAttempts)

	g.tick = 0
	g.sessionID = uuid.NewString()
	g.view = core.NewGrid(g.cfg.Board.Size)
	g.botUsed = false
	g.botWait = 0
	g.paused = false
	g.clearAnimation()

	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.checkScreenSize()

	g.ctrl.StartNewGame()
}

// loadConfig resolves the config file, the difficulty preset and the
// selected board preset.
func (g *Game) loadConfig() {
	cfg, err := config.LoadT2048(configPath)
	if err != nil {
		logger.Warn("could not load config, using defaults", "err", err)
		cfg = config.DefaultT2048Config()
	}
	if difficultyPreset != "" {
		config.ApplyT2048Preset(&cfg, difficultyPreset)
	}

	if p := GetPreset(g.presetIndex - 1); p != nil {
		cfg.Board.Size = p.Size
		cfg.Rules.WinTile = p.WinTile
	}

	if g.mode == ModeEndless {
		cfg.Rules.WinTile = 0
	}
	// A lost board stays up until the player restarts, so the platform
	// gets to see and save it.
	cfg.Rules.RestartOnLoss = false
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", "err", err)
		cfg = config.DefaultT2048Config()
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardDims(g.cfg.Board.Size)
	minW := boardW + 4
	minH := boardH + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// SelectPreset picks the board (1-based preset ID, 0 = board from the
// config file) from the next Reset on. Restarts keep the selection.
func (g *Game) SelectPreset(id int) {
	if id >= 0 && id <= PresetCount() {
		g.presetIndex = id
	}
}

// Resize updates the layout without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// SeedBestScore raises the best score, e.g. from the score database.
func (g *Game) SeedBestScore(best int) {
	if g.ctrl != nil {
		g.ctrl.SeedBestScore(best)
	}
}

// Controller exposes the turn controller for headless drivers.
func (g *Game) Controller() *core.Controller {
	return g.ctrl
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionBot) {
		g.bot.Toggle()
		g.botWait = 0
	}

	// Presentation of the last move comes first
	if g.animating {
		g.updateAnimation()
		return platformcore.StepResult{State: g.State()}
	}

	switch g.ctrl.State() {
	case core.StateEnded:
		if in.Has(platformcore.ActionContinue) {
			g.ctrl.ContinueAfterWin()
		}
	case core.StateWaitingForMove:
		if g.bot.Enabled() {
			g.stepBot()
		} else if move, ok := moveFromInput(in); ok {
			g.ctrl.RequestMove(move)
		}
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) stepBot() {
	if g.botWait > 0 {
		g.botWait--
		return
	}
	if g.bot.Step() {
		g.botUsed = true
		g.botWait = botDelayTicks
	}
}

// moveFromInput maps the first directional action to a move.
func moveFromInput(in platformcore.InputFrame) (core.Move, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.MoveUp, true
	case in.Has(platformcore.ActionDown):
		return core.MoveDown, true
	case in.Has(platformcore.ActionLeft):
		return core.MoveLeft, true
	case in.Has(platformcore.ActionRight):
		return core.MoveRight, true
	}
	return 0, false
}

// onEvent keeps the shown grid and the animations in step with the board.
func (g *Game) onEvent(ev core.Event) {
	switch ev.Kind {
	case core.EventBoardCleared:
		g.clearAnimation()
		g.view = core.NewGrid(g.board.Size())

	case core.EventTilesPlaced:
		snap := g.board.Snapshot()
		for _, idx := range ev.Cells {
			g.view[idx.Row][idx.Col] = snap.Get(idx)
		}
		g.startPopAnimation(ev.Cells)

	case core.EventTilesMoved:
		g.startSlideAnimation(ev.Transitions)
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	won := g.ctrl.State() == core.StateEnded && g.ctrl.Outcome() == core.OutcomeWon
	lost := g.ctrl.State() == core.StateEnded && g.ctrl.Outcome() == core.OutcomeLost
	return platformcore.GameState{
		Score:     g.ctrl.Score(),
		GameOver:  lost,
		Won:       won,
		Continued: g.ctrl.Continued(),
		Paused:    g.paused || g.tooSmall,
	}
}

// Record summarizes the current game for storage.
func (g *Game) Record() storage.GameRecord {
	botName := ""
	if g.botUsed {
		botName = g.cfg.Bot.Name
	}
	return storage.GameRecord{
		SessionID: g.sessionID,
		GameID:    g.ID(),
		Size:      g.board.Size(),
		Score:     g.ctrl.Score(),
		MaxTile:   g.board.MaxTileNumber(),
		Moves:     g.ctrl.Moves(),
		Won:       g.ctrl.Outcome() == core.OutcomeWon || g.ctrl.Continued(),
		Continued: g.ctrl.Continued(),
		Bot:       botName,
	}
}
