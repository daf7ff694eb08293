package web

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// session is one game played over HTTP. The core is single-threaded, so
// every access goes through mu.
type session struct {
	mu sync.Mutex

	id       string
	recordID string // changes on restart so each game gets its own row
	cfg      config.T2048Config
	tiles    *core.TileGenerator
	ctrl     *core.Controller
	driver   *core.BotDriver
	botUsed  bool
	saved    bool // record of the current game is stored
	scored   bool // final score of the current game is stored
}

func newSession(id string, cfg config.T2048Config, seed int64, logger *log.Logger) (*session, error) {
	rng := rand.New(rand.NewSource(seed))
	tiles := core.NewTileGenerator(cfg.Spawn.Weights, rng, logger)

	board, err := core.NewBoard(cfg.Board.Size, rng, tiles)
	if err != nil {
		return nil, fmt.Errorf("web: new board: %w", err)
	}
	bot, err := core.NewBot(cfg.Bot.Name, rng)
	if err != nil {
		return nil, fmt.Errorf("web: new bot: %w", err)
	}

	ctrl := core.NewController(board, cfg.CoreRules())
	s := &session{
		id:       id,
		recordID: uuid.NewString(),
		cfg:      cfg,
		tiles:    tiles,
		ctrl:     ctrl,
		driver:   core.NewBotDriver(ctrl, bot, cfg.Bot.MaxAttempts),
	}

	config.NewDifficultyManager(cfg.Difficulty).Bind(ctrl, tiles, cfg.Spawn.Weights)
	return s, nil
}

// modeID is the scoreboard the session's games are filed under.
func (s *session) modeID() string {
	if s.cfg.Rules.WinTile == 0 {
		return "2048_endless"
	}
	return "2048"
}

// restart begins a new game in the same session.
func (s *session) restart() {
	s.recordID = uuid.NewString()
	s.botUsed = false
	s.saved = false
	s.scored = false
	s.tiles.SetWeights(s.cfg.Spawn.Weights)
	s.ctrl.StartNewGame()
}

// botStep lets the bot make a single full turn.
func (s *session) botStep() bool {
	s.driver.SetEnabled(true)
	defer s.driver.SetEnabled(false)

	if !s.driver.Step() {
		return false
	}
	s.botUsed = true
	s.ctrl.ResolveTurn()
	return true
}

func (s *session) record() storage.GameRecord {
	botName := ""
	if s.botUsed {
		botName = s.cfg.Bot.Name
	}
	return storage.GameRecord{
		SessionID: s.recordID,
		GameID:    s.modeID(),
		Size:      s.ctrl.Board().Size(),
		Score:     s.ctrl.Score(),
		MaxTile:   s.ctrl.Board().MaxTileNumber(),
		Moves:     s.ctrl.Moves(),
		Won:       s.ctrl.Outcome() == core.OutcomeWon || s.ctrl.Continued(),
		Continued: s.ctrl.Continued(),
		Bot:       botName,
	}
}

// GameView is the JSON form of a session.
type GameView struct {
	ID             string   `json:"id"`
	Size           int      `json:"size"`
	WinTile        int      `json:"win_tile"`
	Grid           [][]int  `json:"grid"`
	Score          int      `json:"score"`
	Best           int      `json:"best"`
	IsNewRecord    bool     `json:"is_new_record"`
	Moves          int      `json:"moves"`
	MaxTile        int      `json:"max_tile"`
	State          string   `json:"state"`
	Outcome        string   `json:"outcome"`
	Continued      bool     `json:"continued"`
	AvailableMoves []string `json:"available_moves"`
	Bot            string   `json:"bot"`
	BotUsed        bool     `json:"bot_used"`
}

func (s *session) view() GameView {
	available := s.ctrl.AvailableMoves().Moves()
	names := make([]string, 0, len(available))
	for _, m := range available {
		names = append(names, m.String())
	}

	return GameView{
		ID:             s.id,
		Size:           s.ctrl.Board().Size(),
		WinTile:        s.cfg.Rules.WinTile,
		Grid:           s.ctrl.Snapshot().Numbers(),
		Score:          s.ctrl.Score(),
		Best:           s.ctrl.BestScore(),
		IsNewRecord:    s.ctrl.IsNewRecord(),
		Moves:          s.ctrl.Moves(),
		MaxTile:        s.ctrl.Board().MaxTileNumber(),
		State:          s.ctrl.State().String(),
		Outcome:        s.ctrl.Outcome().String(),
		Continued:      s.ctrl.Continued(),
		AvailableMoves: names,
		Bot:            s.cfg.Bot.Name,
		BotUsed:        s.botUsed,
	}
}

// EventPayload is the JSON form of a core event.
type EventPayload struct {
	Cells       []core.TileIndex      `json:"cells,omitempty"`
	Transitions []core.TileTransition `json:"transitions,omitempty"`
	State       string                `json:"state,omitempty"`
	Outcome     string                `json:"outcome,omitempty"`
	Score       *core.ScoreUpdate     `json:"score,omitempty"`
	Move        string                `json:"move,omitempty"`
}

func eventPayload(ev core.Event) EventPayload {
	p := EventPayload{
		Cells:       ev.Cells,
		Transitions: ev.Transitions,
		Score:       ev.Score,
	}
	switch ev.Kind {
	case core.EventGameStateChanged:
		p.State = ev.State.String()
		if ev.Outcome != core.OutcomeNone {
			p.Outcome = ev.Outcome.String()
		}
	case core.EventMoveRejected:
		p.Move = ev.Move.String()
	}
	return p
}
