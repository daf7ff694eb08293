// Package web serves 2048 games over HTTP and streams their events to
// websocket spectators.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// ErrGameNotFound is returned for unknown or deleted game ids.
var ErrGameNotFound = errors.New("web: game not found")

// ErrTooManyGames is returned when the session limit is reached.
var ErrTooManyGames = errors.New("web: too many games")

// Options configures a Server.
type Options struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Config is the base game config. Requests may override the board
	// size, win tile and bot.
	Config config.T2048Config

	// Store receives finished games. Nil disables persistence.
	Store *storage.Store

	// MaxGames caps concurrent sessions. Zero means DefaultMaxGames.
	MaxGames int

	Logger *log.Logger
}

// DefaultMaxGames is the session cap used when Options.MaxGames is zero.
const DefaultMaxGames = 1024

// Server owns the game sessions and the HTTP router.
type Server struct {
	opts   Options
	logger *log.Logger
	hub    *Hub
	router *gin.Engine
	stop   context.CancelFunc

	mu    sync.RWMutex
	games map[string]*session
}

// NewServer creates a server and starts its websocket hub. Call Close to
// stop the hub.
func NewServer(opts Options) *Server {
	if opts.MaxGames <= 0 {
		opts.MaxGames = DefaultMaxGames
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "2048-web",
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		opts:   opts,
		logger: logger,
		hub:    NewHub(logger),
		stop:   cancel,
		games:  make(map[string]*session),
	}
	go s.hub.Run(ctx)

	s.router = s.newRouter()
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close stops the hub and disconnects every spectator.
func (s *Server) Close() {
	s.stop()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.opts.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.mu.Lock()
	for _, sess := range s.games {
		sess.mu.Lock()
		s.saveFinal(sess)
		sess.mu.Unlock()
	}
	s.mu.Unlock()

	s.Close()
	return srv.Shutdown(shutdownCtx)
}

// NewGameRequest holds the optional overrides for a new game.
type NewGameRequest struct {
	Size    int    `json:"size"`
	WinTile *int   `json:"win_tile"` // 0 plays endless
	Seed    int64  `json:"seed"`
	Bot     string `json:"bot"`
}

// CreateGame starts a new session and returns its id.
func (s *Server) CreateGame(req NewGameRequest) (string, error) {
	cfg := s.opts.Config
	cfg.Spawn.Weights = append([]core.TileWeight(nil), cfg.Spawn.Weights...)
	if req.Size != 0 {
		cfg.Board.Size = req.Size
	}
	if req.WinTile != nil {
		cfg.Rules.WinTile = *req.WinTile
	}
	if req.Bot != "" {
		cfg.Bot.Name = req.Bot
	}
	// the HTTP client decides when to start over
	cfg.Rules.RestartOnLoss = false
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("web: invalid game: %w", err)
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	id := uuid.NewString()
	sess, err := newSession(id, cfg, seed, s.logger)
	if err != nil {
		return "", err
	}
	sess.ctrl.Subscribe(func(ev core.Event) {
		s.hub.Broadcast(id, ev.Kind.String(), eventPayload(ev))
	})

	s.mu.Lock()
	if len(s.games) >= s.opts.MaxGames {
		s.mu.Unlock()
		return "", ErrTooManyGames
	}
	s.games[id] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.seedBest(sess)
	sess.ctrl.StartNewGame()

	s.logger.Info("game created", "id", id, "size", cfg.Board.Size, "win_tile", cfg.Rules.WinTile, "seed", seed)
	return id, nil
}

// DeleteGame ends a session and disconnects its spectators.
func (s *Server) DeleteGame(id string) error {
	s.mu.Lock()
	sess, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()
	if !ok {
		return ErrGameNotFound
	}

	sess.mu.Lock()
	s.saveFinal(sess)
	sess.mu.Unlock()

	s.hub.Drop(id)
	return nil
}

// withGame runs fn while holding the session lock and persists the game
// if fn left it ended.
func (s *Server) withGame(id string, fn func(*session) error) error {
	s.mu.RLock()
	sess, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return ErrGameNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	err := fn(sess)
	s.persist(sess)
	return err
}

// GameCount returns the number of live sessions.
func (s *Server) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

func (s *Server) seedBest(sess *session) {
	if s.opts.Store == nil {
		return
	}
	best, err := s.opts.Store.HighScore(sess.modeID())
	if err != nil {
		s.logger.Warn("could not read high score", "game", sess.modeID(), "err", err)
		return
	}
	sess.ctrl.SeedBestScore(best)
}

// persist stores the record of an ended game. A loss also files the
// score; a win waits until the player is done with it.
func (s *Server) persist(sess *session) {
	if sess.ctrl.State() != core.StateEnded {
		return
	}
	if !sess.saved {
		s.saveRecord(sess)
	}
	if sess.ctrl.Outcome() == core.OutcomeLost {
		s.saveScore(sess)
	}
}

// saveFinal files a game that is being restarted or dropped once it has
// ended or gone past a win.
func (s *Server) saveFinal(sess *session) {
	if sess.ctrl.State() != core.StateEnded && !sess.ctrl.Continued() {
		return
	}
	s.saveRecord(sess)
	s.saveScore(sess)
}

func (s *Server) saveRecord(sess *session) {
	sess.saved = true
	if s.opts.Store == nil {
		return
	}
	if _, err := s.opts.Store.SaveGameRecord(sess.record()); err != nil {
		s.logger.Warn("could not save game record", "id", sess.id, "err", err)
	}
}

func (s *Server) saveScore(sess *session) {
	if sess.scored {
		return
	}
	sess.scored = true
	if s.opts.Store == nil || sess.ctrl.Score() == 0 {
		return
	}
	if _, err := s.opts.Store.SaveScore(sess.modeID(), sess.ctrl.Score()); err != nil {
		s.logger.Warn("could not save score", "id", sess.id, "err", err)
	}
}
