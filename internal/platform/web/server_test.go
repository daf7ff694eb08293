package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testConfig spawns only 2s so board outcomes are predictable.
func testConfig() config.T2048Config {
	cfg := config.DefaultT2048Config()
	cfg.Spawn.Weights = []core.TileWeight{{Exponent: 1, Weight: 1}}
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestServer(t *testing.T, store *storage.Store) *Server {
	t.Helper()
	s := NewServer(Options{
		Config: testConfig(),
		Store:  store,
		Logger: log.New(io.Discard),
	})
	t.Cleanup(s.Close)
	return s
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

type gameResponse struct {
	Game  GameView `json:"game"`
	Error string   `json:"error"`
}

func do(t *testing.T, s *Server, method, path, body string) (int, gameResponse) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var resp gameResponse
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: bad JSON %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, resp
}

func createGame(t *testing.T, s *Server, body string) GameView {
	t.Helper()
	code, resp := do(t, s, http.MethodPost, "/api/games", body)
	if code != http.StatusCreated {
		t.Fatalf("create game: status = %d, want %d (%s)", code, http.StatusCreated, resp.Error)
	}
	return resp.Game
}

func loadGrid(t *testing.T, s *Server, id string, g core.Grid) {
	t.Helper()
	err := s.withGame(id, func(sess *session) error {
		return sess.ctrl.Board().Load(g)
	})
	if err != nil {
		t.Fatalf("load grid: %v", err)
	}
}

func countTiles(grid [][]int) int {
	n := 0
	for _, row := range grid {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

func TestCreateAndGetGame(t *testing.T) {
	s := newTestServer(t, nil)

	game := createGame(t, s, `{"size":3,"seed":7}`)
	if game.Size != 3 || len(game.Grid) != 3 {
		t.Fatalf("size = %d, grid rows = %d, want 3", game.Size, len(game.Grid))
	}
	if got := countTiles(game.Grid); got != 2 {
		t.Errorf("initial tiles = %d, want 2", got)
	}
	if game.State != "waiting_for_move" {
		t.Errorf("state = %q, want waiting_for_move", game.State)
	}

	code, resp := do(t, s, http.MethodGet, "/api/games/"+game.ID, "")
	if code != http.StatusOK {
		t.Fatalf("get game: status = %d, want %d", code, http.StatusOK)
	}
	if resp.Game.ID != game.ID {
		t.Errorf("id = %q, want %q", resp.Game.ID, game.ID)
	}
	if s.GameCount() != 1 {
		t.Errorf("GameCount() = %d, want 1", s.GameCount())
	}
}

func TestCreateGameDefaults(t *testing.T) {
	s := newTestServer(t, nil)

	game := createGame(t, s, "")
	if game.Size != 4 {
		t.Errorf("size = %d, want 4", game.Size)
	}
	if game.WinTile != 2048 {
		t.Errorf("win tile = %d, want 2048", game.WinTile)
	}
}

func TestCreateGameInvalid(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"too small", `{"size":1}`},
		{"too big", `{"size":12}`},
		{"odd win tile", `{"win_tile":100}`},
		{"unknown bot", `{"bot":"oracle"}`},
		{"not json", `size=4`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := do(t, s, http.MethodPost, "/api/games", tt.body)
			if code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", code, http.StatusBadRequest)
			}
		})
	}
	if s.GameCount() != 0 {
		t.Errorf("GameCount() = %d, want 0", s.GameCount())
	}
}

func TestTooManyGames(t *testing.T) {
	s := NewServer(Options{Config: testConfig(), MaxGames: 1, Logger: log.New(io.Discard)})
	t.Cleanup(s.Close)

	createGame(t, s, "")
	code, _ := do(t, s, http.MethodPost, "/api/games", "")
	if code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", code, http.StatusServiceUnavailable)
	}
}

func TestUnknownGame(t *testing.T) {
	s := newTestServer(t, nil)

	paths := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/games/nope", ""},
		{http.MethodPost, "/api/games/nope/moves", `{"move":"left"}`},
		{http.MethodPost, "/api/games/nope/continue", ""},
		{http.MethodPost, "/api/games/nope/restart", ""},
		{http.MethodPost, "/api/games/nope/bot", ""},
		{http.MethodDelete, "/api/games/nope", ""},
		{http.MethodGet, "/ws/games/nope", ""},
	}

	for _, p := range paths {
		code, _ := do(t, s, p.method, p.path, p.body)
		if code != http.StatusNotFound {
			t.Errorf("%s %s: status = %d, want %d", p.method, p.path, code, http.StatusNotFound)
		}
	}
}

func TestMove(t *testing.T) {
	s := newTestServer(t, nil)
	game := createGame(t, s, `{"size":2}`)
	loadGrid(t, s, game.ID, core.Grid{{1, 2}, {0, 0}})
	path := "/api/games/" + game.ID + "/moves"

	code, resp := do(t, s, http.MethodPost, path, `{"move":"left"}`)
	if code != http.StatusConflict {
		t.Fatalf("blocked move: status = %d, want %d", code, http.StatusConflict)
	}
	if resp.Game.Moves != 0 {
		t.Errorf("blocked move counted: moves = %d", resp.Game.Moves)
	}
	if resp.Game.Grid[0][0] != 2 || resp.Game.Grid[0][1] != 4 {
		t.Errorf("blocked move changed the grid: %v", resp.Game.Grid)
	}

	code, resp = do(t, s, http.MethodPost, path, `{"move":"down"}`)
	if code != http.StatusOK {
		t.Fatalf("legal move: status = %d, want %d (%s)", code, http.StatusOK, resp.Error)
	}
	if resp.Game.Moves != 1 {
		t.Errorf("moves = %d, want 1", resp.Game.Moves)
	}
	if resp.Game.Grid[1][0] != 2 || resp.Game.Grid[1][1] != 4 {
		t.Errorf("tiles did not slide down: %v", resp.Game.Grid)
	}
	if got := countTiles(resp.Game.Grid); got != 3 {
		t.Errorf("tiles after turn = %d, want 3", got)
	}
	if resp.Game.State != "waiting_for_move" {
		t.Errorf("state = %q, want waiting_for_move", resp.Game.State)
	}

	code, _ = do(t, s, http.MethodPost, path, `{"move":"sideways"}`)
	if code != http.StatusBadRequest {
		t.Errorf("unknown move: status = %d, want %d", code, http.StatusBadRequest)
	}
	code, _ = do(t, s, http.MethodPost, path, "")
	if code != http.StatusBadRequest {
		t.Errorf("empty body: status = %d, want %d", code, http.StatusBadRequest)
	}
}

func TestWinContinueAndRestart(t *testing.T) {
	store := openStore(t)
	s := newTestServer(t, store)
	game := createGame(t, s, `{"size":2,"win_tile":4}`)
	loadGrid(t, s, game.ID, core.Grid{{1, 1}, {0, 0}})
	base := "/api/games/" + game.ID

	code, resp := do(t, s, http.MethodPost, base+"/moves", `{"move":"left"}`)
	if code != http.StatusOK {
		t.Fatalf("winning move: status = %d, want %d", code, http.StatusOK)
	}
	if resp.Game.State != "ended" || resp.Game.Outcome != "won" {
		t.Fatalf("state = %s/%s, want ended/won", resp.Game.State, resp.Game.Outcome)
	}
	if resp.Game.Score != 4 {
		t.Errorf("score = %d, want 4", resp.Game.Score)
	}

	var recordID string
	if err := s.withGame(game.ID, func(sess *session) error {
		recordID = sess.recordID
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	rec, err := store.GameRecordBySession(recordID)
	if err != nil {
		t.Fatalf("GameRecordBySession() failed: %v", err)
	}
	if rec == nil || !rec.Won || rec.MaxTile != 4 {
		t.Fatalf("record = %+v, want a won game with max tile 4", rec)
	}

	code, _ = do(t, s, http.MethodPost, base+"/moves", `{"move":"right"}`)
	if code != http.StatusConflict {
		t.Errorf("move after win: status = %d, want %d", code, http.StatusConflict)
	}

	code, resp = do(t, s, http.MethodPost, base+"/continue", "")
	if code != http.StatusOK {
		t.Fatalf("continue: status = %d, want %d", code, http.StatusOK)
	}
	if resp.Game.State != "waiting_for_move" || !resp.Game.Continued {
		t.Errorf("after continue: state = %q continued = %v", resp.Game.State, resp.Game.Continued)
	}

	code, _ = do(t, s, http.MethodPost, base+"/continue", "")
	if code != http.StatusConflict {
		t.Errorf("second continue: status = %d, want %d", code, http.StatusConflict)
	}

	code, resp = do(t, s, http.MethodPost, base+"/restart", "")
	if code != http.StatusOK {
		t.Fatalf("restart: status = %d, want %d", code, http.StatusOK)
	}
	if resp.Game.Score != 0 || resp.Game.Moves != 0 || resp.Game.Continued {
		t.Errorf("restart kept progress: %+v", resp.Game)
	}
	if resp.Game.Best != 4 {
		t.Errorf("best = %d, want 4", resp.Game.Best)
	}

	best, err := store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if best != 4 {
		t.Errorf("HighScore() = %d, want 4", best)
	}
}

func TestLossSavesScore(t *testing.T) {
	store := openStore(t)
	s := newTestServer(t, store)
	game := createGame(t, s, `{"size":2}`)
	loadGrid(t, s, game.ID, core.Grid{{1, 2}, {0, 3}})

	code, resp := do(t, s, http.MethodPost, "/api/games/"+game.ID+"/moves", `{"move":"left"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if resp.Game.Outcome != "lost" {
		t.Fatalf("outcome = %q, want lost (grid %v)", resp.Game.Outcome, resp.Game.Grid)
	}
	if len(resp.Game.AvailableMoves) != 0 {
		t.Errorf("available moves = %v, want none", resp.Game.AvailableMoves)
	}

	games, err := store.RecentGames("2048", 10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 1 || games[0].Won {
		t.Fatalf("games = %+v, want one lost game", games)
	}

	// losing at score 0 files a record but no score
	best, err := store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("HighScore() = %d, want 0", best)
	}
}

func TestBotStep(t *testing.T) {
	s := newTestServer(t, nil)
	game := createGame(t, s, `{"seed":3,"bot":"greedy"}`)

	code, resp := do(t, s, http.MethodPost, "/api/games/"+game.ID+"/bot", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d (%s)", code, http.StatusOK, resp.Error)
	}
	if resp.Game.Moves != 1 || !resp.Game.BotUsed {
		t.Errorf("moves = %d bot_used = %v, want 1 and true", resp.Game.Moves, resp.Game.BotUsed)
	}
	if resp.Game.State != "waiting_for_move" {
		t.Errorf("state = %q, want waiting_for_move", resp.Game.State)
	}
}

func TestDeleteGame(t *testing.T) {
	s := newTestServer(t, nil)
	game := createGame(t, s, "")

	code, _ := do(t, s, http.MethodDelete, "/api/games/"+game.ID, "")
	if code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", code, http.StatusNoContent)
	}
	code, _ = do(t, s, http.MethodGet, "/api/games/"+game.ID, "")
	if code != http.StatusNotFound {
		t.Errorf("after delete: status = %d, want %d", code, http.StatusNotFound)
	}
}

func TestWatchStreamsEvents(t *testing.T) {
	s := newTestServer(t, nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	game := createGame(t, s, `{"size":2}`)
	loadGrid(t, s, game.ID, core.Grid{{1, 2}, {0, 0}})

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/games/" + game.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() Message {
		t.Helper()
		//nolint:errcheck // test deadline
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		return msg
	}

	if msg := read(); msg.Event != "snapshot" || msg.GameID != game.ID {
		t.Fatalf("first message = %s for %s, want snapshot for %s", msg.Event, msg.GameID, game.ID)
	}

	resp, err := http.Post(srv.URL+"/api/games/"+game.ID+"/moves", "application/json",
		bytes.NewBufferString(`{"move":"down"}`))
	if err != nil {
		t.Fatalf("post move: %v", err)
	}
	resp.Body.Close()

	seen := map[string]bool{}
	for !seen["tiles_placed"] {
		msg := read()
		seen[msg.Event] = true
		if msg.Event == "tiles_placed" && !seen["tiles_moved"] {
			t.Fatal("tiles_placed arrived before tiles_moved")
		}
	}
	if !seen["game_state_changed"] {
		t.Error("no game_state_changed event before tiles_placed")
	}
}
