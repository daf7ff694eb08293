package config

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/games/t2048/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseT2048(defaultT2048YAML)
	if err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}
	def := DefaultT2048Config()

	if cfg.Board != def.Board || cfg.Rules != def.Rules || cfg.Bot != def.Bot || cfg.Animation != def.Animation {
		t.Errorf("embedded = %+v, hardcoded = %+v", cfg, def)
	}
	if len(cfg.Spawn.Weights) != len(def.Spawn.Weights) {
		t.Fatalf("weights = %v, want %v", cfg.Spawn.Weights, def.Spawn.Weights)
	}
	for i := range cfg.Spawn.Weights {
		if cfg.Spawn.Weights[i] != def.Spawn.Weights[i] {
			t.Errorf("weight[%d] = %v, want %v", i, cfg.Spawn.Weights[i], def.Spawn.Weights[i])
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
board:
  size: 5
rules:
  win_tile: 4096
spawn:
  weights:
    - { exponent: 1, weight: 1 }
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadT2048(path)
	if err != nil {
		t.Fatalf("LoadT2048 error: %v", err)
	}
	if cfg.Board.Size != 5 || cfg.Rules.WinTile != 4096 {
		t.Errorf("size = %d win = %d", cfg.Board.Size, cfg.Rules.WinTile)
	}
	// unset keys keep their defaults
	if cfg.Board.InitialTiles != 2 || cfg.Animation.SlideTicks != 8 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if len(cfg.Spawn.Weights) != 1 {
		t.Errorf("weights = %v, want a single entry", cfg.Spawn.Weights)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadT2048(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadT2048(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  size: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadT2048(invalid); err == nil {
		t.Error("size 1 should fail validation")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*T2048Config)
		wantErr bool
	}{
		{"defaults", func(*T2048Config) {}, false},
		{"size too small", func(c *T2048Config) { c.Board.Size = 1 }, true},
		{"size too large", func(c *T2048Config) { c.Board.Size = MaxBoardSize + 1 }, true},
		{"win tile not power of two", func(c *T2048Config) { c.Rules.WinTile = 1000 }, true},
		{"win tile two", func(c *T2048Config) { c.Rules.WinTile = 2 }, true},
		{"endless", func(c *T2048Config) { c.Rules.WinTile = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultT2048Config()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateClamps(t *testing.T) {
	cfg := DefaultT2048Config()
	cfg.Board.Size = 2
	cfg.Board.InitialTiles = 9
	cfg.Board.TilesPerTurn = -3
	cfg.Bot.MaxAttempts = 0
	cfg.Animation.SlideTicks = 0

	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Board.InitialTiles != 4 || cfg.Board.TilesPerTurn != 0 {
		t.Errorf("board = %+v", cfg.Board)
	}
	if cfg.Bot.MaxAttempts != core.DefaultBotMaxAttempts || cfg.Animation.SlideTicks != 1 {
		t.Errorf("bot = %+v animation = %+v", cfg.Bot, cfg.Animation)
	}
}

func TestApplyT2048Preset(t *testing.T) {
	cfg := DefaultT2048Config()
	ApplyT2048Preset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard: difficulty = %+v", cfg.Difficulty)
	}
	if cfg.Board.InitialTiles != 3 {
		t.Errorf("hard: initial tiles = %d, want 3", cfg.Board.InitialTiles)
	}

	ApplyT2048Preset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	if ParseDifficultyPreset("hard") != DifficultyHard {
		t.Error("hard not parsed")
	}
	if ParseDifficultyPreset("insane") != "" {
		t.Error("unknown preset should map to empty")
	}
}

func TestDifficultyWeights(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{FourBonus: 4, EightWeight: 2},
	}
	d := NewDifficultyManager(cfg)
	base := core.DefaultTileWeights()

	start := d.Weights(base, 0, 0)
	if len(start) != 2 || start[1].Weight != 1 {
		t.Errorf("level 0 weights = %v, want base", start)
	}

	full := d.Weights(base, 500, 0)
	want := []core.TileWeight{{Exponent: 1, Weight: 9}, {Exponent: 2, Weight: 5}, {Exponent: 3, Weight: 2}}
	if len(full) != len(want) {
		t.Fatalf("max level weights = %v, want %v", full, want)
	}
	for i := range want {
		if full[i] != want[i] {
			t.Errorf("weight[%d] = %v, want %v", i, full[i], want[i])
		}
	}
	if base[1].Weight != 1 {
		t.Error("Weights modified its input")
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "moves", MaxAt: 10},
	})

	if got := d.Level(0, 5); got != 0.75 {
		t.Errorf("Level(0, 5) = %v, want 0.75", got)
	}
	if got := d.Level(0, 50); got != 1.0 {
		t.Errorf("Level(0, 50) = %v, want 1.0", got)
	}

	d.SetEnabled(false)
	if d.IsEnabled() || d.Level(0, 50) != 0.5 {
		t.Error("disabled manager should stay at initial level")
	}
}

func TestDifficultyBind(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	gen := core.NewTileGenerator(core.DefaultTileWeights(), rng, nil)
	board, err := core.NewBoard(2, rng, gen)
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	ctrl := core.NewController(board, core.Rules{TilesPerTurn: 1})

	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 4},
		Scaling:     ScalingConfig{FourBonus: 4, EightWeight: 2},
	})
	unbind := d.Bind(ctrl, gen, core.DefaultTileWeights())

	ctrl.StartNewGame()
	if got := len(gen.Weights()); got != 2 {
		t.Fatalf("weights at score 0 = %v, want base", gen.Weights())
	}

	if err := board.Load(core.Grid{{1, 1}, {0, 0}}); err != nil {
		t.Fatal(err)
	}
	if !ctrl.Play(core.MoveLeft) {
		t.Fatal("merge move rejected")
	}
	if got := len(gen.Weights()); got != 3 {
		t.Errorf("weights at max level = %v, want an 8 entry", gen.Weights())
	}

	unbind()
	ctrl.StartNewGame()
	if got := len(gen.Weights()); got != 3 {
		t.Errorf("unbound manager still re-weighted: %v", gen.Weights())
	}
}
