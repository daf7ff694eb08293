package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagBotGames    int
	flagBotName     string
	flagBotSize     int
	flagBotWinTile  int
	flagBotKeepOn   bool
	flagBotMaxMoves int
	flagBotSave     bool
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Let a bot play headless games",
	Long: `Play a number of games with one of the built-in bots and print a
summary. With --seed the run is reproducible: game i uses seed+i.

Bots:
  greedy    - Looks one move ahead for score, free cells and a cornered max tile
  priority  - Tries down, left, right, up in that order
  random    - Picks a random legal move

Examples:
  t2048 bot
  t2048 bot --games 100 --bot random
  t2048 bot --size 3 --win-tile 256 --keep-going
  t2048 bot --seed 42 --save`,
	Run: runBot,
}

func init() {
	botCmd.Flags().IntVar(&flagBotGames, "games", 10, "Number of games to play")
	botCmd.Flags().StringVar(&flagBotName, "bot", "", "Bot to play with (default from config)")
	botCmd.Flags().IntVar(&flagBotSize, "size", 0, "Board size (default from config)")
	botCmd.Flags().IntVar(&flagBotWinTile, "win-tile", -1, "Win tile, 0 plays endless (default from config)")
	botCmd.Flags().BoolVar(&flagBotKeepOn, "keep-going", false, "Continue after reaching the win tile")
	botCmd.Flags().IntVar(&flagBotMaxMoves, "max-moves", 100000, "Stop a game after this many moves")
	botCmd.Flags().BoolVar(&flagBotSave, "save", false, "Record the games in the scores database")
}

// autoplayResult summarizes one headless game.
type autoplayResult struct {
	Seed    int64
	Score   int
	MaxTile int
	Moves   int
	Won     bool
	Stuck   bool // the bot stopped before the game ended
}

// autoplay runs a single game with the configured bot until it ends, the
// bot gives up or maxMoves is reached.
func autoplay(cfg config.T2048Config, seed int64, maxMoves int, keepGoing bool) (autoplayResult, error) {
	rng := rand.New(rand.NewSource(seed))
	tiles := core.NewTileGenerator(cfg.Spawn.Weights, rng, logger)
	board, err := core.NewBoard(cfg.Board.Size, rng, tiles)
	if err != nil {
		return autoplayResult{}, err
	}
	bot, err := core.NewBot(cfg.Bot.Name, rng)
	if err != nil {
		return autoplayResult{}, err
	}

	rules := cfg.CoreRules()
	rules.RestartOnLoss = false
	ctrl := core.NewController(board, rules)
	config.NewDifficultyManager(cfg.Difficulty).Bind(ctrl, tiles, cfg.Spawn.Weights)
	driver := core.NewBotDriver(ctrl, bot, cfg.Bot.MaxAttempts)

	won := false
	ctrl.StartNewGame()
	for ctrl.Moves() < maxMoves {
		if ctrl.State() == core.StateEnded {
			if ctrl.Outcome() == core.OutcomeWon {
				won = true
				if keepGoing && ctrl.ContinueAfterWin() {
					continue
				}
			}
			break
		}

		driver.SetEnabled(true)
		if !driver.Step() {
			break
		}
		ctrl.ResolveTurn()
	}

	return autoplayResult{
		Seed:    seed,
		Score:   ctrl.Score(),
		MaxTile: board.MaxTileNumber(),
		Moves:   ctrl.Moves(),
		Won:     won,
		Stuck:   ctrl.State() != core.StateEnded,
	}, nil
}

func runBot(_ *cobra.Command, _ []string) {
	cfg, err := botConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if flagBotSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	gameID := "2048"
	if cfg.Rules.WinTile == 0 {
		gameID = "2048_endless"
	}

	fmt.Printf("Bot %s, %dx%d board, %d games\n\n", cfg.Bot.Name, cfg.Board.Size, cfg.Board.Size, flagBotGames)
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "Game", "Score", "Max", "Moves", "Result")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "---", "-----", "------")

	results := make([]autoplayResult, 0, flagBotGames)
	for i := 0; i < flagBotGames; i++ {
		res, err := autoplay(cfg, baseSeed+int64(i), flagBotMaxMoves, flagBotKeepOn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		results = append(results, res)
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %s\n", i+1, res.Score, res.MaxTile, res.Moves, resultLabel(res))

		if store != nil {
			saveBotGame(store, gameID, cfg, res)
		}
	}

	printBotSummary(results)
}

// botConfig applies the bot flags on top of the loaded config.
func botConfig() (config.T2048Config, error) {
	cfg, err := loadGameConfig()
	if err != nil {
		return cfg, err
	}
	if flagBotName != "" {
		cfg.Bot.Name = flagBotName
	}
	if flagBotSize > 0 {
		cfg.Board.Size = flagBotSize
	}
	if flagBotWinTile >= 0 {
		cfg.Rules.WinTile = flagBotWinTile
	}
	if flagBotGames < 1 {
		return cfg, errors.New("--games must be at least 1")
	}
	return cfg, cfg.Validate()
}

func resultLabel(res autoplayResult) string {
	switch {
	case res.Stuck:
		return "stopped"
	case res.Won:
		return "won"
	default:
		return "lost"
	}
}

func saveBotGame(store *storage.Store, gameID string, cfg config.T2048Config, res autoplayResult) {
	rec := storage.GameRecord{
		SessionID: uuid.NewString(),
		GameID:    gameID,
		Size:      cfg.Board.Size,
		Score:     res.Score,
		MaxTile:   res.MaxTile,
		Moves:     res.Moves,
		Won:       res.Won,
		Continued: res.Won && flagBotKeepOn,
		Bot:       cfg.Bot.Name,
	}
	if _, err := store.SaveGameRecord(rec); err != nil {
		logger.Warn("could not save game record", "seed", res.Seed, "err", err)
	}
	if res.Score > 0 {
		if _, err := store.SaveScore(gameID, res.Score); err != nil {
			logger.Warn("could not save score", "seed", res.Seed, "err", err)
		}
	}
}

// botSummary aggregates a run.
type botSummary struct {
	Games    int
	Wins     int
	Best     int
	Average  float64
	MaxTiles map[int]int // max tile -> games that reached it as their highest
}

func summarize(results []autoplayResult) botSummary {
	s := botSummary{Games: len(results), MaxTiles: make(map[int]int)}
	total := 0
	for _, r := range results {
		total += r.Score
		if r.Score > s.Best {
			s.Best = r.Score
		}
		if r.Won {
			s.Wins++
		}
		s.MaxTiles[r.MaxTile]++
	}
	if s.Games > 0 {
		s.Average = float64(total) / float64(s.Games)
	}
	return s
}

func printBotSummary(results []autoplayResult) {
	s := summarize(results)

	fmt.Println()
	fmt.Printf("Best: %d  Average: %.0f  Wins: %d/%d\n", s.Best, s.Average, s.Wins, s.Games)

	tiles := make([]int, 0, len(s.MaxTiles))
	for t := range s.MaxTiles {
		tiles = append(tiles, t)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))

	fmt.Println("Highest tile reached:")
	for _, t := range tiles {
		fmt.Printf("  %-6d %d\n", t, s.MaxTiles[t])
	}
}
