package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/web"
)

var (
	flagWebAddr  string
	flagMaxGames int
	flagWebDebug bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the 2048 HTTP server",
	Long: `Start an HTTP server that plays 2048 games over a JSON API and streams
every board event to websocket spectators.

Endpoints:
  POST   /api/games               - New game, body {"size":4,"win_tile":2048,"seed":1,"bot":"greedy"}
  GET    /api/games/:id           - Game snapshot
  DELETE /api/games/:id           - Drop a game
  POST   /api/games/:id/moves     - Play a turn, body {"move":"left"}
  POST   /api/games/:id/continue  - Keep going after a win
  POST   /api/games/:id/restart   - Start over
  POST   /api/games/:id/bot       - Let the bot play one turn
  GET    /ws/games/:id            - Websocket event stream

Examples:
  t2048 web
  t2048 web --addr :9090 --db ./scores.db
  t2048 web --difficulty hard`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP server address (host:port)")
	webCmd.Flags().IntVar(&flagMaxGames, "max-games", web.DefaultMaxGames, "Maximum number of live games")
	webCmd.Flags().BoolVar(&flagWebDebug, "debug", false, "Log every request")
}

func runWeb(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	webLogger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "2048-web",
	})
	if flagWebDebug {
		webLogger.SetLevel(log.DebugLevel)
	}
	t2048.SetLogger(webLogger)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server := web.NewServer(web.Options{
		Address:  flagWebAddr,
		Config:   cfg,
		Store:    store,
		MaxGames: flagMaxGames,
		Logger:   webLogger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting 2048 web server on %s\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
