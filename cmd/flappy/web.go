package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/web"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser version",
	Long: `Start an HTTP server with a canvas client. Every browser tab plays its
own game; the simulation runs on the server and streams state over a websocket.

Click, tap or press Space to flap. Switching away from the tab pauses the game.

Examples:
  flappy web                  # Listen on :8080
  flappy web --addr :3000
  flappy web --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP server address (host:port)")
}

func runWeb(cmd *cobra.Command, _ []string) {
	game := loadGameConfig(cmd)
	logger := newLogger(os.Stderr, "flappy-web")

	opts := web.Options{
		Game:   game,
		Seed:   flagSeed,
		Logger: logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, high score kept in memory", "error", err)
		store = nil
	} else {
		opts.HighScores = store
		opts.Rounds = store
	}

	server, err := web.NewServer(opts)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	fmt.Printf("Starting flappy web server on %s\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")

	runErr := server.ListenAndServe(ctx, flagWebAddr)
	stop()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", runErr)
		os.Exit(1)
	}
}
