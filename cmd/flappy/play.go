package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSound   bool
	flagVolume  float64
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Space/Up/Enter/Click - Flap (also starts and restarts a round)
  P                    - Pause
  Tab                  - Scoreboard
  Ctrl+S               - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C             - Quit

The terminal needs at least 19 rows for the pipe gap to fit.

Examples:
  flappy play
  flappy play --sound --volume 0.5
  flappy play --seed 42
  flappy play --config ./my-flappy.yaml
  flappy play --log-file ~/.arcade/flappy.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 1.0, "Sound volume (0-1)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (logs are discarded otherwise)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	game := loadGameConfig(cmd)

	// The alternate screen owns the terminal, so logs only go to a file
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := openLogFile(flagLogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			defer f.Close()
			logOut = f
		}
	}
	logger := newLogger(logOut, "flappy")

	rt := core.DefaultConfig()
	rt.TickRate = game.Loop.FPS
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the high score lives in memory
		store = nil
	}

	var sounds *audio.SoundManager
	if flagSound {
		sounds = audio.NewSoundManager()
		sounds.SetVolume(flagVolume)
		if err := sounds.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
			sounds = nil
		}
	}

	runErr := tui.Run(tui.Options{
		Game:    game,
		Runtime: rt,
		Store:   store,
		Sounds:  sounds,
		Logger:  logger,
	})

	if sounds != nil {
		sounds.Cleanup()
	}
	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
