package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration the game would run with, as YAML.

Configuration is looked up in order:
  --config <path>
  ~/.arcade/configs/flappy.yaml
  ./configs/flappy.yaml
  built-in defaults

Save the output to one of those paths and edit it to tune the game.

Examples:
  flappy config
  flappy config > ~/.arcade/configs/flappy.yaml
  flappy config --config ./my-flappy.yaml --fps 30`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) {
	data, err := config.Marshal(loadGameConfig(cmd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
