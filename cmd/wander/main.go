// wander is a terminal tile-world adventure engine.
//
// Usage:
//
//	wander list              - List available quests
//	wander play <quest>      - Play a quest
//	wander menu              - Start menu to pick quests interactively
//	wander serve             - Start SSH server for remote play
//	wander saves <quest>     - Show save slots for a quest
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.wander/saves.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import quests to register them
	_ "github.com/quellen/wander/internal/quest/hollow"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wander",
	Short: "Wander - Tile-world adventures in your terminal",
	Long: `Wander is a terminal-based adventure engine that runs tile-world
quests directly in your terminal.

Available commands:
  list     - Show all available quests
  play     - Play a specific quest directly
  menu     - Interactive quest picker menu
  serve    - Start SSH server for remote play
  saves    - View save slots

Examples:
  wander list
  wander play hollow
  wander menu
  wander serve --ssh :2222
  wander saves hollow`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use engine config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.wander/saves.db", "Path to saves database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(savesCmd)
}
