package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quellen/wander/internal/config"
	"github.com/quellen/wander/internal/core"
	"github.com/quellen/wander/internal/platform/tui"
	"github.com/quellen/wander/internal/registry"
	"github.com/quellen/wander/internal/storage"
)

var (
	flagConfig string
	flagSlot   int
)

var playCmd = &cobra.Command{
	Use:   "play <quest>",
	Short: "Play a quest",
	Long: `Start playing the specified quest.

Controls:
  W/A/S/D    - Move (arrow keys also work)
  Space      - Swing weapon
  E          - Examine / interact
  P/Esc      - Pause
  R          - Restart (when paused or completed)
  Ctrl+S     - Quick save to slot 1
  Q/Ctrl+C   - Save and quit

Examples:
  wander play hollow
  wander play hollow --slot 1
  wander play hollow --config ./my-engine.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
	playCmd.Flags().IntVar(&flagSlot, "slot", 0, "Save slot to resume from (0 = new game)")
}

func runPlay(cmd *cobra.Command, args []string) {
	questID := args[0]

	// Check if quest exists
	if !registry.Exists(questID) {
		fmt.Fprintf(os.Stderr, "Error: unknown quest %q\n", questID)
		fmt.Fprintln(os.Stderr, "Run 'wander list' to see available quests.")
		os.Exit(1)
	}

	// Load engine config
	engCfg, err := config.LoadEngine(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: engCfg.Simulation.TickRate,
		Seed:     flagSeed,
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}

	// Create quest instance
	quest, err := registry.Create(questID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating quest: %v\n", err)
		os.Exit(1)
	}

	// Open save storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open saves database: %v\n", err)
		// Continue without storage - quest still works, nothing persists
		store = nil
	}

	// Run the quest
	runErr := tui.Run(quest, store, cfg, flagSlot)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running quest: %v\n", runErr)
		os.Exit(1)
	}
}
