package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quellen/wander/internal/config"
	"github.com/quellen/wander/internal/core"
	"github.com/quellen/wander/internal/platform/tui"
	"github.com/quellen/wander/internal/registry"
	"github.com/quellen/wander/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the engine with a quest picker menu",
	Long: `Start the engine in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a quest.
Quests with a save in slot 1 resume automatically.
After quitting a quest, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select quest
  Tab          - View save slots
  Q            - Quit

Examples:
  wander menu
  wander menu --fps 30
  wander menu --db ./saves.db`,
	Run: runMenu,
}

func init() {
	// Uses global flags from main.go (--fps, --seed, --db)
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open save storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open saves database: %v\n", err)
		store = nil
	}

	// Load engine config
	engCfg, cfgErr := config.LoadEngine("")
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load engine config: %v\n", cfgErr)
		engCfg = config.DefaultEngineConfig()
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
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

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants the saves view
		if menuResult.WantsSaves {
			goBack, svErr := tui.RunSaves(store, cfg.ScreenW, cfg.ScreenH)
			if svErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", svErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from saves view
		}

		questID := menuResult.QuestID
		if questID == "" {
			break
		}

		// Create quest instance
		quest, err := registry.Create(questID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating quest: %v\n", err)
			continue
		}

		// Fresh seed for each run unless pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		// Resume slot 1 if the menu found a save there
		resumeSlot := 0
		if menuResult.Resume {
			resumeSlot = 1
		}

		// Run the quest
		if err := tui.Run(quest, store, cfg, resumeSlot); err != nil {
			fmt.Fprintf(os.Stderr, "Error running quest: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
