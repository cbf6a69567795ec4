package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quellen/wander/internal/registry"
	"github.com/quellen/wander/internal/storage"
)

var flagDeleteSlot int

var savesCmd = &cobra.Command{
	Use:   "saves <quest>",
	Short: "Show save slots for a quest",
	Long: `Display the save slots recorded for the specified quest.

Examples:
  wander saves hollow
  wander saves hollow --delete 2`,
	Args: cobra.ExactArgs(1),
	Run:  runSaves,
}

func init() {
	savesCmd.Flags().IntVar(&flagDeleteSlot, "delete", 0, "Delete the given save slot instead of listing")
}

func runSaves(cmd *cobra.Command, args []string) {
	questID := args[0]

	// Check if quest exists
	if !registry.Exists(questID) {
		fmt.Fprintf(os.Stderr, "Error: unknown quest %q\n", questID)
		fmt.Fprintln(os.Stderr, "Run 'wander list' to see available quests.")
		os.Exit(1)
	}

	// Get quest title
	quest, err := registry.Create(questID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating quest: %v\n", err)
		os.Exit(1)
	}
	title := quest.Title()

	// Open save storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening saves database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagDeleteSlot > 0 {
		if err := store.DeleteSave(questID, flagDeleteSlot); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting save: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted slot %d for %s.\n", flagDeleteSlot, title)
		return
	}

	// Get save entries
	saves, err := store.ListSaves(questID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving saves: %v\n", err)
		os.Exit(1)
	}

	// Display saves
	fmt.Printf("Saves - %s\n", title)
	fmt.Println()

	if len(saves) == 0 {
		fmt.Println("No saves recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'wander play %s' and press Ctrl+S to save.\n", questID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-10s  %-8s  %s\n", "Slot", "Map", "Position", "Played", "Updated")
	fmt.Printf("  %-4s  %-12s  %-10s  %-8s  %s\n", "----", "---", "--------", "------", "-------")

	// Print saves
	for _, entry := range saves {
		pos := fmt.Sprintf("%d,%d", entry.Progress.PlayerTile[0], entry.Progress.PlayerTile[1])
		played := (time.Duration(entry.Progress.PlayTicks) * time.Second / 60).Truncate(time.Second)
		dateStr := entry.UpdatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-10s  %-8s  %s\n", entry.Slot, entry.Progress.MapID, pos, played, dateStr)
	}
}
