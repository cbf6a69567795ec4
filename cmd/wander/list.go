package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quellen/wander/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available quests",
	Long:  `Shows a list of all quests registered in the engine.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	quests := registry.List()

	if len(quests) == 0 {
		fmt.Println("No quests available.")
		return
	}

	fmt.Println("Available quests:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, q := range quests {
		if len(q.ID) > maxIDLen {
			maxIDLen = len(q.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print quests
	for _, q := range quests {
		fmt.Printf("  %-*s  %s\n", maxIDLen, q.ID, q.Title)
	}

	fmt.Println()
	fmt.Println("Run 'wander play <id>' to start a quest.")
}
