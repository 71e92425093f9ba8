package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lys/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available simulations",
	Long:  `Shows a list of all simulations registered in lys.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	sims := registry.List()

	if len(sims) == 0 {
		fmt.Println("No simulations available.")
		return
	}

	fmt.Println("Available simulations:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range sims {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range sims {
		marker := ""
		if s.ID == cfg.DefaultSim {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxIDLen, s.ID, s.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'lys run <id>' for a window or 'lys term <id>' for this terminal.")
}
