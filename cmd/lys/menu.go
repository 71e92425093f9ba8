package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lys/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a simulation interactively",
	Long: `Opens an interactive menu listing all simulations with a live
preview of the highlighted one. The chosen simulation then runs in this
terminal as with 'lys term'.

Controls:
  Up/Down, j/k  - Navigate
  Enter         - Run
  p             - Toggle preview
  q, Esc        - Quit`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	result, err := tui.RunMenu(cfg.DefaultSim)
	exitOnError(err)

	if result.Quit {
		return
	}
	exitOnError(runTerminal(result.SimID))
}
