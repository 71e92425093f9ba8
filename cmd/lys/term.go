package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lys/internal/engine"
	"github.com/vovakirdan/lys/internal/hud"
	"github.com/vovakirdan/lys/internal/platform/terminal"
	"github.com/vovakirdan/lys/internal/registry"
)

var termCmd = &cobra.Command{
	Use:   "term [sim]",
	Short: "Run a simulation in this terminal",
	Long: `Run the simulation in the current terminal, two pixels per character.

The terminal size is measured once at startup and the simulation runs at
width = columns, height = 2 x rows. Logs go to log.file from the config
while the screen is in use, or are discarded.

Controls:
  Ctrl+C, Esc Esc  - Quit
  a-z, arrows      - Forwarded as key presses
  F1               - Toggle FPS overlay

Examples:
  lys term
  lys term life --fps 30`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTerm,
}

func runTerm(_ *cobra.Command, args []string) {
	exitOnError(runTerminal(simArg(args)))
}

// runTerminal runs id on the controlling terminal. Raw mode is restored
// before it returns.
func runTerminal(id string) error {
	rt, err := registry.Create(id)
	if err != nil {
		return err
	}

	sessionLog, closeLog, err := terminalLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	t, err := terminal.Stdio()
	if err != nil {
		return err
	}

	// ISIG is off in raw mode, so only external signals arrive here
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	return terminal.Run(ctx, rt, t, hud.New(0, 0), engine.Config{
		MaxFPS: cfg.TerminalFPS(),
		Logger: sessionLog.With("sim", id),
	})
}

// terminalLogger returns the logger used while the renderer owns the
// screen: the configured log file, or a discarding logger.
func terminalLogger() (*log.Logger, func(), error) {
	if cfg.Log.File == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f, logger.GetLevel()), func() { f.Close() }, nil
}
