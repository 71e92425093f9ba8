package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lys/internal/config"
	"github.com/vovakirdan/lys/internal/engine"
	"github.com/vovakirdan/lys/internal/hud"
	"github.com/vovakirdan/lys/internal/platform/pixel"
	"github.com/vovakirdan/lys/internal/platform/window"
	"github.com/vovakirdan/lys/internal/registry"
)

var (
	flagWidth  int
	flagHeight int
)

var runCmd = &cobra.Command{
	Use:   "run [sim]",
	Short: "Run a simulation in a window",
	Long: `Open a resizable window and run the simulation in it.

The render latency of every frame is drawn in the top left corner.

Controls:
  Esc        - Quit
  F1         - Toggle FPS overlay
  Mouse      - Forwarded to the simulation

Examples:
  lys run
  lys run plasma
  lys run life -w 640 -h 480`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	// -h is the height; help stays available as --help
	runCmd.Flags().IntVarP(&flagWidth, "width", "w", 0, "Initial window width in pixels (default from config)")
	runCmd.Flags().IntVarP(&flagHeight, "height", "h", 0, "Initial window height in pixels (default from config)")
}

func runRun(cmd *cobra.Command, args []string) {
	width, height, err := windowSize(cmd)
	exitOnError(err)

	id := simArg(args)
	rt, err := registry.Create(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'lys list' to see available simulations.")
		os.Exit(1)
	}

	win, err := window.Open(window.Options{
		Width:    width,
		Height:   height,
		Title:    cfg.Pixel.Title,
		Font:     cfg.Pixel.Font,
		FontSize: cfg.Pixel.FontSize,
		Logger:   logger,
	})
	exitOnError(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The HUD sits below the latency label
	h := hud.New(pixel.LabelX, pixel.LabelY+2*cfg.Pixel.FontSize)
	loop := engine.New(rt, pixel.New(win), h, engine.Config{
		MaxFPS: cfg.MaxFPS,
		Logger: logger.With("sim", id),
	})
	if err := loop.Run(ctx); err != nil {
		stop()
		exitOnError(err)
	}
}

// windowSize resolves the initial geometry from flags and config.
func windowSize(cmd *cobra.Command) (int, int, error) {
	width, height := cfg.Pixel.Width, cfg.Pixel.Height
	if cmd.Flags().Changed("width") {
		if flagWidth <= 0 {
			return 0, 0, fmt.Errorf("%w: '%d' is not a valid width", config.ErrInvalid, flagWidth)
		}
		width = flagWidth
	}
	if cmd.Flags().Changed("height") {
		if flagHeight <= 0 {
			return 0, 0, fmt.Errorf("%w: '%d' is not a valid height", config.ErrInvalid, flagHeight)
		}
		height = flagHeight
	}
	return width, height, nil
}
