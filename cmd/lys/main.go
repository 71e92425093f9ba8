// lys runs interactive simulations in a window, a terminal or over SSH.
//
// Usage:
//
//	lys list                   - List available simulations
//	lys run [sim] [-w N -h N]  - Run a simulation in a window
//	lys term [sim]             - Run a simulation in this terminal
//	lys menu                   - Pick a simulation interactively, then run it here
//	lys serve                  - Start SSH server streaming simulations
//	lys bench [sim]            - Time rendering without presenting
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.lys, ./configs, embedded)
//	--fps <rate>        - Frame rate cap (default from config: 60)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lys/internal/config"

	// Import simulations to register them
	_ "github.com/vovakirdan/lys/internal/sims/bounce"
	_ "github.com/vovakirdan/lys/internal/sims/life"
	_ "github.com/vovakirdan/lys/internal/sims/plasma"
	_ "github.com/vovakirdan/lys/internal/sims/snake"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagLogLevel string

	// Resolved by the root command before any subcommand runs
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lys",
	Short: "lys - interactive simulations in a window or a terminal",
	Long: `lys drives a simulation in a render loop and presents each frame
either in a graphical window or as half-block characters in a terminal.

Available commands:
  list     - Show all available simulations
  run      - Run a simulation in a window
  term     - Run a simulation in this terminal
  menu     - Interactive simulation picker
  serve    - Start SSH server for remote viewing
  bench    - Measure render latency headlessly

Examples:
  lys list
  lys run plasma -w 640 -h 480
  lys term life
  lys serve
  lys bench bounce --frames 600`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate cap (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(benchCmd)
}

// setup loads the configuration, applies flag overrides and builds the
// root logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fps") {
		if flagFPS <= 0 {
			return fmt.Errorf("%w: --fps must be positive, got %d", config.ErrInvalid, flagFPS)
		}
		loaded.MaxFPS = flagFPS
	}
	if flagLogLevel != "" {
		loaded.Log.Level = flagLogLevel
	}
	level, err := loaded.LogLevel()
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	cfg = loaded
	logger = newLogger(os.Stderr, level)
	return nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "lys",
	})
	l.SetLevel(level)
	return l
}

// exitOnError reports err on stderr and exits with status 1.
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// simArg returns the simulation named on the command line or the
// configured default.
func simArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.DefaultSim
}
