package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lys/internal/engine"
	"github.com/vovakirdan/lys/internal/hud"
	"github.com/vovakirdan/lys/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lys SSH server",
	Long: `Start an SSH server that streams simulations to connected terminals.

Each SSH connection gets its own render loop sized to the client's PTY.
Connecting without a command shows the simulation picker; a command
names the simulation to run directly.

Host key handling:
  - If --host-key or ssh.host_key is set, uses that key file
  - Otherwise, auto-generates a key at ~/.lys/host_key

Examples:
  lys serve                           # Listen on ssh.address from config
  lys serve --ssh :2222               # Listen on port 2222
  lys serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh -t localhost -p 2222
  ssh -t localhost -p 2222 life`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	sc := tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: cfg.SSH.HostKey,
		IdleTimeout: cfg.SSH.IdleTimeout,
		DefaultSim:  cfg.DefaultSim,
		MaxFPS:      cfg.TerminalFPS(),
		Handler:     func() engine.Handler { return hud.New(0, 0) },
		Logger:      logger.WithPrefix("lys-ssh"),
	}
	if flagSSHAddr != "" {
		sc.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sc.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		if flagIdleTimeout <= 0 {
			exitOnError(fmt.Errorf("--idle-timeout must be positive, got %d", flagIdleTimeout))
		}
		sc.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(sc)
	exitOnError(err)

	fmt.Printf("Starting lys SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh -t <host> -p <port> [sim]")
	fmt.Println("Press Ctrl+C to stop")

	exitOnError(server.ListenAndServe())
}
