package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunsim/internal/config"
	"github.com/vovakirdan/gunsim/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gunsim SSH server",
	Long: `Start an SSH server that lets users connect and watch simulations.

Each SSH connection gets its own session with a preset picker menu and
its own simulation. Runs are recorded in the server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gunsim/host_key

Examples:
  gunsim serve                           # Listen on :23235 with auto-generated key
  gunsim serve --ssh :2222               # Listen on port 2222
  gunsim serve --host-key ./my_host_key  # Use specific host key
  gunsim serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
}

func runServe(_ *cobra.Command, _ []string) {
	// Fail fast on a broken config file; sessions reload it per preset.
	if _, err := config.LoadSim(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		ConfigPath:  flagConfig,
		FPS:         flagFPS,
	}

	logger, closeLog := newLogger(false)
	defer closeLog()

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("gunsim-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting gunsim SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
