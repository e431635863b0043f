package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twenty48/internal/config"
	"github.com/vovakirdan/twenty48/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play remotely.

Each SSH connection gets its own session with a variant picker.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.twenty48/host_key

Examples:
  twenty48 serve                           # Listen on :23234 with auto-generated key
  twenty48 serve --ssh :2222               # Listen on port 2222
  twenty48 serve --host-key ./my_host_key  # Use specific host key
  twenty48 serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	// The config file supplies UI settings and custom variants for
	// every remote session
	appCfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	appCfg.RegisterVariants()

	cfg := tui.SSHServerConfig{
		Address:        flagSSHAddr,
		HostKeyPath:    flagHostKey,
		DBPath:         flagDBPath,
		IdleTimeout:    time.Duration(flagIdleTimeout) * time.Minute,
		SettleDelay:    time.Duration(appCfg.UI.SettleDelayMS) * time.Millisecond,
		ShowHints:      appCfg.UI.ShowHints,
		DefaultVariant: appCfg.Game.Variant,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting twenty48 SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
