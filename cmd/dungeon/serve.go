package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dungeon SSH server",
	Long: `Start an SSH server that hosts the interactive viewer.

Each SSH connection gets its own pipeline, agents and flow field.
Generations from every client are recorded in the shared history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key from the config

Examples:
  dungeon serve                           # Listen on the configured address
  dungeon serve --ssh :2222               # Listen on port 2222
  dungeon serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	addr := flagSSHAddr
	if addr == "" {
		addr = cfg.Server.SSHHost + ":" + strconv.Itoa(cfg.Server.SSHPort)
	}
	hostKey := flagHostKey
	if hostKey == "" {
		hostKey = cfg.Server.HostKey
	}
	dbPath := ""
	if cfg.Storage.Enabled {
		dbPath = cfg.Storage.Path
	}

	serverCfg := tui.SSHServerConfig{
		Address:     addr,
		HostKeyPath: config.ExpandHome(hostKey),
		DBPath:      dbPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Viewer:      viewerOptions(80, 24),
	}

	server, err := tui.NewSSHServer(serverCfg, newLogger(os.Stderr, "dungeon-ssh"))
	if err != nil {
		return err
	}

	port := addr[strings.LastIndex(addr, ":")+1:]
	fmt.Printf("Starting dungeon SSH server on %s\n", addr)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
