package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/platform/tui"
)

var flagLogFile string

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Explore layouts interactively",
	Long: `Open the interactive viewer. Agents spawn in the rooms and follow the
flow field toward the target (X), which you steer around the map.

Controls:
  Arrows/WASD - Move target
  G           - Generate the next seed
  F           - Toggle flow arrows
  N           - Spawn another agent
  P/Space     - Pause agents
  ?           - Toggle full help
  Q/Ctrl+C    - Quit

Examples:
  dungeon view
  dungeon view --seed 42 --size large
  dungeon view --log-file /tmp/dungeon.log --log-level debug`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the viewer owns the terminal)")
}

func runView(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := viewerLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store := openHistory(logger)
	if store != nil {
		defer store.Close()
	}

	opts := viewerOptions(width, height)
	opts.Runtime.Seed = seed()
	return tui.Run(opts, saverOf(store), logger)
}

// viewerLogger returns a logger that stays off the terminal.
func viewerLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(config.ExpandHome(flagLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, "view"), func() { f.Close() }, nil
}

// viewerOptions builds viewer options from the loaded config.
func viewerOptions(width, height int) tui.Options {
	n := cfg.Navigation
	return tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Viewer.TickRate,
			Seed:     cfg.Generation.Seed,
		},
		Params:     cfg.Params(cfg.Generation.Seed),
		Pipeline:   cfg.Pipeline(),
		CellSize:   n.CellSize,
		Margin:     n.Margin,
		MaxCells:   n.MaxCells,
		Agents:     n.Agents,
		AgentSpeed: n.AgentSpeed,
		ShowFlow:   cfg.Viewer.ShowFlow,
	}
}
