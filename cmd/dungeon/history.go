package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dungeon/internal/platform/tui"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

var (
	flagLimit  int
	flagStats  bool
	flagClear  bool
	flagBrowse bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded generations",
	Long: `Display recent generation runs recorded by generate, view, serve and stream.
Every successful entry can be reproduced with its seed and parameters.

Examples:
  dungeon history
  dungeon history --seed 42
  dungeon history --stats
  dungeon history --browse     # pick a run and open it in the viewer`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of entries to show")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Show aggregate statistics")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded generations")
	historyCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse interactively")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	switch {
	case flagClear:
		if err := store.ClearGenerations(); err != nil {
			return err
		}
		fmt.Fprintln(out, "History cleared.")
		return nil

	case flagStats:
		st, err := store.Stats()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Generations: %d (%d succeeded, %d failed)\n", st.Total, st.Succeeded, st.Failed)
		if st.Total > 0 {
			fmt.Fprintf(out, "Average time: %s\n", st.AvgDuration)
			fmt.Fprintf(out, "Last run:     %s\n", st.LastRunAt.Format("2006-01-02 15:04"))
		}
		return nil

	case flagBrowse:
		return browseHistory(store)
	}

	var gens []storage.Generation
	if flagSeed != 0 {
		gens, err = store.GenerationsBySeed(flagSeed, flagLimit)
	} else {
		gens, err = store.RecentGenerations(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving history: %w", err)
	}

	if len(gens) == 0 {
		fmt.Fprintln(out, "No generations recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'dungeon generate' to create one.")
		return nil
	}

	fmt.Fprintf(out, "  %-5s  %-10s  %-7s  %-6s  %-9s  %-9s  %s\n", "ID", "Seed", "Rooms", "Radius", "Corridors", "Status", "Date")
	fmt.Fprintf(out, "  %-5s  %-10s  %-7s  %-6s  %-9s  %-9s  %s\n", "--", "----", "-----", "------", "---------", "------", "----")
	for _, g := range gens {
		fmt.Fprintf(out, "  %-5d  %-10d  %-7s  %-6d  %-9s  %-9s  %s\n",
			g.ID, g.Seed,
			fmt.Sprintf("%d/%d", g.RoomsPlaced, g.Rooms),
			g.Radius,
			fmt.Sprintf("%d+%d", g.TreeEdges, g.LoopEdges),
			g.Status,
			g.CreatedAt.Format("2006-01-02 15:04"),
		)
		if g.Error != "" {
			fmt.Fprintf(out, "         error: %s\n", g.Error)
		}
	}
	return nil
}

// browseHistory runs the history browser and opens the picked run in the
// viewer with its recorded parameters.
func browseHistory(store *storage.Store) error {
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	picked, err := tui.RunHistory(store, width, height)
	if err != nil || picked == nil {
		return err
	}

	logger, closeLog, err := viewerLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := viewerOptions(width, height)
	opts.Runtime.Seed = picked.Seed
	opts.Params.Rooms = picked.Rooms
	opts.Params.MinRoomSize = picked.MinRoomSize
	opts.Params.MaxRoomSize = picked.MaxRoomSize
	opts.Params.Radius = picked.Radius
	return tui.Run(opts, store, logger)
}
