package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dungeon/internal/registry"
)

var spawnersCmd = &cobra.Command{
	Use:   "spawners",
	Short: "List spawner backends",
	Long:  `Shows the spawner backends the pipeline can hand layouts to.`,
	Run:   runSpawners,
}

func runSpawners(cmd *cobra.Command, _ []string) {
	list := registry.List()
	out := cmd.OutOrStdout()

	if len(list) == 0 {
		fmt.Fprintln(out, "No spawners available.")
		return
	}

	fmt.Fprintln(out, "Available spawners:")
	fmt.Fprintln(out)

	maxLen := 4 // "Name" header
	for _, s := range list {
		if len(s.Name) > maxLen {
			maxLen = len(s.Name)
		}
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxLen, "Name", "Description")
	fmt.Fprintf(out, "  %-*s  %s\n", maxLen, "----", "-----------")
	for _, s := range list {
		fmt.Fprintf(out, "  %-*s  %s\n", maxLen, s.Name, s.Description)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Use 'dungeon generate --spawner <name>' to pick one.")
}
