package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
	"github.com/vovakirdan/tui-dungeon/internal/flowfield"
	"github.com/vovakirdan/tui-dungeon/internal/population"
	"github.com/vovakirdan/tui-dungeon/internal/render"
)

// roomsPopulation names the population of agents standing at room centres.
const roomsPopulation = "rooms"

var (
	flagTo    string
	flagWhole bool
	flagAll   bool
)

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Print the flow field toward a destination",
	Long: `Generate a layout, place one agent at every room centre and compute the
flow field that leads them to the destination. Arrows show the step taken
from each cell.

By default the region is the bounding box of the agents and destination,
grown by the configured margin. --whole covers the entire grid.

Examples:
  dungeon flow --seed 7
  dungeon flow --seed 7 --to -3,10
  dungeon flow --size small --whole --all`,
	RunE: runFlow,
}

func init() {
	flowCmd.Flags().StringVar(&flagTo, "to", "", "Destination as x,y in world units (default: first room centre)")
	flowCmd.Flags().BoolVar(&flagWhole, "whole", false, "Compute the field over the whole grid")
	flowCmd.Flags().BoolVar(&flagAll, "all", false, "Draw arrows on empty cells too")
}

func runFlow(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "flow")

	layout, err := dungeon.Generate(cfg.Params(seed()))
	if err != nil {
		return err
	}

	populations := population.NewRegistry()
	if err := populations.Register(roomsPopulation, population.SourceFunc(func() []core.Vec2 {
		return dungeon.Centers(layout.Rooms)
	})); err != nil {
		return err
	}
	src, err := populations.Get(roomsPopulation)
	if err != nil {
		return err
	}

	field := flowfield.New(
		flowfield.WithCellSize(cfg.Navigation.CellSize),
		flowfield.WithMaxCells(cfg.Navigation.MaxCells),
	)
	nav := flowfield.NewNavigator(roomsPopulation, src, field, nil, logger)
	nav.SetMargin(cfg.Navigation.Margin)

	target := layout.Rooms[0].Center()
	if flagTo != "" {
		target, err = parseVec(flagTo)
		if err != nil {
			return err
		}
	}

	req := nav.Region(target)
	if flagWhole {
		r := float64(layout.Grid.Radius)
		req.Bounds = flowfield.NewBounds(
			field.CellOf(core.V(-r, -r)),
			field.CellOf(core.V(r-1, r-1)),
		)
	}
	if _, err := nav.Apply(req); err != nil {
		return err
	}
	snap := field.Snapshot()

	scr := render.LayoutWithOverlay(layout, render.Overlay{
		Flow:      snap,
		FlowCells: flagAll,
		Target:    &target,
		CellSize:  field.CellSize(),
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, scr.String())
	fmt.Fprintf(out, "destination %v, region %v (%d cells)\n", snap.Destination, snap.Bounds, snap.Bounds.Area())
	for i, c := range dungeon.Centers(layout.Rooms) {
		d, ok := snap.Distance(field.CellOf(c))
		if !ok {
			fmt.Fprintf(out, "  room %2d at %v: outside region\n", i, c)
			continue
		}
		fmt.Fprintf(out, "  room %2d at %v: %d steps\n", i, c, d)
	}
	return nil
}

// parseVec parses "x,y".
func parseVec(s string) (core.Vec2, error) {
	var v core.Vec2
	if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "%g,%g", &v.X, &v.Y); err != nil {
		return core.Vec2{}, fmt.Errorf("invalid position %q (want x,y): %w", s, err)
	}
	return v, nil
}
