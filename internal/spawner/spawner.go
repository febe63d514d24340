// Package spawner holds the pipeline spawner backends. Each backend
// registers itself with the registry in init(); import the package for its
// side effects to make them available by name.
package spawner

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
	"github.com/vovakirdan/tui-dungeon/internal/pipeline"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/render"
)

func init() {
	registry.Register("log", "log every spawned room and the grid summary", func(env registry.Env) pipeline.Spawner {
		return NewLogSpawner(env.Logger)
	})
	registry.Register("ascii", "print the rasterized grid once spawning completes", func(env registry.Env) pipeline.Spawner {
		return NewASCIISpawner(env.Out)
	})
}

// LogSpawner logs each room and grid as the pipeline materialises it.
type LogSpawner struct {
	logger *log.Logger
	rooms  int
}

// NewLogSpawner creates a log spawner. A nil logger uses the default logger.
func NewLogSpawner(logger *log.Logger) *LogSpawner {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSpawner{logger: logger}
}

func (s *LogSpawner) SpawnRoom(ctx context.Context, room dungeon.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.rooms++
	s.logger.Info("room spawned", "n", s.rooms, "pos", room.Position, "size", room.Size)
	return nil
}

func (s *LogSpawner) PublishGrid(ctx context.Context, grid *dungeon.Grid, corridors []dungeon.Edge) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Info("grid published",
		"rooms", s.rooms,
		"diameter", grid.Diameter,
		"room_cells", grid.Count(dungeon.CellRoom),
		"hallway_cells", grid.Count(dungeon.CellHallway),
		"corridors", len(corridors),
	)
	s.rooms = 0
	return nil
}

// ASCIISpawner writes the rasterized grid, north up, to a writer.
type ASCIISpawner struct {
	out io.Writer
}

// NewASCIISpawner creates a spawner printing to out.
func NewASCIISpawner(out io.Writer) *ASCIISpawner {
	return &ASCIISpawner{out: out}
}

func (s *ASCIISpawner) SpawnRoom(context.Context, dungeon.Room) error { return nil }

func (s *ASCIISpawner) PublishGrid(_ context.Context, grid *dungeon.Grid, _ []dungeon.Edge) error {
	scr := render.Layout(&dungeon.Layout{Grid: grid})
	if _, err := fmt.Fprintln(s.out, scr.String()); err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	return nil
}
