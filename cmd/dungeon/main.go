// dungeon generates procedural dungeon layouts and steers agents through
// them with flow fields.
//
// Usage:
//
//	dungeon generate          - Generate a layout and print it
//	dungeon flow              - Generate a layout and print its flow field
//	dungeon view              - Explore layouts interactively
//	dungeon serve             - Start SSH server hosting the viewer
//	dungeon stream            - Stream pipeline events over websocket
//	dungeon history           - Show recorded generations
//	dungeon spawners          - List spawner backends
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--log-level <level> - debug, info, warn, error
//	--seed <value>      - Layout seed (0 = from config or time)
//	--size <preset>     - small, medium, large, huge
//	--db <path>         - History database path
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/pipeline"
	"github.com/vovakirdan/tui-dungeon/internal/storage"

	// Import spawner backends to register them
	_ "github.com/vovakirdan/tui-dungeon/internal/spawner"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagSeed     uint32
	flagSize     string
	flagDBPath   string
	flagNoSave   bool

	// Generation overrides
	flagRooms   int
	flagMinSize int
	flagMaxSize int
	flagRadius  int

	// cfg is loaded once before any command runs.
	cfg config.DungeonConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dungeon",
	Short: "Procedural dungeon layouts with flow-field navigation",
	Long: `dungeon places rooms, triangulates their centres, keeps a minimum spanning
tree of corridors plus a few loops, and rasterizes the result onto a grid.
Agents navigate the grid with breadth-first flow fields.

Available commands:
  generate - Generate a layout and print it
  flow     - Print the flow field toward a destination
  view     - Interactive viewer with pursuing agents
  serve    - Host the viewer over SSH
  stream   - Stream generation events over websocket
  history  - Show recorded generations
  spawners - List spawner backends

Examples:
  dungeon generate --seed 42
  dungeon generate --size large --spawner log
  dungeon flow --seed 7 --to 3,4
  dungeon view --size small
  dungeon stream --addr :8080
  dungeon history --seed 42`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "Layout seed (0 = config seed or time)")
	rootCmd.PersistentFlags().StringVar(&flagSize, "size", "", "Size preset: small, medium, large, huge")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoSave, "no-history", false, "Do not record generations")

	rootCmd.PersistentFlags().IntVar(&flagRooms, "rooms", 0, "Number of rooms (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&flagMinSize, "min-size", 0, "Minimum room side (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&flagMaxSize, "max-size", 0, "Maximum room side (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&flagRadius, "radius", 0, "Placement radius (0 = from config)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(flowCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(spawnersCmd)
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagSize != "" {
		preset, err := config.ParseSizePreset(flagSize)
		if err != nil {
			return err
		}
		config.ApplySizePreset(&loaded, preset)
	}

	g := &loaded.Generation
	if flagSeed != 0 {
		g.Seed = flagSeed
	}
	if flagRooms > 0 {
		g.Rooms = flagRooms
	}
	if flagMinSize > 0 {
		g.MinRoomSize = flagMinSize
	}
	if flagMaxSize > 0 {
		g.MaxRoomSize = flagMaxSize
	}
	if flagRadius > 0 {
		g.Radius = flagRadius
	}
	if flagDBPath != "" {
		loaded.Storage.Path = flagDBPath
	}
	if flagNoSave {
		loaded.Storage.Enabled = false
	}
	if flagLogLevel != "" {
		loaded.Logging.Level = flagLogLevel
	}

	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// newLogger creates a logger at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
		Level:           cfg.LogLevel(),
	})
}

// seed returns the configured seed, or one derived from the clock.
func seed() uint32 {
	if cfg.Generation.Seed != 0 {
		return cfg.Generation.Seed
	}
	return uint32(time.Now().UnixNano())
}

// openHistory opens the history store when storage is enabled.
// Failures are logged and history is skipped.
func openHistory(logger *log.Logger) *storage.Store {
	if !cfg.Storage.Enabled {
		return nil
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open history database", "path", cfg.Storage.Path, "err", err)
		return nil
	}
	return store
}

// saverOf converts a possibly nil store into a result saver.
func saverOf(store *storage.Store) pipeline.ResultSaver {
	if store == nil {
		return nil
	}
	return store
}
