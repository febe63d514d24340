// Package config provides YAML-based configuration loading and size presets
// for the dungeon generator and its front-ends.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
	"github.com/vovakirdan/tui-dungeon/internal/pipeline"
)

// DungeonConfig contains all configuration for tui-dungeon.
type DungeonConfig struct {
	Generation GenerationConfig `yaml:"generation"`
	Navigation NavigationConfig `yaml:"navigation"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerationConfig defines layout generation parameters.
type GenerationConfig struct {
	Seed        uint32  `yaml:"seed"` // 0 = derive from current time
	Rooms       int     `yaml:"rooms"`
	MinRoomSize int     `yaml:"min_room_size"`
	MaxRoomSize int     `yaml:"max_room_size"`
	Radius      int     `yaml:"radius"`
	MaxAttempts int     `yaml:"max_attempts"` // 0 = rooms * 1000
	LoopChance  float64 `yaml:"loop_chance"`
	MaxRooms    int     `yaml:"max_rooms"`  // Largest room count a request may ask for
	MaxRadius   int     `yaml:"max_radius"` // Largest radius a request may ask for
}

// NavigationConfig defines flow field and agent parameters.
type NavigationConfig struct {
	CellSize   float64 `yaml:"cell_size"`
	Margin     int     `yaml:"margin"`
	MaxCells   int     `yaml:"max_cells"`
	Agents     int     `yaml:"agents"`      // Agents spawned with each new layout
	AgentSpeed float64 `yaml:"agent_speed"` // World units per tick
}

// ViewerConfig defines interactive viewer parameters.
type ViewerConfig struct {
	TickRate int  `yaml:"tick_rate"`
	ShowFlow bool `yaml:"show_flow"`
}

// StorageConfig defines generation history persistence.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ServerConfig defines the SSH and websocket listeners.
type ServerConfig struct {
	SSHHost  string `yaml:"ssh_host"`
	SSHPort  int    `yaml:"ssh_port"`
	HostKey  string `yaml:"host_key"`
	HTTPAddr string `yaml:"http_addr"`
}

// LoggingConfig defines log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Validate reports the first invalid value.
func (c DungeonConfig) Validate() error {
	g := c.Generation
	if err := c.Params(1).Validate(); err != nil {
		return fmt.Errorf("config: generation: %w", err)
	}
	if g.MaxRooms > 0 && g.Rooms > g.MaxRooms {
		return fmt.Errorf("config: generation: rooms %d exceeds max_rooms %d", g.Rooms, g.MaxRooms)
	}
	if g.MaxRadius > 0 && g.Radius > g.MaxRadius {
		return fmt.Errorf("config: generation: radius %d exceeds max_radius %d", g.Radius, g.MaxRadius)
	}

	n := c.Navigation
	if n.CellSize <= 0 {
		return fmt.Errorf("config: navigation: cell_size must be positive, got %g", n.CellSize)
	}
	if n.Margin < 0 {
		return fmt.Errorf("config: navigation: margin must not be negative, got %d", n.Margin)
	}
	if n.Agents < 0 {
		return fmt.Errorf("config: navigation: agents must not be negative, got %d", n.Agents)
	}
	if n.AgentSpeed <= 0 || n.AgentSpeed > 1 {
		return fmt.Errorf("config: navigation: agent_speed must be in (0, 1], got %g", n.AgentSpeed)
	}

	if c.Viewer.TickRate <= 0 {
		return fmt.Errorf("config: viewer: tick_rate must be positive, got %d", c.Viewer.TickRate)
	}
	if c.Storage.Enabled && c.Storage.Path == "" {
		return fmt.Errorf("config: storage: path is required when enabled")
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging: %w", err)
	}
	return nil
}

// Params returns generation parameters for the given seed.
func (c DungeonConfig) Params(seed uint32) dungeon.Params {
	g := c.Generation
	return dungeon.Params{
		Seed:        seed,
		Rooms:       g.Rooms,
		MinRoomSize: g.MinRoomSize,
		MaxRoomSize: g.MaxRoomSize,
		Radius:      g.Radius,
		MaxAttempts: g.MaxAttempts,
		LoopChance:  g.LoopChance,
	}
}

// Pipeline returns the generation pipeline configuration.
func (c DungeonConfig) Pipeline() pipeline.Config {
	g := c.Generation
	return pipeline.Config{
		LoopChance:  g.LoopChance,
		MaxAttempts: g.MaxAttempts,
		MaxRooms:    g.MaxRooms,
		MaxRadius:   g.MaxRadius,
	}
}

// LogLevel returns the configured log level, or info if it cannot be parsed.
func (c DungeonConfig) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
