package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
)

//go:embed defaults/dungeon.yaml
var defaultDungeonYAML []byte

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() DungeonConfig {
	return DungeonConfig{
		Generation: GenerationConfig{
			Seed:        0,
			Rooms:       12,
			MinRoomSize: 3,
			MaxRoomSize: 8,
			Radius:      32,
			MaxAttempts: 0,
			LoopChance:  dungeon.DefaultLoopChance,
			MaxRooms:    512,
			MaxRadius:   1024,
		},
		Navigation: NavigationConfig{
			CellSize:   1,
			Margin:     1,
			MaxCells:   1 << 20,
			Agents:     3,
			AgentSpeed: 0.5,
		},
		Viewer: ViewerConfig{
			TickRate: 8,
			ShowFlow: false,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.dungeon/history.db",
		},
		Server: ServerConfig{
			SSHHost:  "0.0.0.0",
			SSHPort:  23234,
			HostKey:  ".ssh/dungeon_host_key",
			HTTPAddr: ":8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
