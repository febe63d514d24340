package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg DungeonConfig
	if err := yaml.Unmarshal(defaultDungeonYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded default differs from DefaultConfig():\n got %+v\nwant %+v", cfg, DefaultConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dungeon.yaml")
	data := []byte("generation:\n  rooms: 20\n  radius: 40\nlogging:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Generation.Rooms != 20 || cfg.Generation.Radius != 40 {
		t.Errorf("overrides not applied: %+v", cfg.Generation)
	}
	// Keys missing from the file keep their defaults
	if cfg.Generation.MaxRoomSize != 8 {
		t.Errorf("MaxRoomSize = %d, want default 8", cfg.Generation.MaxRoomSize)
	}
	if cfg.Navigation.AgentSpeed != 0.5 {
		t.Errorf("AgentSpeed = %g, want default 0.5", cfg.Navigation.AgentSpeed)
	}
	if cfg.LogLevel().String() != "debug" {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("generation: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*DungeonConfig)
		want   string
	}{
		{"zero rooms", func(c *DungeonConfig) { c.Generation.Rooms = 0 }, "generation"},
		{"min above max", func(c *DungeonConfig) { c.Generation.MinRoomSize = 9 }, "generation"},
		{"loop chance", func(c *DungeonConfig) { c.Generation.LoopChance = 2 }, "generation"},
		{"rooms above limit", func(c *DungeonConfig) { c.Generation.MaxRooms = 4 }, "max_rooms"},
		{"cell size", func(c *DungeonConfig) { c.Navigation.CellSize = 0 }, "cell_size"},
		{"agent speed", func(c *DungeonConfig) { c.Navigation.AgentSpeed = 1.5 }, "agent_speed"},
		{"tick rate", func(c *DungeonConfig) { c.Viewer.TickRate = 0 }, "tick_rate"},
		{"storage path", func(c *DungeonConfig) { c.Storage.Path = "" }, "storage"},
		{"log level", func(c *DungeonConfig) { c.Logging.Level = "loud" }, "logging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestSizePresets(t *testing.T) {
	for _, preset := range Presets {
		t.Run(string(preset), func(t *testing.T) {
			cfg := DefaultConfig()
			ApplySizePreset(&cfg, preset)
			if err := cfg.Validate(); err != nil {
				t.Fatalf("preset config invalid: %v", err)
			}
			if _, err := dungeon.Generate(cfg.Params(7)); err != nil {
				t.Errorf("preset %s cannot generate: %v", preset, err)
			}
		})
	}
}

func TestParseSizePreset(t *testing.T) {
	p, err := ParseSizePreset(" Large ")
	if err != nil || p != SizeLarge {
		t.Errorf("ParseSizePreset(Large) = %q, %v", p, err)
	}
	if _, err := ParseSizePreset("gigantic"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestParamsAndPipeline(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.Params(99)
	if p.Seed != 99 || p.Rooms != cfg.Generation.Rooms || p.LoopChance != dungeon.DefaultLoopChance {
		t.Errorf("unexpected params: %+v", p)
	}

	pc := cfg.Pipeline()
	if pc.MaxRooms != 512 || pc.MaxRadius != 1024 || pc.LoopChance != dungeon.DefaultLoopChance {
		t.Errorf("unexpected pipeline config: %+v", pc)
	}
}

func TestExpandHome(t *testing.T) {
	if got := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome(abs) = %q", got)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.dungeon/history.db"); got != filepath.Join(home, ".dungeon", "history.db") {
		t.Errorf("ExpandHome(~) = %q", got)
	}
}
