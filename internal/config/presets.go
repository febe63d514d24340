package config

import (
	"fmt"
	"strings"
)

// SizePreset represents a named dungeon size.
type SizePreset string

const (
	SizeSmall  SizePreset = "small"
	SizeMedium SizePreset = "medium"
	SizeLarge  SizePreset = "large"
	SizeHuge   SizePreset = "huge"
)

// Presets lists every size preset, smallest first.
var Presets = []SizePreset{SizeSmall, SizeMedium, SizeLarge, SizeHuge}

// ParseSizePreset converts a name to a preset (case-insensitive).
func ParseSizePreset(name string) (SizePreset, error) {
	p := SizePreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown size preset %q (want small, medium, large or huge)", name)
}

// ApplySizePreset overwrites room count, room sizes and radius.
func ApplySizePreset(cfg *DungeonConfig, preset SizePreset) {
	g := &cfg.Generation
	switch preset {
	case SizeSmall:
		g.Rooms, g.MinRoomSize, g.MaxRoomSize, g.Radius = 6, 3, 6, 16
	case SizeMedium:
		g.Rooms, g.MinRoomSize, g.MaxRoomSize, g.Radius = 12, 3, 8, 32
	case SizeLarge:
		g.Rooms, g.MinRoomSize, g.MaxRoomSize, g.Radius = 24, 4, 10, 56
	case SizeHuge:
		g.Rooms, g.MinRoomSize, g.MaxRoomSize, g.Radius = 48, 4, 12, 96
	}
}
