package core

// RuntimeConfig contains configuration passed to front-ends at start-up.
// The viewer uses it to size the screen and drive the simulation clock.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Agent simulation ticks per second
	Seed     uint32 // Seed of the first generated layout
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 8,
		Seed:     0, // 0 means use current time in platform layer
	}
}
