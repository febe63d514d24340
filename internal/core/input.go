package core

// Action represents a semantic viewer action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow - move target north
	ActionDown              // S, Down arrow - move target south
	ActionLeft              // A, Left arrow - move target west
	ActionRight             // D, Right arrow - move target east
	ActionRegenerate        // G - request a new layout
	ActionToggleFlow        // F - show/hide flow arrows
	ActionSpawnAgent        // N - add a pursuing agent
	ActionPause             // P - freeze agents
	ActionHelp              // ? - toggle help footer
	ActionQuit              // Q, Ctrl+C - exit viewer
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRegenerate:
		return "Regenerate"
	case ActionToggleFlow:
		return "ToggleFlow"
	case ActionSpawnAgent:
		return "SpawnAgent"
	case ActionPause:
		return "Pause"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Delta returns the target movement for directional actions.
func (a Action) Delta() Coord {
	switch a {
	case ActionUp:
		return C(0, 1)
	case ActionDown:
		return C(0, -1)
	case ActionLeft:
		return C(-1, 0)
	case ActionRight:
		return C(1, 0)
	default:
		return C(0, 0)
	}
}
