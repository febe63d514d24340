package pipeline

import "github.com/vovakirdan/tui-dungeon/internal/dungeon"

// State is the pipeline's position in its Idle -> Generating -> Spawning
// cycle.
type State int

const (
	StateIdle       State = iota // Waiting for a request
	StateGenerating              // Job chain running
	StateSpawning                // Handing the layout to the spawner
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateGenerating:
		return "Generating"
	case StateSpawning:
		return "Spawning"
	default:
		return "Unknown"
	}
}

// Event is an input to Transition.
type Event interface {
	pipelineEvent()
}

// RequestReceived signals an external generate request.
type RequestReceived struct {
	Request GenerateRequest
}

func (RequestReceived) pipelineEvent() {}

// JobSucceeded signals that the job chain produced a layout.
type JobSucceeded struct {
	Layout *dungeon.Layout
}

func (JobSucceeded) pipelineEvent() {}

// JobFailed signals that a stage of the job chain failed.
type JobFailed struct {
	Seed uint32
	Err  error
}

func (JobFailed) pipelineEvent() {}

// SpawnSucceeded signals that every room and the grid were handed over.
type SpawnSucceeded struct {
	Layout *dungeon.Layout
}

func (SpawnSucceeded) pipelineEvent() {}

// SpawnFailed signals that the spawner rejected the layout.
type SpawnFailed struct {
	Seed uint32
	Err  error
}

func (SpawnFailed) pipelineEvent() {}

// Effect is an action Transition asks its owner to perform.
type Effect interface {
	pipelineEffect()
}

// StartJob runs placement, triangulation, corridor selection and
// rasterization for Request.
type StartJob struct {
	Request GenerateRequest
}

func (StartJob) pipelineEffect() {}

// StartSpawn hands Layout to the spawner.
type StartSpawn struct {
	Layout *dungeon.Layout
}

func (StartSpawn) pipelineEffect() {}

// PublishMap announces a finished layout.
type PublishMap struct {
	Layout *dungeon.Layout
}

func (PublishMap) pipelineEffect() {}

// PublishFailure announces a failed generation.
type PublishFailure struct {
	Seed uint32
	Err  error
}

func (PublishFailure) pipelineEffect() {}

// RejectRequest tells the caller its request arrived while busy.
type RejectRequest struct {
	Request GenerateRequest
	State   State
}

func (RejectRequest) pipelineEffect() {}

// Transition returns the next state and the effects to perform for event e
// in state s. Events that do not apply to s leave it unchanged.
func Transition(s State, e Event) (State, []Effect) {
	switch ev := e.(type) {
	case RequestReceived:
		if s != StateIdle {
			return s, []Effect{RejectRequest{Request: ev.Request, State: s}}
		}
		return StateGenerating, []Effect{StartJob{Request: ev.Request}}

	case JobSucceeded:
		if s == StateGenerating {
			return StateSpawning, []Effect{StartSpawn{Layout: ev.Layout}}
		}

	case JobFailed:
		if s == StateGenerating {
			return StateIdle, []Effect{PublishFailure{Seed: ev.Seed, Err: ev.Err}}
		}

	case SpawnSucceeded:
		if s == StateSpawning {
			return StateIdle, []Effect{PublishMap{Layout: ev.Layout}}
		}

	case SpawnFailed:
		if s == StateSpawning {
			return StateIdle, []Effect{PublishFailure{Seed: ev.Seed, Err: ev.Err}}
		}
	}
	return s, nil
}
