package ws

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/events"
	"github.com/vovakirdan/tui-dungeon/internal/flowfield"
)

// Envelope is every message the server sends. Type is the event kind.
// MapReady grids are byte slices and therefore base64 encoded.
type Envelope struct {
	Seq     uint64 `json:"seq"`
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// IntentEnvelope is every message a client sends over the websocket.
type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Intent types accepted from clients.
const (
	IntentGenerate      = "generate"
	IntentRecomputeFlow = "recompute_flow"
)

// RecomputeFlowFieldRequest asks for a flow field over an explicit region.
type RecomputeFlowFieldRequest struct {
	Destination core.Coord `json:"destination"`
	Lower       core.Coord `json:"lower"`
	Upper       core.Coord `json:"upper"`
}

// Request converts the message into a navigator request.
func (r RecomputeFlowFieldRequest) Request() (flowfield.Request, error) {
	b := flowfield.NewBounds(r.Lower, r.Upper)
	if !b.Valid() {
		return flowfield.Request{}, fmt.Errorf("%w: %v", flowfield.ErrInvalidBounds, b)
	}
	if !b.Contains(r.Destination) {
		return flowfield.Request{}, fmt.Errorf("%w: destination %v outside %v",
			flowfield.ErrInvalidBounds, r.Destination, b)
	}
	if _, ok := b.Cells(); !ok {
		return flowfield.Request{}, fmt.Errorf("%w: %v", flowfield.ErrRegionTooLarge, b)
	}
	return flowfield.Request{Destination: r.Destination, Bounds: b}, nil
}

// FlowSample is the answer to a flow query.
type FlowSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// errorPayload is sent for rejected intents.
type errorPayload struct {
	Intent string `json:"intent"`
	Error  string `json:"error"`
}

// encode wraps an event in an envelope.
func encode(seq uint64, e events.Event) ([]byte, error) {
	return json.Marshal(Envelope{Seq: seq, Type: e.Kind(), Payload: e})
}
