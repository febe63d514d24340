package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/events"
	"github.com/vovakirdan/tui-dungeon/internal/flowfield"
	"github.com/vovakirdan/tui-dungeon/internal/pipeline"
)

// maxBodyBytes caps HTTP request bodies.
const maxBodyBytes = 1 << 16

// Server exposes one pipeline and one navigator over HTTP and websocket.
//
//	GET  /ws        websocket event stream; accepts intent envelopes
//	POST /generate  body: pipeline.GenerateRequest
//	POST /flow      body: RecomputeFlowFieldRequest
//	GET  /flow      ?x=&y= world position; returns FlowSample
type Server struct {
	hub    *Hub
	bus    *events.Bus
	pipe   *pipeline.Pipeline
	nav    *flowfield.Navigator
	logger *log.Logger

	flowReqs chan flowfield.Request
	seq      atomic.Uint64
	running  atomic.Bool
}

// NewServer creates a server. The pipeline and navigator must publish to bus.
func NewServer(bus *events.Bus, pipe *pipeline.Pipeline, nav *flowfield.Navigator, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		hub:      NewHub(),
		bus:      bus,
		pipe:     pipe,
		nav:      nav,
		logger:   logger,
		flowReqs: make(chan flowfield.Request, 16),
	}
}

// Hub returns the client hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run forwards bus events to clients and serves flow requests until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("ws: server already running")
	}
	sub := s.bus.Subscribe(256)
	defer s.bus.Unsubscribe(sub.ID())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.nav.Serve(ctx, s.flowReqs)
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sub.Done():
			return nil
		case e := <-sub.Events():
			s.broadcast(e)
		}
	}
}

// broadcast sends one event to every client.
func (s *Server) broadcast(e events.Event) {
	data, err := encode(s.seq.Add(1), e)
	if err != nil {
		s.logger.Error("cannot encode event", "type", e.Kind(), "err", err)
		return
	}
	n := s.hub.Broadcast(data)
	s.logger.Debug("broadcast", "type", e.Kind(), "clients", n)
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /flow", s.handleRecompute)
	mux.HandleFunc("GET /flow", s.handleFlowAt)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Warn("websocket accept failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	s.hub.Add(conn)
	s.logger.Info("client connected", "remote", r.RemoteAddr, "clients", s.hub.Count())

	defer func() {
		s.hub.Remove(conn)
		_ = conn.Close(websocket.StatusNormalClosure, "")
		s.logger.Info("client disconnected", "remote", r.RemoteAddr)
	}()

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if err := s.handleIntent(ctx, data); err != nil {
			s.logger.Warn("intent rejected", "remote", r.RemoteAddr, "err", err)
			s.reply(ctx, conn, data, err)
		}
	}
}

// handleIntent dispatches one client message.
func (s *Server) handleIntent(ctx context.Context, data []byte) error {
	var env IntentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode intent: %w", err)
	}

	switch env.Type {
	case IntentGenerate:
		var req pipeline.GenerateRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return s.pipe.Submit(ctx, req)

	case IntentRecomputeFlow:
		var msg RecomputeFlowFieldRequest
		if err := json.Unmarshal(env.Payload, &msg); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return s.enqueueFlow(ctx, msg)

	default:
		return fmt.Errorf("unknown intent %q", env.Type)
	}
}

// reply sends an error envelope back to one client.
func (s *Server) reply(ctx context.Context, conn *websocket.Conn, data []byte, err error) {
	var env IntentEnvelope
	_ = json.Unmarshal(data, &env)
	msg, mErr := json.Marshal(Envelope{
		Seq:     s.seq.Add(1),
		Type:    "error",
		Payload: errorPayload{Intent: env.Type, Error: err.Error()},
	})
	if mErr != nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, msg)
}

func (s *Server) enqueueFlow(ctx context.Context, msg RecomputeFlowFieldRequest) error {
	req, err := msg.Request()
	if err != nil {
		return err
	}
	if err := s.nav.Field().Check(req.Destination, req.Bounds); err != nil {
		return err
	}
	select {
	case s.flowReqs <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req pipeline.GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := s.pipe.Submit(r.Context(), req)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusAccepted)
	case errors.Is(err, pipeline.ErrBusy):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, pipeline.ErrStopped):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleRecompute(w http.ResponseWriter, r *http.Request) {
	var msg RecomputeFlowFieldRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&msg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.enqueueFlow(r.Context(), msg); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, flowfield.ErrRegionTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleFlowAt(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x and y must be numbers", http.StatusBadRequest)
		return
	}

	dir, err := s.nav.Field().FlowAt(core.V(x, y))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(FlowSample{X: dir.X, Y: dir.Y})
}
