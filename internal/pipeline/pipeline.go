// Package pipeline sequences dungeon generation requests through an
// Idle -> Generating -> Spawning -> Idle state machine.
//
// A Pipeline owns its state and changes it only on the goroutine running Run,
// by feeding messages through the pure Transition function. The job chain and
// the spawner run on worker goroutines and report back through the same
// message channel. Requests arriving while a generation is in flight are
// rejected: Submit returns ErrBusy and a RequestIgnored event is published.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
	"github.com/vovakirdan/tui-dungeon/internal/events"
)

// Spawner materialises a generated layout in the host representation.
type Spawner interface {
	// SpawnRoom is called once per room, in room order.
	SpawnRoom(ctx context.Context, room dungeon.Room) error

	// PublishGrid is called once after every room was spawned.
	PublishGrid(ctx context.Context, grid *dungeon.Grid, corridors []dungeon.Edge) error
}

// NopSpawner accepts every layout without doing anything.
type NopSpawner struct{}

func (NopSpawner) SpawnRoom(context.Context, dungeon.Room) error { return nil }

func (NopSpawner) PublishGrid(context.Context, *dungeon.Grid, []dungeon.Edge) error { return nil }

// Config holds pipeline limits and generation tuning.
type Config struct {
	LoopChance  float64 // Probability of restoring a non-tree corridor
	MaxAttempts int     // Room placement attempt cap (0 = default)
	MaxRooms    int     // Largest accepted room count (0 = unlimited)
	MaxRadius   int     // Largest accepted radius (0 = unlimited)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		LoopChance: dungeon.DefaultLoopChance,
		MaxRooms:   512,
		MaxRadius:  1024,
	}
}

// message is processed by the Run loop.
type message interface {
	pipelineMessage()
}

type submitMsg struct {
	req   GenerateRequest
	reply chan error
}

func (submitMsg) pipelineMessage() {}

type jobDoneMsg struct {
	req    GenerateRequest
	layout *dungeon.Layout
	err    error
}

func (jobDoneMsg) pipelineMessage() {}

type spawnDoneMsg struct {
	req    GenerateRequest
	layout *dungeon.Layout
	err    error
}

func (spawnDoneMsg) pipelineMessage() {}

// Pipeline runs generation requests one at a time.
type Pipeline struct {
	config    Config
	spawner   Spawner
	publisher events.Publisher
	saver     ResultSaver // Optional, can be nil
	logger    *log.Logger

	state   State        // Owned by the Run goroutine
	current atomic.Int32 // Mirror of state for State()
	req     GenerateRequest
	started time.Time

	msgChan chan message
	done    chan struct{}
	running atomic.Bool
	workers sync.WaitGroup
}

// New creates a pipeline. A nil spawner accepts every layout, a nil publisher
// discards events and a nil logger uses the default logger.
func New(cfg Config, spawner Spawner, pub events.Publisher, logger *log.Logger) *Pipeline {
	if spawner == nil {
		spawner = NopSpawner{}
	}
	if pub == nil {
		pub = events.Discard
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		config:    cfg,
		spawner:   spawner,
		publisher: pub,
		logger:    logger,
		msgChan:   make(chan message, 16),
		done:      make(chan struct{}),
	}
}

// SetResultSaver sets the optional generation history saver.
// Must be called before Run.
func (p *Pipeline) SetResultSaver(saver ResultSaver) {
	p.saver = saver
}

// State returns the current state.
func (p *Pipeline) State() State {
	return State(p.current.Load())
}

// Run processes messages until ctx is cancelled. A generation in flight when
// ctx ends is abandoned; its outcome is never published. Run must be called
// at most once.
func (p *Pipeline) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: already running", ErrStopped)
	}
	defer func() {
		close(p.done)
		p.workers.Wait()
	}()

	for {
		select {
		case msg := <-p.msgChan:
			p.handleMessage(ctx, msg)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Submit offers a request to the pipeline. It returns ErrBusy when a
// generation is already in flight and ErrStopped when Run has exited.
// Completion is reported through the publisher.
func (p *Pipeline) Submit(ctx context.Context, req GenerateRequest) error {
	reply := make(chan error, 1)
	if err := p.send(ctx, submitMsg{req: req, reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-p.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// send delivers a message to the Run loop.
func (p *Pipeline) send(ctx context.Context, msg message) error {
	select {
	case p.msgChan <- msg:
		return nil
	case <-p.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pipeline) handleMessage(ctx context.Context, msg message) {
	switch m := msg.(type) {
	case submitMsg:
		m.reply <- p.apply(ctx, RequestReceived{Request: m.req})
	case jobDoneMsg:
		if m.err != nil {
			p.apply(ctx, JobFailed{Seed: m.req.Seed, Err: m.err})
			return
		}
		p.apply(ctx, JobSucceeded{Layout: m.layout})
	case spawnDoneMsg:
		if m.err != nil {
			p.apply(ctx, SpawnFailed{Seed: m.req.Seed, Err: m.err})
			return
		}
		p.apply(ctx, SpawnSucceeded{Layout: m.layout})
	}
}

// apply runs one transition and performs its effects. It returns ErrBusy if
// the event was a rejected request.
func (p *Pipeline) apply(ctx context.Context, e Event) error {
	from := p.state
	next, effects := Transition(p.state, e)
	p.state = next
	p.current.Store(int32(next))
	if from != next {
		p.logger.Debug("pipeline state changed", "from", from, "to", next)
	}

	var result error
	for _, eff := range effects {
		switch ef := eff.(type) {
		case StartJob:
			p.startJob(ctx, ef.Request)
		case StartSpawn:
			p.startSpawn(ctx, ef.Layout)
		case PublishMap:
			p.publishMap(ef.Layout)
		case PublishFailure:
			p.publishFailure(ef.Seed, ef.Err)
		case RejectRequest:
			p.logger.Warn("generate request ignored", "seed", ef.Request.Seed, "state", ef.State)
			p.publisher.Publish(events.RequestIgnored{Seed: ef.Request.Seed, State: ef.State.String()})
			result = ErrBusy
		}
	}
	return result
}

func (p *Pipeline) startJob(ctx context.Context, req GenerateRequest) {
	p.req = req
	p.started = time.Now()
	p.logger.Info("generation started",
		"seed", req.Seed, "rooms", req.RoomsToGenerate, "radius", req.Radius)

	p.goWorker(func() {
		params, err := req.Params(p.config)
		var layout *dungeon.Layout
		if err == nil {
			layout, err = dungeon.Generate(params)
		}
		_ = p.send(ctx, jobDoneMsg{req: req, layout: layout, err: err})
	})
}

func (p *Pipeline) startSpawn(ctx context.Context, layout *dungeon.Layout) {
	req := p.req
	p.goWorker(func() {
		err := p.spawn(ctx, layout)
		_ = p.send(ctx, spawnDoneMsg{req: req, layout: layout, err: err})
	})
}

// spawn hands every room, then the grid, to the spawner.
func (p *Pipeline) spawn(ctx context.Context, layout *dungeon.Layout) error {
	for i, room := range layout.Rooms {
		if err := p.spawner.SpawnRoom(ctx, room); err != nil {
			return fmt.Errorf("spawn room %d: %w", i, err)
		}
	}
	if err := p.spawner.PublishGrid(ctx, layout.Grid, layout.Corridors.All()); err != nil {
		return fmt.Errorf("publish grid: %w", err)
	}
	return nil
}

func (p *Pipeline) goWorker(fn func()) {
	p.workers.Add(1)
	go func() {
		defer p.workers.Done()
		fn()
	}()
}

func (p *Pipeline) publishMap(layout *dungeon.Layout) {
	elapsed := time.Since(p.started)
	p.logger.Info("generation finished",
		"seed", p.req.Seed,
		"rooms", len(layout.Rooms),
		"corridors", layout.Corridors.Len(),
		"loops", len(layout.Corridors.Loops),
		"elapsed", elapsed)
	p.publisher.Publish(events.NewMapReady(layout))
	p.save(succeeded(p.req, layout, elapsed))
}

func (p *Pipeline) publishFailure(seed uint32, err error) {
	elapsed := time.Since(p.started)
	p.logger.Error("generation failed", "seed", seed, "err", err)
	p.publisher.Publish(events.GenerationFailed{Seed: seed, Reason: err.Error(), Err: err})
	p.save(failed(p.req, err, elapsed))
}

func (p *Pipeline) save(result GenerationResult) {
	if p.saver == nil {
		return
	}
	if err := p.saver.SaveGeneration(result); err != nil {
		p.logger.Warn("cannot save generation result", "seed", result.Request.Seed, "err", err)
	}
}

// Await blocks until sub receives the outcome of a generation and returns the
// layout, or the failure as an error. RequestIgnored ends the wait with ErrBusy.
func Await(ctx context.Context, sub *events.Subscriber) (*dungeon.Layout, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-sub.Done():
			return nil, ErrStopped
		case e := <-sub.Events():
			switch ev := e.(type) {
			case events.MapReady:
				return ev.Layout, nil
			case events.GenerationFailed:
				if ev.Err != nil {
					return nil, ev.Err
				}
				return nil, errors.New(ev.Reason)
			case events.RequestIgnored:
				return nil, ErrBusy
			}
		}
	}
}
