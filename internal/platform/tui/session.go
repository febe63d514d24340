package tui

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
	"github.com/vovakirdan/tui-dungeon/internal/events"
	"github.com/vovakirdan/tui-dungeon/internal/flowfield"
	"github.com/vovakirdan/tui-dungeon/internal/pipeline"
	"github.com/vovakirdan/tui-dungeon/internal/population"
)

// populationID names the viewer's only pursuing population.
const populationID = "pursuers"

// Options configures one viewer session.
type Options struct {
	Runtime    core.RuntimeConfig
	Params     dungeon.Params  // Seed is taken from Runtime.Seed
	Pipeline   pipeline.Config // Limits applied to every request
	CellSize   float64         // Flow field cell size in world units
	Margin     int             // Cells kept around agents and target
	MaxCells   int             // Largest flow region accepted
	Agents     int             // Agents spawned with each layout
	AgentSpeed float64         // World units per tick
	ShowFlow   bool            // Start with flow arrows visible
}

// DefaultOptions returns options matching the default configuration.
func DefaultOptions() Options {
	return Options{
		Runtime:    core.DefaultConfig(),
		Params:     dungeon.DefaultParams(),
		Pipeline:   pipeline.DefaultConfig(),
		CellSize:   1,
		Margin:     flowfield.DefaultMargin,
		MaxCells:   flowfield.DefaultMaxCells,
		Agents:     3,
		AgentSpeed: 0.5,
	}
}

// Session owns the long-lived machinery behind one viewer: the generation
// pipeline, the event bus, the pursuing swarm and its navigator.
// Models are copied by value on every update, so they share a *Session.
type Session struct {
	opts   Options
	logger *log.Logger

	bus   *events.Bus
	sub   *events.Subscriber
	pipe  *pipeline.Pipeline
	swarm *population.Swarm
	field *flowfield.Field
	nav   *flowfield.Navigator

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession wires the pipeline and navigator and starts the pipeline loop.
// saver may be nil. Close releases everything.
func NewSession(opts Options, saver pipeline.ResultSaver, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		opts:   opts,
		logger: logger,
		bus:    events.NewBus(),
		swarm:  population.NewSwarm(),
	}
	s.sub = s.bus.Subscribe(0)
	s.field = flowfield.New(
		flowfield.WithCellSize(opts.CellSize),
		flowfield.WithMaxCells(opts.MaxCells),
	)
	s.nav = flowfield.NewNavigator(populationID, s.swarm, s.field, s.bus, logger)
	s.nav.SetMargin(opts.Margin)

	spawner := &swarmSpawner{swarm: s.swarm, agents: opts.Agents}
	s.pipe = pipeline.New(opts.Pipeline, spawner, s.bus, logger)
	if saver != nil {
		s.pipe.SetResultSaver(saver)
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.pipe.Run(s.ctx); err != nil && s.ctx.Err() == nil {
			logger.Error("pipeline stopped", "err", err)
		}
	}()
	return s
}

// Request builds a generation request for seed from the session parameters.
func (s *Session) Request(seed uint32) pipeline.GenerateRequest {
	p := s.opts.Params
	p.Seed = seed
	return pipeline.RequestFromParams(p)
}

// Submit hands a request to the pipeline.
func (s *Session) Submit(seed uint32) error {
	return s.pipe.Submit(s.ctx, s.Request(seed))
}

// Idle reports whether no generation is in flight.
func (s *Session) Idle() bool {
	return s.pipe.State() == pipeline.StateIdle
}

// Swarm returns the pursuing population.
func (s *Session) Swarm() *population.Swarm {
	return s.swarm
}

// Field returns the population's flow field.
func (s *Session) Field() *flowfield.Field {
	return s.field
}

// Step advances the agents one tick and re-aims the field at target.
func (s *Session) Step(target core.Vec2) error {
	s.swarm.Step(s.field, s.opts.AgentSpeed)
	_, err := s.nav.Update(target)
	return err
}

// Retarget recomputes the field for a new target position.
func (s *Session) Retarget(target core.Vec2) error {
	_, err := s.nav.Update(target)
	return err
}

// Nearest returns the agent with the fewest flow steps to the target.
// ok is false when no agent lies inside the current field.
func (s *Session) Nearest() (agent population.Agent, steps int, ok bool) {
	snap := s.field.Snapshot()
	if snap == nil {
		return population.Agent{}, 0, false
	}
	for _, a := range s.swarm.Agents() {
		d, reached := snap.Distance(s.field.CellOf(a.Pos))
		if reached && (!ok || d < steps) {
			agent, steps, ok = a, d, true
		}
	}
	return agent, steps, ok
}

// Events returns the session's event stream.
func (s *Session) Events() *events.Subscriber {
	return s.sub
}

// Close stops the pipeline and detaches from the bus.
func (s *Session) Close() {
	s.cancel()
	s.wg.Wait()
	s.bus.Unsubscribe(s.sub.ID())
}

// swarmSpawner populates the swarm while the pipeline spawns a layout: it
// places one agent at the centre of each room after the first, up to agents.
// The first room is where the viewer puts the target.
type swarmSpawner struct {
	swarm  *population.Swarm
	agents int

	mu    sync.Mutex
	rooms int // rooms seen for the layout being spawned
}

func (sp *swarmSpawner) SpawnRoom(_ context.Context, room dungeon.Room) error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.rooms == 0 {
		sp.swarm.Clear()
	}
	sp.rooms++
	if sp.rooms > 1 && sp.rooms <= sp.agents+1 {
		sp.swarm.Spawn(room.Center())
	}
	return nil
}

func (sp *swarmSpawner) PublishGrid(context.Context, *dungeon.Grid, []dungeon.Edge) error {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.rooms = 0
	return nil
}
