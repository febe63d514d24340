package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
	"github.com/vovakirdan/tui-dungeon/internal/events"
)

type recordingSpawner struct {
	mu      sync.Mutex
	rooms   []dungeon.Room
	grids   int
	release chan struct{} // if set, PublishGrid waits for it
	failOn  int           // fail SpawnRoom at this index (0 = never)
}

func (s *recordingSpawner) SpawnRoom(_ context.Context, room dungeon.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = append(s.rooms, room)
	if s.failOn > 0 && len(s.rooms) == s.failOn {
		return errors.New("no space for prefab")
	}
	return nil
}

func (s *recordingSpawner) PublishGrid(ctx context.Context, _ *dungeon.Grid, _ []dungeon.Edge) error {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grids++
	return nil
}

type memorySaver struct {
	mu      sync.Mutex
	results []GenerationResult
}

func (m *memorySaver) SaveGeneration(r GenerationResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

func (m *memorySaver) all() []GenerationResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GenerationResult(nil), m.results...)
}

type harness struct {
	pipeline *Pipeline
	sub      *events.Subscriber
	saver    *memorySaver
	cancel   context.CancelFunc
	done     chan error
}

func startPipeline(t *testing.T, spawner Spawner) *harness {
	t.Helper()
	bus := events.NewBus()
	h := &harness{
		pipeline: New(DefaultConfig(), spawner, bus, log.New(io.Discard)),
		sub:      bus.Subscribe(16),
		saver:    &memorySaver{},
		done:     make(chan error, 1),
	}
	h.pipeline.SetResultSaver(h.saver)

	var ctx context.Context
	ctx, h.cancel = context.WithCancel(context.Background())
	go func() { h.done <- h.pipeline.Run(ctx) }()
	t.Cleanup(func() {
		h.cancel()
		<-h.done
	})
	return h
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func nextEvent(t *testing.T, sub *events.Subscriber) events.Event {
	t.Helper()
	select {
	case e := <-sub.Events():
		return e
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPipelineGeneratesAndSpawns(t *testing.T) {
	spawner := &recordingSpawner{}
	h := startPipeline(t, spawner)
	ctx := testContext(t)

	req := RequestFromParams(dungeon.DefaultParams())
	require.NoError(t, h.pipeline.Submit(ctx, req))

	layout, err := Await(ctx, h.sub)
	require.NoError(t, err)
	require.NotNil(t, layout)
	assert.Len(t, layout.Rooms, int(req.RoomsToGenerate))
	assert.Equal(t, StateIdle, h.pipeline.State())

	spawner.mu.Lock()
	assert.Equal(t, layout.Rooms, spawner.rooms)
	assert.Equal(t, 1, spawner.grids)
	spawner.mu.Unlock()

	results := h.saver.all()
	require.Len(t, results, 1)
	assert.Equal(t, StatusSucceeded, results[0].Status)
	assert.Equal(t, len(layout.Rooms), results[0].RoomsPlaced)
	assert.Equal(t, len(layout.Rooms)-1, results[0].TreeEdges)
}

func TestPipelineRejectsWhileBusy(t *testing.T) {
	spawner := &recordingSpawner{release: make(chan struct{})}
	h := startPipeline(t, spawner)
	ctx := testContext(t)

	first := RequestFromParams(dungeon.DefaultParams())
	require.NoError(t, h.pipeline.Submit(ctx, first))

	second := first
	second.Seed = 77
	err := h.pipeline.Submit(ctx, second)
	require.ErrorIs(t, err, ErrBusy)

	ignored, ok := nextEvent(t, h.sub).(events.RequestIgnored)
	require.True(t, ok, "expected RequestIgnored")
	assert.Equal(t, uint32(77), ignored.Seed)
	assert.NotEqual(t, StateIdle.String(), ignored.State)

	close(spawner.release)

	ready, ok := nextEvent(t, h.sub).(events.MapReady)
	require.True(t, ok, "expected MapReady")
	assert.Equal(t, first.Seed, ready.Seed)

	// Idle again: the next request is accepted.
	require.NoError(t, h.pipeline.Submit(ctx, second))
	_, err = Await(ctx, h.sub)
	require.NoError(t, err)
}

func TestPipelineReportsPlacementFailure(t *testing.T) {
	spawner := &recordingSpawner{}
	h := startPipeline(t, spawner)
	ctx := testContext(t)

	req := GenerateRequest{Seed: 1, RoomsToGenerate: 100, MinRoomSize: 1, MaxRoomSize: 10, Radius: 5}
	require.NoError(t, h.pipeline.Submit(ctx, req))

	layout, err := Await(ctx, h.sub)
	assert.Nil(t, layout)
	require.ErrorIs(t, err, dungeon.ErrUnboundedPlacement)

	spawner.mu.Lock()
	assert.Empty(t, spawner.rooms, "nothing spawned for a failed job")
	spawner.mu.Unlock()

	results := h.saver.all()
	require.Len(t, results, 1)
	assert.Equal(t, StatusFailed, results[0].Status)
	assert.NotEmpty(t, results[0].Error)

	// Failure is retryable.
	require.NoError(t, h.pipeline.Submit(ctx, RequestFromParams(dungeon.DefaultParams())))
	_, err = Await(ctx, h.sub)
	require.NoError(t, err)
}

func TestPipelineReportsDegenerateInput(t *testing.T) {
	h := startPipeline(t, nil)
	ctx := testContext(t)

	req := RequestFromParams(dungeon.DefaultParams())
	req.RoomsToGenerate = 2
	require.NoError(t, h.pipeline.Submit(ctx, req))

	_, err := Await(ctx, h.sub)
	require.ErrorIs(t, err, dungeon.ErrDegenerateInput)
}

func TestPipelineReportsSpawnFailure(t *testing.T) {
	spawner := &recordingSpawner{failOn: 2}
	h := startPipeline(t, spawner)
	ctx := testContext(t)

	require.NoError(t, h.pipeline.Submit(ctx, RequestFromParams(dungeon.DefaultParams())))

	failed, ok := nextEvent(t, h.sub).(events.GenerationFailed)
	require.True(t, ok, "expected GenerationFailed")
	assert.Contains(t, failed.Reason, "spawn room 1")

	spawner.mu.Lock()
	assert.Zero(t, spawner.grids, "grid not published after a failed spawn")
	spawner.mu.Unlock()
	assert.Equal(t, StateIdle, h.pipeline.State())
}

func TestPipelineStopped(t *testing.T) {
	p := New(DefaultConfig(), nil, nil, log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Run(ctx), context.Canceled)

	err := p.Submit(context.Background(), RequestFromParams(dungeon.DefaultParams()))
	assert.ErrorIs(t, err, ErrStopped)

	assert.ErrorIs(t, p.Run(context.Background()), ErrStopped)
}
