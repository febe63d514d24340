package flowfield

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/events"
	"github.com/vovakirdan/tui-dungeon/internal/population"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestNavigatorUpdate(t *testing.T) {
	swarm := population.NewSwarm()
	swarm.Spawn(core.V(-3.5, 2.2))
	swarm.Spawn(core.V(4.1, -1.9))

	var published []events.Event
	pub := events.PublisherFunc(func(e events.Event) { published = append(published, e) })

	nav := NewNavigator("pursuers", swarm, New(), pub, quietLogger())

	changed, err := nav.Update(core.V(0.5, 5.5))
	require.NoError(t, err)
	require.True(t, changed)

	s := nav.Field().Snapshot()
	assert.Equal(t, core.C(0, 5), s.Destination)
	assert.Equal(t, NewBounds(core.C(-5, -3), core.C(5, 6)), s.Bounds)

	require.Len(t, published, 1)
	ready := published[0].(events.FlowFieldReady)
	assert.Equal(t, "pursuers", ready.Population)
	assert.Equal(t, core.C(0, 5), ready.Destination)
	assert.Equal(t, uint64(1), ready.Version)

	// Same target cell and agents: nothing to do.
	changed, err = nav.Update(core.V(0.9, 5.1))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, published, 1)

	// Every agent position is covered and steers somewhere.
	for _, p := range swarm.Positions() {
		v, err := nav.Field().FlowAt(p)
		require.NoError(t, err)
		assert.NotEqual(t, core.Vec2{}, v)
	}
}

func TestNavigatorAgentsReachTarget(t *testing.T) {
	swarm := population.NewSwarm()
	swarm.Spawn(core.V(-6.5, -6.5))
	swarm.Spawn(core.V(7.5, 3.5))

	nav := NewNavigator("pursuers", swarm, New(), nil, quietLogger())
	target := core.V(0.5, 0.5)

	for i := 0; i < 80; i++ {
		_, err := nav.Update(target)
		require.NoError(t, err)
		swarm.Step(nav.Field(), 0.5)
	}

	for _, p := range swarm.Positions() {
		assert.Equal(t, core.C(0, 0), nav.Field().CellOf(p), "agent at %v", p)
	}
}

func TestNavigatorServe(t *testing.T) {
	bus := events.NewBus()
	sub := bus.Subscribe(8)
	nav := NewNavigator("pursuers", population.NewSwarm(), New(), bus, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reqs := make(chan Request)
	done := make(chan error, 1)
	go func() { done <- nav.Serve(ctx, reqs) }()

	reqs <- Request{Destination: core.C(9, 9), Bounds: NewBounds(core.C(0, 0), core.C(2, 2))}
	reqs <- Request{Destination: core.C(1, 1), Bounds: NewBounds(core.C(0, 0), core.C(2, 2))}

	select {
	case e := <-sub.Events():
		assert.Equal(t, core.C(1, 1), e.(events.FlowFieldReady).Destination)
	case <-time.After(time.Second):
		t.Fatal("no FlowFieldReady event")
	}

	close(reqs)
	require.NoError(t, <-done)
}
