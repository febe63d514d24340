package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
)

func TestSubscriberDropsOldest(t *testing.T) {
	s := NewSubscriber(1, 2)
	s.Send(RequestIgnored{Seed: 1})
	s.Send(RequestIgnored{Seed: 2})
	s.Send(RequestIgnored{Seed: 3})

	got := []uint32{
		(<-s.Events()).(RequestIgnored).Seed,
		(<-s.Events()).(RequestIgnored).Seed,
	}
	assert.Equal(t, []uint32{2, 3}, got)
}

func TestSubscriberClosed(t *testing.T) {
	s := NewSubscriber(1, 4)
	s.Close()
	s.Close()
	s.Send(RequestIgnored{})
	assert.Empty(t, s.Events())

	select {
	case <-s.Done():
	default:
		t.Fatal("Done() not closed")
	}
}

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe(4)
	b := bus.Subscribe(4)
	require.Equal(t, 2, bus.Count())
	require.NotEqual(t, a.ID(), b.ID())

	bus.Publish(GenerationFailed{Seed: 7, Reason: "boom"})

	for _, s := range []*Subscriber{a, b} {
		e := <-s.Events()
		assert.Equal(t, "generation_failed", e.Kind())
		assert.Equal(t, uint32(7), e.(GenerationFailed).Seed)
	}

	bus.Unsubscribe(a.ID())
	assert.Equal(t, 1, bus.Count())
	bus.Publish(RequestIgnored{})
	assert.Empty(t, a.Events())
	assert.Len(t, b.Events(), 1)
}

func TestNewMapReady(t *testing.T) {
	layout, err := dungeon.Generate(dungeon.DefaultParams())
	require.NoError(t, err)

	e := NewMapReady(layout)
	assert.Equal(t, layout.Params.Seed, e.Seed)
	assert.Equal(t, layout.Rooms, e.Rooms)
	assert.Len(t, e.Corridors, layout.Corridors.Len())
	assert.Len(t, e.Grid, e.Diameter*e.Diameter)
	assert.Equal(t, layout.Params.Radius, e.Radius)
	assert.Equal(t, "map_ready", e.Kind())
}

func TestPublisherFunc(t *testing.T) {
	var got []Event
	p := PublisherFunc(func(e Event) { got = append(got, e) })
	p.Publish(FlowFieldReady{Population: "pursuers"})
	Discard.Publish(FlowFieldReady{})
	require.Len(t, got, 1)
	assert.Equal(t, "flow_field_ready", got[0].Kind())
}
