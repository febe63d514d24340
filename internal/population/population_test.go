package population

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	swarm := NewSwarm()
	swarm.Spawn(core.V(1, 2))

	require.NoError(t, r.Register("pursuers", swarm))
	require.NoError(t, r.Register("fixed", SourceFunc(func() []core.Vec2 {
		return []core.Vec2{core.V(0, 0), core.V(3, 3)}
	})))

	err := r.Register("pursuers", swarm)
	assert.ErrorIs(t, err, ErrDuplicatePopulation)

	got, err := r.Positions("pursuers")
	require.NoError(t, err)
	assert.Equal(t, []core.Vec2{core.V(1, 2)}, got)

	assert.Equal(t, []Info{{ID: "fixed", Size: 2}, {ID: "pursuers", Size: 1}}, r.List())

	r.Unregister("fixed")
	_, err = r.Positions("fixed")
	assert.ErrorIs(t, err, ErrUnknownPopulation)
}

func TestSwarmSpawnRemove(t *testing.T) {
	s := NewSwarm()
	a := s.Spawn(core.V(0, 0))
	b := s.Spawn(core.V(5, 5))
	require.NotEqual(t, a, b)
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	assert.Equal(t, []core.Vec2{core.V(5, 5)}, s.Positions())
	assert.Equal(t, []Agent{{ID: b, Pos: core.V(5, 5)}}, s.Agents())

	s.Clear()
	assert.Zero(t, s.Len())
}

type steerFunc func(core.Vec2) (core.Vec2, error)

func (f steerFunc) FlowAt(p core.Vec2) (core.Vec2, error) { return f(p) }

func TestSwarmStep(t *testing.T) {
	s := NewSwarm()
	s.Spawn(core.V(0, 0))
	s.Spawn(core.V(10, 10))
	s.Spawn(core.V(-3, 0))

	steer := steerFunc(func(p core.Vec2) (core.Vec2, error) {
		switch {
		case p.X < 0:
			return core.Vec2{}, errors.New("out of bounds")
		case p.X >= 10:
			return core.Vec2{}, nil
		default:
			return core.V(1, 0), nil
		}
	})

	moved := s.Step(steer, 0.5)
	assert.Equal(t, 1, moved)
	assert.Equal(t, []core.Vec2{core.V(0.5, 0), core.V(10, 10), core.V(-3, 0)}, s.Positions())
}
