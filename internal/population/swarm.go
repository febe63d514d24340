package population

import (
	"sync"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Steering returns the direction an agent at a world position should move in.
type Steering interface {
	FlowAt(world core.Vec2) (core.Vec2, error)
}

// Agent is one member of a swarm.
type Agent struct {
	ID  int
	Pos core.Vec2
}

// Swarm is a mutable population of agents. It implements Source.
type Swarm struct {
	mu     sync.RWMutex
	nextID int
	agents []Agent
}

// NewSwarm creates an empty swarm.
func NewSwarm() *Swarm {
	return &Swarm{}
}

// Spawn adds an agent at pos and returns its ID.
func (s *Swarm) Spawn(pos core.Vec2) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.agents = append(s.agents, Agent{ID: s.nextID, Pos: pos})
	return s.nextID
}

// Remove deletes the agent with the given ID. Returns false if it was not found.
func (s *Swarm) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.agents {
		if a.ID == id {
			s.agents = append(s.agents[:i], s.agents[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every agent.
func (s *Swarm) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents = nil
}

// Len returns the number of agents.
func (s *Swarm) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agents)
}

// Agents returns a copy of the agent list.
func (s *Swarm) Agents() []Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Agent, len(s.agents))
	copy(out, s.agents)
	return out
}

// Positions returns a snapshot of every agent position.
func (s *Swarm) Positions() []core.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Vec2, len(s.agents))
	for i, a := range s.agents {
		out[i] = a.Pos
	}
	return out
}

// Step moves every agent by speed along the steering direction at its
// position. Agents the steering cannot answer for stay put. Returns the number
// of agents that moved.
func (s *Swarm) Step(steer Steering, speed float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := 0
	for i := range s.agents {
		dir, err := steer.FlowAt(s.agents[i].Pos)
		if err != nil || dir == (core.Vec2{}) {
			continue
		}
		s.agents[i].Pos = s.agents[i].Pos.Add(dir.Scale(speed))
		moved++
	}
	return moved
}
