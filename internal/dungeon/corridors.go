package dungeon

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// DefaultLoopChance is the probability that a triangulation edge left out of
// the spanning tree is restored as a loop.
const DefaultLoopChance = 1.0 / 8

// Corridors is the final corridor graph: a spanning tree over all room centres
// plus the restored loop edges.
type Corridors struct {
	Tree  []Edge // Minimum spanning tree, in selection order
	Loops []Edge // Restored non-tree edges, in input order
}

// All returns tree and loop edges as one list, tree first.
func (c Corridors) All() []Edge {
	all := make([]Edge, 0, len(c.Tree)+len(c.Loops))
	all = append(all, c.Tree...)
	return append(all, c.Loops...)
}

// Len returns the total number of corridors.
func (c Corridors) Len() int {
	return len(c.Tree) + len(c.Loops)
}

// SelectCorridors reduces a candidate graph to a minimum spanning tree grown
// from start, then restores each remaining edge with probability loopChance.
//
// The tree is built Prim-style by rescanning edges for the shortest one with
// exactly one endpoint already reached. Equal lengths keep the earlier edge.
// Loop restoration draws one rng value per non-tree edge, in input order.
func SelectCorridors(edges []Edge, start core.Vec2, rng *RNG, loopChance float64) (Corridors, error) {
	if loopChance < 0 || loopChance > 1 {
		return Corridors{}, fmt.Errorf("%w: loop chance %g outside [0, 1]", ErrInvalidParams, loopChance)
	}
	if len(edges) == 0 {
		return Corridors{}, nil
	}

	vertices := mapset.New[core.Vec2]()
	for _, e := range edges {
		vertices.Put(e.A)
		vertices.Put(e.B)
	}
	if !vertices.Has(start) {
		return Corridors{}, fmt.Errorf("%w: start vertex %v is not in the graph", ErrInvalidParams, start)
	}

	closed := mapset.New[core.Vec2]()
	closed.Put(start)
	inTree := make([]bool, len(edges))
	var result Corridors

	for closed.Size() < vertices.Size() {
		best := -1
		bestLen := 0.0
		for i, e := range edges {
			if inTree[i] || closed.Has(e.A) == closed.Has(e.B) {
				continue
			}
			if l := e.Length(); best < 0 || l < bestLen {
				best, bestLen = i, l
			}
		}
		if best < 0 {
			return Corridors{}, fmt.Errorf("%w: reached %d of %d vertices",
				ErrDisconnected, closed.Size(), vertices.Size())
		}

		e := edges[best]
		closed.Put(e.A)
		closed.Put(e.B)
		inTree[best] = true
		result.Tree = append(result.Tree, e)
	}

	for i, e := range edges {
		if inTree[i] {
			continue
		}
		if rng.Float() < loopChance {
			result.Loops = append(result.Loops, e)
		}
	}

	return result, nil
}
