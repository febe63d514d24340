package dungeon

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Triangulate returns the Delaunay triangulation of points as a deduplicated
// edge list. Edges are canonical (see Edge.Key) and appear in the order they
// are first seen while walking the final triangles.
func Triangulate(points []core.Vec2) ([]Edge, error) {
	triangles, err := Triangles(points)
	if err != nil {
		return nil, err
	}
	return uniqueEdges(triangles), nil
}

// Triangles runs Bowyer–Watson over points and returns the surviving
// triangles. Duplicate points are inserted once.
//
// Returns ErrDegenerateInput for fewer than three distinct points or when all
// points are collinear.
func Triangles(points []core.Vec2) ([]Triangle, error) {
	points = distinct(points)
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 distinct points, got %d", ErrDegenerateInput, len(points))
	}

	super := superTriangle(points)
	triangles := []Triangle{super}

	for _, p := range points {
		triangles = insertVertex(triangles, p)
	}

	result := make([]Triangle, 0, len(triangles))
	for _, t := range triangles {
		if t.HasVertex(super.A) || t.HasVertex(super.B) || t.HasVertex(super.C) {
			continue
		}
		if t.degenerate() {
			continue
		}
		result = append(result, t)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%w: %d points are collinear", ErrDegenerateInput, len(points))
	}
	return result, nil
}

// insertVertex removes every triangle whose circumcircle contains p and
// re-triangulates the cavity by joining p to its boundary edges.
func insertVertex(triangles []Triangle, p core.Vec2) []Triangle {
	var polygon []Edge
	for i := range triangles {
		if triangles[i].CircumcircleContains(p) {
			triangles[i].bad = true
			e := triangles[i].Edges()
			polygon = append(polygon, e[0], e[1], e[2])
		}
	}

	// Edges shared by two bad triangles are interior to the cavity.
	shared := make(map[Edge]int, len(polygon))
	for _, e := range polygon {
		shared[e.Key()]++
	}

	kept := triangles[:0]
	for _, t := range triangles {
		if !t.bad {
			kept = append(kept, t)
		}
	}

	for _, e := range polygon {
		if shared[e.Key()] != 1 {
			continue
		}
		kept = append(kept, NewTriangle(e.A, e.B, p))
	}
	return kept
}

// superTriangle returns a triangle enclosing the bounding box of points grown
// by 2*max(dx, dy) on every side.
func superTriangle(points []core.Vec2) Triangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	d := math.Max(maxX-minX, maxY-minY)
	if d < 1 {
		d = 1
	}
	margin := 2 * d
	side := d + 2*margin

	// Right triangle whose legs run along the grown box's west and south
	// sides; its hypotenuse passes beyond the opposite corner.
	ox, oy := minX-margin, minY-margin
	return NewTriangle(
		core.V(ox, oy),
		core.V(ox, oy+2*side),
		core.V(ox+2*side, oy),
	)
}

// uniqueEdges flattens triangles into canonical edges without duplicates.
func uniqueEdges(triangles []Triangle) []Edge {
	seen := make(map[Edge]struct{}, len(triangles)*3)
	edges := make([]Edge, 0, len(triangles)*2)
	for _, t := range triangles {
		for _, e := range t.Edges() {
			k := e.Key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			edges = append(edges, k)
		}
	}
	return edges
}

// distinct drops repeated points, keeping first occurrences in order.
func distinct(points []core.Vec2) []core.Vec2 {
	seen := make(map[core.Vec2]struct{}, len(points))
	out := make([]core.Vec2, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
