package dungeon

import (
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Edge is an unordered pair of vertices. Two edges are equal when they join the
// same endpoints, in either order.
type Edge struct {
	A core.Vec2
	B core.Vec2
}

// NewEdge creates an edge between a and b.
func NewEdge(a, b core.Vec2) Edge {
	return Edge{A: a, B: b}
}

// Key returns the edge with its endpoints in canonical order. Keys are
// comparable, so they can index maps and sets.
func (e Edge) Key() Edge {
	if e.B.Less(e.A) {
		return Edge{A: e.B, B: e.A}
	}
	return e
}

// Equal reports whether both edges join the same endpoints.
func (e Edge) Equal(o Edge) bool {
	return e.Key() == o.Key()
}

// Length returns the Euclidean distance between the endpoints.
func (e Edge) Length() float64 {
	return e.A.Dist(e.B)
}

// Has reports whether v is one of the endpoints.
func (e Edge) Has(v core.Vec2) bool {
	return e.A == v || e.B == v
}

// Other returns the endpoint opposite v. The result is undefined when v is not
// an endpoint.
func (e Edge) Other(v core.Vec2) core.Vec2 {
	if e.A == v {
		return e.B
	}
	return e.A
}

// Triangle is an ordered triple of vertices. Equality ignores vertex order.
type Triangle struct {
	A, B, C core.Vec2

	bad bool // invalidated by the vertex currently being inserted
}

// NewTriangle creates a triangle from three vertices.
func NewTriangle(a, b, c core.Vec2) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Edges returns the three sides as AB, BC, CA.
func (t Triangle) Edges() [3]Edge {
	return [3]Edge{NewEdge(t.A, t.B), NewEdge(t.B, t.C), NewEdge(t.C, t.A)}
}

// HasVertex reports whether v is a corner of the triangle.
func (t Triangle) HasVertex(v core.Vec2) bool {
	return t.A == v || t.B == v || t.C == v
}

// Equal reports whether both triangles have the same corners.
func (t Triangle) Equal(o Triangle) bool {
	return t.HasVertex(o.A) && t.HasVertex(o.B) && t.HasVertex(o.C) &&
		o.HasVertex(t.A) && o.HasVertex(t.B) && o.HasVertex(t.C)
}

// circumEpsilon bounds the circumcentre denominator below which a triangle is
// treated as collinear.
const circumEpsilon = 1e-9

// Circumcircle returns the centre and squared radius of the circle through the
// three corners. ok is false for collinear or near-collinear corners.
func (t Triangle) Circumcircle() (center core.Vec2, r2 float64, ok bool) {
	ax, ay := t.A.X, t.A.Y
	bx, by := t.B.X, t.B.Y
	cx, cy := t.C.X, t.C.Y

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if math.Abs(d) < circumEpsilon {
		return core.Vec2{}, 0, false
	}

	a2 := ax*ax + ay*ay
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (a2*(by-cy) + b2*(cy-ay) + c2*(ay-by)) / d
	uy := (a2*(cx-bx) + b2*(ax-cx) + c2*(bx-ax)) / d
	if !finite(ux) || !finite(uy) {
		return core.Vec2{}, 0, false
	}

	center = core.V(ux, uy)
	r2 = center.Sub(t.A).SqrLen()
	if !finite(r2) {
		return core.Vec2{}, 0, false
	}
	return center, r2, true
}

// CircumcircleContains reports whether p lies inside or on the circumcircle.
// A degenerate triangle contains no point.
func (t Triangle) CircumcircleContains(p core.Vec2) bool {
	center, r2, ok := t.Circumcircle()
	if !ok {
		return false
	}
	return p.Sub(center).SqrLen() <= r2
}

// degenerate reports whether the corners are collinear.
func (t Triangle) degenerate() bool {
	_, _, ok := t.Circumcircle()
	return !ok
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
