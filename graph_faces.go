package cag

import (
	"fmt"
	"math"
)

// orderVertexEdges sorts every vertex's incidence list counter-clockwise
// by outgoing tangent angle.
func (g *Graph) orderVertexEdges() {
	for _, v := range g.vertices {
		v.sortEdges()
	}
}

// nextHalfEdge continues a face walk: arriving at a vertex via h, the
// walk leaves through the half-edge immediately clockwise from h's twin
// in the vertex's sorted incidence, which is the smallest left turn.
// The walked cycle keeps its face on the left side.
func nextHalfEdge(h *HalfEdge) *HalfEdge {
	v := h.End()
	idx := v.incidentIndex(h.Twin())
	n := len(v.incident)
	return v.incident[(idx-1+n)%n]
}

// extractFaces walks every half-edge into its boundary cycle. Cycles
// with positive signed area are inner boundaries and get a face each;
// negative cycles are outer boundaries, nested by computeBoundaryGraph.
func (g *Graph) extractFaces() {
	visited := make(map[*HalfEdge]bool, 2*len(g.edges))
	for _, e := range g.edges {
		for _, h := range [2]*HalfEdge{e.Forward, e.Reversed} {
			if visited[h] {
				continue
			}
			b := &Boundary{}
			for cur := h; !visited[cur]; cur = nextHalfEdge(cur) {
				visited[cur] = true
				cur.boundary = b
				b.HalfEdges = append(b.HalfEdges, cur)
			}
			b.computeSignedArea()
			g.boundaries = append(g.boundaries, b)

			if b.IsInner() {
				f := newFace(b)
				g.faces = append(g.faces, f)
				for _, cur := range b.HalfEdges {
					cur.face = f
				}
			}
		}
	}
}

// computeBoundaryGraph nests every outer boundary as a hole of the face
// found by casting a ray outward from the boundary's extreme point, or
// of the unbounded face when the ray escapes. The cast retries with a
// perturbed angle when the closest hit is ambiguous.
func (g *Graph) computeBoundaryGraph() error {
	for _, b := range g.boundaries {
		if b.IsInner() {
			continue
		}
		hit, err := g.castOutward(b)
		if err != nil {
			return err
		}
		b.closestHit = hit
	}

	resolved := make(map[*Boundary]*Face)
	resolving := make(map[*Boundary]bool)

	var resolve func(b *Boundary) (*Face, error)
	resolve = func(b *Boundary) (*Face, error) {
		if f, ok := resolved[b]; ok {
			return f, nil
		}
		if resolving[b] {
			return nil, fmt.Errorf("%w: cyclic boundary nesting", ErrNumericalFailure)
		}
		resolving[b] = true
		defer delete(resolving, b)

		var f *Face
		switch {
		case b.closestHit == nil:
			f = g.unbounded
		case b.closestHit.boundary.IsInner():
			f = b.closestHit.face
			b.closestHit.boundary.ChildBoundaries = append(b.closestHit.boundary.ChildBoundaries, b)
		default:
			parent, err := resolve(b.closestHit.boundary)
			if err != nil {
				return nil, err
			}
			f = parent
			b.closestHit.boundary.ChildBoundaries = append(b.closestHit.boundary.ChildBoundaries, b)
		}
		resolved[b] = f
		f.addHole(b)
		return f, nil
	}

	for _, b := range g.boundaries {
		if b.IsInner() {
			continue
		}
		if _, err := resolve(b); err != nil {
			return err
		}
	}
	return nil
}

// rayRetries bounds the perturbed re-casts before giving up on hole
// nesting.
const rayRetries = 8

// castOutward finds the half-edge whose left side faces the boundary
// from outside: the ray leaves the boundary's extreme point along the
// cast direction, so the first edge hit separates the boundary from its
// surrounding face. Returns nil when the ray escapes to infinity.
func (g *Graph) castOutward(b *Boundary) (*HalfEdge, error) {
	for try := 0; try < rayRetries; try++ {
		angle := extremeRayAngle + 0.1729*float64(try)
		dir := V2(1, 0).Rotate(angle)
		ray := Ray{Origin: b.extremePoint(dir), Direction: dir}

		best, ambiguous := closestHit(g.edges, ray)
		if ambiguous {
			Logger().Warn("cag: ambiguous nesting ray, retrying",
				"attempt", try, "angle", angle)
			continue
		}
		if best == nil {
			return nil, nil
		}
		// The half-edge whose left side faces back along the ray: a
		// left-to-right crossing (Wind=+1) has its left side beyond the
		// ray, so the reversed half faces the origin.
		if best.hit.Wind > 0 {
			return best.edge.Reversed, nil
		}
		return best.edge.Forward, nil
	}
	return nil, fmt.Errorf("%w: no unambiguous angle after %d attempts",
		ErrIndeterminateRay, rayRetries)
}

// extremePoint returns the point of the boundary farthest along dir.
func (b *Boundary) extremePoint(dir Vec2) Point {
	best := b.HalfEdges[0].Start().Point
	bestDot := pointVec(best).Dot(dir)
	for _, h := range b.HalfEdges {
		seg := h.edge.Segment
		t := extremeT(seg, dir)
		p := seg.PositionAt(t)
		if d := pointVec(p).Dot(dir); d > bestDot {
			best = p
			bestDot = d
		}
	}
	return best
}

type edgeHit struct {
	edge *Edge
	hit  RayHit
}

// closestHit scans every edge for the nearest ray intersection.
// The cast is ambiguous when two hits are nearly equidistant or the
// nearest hit grazes a segment endpoint.
func closestHit(edges []*Edge, ray Ray) (*edgeHit, bool) {
	const distanceEpsilon = 1e-9
	var best *edgeHit
	secondDistance := math.Inf(1)
	for _, e := range edges {
		for _, hit := range e.Segment.IntersectRay(ray) {
			if best == nil || hit.Distance < best.hit.Distance {
				if best != nil {
					secondDistance = best.hit.Distance
				}
				best = &edgeHit{edge: e, hit: hit}
			} else if hit.Distance < secondDistance {
				secondDistance = hit.Distance
			}
		}
	}
	if best == nil {
		return nil, false
	}
	if secondDistance-best.hit.Distance < distanceEpsilon {
		return nil, true
	}
	if best.hit.T < tEpsilon || best.hit.T > 1-tEpsilon {
		return nil, true
	}
	return best, false
}

// edgeDifferential counts, per shape, the loop uses of each edge:
// +1 per forward occurrence, -1 per reversed. The differential equals
// the winding discontinuity crossing the edge from its reversed side to
// its forward side.
func (g *Graph) edgeDifferential() map[*Edge]map[int]int {
	diff := make(map[*Edge]map[int]int, len(g.edges))
	for _, l := range g.loops {
		for _, h := range l.HalfEdges {
			m := diff[h.edge]
			if m == nil {
				m = make(map[int]int)
				diff[h.edge] = m
			}
			if h.reversed {
				m[l.ShapeID]--
			} else {
				m[l.ShapeID]++
			}
		}
	}
	return diff
}

// computeWindingMap solves every face's per-shape winding numbers,
// starting from the all-zero unbounded face and propagating across
// edges by the edge differential until a fixpoint.
func (g *Graph) computeWindingMap() error {
	diff := g.edgeDifferential()

	zero := make(map[int]int, len(g.shapeIDs))
	for _, id := range g.shapeIDs {
		zero[id] = 0
	}
	g.unbounded.WindingMap = zero

	for changed := true; changed; {
		changed = false
		for _, e := range g.edges {
			forward := e.Forward.face
			reversed := e.Reversed.face
			if forward == nil || reversed == nil {
				return fmt.Errorf("%w: half-edge with no face", ErrNumericalFailure)
			}
			fKnown := forward.WindingMap != nil
			rKnown := reversed.WindingMap != nil
			if fKnown == rKnown {
				continue
			}
			d := diff[e]
			m := make(map[int]int, len(g.shapeIDs))
			for _, id := range g.shapeIDs {
				if fKnown {
					m[id] = forward.WindingMap[id] - d[id]
				} else {
					m[id] = reversed.WindingMap[id] + d[id]
				}
			}
			if fKnown {
				reversed.WindingMap = m
			} else {
				forward.WindingMap = m
			}
			changed = true
		}
	}

	for _, f := range g.faces {
		if f.WindingMap == nil {
			return fmt.Errorf("%w: face unreachable during winding propagation",
				ErrNumericalFailure)
		}
	}
	return nil
}

// CreateFilledSubGraph builds a fresh graph from the edges separating
// filled from unfilled faces, merges collinear line runs, re-extracts
// its faces and two-colors them from the unbounded face outward-in.
// The sub-graph is ready for FacesToShape.
func (g *Graph) CreateFilledSubGraph() (*Graph, error) {
	ng := NewGraph()
	vmap := make(map[*Vertex]*Vertex)
	mapped := func(v *Vertex) *Vertex {
		if nv, ok := vmap[v]; ok {
			return nv
		}
		nv := ng.addVertex(v.Point)
		vmap[v] = nv
		return nv
	}

	for _, e := range g.edges {
		if e.Forward.face.Filled != e.Reversed.face.Filled {
			ng.addEdge(e.Segment, mapped(e.Start), mapped(e.End))
		}
	}

	ng.collapseAdjacentEdges()
	ng.orderVertexEdges()
	ng.extractFaces()
	if err := ng.computeBoundaryGraph(); err != nil {
		return nil, err
	}
	ng.fillAlternatingFaces()
	return ng, nil
}

// collapseAdjacentEdges merges runs of collinear lines: any degree-2
// vertex joining two line segments with matching tangents is dropped
// and its lines fused into one.
func (g *Graph) collapseAdjacentEdges() {
	for restart := true; restart; {
		restart = false
		for _, v := range g.vertices {
			if v.Degree() != 2 {
				continue
			}
			h1, h2 := v.incident[0], v.incident[1]
			if h1.edge == h2.edge {
				continue
			}
			_, ok1 := h1.edge.Segment.(Line)
			_, ok2 := h2.edge.Segment.(Line)
			if !ok1 || !ok2 {
				continue
			}
			// The two half-edges leave v in opposite directions when
			// the lines continue through it.
			t1 := h1.outgoingTangent().Normalize()
			t2 := h2.outgoingTangent().Normalize()
			if math.Abs(t1.Cross(t2)) > collinearEpsilon || t1.Dot(t2) > 0 {
				continue
			}
			far1 := h1.End()
			far2 := h2.End()
			g.removeEdge(h1.edge)
			g.removeEdge(h2.edge)
			g.removeVertex(v)
			g.addEdge(Line{P0: far1.Point, P1: far2.Point}, far1, far2)
			restart = true
			break
		}
	}
}

// fillAlternatingFaces two-colors the faces of the filled sub-graph:
// the unbounded face is unfilled and filled-ness flips across every
// edge, since every sub-graph edge separates inside from outside.
func (g *Graph) fillAlternatingFaces() {
	known := make(map[*Face]bool, len(g.faces))
	g.unbounded.Filled = false
	known[g.unbounded] = true

	for changed := true; changed; {
		changed = false
		for _, e := range g.edges {
			forward := e.Forward.face
			reversed := e.Reversed.face
			switch {
			case known[forward] && !known[reversed]:
				reversed.Filled = !forward.Filled
				known[reversed] = true
				changed = true
			case known[reversed] && !known[forward]:
				forward.Filled = !reversed.Filled
				known[forward] = true
				changed = true
			}
		}
	}
}
