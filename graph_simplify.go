package cag

import "math"

// Simplification phases: each rewrites the edge set while preserving the
// union of the input contours, restarting its scan after every mutation
// until a fixpoint is reached.

// likeOverlaps detects coincident stretches of two same-typed segments.
func likeOverlaps(a, b Segment) []Overlap {
	switch sa := a.(type) {
	case Line:
		if sb, ok := b.(Line); ok {
			return LineOverlaps(sa, sb)
		}
	case Quadratic:
		if sb, ok := b.(Quadratic); ok {
			return QuadraticOverlaps(sa, sb)
		}
	case Cubic:
		if sb, ok := b.(Cubic); ok {
			return CubicOverlaps(sa, sb)
		}
	case Arc:
		if sb, ok := b.(Arc); ok {
			return ArcOverlaps(sa, sb)
		}
	}
	return nil
}

// eliminateOverlap resolves coincident stretches of same-typed edge
// pairs: both edges are replaced by their non-shared pieces plus a
// single edge for the shared middle, and all loops using either edge
// are spliced through the replacement.
func (g *Graph) eliminateOverlap() {
	for restart := true; restart; {
		restart = false
		for i := 0; i < len(g.edges) && !restart; i++ {
			for j := i + 1; j < len(g.edges) && !restart; j++ {
				a, b := g.edges[i], g.edges[j]
				if edgeExtent(a) < vertexEpsilon || edgeExtent(b) < vertexEpsilon {
					continue
				}
				for _, o := range likeOverlaps(a.Segment, b.Segment) {
					if o.T1-o.T0 <= tEpsilon || math.Abs(o.QT1-o.QT0) <= tEpsilon {
						continue
					}
					g.splitOverlap(a, b, o)
					restart = true
					break
				}
			}
		}
	}
}

// splitOverlap rebuilds the overlapping pair (a, b) as up to five edges:
// a's before/after pieces, b's before/after pieces, and one shared
// middle taken from a's parameterization.
func (g *Graph) splitOverlap(a, b *Edge, o Overlap) {
	// Snap near-endpoint parameters so no sliver pieces are created.
	t0, t1 := snapUnit(o.T0), snapUnit(o.T1)
	qlo, qhi := math.Min(o.QT0, o.QT1), math.Max(o.QT0, o.QT1)
	qlo, qhi = snapUnit(qlo), snapUnit(qhi)

	// Junction vertices, reusing a's endpoints when a has no piece on
	// that end.
	va0 := a.Start
	if t0 > 0 {
		va0 = g.addVertex(a.Segment.PositionAt(t0))
	}
	va1 := a.End
	if t1 < 1 {
		va1 = g.addVertex(a.Segment.PositionAt(t1))
	}

	g.removeEdge(a)
	g.removeEdge(b)

	mid := g.addEdge(a.Segment.Subsegment(t0, t1), va0, va1)

	var aForward []*HalfEdge
	if t0 > 0 {
		before := g.addEdge(a.Segment.Subsegment(0, t0), a.Start, va0)
		aForward = append(aForward, before.Forward)
	}
	aForward = append(aForward, mid.Forward)
	if t1 < 1 {
		after := g.addEdge(a.Segment.Subsegment(t1, 1), va1, a.End)
		aForward = append(aForward, after.Forward)
	}
	g.spliceLoops(a, aForward)

	// b runs through the shared middle in a's direction when the
	// parameterizations agree, against it otherwise.
	vbLo, vbHi := va0, va1
	midForB := mid.Forward
	if o.Sign < 0 {
		vbLo, vbHi = va1, va0
		midForB = mid.Reversed
	}

	var bForward []*HalfEdge
	if qlo > 0 {
		before := g.addEdge(b.Segment.Subsegment(0, qlo), b.Start, vbLo)
		bForward = append(bForward, before.Forward)
	}
	bForward = append(bForward, midForB)
	if qhi < 1 {
		after := g.addEdge(b.Segment.Subsegment(qhi, 1), vbHi, b.End)
		bForward = append(bForward, after.Forward)
	}
	g.spliceLoops(b, bForward)
}

// snapUnit snaps a parameter within tEpsilon of 0 or 1 to the exact
// endpoint.
func snapUnit(t float64) float64 {
	if t < tEpsilon {
		return 0
	}
	if t > 1-tEpsilon {
		return 1
	}
	return t
}

// eliminateSelfIntersection splits every self-crossing cubic into three
// sub-cubics sharing one new vertex at the crossing; the middle piece
// becomes a loop edge starting and ending there. A crossing with one
// parameter at an endpoint splits only at the interior parameter; the
// resulting touch is resolved by the later vertex collapse.
func (g *Graph) eliminateSelfIntersection() {
	snapshot := append([]*Edge{}, g.edges...)
	for _, e := range snapshot {
		c, ok := e.Segment.(Cubic)
		if !ok {
			continue
		}
		si, found := c.SelfIntersection()
		if !found {
			continue
		}

		atEnd := si.AT <= tEpsilon
		btEnd := si.BT >= 1-tEpsilon
		switch {
		case atEnd && btEnd:
			// The curve closes onto itself; both crossing points are
			// already vertices.
		case atEnd:
			v := g.addVertex(c.PositionAt(si.BT))
			g.splitEdge(e, si.BT, v)
		case btEnd:
			v := g.addVertex(c.PositionAt(si.AT))
			g.splitEdge(e, si.AT, v)
		default:
			v := g.addVertex(si.Point)
			g.removeEdge(e)
			first := g.addEdge(c.Subsegment(0, si.AT), e.Start, v)
			middle := g.addEdge(c.Subsegment(si.AT, si.BT), v, v)
			last := g.addEdge(c.Subsegment(si.BT, 1), v, e.End)
			g.spliceLoops(e, []*HalfEdge{first.Forward, middle.Forward, last.Forward})
		}
	}
}

// eliminateIntersection splits edge pairs at their transversal
// crossings. Crossings where both parameters sit at segment endpoints
// are pure touches and ignored; the scan restarts after every split.
func (g *Graph) eliminateIntersection() {
	for restart := true; restart; {
		restart = false
		for i := 0; i < len(g.edges) && !restart; i++ {
			for j := i + 1; j < len(g.edges) && !restart; j++ {
				a, b := g.edges[i], g.edges[j]
				if !a.Segment.Bounds().Expand(vertexEpsilon).Overlaps(b.Segment.Bounds()) {
					continue
				}
				for _, it := range IntersectSegments(a.Segment, b.Segment) {
					aEnd := it.AT <= tEpsilon || it.AT >= 1-tEpsilon
					bEnd := it.BT <= tEpsilon || it.BT >= 1-tEpsilon
					if aEnd && bEnd {
						continue
					}
					g.simpleSplit(a, b, it)
					restart = true
					break
				}
			}
		}
	}
}

// simpleSplit splits the crossing edges at one intersection, sharing a
// single vertex between the sides. An endpoint-parameter side reuses its
// nearer endpoint vertex instead of splitting.
func (g *Graph) simpleSplit(a, b *Edge, it SegmentIntersection) {
	aEnd := it.AT <= tEpsilon || it.AT >= 1-tEpsilon
	bEnd := it.BT <= tEpsilon || it.BT >= 1-tEpsilon

	var v *Vertex
	switch {
	case aEnd:
		v = a.Start
		if it.AT > 0.5 {
			v = a.End
		}
	case bEnd:
		v = b.Start
		if it.BT > 0.5 {
			v = b.End
		}
	default:
		v = g.addVertex(it.Point)
	}

	if !aEnd {
		g.splitEdge(a, it.AT, v)
	}
	if !bEnd {
		g.splitEdge(b, it.BT, v)
	}
}

// collapseVertices merges vertex pairs closer than the vertex epsilon
// into a single vertex at their midpoint, rewriting every edge
// reference. An edge connecting the pair with no remaining extent has
// collapsed to a point and is removed from the graph and its loops.
func (g *Graph) collapseVertices() {
	for restart := true; restart; {
		restart = false
		for i := 0; i < len(g.vertices) && !restart; i++ {
			for j := i + 1; j < len(g.vertices) && !restart; j++ {
				a, b := g.vertices[i], g.vertices[j]
				if a.Point.Distance(b.Point) >= vertexEpsilon {
					continue
				}
				g.mergeVertices(a, b)
				restart = true
			}
		}
	}
}

func (g *Graph) mergeVertices(a, b *Vertex) {
	p := a.Point.Midpoint(b.Point)
	if a.Point == b.Point {
		p = a.Point
	}
	merged := g.addVertex(p)

	// Snapshot: edge rewrites mutate the incidence lists.
	var edges []*Edge
	seen := map[*Edge]bool{}
	for _, v := range [2]*Vertex{a, b} {
		for _, h := range v.incident {
			if !seen[h.edge] {
				seen[h.edge] = true
				edges = append(edges, h.edge)
			}
		}
	}

	inPair := func(v *Vertex) bool { return v == a || v == b }
	for _, e := range edges {
		if inPair(e.Start) && inPair(e.End) && edgeExtent(e) < vertexEpsilon {
			// Fully collapsed to a point.
			g.removeEdge(e)
			g.spliceLoops(e, nil)
			continue
		}
		if inPair(e.Start) {
			e.Start.detach(e.Forward)
			e.Start = merged
			merged.attach(e.Forward)
		}
		if inPair(e.End) {
			e.End.detach(e.Reversed)
			e.End = merged
			merged.attach(e.Reversed)
		}
	}

	g.removeVertex(a)
	g.removeVertex(b)
}

// edgeExtent is the diagonal of the segment's bounding box: zero only
// for point-like edges.
func edgeExtent(e *Edge) float64 {
	b := e.Segment.Bounds()
	return math.Hypot(b.Width(), b.Height())
}

// removeBridges runs Tarjan's bridge algorithm on the undirected
// multigraph and removes every bridge: a dangling curve that separates
// no area cannot bound a face. The DFS marks edges, not vertex pairs,
// so parallel edges and self-loops are handled correctly.
func (g *Graph) removeBridges() {
	for _, v := range g.vertices {
		v.visited = false
		v.visitIndex = 0
		v.lowIndex = 0
	}

	index := 0
	visitedEdges := make(map[*Edge]bool, len(g.edges))
	var bridges []*Edge

	var dfs func(v *Vertex)
	dfs = func(v *Vertex) {
		index++
		v.visited = true
		v.visitIndex = index
		v.lowIndex = index
		for _, h := range v.incident {
			e := h.edge
			if visitedEdges[e] {
				continue
			}
			visitedEdges[e] = true
			w := e.otherVertex(v)
			if w.visited {
				if w.visitIndex < v.lowIndex {
					v.lowIndex = w.visitIndex
				}
				continue
			}
			dfs(w)
			if w.lowIndex < v.lowIndex {
				v.lowIndex = w.lowIndex
			}
			if w.lowIndex > v.visitIndex {
				bridges = append(bridges, e)
			}
		}
	}

	for _, v := range g.vertices {
		if !v.visited {
			dfs(v)
		}
	}

	for _, e := range bridges {
		g.removeEdge(e)
		g.spliceLoops(e, nil)
	}
}

// removeSingleEdgeVertices repeatedly removes vertices with fewer than
// two incident half-edges, disposing the dangling edge if present.
func (g *Graph) removeSingleEdgeVertices() {
	for restart := true; restart; {
		restart = false
		for _, v := range g.vertices {
			if v.Degree() >= 2 {
				continue
			}
			if v.Degree() == 1 {
				e := v.incident[0].edge
				g.removeEdge(e)
				g.spliceLoops(e, nil)
			}
			g.removeVertex(v)
			restart = true
			break
		}
	}
}
