package cag

// Loop records one original input subpath as an ordered cycle of
// half-edges, tagged with the shape it came from. Loops are preserved
// across edge splits: when an edge is subdivided, each occurrence is
// spliced with the replacement sequence. The per-shape use counts of an
// edge across all loops drive winding propagation.
type Loop struct {
	ShapeID   int
	HalfEdges []*HalfEdge
}

// replaceEdge splices every occurrence of the edge's halves with the
// given forward replacement sequence. An occurrence of the reversed
// half receives the twins in reverse order; an empty replacement drops
// the occurrence.
func (l *Loop) replaceEdge(e *Edge, forward []*HalfEdge) {
	if !l.usesEdge(e) {
		return
	}
	out := make([]*HalfEdge, 0, len(l.HalfEdges)+len(forward))
	for _, h := range l.HalfEdges {
		switch h {
		case e.Forward:
			out = append(out, forward...)
		case e.Reversed:
			for i := len(forward) - 1; i >= 0; i-- {
				out = append(out, forward[i].Twin())
			}
		default:
			out = append(out, h)
		}
	}
	l.HalfEdges = out
}

// usesEdge reports whether either half of the edge occurs in the loop.
func (l *Loop) usesEdge(e *Edge) bool {
	for _, h := range l.HalfEdges {
		if h.edge == e {
			return true
		}
	}
	return false
}
