package cag

// Edge is one undirected edge of the planar subdivision. It owns a
// segment, references its endpoint vertices, and owns the two oriented
// half-edges sharing it.
//
// Invariant: Forward runs from Start to End; Reversed swaps them;
// Forward.Twin() == Reversed and vice versa.
type Edge struct {
	Segment    Segment
	Start, End *Vertex
	Forward    *HalfEdge
	Reversed   *HalfEdge
}

func newEdge(seg Segment, start, end *Vertex) *Edge {
	e := &Edge{Segment: seg, Start: start, End: end}
	e.Forward = &HalfEdge{edge: e, reversed: false}
	e.Reversed = &HalfEdge{edge: e, reversed: true}
	return e
}

// otherVertex returns the endpoint opposite to v.
func (e *Edge) otherVertex(v *Vertex) *Vertex {
	if e.Start == v {
		return e.End
	}
	return e.Start
}

// HalfEdge is one oriented side of an Edge. Its face is the face lying
// on its left; face and boundary are populated during face extraction.
type HalfEdge struct {
	edge     *Edge
	reversed bool
	face     *Face
	boundary *Boundary
}

// Edge returns the undirected edge this half-edge belongs to.
func (h *HalfEdge) Edge() *Edge { return h.edge }

// Twin returns the oppositely oriented half of the same edge.
func (h *HalfEdge) Twin() *HalfEdge {
	if h.reversed {
		return h.edge.Forward
	}
	return h.edge.Reversed
}

// Start returns the vertex this half-edge leaves.
func (h *HalfEdge) Start() *Vertex {
	if h.reversed {
		return h.edge.End
	}
	return h.edge.Start
}

// End returns the vertex this half-edge arrives at.
func (h *HalfEdge) End() *Vertex {
	if h.reversed {
		return h.edge.Start
	}
	return h.edge.End
}

// Face returns the face on the left of this half-edge, nil before face
// extraction.
func (h *HalfEdge) Face() *Face { return h.face }

// Boundary returns the boundary cycle containing this half-edge, nil
// before face extraction.
func (h *HalfEdge) Boundary() *Boundary { return h.boundary }

// DirectedSegment returns the edge's segment oriented along this
// half-edge.
func (h *HalfEdge) DirectedSegment() Segment {
	if h.reversed {
		return h.edge.Segment.Reversed()
	}
	return h.edge.Segment
}

// outgoingTangent returns the segment tangent leaving the start vertex
// of this half-edge.
func (h *HalfEdge) outgoingTangent() Vec2 {
	if h.reversed {
		return h.edge.Segment.EndTangent().Neg()
	}
	return h.edge.Segment.StartTangent()
}

// outgoingCurvature returns the signed curvature at the start of this
// half-edge, in traversal direction.
func (h *HalfEdge) outgoingCurvature() float64 {
	if h.reversed {
		// Reversing the parameter flips the tangent but keeps the
		// second derivative, so the signed curvature negates.
		return -h.edge.Segment.CurvatureAt(1)
	}
	return h.edge.Segment.CurvatureAt(0)
}

// signedArea returns the half-edge's contribution to the enclosed area
// of a cycle traversing it.
func (h *HalfEdge) signedArea() float64 {
	a := segmentArea(h.edge.Segment)
	if h.reversed {
		return -a
	}
	return a
}
