package cag

import (
	"math"
	"sort"
)

// Vertex is a point of the planar subdivision. It owns the list of
// half-edges leaving it, ordered counter-clockwise by outgoing tangent
// angle once orderVertexEdges has run.
type Vertex struct {
	Point Point

	// incident lists every half-edge whose start is this vertex.
	incident []*HalfEdge

	// Transient state for bridge detection.
	visited    bool
	visitIndex int
	lowIndex   int
}

func newVertex(p Point) *Vertex {
	return &Vertex{Point: p}
}

// Degree returns the number of half-edges leaving the vertex.
func (v *Vertex) Degree() int {
	return len(v.incident)
}

// attach registers a half-edge as leaving this vertex.
func (v *Vertex) attach(h *HalfEdge) {
	v.incident = append(v.incident, h)
}

// detach removes a half-edge from the incidence list.
func (v *Vertex) detach(h *HalfEdge) {
	for i, cur := range v.incident {
		if cur == h {
			v.incident = append(v.incident[:i], v.incident[i+1:]...)
			return
		}
	}
}

// sortEdges orders the incident half-edges counter-clockwise by their
// outgoing tangent angle. Tangentially coincident half-edges are
// tie-broken by curvature, so that of two half-edges leaving in the
// same direction the one curving harder to the right comes first.
func (v *Vertex) sortEdges() {
	const angleEpsilon = 1e-9
	sort.SliceStable(v.incident, func(i, j int) bool {
		ai := v.incident[i].outgoingTangent().Atan2()
		aj := v.incident[j].outgoingTangent().Atan2()
		if math.Abs(ai-aj) > angleEpsilon {
			return ai < aj
		}
		return v.incident[i].outgoingCurvature() < v.incident[j].outgoingCurvature()
	})
}

// incidentIndex returns the position of h in the sorted incidence list,
// or -1 when h does not leave this vertex.
func (v *Vertex) incidentIndex(h *HalfEdge) int {
	for i, cur := range v.incident {
		if cur == h {
			return i
		}
	}
	return -1
}
