package cag

import (
	"fmt"
	"sort"
)

// Graph is a planar subdivision under construction: the vertices, edges,
// loops, boundaries and faces derived from a set of input shapes.
//
// The lifecycle is: AddShape for each input, ComputeSimplifiedFaces to
// resolve the subdivision and solve per-face winding, then
// ComputeFaceInclusion with a winding filter, CreateFilledSubGraph, and
// FacesToShape on the sub-graph. BinaryResult wraps the whole sequence
// for the two-shape case.
//
// A Graph is single-threaded; distinct Graphs share no state.
type Graph struct {
	vertices   []*Vertex
	edges      []*Edge
	loops      []*Loop
	boundaries []*Boundary
	faces      []*Face

	shapeIDs  []int
	unbounded *Face
}

// NewGraph creates an empty graph holding only the unbounded face.
func NewGraph() *Graph {
	g := &Graph{}
	g.unbounded = newFace(nil)
	g.faces = append(g.faces, g.unbounded)
	return g
}

// Vertices returns the graph's vertices.
func (g *Graph) Vertices() []*Vertex { return g.vertices }

// Edges returns the graph's edges.
func (g *Graph) Edges() []*Edge { return g.edges }

// Loops returns the input loops.
func (g *Graph) Loops() []*Loop { return g.loops }

// Boundaries returns the extracted boundary cycles.
func (g *Graph) Boundaries() []*Boundary { return g.boundaries }

// Faces returns the faces, including the unbounded face.
func (g *Graph) Faces() []*Face { return g.faces }

// UnboundedFace returns the single face with a nil boundary.
func (g *Graph) UnboundedFace() *Face { return g.unbounded }

// ShapeIDs returns the ids of the shapes added so far, in ascending
// order.
func (g *Graph) ShapeIDs() []int { return g.shapeIDs }

// AddShape ingests every subpath of the shape under the given id.
// Returns ErrInvalidGeometry if any coordinate is non-finite.
func (g *Graph) AddShape(shapeID int, s *Shape) error {
	g.registerShapeID(shapeID)
	for _, sp := range s.Subpaths {
		if err := g.AddSubpath(shapeID, sp); err != nil {
			return err
		}
	}
	return nil
}

// AddSubpath ingests a single subpath under the given shape id as one
// loop of fresh edges and vertices. Junction vertices between
// consecutive segments are placed at the shared point, or at the
// midpoint when the meeting endpoints differ by less than the vertex
// epsilon. Distinct subpaths are fused later by vertex collapse.
func (g *Graph) AddSubpath(shapeID int, sp *Subpath) error {
	g.registerShapeID(shapeID)
	segments := sp.fullSegments()
	for _, seg := range segments {
		if !seg.IsFinite() {
			return fmt.Errorf("%w: non-finite segment %v", ErrInvalidGeometry, seg)
		}
	}
	if len(segments) == 0 {
		return nil
	}

	n := len(segments)
	closed := sp.Closed && (n > 1 || segments[0].Start() == segments[0].End())

	// One vertex per junction. For a closed subpath, index i holds the
	// vertex between segment i-1 and segment i, wrapping around; for an
	// open one, index 0 and n are the free ends.
	joint := func(prev, next Segment) Point {
		a := prev.End()
		b := next.Start()
		if a != b && a.Distance(b) < vertexEpsilon {
			return a.Midpoint(b)
		}
		return b
	}

	vertices := make([]*Vertex, n+1)
	for i := 0; i < n; i++ {
		if i == 0 {
			if closed {
				vertices[0] = g.addVertex(joint(segments[n-1], segments[0]))
			} else {
				vertices[0] = g.addVertex(segments[0].Start())
			}
		} else {
			vertices[i] = g.addVertex(joint(segments[i-1], segments[i]))
		}
	}
	if closed {
		vertices[n] = vertices[0]
	} else {
		vertices[n] = g.addVertex(segments[n-1].End())
	}

	loop := &Loop{ShapeID: shapeID}
	for i, seg := range segments {
		if l, ok := seg.(Line); ok && l.Length() < vertexEpsilon {
			// Point-like stub; its end vertices are within the vertex
			// epsilon and fuse during vertex collapse.
			continue
		}
		e := g.addEdge(seg, vertices[i], vertices[i+1])
		loop.HalfEdges = append(loop.HalfEdges, e.Forward)
	}
	if len(loop.HalfEdges) > 0 {
		g.loops = append(g.loops, loop)
	}
	return nil
}

func (g *Graph) registerShapeID(shapeID int) {
	for _, id := range g.shapeIDs {
		if id == shapeID {
			return
		}
	}
	g.shapeIDs = append(g.shapeIDs, shapeID)
	sort.Ints(g.shapeIDs)
}

// addVertex creates and registers a vertex.
func (g *Graph) addVertex(p Point) *Vertex {
	v := newVertex(p)
	g.vertices = append(g.vertices, v)
	return v
}

// addEdge creates an edge with its two halves and hooks the halves into
// the endpoint incidence lists.
func (g *Graph) addEdge(seg Segment, start, end *Vertex) *Edge {
	e := newEdge(seg, start, end)
	start.attach(e.Forward)
	end.attach(e.Reversed)
	g.edges = append(g.edges, e)
	return e
}

// removeEdge detaches an edge from its endpoints and drops it from the
// graph. Loops are not touched; callers splice them explicitly.
func (g *Graph) removeEdge(e *Edge) {
	e.Start.detach(e.Forward)
	e.End.detach(e.Reversed)
	for i, cur := range g.edges {
		if cur == e {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return
		}
	}
}

// removeVertex drops a vertex from the graph. The vertex must have no
// incident half-edges.
func (g *Graph) removeVertex(v *Vertex) {
	for i, cur := range g.vertices {
		if cur == v {
			g.vertices = append(g.vertices[:i], g.vertices[i+1:]...)
			return
		}
	}
}

// spliceLoops replaces the edge in every loop with the forward
// replacement sequence.
func (g *Graph) spliceLoops(e *Edge, forward []*HalfEdge) {
	for _, l := range g.loops {
		l.replaceEdge(e, forward)
	}
}

// splitEdge replaces the edge with two sub-edges meeting at the given
// vertex, which is expected to sit at the split point. Returns the two
// new edges in traversal order.
func (g *Graph) splitEdge(e *Edge, t float64, v *Vertex) (*Edge, *Edge) {
	segA, segB := e.Segment.Subdivided(t)
	g.removeEdge(e)
	ea := g.addEdge(segA, e.Start, v)
	eb := g.addEdge(segB, v, e.End)
	g.spliceLoops(e, []*HalfEdge{ea.Forward, eb.Forward})
	return ea, eb
}

// ComputeSimplifiedFaces runs the simplification pipeline: it resolves
// overlaps, self-intersections and crossings into a valid planar
// subdivision, extracts faces, nests holes, and solves each face's
// winding map. After it returns, the graph topology is final.
func (g *Graph) ComputeSimplifiedFaces() error {
	log := Logger()

	g.eliminateOverlap()
	log.Debug("cag: eliminated overlaps", "edges", len(g.edges))

	g.eliminateSelfIntersection()
	g.eliminateIntersection()
	log.Debug("cag: eliminated intersections", "edges", len(g.edges))

	g.collapseVertices()
	g.removeBridges()
	g.removeSingleEdgeVertices()
	log.Debug("cag: simplified topology",
		"vertices", len(g.vertices), "edges", len(g.edges))

	g.orderVertexEdges()
	g.extractFaces()
	if err := g.computeBoundaryGraph(); err != nil {
		return err
	}
	log.Debug("cag: extracted faces",
		"faces", len(g.faces), "boundaries", len(g.boundaries))

	return g.computeWindingMap()
}

// ComputeFaceInclusion marks each face filled or unfilled according to
// the winding filter. Must run after ComputeSimplifiedFaces.
func (g *Graph) ComputeFaceInclusion(filter WindingFilter) {
	for _, f := range g.faces {
		f.Filled = filter(f.WindingMap)
	}
}

// FacesToShape emits the filled faces as a shape: one closed subpath
// per face boundary plus one per hole.
func (g *Graph) FacesToShape() *Shape {
	s := NewShape()
	for _, f := range g.faces {
		if !f.Filled || f.Boundary == nil {
			continue
		}
		s.Subpaths = append(s.Subpaths, f.Boundary.toSubpath())
		for _, hole := range f.Holes {
			s.Subpaths = append(s.Subpaths, hole.toSubpath())
		}
	}
	return s
}
