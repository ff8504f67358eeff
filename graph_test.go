package cag

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleA() *Shape {
	return NewBuilder().
		MoveTo(10, 10).LineTo(90, 10).LineTo(50, 90).Close().
		Shape()
}

// triangleB is oriented opposite to triangleA.
func triangleB() *Shape {
	return NewBuilder().
		MoveTo(10, 90).LineTo(90, 90).LineTo(50, 10).Close().
		Shape()
}

func simplifiedTriangles(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	require.NoError(t, g.AddShape(0, triangleA()))
	require.NoError(t, g.AddShape(1, triangleB()))
	require.NoError(t, g.ComputeSimplifiedFaces())
	return g
}

func TestAddShapeRejectsNonFinite(t *testing.T) {
	bad := NewBuilder().
		MoveTo(0, 0).LineTo(math.NaN(), 1).LineTo(1, 1).Close().
		Shape()
	g := NewGraph()
	err := g.AddShape(0, bad)
	require.ErrorIs(t, err, ErrInvalidGeometry)

	inf := NewBuilder().
		MoveTo(0, 0).LineTo(math.Inf(1), 1).LineTo(1, 1).Close().
		Shape()
	err = NewGraph().AddShape(0, inf)
	require.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestTwinInvolution(t *testing.T) {
	g := simplifiedTriangles(t)
	for _, e := range g.Edges() {
		for _, h := range [2]*HalfEdge{e.Forward, e.Reversed} {
			assert.Same(t, h, h.Twin().Twin())
			assert.NotSame(t, h, h.Twin())
		}
	}
}

func TestFaceDuality(t *testing.T) {
	g := simplifiedTriangles(t)
	for _, e := range g.Edges() {
		require.NotNil(t, e.Forward.Face())
		require.NotNil(t, e.Reversed.Face())
		assert.NotSame(t, e.Forward.Face(), e.Reversed.Face(),
			"both sides of an edge share a face")
	}
}

func TestEulerCharacteristic(t *testing.T) {
	// The two crossed triangles form one connected component:
	// V - E + F = 2 counting the unbounded face once.
	g := simplifiedTriangles(t)
	v := len(g.Vertices())
	e := len(g.Edges())
	f := len(g.Faces())
	assert.Equal(t, 2, v-e+f, "V=%d E=%d F=%d", v, e, f)

	// The hexagram has 6 crossings plus 6 corners, 18 edge pieces, and
	// 8 faces (unbounded, hexagon core, 6 points).
	assert.Equal(t, 12, v)
	assert.Equal(t, 18, e)
	assert.Equal(t, 8, f)
}

func TestWindingConsistency(t *testing.T) {
	g := simplifiedTriangles(t)
	diff := g.edgeDifferential()
	for _, e := range g.Edges() {
		fw := e.Forward.Face().WindingMap
		rv := e.Reversed.Face().WindingMap
		require.NotNil(t, fw)
		require.NotNil(t, rv)
		for _, id := range g.ShapeIDs() {
			assert.Equal(t, diff[e][id], fw[id]-rv[id],
				"differential mismatch for shape %d", id)
		}
	}
}

func TestUnboundedFaceWinding(t *testing.T) {
	g := simplifiedTriangles(t)
	for _, id := range g.ShapeIDs() {
		assert.Equal(t, 0, g.UnboundedFace().WindingMap[id])
	}

	g.ComputeFaceInclusion(WindingUnion)
	assert.False(t, g.UnboundedFace().Filled)
}

func TestHexagramWindingMaps(t *testing.T) {
	g := simplifiedTriangles(t)

	var core, points, empty int
	for _, f := range g.Faces() {
		if f.Boundary == nil {
			continue
		}
		a := f.WindingMap[0] != 0
		b := f.WindingMap[1] != 0
		switch {
		case a && b:
			core++
		case a || b:
			points++
		default:
			empty++
		}
	}
	assert.Equal(t, 1, core, "one central face covered by both triangles")
	assert.Equal(t, 4, points, "four corner triangles covered by one triangle")
	assert.Equal(t, 0, empty)
}

func TestBridgesRemoved(t *testing.T) {
	// A triangle plus a dangling open polyline: the polyline is all
	// bridges and must vanish.
	s := NewBuilder().
		MoveTo(0, 0).LineTo(10, 0).LineTo(5, 8).Close().
		Shape()
	s.Subpaths = append(s.Subpaths, &Subpath{
		Segments: []Segment{
			NewLine(Pt(20, 0), Pt(30, 0)),
			NewLine(Pt(30, 0), Pt(30, 10)),
		},
	})

	g := NewGraph()
	require.NoError(t, g.AddShape(0, s))
	require.NoError(t, g.ComputeSimplifiedFaces())

	assert.Len(t, g.Edges(), 3)
	assert.Len(t, g.Vertices(), 3)
	for _, e := range g.Edges() {
		assert.NotNil(t, e.Forward.Face())
		assert.NotNil(t, e.Reversed.Face())
	}
}

func TestSelfIntersectingCubicInput(t *testing.T) {
	// A cubic loop closed with a line: the pipeline must split the
	// self-intersection and produce the loop face plus the outside tail
	// regions.
	s := NewBuilder().
		MoveTo(0, 0).CubicTo(100, 80, -60, 80, 40, 0).Close().
		Shape()

	g := NewGraph()
	require.NoError(t, g.AddShape(0, s))
	require.NoError(t, g.ComputeSimplifiedFaces())

	for _, f := range g.Faces() {
		require.NotNil(t, f.WindingMap)
	}
	// At least the unbounded face plus two finite regions.
	assert.GreaterOrEqual(t, len(g.Faces()), 3)
}

func TestOverlappingRectEdges(t *testing.T) {
	// Two rectangles sharing a full edge stretch: the shared boundary
	// must collapse to single edges before face extraction.
	a := NewBuilder().Rect(0, 0, 10, 10).Shape()
	b := NewBuilder().Rect(10, 0, 10, 10).Shape()

	g := NewGraph()
	require.NoError(t, g.AddShape(0, a))
	require.NoError(t, g.AddShape(1, b))
	require.NoError(t, g.ComputeSimplifiedFaces())

	// Two square faces plus the unbounded face.
	assert.Len(t, g.Faces(), 3)
	for _, e := range g.Edges() {
		assert.NotSame(t, e.Forward.Face(), e.Reversed.Face())
	}
}

func TestHoleNesting(t *testing.T) {
	// A ring: outer rect minus inner rect (opposite orientation), as a
	// single shape with two subpaths.
	outer := NewBuilder().Rect(0, 0, 100, 100)
	s := outer.
		MoveTo(30, 30).LineTo(30, 70).LineTo(70, 70).LineTo(70, 30).Close().
		Shape()

	g := NewGraph()
	require.NoError(t, g.AddShape(0, s))
	require.NoError(t, g.ComputeSimplifiedFaces())

	// Faces: unbounded, ring, interior of the hole.
	require.Len(t, g.Faces(), 3)

	var ring, holeInterior *Face
	for _, f := range g.Faces() {
		if f.Boundary == nil {
			continue
		}
		if f.WindingMap[0] != 0 {
			ring = f
		} else {
			holeInterior = f
		}
	}
	require.NotNil(t, ring)
	require.NotNil(t, holeInterior)
	assert.Len(t, ring.Holes, 1, "ring face carries the inner rim as a hole")
	assert.Equal(t, 0, holeInterior.WindingMap[0])
}

func TestDisjointShapesNestUnderUnbounded(t *testing.T) {
	a := NewBuilder().Rect(0, 0, 10, 10).Shape()
	b := NewBuilder().Rect(50, 50, 10, 10).Shape()

	g := NewGraph()
	require.NoError(t, g.AddShape(0, a))
	require.NoError(t, g.AddShape(1, b))
	require.NoError(t, g.ComputeSimplifiedFaces())

	assert.Len(t, g.Faces(), 3)
	assert.Len(t, g.UnboundedFace().Holes, 2,
		"both outer rims hang off the unbounded face")
}
