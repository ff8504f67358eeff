package cag

import "fmt"

// WindingFilter selects faces by their per-shape winding numbers.
// The map holds one entry per shape id added to the graph.
type WindingFilter func(winding map[int]int) bool

// Standard filters for two-shape boolean operations with shape ids
// 0 and 1.
var (
	// WindingUnion keeps faces covered by either shape.
	WindingUnion WindingFilter = func(w map[int]int) bool {
		return w[0] != 0 || w[1] != 0
	}
	// WindingIntersection keeps faces covered by both shapes.
	WindingIntersection WindingFilter = func(w map[int]int) bool {
		return w[0] != 0 && w[1] != 0
	}
	// WindingDifference keeps faces covered by the first shape only.
	WindingDifference WindingFilter = func(w map[int]int) bool {
		return w[0] != 0 && w[1] == 0
	}
	// WindingXor keeps faces covered by exactly one of the shapes.
	WindingXor WindingFilter = func(w map[int]int) bool {
		return (w[0] != 0) != (w[1] != 0)
	}
)

// BinaryResult combines two shapes through the full pipeline: shape a
// gets id 0 and shape b id 1, faces are selected by the filter, and the
// boundary between selected and unselected faces is emitted as a new
// shape.
func BinaryResult(a, b *Shape, filter WindingFilter) (*Shape, error) {
	g := NewGraph()
	if err := g.AddShape(0, a); err != nil {
		return nil, fmt.Errorf("adding first shape: %w", err)
	}
	if err := g.AddShape(1, b); err != nil {
		return nil, fmt.Errorf("adding second shape: %w", err)
	}
	if err := g.ComputeSimplifiedFaces(); err != nil {
		return nil, err
	}
	g.ComputeFaceInclusion(filter)
	sub, err := g.CreateFilledSubGraph()
	if err != nil {
		return nil, err
	}
	return sub.FacesToShape(), nil
}

// Union returns the region covered by either shape.
func Union(a, b *Shape) (*Shape, error) {
	return BinaryResult(a, b, WindingUnion)
}

// Intersect returns the region covered by both shapes.
func Intersect(a, b *Shape) (*Shape, error) {
	return BinaryResult(a, b, WindingIntersection)
}

// Subtract returns the region covered by a but not by b.
func Subtract(a, b *Shape) (*Shape, error) {
	return BinaryResult(a, b, WindingDifference)
}

// Xor returns the region covered by exactly one of the shapes.
func Xor(a, b *Shape) (*Shape, error) {
	return BinaryResult(a, b, WindingXor)
}
