package cag

// Boundary is a closed cycle of half-edges bounding one connected
// region on its left side.
//
// A positive SignedArea marks an inner boundary: a counter-clockwise
// cycle enclosing a finite face. A negative SignedArea marks an outer
// boundary: a clockwise cycle that is either a hole of some face or the
// rim around the unbounded face's complement.
type Boundary struct {
	HalfEdges  []*HalfEdge
	SignedArea float64

	// ChildBoundaries lists the outer boundaries whose hole-nesting ray
	// resolved through this boundary.
	ChildBoundaries []*Boundary

	// closestHit caches the nesting ray result: the half-edge whose
	// left side faces this outer boundary, or nil when the ray escaped
	// to infinity.
	closestHit *HalfEdge
}

// IsInner reports whether the boundary encloses a finite face.
func (b *Boundary) IsInner() bool {
	return b.SignedArea > 0
}

// computeSignedArea sums the half-edges' exact area contributions.
func (b *Boundary) computeSignedArea() {
	var area float64
	for _, h := range b.HalfEdges {
		area += h.signedArea()
	}
	b.SignedArea = area
}

// toSubpath emits the boundary as a closed subpath, reversing segments
// traversed against their edge orientation.
func (b *Boundary) toSubpath() *Subpath {
	segments := make([]Segment, 0, len(b.HalfEdges))
	for _, h := range b.HalfEdges {
		segments = append(segments, h.DirectedSegment())
	}
	return &Subpath{Segments: segments, Closed: true}
}
