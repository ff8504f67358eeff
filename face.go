package cag

// Face is a maximal connected open region of the plane's complement of
// the edge set. Exactly one face per graph has a nil Boundary: the
// unbounded face.
type Face struct {
	// Boundary is the inner (counter-clockwise) cycle enclosing the
	// face, nil for the unbounded face.
	Boundary *Boundary

	// Holes lists the outer (clockwise) cycles nested directly inside
	// this face.
	Holes []*Boundary

	// WindingMap gives the winding number of each input shape over this
	// face; nil until winding propagation has solved the face.
	WindingMap map[int]int

	// Filled is set by ComputeFaceInclusion from the winding filter.
	Filled bool
}

func newFace(b *Boundary) *Face {
	return &Face{Boundary: b}
}

// addHole nests an outer boundary in this face and claims its
// half-edges.
func (f *Face) addHole(b *Boundary) {
	f.Holes = append(f.Holes, b)
	for _, h := range b.HalfEdges {
		h.face = f
	}
}
