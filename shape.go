package cag

import "math"

// Subpath is a sequence of connected segments forming one contour.
// When Closed, the contour is completed by an implicit closing line if
// the last segment does not end at the first segment's start.
type Subpath struct {
	Segments []Segment
	Closed   bool
}

// HasClosingSegment reports whether closing this subpath requires an
// extra line segment.
func (sp *Subpath) HasClosingSegment() bool {
	if !sp.Closed || len(sp.Segments) == 0 {
		return false
	}
	first := sp.Segments[0].Start()
	last := sp.Segments[len(sp.Segments)-1].End()
	return first != last
}

// GetClosingSegment returns the line that closes the subpath.
// Only valid when HasClosingSegment is true.
func (sp *Subpath) GetClosingSegment() Segment {
	return Line{
		P0: sp.Segments[len(sp.Segments)-1].End(),
		P1: sp.Segments[0].Start(),
	}
}

// fullSegments returns the subpath's segments including the implicit
// closing line, if any.
func (sp *Subpath) fullSegments() []Segment {
	if !sp.HasClosingSegment() {
		return sp.Segments
	}
	return append(append([]Segment{}, sp.Segments...), sp.GetClosingSegment())
}

// Shape is a set of subpaths defining a planar region under the
// non-zero winding rule.
type Shape struct {
	Subpaths []*Subpath
}

// NewShape creates an empty shape.
func NewShape() *Shape {
	return &Shape{}
}

// IsEmpty reports whether the shape has no subpaths.
func (s *Shape) IsEmpty() bool {
	return len(s.Subpaths) == 0
}

// Bounds returns the axis-aligned bounding box of the shape, or a zero
// rectangle for an empty shape.
func (s *Shape) Bounds() Rect {
	first := true
	var bbox Rect
	for _, sp := range s.Subpaths {
		for _, seg := range sp.Segments {
			if first {
				bbox = seg.Bounds()
				first = false
			} else {
				bbox = bbox.Union(seg.Bounds())
			}
		}
	}
	return bbox
}

// Area returns the signed area enclosed by the shape's closed subpaths,
// positive for counter-clockwise contours. Summed per segment using the
// exact Green's-theorem contribution of each segment kind.
func (s *Shape) Area() float64 {
	var area float64
	for _, sp := range s.Subpaths {
		if !sp.Closed {
			continue
		}
		for _, seg := range sp.fullSegments() {
			area += segmentArea(seg)
		}
	}
	return area
}

// Winding returns the winding number of the shape's closed subpaths
// around the point.
func (s *Shape) Winding(p Point) int {
	// An off-axis direction dodges horizontal and vertical edges.
	ray := Ray{Origin: p, Direction: V2(1, 0).Rotate(extremeRayAngle)}
	var winding int
	for _, sp := range s.Subpaths {
		if !sp.Closed {
			continue
		}
		for _, seg := range sp.fullSegments() {
			for _, hit := range seg.IntersectRay(ray) {
				// A left-to-right crossing (Wind=+1) circles the point
				// clockwise.
				winding -= hit.Wind
			}
		}
	}
	return winding
}

// Contains tests if a point is inside the shape using the non-zero fill
// rule.
func (s *Shape) Contains(p Point) bool {
	return s.Winding(p) != 0
}

// Flatten approximates the shape's closed subpaths by polylines,
// subdividing each curve until its points at t = 1/4, 1/2 and 3/4 lie
// within the given tolerance of the chord. Each polyline is one subpath,
// closed (last point equals first).
func (s *Shape) Flatten(tolerance float64) [][]Point {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	var result [][]Point
	for _, sp := range s.Subpaths {
		if !sp.Closed || len(sp.Segments) == 0 {
			continue
		}
		poly := []Point{sp.Segments[0].Start()}
		for _, seg := range sp.fullSegments() {
			poly = flattenSegment(seg, tolerance, poly)
		}
		result = append(result, poly)
	}
	return result
}

// flattenSegment appends the flattened segment to the polyline,
// excluding the segment start (assumed already present).
func flattenSegment(seg Segment, tolerance float64, poly []Point) []Point {
	if l, ok := seg.(Line); ok {
		return append(poly, l.P1)
	}
	return flattenRecursive(seg, tolerance, poly, 0)
}

func flattenRecursive(seg Segment, tolerance float64, poly []Point, depth int) []Point {
	// Flat enough when the curve stays within tolerance of the chord at
	// the quarter points; the midpoint alone misses S-shaped curves whose
	// midpoint lies on the chord.
	start, end := seg.Start(), seg.End()
	flat := true
	for _, t := range [3]float64{0.25, 0.5, 0.75} {
		if seg.PositionAt(t).Distance(start.Lerp(end, t)) > tolerance {
			flat = false
			break
		}
	}
	if depth >= 20 || flat {
		return append(poly, end)
	}
	left, right := seg.Subdivided(0.5)
	poly = flattenRecursive(left, tolerance, poly, depth+1)
	return flattenRecursive(right, tolerance, poly, depth+1)
}

// segmentArea returns the segment's contribution to the enclosed signed
// area: the integral of (x dy - y dx)/2 along the segment. Contributions
// sum to the shoelace area over a closed contour.
func segmentArea(seg Segment) float64 {
	switch s := seg.(type) {
	case Line:
		return cross2(s.P0, s.P1) / 2
	case Quadratic:
		return (2*cross2(s.P0, s.P1) + cross2(s.P0, s.P2) + 2*cross2(s.P1, s.P2)) / 6
	case Cubic:
		return (6*cross2(s.P0, s.P1) + 3*cross2(s.P0, s.P2) + cross2(s.P0, s.P3) +
			3*cross2(s.P1, s.P2) + 3*cross2(s.P1, s.P3) + 6*cross2(s.P2, s.P3)) / 20
	case Arc:
		theta0 := s.StartAngle
		theta1 := s.StartAngle + s.Sweep
		r := s.Radius
		return (r*r*s.Sweep +
			s.Center.X*r*(math.Sin(theta1)-math.Sin(theta0)) +
			s.Center.Y*r*(math.Cos(theta0)-math.Cos(theta1))) / 2
	}
	// Unknown segment kinds fall back to the chord.
	return cross2(seg.Start(), seg.End()) / 2
}

// cross2 is the shoelace cross term x0*y1 - x1*y0.
func cross2(p, q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}
