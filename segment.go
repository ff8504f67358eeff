package cag

// Tunable epsilons for the planar-subdivision pipeline. These are not
// configurable at runtime; they are matched to float64 precision and the
// interactive coordinate ranges the library targets.
const (
	// vertexEpsilon is the distance below which two vertices are
	// considered the same point and collapsed.
	vertexEpsilon = 1e-5

	// tEpsilon is the parameter-space epsilon: overlaps shorter than
	// this in either curve's parameter are ignored, and intersection
	// parameters within tEpsilon of an endpoint reuse the endpoint
	// vertex instead of splitting.
	tEpsilon = 1e-5

	// rayEpsilon clips ray hits at or behind the ray origin.
	rayEpsilon = 1e-8

	// collinearEpsilon bounds the tangent deviation for merging
	// adjacent line segments in the filled sub-graph.
	collinearEpsilon = 1e-6

	// extremeRayAngle is the direction used for the hole-nesting ray
	// cast. Slightly off pi/2 so that axis-aligned input does not
	// produce tangent hits.
	extremeRayAngle = 1.5729657
)

// Segment is a parametric curve over t in [0, 1].
//
// Implementations are immutable values: Line, Quadratic, Cubic, Arc.
type Segment interface {
	// Start returns the point at t=0.
	Start() Point
	// End returns the point at t=1.
	End() Point
	// StartTangent returns the (non-normalized) tangent at t=0.
	StartTangent() Vec2
	// EndTangent returns the (non-normalized) tangent at t=1.
	EndTangent() Vec2
	// Bounds returns an axis-aligned bounding box containing the
	// segment. Tight for all implementations.
	Bounds() Rect
	// PositionAt evaluates the curve at parameter t.
	PositionAt(t float64) Point
	// TangentAt returns the (non-normalized) derivative at parameter t.
	TangentAt(t float64) Vec2
	// CurvatureAt returns the signed curvature at parameter t.
	// Positive curvature bends to the left of the tangent.
	CurvatureAt(t float64) float64
	// Subdivided splits the segment at parameter t into two segments of
	// the same type whose endpoints match at the split point.
	Subdivided(t float64) (Segment, Segment)
	// Subsegment returns the portion of the segment between t0 and t1.
	Subsegment(t0, t1 float64) Segment
	// Reversed returns the segment with opposite parameter direction.
	Reversed() Segment
	// IntersectRay returns all intersections with an outgoing ray,
	// ignoring hits at distance <= rayEpsilon.
	IntersectRay(r Ray) []RayHit
	// IsFinite reports whether every control point is finite.
	IsFinite() bool
	// To appends this segment to a builder, assuming the builder's
	// current point is the segment start.
	To(b *Builder)
}

var (
	_ Segment = Line{}
	_ Segment = Quadratic{}
	_ Segment = Cubic{}
	_ Segment = Arc{}
)

// Ray is a half-line from Origin in Direction. Direction need not be
// normalized; hit distances are measured in units of its length.
type Ray struct {
	Origin    Point
	Direction Vec2
}

// PointAt returns the point at the given distance along the ray.
func (r Ray) PointAt(distance float64) Point {
	return r.Origin.Add(r.Direction.Mul(distance))
}

// RayHit is one intersection of a segment with a ray.
type RayHit struct {
	// Distance along the ray, in units of the ray direction length.
	// Always greater than rayEpsilon.
	Distance float64
	// Point is the intersection point.
	Point Point
	// T is the segment parameter of the hit.
	T float64
	// Normal is the unit normal of the segment at the hit.
	Normal Vec2
	// Wind is +1 if the segment crosses the ray left-to-right relative
	// to the ray direction, -1 otherwise.
	Wind int
}

// SegmentIntersection is one crossing of two segments, with the
// parameter on each.
type SegmentIntersection struct {
	AT, BT float64
	Point  Point
}

// Overlap describes a coincident stretch of two like-typed segments.
// The stretch covers [T0, T1] on the first segment (T0 < T1) and the
// corresponding [QT0, QT1] on the second. Sign is +1 when the two
// parameterizations run in the same direction, -1 when opposed (then
// QT0 > QT1).
type Overlap struct {
	T0, T1   float64
	QT0, QT1 float64
	Sign     int
}

// SelfIntersection is the crossing of a segment with itself, with
// AT < BT.
type SelfIntersection struct {
	AT, BT float64
	Point  Point
}

// rayWind computes the Wind sign for a hit with the given segment
// tangent: +1 when the segment crosses the ray left-to-right.
func rayWind(rayDir, tangent Vec2) int {
	if rayDir.Cross(tangent) < 0 {
		return 1
	}
	return -1
}

// rayNormal returns the unit normal for a hit tangent.
func rayNormal(tangent Vec2) Vec2 {
	return tangent.Perp().Normalize()
}

// extremeT returns the parameter in [0, 1] at which the segment reaches
// its maximum extent in direction dir, considering endpoints and
// interior extrema.
func extremeT(s Segment, dir Vec2) float64 {
	bestT := 0.0
	best := pointVec(s.PositionAt(0)).Dot(dir)
	consider := func(t float64) {
		d := pointVec(s.PositionAt(t)).Dot(dir)
		if d > best {
			best = d
			bestT = t
		}
	}
	consider(1)
	for _, t := range interiorExtrema(s, dir) {
		consider(t)
	}
	return bestT
}

// interiorExtrema returns interior parameters where the tangent is
// perpendicular to dir, for each segment kind.
func interiorExtrema(s Segment, dir Vec2) []float64 {
	switch seg := s.(type) {
	case Line:
		return nil
	case Quadratic:
		// Tangent is linear in t; solve tangent . dir = 0.
		d0 := seg.P1.Sub(seg.P0)
		d1 := seg.P2.Sub(seg.P1)
		b := d0.Dot(dir)
		a := d1.Dot(dir) - b
		return filterRootsToUnitInterval(SolveLinear(a, b))
	case Cubic:
		d0 := seg.P1.Sub(seg.P0)
		d1 := seg.P2.Sub(seg.P1)
		d2 := seg.P3.Sub(seg.P2)
		a := d0.Dot(dir) - 2*d1.Dot(dir) + d2.Dot(dir)
		b := 2 * (d1.Dot(dir) - d0.Dot(dir))
		c := d0.Dot(dir)
		return SolveQuadraticInUnitInterval(a, b, c)
	case Arc:
		// The position extreme along dir occurs where the radius vector
		// aligns with dir.
		return seg.anglesToParams(dir.Atan2())
	}
	return nil
}

// pointVec reinterprets a position as a displacement from the origin.
func pointVec(p Point) Vec2 {
	return Vec2{X: p.X, Y: p.Y}
}
