package cag

import "math"

// Line represents a straight segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// NewLine creates a new line segment.
func NewLine(p0, p1 Point) Line {
	return Line{P0: p0, P1: p1}
}

// Start returns the starting point of the line.
func (l Line) Start() Point { return l.P0 }

// End returns the ending point of the line.
func (l Line) End() Point { return l.P1 }

// StartTangent returns the direction vector of the line.
func (l Line) StartTangent() Vec2 { return l.P1.Sub(l.P0) }

// EndTangent returns the direction vector of the line.
func (l Line) EndTangent() Vec2 { return l.P1.Sub(l.P0) }

// Bounds returns the axis-aligned bounding box of the line.
func (l Line) Bounds() Rect { return NewRect(l.P0, l.P1) }

// PositionAt evaluates the line at parameter t.
// t=0 returns P0, t=1 returns P1.
func (l Line) PositionAt(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// TangentAt returns the direction vector of the line.
func (l Line) TangentAt(float64) Vec2 { return l.P1.Sub(l.P0) }

// CurvatureAt returns 0: lines do not curve.
func (l Line) CurvatureAt(float64) float64 { return 0 }

// Subdivided splits the line at parameter t.
func (l Line) Subdivided(t float64) (Segment, Segment) {
	mid := l.PositionAt(t)
	return Line{P0: l.P0, P1: mid}, Line{P0: mid, P1: l.P1}
}

// Subsegment returns the portion of the line from t0 to t1.
func (l Line) Subsegment(t0, t1 float64) Segment {
	return Line{P0: l.PositionAt(t0), P1: l.PositionAt(t1)}
}

// Reversed returns a copy of the line with endpoints swapped.
func (l Line) Reversed() Segment {
	return Line{P0: l.P1, P1: l.P0}
}

// IsFinite reports whether both endpoints are finite.
func (l Line) IsFinite() bool {
	return l.P0.IsFinite() && l.P1.IsFinite()
}

// To appends the line to a builder.
func (l Line) To(b *Builder) {
	b.LineTo(l.P1.X, l.P1.Y)
}

// Length returns the length of the line segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// IntersectRay returns the intersection of the line with a ray, if any.
func (l Line) IntersectRay(r Ray) []RayHit {
	s := l.P1.Sub(l.P0)
	denom := r.Direction.Cross(s)
	if denom == 0 {
		// Parallel (a collinear line produces no transversal crossing).
		return nil
	}
	diff := l.P0.Sub(r.Origin)
	u := diff.Cross(s) / denom
	t := diff.Cross(r.Direction) / denom
	if u <= rayEpsilon || t < 0 || t > 1 {
		return nil
	}
	return []RayHit{{
		Distance: u,
		Point:    l.PositionAt(t),
		T:        t,
		Normal:   rayNormal(s),
		Wind:     rayWind(r.Direction, s),
	}}
}

// LineOverlaps returns the coincident stretches of two line segments,
// or nil when they are not collinear or do not share a stretch.
func LineOverlaps(a, b Line) []Overlap {
	da := a.P1.Sub(a.P0)
	db := b.P1.Sub(b.P0)
	lenA := da.Length()
	lenB := db.Length()
	if lenA == 0 || lenB == 0 {
		return nil
	}

	// Collinearity: direction cross and offset of b from a's line.
	if math.Abs(da.Cross(db))/(lenA*lenB) > collinearEpsilon {
		return nil
	}
	if math.Abs(da.Cross(b.P0.Sub(a.P0)))/lenA > vertexEpsilon {
		return nil
	}

	// Project b's endpoints onto a's parameterization.
	invLenSq := 1 / da.LengthSq()
	q0 := b.P0.Sub(a.P0).Dot(da) * invLenSq
	q1 := b.P1.Sub(a.P0).Dot(da) * invLenSq

	lo, hi := math.Min(q0, q1), math.Max(q0, q1)
	t0 := math.Max(lo, 0)
	t1 := math.Min(hi, 1)
	if t1 <= t0 {
		return nil
	}

	// Map the a-range back to b parameters.
	toB := func(t float64) float64 { return (t - q0) / (q1 - q0) }
	sign := 1
	if da.Dot(db) < 0 {
		sign = -1
	}
	return []Overlap{{
		T0: t0, T1: t1,
		QT0: toB(t0), QT1: toB(t1),
		Sign: sign,
	}}
}
