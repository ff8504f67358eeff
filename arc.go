package cag

import "math"

// Arc represents a circular arc around Center with the given Radius,
// starting at StartAngle (radians) and sweeping by Sweep. A positive
// sweep increases the angle; the arc parameter t maps linearly onto the
// swept angle.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	Sweep      float64
}

// NewArc creates a new circular arc.
func NewArc(center Point, radius, startAngle, sweep float64) Arc {
	return Arc{Center: center, Radius: radius, StartAngle: startAngle, Sweep: sweep}
}

// angleAt maps the parameter t to an angle.
func (a Arc) angleAt(t float64) float64 {
	return a.StartAngle + t*a.Sweep
}

// pointAtAngle returns the point on the circle at the given angle.
func (a Arc) pointAtAngle(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return Point{X: a.Center.X + a.Radius*cos, Y: a.Center.Y + a.Radius*sin}
}

// Start returns the starting point of the arc.
func (a Arc) Start() Point { return a.pointAtAngle(a.StartAngle) }

// End returns the ending point of the arc.
func (a Arc) End() Point { return a.pointAtAngle(a.StartAngle + a.Sweep) }

// StartTangent returns the derivative at t=0.
func (a Arc) StartTangent() Vec2 { return a.TangentAt(0) }

// EndTangent returns the derivative at t=1.
func (a Arc) EndTangent() Vec2 { return a.TangentAt(1) }

// PositionAt evaluates the arc at parameter t.
func (a Arc) PositionAt(t float64) Point {
	return a.pointAtAngle(a.angleAt(t))
}

// TangentAt returns the derivative at parameter t.
func (a Arc) TangentAt(t float64) Vec2 {
	sin, cos := math.Sincos(a.angleAt(t))
	return Vec2{X: -sin, Y: cos}.Mul(a.Radius * a.Sweep)
}

// CurvatureAt returns the signed curvature: 1/Radius, negated for
// negative sweeps.
func (a Arc) CurvatureAt(float64) float64 {
	if a.Sweep < 0 {
		return -1 / a.Radius
	}
	return 1 / a.Radius
}

// Subdivided splits the arc at parameter t.
func (a Arc) Subdivided(t float64) (Segment, Segment) {
	return Arc{Center: a.Center, Radius: a.Radius, StartAngle: a.StartAngle, Sweep: t * a.Sweep},
		Arc{Center: a.Center, Radius: a.Radius, StartAngle: a.angleAt(t), Sweep: (1 - t) * a.Sweep}
}

// Subsegment returns the portion of the arc from t0 to t1.
func (a Arc) Subsegment(t0, t1 float64) Segment {
	return Arc{Center: a.Center, Radius: a.Radius, StartAngle: a.angleAt(t0), Sweep: (t1 - t0) * a.Sweep}
}

// Reversed returns the arc with opposite parameter direction.
func (a Arc) Reversed() Segment {
	return Arc{Center: a.Center, Radius: a.Radius, StartAngle: a.StartAngle + a.Sweep, Sweep: -a.Sweep}
}

// IsFinite reports whether the arc geometry is finite.
func (a Arc) IsFinite() bool {
	return a.Center.IsFinite() && isFinite(a.Radius) &&
		isFinite(a.StartAngle) && isFinite(a.Sweep)
}

// To appends the arc to a builder.
func (a Arc) To(b *Builder) {
	b.ArcTo(a.Center.X, a.Center.Y, a.Radius, a.StartAngle, a.Sweep)
}

// Bounds returns the tight axis-aligned bounding box of the arc:
// the endpoints plus any axis-extreme angle inside the sweep.
func (a Arc) Bounds() Rect {
	bbox := NewRect(a.Start(), a.End())
	for _, theta := range [4]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		for _, t := range a.anglesToParams(theta) {
			bbox = bbox.extend(a.PositionAt(t))
		}
	}
	return bbox
}

// anglesToParams returns the interior parameters t in (0, 1) at which
// the arc passes through the given angle (modulo full turns).
func (a Arc) anglesToParams(theta float64) []float64 {
	if a.Sweep == 0 {
		return nil
	}
	var result []float64
	// Solve startAngle + t*sweep = theta + 2*pi*k for each k that puts
	// t inside (0, 1).
	base := (theta - a.StartAngle) / a.Sweep
	step := 2 * math.Pi / math.Abs(a.Sweep)
	// Shift base to its smallest value >= 0, then walk up.
	k := math.Ceil(-base / step)
	for t := base + k*step; t < 1; t += step {
		if t > 0 {
			result = append(result, t)
		}
	}
	return result
}

// paramOfPoint maps a point assumed to lie on the arc's circle to the
// arc parameter, reporting false when the angle is outside the sweep.
func (a Arc) paramOfPoint(p Point) (float64, bool) {
	theta := p.Sub(a.Center).Atan2()
	if a.Sweep == 0 {
		return 0, false
	}
	t := (theta - a.StartAngle) / a.Sweep
	step := 2 * math.Pi / math.Abs(a.Sweep)
	// Normalize into the smallest t >= -eps.
	const eps = 1e-9
	t -= math.Floor((t+eps)/step) * step
	if t > 1+eps {
		return 0, false
	}
	return math.Max(0, math.Min(1, t)), true
}

// IntersectRay returns all intersections of the arc with a ray, solving
// the circle-ray quadratic and filtering by the swept range.
func (a Arc) IntersectRay(r Ray) []RayHit {
	oc := r.Origin.Sub(a.Center)
	qa := r.Direction.LengthSq()
	qb := 2 * r.Direction.Dot(oc)
	qc := oc.LengthSq() - a.Radius*a.Radius

	var hits []RayHit
	for _, u := range SolveQuadratic(qa, qb, qc) {
		if u <= rayEpsilon {
			continue
		}
		p := r.PointAt(u)
		t, ok := a.paramOfPoint(p)
		if !ok {
			continue
		}
		tan := a.TangentAt(t)
		if r.Direction.Cross(tan) == 0 {
			continue
		}
		hits = append(hits, RayHit{
			Distance: u,
			Point:    p,
			T:        t,
			Normal:   rayNormal(tan),
			Wind:     rayWind(r.Direction, tan),
		})
	}
	return hits
}

// ArcOverlaps returns the coincident stretches of two arcs on the same
// circle, or nil when the circles differ or the angular ranges are
// disjoint.
//
// On a shared circle, b is an affine reparameterization of a:
// b(t) = a(alpha*t + beta) with alpha the sweep ratio and beta the
// angular offset, ambiguous up to full turns.
func ArcOverlaps(a, b Arc) []Overlap {
	if a.Center.Distance(b.Center) > vertexEpsilon ||
		math.Abs(a.Radius-b.Radius) > vertexEpsilon {
		return nil
	}
	if a.Sweep == 0 || b.Sweep == 0 {
		return nil
	}

	alpha := b.Sweep / a.Sweep
	base := (b.StartAngle - a.StartAngle) / a.Sweep
	period := 2 * math.Pi / a.Sweep

	// The angular offset is only defined modulo full turns; try the
	// shifts that can place b's range against [0, 1].
	for k := -2.0; k <= 2; k++ {
		beta := base + k*period
		o, found := overlapRange(alpha, beta)
		if !found {
			continue
		}
		mid := (o.T0 + o.T1) / 2
		if a.PositionAt(mid).Approx(b.PositionAt((mid-beta)/alpha), vertexEpsilon) {
			return []Overlap{o}
		}
	}
	return nil
}

// intersectArcLine returns the crossings of an arc and a line.
func intersectArcLine(a Arc, l Line) []SegmentIntersection {
	d := l.P1.Sub(l.P0)
	oc := l.P0.Sub(a.Center)
	qa := d.LengthSq()
	qb := 2 * d.Dot(oc)
	qc := oc.LengthSq() - a.Radius*a.Radius

	var result []SegmentIntersection
	for _, u := range SolveQuadratic(qa, qb, qc) {
		if u < 0 || u > 1 {
			continue
		}
		p := l.PositionAt(u)
		t, ok := a.paramOfPoint(p)
		if !ok {
			continue
		}
		result = append(result, SegmentIntersection{AT: t, BT: u, Point: p})
	}
	return result
}

// intersectArcArc returns the crossings of two arcs. Arcs on coincident
// circles produce no transversal crossings.
func intersectArcArc(a, b Arc) []SegmentIntersection {
	delta := b.Center.Sub(a.Center)
	d := delta.Length()
	if d == 0 {
		// Concentric: coincident or disjoint circles, never transversal.
		return nil
	}
	if d > a.Radius+b.Radius || d < math.Abs(a.Radius-b.Radius) {
		return nil
	}

	// Standard two-circle intersection: foot of the radical axis at
	// distance h from the center line.
	ca := (d*d + a.Radius*a.Radius - b.Radius*b.Radius) / (2 * d)
	hSq := a.Radius*a.Radius - ca*ca
	if hSq < 0 {
		hSq = 0
	}
	h := math.Sqrt(hSq)

	dir := delta.Div(d)
	foot := a.Center.Add(dir.Mul(ca))
	offsets := []Vec2{dir.Perp().Mul(h), dir.Perp().Mul(-h)}
	if h == 0 {
		offsets = offsets[:1]
	}

	var result []SegmentIntersection
	for _, off := range offsets {
		p := foot.Add(off)
		at, ok := a.paramOfPoint(p)
		if !ok {
			continue
		}
		bt, ok := b.paramOfPoint(p)
		if !ok {
			continue
		}
		result = append(result, SegmentIntersection{AT: at, BT: bt, Point: p})
	}
	return result
}
