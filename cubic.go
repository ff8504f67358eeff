package cag

import (
	"math"
	"sort"
)

// Cubic represents a cubic Bezier curve with control points P0, P1, P2,
// P3. P0 is the start point, P1 and P2 are control points, P3 is the end
// point.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// NewCubic creates a new cubic Bezier curve.
func NewCubic(p0, p1, p2, p3 Point) Cubic {
	return Cubic{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Start returns the starting point of the curve.
func (c Cubic) Start() Point { return c.P0 }

// End returns the ending point of the curve.
func (c Cubic) End() Point { return c.P3 }

// StartTangent returns the derivative at t=0.
func (c Cubic) StartTangent() Vec2 { return c.TangentAt(0) }

// EndTangent returns the derivative at t=1.
func (c Cubic) EndTangent() Vec2 { return c.TangentAt(1) }

// PositionAt evaluates the curve at parameter t.
func (c Cubic) PositionAt(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	// (1-t)^3 * P0 + 3(1-t)^2*t * P1 + 3(1-t)*t^2 * P2 + t^3 * P3
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// TangentAt returns the derivative at parameter t.
// B'(t) = 3[(P1-P0)(1-t)^2 + 2(P2-P1)(1-t)t + (P3-P2)t^2]
func (c Cubic) TangentAt(t float64) Vec2 {
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	mt := 1.0 - t
	return Vec2{
		X: 3 * (d0.X*mt*mt + 2*d1.X*mt*t + d2.X*t*t),
		Y: 3 * (d0.Y*mt*mt + 2*d1.Y*mt*t + d2.Y*t*t),
	}
}

// CurvatureAt returns the signed curvature at parameter t.
func (c Cubic) CurvatureAt(t float64) float64 {
	d := c.TangentAt(t)
	// Second derivative: 6[(P2-2P1+P0)(1-t) + (P3-2P2+P1)t]
	s0 := c.P2.Sub(c.P1).Sub(c.P1.Sub(c.P0))
	s1 := c.P3.Sub(c.P2).Sub(c.P2.Sub(c.P1))
	dd := s0.Lerp(s1, t).Mul(6)
	denom := d.Length()
	if denom == 0 {
		return 0
	}
	return d.Cross(dd) / (denom * denom * denom)
}

// Subdivided splits the curve at parameter t using de Casteljau's
// algorithm.
func (c Cubic) Subdivided(t float64) (Segment, Segment) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)
	return Cubic{P0: c.P0, P1: p01, P2: p012, P3: mid},
		Cubic{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Subsegment returns the portion of the curve from t0 to t1.
// The interior control points follow from the derivative at the cut
// parameters scaled to the new parameter range.
func (c Cubic) Subsegment(t0, t1 float64) Segment {
	p0 := c.PositionAt(t0)
	p3 := c.PositionAt(t1)
	scale := (t1 - t0) / 3.0
	p1 := p0.Add(c.TangentAt(t0).Mul(scale))
	p2 := p3.Add(c.TangentAt(t1).Mul(-scale))
	return Cubic{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Reversed returns the curve with opposite parameter direction.
func (c Cubic) Reversed() Segment {
	return Cubic{P0: c.P3, P1: c.P2, P2: c.P1, P3: c.P0}
}

// IsFinite reports whether every control point is finite.
func (c Cubic) IsFinite() bool {
	return c.P0.IsFinite() && c.P1.IsFinite() && c.P2.IsFinite() && c.P3.IsFinite()
}

// To appends the curve to a builder.
func (c Cubic) To(b *Builder) {
	b.CubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
}

// Extrema returns interior parameter values where the derivative is zero
// in x or y. For a cubic there can be up to 4 extrema (2 for x, 2 for y).
func (c Cubic) Extrema() []float64 {
	result := make([]float64, 0, 4)

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	// The derivative is a quadratic in each coordinate.
	ax := d0.X - 2*d1.X + d2.X
	bx := 2 * (d1.X - d0.X)
	cx := d0.X
	result = append(result, SolveQuadraticInUnitInterval(ax, bx, cx)...)

	ay := d0.Y - 2*d1.Y + d2.Y
	by := 2 * (d1.Y - d0.Y)
	cy := d0.Y
	result = append(result, SolveQuadraticInUnitInterval(ay, by, cy)...)

	sort.Float64s(result)
	return result
}

// Bounds returns the tight axis-aligned bounding box of the curve.
func (c Cubic) Bounds() Rect {
	bbox := NewRect(c.P0, c.P3)
	for _, t := range c.Extrema() {
		bbox = bbox.extend(c.PositionAt(t))
	}
	return bbox
}

// IntersectRay returns all intersections of the curve with a ray.
// The curve is projected onto the ray normal, reducing the cast to a
// cubic root find.
func (c Cubic) IntersectRay(r Ray) []RayHit {
	a3, a2, a1, a0 := c.powerBasis()
	n := r.Direction.Perp()

	var hits []RayHit
	roots := SolveCubicInUnitInterval(
		a3.Dot(n), a2.Dot(n), a1.Dot(n),
		a0.Sub(pointVec(r.Origin)).Dot(n))
	for _, t := range roots {
		p := c.PositionAt(t)
		u := p.Sub(r.Origin).Dot(r.Direction) / r.Direction.LengthSq()
		if u <= rayEpsilon {
			continue
		}
		tan := c.TangentAt(t)
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

// powerBasis returns the power-basis coefficients of the curve:
// B(t) = a3*t^3 + a2*t^2 + a1*t + a0.
func (c Cubic) powerBasis() (a3, a2, a1, a0 Vec2) {
	p0 := pointVec(c.P0)
	p1 := pointVec(c.P1)
	p2 := pointVec(c.P2)
	p3 := pointVec(c.P3)
	a3 = p1.Sub(p2).Mul(3).Add(p3).Sub(p0)
	a2 = p0.Sub(p1.Mul(2)).Add(p2).Mul(3)
	a1 = p1.Sub(p0).Mul(3)
	a0 = p0
	return
}

// SelfIntersection returns the parameters at which the curve crosses
// itself, or false when it does not. The returned record has AT < BT.
//
// Writing B(u) - B(s) = (u-s)*[a3*(e1^2-e2) + a2*e1 + a1] with
// e1 = s+u, e2 = s*u reduces the crossing condition to a 2x2 linear
// system in (e1^2-e2, e1); s and u are then the roots of
// z^2 - e1*z + e2 = 0.
func (c Cubic) SelfIntersection() (SelfIntersection, bool) {
	a3, a2, a1, _ := c.powerBasis()

	det := a3.Cross(a2)
	scale := coeffScale(a3, a2, a1)
	if math.Abs(det) < 1e-12*scale*scale {
		// a3 and a2 parallel (or the cubic is degenerate): no loop.
		return SelfIntersection{}, false
	}

	w := a2.Cross(a1) / det  // e1^2 - e2
	e1 := a1.Cross(a3) / det // s + u
	e2 := e1*e1 - w          // s * u

	disc := e1*e1 - 4*e2
	if disc <= 0 {
		return SelfIntersection{}, false
	}
	sq := math.Sqrt(disc)
	s := (e1 - sq) / 2
	u := (e1 + sq) / 2

	const eps = 1e-9
	if s < -eps || u > 1+eps || u-s < eps {
		return SelfIntersection{}, false
	}
	s = math.Max(s, 0)
	u = math.Min(u, 1)

	ps := c.PositionAt(s)
	pu := c.PositionAt(u)
	if !ps.Approx(pu, vertexEpsilon) {
		return SelfIntersection{}, false
	}
	return SelfIntersection{AT: s, BT: u, Point: ps.Midpoint(pu)}, true
}

// CubicOverlaps returns the coincident stretches of two cubic curves, or
// nil when they do not trace the same cubic over a shared range.
//
// As with quadratics, coincidence means q(t) = p(alpha*t + beta); alpha
// follows from the leading power-basis coefficients (cube root, so no
// sign ambiguity) and beta from the quadratic ones, verified against the
// full coefficient set.
func CubicOverlaps(p, q Cubic) []Overlap {
	if !p.Bounds().Expand(vertexEpsilon).Overlaps(q.Bounds()) {
		return nil
	}

	a3, a2, a1, a0 := p.powerBasis()
	b3, b2, b1, b0 := q.powerBasis()

	lead := a3.LengthSq()
	scale := coeffScale(a3, a2, a1, a0, b3, b2, b1, b0)
	if lead < 1e-12*scale*scale {
		return nil
	}

	alpha := math.Cbrt(b3.Dot(a3) / lead)
	if alpha == 0 || !isFinite(alpha) {
		return nil
	}
	alphaSq := alpha * alpha

	// b2 = 3*a3*alpha^2*beta + a2*alpha^2
	beta := b2.Sub(a2.Mul(alphaSq)).Dot(a3) / (3 * alphaSq * lead)
	if !isFinite(beta) {
		return nil
	}

	eps := overlapCoeffEpsilon * scale
	ok := b3.Approx(a3.Mul(alpha*alphaSq), eps) &&
		b2.Approx(a3.Mul(3*alphaSq*beta).Add(a2.Mul(alphaSq)), eps) &&
		b1.Approx(a3.Mul(3*alpha*beta*beta).Add(a2.Mul(2*alpha*beta)).Add(a1.Mul(alpha)), eps) &&
		b0.Approx(a3.Mul(beta*beta*beta).Add(a2.Mul(beta*beta)).Add(a1.Mul(beta)).Add(a0), eps)
	if !ok {
		return nil
	}

	o, found := overlapRange(alpha, beta)
	if !found {
		return nil
	}
	mid := (o.T0 + o.T1) / 2
	if !p.PositionAt(mid).Approx(q.PositionAt((mid-beta)/alpha), vertexEpsilon) {
		return nil
	}
	return []Overlap{o}
}
