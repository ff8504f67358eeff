package cag

import (
	"math"
	"sort"
)

// Quadratic represents a quadratic Bezier curve with control points
// P0, P1, P2. P0 is the start point, P1 is the control point, P2 is the
// end point.
type Quadratic struct {
	P0, P1, P2 Point
}

// NewQuadratic creates a new quadratic Bezier curve.
func NewQuadratic(p0, p1, p2 Point) Quadratic {
	return Quadratic{P0: p0, P1: p1, P2: p2}
}

// Start returns the starting point of the curve.
func (q Quadratic) Start() Point { return q.P0 }

// End returns the ending point of the curve.
func (q Quadratic) End() Point { return q.P2 }

// StartTangent returns the derivative at t=0.
func (q Quadratic) StartTangent() Vec2 { return q.TangentAt(0) }

// EndTangent returns the derivative at t=1.
func (q Quadratic) EndTangent() Vec2 { return q.TangentAt(1) }

// PositionAt evaluates the curve at parameter t.
func (q Quadratic) PositionAt(t float64) Point {
	mt := 1.0 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// TangentAt returns the derivative at parameter t.
// B'(t) = 2[(P1-P0) + t(P2-2P1+P0)]
func (q Quadratic) TangentAt(t float64) Vec2 {
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	return d0.Lerp(d1, t).Mul(2)
}

// CurvatureAt returns the signed curvature at parameter t.
func (q Quadratic) CurvatureAt(t float64) float64 {
	d := q.TangentAt(t)
	// Second derivative is constant: 2(P2 - 2P1 + P0).
	dd := q.P2.Sub(q.P1).Sub(q.P1.Sub(q.P0)).Mul(2)
	denom := d.Length()
	if denom == 0 {
		return 0
	}
	return d.Cross(dd) / (denom * denom * denom)
}

// Subdivided splits the curve at parameter t using de Casteljau's
// algorithm.
func (q Quadratic) Subdivided(t float64) (Segment, Segment) {
	p01 := q.P0.Lerp(q.P1, t)
	p12 := q.P1.Lerp(q.P2, t)
	mid := p01.Lerp(p12, t)
	return Quadratic{P0: q.P0, P1: p01, P2: mid},
		Quadratic{P0: mid, P1: p12, P2: q.P2}
}

// Subsegment returns the portion of the curve from t0 to t1.
func (q Quadratic) Subsegment(t0, t1 float64) Segment {
	p0 := q.PositionAt(t0)
	p2 := q.PositionAt(t1)
	// The control point follows from the tangent at t0 scaled to the
	// new parameter range.
	tan := q.TangentAt(t0).Mul((t1 - t0) / 2)
	return Quadratic{P0: p0, P1: p0.Add(tan), P2: p2}
}

// Reversed returns the curve with opposite parameter direction.
func (q Quadratic) Reversed() Segment {
	return Quadratic{P0: q.P2, P1: q.P1, P2: q.P0}
}

// IsFinite reports whether every control point is finite.
func (q Quadratic) IsFinite() bool {
	return q.P0.IsFinite() && q.P1.IsFinite() && q.P2.IsFinite()
}

// To appends the curve to a builder.
func (q Quadratic) To(b *Builder) {
	b.QuadraticTo(q.P1.X, q.P1.Y, q.P2.X, q.P2.Y)
}

// Extrema returns interior parameter values where the derivative is zero
// in x or y. Used for computing tight bounding boxes.
func (q Quadratic) Extrema() []float64 {
	var result []float64

	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)

	if dd.X != 0 {
		t := -d0.X / dd.X
		if t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd.Y != 0 {
		t := -d0.Y / dd.Y
		if t > 0 && t < 1 {
			result = append(result, t)
		}
	}

	sort.Float64s(result)
	return result
}

// Bounds returns the tight axis-aligned bounding box of the curve.
func (q Quadratic) Bounds() Rect {
	bbox := NewRect(q.P0, q.P2)
	for _, t := range q.Extrema() {
		bbox = bbox.extend(q.PositionAt(t))
	}
	return bbox
}

// IntersectRay returns all intersections of the curve with a ray.
// The curve is projected onto the ray normal, reducing the cast to a
// quadratic root find.
func (q Quadratic) IntersectRay(r Ray) []RayHit {
	a2, a1, a0 := q.powerBasis()
	n := r.Direction.Perp()

	ca := a2.Dot(n)
	cb := a1.Dot(n)
	cc := a0.Sub(pointVec(r.Origin)).Dot(n)

	var hits []RayHit
	for _, t := range SolveQuadraticInUnitInterval(ca, cb, cc) {
		p := q.PositionAt(t)
		u := p.Sub(r.Origin).Dot(r.Direction) / r.Direction.LengthSq()
		if u <= rayEpsilon {
			continue
		}
		tan := q.TangentAt(t)
		if r.Direction.Cross(tan) == 0 {
			// Tangent hit carries no winding information.
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
// B(t) = a2*t^2 + a1*t + a0.
func (q Quadratic) powerBasis() (a2, a1, a0 Vec2) {
	p0 := pointVec(q.P0)
	p1 := pointVec(q.P1)
	p2 := pointVec(q.P2)
	a2 = p0.Sub(p1.Mul(2)).Add(p2)
	a1 = p1.Sub(p0).Mul(2)
	a0 = p0
	return
}

// QuadraticOverlaps returns the coincident stretches of two quadratic
// curves, or nil when they do not trace the same parabola over a shared
// range.
//
// Two quadratics coincide on a stretch exactly when one is an affine
// reparameterization of the other: q(t) = p(alpha*t + beta). The
// candidate alpha and beta are recovered from the power-basis
// coefficients and verified against all of them.
func QuadraticOverlaps(p, q Quadratic) []Overlap {
	if !p.Bounds().Expand(vertexEpsilon).Overlaps(q.Bounds()) {
		return nil
	}

	a2, a1, a0 := p.powerBasis()
	b2, b1, b0 := q.powerBasis()

	lead := a2.LengthSq()
	scale := coeffScale(a2, a1, a0, b2, b1, b0)
	if lead < 1e-12*scale*scale {
		// Degenerate quadratic (effectively a line); the like-type
		// overlap contract does not cover it.
		return nil
	}

	// b2 = a2 * alpha^2
	alphaSq := b2.Dot(a2) / lead
	if alphaSq <= 0 || !isFinite(alphaSq) {
		return nil
	}
	root := math.Sqrt(alphaSq)

	for _, alpha := range [2]float64{root, -root} {
		// b1 = 2*a2*alpha*beta + a1*alpha
		beta := b1.Sub(a1.Mul(alpha)).Dot(a2) / (2 * alpha * lead)
		if !isFinite(beta) {
			continue
		}
		ok := b2.Approx(a2.Mul(alphaSq), overlapCoeffEpsilon*scale) &&
			b1.Approx(a2.Mul(2*alpha*beta).Add(a1.Mul(alpha)), overlapCoeffEpsilon*scale) &&
			b0.Approx(a2.Mul(beta*beta).Add(a1.Mul(beta)).Add(a0), overlapCoeffEpsilon*scale)
		if !ok {
			continue
		}
		if o, found := overlapRange(alpha, beta); found {
			// Midpoint cross-check against drift.
			mid := (o.T0 + o.T1) / 2
			if p.PositionAt(mid).Approx(q.PositionAt((mid-beta)/alpha), vertexEpsilon) {
				return []Overlap{o}
			}
		}
	}
	return nil
}

// overlapCoeffEpsilon bounds the relative mismatch tolerated when
// matching power-basis coefficients.
const overlapCoeffEpsilon = 1e-6

// coeffScale returns a magnitude scale for coefficient comparisons.
func coeffScale(vs ...Vec2) float64 {
	s := 1.0
	for _, v := range vs {
		s = math.Max(s, math.Max(math.Abs(v.X), math.Abs(v.Y)))
	}
	return s
}

// overlapRange clips the reparameterization t -> alpha*t + beta to the
// unit square of both parameter spaces and builds the overlap record.
func overlapRange(alpha, beta float64) (Overlap, bool) {
	// q's [0,1] maps onto p's [beta, alpha+beta].
	lo := math.Min(beta, alpha+beta)
	hi := math.Max(beta, alpha+beta)
	t0 := math.Max(lo, 0)
	t1 := math.Min(hi, 1)
	if t1 <= t0 {
		return Overlap{}, false
	}
	toQ := func(t float64) float64 { return (t - beta) / alpha }
	sign := 1
	if alpha < 0 {
		sign = -1
	}
	return Overlap{
		T0: t0, T1: t1,
		QT0: toQ(t0), QT1: toQ(t1),
		Sign: sign,
	}, true
}
