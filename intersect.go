package cag

import "math"

// Pairwise segment intersection. The pipeline matches on the pair of
// concrete segment types: line pairs and arc pairs are solved in closed
// form, a line against a curve reduces to a polynomial root find along
// the line normal, and the remaining curve/curve pairs use bounding-box
// clipped subdivision with Newton polishing.

// IntersectSegments returns all transversal intersections of two
// segments, with parameters in [0, 1] on each. Coincident stretches of
// like-typed segments are not reported here; see LineOverlaps,
// QuadraticOverlaps and CubicOverlaps.
func IntersectSegments(a, b Segment) []SegmentIntersection {
	switch sa := a.(type) {
	case Line:
		switch sb := b.(type) {
		case Line:
			return intersectLineLine(sa, sb)
		case Arc:
			return swapIntersections(intersectArcLine(sb, sa))
		default:
			return intersectLineCurve(sa, b)
		}
	case Arc:
		switch sb := b.(type) {
		case Line:
			return intersectArcLine(sa, sb)
		case Arc:
			return intersectArcArc(sa, sb)
		default:
			return intersectCurveCurve(a, b)
		}
	default:
		switch b.(type) {
		case Line:
			return swapIntersections(intersectLineCurve(b.(Line), a))
		default:
			return intersectCurveCurve(a, b)
		}
	}
}

// swapIntersections exchanges the A and B parameters.
func swapIntersections(hits []SegmentIntersection) []SegmentIntersection {
	for i := range hits {
		hits[i].AT, hits[i].BT = hits[i].BT, hits[i].AT
	}
	return hits
}

// paramEpsilon accepts parameters marginally outside [0, 1] and clamps
// them, so crossings exactly at an endpoint are not lost to rounding.
const paramEpsilon = 1e-9

func clampUnit(t float64) (float64, bool) {
	if t < -paramEpsilon || t > 1+paramEpsilon {
		return 0, false
	}
	return math.Max(0, math.Min(1, t)), true
}

// intersectLineLine solves the 2x2 linear system of two line segments.
func intersectLineLine(a, b Line) []SegmentIntersection {
	da := a.P1.Sub(a.P0)
	db := b.P1.Sub(b.P0)
	denom := da.Cross(db)
	if denom == 0 {
		// Parallel; collinear stretches are handled by LineOverlaps.
		return nil
	}
	diff := b.P0.Sub(a.P0)
	t, okT := clampUnit(diff.Cross(db) / denom)
	u, okU := clampUnit(diff.Cross(da) / denom)
	if !okT || !okU {
		return nil
	}
	return []SegmentIntersection{{AT: t, BT: u, Point: a.PositionAt(t)}}
}

// intersectLineCurve projects the curve onto the line normal and solves
// for the roots of the resulting polynomial.
func intersectLineCurve(l Line, s Segment) []SegmentIntersection {
	dir := l.P1.Sub(l.P0)
	n := dir.Perp()
	origin := pointVec(l.P0)

	var roots []float64
	switch c := s.(type) {
	case Quadratic:
		a2, a1, a0 := c.powerBasis()
		roots = SolveQuadraticInUnitInterval(a2.Dot(n), a1.Dot(n), a0.Sub(origin).Dot(n))
	case Cubic:
		a3, a2, a1, a0 := c.powerBasis()
		roots = SolveCubicInUnitInterval(a3.Dot(n), a2.Dot(n), a1.Dot(n), a0.Sub(origin).Dot(n))
	default:
		return intersectCurveCurve(l, s)
	}

	var result []SegmentIntersection
	invLenSq := 1 / dir.LengthSq()
	for _, bt := range roots {
		p := s.PositionAt(bt)
		at, ok := clampUnit(p.Sub(l.P0).Dot(dir) * invLenSq)
		if !ok {
			continue
		}
		result = append(result, SegmentIntersection{AT: at, BT: bt, Point: p})
	}
	return result
}

// clipRange is a segment piece tracked during subdivision.
type clipRange struct {
	seg    Segment
	t0, t1 float64
}

func (c clipRange) mid() float64 { return (c.t0 + c.t1) / 2 }

func (c clipRange) split() (clipRange, clipRange) {
	left, right := c.seg.Subdivided(0.5)
	m := c.mid()
	return clipRange{seg: left, t0: c.t0, t1: m},
		clipRange{seg: right, t0: m, t1: c.t1}
}

// intersectCurveCurve finds transversal crossings of two curved segments
// by recursive bounding-box subdivision, polishing each candidate with
// Newton iteration on (s, t).
func intersectCurveCurve(a, b Segment) []SegmentIntersection {
	var candidates []SegmentIntersection
	const maxCandidates = 64

	var recurse func(ca, cb clipRange, depth int)
	recurse = func(ca, cb clipRange, depth int) {
		if len(candidates) >= maxCandidates {
			return
		}
		ba := ca.seg.Bounds()
		bb := cb.seg.Bounds()
		if !ba.Expand(1e-12).Overlaps(bb) {
			return
		}
		small := math.Max(ba.Width(), ba.Height()) < 1e-9 &&
			math.Max(bb.Width(), bb.Height()) < 1e-9
		if small || depth == 0 {
			at, bt, ok := newtonRefine(a, b, ca.mid(), cb.mid())
			if ok {
				candidates = append(candidates, SegmentIntersection{
					AT: at, BT: bt, Point: a.PositionAt(at),
				})
			}
			return
		}
		a0, a1 := ca.split()
		b0, b1 := cb.split()
		recurse(a0, b0, depth-1)
		recurse(a0, b1, depth-1)
		recurse(a1, b0, depth-1)
		recurse(a1, b1, depth-1)
	}
	recurse(clipRange{seg: a, t0: 0, t1: 1}, clipRange{seg: b, t0: 0, t1: 1}, 48)

	return dedupIntersections(candidates)
}

// newtonRefine polishes a candidate parameter pair by Newton iteration on
// F(s, t) = a(s) - b(t), reporting false if it does not converge onto a
// true crossing.
func newtonRefine(a, b Segment, s, t float64) (float64, float64, bool) {
	for i := 0; i < 8; i++ {
		f := a.PositionAt(s).Sub(b.PositionAt(t))
		if f.LengthSq() < 1e-24 {
			break
		}
		da := a.TangentAt(s)
		db := b.TangentAt(t)
		// Jacobian columns are da and -db.
		det := da.Cross(db.Neg())
		if det == 0 {
			break
		}
		// Cramer's rule for J * [ds, dt]^T = -f.
		ds := (-f.X*(-db.Y) - (-db.X)*(-f.Y)) / det
		dt := (da.X*(-f.Y) - (-f.X)*da.Y) / det
		s = math.Max(0, math.Min(1, s+ds))
		t = math.Max(0, math.Min(1, t+dt))
	}
	if a.PositionAt(s).Distance(b.PositionAt(t)) > vertexEpsilon/2 {
		return 0, 0, false
	}
	return s, t, true
}

// dedupIntersections merges candidates that converged to the same
// crossing.
func dedupIntersections(candidates []SegmentIntersection) []SegmentIntersection {
	var result []SegmentIntersection
	for _, c := range candidates {
		dup := false
		for _, r := range result {
			if math.Abs(c.AT-r.AT) < 1e-6 && math.Abs(c.BT-r.BT) < 1e-6 {
				dup = true
				break
			}
			if c.Point.Distance(r.Point) < vertexEpsilon/2 {
				dup = true
				break
			}
		}
		if !dup {
			result = append(result, c)
		}
	}
	return result
}
