package cag

import (
	"math"
	"testing"
)

func approxPoint(t *testing.T, got, want Point, epsilon float64) {
	t.Helper()
	if !got.Approx(want, epsilon) {
		t.Errorf("point = %v, want %v", got, want)
	}
}

// segmentsUnderTest returns one representative of each segment kind.
func segmentsUnderTest() map[string]Segment {
	return map[string]Segment{
		"line":      NewLine(Pt(1, 2), Pt(7, -3)),
		"quadratic": NewQuadratic(Pt(0, 0), Pt(4, 6), Pt(8, 0)),
		"cubic":     NewCubic(Pt(0, 0), Pt(2, 5), Pt(6, -5), Pt(8, 1)),
		"arc":       NewArc(Pt(3, 3), 2, 0.3, 2.1),
	}
}

func TestSegmentEndpoints(t *testing.T) {
	for name, seg := range segmentsUnderTest() {
		t.Run(name, func(t *testing.T) {
			approxPoint(t, seg.PositionAt(0), seg.Start(), 1e-12)
			approxPoint(t, seg.PositionAt(1), seg.End(), 1e-12)
		})
	}
}

func TestSegmentSubdivided(t *testing.T) {
	for name, seg := range segmentsUnderTest() {
		t.Run(name, func(t *testing.T) {
			for _, split := range []float64{0.25, 0.5, 0.8} {
				left, right := seg.Subdivided(split)
				approxPoint(t, left.Start(), seg.Start(), 1e-9)
				approxPoint(t, left.End(), right.Start(), 1e-9)
				approxPoint(t, right.End(), seg.End(), 1e-9)
				// Both halves trace the original curve.
				for _, u := range []float64{0.1, 0.5, 0.9} {
					approxPoint(t, left.PositionAt(u), seg.PositionAt(u*split), 1e-9)
					approxPoint(t, right.PositionAt(u), seg.PositionAt(split+u*(1-split)), 1e-9)
				}
			}
		})
	}
}

func TestSegmentSubsegment(t *testing.T) {
	for name, seg := range segmentsUnderTest() {
		t.Run(name, func(t *testing.T) {
			sub := seg.Subsegment(0.2, 0.7)
			for _, u := range []float64{0, 0.3, 0.6, 1} {
				approxPoint(t, sub.PositionAt(u), seg.PositionAt(0.2+u*0.5), 1e-9)
			}
		})
	}
}

func TestSegmentReversed(t *testing.T) {
	for name, seg := range segmentsUnderTest() {
		t.Run(name, func(t *testing.T) {
			rev := seg.Reversed()
			for _, u := range []float64{0, 0.25, 0.5, 1} {
				approxPoint(t, rev.PositionAt(u), seg.PositionAt(1-u), 1e-9)
			}
			// Tangent flips direction.
			tan := seg.TangentAt(0.3)
			revTan := rev.TangentAt(0.7)
			if tan.Normalize().Dot(revTan.Normalize()) > -0.999999 {
				t.Errorf("reversed tangent %v not opposite to %v", revTan, tan)
			}
		})
	}
}

func TestSegmentBoundsContainSamples(t *testing.T) {
	for name, seg := range segmentsUnderTest() {
		t.Run(name, func(t *testing.T) {
			b := seg.Bounds().Expand(1e-9)
			for u := 0.0; u <= 1.0; u += 0.05 {
				p := seg.PositionAt(u)
				if !b.Contains(p) {
					t.Errorf("bounds %v do not contain %v at t=%v", b, p, u)
				}
			}
		})
	}
}

func TestQuadraticBoundsTight(t *testing.T) {
	// Symmetric parabola peaking at y=3 at t=0.5.
	q := NewQuadratic(Pt(0, 0), Pt(4, 6), Pt(8, 0))
	b := q.Bounds()
	if !almostEqual(b.Max.Y, 3, 1e-12) {
		t.Errorf("Max.Y = %v, want 3", b.Max.Y)
	}
	if !almostEqual(b.Min.Y, 0, 1e-12) || !almostEqual(b.Min.X, 0, 1e-12) || !almostEqual(b.Max.X, 8, 1e-12) {
		t.Errorf("bounds = %v", b)
	}
}

func TestArcBoundsCrossesAxisExtreme(t *testing.T) {
	// Quarter turn through the top of the circle.
	a := NewArc(Pt(0, 0), 1, math.Pi/4, math.Pi/2)
	b := a.Bounds()
	if !almostEqual(b.Max.Y, 1, 1e-12) {
		t.Errorf("Max.Y = %v, want 1 (top of circle inside sweep)", b.Max.Y)
	}
}

func TestSegmentRayCast(t *testing.T) {
	// A vertical ray upward through each segment's midpoint must hit it.
	for name, seg := range segmentsUnderTest() {
		t.Run(name, func(t *testing.T) {
			mid := seg.PositionAt(0.5)
			ray := Ray{Origin: Pt(mid.X, mid.Y-10), Direction: V2(0, 1)}
			hits := seg.IntersectRay(ray)
			found := false
			for _, h := range hits {
				if h.Point.Approx(mid, 1e-6) {
					found = true
					if h.Distance <= 0 {
						t.Errorf("distance = %v, want > 0", h.Distance)
					}
					if h.Wind != 1 && h.Wind != -1 {
						t.Errorf("wind = %d", h.Wind)
					}
				}
			}
			if !found {
				t.Fatalf("no hit near %v, hits=%v", mid, hits)
			}
		})
	}
}

func TestRayHitWindSign(t *testing.T) {
	ray := Ray{Origin: Pt(0, 0), Direction: V2(1, 0)}

	// A segment crossing downward through the ray moves left-to-right
	// relative to the ray direction.
	down := NewLine(Pt(5, 1), Pt(5, -1))
	hits := down.IntersectRay(ray)
	if len(hits) != 1 || hits[0].Wind != 1 {
		t.Fatalf("downward crossing: hits=%v, want single wind=+1", hits)
	}

	up := NewLine(Pt(5, -1), Pt(5, 1))
	hits = up.IntersectRay(ray)
	if len(hits) != 1 || hits[0].Wind != -1 {
		t.Fatalf("upward crossing: hits=%v, want single wind=-1", hits)
	}
}

func TestRayIgnoresBackHits(t *testing.T) {
	ray := Ray{Origin: Pt(0, 0), Direction: V2(1, 0)}
	behind := NewLine(Pt(-5, -1), Pt(-5, 1))
	if hits := behind.IntersectRay(ray); len(hits) != 0 {
		t.Errorf("hits behind origin: %v", hits)
	}
}

func TestCubicSelfIntersection(t *testing.T) {
	tests := []struct {
		name    string
		c       Cubic
		hasLoop bool
	}{
		{
			name: "looping cubic",
			// Control points crossed over so the curve loops.
			c:       NewCubic(Pt(0, 0), Pt(10, 8), Pt(-6, 8), Pt(4, 0)),
			hasLoop: true,
		},
		{
			name:    "plain arch",
			c:       NewCubic(Pt(0, 0), Pt(2, 5), Pt(6, 5), Pt(8, 0)),
			hasLoop: false,
		},
		{
			name:    "straight degenerate",
			c:       NewCubic(Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(3, 3)),
			hasLoop: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			si, ok := tt.c.SelfIntersection()
			if ok != tt.hasLoop {
				t.Fatalf("SelfIntersection ok = %v, want %v (si=%+v)", ok, tt.hasLoop, si)
			}
			if !ok {
				return
			}
			if si.AT >= si.BT {
				t.Errorf("AT %v not before BT %v", si.AT, si.BT)
			}
			pa := tt.c.PositionAt(si.AT)
			pb := tt.c.PositionAt(si.BT)
			if !pa.Approx(pb, 1e-6) {
				t.Errorf("curve positions differ at crossing: %v vs %v", pa, pb)
			}
		})
	}
}

func TestLineOverlaps(t *testing.T) {
	base := NewLine(Pt(0, 0), Pt(10, 0))

	t.Run("partial same direction", func(t *testing.T) {
		o := LineOverlaps(base, NewLine(Pt(4, 0), Pt(14, 0)))
		if len(o) != 1 {
			t.Fatalf("overlaps = %v", o)
		}
		if !almostEqual(o[0].T0, 0.4, 1e-12) || !almostEqual(o[0].T1, 1, 1e-12) {
			t.Errorf("a-range [%v, %v], want [0.4, 1]", o[0].T0, o[0].T1)
		}
		if o[0].Sign != 1 {
			t.Errorf("sign = %d, want +1", o[0].Sign)
		}
	})

	t.Run("opposed direction", func(t *testing.T) {
		o := LineOverlaps(base, NewLine(Pt(14, 0), Pt(4, 0)))
		if len(o) != 1 || o[0].Sign != -1 {
			t.Fatalf("overlaps = %v, want one opposed overlap", o)
		}
		if o[0].QT0 <= o[0].QT1 {
			t.Errorf("opposed overlap should have QT0 > QT1: %+v", o[0])
		}
	})

	t.Run("parallel offset", func(t *testing.T) {
		if o := LineOverlaps(base, NewLine(Pt(0, 1), Pt(10, 1))); len(o) != 0 {
			t.Errorf("overlaps = %v, want none", o)
		}
	})

	t.Run("collinear disjoint", func(t *testing.T) {
		if o := LineOverlaps(base, NewLine(Pt(11, 0), Pt(20, 0))); len(o) != 0 {
			t.Errorf("overlaps = %v, want none", o)
		}
	})
}

func TestQuadraticOverlaps(t *testing.T) {
	q := NewQuadratic(Pt(0, 0), Pt(5, 8), Pt(10, 0))
	left, _ := q.Subdivided(0.7)
	_, right := q.Subdivided(0.3)

	o := QuadraticOverlaps(left.(Quadratic), right.(Quadratic))
	if len(o) != 1 {
		t.Fatalf("overlaps = %v, want one", o)
	}
	// left covers q's [0, 0.7]; right covers [0.3, 1]. The shared
	// stretch is q's [0.3, 0.7], i.e. left's [3/7, 1].
	if !almostEqual(o[0].T0, 3.0/7, 1e-6) || !almostEqual(o[0].T1, 1, 1e-6) {
		t.Errorf("a-range [%v, %v], want [3/7, 1]", o[0].T0, o[0].T1)
	}
	if o[0].Sign != 1 {
		t.Errorf("sign = %d", o[0].Sign)
	}

	// Point check: both parameterizations land on the same curve point.
	mid := (o[0].T0 + o[0].T1) / 2
	qm := (o[0].QT0 + o[0].QT1) / 2
	approxPoint(t, left.PositionAt(mid), right.PositionAt(qm), 1e-6)

	t.Run("distinct curves", func(t *testing.T) {
		other := NewQuadratic(Pt(0, 0), Pt(5, 9), Pt(10, 0))
		if o := QuadraticOverlaps(q, other); len(o) != 0 {
			t.Errorf("overlaps = %v, want none", o)
		}
	})
}

func TestCubicOverlaps(t *testing.T) {
	c := NewCubic(Pt(0, 0), Pt(3, 9), Pt(7, -9), Pt(10, 2))
	left, _ := c.Subdivided(0.7)
	_, right := c.Subdivided(0.3)

	o := CubicOverlaps(left.(Cubic), right.(Cubic))
	if len(o) != 1 {
		t.Fatalf("overlaps = %v, want one", o)
	}
	if !almostEqual(o[0].T0, 3.0/7, 1e-6) || !almostEqual(o[0].T1, 1, 1e-6) {
		t.Errorf("a-range [%v, %v], want [3/7, 1]", o[0].T0, o[0].T1)
	}

	t.Run("reversed piece is opposed", func(t *testing.T) {
		o := CubicOverlaps(left.(Cubic), right.Reversed().(Cubic))
		if len(o) != 1 || o[0].Sign != -1 {
			t.Fatalf("overlaps = %v, want one opposed", o)
		}
	})

	t.Run("distinct curves", func(t *testing.T) {
		other := NewCubic(Pt(0, 0), Pt(3, 9), Pt(7, -8), Pt(10, 2))
		if o := CubicOverlaps(c, other); len(o) != 0 {
			t.Errorf("overlaps = %v, want none", o)
		}
	})
}

func TestArcOverlaps(t *testing.T) {
	t.Run("identical arcs", func(t *testing.T) {
		a := NewArc(Pt(5, 5), 3, 0, math.Pi)
		o := ArcOverlaps(a, a)
		if len(o) != 1 {
			t.Fatalf("overlaps = %v, want one", o)
		}
		if !almostEqual(o[0].T0, 0, 1e-9) || !almostEqual(o[0].T1, 1, 1e-9) || o[0].Sign != 1 {
			t.Errorf("overlap = %+v, want full same-direction", o[0])
		}
	})

	t.Run("partial stretch", func(t *testing.T) {
		a := NewArc(Pt(0, 0), 2, 0, math.Pi)
		b := NewArc(Pt(0, 0), 2, math.Pi/2, math.Pi)
		o := ArcOverlaps(a, b)
		if len(o) != 1 {
			t.Fatalf("overlaps = %v, want one", o)
		}
		// Shared angles [pi/2, pi]: a's [0.5, 1], b's [0, 0.5].
		if !almostEqual(o[0].T0, 0.5, 1e-9) || !almostEqual(o[0].T1, 1, 1e-9) {
			t.Errorf("a-range [%v, %v], want [0.5, 1]", o[0].T0, o[0].T1)
		}
		if !almostEqual(o[0].QT0, 0, 1e-9) || !almostEqual(o[0].QT1, 0.5, 1e-9) {
			t.Errorf("b-range [%v, %v], want [0, 0.5]", o[0].QT0, o[0].QT1)
		}
	})

	t.Run("opposed sweeps", func(t *testing.T) {
		a := NewArc(Pt(0, 0), 2, 0, math.Pi)
		b := NewArc(Pt(0, 0), 2, math.Pi, -math.Pi)
		o := ArcOverlaps(a, b)
		if len(o) != 1 || o[0].Sign != -1 {
			t.Fatalf("overlaps = %v, want one opposed", o)
		}
	})

	t.Run("different circles", func(t *testing.T) {
		a := NewArc(Pt(0, 0), 2, 0, math.Pi)
		if o := ArcOverlaps(a, NewArc(Pt(0, 0), 3, 0, math.Pi)); len(o) != 0 {
			t.Errorf("overlaps = %v, want none", o)
		}
		if o := ArcOverlaps(a, NewArc(Pt(1, 0), 2, 0, math.Pi)); len(o) != 0 {
			t.Errorf("overlaps = %v, want none", o)
		}
	})

	t.Run("disjoint ranges", func(t *testing.T) {
		a := NewArc(Pt(0, 0), 2, 0, math.Pi/2)
		b := NewArc(Pt(0, 0), 2, math.Pi, math.Pi/2)
		if o := ArcOverlaps(a, b); len(o) != 0 {
			t.Errorf("overlaps = %v, want none", o)
		}
	})
}
