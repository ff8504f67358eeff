package cag

import "math"

// Builder provides a fluent interface for shape construction.
// All methods return the builder for chaining.
//
// A MoveTo starts a new subpath; drawing commands extend the current
// one. Close marks the current subpath closed (the pipeline adds the
// implicit closing line when needed).
type Builder struct {
	shape   *Shape
	current *Subpath
	start   Point
	pen     Point
}

// NewBuilder starts a new shape builder.
func NewBuilder() *Builder {
	return &Builder{shape: NewShape()}
}

// ensureSubpath opens a subpath at the pen if none is active.
func (b *Builder) ensureSubpath() {
	if b.current == nil {
		b.current = &Subpath{}
		b.shape.Subpaths = append(b.shape.Subpaths, b.current)
		b.start = b.pen
	}
}

// MoveTo starts a new subpath at the given position.
func (b *Builder) MoveTo(x, y float64) *Builder {
	b.current = nil
	b.pen = Pt(x, y)
	return b
}

// LineTo draws a line to a position.
func (b *Builder) LineTo(x, y float64) *Builder {
	b.ensureSubpath()
	p := Pt(x, y)
	b.current.Segments = append(b.current.Segments, Line{P0: b.pen, P1: p})
	b.pen = p
	return b
}

// QuadraticTo draws a quadratic Bezier curve.
func (b *Builder) QuadraticTo(cx, cy, x, y float64) *Builder {
	b.ensureSubpath()
	p := Pt(x, y)
	b.current.Segments = append(b.current.Segments, Quadratic{P0: b.pen, P1: Pt(cx, cy), P2: p})
	b.pen = p
	return b
}

// CubicTo draws a cubic Bezier curve.
func (b *Builder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Builder {
	b.ensureSubpath()
	p := Pt(x, y)
	b.current.Segments = append(b.current.Segments,
		Cubic{P0: b.pen, P1: Pt(c1x, c1y), P2: Pt(c2x, c2y), P3: p})
	b.pen = p
	return b
}

// ArcTo draws a circular arc around (cx, cy) with the given radius from
// startAngle sweeping by sweep radians. A line connects the pen to the
// arc start when they differ.
func (b *Builder) ArcTo(cx, cy, radius, startAngle, sweep float64) *Builder {
	arc := NewArc(Pt(cx, cy), radius, startAngle, sweep)
	arcStart := arc.Start()
	b.ensureSubpath()
	if b.pen.Distance(arcStart) > 0 {
		b.current.Segments = append(b.current.Segments, Line{P0: b.pen, P1: arcStart})
	}
	b.current.Segments = append(b.current.Segments, arc)
	b.pen = arc.End()
	return b
}

// SegmentTo appends a pre-built segment. The segment must start at the
// pen position.
func (b *Builder) SegmentTo(seg Segment) *Builder {
	b.ensureSubpath()
	b.current.Segments = append(b.current.Segments, seg)
	b.pen = seg.End()
	return b
}

// Close marks the current subpath closed and moves the pen back to its
// start.
func (b *Builder) Close() *Builder {
	if b.current != nil {
		b.current.Closed = true
		b.pen = b.start
		b.current = nil
	}
	return b
}

// Rect adds a closed rectangle subpath.
func (b *Builder) Rect(x, y, w, h float64) *Builder {
	return b.MoveTo(x, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		Close()
}

// Circle adds a closed circle subpath built from two half-turn arcs.
func (b *Builder) Circle(cx, cy, r float64) *Builder {
	b.MoveTo(cx+r, cy)
	b.ArcTo(cx, cy, r, 0, math.Pi)
	b.ArcTo(cx, cy, r, math.Pi, math.Pi)
	return b.Close()
}

// Polygon adds a closed regular polygon subpath.
func (b *Builder) Polygon(cx, cy, radius float64, sides int) *Builder {
	if sides < 3 {
		return b
	}
	angleStep := 2 * math.Pi / float64(sides)
	startAngle := -math.Pi / 2
	for i := 0; i < sides; i++ {
		angle := startAngle + float64(i)*angleStep
		x := cx + radius*math.Cos(angle)
		y := cy + radius*math.Sin(angle)
		if i == 0 {
			b.MoveTo(x, y)
		} else {
			b.LineTo(x, y)
		}
	}
	return b.Close()
}

// Shape returns the constructed shape.
func (b *Builder) Shape() *Shape {
	return b.shape
}
